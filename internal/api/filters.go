package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/madx-labs/brandpulse/internal/core/domain"
	cerrors "github.com/madx-labs/brandpulse/internal/core/errors"
	"github.com/madx-labs/brandpulse/internal/core/ports"
)

const defaultWindowDays = 30

// parseFilters extracts the common query filters. Absent dates default to
// the trailing 30-day window; a window with end before start is rejected
// before any computation.
func parseFilters(r *http.Request, defaultTenant string) (ports.MentionFilters, error) {
	q := r.URL.Query()

	now := time.Now().UTC()
	start := now.AddDate(0, 0, -defaultWindowDays)
	end := now

	var err error

	if raw := q.Get("start"); raw != "" {
		start, err = dateparse.ParseAny(raw)
		if err != nil {
			return ports.MentionFilters{}, fmt.Errorf("invalid start date %q: %w", raw, err)
		}
	}

	if raw := q.Get("end"); raw != "" {
		end, err = dateparse.ParseAny(raw)
		if err != nil {
			return ports.MentionFilters{}, fmt.Errorf("invalid end date %q: %w", raw, err)
		}
	}

	if end.Before(start) {
		return ports.MentionFilters{}, cerrors.ErrInvalidWindow
	}

	tenant := q.Get("tenant")
	if tenant == "" {
		tenant = defaultTenant
	}

	return ports.MentionFilters{
		Window: domain.Window{Start: start, End: end},
		Engine: allAsEmpty(q.Get("model")),
		Source: allAsEmpty(q.Get("source")),
		Topic:  allAsEmpty(q.Get("topic")),
		Brand:  q.Get("brand"),
		Tenant: tenant,
	}, nil
}

// allAsEmpty treats the UI's "all" selector value as no filter.
func allAsEmpty(v string) string {
	if strings.EqualFold(v, "all") {
		return ""
	}

	return v
}

// filterKey builds a stable cache key fragment from the filter set.
func filterKey(f ports.MentionFilters) string {
	return strings.Join([]string{f.Engine, f.Source, f.Topic, f.Brand, f.Tenant}, "|")
}
