package api

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/madx-labs/brandpulse/internal/core/errors"
	"github.com/madx-labs/brandpulse/internal/core/ports"
)

const testTenant = "the-core-school"

func TestParseFiltersDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/visibility", nil)

	filters, err := parseFilters(r, testTenant)
	require.NoError(t, err)

	assert.Equal(t, testTenant, filters.Tenant)
	assert.Empty(t, filters.Engine)
	assert.Empty(t, filters.Topic)

	days := filters.Window.End.Sub(filters.Window.Start).Hours() / 24
	assert.InDelta(t, 30, days, 0.01, "default window is the trailing 30 days")
}

func TestParseFiltersExplicitDates(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/visibility?start=2026-08-01&end=2026-08-15", nil)

	filters, err := parseFilters(r, testTenant)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), filters.Window.Start)
	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), filters.Window.End)
}

func TestParseFiltersRejectsInvertedWindow(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/visibility?start=2026-08-15&end=2026-08-01", nil)

	_, err := parseFilters(r, testTenant)

	assert.ErrorIs(t, err, cerrors.ErrInvalidWindow)
}

func TestParseFiltersRejectsGarbageDates(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/visibility?start=not-a-date", nil)

	_, err := parseFilters(r, testTenant)

	assert.Error(t, err)
}

func TestParseFiltersAllSelector(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/visibility?model=All&source=all&topic=Admissions", nil)

	filters, err := parseFilters(r, testTenant)
	require.NoError(t, err)

	assert.Empty(t, filters.Engine, `the UI's "all" means no filter`)
	assert.Empty(t, filters.Source)
	assert.Equal(t, "Admissions", filters.Topic)
}

func TestFilterKeyStable(t *testing.T) {
	f := ports.MentionFilters{Engine: "openai", Topic: "Admissions", Tenant: testTenant}

	assert.Equal(t, filterKey(f), filterKey(f))
	assert.NotEqual(t, filterKey(f), filterKey(ports.MentionFilters{Engine: "serp", Topic: "Admissions", Tenant: testTenant}))
}
