package classify

import (
	"context"
	"fmt"
	"time"

	"github.com/madx-labs/brandpulse/internal/core/cache"
	"github.com/madx-labs/brandpulse/internal/core/domain"
	"github.com/madx-labs/brandpulse/internal/platform/observability"
)

// Grouper buckets per-topic statistics into strategic groups via the
// external classifier, caching results per (tenant, filter set, window) so
// dashboard refreshes inside the TTL do not trigger new external calls.
type Grouper struct {
	classifier *Classifier
	results    *cache.Cache[string, []domain.StrategicGroup]
}

// NewGrouper creates a grouper with the given result TTL.
func NewGrouper(classifier *Classifier, ttl time.Duration) *Grouper {
	return &Grouper{
		classifier: classifier,
		results:    cache.New[string, []domain.StrategicGroup](ttl),
	}
}

// GroupKey derives the cache key for a grouping request.
func GroupKey(tenant, filterKey string, window domain.Window) string {
	return fmt.Sprintf("%s|%s|%s|%s",
		tenant, filterKey,
		window.Start.Format("2006-01-02"), window.End.Format("2006-01-02"))
}

// Group returns the strategic grouping for the given topic statistics. A
// fresh cached result is returned without an external call; a miss computes,
// stores, and returns.
func (g *Grouper) Group(ctx context.Context, tenant, filterKey string, window domain.Window, stats []domain.TopicStat) ([]domain.StrategicGroup, error) {
	key := GroupKey(tenant, filterKey, window)

	if groups, ok := g.results.Get(key); ok {
		observability.ClassificationCacheHits.Inc()

		return groups, nil
	}

	observability.ClassificationCacheMisses.Inc()

	if g.classifier == nil || g.classifier.external == nil {
		return nil, fmt.Errorf("strategic grouping: no external classifier configured")
	}

	if err := g.classifier.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer g.classifier.sem.Release(1)

	callCtx, cancel := context.WithTimeout(ctx, g.classifier.timeout)
	defer cancel()

	groups, err := g.classifier.external.GroupTopics(callCtx, stats)
	if err != nil {
		return nil, err
	}

	g.results.Set(key, groups)

	return groups, nil
}
