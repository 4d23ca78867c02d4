package classify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madx-labs/brandpulse/internal/core/domain"
	"github.com/madx-labs/brandpulse/internal/core/llm"
)

func testWindow() domain.Window {
	return domain.Window{
		Start: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 8, 7, 0, 0, 0, 0, time.UTC),
	}
}

func TestGrouperCachesResults(t *testing.T) {
	mock := llm.NewMock()
	mock.GroupTopicsFn = func(_ context.Context, stats []domain.TopicStat) ([]domain.StrategicGroup, error) {
		return []domain.StrategicGroup{
			{Name: "Reputation", Occurrences: 12, Members: []string{"Brand & Reputation"}},
		}, nil
	}

	g := NewGrouper(newTestClassifier(mock), time.Minute)

	stats := []domain.TopicStat{{Topic: "Brand & Reputation", Count: 12}}

	first, err := g.Group(context.Background(), testTenant, "all|all", testWindow(), stats)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := g.Group(context.Background(), testTenant, "all|all", testWindow(), stats)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Identical requests inside the TTL must not reach the external classifier twice.
	assert.EqualValues(t, 1, mock.GroupCalls())
}

func TestGrouperKeyDiscriminatesFilters(t *testing.T) {
	mock := llm.NewMock()

	g := NewGrouper(newTestClassifier(mock), time.Minute)

	stats := []domain.TopicStat{{Topic: "Campus & Facilities", Count: 3}}

	_, err := g.Group(context.Background(), testTenant, "all|all", testWindow(), stats)
	require.NoError(t, err)

	_, err = g.Group(context.Background(), testTenant, "openai|all", testWindow(), stats)
	require.NoError(t, err)

	otherWindow := testWindow()
	otherWindow.End = otherWindow.End.AddDate(0, 0, 7)

	_, err = g.Group(context.Background(), testTenant, "all|all", otherWindow, stats)
	require.NoError(t, err)

	assert.EqualValues(t, 3, mock.GroupCalls())
}

func TestGrouperNoExternalClassifier(t *testing.T) {
	g := NewGrouper(newTestClassifier(nil), time.Minute)

	_, err := g.Group(context.Background(), testTenant, "all|all", testWindow(), nil)

	assert.Error(t, err)
}
