package llm

import (
	"context"
	"sync/atomic"

	"github.com/madx-labs/brandpulse/internal/core/domain"
)

// Mock implements Client for tests and the local dev mode. Behavior is
// overridable per method; each method keeps an invocation counter so tests
// can assert on call counts (cache-hit verification in particular).
type Mock struct {
	ClassifyLabelFn    func(ctx context.Context, text string, candidateLabels []string) (string, error)
	GroupTopicsFn      func(ctx context.Context, stats []domain.TopicStat) ([]domain.StrategicGroup, error)
	AnalyzeSentimentFn func(ctx context.Context, text string) (SentimentResult, error)
	FetchAnswerFn      func(ctx context.Context, prompt string) (string, error)

	classifyCalls  atomic.Int64
	groupCalls     atomic.Int64
	sentimentCalls atomic.Int64
	answerCalls    atomic.Int64
}

// NewMock creates a mock client with neutral defaults.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) ClassifyLabel(ctx context.Context, text string, candidateLabels []string) (string, error) {
	m.classifyCalls.Add(1)

	if m.ClassifyLabelFn != nil {
		return m.ClassifyLabelFn(ctx, text, candidateLabels)
	}

	return LabelUnclassifiable, nil
}

func (m *Mock) GroupTopics(ctx context.Context, stats []domain.TopicStat) ([]domain.StrategicGroup, error) {
	m.groupCalls.Add(1)

	if m.GroupTopicsFn != nil {
		return m.GroupTopicsFn(ctx, stats)
	}

	members := make([]string, 0, len(stats))
	total := 0

	for _, s := range stats {
		members = append(members, s.Topic)
		total += s.Count
	}

	return []domain.StrategicGroup{{Name: "General", Occurrences: total, Members: members}}, nil
}

func (m *Mock) AnalyzeSentiment(ctx context.Context, text string) (SentimentResult, error) {
	m.sentimentCalls.Add(1)

	if m.AnalyzeSentimentFn != nil {
		return m.AnalyzeSentimentFn(ctx, text)
	}

	return SentimentResult{Emotion: "neutral", Confidence: 1}, nil
}

func (m *Mock) FetchAnswer(ctx context.Context, prompt string) (string, error) {
	m.answerCalls.Add(1)

	if m.FetchAnswerFn != nil {
		return m.FetchAnswerFn(ctx, prompt)
	}

	return "", nil
}

// ClassifyCalls returns how many times ClassifyLabel was invoked.
func (m *Mock) ClassifyCalls() int64 { return m.classifyCalls.Load() }

// GroupCalls returns how many times GroupTopics was invoked.
func (m *Mock) GroupCalls() int64 { return m.groupCalls.Load() }

// SentimentCalls returns how many times AnalyzeSentiment was invoked.
func (m *Mock) SentimentCalls() int64 { return m.sentimentCalls.Load() }

// AnswerCalls returns how many times FetchAnswer was invoked.
func (m *Mock) AnswerCalls() int64 { return m.answerCalls.Load() }
