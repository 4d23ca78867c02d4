// Package llm wraps the external answer/classification engine. The engine is
// a collaborator: every method can fail and callers are expected to degrade
// to their rule-based path when it does.
package llm

import (
	"context"

	"github.com/madx-labs/brandpulse/internal/core/domain"
)

// LabelUnclassifiable is the sentinel the external classifier returns when it
// cannot place a text into any candidate label.
const LabelUnclassifiable = "Unclassifiable"

// SentimentResult is the outcome of scoring one text.
type SentimentResult struct {
	Sentiment  float64 `json:"sentiment"`
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
}

// Client is the external classifier boundary. Transport, prompt format and
// model identity are implementation details.
type Client interface {
	// ClassifyLabel asks for one of candidateLabels verbatim, a novel label,
	// or LabelUnclassifiable.
	ClassifyLabel(ctx context.Context, text string, candidateLabels []string) (string, error)

	// GroupTopics buckets topic statistics into a small set of strategic groups.
	GroupTopics(ctx context.Context, stats []domain.TopicStat) ([]domain.StrategicGroup, error)

	// AnalyzeSentiment scores a text in [-1, 1] with an emotion tag and
	// confidence.
	AnalyzeSentiment(ctx context.Context, text string) (SentimentResult, error)

	// FetchAnswer sends a raw prompt to the answer engine and returns the
	// model's text. Used by the ingestion poller, not by classification.
	FetchAnswer(ctx context.Context, prompt string) (string, error)
}
