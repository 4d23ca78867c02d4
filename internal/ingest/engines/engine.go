// Package engines implements the external answer and search engines the
// poller queries for brand mentions. Each engine turns one tracked prompt
// into zero or more raw answers.
package engines

import "context"

// Answer is one raw engine response before it becomes a mention.
type Answer struct {
	Text        string
	SourceTitle string
	SourceURL   string
	Source      string
}

// Engine fetches answers for a prompt from one upstream service.
type Engine interface {
	// Name identifies the engine in stored mentions and metrics.
	Name() string

	// Fetch returns the engine's answers for the prompt.
	Fetch(ctx context.Context, prompt string) ([]Answer, error)
}
