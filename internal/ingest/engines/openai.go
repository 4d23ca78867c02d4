package engines

import (
	"context"

	"github.com/madx-labs/brandpulse/internal/core/llm"
)

const openaiEngineName = "openai"

type openaiEngine struct {
	client llm.Client
}

// NewOpenAI wraps the answer engine as a mention source: the model's answer
// to a tracked prompt is itself the text to monitor.
func NewOpenAI(client llm.Client) Engine {
	return &openaiEngine{client: client}
}

func (e *openaiEngine) Name() string {
	return openaiEngineName
}

func (e *openaiEngine) Fetch(ctx context.Context, prompt string) ([]Answer, error) {
	text, err := e.client.FetchAnswer(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if text == "" {
		return nil, nil
	}

	return []Answer{{Text: text, Source: openaiEngineName}}, nil
}
