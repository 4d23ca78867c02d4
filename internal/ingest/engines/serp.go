package engines

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

const (
	serpEngineName  = "serp"
	serpResultLimit = 10
)

type serpEngine struct {
	client *resty.Client
	apiKey string
}

type serpResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
		Source  string `json:"source"`
	} `json:"organic_results"`
}

// NewSERP creates a search-results engine backed by a SerpAPI-compatible
// endpoint.
func NewSERP(baseURL, apiKey string) Engine {
	return &serpEngine{
		client: resty.New().SetBaseURL(baseURL),
		apiKey: apiKey,
	}
}

func (e *serpEngine) Name() string {
	return serpEngineName
}

func (e *serpEngine) Fetch(ctx context.Context, prompt string) ([]Answer, error) {
	var parsed serpResponse

	resp, err := e.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":       prompt,
			"api_key": e.apiKey,
			"num":     fmt.Sprintf("%d", serpResultLimit),
		}).
		SetResult(&parsed).
		Get("/search.json")
	if err != nil {
		return nil, fmt.Errorf("serp request: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("serp request: status %d", resp.StatusCode())
	}

	answers := make([]Answer, 0, len(parsed.OrganicResults))

	for _, r := range parsed.OrganicResults {
		if r.Snippet == "" {
			continue
		}

		answers = append(answers, Answer{
			Text:        r.Snippet,
			SourceTitle: r.Title,
			SourceURL:   r.Link,
			Source:      r.Source,
		})
	}

	return answers, nil
}
