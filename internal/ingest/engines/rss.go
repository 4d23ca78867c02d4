package engines

import (
	"context"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/madx-labs/brandpulse/internal/core/textnorm"
)

const (
	rssEngineName     = "rss"
	rssItemsPerFeed   = 25
	rssMinTokenLength = 4
)

type rssEngine struct {
	parser   *gofeed.Parser
	feedURLs []string
}

// NewRSS creates a news engine that scans configured feeds for items
// matching the prompt.
func NewRSS(feedURLs []string) Engine {
	return &rssEngine{parser: gofeed.NewParser(), feedURLs: feedURLs}
}

func (e *rssEngine) Name() string {
	return rssEngineName
}

func (e *rssEngine) Fetch(ctx context.Context, prompt string) ([]Answer, error) {
	promptTokens := significantTokens(prompt)
	if len(promptTokens) == 0 {
		return nil, nil
	}

	var answers []Answer

	for _, url := range e.feedURLs {
		feed, err := e.parser.ParseURLWithContext(url, ctx)
		if err != nil {
			// One unreachable feed must not sink the others.
			continue
		}

		items := feed.Items
		if len(items) > rssItemsPerFeed {
			items = items[:rssItemsPerFeed]
		}

		for _, item := range items {
			text := item.Title + " " + item.Description
			if !matchesAny(textnorm.Normalize(text), promptTokens) {
				continue
			}

			answers = append(answers, Answer{
				Text:        item.Description,
				SourceTitle: item.Title,
				SourceURL:   item.Link,
				Source:      feed.Title,
			})
		}
	}

	return answers, nil
}

func significantTokens(prompt string) []string {
	var tokens []string

	for t := range textnorm.Tokenize(prompt) {
		if len(t) >= rssMinTokenLength {
			tokens = append(tokens, t)
		}
	}

	return tokens
}

func matchesAny(normalizedText string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(normalizedText, t) {
			return true
		}
	}

	return false
}
