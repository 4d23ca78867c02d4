package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/madx-labs/brandpulse/internal/core/domain"
	cerrors "github.com/madx-labs/brandpulse/internal/core/errors"
	"github.com/madx-labs/brandpulse/internal/platform/config"
	"github.com/madx-labs/brandpulse/internal/platform/observability"
)

const (
	circuitBreakerThreshold = 5
	circuitBreakerTimeout   = time.Minute
	rateLimiterBurst        = 5
	classifyTemperature     = 0.2
	sentimentTemperature    = 0.1
	answerTemperature       = 0.3
	answerMaxTokens         = 1024
)

type openaiClient struct {
	cfg         *config.Config
	client      *openai.Client
	logger      *zerolog.Logger
	rateLimiter *rate.Limiter

	consecutiveFailures int
	circuitOpenUntil    time.Time
	mu                  sync.Mutex
}

// NewOpenAI creates the OpenAI-backed external classifier client.
func NewOpenAI(cfg *config.Config, logger *zerolog.Logger) Client {
	return &openaiClient{
		cfg:         cfg,
		client:      openai.NewClient(cfg.LLMAPIKey),
		logger:      logger,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(cfg.LLMRateLimitRPS)), rateLimiterBurst),
	}
}

func (c *openaiClient) checkCircuit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if time.Now().Before(c.circuitOpenUntil) {
		return fmt.Errorf("%w until %v", cerrors.ErrCircuitBreakerOpen, c.circuitOpenUntil)
	}

	return nil
}

func (c *openaiClient) recordSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.consecutiveFailures = 0
}

func (c *openaiClient) recordFailure() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.consecutiveFailures++
	if c.consecutiveFailures >= circuitBreakerThreshold {
		c.circuitOpenUntil = time.Now().Add(circuitBreakerTimeout)
		c.logger.Warn().
			Int("consecutive_failures", c.consecutiveFailures).
			Time("open_until", c.circuitOpenUntil).
			Msg("Circuit breaker opened")
	}
}

func (c *openaiClient) complete(ctx context.Context, prompt string, temperature float32, jsonMode bool) (string, error) {
	if err := c.checkCircuit(); err != nil {
		return "", err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	req := openai.ChatCompletionRequest{
		Model:       c.cfg.LLMModel,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, req)

	observability.ExternalClassifierDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		c.recordFailure()
		observability.ExternalClassifierRequests.WithLabelValues(observability.StatusError).Inc()

		return "", fmt.Errorf("%w: %v", cerrors.ErrExternalUnavailable, err)
	}

	c.recordSuccess()
	observability.ExternalClassifierRequests.WithLabelValues(observability.StatusOK).Inc()

	if len(resp.Choices) == 0 {
		return "", cerrors.ErrMalformedResponse
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *openaiClient) ClassifyLabel(ctx context.Context, text string, candidateLabels []string) (string, error) {
	prompt := fmt.Sprintf(classifyPromptTemplate, "- "+strings.Join(candidateLabels, "\n- "), text)

	content, err := c.complete(ctx, prompt, classifyTemperature, true)
	if err != nil {
		return "", err
	}

	var parsed struct {
		Category string `json:"category"`
	}

	if err := json.Unmarshal([]byte(extractJSON(content)), &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", cerrors.ErrMalformedResponse, err)
	}

	if strings.TrimSpace(parsed.Category) == "" {
		return "", cerrors.ErrMalformedResponse
	}

	return strings.TrimSpace(parsed.Category), nil
}

func (c *openaiClient) GroupTopics(ctx context.Context, stats []domain.TopicStat) ([]domain.StrategicGroup, error) {
	var sb strings.Builder

	for _, s := range stats {
		fmt.Fprintf(&sb, "- %s | %d | %.2f\n", s.Topic, s.Count, s.AvgSentiment)
	}

	content, err := c.complete(ctx, fmt.Sprintf(groupTopicsPromptTemplate, maxStrategicGroups, sb.String()), classifyTemperature, false)
	if err != nil {
		return nil, err
	}

	var parsed []struct {
		Group            string   `json:"group"`
		AvgSentiment     float64  `json:"avg_sentiment"`
		TotalOccurrences int      `json:"total_occurrences"`
		Members          []string `json:"members"`
	}

	if err := json.Unmarshal([]byte(extractJSON(content)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", cerrors.ErrMalformedResponse, err)
	}

	groups := make([]domain.StrategicGroup, 0, len(parsed))
	for _, g := range parsed {
		groups = append(groups, domain.StrategicGroup{
			Name:         g.Group,
			AvgSentiment: g.AvgSentiment,
			Occurrences:  g.TotalOccurrences,
			Members:      g.Members,
		})
	}

	return groups, nil
}

func (c *openaiClient) AnalyzeSentiment(ctx context.Context, text string) (SentimentResult, error) {
	content, err := c.complete(ctx, fmt.Sprintf(sentimentPromptTemplate, text), sentimentTemperature, true)
	if err != nil {
		return SentimentResult{}, err
	}

	var res SentimentResult
	if err := json.Unmarshal([]byte(extractJSON(content)), &res); err != nil {
		return SentimentResult{}, fmt.Errorf("%w: %v", cerrors.ErrMalformedResponse, err)
	}

	res.Sentiment = clampRange(res.Sentiment, -1, 1)
	res.Confidence = clampRange(res.Confidence, 0, 1)

	return res, nil
}

func (c *openaiClient) FetchAnswer(ctx context.Context, prompt string) (string, error) {
	if err := c.checkCircuit(); err != nil {
		return "", err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.LLMModel,
		Temperature: answerTemperature,
		MaxTokens:   answerMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		c.recordFailure()

		return "", fmt.Errorf("%w: %v", cerrors.ErrExternalUnavailable, err)
	}

	c.recordSuccess()

	if len(resp.Choices) == 0 {
		return "", cerrors.ErrMalformedResponse
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
