// Package poller runs the scheduled ingestion: for every active prompt it
// fans out to the configured engines, scores sentiment, and persists the
// resulting mentions. Nothing in the data model orders mentions, so the
// fan-out is a bounded worker pool rather than a serial loop.
package poller

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/madx-labs/brandpulse/internal/core/domain"
	"github.com/madx-labs/brandpulse/internal/core/llm"
	"github.com/madx-labs/brandpulse/internal/core/ports"
	"github.com/madx-labs/brandpulse/internal/ingest/engines"
	"github.com/madx-labs/brandpulse/internal/platform/config"
	"github.com/madx-labs/brandpulse/internal/platform/observability"
)

// Poller schedules and executes ingestion runs.
type Poller struct {
	cfg      *config.Config
	engines  []engines.Engine
	prompts  ports.PromptReader
	mentions ports.MentionWriter
	llm      llm.Client
	logger   *zerolog.Logger
}

// New creates a poller over the given engines.
func New(
	cfg *config.Config,
	engineList []engines.Engine,
	prompts ports.PromptReader,
	mentions ports.MentionWriter,
	llmClient llm.Client,
	logger *zerolog.Logger,
) *Poller {
	return &Poller{
		cfg:      cfg,
		engines:  engineList,
		prompts:  prompts,
		mentions: mentions,
		llm:      llmClient,
		logger:   logger,
	}
}

// Run blocks, executing polls on the configured cron schedule until the
// context is canceled.
func (p *Poller) Run(ctx context.Context) error {
	c := cron.New()

	_, err := c.AddFunc(p.cfg.PollSchedule, func() {
		if err := p.Poll(ctx); err != nil {
			p.logger.Error().Err(err).Msg("poll run failed")
		}
	})
	if err != nil {
		return err
	}

	p.logger.Info().Str("schedule", p.cfg.PollSchedule).Msg("ingestion poller starting")

	c.Start()

	<-ctx.Done()

	<-c.Stop().Done()

	return ctx.Err()
}

// Poll executes one ingestion run over all active prompts.
func (p *Poller) Poll(ctx context.Context) error {
	prompts, err := p.prompts.ListPrompts(ctx, p.cfg.DefaultTenant, true)
	if err != nil {
		observability.PollRuns.WithLabelValues(observability.StatusError).Inc()

		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(int(p.cfg.PollConcurrency))

	for _, prompt := range prompts {
		for _, engine := range p.engines {
			prompt, engine := prompt, engine

			g.Go(func() error {
				p.pollOne(gctx, prompt, engine)

				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		observability.PollRuns.WithLabelValues(observability.StatusError).Inc()

		return err
	}

	observability.PollRuns.WithLabelValues(observability.StatusOK).Inc()

	return nil
}

// pollOne fetches and stores mentions for one (prompt, engine) pair. Engine
// failures are logged and dropped: a degraded engine must not abort the run.
func (p *Poller) pollOne(ctx context.Context, prompt domain.Prompt, engine engines.Engine) {
	callCtx, cancel := context.WithTimeout(ctx, p.cfg.PollTimeout)
	defer cancel()

	answers, err := engine.Fetch(callCtx, prompt.Text)
	if err != nil {
		p.logger.Warn().Err(err).
			Str("engine", engine.Name()).
			Str("prompt_id", prompt.ID).
			Msg("engine fetch failed")

		return
	}

	for _, answer := range answers {
		mention := domain.Mention{
			QueryID:      prompt.ID,
			Tenant:       prompt.Tenant,
			RawText:      answer.Text,
			SourceTitle:  answer.SourceTitle,
			SourceURL:    answer.SourceURL,
			Source:       answer.Source,
			SourceEngine: engine.Name(),
			CreatedAt:    time.Now().UTC(),
		}

		p.scoreSentiment(callCtx, &mention)

		if err := p.mentions.SaveMention(ctx, &mention); err != nil {
			p.logger.Error().Err(err).Str("engine", engine.Name()).Msg("failed to save mention")

			continue
		}

		observability.MentionsIngested.WithLabelValues(engine.Name()).Inc()
	}
}

// scoreSentiment fills in sentiment fields, degrading to neutral with zero
// confidence when the external analyzer is unavailable.
func (p *Poller) scoreSentiment(ctx context.Context, m *domain.Mention) {
	res, err := p.llm.AnalyzeSentiment(ctx, m.RawText)
	if err != nil {
		p.logger.Debug().Err(err).Msg("sentiment analysis failed, storing neutral")

		m.Emotion = "neutral"

		return
	}

	m.Sentiment = res.Sentiment
	m.Confidence = res.Confidence
	m.Emotion = res.Emotion
}
