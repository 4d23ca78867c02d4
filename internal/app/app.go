// Package app provides the application bootstrap and runtime orchestration.
//
// The App type wires together all dependencies and exposes methods to run
// the operational modes:
//
//   - Server mode: HTTP API plus the periodic taxonomy refresher
//   - Poller mode: scheduled ingestion from the answer/search engines
//   - Recategorize mode: one-shot corpus reclassification
package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/madx-labs/brandpulse/internal/api"
	"github.com/madx-labs/brandpulse/internal/core/classify"
	"github.com/madx-labs/brandpulse/internal/core/llm"
	"github.com/madx-labs/brandpulse/internal/core/recat"
	"github.com/madx-labs/brandpulse/internal/ingest/engines"
	"github.com/madx-labs/brandpulse/internal/ingest/poller"
	"github.com/madx-labs/brandpulse/internal/platform/config"
	"github.com/madx-labs/brandpulse/internal/platform/observability"
	"github.com/madx-labs/brandpulse/internal/platform/worker"
	db "github.com/madx-labs/brandpulse/internal/storage"
)

const llmAPIKeyMock = "mock"

// App holds the application dependencies and provides methods to run
// different modes.
type App struct {
	cfg      *config.Config
	database *db.DB
	logger   *zerolog.Logger

	llmClient  llm.Client
	classifier *classify.Classifier
	grouper    *classify.Grouper
	snapshots  *classify.SnapshotHolder
}

// New creates an App instance and its shared services.
func New(cfg *config.Config, database *db.DB, logger *zerolog.Logger) *App {
	var llmClient llm.Client
	if cfg.LLMAPIKey == llmAPIKeyMock {
		llmClient = llm.NewMock()

		logger.Warn().Msg("LLM_API_KEY=mock, external classifier is stubbed")
	} else {
		llmClient = llm.NewOpenAI(cfg, logger)
	}

	classifier := classify.New(llmClient, cfg.ExternalMaxConcurrent, cfg.ExternalTimeout, logger)

	return &App{
		cfg:        cfg,
		database:   database,
		logger:     logger,
		llmClient:  llmClient,
		classifier: classifier,
		grouper:    classify.NewGrouper(classifier, cfg.StrategicCacheTTL),
		snapshots:  classify.NewSnapshotHolder(classify.DefaultSnapshot(cfg.DefaultTenant)),
	}
}

// StartHealthServer starts the health check and metrics server.
func (a *App) StartHealthServer(ctx context.Context) error {
	return observability.NewServer(a.database, a.cfg.HealthPort, a.logger).Start(ctx)
}

// RunServer runs the HTTP API with a background taxonomy refresher.
func (a *App) RunServer(ctx context.Context) error {
	a.refreshTaxonomy(ctx)

	go func() {
		err := worker.Loop(ctx, worker.Config{
			Name:         "taxonomy-refresher",
			PollInterval: a.cfg.TaxonomyRefreshInterval,
			Process: func(ctx context.Context) error {
				a.refreshTaxonomy(ctx)

				return nil
			},
			Logger: a.logger,
		})
		if err != nil {
			a.logger.Debug().Err(err).Msg("taxonomy refresher exited")
		}
	}()

	server := api.NewServer(
		a.cfg,
		a.database,
		a.classifier,
		a.grouper,
		recat.New(a.classifier, a.database, a.logger),
		a.snapshots,
		a.logger,
	)

	return server.Start(ctx)
}

// RunPoller runs the scheduled ingestion.
func (a *App) RunPoller(ctx context.Context) error {
	engineList := []engines.Engine{engines.NewOpenAI(a.llmClient)}

	if a.cfg.SerpAPIKey != "" {
		engineList = append(engineList, engines.NewSERP(a.cfg.SerpAPIBaseURL, a.cfg.SerpAPIKey))
	}

	if len(a.cfg.NewsFeedURLs) > 0 {
		engineList = append(engineList, engines.NewRSS(a.cfg.NewsFeedURLs))
	}

	return poller.New(a.cfg, engineList, a.database, a.database, a.llmClient, a.logger).Run(ctx)
}

// RunRecategorize executes one recategorization batch and logs the report.
func (a *App) RunRecategorize(ctx context.Context, dryRun bool) error {
	a.refreshTaxonomy(ctx)

	corpus, err := a.database.ListPrompts(ctx, a.cfg.DefaultTenant, false)
	if err != nil {
		return err
	}

	recategorizer := recat.New(a.classifier, a.database, a.logger)
	report := recategorizer.Run(ctx, corpus, a.snapshots.Current(), dryRun)

	a.logger.Info().
		Bool("dry_run", dryRun).
		Int("updated", report.Updated).
		Int("unchanged", report.Unchanged).
		Int("unclassifiable", report.Unclassifiable).
		Int("failed", report.Failed).
		Msg("recategorization finished")

	for _, change := range report.Changes {
		a.logger.Info().
			Str("prompt_id", change.ID).
			Str("old", change.Old).
			Str("new", change.New).
			Msg("category change")
	}

	return nil
}

// refreshTaxonomy swaps in the latest stored taxonomy snapshot, falling back
// to the built-in taxonomy when the tenant has not configured one.
func (a *App) refreshTaxonomy(ctx context.Context) {
	snap, err := a.database.GetTaxonomy(ctx, a.cfg.DefaultTenant)
	if err != nil {
		a.logger.Warn().Err(err).Msg("taxonomy refresh failed, keeping current snapshot")

		return
	}

	if snap.Empty() {
		snap = classify.DefaultSnapshot(a.cfg.DefaultTenant)
	} else if len(snap.Patterns) == 0 {
		// Stored taxonomies without phrase patterns still get the built-in ones.
		snap.Patterns = classify.DefaultSnapshot(a.cfg.DefaultTenant).Patterns
	}

	a.snapshots.Swap(snap)
}
