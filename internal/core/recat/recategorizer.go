// Package recat walks an existing prompt corpus, reclassifies every item
// against the current taxonomy, and reports (and optionally applies) the
// drift. A failing item is counted and skipped; the batch never aborts.
package recat

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/madx-labs/brandpulse/internal/core/classify"
	"github.com/madx-labs/brandpulse/internal/core/domain"
	"github.com/madx-labs/brandpulse/internal/core/ports"
	"github.com/madx-labs/brandpulse/internal/platform/observability"
)

// Change records one category move.
type Change struct {
	ID  string
	Old string
	New string
}

// Report summarizes one recategorization run.
type Report struct {
	Updated        int
	Unchanged      int
	Unclassifiable int
	Failed         int
	Changes        []Change
}

// Recategorizer reclassifies a prompt corpus.
type Recategorizer struct {
	classifier *classify.Classifier
	writer     ports.PromptCategoryWriter
	logger     *zerolog.Logger
}

// New creates a recategorizer. The writer is only used when dryRun is false.
func New(classifier *classify.Classifier, writer ports.PromptCategoryWriter, logger *zerolog.Logger) *Recategorizer {
	return &Recategorizer{classifier: classifier, writer: writer, logger: logger}
}

// Run reclassifies every corpus item with the given snapshot. With dryRun
// the corpus is never mutated; the report shows what would change. A
// per-item write failure increments Failed and the batch continues.
func (r *Recategorizer) Run(ctx context.Context, corpus []domain.Prompt, snap *domain.TaxonomySnapshot, dryRun bool) Report {
	report := Report{}

	for _, item := range corpus {
		if err := ctx.Err(); err != nil {
			// Remaining items count as failed so totals stay accountable.
			report.Failed += len(corpus) - report.Updated - report.Unchanged - report.Unclassifiable - report.Failed

			break
		}

		res := r.classifier.Classify(ctx, item.Topic, item.Text, snap, classify.Options{})

		if res.Category == domain.CategoryUncategorized {
			report.Unclassifiable++

			observability.RecategorizeChanges.WithLabelValues(observability.RecatUnclassifiable).Inc()

			continue
		}

		if res.Category == item.Category {
			report.Unchanged++

			observability.RecategorizeChanges.WithLabelValues(observability.RecatUnchanged).Inc()

			continue
		}

		if !dryRun {
			if err := r.writer.UpdatePromptCategory(ctx, item.ID, res.Category); err != nil {
				report.Failed++

				observability.RecategorizeChanges.WithLabelValues(observability.RecatFailed).Inc()

				if r.logger != nil {
					r.logger.Warn().Err(err).Str("prompt_id", item.ID).Msg("recategorization write failed, skipping item")
				}

				continue
			}
		}

		report.Updated++
		report.Changes = append(report.Changes, Change{ID: item.ID, Old: item.Category, New: res.Category})

		observability.RecategorizeChanges.WithLabelValues(observability.RecatUpdated).Inc()
	}

	return report
}
