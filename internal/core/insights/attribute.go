package insights

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/madx-labs/brandpulse/internal/core/brands"
	"github.com/madx-labs/brandpulse/internal/core/classify"
	"github.com/madx-labs/brandpulse/internal/core/domain"
)

// Attribute classifies and brand-attributes a batch of mentions. Mentions are
// independent, so the batch is parallelized and results are merged by index;
// ordering is preserved.
func Attribute(
	ctx context.Context,
	mentions []domain.Mention,
	classifier *classify.Classifier,
	snap *domain.TaxonomySnapshot,
	table domain.BrandSynonymTable,
	parallelism int,
) ([]AttributedMention, error) {
	if parallelism < 1 {
		parallelism = 1
	}

	out := make([]AttributedMention, len(mentions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, m := range mentions {
		i, m := i, m

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res := classifier.Classify(gctx, "", m.RawText, snap, classify.Options{})

			out[i] = AttributedMention{
				Mention:  m,
				Category: res.Category,
				Brands:   brands.Detect(m, table),
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
