package insights

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madx-labs/brandpulse/internal/core/brands"
	"github.com/madx-labs/brandpulse/internal/core/classify"
	"github.com/madx-labs/brandpulse/internal/core/domain"
)

func TestAttributePreservesOrder(t *testing.T) {
	classifier := classify.New(nil, 2, time.Second, nil)
	snap := classify.DefaultSnapshot("the-core-school")
	table := brands.DefaultSynonymTable("the-core-school")

	mentions := []domain.Mention{
		{ID: "m1", RawText: "Admisiones: requisitos y plazos en The Core School"},
		{ID: "m2", RawText: "Visita al campus: instalaciones y laboratorios"},
		{ID: "m3", RawText: "Alumni de u-tad: testimonios y trayectorias"},
	}

	out, err := Attribute(context.Background(), mentions, classifier, snap, table, 2)
	require.NoError(t, err)
	require.Len(t, out, 3)

	// Results line up with the input regardless of which worker finished first.
	assert.Equal(t, "m1", out[0].ID)
	assert.Equal(t, "Admissions & Enrollment", out[0].Category)
	assert.Equal(t, []string{"The Core School"}, out[0].Brands)

	assert.Equal(t, "m2", out[1].ID)
	assert.Equal(t, "Campus & Facilities", out[1].Category)
	assert.Empty(t, out[1].Brands)

	assert.Equal(t, "m3", out[2].ID)
	assert.Equal(t, "Alumni & Success Stories", out[2].Category)
	assert.Equal(t, []string{"U-TAD"}, out[2].Brands)
}

func TestAttributeEmptyBatch(t *testing.T) {
	classifier := classify.New(nil, 1, time.Second, nil)

	out, err := Attribute(context.Background(), nil, classifier, classify.DefaultSnapshot("t"), domain.BrandSynonymTable{}, 0)
	require.NoError(t, err)

	assert.Empty(t, out)
}

func TestAttributeCanceledContext(t *testing.T) {
	classifier := classify.New(nil, 1, time.Second, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Attribute(ctx, []domain.Mention{{RawText: "texto"}}, classifier, classify.DefaultSnapshot("t"), domain.BrandSynonymTable{}, 1)

	assert.Error(t, err)
}
