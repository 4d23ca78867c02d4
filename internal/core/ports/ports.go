// Package ports provides domain-centric interfaces for external
// dependencies, keeping the engine independent of storage and transport
// concerns.
package ports

import (
	"context"

	"github.com/madx-labs/brandpulse/internal/core/domain"
)

// MentionFilters restrict a mention query. Empty string fields mean "all".
type MentionFilters struct {
	Window domain.Window
	Engine string
	Source string
	Topic  string
	Tenant string
	Brand  string
}

// MentionReader queries stored mentions.
type MentionReader interface {
	ListMentions(ctx context.Context, filters MentionFilters) ([]domain.Mention, error)
}

// MentionWriter persists ingested mentions.
type MentionWriter interface {
	SaveMention(ctx context.Context, m *domain.Mention) error
}

// TaxonomyReader returns the current taxonomy snapshot for a tenant. The
// snapshot is immutable; refreshes produce a new value.
type TaxonomyReader interface {
	GetTaxonomy(ctx context.Context, tenant string) (*domain.TaxonomySnapshot, error)
}

// BrandReader returns a tenant's brand synonym table.
type BrandReader interface {
	GetBrandSynonyms(ctx context.Context, tenant string) (domain.BrandSynonymTable, error)
}

// PromptReader lists the tracked prompts of a tenant.
type PromptReader interface {
	ListPrompts(ctx context.Context, tenant string, activeOnly bool) ([]domain.Prompt, error)
}

// PromptCategoryWriter applies a recategorization decision.
type PromptCategoryWriter interface {
	UpdatePromptCategory(ctx context.Context, id, category string) error
}
