package db

import (
	"context"
	"fmt"

	"github.com/madx-labs/brandpulse/internal/core/domain"
)

// GetTaxonomy loads a tenant's taxonomy as one immutable snapshot. An empty
// result is returned as an empty snapshot; the caller decides whether to
// substitute defaults.
func (db *DB) GetTaxonomy(ctx context.Context, tenant string) (*domain.TaxonomySnapshot, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT category, COALESCE(keywords, '[]'::jsonb) FROM topic_taxonomy WHERE tenant = $1 ORDER BY category`,
		tenant)
	if err != nil {
		return nil, fmt.Errorf("get taxonomy: %w", err)
	}
	defer rows.Close()

	snap := &domain.TaxonomySnapshot{Tenant: tenant}

	for rows.Next() {
		entry := domain.TaxonomyEntry{Tenant: tenant}

		if err := rows.Scan(&entry.Category, &entry.Keywords); err != nil {
			return nil, fmt.Errorf("scan taxonomy entry: %w", err)
		}

		snap.Categories = append(snap.Categories, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	patternRows, err := db.Pool.Query(ctx,
		`SELECT expr, category, weight FROM topic_patterns WHERE tenant = $1 ORDER BY id`,
		tenant)
	if err != nil {
		return nil, fmt.Errorf("get topic patterns: %w", err)
	}
	defer patternRows.Close()

	for patternRows.Next() {
		var p domain.PhrasePattern

		if err := patternRows.Scan(&p.Expr, &p.Category, &p.Weight); err != nil {
			return nil, fmt.Errorf("scan topic pattern: %w", err)
		}

		snap.Patterns = append(snap.Patterns, p)
	}

	return snap, patternRows.Err()
}

// GetBrandSynonyms loads a tenant's brand synonym table.
func (db *DB) GetBrandSynonyms(ctx context.Context, tenant string) (domain.BrandSynonymTable, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT canonical, COALESCE(synonyms, '[]'::jsonb) FROM brand_synonyms WHERE tenant = $1 ORDER BY canonical`,
		tenant)
	if err != nil {
		return domain.BrandSynonymTable{}, fmt.Errorf("get brand synonyms: %w", err)
	}
	defer rows.Close()

	table := domain.BrandSynonymTable{Tenant: tenant}

	for rows.Next() {
		var b domain.BrandSynonyms

		if err := rows.Scan(&b.Canonical, &b.Synonyms); err != nil {
			return domain.BrandSynonymTable{}, fmt.Errorf("scan brand synonyms: %w", err)
		}

		table.Brands = append(table.Brands, b)
	}

	return table, rows.Err()
}
