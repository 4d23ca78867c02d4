package db

import (
	"context"
	"fmt"

	"github.com/madx-labs/brandpulse/internal/core/domain"
	cerrors "github.com/madx-labs/brandpulse/internal/core/errors"
)

// ListPrompts returns a tenant's tracked prompts, oldest first.
func (db *DB) ListPrompts(ctx context.Context, tenant string, activeOnly bool) ([]domain.Prompt, error) {
	query := `SELECT id, tenant, topic, prompt_text, category, active, created_at
		FROM prompts WHERE tenant = $1`
	if activeOnly {
		query += " AND active"
	}

	query += " ORDER BY created_at"

	rows, err := db.Pool.Query(ctx, query, tenant)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	defer rows.Close()

	var prompts []domain.Prompt

	for rows.Next() {
		var p domain.Prompt

		if err := rows.Scan(&p.ID, &p.Tenant, &p.Topic, &p.Text, &p.Category, &p.Active, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}

		prompts = append(prompts, p)
	}

	return prompts, rows.Err()
}

// UpdatePromptCategory applies one recategorization decision.
func (db *DB) UpdatePromptCategory(ctx context.Context, id, category string) error {
	tag, err := db.Pool.Exec(ctx, `UPDATE prompts SET category = $2 WHERE id = $1`, id, category)
	if err != nil {
		return fmt.Errorf("update prompt category: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("prompt %s: %w", id, cerrors.ErrNotFound)
	}

	return nil
}
