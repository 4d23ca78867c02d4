package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/madx-labs/brandpulse/internal/core/domain"
	"github.com/madx-labs/brandpulse/internal/core/ports"
)

const mentionColumns = `m.id, COALESCE(m.prompt_id::text, ''), m.tenant, m.raw_text, m.summary, m.source_title,
	m.source_url, m.structured_tags, m.payload_brands, m.sentiment, m.confidence, m.emotion,
	m.source_engine, m.source, m.created_at`

// ListMentions returns mentions matching the filters, oldest first.
func (db *DB) ListMentions(ctx context.Context, filters ports.MentionFilters) ([]domain.Mention, error) {
	where := []string{"m.created_at >= $1", "m.created_at < $2"}
	args := []any{filters.Window.Start, filters.Window.End.AddDate(0, 0, 1)}

	addFilter := func(column, value string) {
		if value == "" {
			return
		}

		args = append(args, value)
		where = append(where, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	addFilter("m.tenant", filters.Tenant)
	addFilter("m.source_engine", filters.Engine)
	addFilter("m.source", filters.Source)

	query := "SELECT " + mentionColumns + " FROM mentions m"

	if filters.Topic != "" {
		query += " JOIN prompts p ON m.prompt_id = p.id"

		args = append(args, filters.Topic)
		where = append(where, fmt.Sprintf("p.topic = $%d", len(args)))
	}

	query += " WHERE " + strings.Join(where, " AND ") + " ORDER BY m.created_at"

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list mentions: %w", err)
	}
	defer rows.Close()

	var mentions []domain.Mention

	for rows.Next() {
		var m domain.Mention

		if err := rows.Scan(
			&m.ID, &m.QueryID, &m.Tenant, &m.RawText, &m.Summary, &m.SourceTitle, &m.SourceURL,
			&m.StructuredTags, &m.PayloadBrands, &m.Sentiment, &m.Confidence, &m.Emotion,
			&m.SourceEngine, &m.Source, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan mention: %w", err)
		}

		mentions = append(mentions, m)
	}

	return mentions, rows.Err()
}

// SaveMention persists a mention, assigning an ID when absent.
func (db *DB) SaveMention(ctx context.Context, m *domain.Mention) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	var promptID any
	if m.QueryID != "" {
		promptID = m.QueryID
	}

	_, err := db.Pool.Exec(ctx, `
		INSERT INTO mentions (id, prompt_id, tenant, raw_text, summary, source_title, source_url,
			structured_tags, payload_brands, sentiment, confidence, emotion, source_engine, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		m.ID, promptID, m.Tenant, m.RawText, m.Summary, m.SourceTitle, m.SourceURL,
		m.StructuredTags, m.PayloadBrands, m.Sentiment, m.Confidence, m.Emotion,
		m.SourceEngine, m.Source, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save mention: %w", err)
	}

	return nil
}
