// Package mocks provides thread-safe in-memory implementations of the ports
// interfaces for tests.
package mocks

import (
	"context"
	"sync"

	"github.com/madx-labs/brandpulse/internal/core/domain"
	"github.com/madx-labs/brandpulse/internal/core/ports"
)

// MentionStore is an in-memory MentionReader/MentionWriter.
type MentionStore struct {
	mu       sync.RWMutex
	mentions []domain.Mention
}

// NewMentionStore creates a store seeded with the given mentions.
func NewMentionStore(mentions ...domain.Mention) *MentionStore {
	return &MentionStore{mentions: mentions}
}

func (s *MentionStore) ListMentions(_ context.Context, filters ports.MentionFilters) ([]domain.Mention, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Mention, 0, len(s.mentions))

	for _, m := range s.mentions {
		if m.CreatedAt.Before(filters.Window.Start) || m.CreatedAt.After(filters.Window.End.AddDate(0, 0, 1)) {
			continue
		}

		if filters.Engine != "" && m.SourceEngine != filters.Engine {
			continue
		}

		if filters.Source != "" && m.Source != filters.Source {
			continue
		}

		if filters.Tenant != "" && m.Tenant != filters.Tenant {
			continue
		}

		out = append(out, m)
	}

	return out, nil
}

func (s *MentionStore) SaveMention(_ context.Context, m *domain.Mention) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mentions = append(s.mentions, *m)

	return nil
}

// Len returns the number of stored mentions.
func (s *MentionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.mentions)
}

// PromptStore is an in-memory PromptReader/PromptCategoryWriter. Writes can
// be forced to fail per prompt ID to exercise partial-failure paths.
type PromptStore struct {
	mu      sync.RWMutex
	prompts map[string]domain.Prompt
	order   []string
	FailIDs map[string]error
	Writes  int
}

// NewPromptStore creates a store seeded with the given prompts.
func NewPromptStore(prompts ...domain.Prompt) *PromptStore {
	s := &PromptStore{prompts: make(map[string]domain.Prompt), FailIDs: make(map[string]error)}
	for _, p := range prompts {
		s.prompts[p.ID] = p
		s.order = append(s.order, p.ID)
	}

	return s
}

func (s *PromptStore) ListPrompts(_ context.Context, tenant string, activeOnly bool) ([]domain.Prompt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Prompt, 0, len(s.order))

	for _, id := range s.order {
		p := s.prompts[id]
		if tenant != "" && p.Tenant != tenant {
			continue
		}

		if activeOnly && !p.Active {
			continue
		}

		out = append(out, p)
	}

	return out, nil
}

func (s *PromptStore) UpdatePromptCategory(_ context.Context, id, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := s.FailIDs[id]; ok {
		return err
	}

	p, ok := s.prompts[id]
	if !ok {
		return errNotFound
	}

	p.Category = category
	s.prompts[id] = p
	s.Writes++

	return nil
}

// Category returns the stored category of a prompt.
func (s *PromptStore) Category(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.prompts[id].Category
}
