package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madx-labs/brandpulse/internal/core/classify"
	"github.com/madx-labs/brandpulse/internal/core/domain"
	"github.com/madx-labs/brandpulse/internal/core/llm"
	"github.com/madx-labs/brandpulse/internal/core/ports/mocks"
	"github.com/madx-labs/brandpulse/internal/core/recat"
	"github.com/madx-labs/brandpulse/internal/platform/config"
)

// testStore combines the in-memory mention and prompt stores behind the API's
// Store interface.
type testStore struct {
	*mocks.MentionStore
	*mocks.PromptStore
}

func (testStore) GetBrandSynonyms(context.Context, string) (domain.BrandSynonymTable, error) {
	return domain.BrandSynonymTable{}, nil // the built-in table takes over
}

func testServerConfig() *config.Config {
	return &config.Config{
		DefaultTenant:          testTenant,
		DefaultBrand:           "The Core School",
		ExternalTimeout:        time.Second,
		ExternalMaxConcurrent:  2,
		StrategicCacheTTL:      time.Minute,
		PollConcurrency:        2,
		SentimentMinConfidence: 0.6,
		SentimentTopN:          20,
	}
}

func testMention(day int, text string, sentiment float64) domain.Mention {
	return domain.Mention{
		Tenant:     testTenant,
		RawText:    text,
		Sentiment:  sentiment,
		Confidence: 0.9,
		CreatedAt:  time.Date(2026, 8, day, 12, 0, 0, 0, time.UTC),
	}
}

func newTestServer(t *testing.T, mentions ...domain.Mention) *Server {
	t.Helper()

	cfg := testServerConfig()
	logger := zerolog.Nop()

	classifier := classify.New(llm.NewMock(), cfg.ExternalMaxConcurrent, cfg.ExternalTimeout, &logger)

	store := testStore{
		MentionStore: mocks.NewMentionStore(mentions...),
		PromptStore: mocks.NewPromptStore(domain.Prompt{
			ID:       "p1",
			Tenant:   testTenant,
			Topic:    "Admisiones",
			Text:     "Proceso de admisiones: requisitos, plazos y solicitud",
			Category: "Digital Trends & Marketing",
		}),
	}

	return NewServer(
		cfg,
		store,
		classifier,
		classify.NewGrouper(classifier, cfg.StrategicCacheTTL),
		recat.New(classifier, store.PromptStore, &logger),
		classify.NewSnapshotHolder(classify.DefaultSnapshot(testTenant)),
		&logger,
	)
}

func doRequest(t *testing.T, s *Server, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()

	s.Router().ServeHTTP(rec, req)

	payload := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	}

	return rec, payload
}

func TestHandleVisibility(t *testing.T) {
	s := newTestServer(t,
		testMention(1, "The Core School encabeza el ranking de escuelas", 0.5),
		testMention(1, "Otra escuela cualquiera abre matrícula", 0),
		testMention(2, "Reportaje sobre the core school y su campus", 0.2),
		testMention(2, "Noticias del sector audiovisual", 0),
	)

	rec, payload := doRequest(t, s, http.MethodGet, "/api/visibility?start=2026-08-01&end=2026-08-02", "")

	require.Equal(t, http.StatusOK, rec.Code)

	assert.InDelta(t, 50.0, payload["visibility_score"], 1e-9)

	series, ok := payload["series"].([]any)
	require.True(t, ok)
	assert.Len(t, series, 2, "series is zero-filled over the window")
}

func TestHandleVisibilityInvalidWindow(t *testing.T) {
	s := newTestServer(t)

	rec, payload := doRequest(t, s, http.MethodGet, "/api/visibility?start=2026-08-10&end=2026-08-01", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, payload, "error")
}

func TestHandleRanking(t *testing.T) {
	s := newTestServer(t,
		testMention(1, "The Core School presenta su nuevo grado", 0.4),
		testMention(1, "U-TAD organiza una jornada de puertas abiertas", 0.1),
		testMention(2, "Entrevista en the core school", 0.3),
	)

	rec, payload := doRequest(t, s, http.MethodGet, "/api/industry/ranking?start=2026-08-01&end=2026-08-02", "")

	require.Equal(t, http.StatusOK, rec.Code)

	overall, ok := payload["overall_ranking"].([]any)
	require.True(t, ok)
	require.Len(t, overall, 2)

	first, ok := overall[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "The Core School", first["name"])
	assert.InDelta(t, 1, first["rank"], 1e-9)
}

func TestHandleSentiment(t *testing.T) {
	s := newTestServer(t,
		testMention(1, "Experiencia pésima, no lo recomiendo", -0.8),
		testMention(1, "Contenido informativo sin más", 0),
		testMention(2, "Una formación excelente, muy recomendable", 0.9),
	)

	rec, payload := doRequest(t, s, http.MethodGet, "/api/sentiment?start=2026-08-01&end=2026-08-02", "")

	require.Equal(t, http.StatusOK, rec.Code)

	dist, ok := payload["distribution"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 1, dist["negative"], 1e-9)
	assert.InDelta(t, 1, dist["neutral"], 1e-9)
	assert.InDelta(t, 1, dist["positive"], 1e-9)

	negatives, ok := payload["negatives"].([]any)
	require.True(t, ok)
	require.Len(t, negatives, 1)
}

func TestHandleTopics(t *testing.T) {
	s := newTestServer(t,
		testMention(1, "Proceso de admisiones: requisitos y plazos", 0.1),
		testMention(1, "Visita al campus y sus instalaciones", 0.4),
	)

	rec, payload := doRequest(t, s, http.MethodGet, "/api/topics?start=2026-08-01&end=2026-08-01", "")

	require.Equal(t, http.StatusOK, rec.Code)

	topics, ok := payload["topics"].([]any)
	require.True(t, ok)
	assert.Len(t, topics, 2)
}

func TestHandleTopicsStrategic(t *testing.T) {
	s := newTestServer(t, testMention(1, "Visita al campus y sus instalaciones", 0.4))

	rec, payload := doRequest(t, s, http.MethodGet, "/api/topics?start=2026-08-01&end=2026-08-01&strategic=true", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, payload, "strategic_groups")
}

func TestHandleCategorize(t *testing.T) {
	s := newTestServer(t)

	body := `{"topic":"Admisiones","text":"Proceso de admisiones: requisitos, plazos y solicitud"}`

	rec, payload := doRequest(t, s, http.MethodPost, "/api/categorize", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Admissions & Enrollment", payload["category"])
	assert.Greater(t, payload["confidence"], 0.5)
}

func TestHandleCategorizeBadBody(t *testing.T) {
	s := newTestServer(t)

	rec, _ := doRequest(t, s, http.MethodPost, "/api/categorize", "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRecategorizeDryRunDefault(t *testing.T) {
	s := newTestServer(t)

	rec, payload := doRequest(t, s, http.MethodPost, "/api/taxonomy/recategorize", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 1, payload["updated"], 1e-9)
	assert.Equal(t, true, payload["dry_run"])

	store, ok := s.store.(testStore)
	require.True(t, ok)
	assert.Zero(t, store.PromptStore.Writes, "dry run is the default")
}

func TestHandleRecategorizeApply(t *testing.T) {
	s := newTestServer(t)

	rec, _ := doRequest(t, s, http.MethodPost, "/api/taxonomy/recategorize?dry_run=false", "")

	require.Equal(t, http.StatusOK, rec.Code)

	store, ok := s.store.(testStore)
	require.True(t, ok)
	assert.Equal(t, 1, store.PromptStore.Writes)
	assert.Equal(t, "Admissions & Enrollment", store.PromptStore.Category("p1"))
}
