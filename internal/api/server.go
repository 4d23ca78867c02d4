// Package api exposes the engine over HTTP. Handlers are thin: they parse
// filters, fetch rows, and delegate to the core packages.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/madx-labs/brandpulse/internal/core/brands"
	"github.com/madx-labs/brandpulse/internal/core/classify"
	"github.com/madx-labs/brandpulse/internal/core/domain"
	cerrors "github.com/madx-labs/brandpulse/internal/core/errors"
	"github.com/madx-labs/brandpulse/internal/core/insights"
	"github.com/madx-labs/brandpulse/internal/core/ports"
	"github.com/madx-labs/brandpulse/internal/core/recat"
	"github.com/madx-labs/brandpulse/internal/platform/config"
	"github.com/madx-labs/brandpulse/internal/platform/observability"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Store bundles the repository capabilities the API needs.
type Store interface {
	ports.MentionReader
	ports.PromptReader
	ports.BrandReader
}

// Server is the HTTP API surface.
type Server struct {
	cfg        *config.Config
	store      Store
	classifier *classify.Classifier
	grouper    *classify.Grouper
	recat      *recat.Recategorizer
	snapshots  *classify.SnapshotHolder
	logger     *zerolog.Logger
}

// NewServer wires the API handlers.
func NewServer(
	cfg *config.Config,
	store Store,
	classifier *classify.Classifier,
	grouper *classify.Grouper,
	recategorizer *recat.Recategorizer,
	snapshots *classify.SnapshotHolder,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		cfg:        cfg,
		store:      store,
		classifier: classifier,
		grouper:    grouper,
		recat:      recategorizer,
		snapshots:  snapshots,
		logger:     logger,
	}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/visibility", s.instrument("visibility", s.handleVisibility)).Methods(http.MethodGet)
	api.HandleFunc("/industry/ranking", s.instrument("ranking", s.handleRanking)).Methods(http.MethodGet)
	api.HandleFunc("/sentiment", s.instrument("sentiment", s.handleSentiment)).Methods(http.MethodGet)
	api.HandleFunc("/topics", s.instrument("topics", s.handleTopics)).Methods(http.MethodGet)
	api.HandleFunc("/categorize", s.instrument("categorize", s.handleCategorize)).Methods(http.MethodPost)
	api.HandleFunc("/taxonomy/recategorize", s.instrument("recategorize", s.handleRecategorize)).Methods(http.MethodPost)

	return r
}

// Start serves the API until the context is canceled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.APIPort),
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)

		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info().Int("port", s.cfg.APIPort).Msg("API server starting")

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api server error: %w", err)
	}

	return nil
}

func (s *Server) instrument(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		h(w, r)

		observability.APIRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// attributed fetches the filtered mentions and runs classification and brand
// attribution over them.
func (s *Server) attributed(ctx context.Context, filters ports.MentionFilters) ([]insights.AttributedMention, error) {
	mentions, err := s.store.ListMentions(ctx, filters)
	if err != nil {
		return nil, err
	}

	return insights.Attribute(ctx, mentions, s.classifier, s.snapshots.Current(), s.brandTable(ctx, filters.Tenant), int(s.cfg.PollConcurrency))
}

// brandTable loads the tenant's synonym table, falling back to the built-in
// table when none is configured.
func (s *Server) brandTable(ctx context.Context, tenant string) domain.BrandSynonymTable {
	table, err := s.store.GetBrandSynonyms(ctx, tenant)
	if err != nil || len(table.Brands) == 0 {
		return brands.DefaultSynonymTable(tenant)
	}

	return table
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) badRequestOrInternal(w http.ResponseWriter, err error) {
	if errors.Is(err, cerrors.ErrInvalidWindow) {
		s.writeError(w, http.StatusBadRequest, err)

		return
	}

	s.writeError(w, http.StatusInternalServerError, err)
}
