package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/madx-labs/brandpulse/internal/core/classify"
	"github.com/madx-labs/brandpulse/internal/core/insights"
)

const dateFormat = "2006-01-02"

type seriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

func (s *Server) handleVisibility(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r, s.cfg.DefaultTenant)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)

		return
	}

	brand := filters.Brand
	if brand == "" {
		brand = s.cfg.DefaultBrand
	}

	attributed, err := s.attributed(r.Context(), filters)
	if err != nil {
		s.badRequestOrInternal(w, err)

		return
	}

	agg, err := insights.New(filters.Window, attributed)
	if err != nil {
		s.badRequestOrInternal(w, err)

		return
	}

	report := agg.Visibility(brand)

	series := make([]seriesPoint, 0, len(report.Series))
	for _, p := range report.Series {
		series = append(series, seriesPoint{Date: p.Date.Format(dateFormat), Value: p.Value})
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"visibility_score": report.Score,
		"delta":            report.Delta,
		"series":           series,
	})
}

type rankEntry struct {
	Rank   int     `json:"rank"`
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	Score  float64 `json:"score"`
	Change float64 `json:"change"`
}

func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r, s.cfg.DefaultTenant)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)

		return
	}

	attributed, err := s.attributed(r.Context(), filters)
	if err != nil {
		s.badRequestOrInternal(w, err)

		return
	}

	agg, err := insights.New(filters.Window, attributed)
	if err != nil {
		s.badRequestOrInternal(w, err)

		return
	}

	prevFilters := filters
	prevFilters.Window = filters.Window.Previous()

	previous, err := s.attributed(r.Context(), prevFilters)
	if err != nil {
		// The previous window only feeds deltas; serve the ranking without it.
		s.logger.Warn().Err(err).Msg("previous window fetch failed")

		previous = nil
	}

	overall := make([]rankEntry, 0)
	for _, e := range agg.Ranking(previous) {
		overall = append(overall, rankEntry{Rank: e.Rank, Name: e.Brand, Count: e.Count, Score: e.Share, Change: e.Change})
	}

	_, byCategory := agg.ShareOfVoice()

	byTopic := make(map[string][]rankEntry, len(byCategory))
	for cat, sharesList := range byCategory {
		entries := make([]rankEntry, 0, len(sharesList))
		for i, b := range sharesList {
			entries = append(entries, rankEntry{Rank: i + 1, Name: b.Brand, Count: b.Count, Score: b.Share})
		}

		byTopic[cat] = entries
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"overall_ranking": overall,
		"by_topic":        byTopic,
	})
}

type mentionSummary struct {
	ID          string   `json:"id"`
	Summary     string   `json:"summary"`
	KeyTopics   []string `json:"key_topics"`
	SourceTitle string   `json:"source_title"`
	SourceURL   string   `json:"source_url"`
	Sentiment   float64  `json:"sentiment"`
	CreatedAt   string   `json:"created_at"`
}

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r, s.cfg.DefaultTenant)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)

		return
	}

	attributed, err := s.attributed(r.Context(), filters)
	if err != nil {
		s.badRequestOrInternal(w, err)

		return
	}

	agg, err := insights.New(filters.Window, attributed)
	if err != nil {
		s.badRequestOrInternal(w, err)

		return
	}

	dist := agg.SentimentDistribution()
	negatives, positives := agg.TopExtremes(s.cfg.SentimentTopN, s.cfg.SentimentMinConfidence)

	series := make([]seriesPoint, 0)
	for _, p := range agg.SentimentSeries() {
		series = append(series, seriesPoint{Date: p.Date.Format(dateFormat), Value: p.Value})
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"timeseries": series,
		"distribution": map[string]int{
			"negative": dist.Negative,
			"neutral":  dist.Neutral,
			"positive": dist.Positive,
		},
		"negatives": toSummaries(negatives),
		"positives": toSummaries(positives),
	})
}

func toSummaries(mentions []insights.AttributedMention) []mentionSummary {
	out := make([]mentionSummary, 0, len(mentions))

	for _, m := range mentions {
		summary := m.Summary
		if summary == "" {
			summary = m.RawText
		}

		out = append(out, mentionSummary{
			ID:          m.ID,
			Summary:     summary,
			KeyTopics:   m.StructuredTags,
			SourceTitle: m.SourceTitle,
			SourceURL:   m.SourceURL,
			Sentiment:   m.Sentiment,
			CreatedAt:   m.CreatedAt.Format(time.RFC3339),
		})
	}

	return out
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r, s.cfg.DefaultTenant)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)

		return
	}

	attributed, err := s.attributed(r.Context(), filters)
	if err != nil {
		s.badRequestOrInternal(w, err)

		return
	}

	agg, err := insights.New(filters.Window, attributed)
	if err != nil {
		s.badRequestOrInternal(w, err)

		return
	}

	stats := agg.TopicStats()

	topics := make([]topicEntry, 0, len(stats))
	for _, st := range stats {
		topics = append(topics, topicEntry{Topic: st.Topic, Count: st.Count, AvgSentiment: st.AvgSentiment})
	}

	payload := map[string]any{"topics": topics}

	if r.URL.Query().Get("strategic") == "true" {
		groups, err := s.grouper.Group(r.Context(), filters.Tenant, filterKey(filters), filters.Window, stats)
		if err != nil {
			s.logger.Warn().Err(err).Msg("strategic grouping unavailable")
		} else {
			out := make([]strategicGroupEntry, 0, len(groups))
			for _, g := range groups {
				out = append(out, strategicGroupEntry{
					Name:         g.Name,
					AvgSentiment: g.AvgSentiment,
					Occurrences:  g.Occurrences,
					Members:      g.Members,
				})
			}

			payload["strategic_groups"] = out
		}
	}

	s.writeJSON(w, http.StatusOK, payload)
}

type topicEntry struct {
	Topic        string  `json:"topic"`
	Count        int     `json:"count"`
	AvgSentiment float64 `json:"avg_sentiment"`
}

type strategicGroupEntry struct {
	Name         string   `json:"name"`
	AvgSentiment float64  `json:"avg_sentiment"`
	Occurrences  int      `json:"occurrences"`
	Members      []string `json:"members"`
}

type categorizeRequest struct {
	Topic       string `json:"topic"`
	Text        string `json:"text"`
	UseExternal bool   `json:"use_external"`
}

func (s *Server) handleCategorize(w http.ResponseWriter, r *http.Request) {
	var req categorizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)

		return
	}

	res := s.classifier.Classify(r.Context(), req.Topic, req.Text, s.snapshots.Current(), classify.Options{UseExternal: req.UseExternal})

	alternatives := make([]alternativeEntry, 0, len(res.Alternatives))
	for _, alt := range res.Alternatives {
		alternatives = append(alternatives, alternativeEntry{Category: alt.Category, Score: alt.Score})
	}

	s.writeJSON(w, http.StatusOK, categorizeResponse{
		Category:        res.Category,
		Confidence:      res.Confidence,
		Alternatives:    alternatives,
		Suggestion:      res.Suggestion,
		SuggestionIsNew: res.SuggestionIsNew,
		ClosestExisting: res.ClosestExisting,
		ClosestScore:    res.ClosestScore,
	})
}

type alternativeEntry struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

type categorizeResponse struct {
	Category        string             `json:"category"`
	Confidence      float64            `json:"confidence"`
	Alternatives    []alternativeEntry `json:"alternatives"`
	Suggestion      string             `json:"suggestion,omitempty"`
	SuggestionIsNew bool               `json:"suggestion_is_new"`
	ClosestExisting string             `json:"closest_existing,omitempty"`
	ClosestScore    float64            `json:"closest_score"`
}

func (s *Server) handleRecategorize(w http.ResponseWriter, r *http.Request) {
	dryRun := r.URL.Query().Get("dry_run") != "false"

	tenant := r.URL.Query().Get("tenant")
	if tenant == "" {
		tenant = s.cfg.DefaultTenant
	}

	corpus, err := s.store.ListPrompts(r.Context(), tenant, false)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)

		return
	}

	report := s.recat.Run(r.Context(), corpus, s.snapshots.Current(), dryRun)

	changes := make([]changeEntry, 0, len(report.Changes))
	for _, c := range report.Changes {
		changes = append(changes, changeEntry{ID: c.ID, Old: c.Old, New: c.New})
	}

	s.writeJSON(w, http.StatusOK, recategorizeResponse{
		DryRun:         dryRun,
		Updated:        report.Updated,
		Unchanged:      report.Unchanged,
		Unclassifiable: report.Unclassifiable,
		Failed:         report.Failed,
		Changes:        changes,
	})
}

type changeEntry struct {
	ID  string `json:"id"`
	Old string `json:"old"`
	New string `json:"new"`
}

type recategorizeResponse struct {
	DryRun         bool          `json:"dry_run"`
	Updated        int           `json:"updated"`
	Unchanged      int           `json:"unchanged"`
	Unclassifiable int           `json:"unclassifiable"`
	Failed         int           `json:"failed"`
	Changes        []changeEntry `json:"changes"`
}
