// Package domain holds the value types shared across the classification,
// attribution, and aggregation engines. All types are immutable once built;
// snapshots are swapped whole, never mutated field by field.
package domain

import "time"

// Mention is one unit of text produced by an upstream engine about a tracked
// subject. Produced by ingestion, consumed read-only everywhere else.
type Mention struct {
	ID             string
	QueryID        string
	Tenant         string
	RawText        string
	Summary        string
	SourceTitle    string
	SourceURL      string
	StructuredTags []string
	PayloadBrands  []string
	Sentiment      float64
	Confidence     float64
	Emotion        string
	SourceEngine   string
	Source         string
	CreatedAt      time.Time
}

// TaxonomyEntry maps one category to its representative keywords for a tenant.
type TaxonomyEntry struct {
	Tenant   string
	Category string
	Keywords []string
}

// PhrasePattern binds a regex-style phrase to a category with a score weight.
type PhrasePattern struct {
	Expr     string
	Category string
	Weight   float64
}

// TaxonomySnapshot is an immutable per-invocation view of a tenant's taxonomy.
// Categories preserves insertion order so scoring ties break deterministically.
type TaxonomySnapshot struct {
	Tenant     string
	Categories []TaxonomyEntry
	Patterns   []PhrasePattern
}

// Empty reports whether the snapshot carries no categories.
func (s *TaxonomySnapshot) Empty() bool {
	return s == nil || len(s.Categories) == 0
}

// CategoryNames returns category names in snapshot order.
func (s *TaxonomySnapshot) CategoryNames() []string {
	if s == nil {
		return nil
	}

	names := make([]string, 0, len(s.Categories))
	for _, e := range s.Categories {
		names = append(names, e.Category)
	}

	return names
}

// BrandSynonyms maps a canonical brand name to the strings that identify it.
type BrandSynonyms struct {
	Canonical string
	Synonyms  []string
}

// BrandSynonymTable is a tenant's full set of tracked brands.
type BrandSynonymTable struct {
	Tenant string
	Brands []BrandSynonyms
}

// Prompt is one tracked query sent to the answer engines, carrying the
// stored category assigned by a previous classification run.
type Prompt struct {
	ID        string
	Tenant    string
	Topic     string
	Text      string
	Category  string
	Active    bool
	CreatedAt time.Time
}

// CategoryUncategorized is the explicit bottom value: classification never
// returns an empty category.
const CategoryUncategorized = "Uncategorized"

// AlternativeScore is one runner-up category with its raw score.
type AlternativeScore struct {
	Category string
	Score    float64
}

// ClassificationResult is the outcome of one classification call.
// Confidence and ClosestScore always lie in [0,1].
type ClassificationResult struct {
	Category        string
	Confidence      float64
	Alternatives    []AlternativeScore
	Suggestion      string
	SuggestionIsNew bool
	ClosestExisting string
	ClosestScore    float64
}

// Window is an inclusive day range. The implicit previous window of equal
// duration immediately precedes Start and is used for deltas.
type Window struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of calendar days covered, inclusive.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// Previous returns the equal-length window ending the day before Start.
func (w Window) Previous() Window {
	span := w.End.Sub(w.Start)
	prevEnd := w.Start.AddDate(0, 0, -1)

	return Window{Start: prevEnd.Add(-span), End: prevEnd}
}

// MetricPoint is one day of a zero-filled metric series.
type MetricPoint struct {
	Date  time.Time
	Value float64
}

// TopicStat feeds strategic grouping: one topic with its mention count and
// average sentiment over a window.
type TopicStat struct {
	Topic        string
	Count        int
	AvgSentiment float64
}

// StrategicGroup is one bucket produced by strategic grouping.
type StrategicGroup struct {
	Name         string
	AvgSentiment float64
	Occurrences  int
	Members      []string
}
