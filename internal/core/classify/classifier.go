// Package classify implements the topic classifier: keyword scoring with
// pattern bonuses and fuzzy tie-breaking, a disambiguation pre-pass for
// lexically adjacent categories, and an external-classifier fallback that
// degrades silently to the rule-based result.
package classify

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/madx-labs/brandpulse/internal/core/domain"
	"github.com/madx-labs/brandpulse/internal/core/llm"
	"github.com/madx-labs/brandpulse/internal/core/textnorm"
	"github.com/madx-labs/brandpulse/internal/platform/observability"
)

// Scoring weights and calibration thresholds. The similarity thresholds were
// tuned against the Ratcliff/Obershelp ratio in textnorm; changing the
// similarity measure requires re-tuning them.
const (
	// KeywordWeight scores each taxonomy keyword whose tokens intersect the input.
	KeywordWeight = 2.0
	// NameSimilarityWeight scales the fuzzy similarity between the input
	// tokens and the category name.
	NameSimilarityWeight = 1.5
	// PatternWeight is added per phrase pattern matching the input.
	PatternWeight = 5.0

	// DisambigConfidence is assigned when the disambiguation pre-pass
	// short-circuits.
	DisambigConfidence = 0.85
	// DisambigAltScore is the score recorded for the losing side of a
	// disambiguated pair.
	DisambigAltScore = 0.5

	// LowConfidence is the level below which a suggestion is computed.
	LowConfidence = 0.5
	// CloseMatchThreshold is the name similarity at which an existing
	// category is preferred over creating a new one.
	CloseMatchThreshold = 0.75
	// ExternalMapThreshold maps a novel external label onto the closest
	// known category.
	ExternalMapThreshold = 0.72
	// DomainAssistThreshold accepts a weaker external mapping when the text
	// carries a domain-hint keyword.
	DomainAssistThreshold = 0.6
	// CanonicalFuzzyThreshold collapses a raw label onto a canonical topic key.
	CanonicalFuzzyThreshold = 0.88

	// VerbatimConfidence applies when the external classifier returns a known
	// category name exactly.
	VerbatimConfidence = 0.9
	// UnclassifiableConfidence applies to the Unclassifiable sentinel.
	UnclassifiableConfidence = 0.5
	// NovelConfidence applies to an accepted novel external label.
	NovelConfidence = 0.6

	maxAlternatives = 5
)

// domainHintKeywords trigger domain-assisted acceptance of weaker external
// label mappings.
var domainHintKeywords = []string{
	"school", "escuela", "universidad", "university", "campus", "degree",
	"grado", "master", "student", "estudiante", "educacion", "education",
}

// Options control one classification call.
type Options struct {
	// UseExternal forces the external-classifier fallback even when the
	// taxonomy snapshot is non-empty.
	UseExternal bool
}

// Classifier assigns topical categories to mention texts.
type Classifier struct {
	external llm.Client
	sem      *semaphore.Weighted
	timeout  time.Duration
	logger   *zerolog.Logger

	patternMu sync.Mutex
	patterns  map[string]*regexp.Regexp
}

// New creates a classifier. The external client may be nil, in which case
// only rule-based classification is available. maxConcurrent bounds the
// number of outstanding external calls; timeout applies per call.
func New(external llm.Client, maxConcurrent int64, timeout time.Duration, logger *zerolog.Logger) *Classifier {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	return &Classifier{
		external: external,
		sem:      semaphore.NewWeighted(maxConcurrent),
		timeout:  timeout,
		logger:   logger,
		patterns: make(map[string]*regexp.Regexp),
	}
}

// Classify assigns exactly one category to the combined topic hint and free
// text against the given taxonomy snapshot. It never returns an empty
// category: Uncategorized is the explicit bottom value.
func (c *Classifier) Classify(ctx context.Context, topicHint, freeText string, snap *domain.TaxonomySnapshot, opts Options) domain.ClassificationResult {
	combined := strings.TrimSpace(topicHint + " " + freeText)
	normalized := textnorm.Normalize(combined)

	if normalized == "" {
		observability.ClassificationsTotal.WithLabelValues(observability.OutcomeEmpty).Inc()

		return domain.ClassificationResult{Category: domain.CategoryUncategorized}
	}

	ruleBased := c.classifyRuleBased(normalized, combined, snap)

	if c.external != nil && (snap.Empty() || opts.UseExternal) {
		if res, err := c.classifyExternal(ctx, freeText, combined, snap); err == nil {
			observability.ClassificationsTotal.WithLabelValues(observability.OutcomeExternal).Inc()

			return res
		} else if c.logger != nil {
			c.logger.Debug().Err(err).Msg("external classification failed, using rule-based result")
		}

		observability.ClassificationsTotal.WithLabelValues(observability.OutcomeFallback).Inc()

		return ruleBased
	}

	return ruleBased
}

func (c *Classifier) classifyRuleBased(normalized, combined string, snap *domain.TaxonomySnapshot) domain.ClassificationResult {
	if winner, loser, ok := disambiguate(normalized); ok {
		observability.ClassificationsTotal.WithLabelValues(observability.OutcomeDisambiguated).Inc()

		return domain.ClassificationResult{
			Category:     winner,
			Confidence:   DisambigConfidence,
			Alternatives: []domain.AlternativeScore{{Category: loser, Score: DisambigAltScore}},
		}
	}

	tokens := textnorm.Tokenize(combined)
	joined := textnorm.TokensJoined(tokens)
	patternBonus := c.patternBonuses(normalized, snap)

	scores := make([]domain.AlternativeScore, 0, len(snap.CategoryNames()))

	for _, entry := range snapCategories(snap) {
		score := 0.0

		for _, kw := range entry.Keywords {
			if textnorm.Intersects(textnorm.Tokenize(kw), tokens) {
				score += KeywordWeight
			}
		}

		score += NameSimilarityWeight * textnorm.Similarity(joined, textnorm.Normalize(entry.Category))
		score += patternBonus[entry.Category]

		scores = append(scores, domain.AlternativeScore{Category: entry.Category, Score: score})
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })

	res := domain.ClassificationResult{Category: domain.CategoryUncategorized}

	if len(scores) > 0 {
		res.Category = scores[0].Category

		best := scores[0].Score
		second := 0.0

		if len(scores) > 1 {
			second = scores[1].Score
		}

		if best > 0 {
			res.Confidence = clamp01((best - second + 1) / (best + 1))
		}

		n := len(scores)
		if n > maxAlternatives {
			n = maxAlternatives
		}

		res.Alternatives = scores[:n]
	}

	res.ClosestExisting, res.ClosestScore = closestCategory(Canonicalize(combined), snap)

	if res.Confidence < LowConfidence {
		c.fillSuggestion(&res, normalized, combined, snap)
	}

	observability.ClassificationsTotal.WithLabelValues(observability.OutcomeRuleBased).Inc()

	return res
}

// fillSuggestion proposes a category for low-confidence results: the first
// pattern-matched category not already selected, else the canonicalized
// input, preferring a close existing category over creating a new one.
func (c *Classifier) fillSuggestion(res *domain.ClassificationResult, normalized, combined string, snap *domain.TaxonomySnapshot) {
	known := make(map[string]struct{}, len(snap.CategoryNames()))
	for _, name := range snap.CategoryNames() {
		known[name] = struct{}{}
	}

	suggestion := ""

	for _, p := range snapPatterns(snap) {
		if p.Category == res.Category {
			continue
		}

		if re := c.compiled(p.Expr); re != nil && re.MatchString(normalized) {
			suggestion = p.Category

			break
		}
	}

	if suggestion == "" {
		suggestion = Canonicalize(combined)
	}

	if res.ClosestExisting != "" && res.ClosestScore >= CloseMatchThreshold {
		res.Suggestion = res.ClosestExisting
		res.SuggestionIsNew = false

		return
	}

	_, exists := known[suggestion]
	res.Suggestion = suggestion
	res.SuggestionIsNew = !exists
}

func (c *Classifier) classifyExternal(ctx context.Context, freeText, combined string, snap *domain.TaxonomySnapshot) (domain.ClassificationResult, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return domain.ClassificationResult{}, err
	}
	defer c.sem.Release(1)

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text := strings.TrimSpace(freeText)
	if text == "" {
		text = combined
	}

	knownNames := snap.CategoryNames()

	label, err := c.external.ClassifyLabel(callCtx, text, knownNames)
	if err != nil {
		return domain.ClassificationResult{}, err
	}

	if label == llm.LabelUnclassifiable {
		return domain.ClassificationResult{
			Category:   domain.CategoryUncategorized,
			Confidence: UnclassifiableConfidence,
		}, nil
	}

	for _, name := range knownNames {
		if label == name {
			return domain.ClassificationResult{Category: name, Confidence: VerbatimConfidence}, nil
		}
	}

	// Novel label: map onto the closest known category when similar enough.
	closest, score := closestCategory(label, snap)

	if closest != "" {
		if score >= ExternalMapThreshold {
			return domain.ClassificationResult{
				Category:        closest,
				Confidence:      score,
				ClosestExisting: closest,
				ClosestScore:    score,
			}, nil
		}

		if score >= DomainAssistThreshold && containsDomainHint(textnorm.Normalize(text)) {
			return domain.ClassificationResult{
				Category:        closest,
				Confidence:      score,
				ClosestExisting: closest,
				ClosestScore:    score,
			}, nil
		}
	}

	novel := Canonicalize(label)

	return domain.ClassificationResult{
		Category:        novel,
		Confidence:      NovelConfidence,
		Suggestion:      novel,
		SuggestionIsNew: true,
		ClosestExisting: closest,
		ClosestScore:    score,
	}, nil
}

func (c *Classifier) patternBonuses(normalized string, snap *domain.TaxonomySnapshot) map[string]float64 {
	bonus := make(map[string]float64)

	for _, p := range snapPatterns(snap) {
		if re := c.compiled(p.Expr); re != nil && re.MatchString(normalized) {
			weight := p.Weight
			if weight == 0 {
				weight = PatternWeight
			}

			bonus[p.Category] += weight
		}
	}

	return bonus
}

// compiled returns the cached compiled form of a pattern expression. Invalid
// expressions are cached as nil so they are reported once, not per call.
func (c *Classifier) compiled(expr string) *regexp.Regexp {
	c.patternMu.Lock()
	defer c.patternMu.Unlock()

	if re, ok := c.patterns[expr]; ok {
		return re
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn().Err(err).Str("pattern", expr).Msg("invalid phrase pattern")
		}

		re = nil
	}

	c.patterns[expr] = re

	return re
}

func closestCategory(label string, snap *domain.TaxonomySnapshot) (string, float64) {
	normalized := textnorm.Normalize(label)

	best := ""
	bestScore := 0.0

	for _, name := range snap.CategoryNames() {
		if score := textnorm.Similarity(normalized, textnorm.Normalize(name)); score > bestScore {
			bestScore = score
			best = name
		}
	}

	return best, bestScore
}

func containsDomainHint(normalizedText string) bool {
	for _, kw := range domainHintKeywords {
		if strings.Contains(normalizedText, kw) {
			return true
		}
	}

	return false
}

func snapCategories(snap *domain.TaxonomySnapshot) []domain.TaxonomyEntry {
	if snap == nil {
		return nil
	}

	return snap.Categories
}

func snapPatterns(snap *domain.TaxonomySnapshot) []domain.PhrasePattern {
	if snap == nil {
		return nil
	}

	return snap.Patterns
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}

	if v > 1 {
		return 1
	}

	return v
}
