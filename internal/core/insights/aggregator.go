// Package insights aggregates classified, brand-attributed mentions into
// windowed visibility, share-of-voice, and sentiment metrics. All day series
// are zero-filled: a window of N days always yields exactly N points.
package insights

import (
	"sort"
	"time"

	"github.com/madx-labs/brandpulse/internal/core/domain"
	cerrors "github.com/madx-labs/brandpulse/internal/core/errors"
)

// Sentiment bucket boundaries.
const (
	sentimentNegativeBelow = -0.3
	sentimentPositiveAbove = 0.3
)

// AttributedMention joins a mention with its classification and detected
// brands.
type AttributedMention struct {
	domain.Mention

	Category string
	Brands   []string
}

// Aggregator computes metrics over one validated window of attributed
// mentions. Construction validates the window before any computation.
type Aggregator struct {
	window   domain.Window
	mentions []AttributedMention
}

// New creates an aggregator. Mentions outside the window are ignored.
func New(window domain.Window, mentions []AttributedMention) (*Aggregator, error) {
	if window.End.Before(window.Start) {
		return nil, cerrors.ErrInvalidWindow
	}

	window.Start = truncateDay(window.Start)
	window.End = truncateDay(window.End)

	inWindow := make([]AttributedMention, 0, len(mentions))

	for _, m := range mentions {
		day := truncateDay(m.CreatedAt)
		if day.Before(window.Start) || day.After(window.End) {
			continue
		}

		inWindow = append(inWindow, m)
	}

	return &Aggregator{window: window, mentions: inWindow}, nil
}

// VisibilityReport is the windowed visibility of one brand.
type VisibilityReport struct {
	Score  float64
	Delta  float64
	Series []domain.MetricPoint
}

// Visibility computes the share of all mentions in which the brand was
// detected: per-day percentages (zero-filled), a window score computed as the
// ratio of sums, and a delta comparing the mean of the second half of the
// series to the first half.
func (a *Aggregator) Visibility(brand string) VisibilityReport {
	days := a.window.Days()
	matches := make([]int, days)
	totals := make([]int, days)

	for _, m := range a.mentions {
		idx := a.dayIndex(m.CreatedAt)
		totals[idx]++

		if containsBrand(m.Brands, brand) {
			matches[idx]++
		}
	}

	series := make([]domain.MetricPoint, days)
	matchSum, totalSum := 0, 0

	for i := 0; i < days; i++ {
		matchSum += matches[i]
		totalSum += totals[i]

		series[i] = domain.MetricPoint{
			Date:  a.window.Start.AddDate(0, 0, i),
			Value: ratio(matches[i], totals[i]) * 100,
		}
	}

	return VisibilityReport{
		Score:  ratio(matchSum, totalSum) * 100,
		Delta:  halfSeriesDelta(series),
		Series: series,
	}
}

// BrandShare is one brand's share of voice.
type BrandShare struct {
	Brand string
	Count int
	Share float64
}

// ShareOfVoice computes each detected brand's mention count as a percentage
// of all tracked-brand mentions in the window, globally and per category.
func (a *Aggregator) ShareOfVoice() (overall []BrandShare, byCategory map[string][]BrandShare) {
	counts := make(map[string]int)
	categoryCounts := make(map[string]map[string]int)

	for _, m := range a.mentions {
		for _, b := range m.Brands {
			counts[b]++

			cat := m.Category
			if cat == "" {
				cat = domain.CategoryUncategorized
			}

			if categoryCounts[cat] == nil {
				categoryCounts[cat] = make(map[string]int)
			}

			categoryCounts[cat][b]++
		}
	}

	byCategory = make(map[string][]BrandShare, len(categoryCounts))
	for cat, c := range categoryCounts {
		byCategory[cat] = shares(c)
	}

	return shares(counts), byCategory
}

// RankEntry is one brand in the windowed ranking.
type RankEntry struct {
	Rank   int
	Brand  string
	Count  int
	Share  float64
	Change float64
}

// Ranking lists every brand with at least one detected mention, sorted by
// count descending, annotated with the signed percentage-point change of its
// share against the immediately preceding window of equal length.
func (a *Aggregator) Ranking(previous []AttributedMention) []RankEntry {
	current, _ := a.ShareOfVoice()

	prevShare := make(map[string]float64)

	prevAgg, err := New(a.window.Previous(), previous)
	if err == nil {
		prevShares, _ := prevAgg.ShareOfVoice()
		for _, s := range prevShares {
			prevShare[s.Brand] = s.Share
		}
	}

	entries := make([]RankEntry, 0, len(current))
	for i, s := range current {
		entries = append(entries, RankEntry{
			Rank:   i + 1,
			Brand:  s.Brand,
			Count:  s.Count,
			Share:  s.Share,
			Change: s.Share - prevShare[s.Brand],
		})
	}

	return entries
}

// Distribution partitions mention sentiment into negative, neutral, and
// positive buckets.
type Distribution struct {
	Negative int
	Neutral  int
	Positive int
}

// SentimentDistribution buckets every mention in the window.
func (a *Aggregator) SentimentDistribution() Distribution {
	var d Distribution

	for _, m := range a.mentions {
		switch {
		case m.Sentiment < sentimentNegativeBelow:
			d.Negative++
		case m.Sentiment > sentimentPositiveAbove:
			d.Positive++
		default:
			d.Neutral++
		}
	}

	return d
}

// SentimentSeries returns the zero-filled daily average sentiment.
func (a *Aggregator) SentimentSeries() []domain.MetricPoint {
	days := a.window.Days()
	sums := make([]float64, days)
	counts := make([]int, days)

	for _, m := range a.mentions {
		idx := a.dayIndex(m.CreatedAt)
		sums[idx] += m.Sentiment
		counts[idx]++
	}

	series := make([]domain.MetricPoint, days)
	for i := 0; i < days; i++ {
		avg := 0.0
		if counts[i] > 0 {
			avg = sums[i] / float64(counts[i])
		}

		series[i] = domain.MetricPoint{Date: a.window.Start.AddDate(0, 0, i), Value: avg}
	}

	return series
}

// TopExtremes returns the up-to-n most negative and most positive mentions
// meeting the confidence floor, ordered by sentiment extremity then recency.
func (a *Aggregator) TopExtremes(n int, minConfidence float64) (negatives, positives []AttributedMention) {
	for _, m := range a.mentions {
		if m.Confidence < minConfidence {
			continue
		}

		if m.Sentiment < sentimentNegativeBelow {
			negatives = append(negatives, m)
		} else if m.Sentiment > sentimentPositiveAbove {
			positives = append(positives, m)
		}
	}

	sort.SliceStable(negatives, func(i, j int) bool {
		if negatives[i].Sentiment != negatives[j].Sentiment {
			return negatives[i].Sentiment < negatives[j].Sentiment
		}

		return negatives[i].CreatedAt.After(negatives[j].CreatedAt)
	})

	sort.SliceStable(positives, func(i, j int) bool {
		if positives[i].Sentiment != positives[j].Sentiment {
			return positives[i].Sentiment > positives[j].Sentiment
		}

		return positives[i].CreatedAt.After(positives[j].CreatedAt)
	})

	if len(negatives) > n {
		negatives = negatives[:n]
	}

	if len(positives) > n {
		positives = positives[:n]
	}

	return negatives, positives
}

// TopicStats summarizes the window per category for strategic grouping.
func (a *Aggregator) TopicStats() []domain.TopicStat {
	counts := make(map[string]int)
	sums := make(map[string]float64)

	for _, m := range a.mentions {
		cat := m.Category
		if cat == "" {
			cat = domain.CategoryUncategorized
		}

		counts[cat]++
		sums[cat] += m.Sentiment
	}

	stats := make([]domain.TopicStat, 0, len(counts))
	for cat, n := range counts {
		stats = append(stats, domain.TopicStat{Topic: cat, Count: n, AvgSentiment: sums[cat] / float64(n)})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}

		return stats[i].Topic < stats[j].Topic
	})

	return stats
}

func (a *Aggregator) dayIndex(t time.Time) int {
	return int(truncateDay(t).Sub(a.window.Start).Hours() / 24)
}

func shares(counts map[string]int) []BrandShare {
	total := 0
	for _, c := range counts {
		total += c
	}

	out := make([]BrandShare, 0, len(counts))
	for b, c := range counts {
		out = append(out, BrandShare{Brand: b, Count: c, Share: ratio(c, total) * 100})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}

		return out[i].Brand < out[j].Brand
	})

	return out
}

// ratio guards every division: a zero denominator counts as one.
func ratio(num, den int) float64 {
	if den < 1 {
		den = 1
	}

	return float64(num) / float64(den)
}

func halfSeriesDelta(series []domain.MetricPoint) float64 {
	n := len(series)
	if n < 2 {
		return 0
	}

	mid := n / 2
	first, second := 0.0, 0.0

	for i := 0; i < mid; i++ {
		first += series[i].Value
	}

	for i := mid; i < n; i++ {
		second += series[i].Value
	}

	return second/float64(n-mid) - first/float64(mid)
}

func containsBrand(brandsList []string, brand string) bool {
	for _, b := range brandsList {
		if b == brand {
			return true
		}
	}

	return false
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
