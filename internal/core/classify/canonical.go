package classify

import (
	"sort"
	"strings"

	"github.com/madx-labs/brandpulse/internal/core/domain"
	"github.com/madx-labs/brandpulse/internal/core/textnorm"
)

// topicSynonyms maps a canonical topic key to the alternative keys that
// should collapse onto it. Keys are in normalized form.
var topicSynonyms = map[string][]string{
	"target audience research":     {"audience research", "research audience", "research target audience"},
	"motivation triggers":          {"motivation trigger", "triggers", "motivational triggers"},
	"motivations":                  {"motivations analysis", "motivation analysis"},
	"digital trends":               {"trends digital", "online trends"},
	"industry perception":          {"perception industry", "brand perception"},
	"competitive analysis":         {"competitor analysis", "competition analysis"},
	"competitor benchmark":         {"competitor benchmarking", "benchmark competitors"},
	"brand monitoring":             {"monitoring brand"},
	"share of voice":               {"sov", "voice share"},
	"industry buzz":                {"buzz industry"},
	"trends analysis":              {"trends", "trend analysis"},
	"employment outcomes":          {"employability", "employment"},
	"job market":                   {"labour market", "labor market"},
	"brand partnerships":           {"partnerships", "partnerships brand"},
	"reputation drivers":           {"drivers reputation"},
	"student voice":                {"students voice"},
	"student expectations":         {"expectations students", "students expectations"},
	"innovation perception":        {"perception innovation"},
	"future outlook":               {"outlook future"},
}

// Canonicalize reduces a raw topic label to a canonical, readable name so
// near-identical variants group together. Resolution order: exact synonym
// match, fuzzy match against canonical keys at CanonicalFuzzyThreshold, then
// Title Case of the cleaned text. Empty input canonicalizes to Uncategorized.
func Canonicalize(topic string) string {
	key := textnorm.Normalize(topic)
	if key == "" {
		return domain.CategoryUncategorized
	}

	for canonical, alts := range topicSynonyms {
		if key == canonical {
			return titleCase(canonical)
		}

		for _, alt := range alts {
			if key == alt {
				return titleCase(canonical)
			}
		}
	}

	canonicals := make([]string, 0, len(topicSynonyms))
	for canonical := range topicSynonyms {
		canonicals = append(canonicals, canonical)
	}

	sort.Strings(canonicals)

	bestName := ""
	bestScore := 0.0

	for _, canonical := range canonicals {
		if score := textnorm.Similarity(key, canonical); score > bestScore {
			bestScore = score
			bestName = canonical
		}
	}

	if bestScore >= CanonicalFuzzyThreshold && bestName != "" {
		return titleCase(bestName)
	}

	return titleCase(key)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}

	if len(words) == 0 {
		return domain.CategoryUncategorized
	}

	return strings.Join(words, " ")
}
