// Package brands detects which tracked brands a mention refers to, combining
// three independent signal sources: structured tags, engine-supplied brand
// lists, and free-text substring matches.
package brands

import (
	"sort"
	"strings"

	"github.com/madx-labs/brandpulse/internal/core/domain"
)

// Detect returns the canonical names of every tracked brand the mention
// matches, deduplicated and sorted. A brand matches when any synonym equals
// or is contained in a structured tag, equals or is contained in a payload
// brand entry, or appears as a substring of the free text or source title.
// The result is invariant to the order signal sources are checked in.
func Detect(m domain.Mention, table domain.BrandSynonymTable) []string {
	text := strings.ToLower(m.RawText)
	title := strings.ToLower(m.SourceTitle)

	tags := lowerAll(m.StructuredTags)
	payload := lowerAll(m.PayloadBrands)

	found := make(map[string]struct{})

	for _, brand := range table.Brands {
		synonyms := brand.Synonyms
		if len(synonyms) == 0 {
			synonyms = []string{brand.Canonical}
		}

		for _, syn := range synonyms {
			s := strings.ToLower(strings.TrimSpace(syn))
			if s == "" {
				continue
			}

			if matchesList(tags, s) || matchesList(payload, s) ||
				strings.Contains(text, s) || strings.Contains(title, s) {
				found[brand.Canonical] = struct{}{}

				break
			}
		}
	}

	out := make([]string, 0, len(found))
	for name := range found {
		out = append(out, name)
	}

	sort.Strings(out)

	return out
}

func matchesList(values []string, synonym string) bool {
	for _, v := range values {
		if v == synonym || strings.Contains(v, synonym) {
			return true
		}
	}

	return false
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(strings.TrimSpace(v)))
	}

	return out
}

// DefaultSynonymTable is the built-in brand table for the default tenant,
// used until the config store supplies one.
func DefaultSynonymTable(tenant string) domain.BrandSynonymTable {
	return domain.BrandSynonymTable{
		Tenant: tenant,
		Brands: []domain.BrandSynonyms{
			{Canonical: "The Core School", Synonyms: []string{"the core school", "the core", "thecore"}},
			{Canonical: "U-TAD", Synonyms: []string{"u-tad", "utad"}},
			{Canonical: "ECAM", Synonyms: []string{"ecam"}},
			{Canonical: "TAI", Synonyms: []string{"tai"}},
			{Canonical: "CES", Synonyms: []string{"ces"}},
			{Canonical: "CEV", Synonyms: []string{"cev"}},
			{Canonical: "FX Barcelona Film School", Synonyms: []string{"fx barcelona", "fx barcelona film school", "fx animation"}},
			{Canonical: "Septima Ars", Synonyms: []string{"septima ars", "séptima ars"}},
		},
	}
}
