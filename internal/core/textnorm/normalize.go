// Package textnorm provides the text normalization primitives shared by the
// classifier and brand detector: accent stripping, canonical lowercasing,
// tokenization, and fuzzy string similarity.
package textnorm

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var accentStripper = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripAccents removes diacritics via NFKD decomposition, dropping combining
// marks.
func StripAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}

	return out
}

// Normalize reduces text to a canonical comparable form: accents stripped,
// lowercased, dashes and underscores turned into spaces, everything outside
// [a-z0-9 ] removed, whitespace collapsed and trimmed. Idempotent.
func Normalize(s string) string {
	s = strings.ToLower(StripAccents(strings.TrimSpace(s)))

	var b strings.Builder

	b.Grow(len(s))

	lastSpace := true

	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)

			lastSpace = false
		case r == '-' || r == '_' || unicode.IsSpace(r):
			if !lastSpace {
				b.WriteByte(' ')

				lastSpace = true
			}
		}
	}

	return strings.TrimRight(b.String(), " ")
}

// Tokenize returns the set of [a-z0-9]+ tokens of the normalized form.
func Tokenize(s string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, t := range strings.Fields(Normalize(s)) {
		tokens[t] = struct{}{}
	}

	return tokens
}

// TokensJoined returns the normalized tokens joined by single spaces in
// stable (sorted) order, for similarity comparisons against category names.
func TokensJoined(tokens map[string]struct{}) string {
	if len(tokens) == 0 {
		return ""
	}

	out := make([]string, 0, len(tokens))
	for t := range tokens {
		out = append(out, t)
	}

	sort.Strings(out)

	return strings.Join(out, " ")
}

// Intersects reports whether two token sets share at least one token.
func Intersects(a, b map[string]struct{}) bool {
	if len(b) < len(a) {
		a, b = b, a
	}

	for t := range a {
		if _, ok := b[t]; ok {
			return true
		}
	}

	return false
}
