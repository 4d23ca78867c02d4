package classify

import (
	"testing"

	"github.com/madx-labs/brandpulse/internal/core/domain"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: domain.CategoryUncategorized},
		{name: "punctuation only", input: "?!", want: domain.CategoryUncategorized},
		{name: "canonical key", input: "share of voice", want: "Share Of Voice"},
		{name: "synonym", input: "SOV", want: "Share Of Voice"},
		{name: "accents stripped in fallback", input: "Análisis Genérico", want: "Analisis Generico"},
		{name: "synonym trends", input: "trend analysis", want: "Trends Analysis"},
		{name: "synonym employability", input: "employability", want: "Employment Outcomes"},
		{name: "novel label title-cased", input: "random new topic", want: "Random New Topic"},
		{name: "case and spacing ignored", input: "  Brand   Monitoring ", want: "Brand Monitoring"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Canonicalize(tt.input); got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCanonicalizeFuzzyCollapse(t *testing.T) {
	// A near-identical variant of a canonical key collapses onto it.
	if got := Canonicalize("target audience researc"); got != "Target Audience Research" {
		t.Errorf("Canonicalize = %q, want %q", got, "Target Audience Research")
	}

	// Distant labels must not collapse.
	if got := Canonicalize("zebra taxonomy"); got != "Zebra Taxonomy" {
		t.Errorf("Canonicalize = %q, want %q", got, "Zebra Taxonomy")
	}
}

func TestCanonicalizeDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		if got := Canonicalize("competitor analysis"); got != "Competitive Analysis" {
			t.Fatalf("Canonicalize unstable on run %d: %q", i, got)
		}
	}
}
