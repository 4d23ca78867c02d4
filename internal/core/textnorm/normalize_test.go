package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "accents stripped", input: "Máster en Animación 3D", want: "master en animacion 3d"},
		{name: "dashes become spaces", input: "u-tad vs the_core", want: "u tad vs the core"},
		{name: "punctuation removed", input: "¿Cuánto cuesta? ¡Mucho!", want: "cuanto cuesta mucho"},
		{name: "whitespace collapsed", input: "  a \t b \n c  ", want: "a b c"},
		{name: "digits kept", input: "Top 10 escuelas 2026", want: "top 10 escuelas 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"¿Qué opinan los padres sobre U-TAD?",
		"Becas y financiación para el Máster",
		"plain already normalized text",
	}

	for _, input := range inputs {
		once := Normalize(input)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("Becas, becas y más BECAS")

	if len(tokens) != 3 {
		t.Fatalf("expected 3 distinct tokens, got %d: %v", len(tokens), tokens)
	}

	for _, want := range []string{"becas", "y", "mas"} {
		if _, ok := tokens[want]; !ok {
			t.Errorf("missing token %q", want)
		}
	}
}

func TestTokensJoinedStableOrder(t *testing.T) {
	joined := TokensJoined(Tokenize("zeta alfa media"))

	if joined != "alfa media zeta" {
		t.Errorf("TokensJoined = %q, want sorted order", joined)
	}

	if TokensJoined(nil) != "" {
		t.Error("TokensJoined(nil) should be empty")
	}
}

func TestIntersects(t *testing.T) {
	a := Tokenize("empleo y salidas profesionales")
	b := Tokenize("salidas laborales")
	c := Tokenize("campus virtual")

	if !Intersects(a, b) {
		t.Error("expected overlap between a and b")
	}

	if Intersects(a, c) {
		t.Error("expected no overlap between a and c")
	}

	if Intersects(nil, a) {
		t.Error("nil set intersects nothing")
	}
}
