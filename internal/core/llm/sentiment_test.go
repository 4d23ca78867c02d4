package llm

import (
	"encoding/json"
	"testing"
)

func TestSentimentPayloadDecoding(t *testing.T) {
	content := "```json\n{\"sentiment\": -0.7, \"emotion\": \"anger\", \"confidence\": 0.92}\n```"

	var res SentimentResult
	if err := json.Unmarshal([]byte(extractJSON(content)), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if res.Sentiment != -0.7 {
		t.Errorf("sentiment: got %v, want -0.7", res.Sentiment)
	}
	if res.Emotion != "anger" {
		t.Errorf("emotion: got %q, want anger", res.Emotion)
	}
	if res.Confidence != 0.92 {
		t.Errorf("confidence: got %v, want 0.92", res.Confidence)
	}
}

func TestClampRange(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{-1.5, -1, 1, -1},
		{1.5, -1, 1, 1},
		{0.3, -1, 1, 0.3},
		{-0.2, 0, 1, 0},
	}

	for _, tt := range tests {
		if got := clampRange(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("clampRange(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}
