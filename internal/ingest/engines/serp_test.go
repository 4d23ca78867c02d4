package engines

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSERPFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "mejores escuelas de cine", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"organic_results": [
				{"title": "Ranking escuelas", "link": "https://ex.am/1", "snippet": "The Core School lidera", "source": "ex.am"},
				{"title": "Sin snippet", "link": "https://ex.am/2", "snippet": "", "source": "ex.am"}
			]
		}`))
	}))
	defer srv.Close()

	engine := NewSERP(srv.URL, "test-key")

	answers, err := engine.Fetch(context.Background(), "mejores escuelas de cine")
	require.NoError(t, err)

	// Results without a snippet carry no text and are dropped.
	require.Len(t, answers, 1)
	assert.Equal(t, "The Core School lidera", answers[0].Text)
	assert.Equal(t, "Ranking escuelas", answers[0].SourceTitle)
	assert.Equal(t, "https://ex.am/1", answers[0].SourceURL)
}

func TestSERPFetchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	engine := NewSERP(srv.URL, "test-key")

	_, err := engine.Fetch(context.Background(), "query")

	assert.Error(t, err)
}
