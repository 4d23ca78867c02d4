package config

import (
	"os"
	"testing"
	"time"
)

const (
	testEnvPostgresDSN = "POSTGRES_DSN"
	testPostgresDSN    = "postgres://localhost/test"
	testErrLoad        = "Load() error = %v"
)

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv(testEnvPostgresDSN)

	_, err := Load()
	if err == nil {
		t.Error("expected error for missing required env vars")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(testEnvPostgresDSN, testPostgresDSN)

	// Explicitly unset variables that might be in .env to test actual defaults
	os.Unsetenv("APP_ENV")
	os.Unsetenv("DEFAULT_TENANT")
	os.Unsetenv("DEFAULT_BRAND")
	os.Unsetenv("LLM_MODEL")
	os.Unsetenv("STRATEGIC_CACHE_TTL")
	os.Unsetenv("API_PORT")
	os.Unsetenv("POLL_SCHEDULE")
	os.Unsetenv("SENTIMENT_MIN_CONFIDENCE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf(testErrLoad, err)
	}

	if cfg.AppEnv != "local" {
		t.Errorf("AppEnv default = %q, want %q", cfg.AppEnv, "local")
	}

	if cfg.DefaultTenant != "the-core-school" {
		t.Errorf("DefaultTenant default = %q", cfg.DefaultTenant)
	}

	if cfg.DefaultBrand != "The Core School" {
		t.Errorf("DefaultBrand default = %q", cfg.DefaultBrand)
	}

	if cfg.LLMModel != "gpt-4o-mini" {
		t.Errorf("LLMModel default = %q", cfg.LLMModel)
	}

	if cfg.StrategicCacheTTL != time.Minute {
		t.Errorf("StrategicCacheTTL default = %v, want 1m", cfg.StrategicCacheTTL)
	}

	if cfg.APIPort != 8080 {
		t.Errorf("APIPort default = %d, want 8080", cfg.APIPort)
	}

	if cfg.PollSchedule != "0 */6 * * *" {
		t.Errorf("PollSchedule default = %q", cfg.PollSchedule)
	}

	if cfg.SentimentMinConfidence != 0.6 {
		t.Errorf("SentimentMinConfidence default = %v, want 0.6", cfg.SentimentMinConfidence)
	}
}

func TestLoad_FeedURLs(t *testing.T) {
	t.Setenv(testEnvPostgresDSN, testPostgresDSN)
	t.Setenv("NEWS_FEED_URLS", "https://a.example/feed,https://b.example/rss")

	cfg, err := Load()
	if err != nil {
		t.Fatalf(testErrLoad, err)
	}

	if len(cfg.NewsFeedURLs) != 2 {
		t.Fatalf("NewsFeedURLs length = %d, want 2", len(cfg.NewsFeedURLs))
	}

	if cfg.NewsFeedURLs[1] != "https://b.example/rss" {
		t.Errorf("NewsFeedURLs[1] = %q", cfg.NewsFeedURLs[1])
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv(testEnvPostgresDSN, testPostgresDSN)
	t.Setenv("EXTERNAL_CLASSIFIER_TIMEOUT", "not-a-duration")

	_, err := Load()
	if err == nil {
		t.Error("expected error for invalid EXTERNAL_CLASSIFIER_TIMEOUT")
	}
}
