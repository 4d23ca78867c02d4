// Package config loads application configuration from the environment, with
// optional .env support for local development.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"local"`
	PostgresDSN string `env:"POSTGRES_DSN,required"`

	DefaultTenant string `env:"DEFAULT_TENANT" envDefault:"the-core-school"`
	DefaultBrand  string `env:"DEFAULT_BRAND" envDefault:"The Core School"`

	LLMAPIKey       string `env:"LLM_API_KEY" envDefault:"mock"`
	LLMModel        string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	LLMRateLimitRPS int    `env:"LLM_RATE_LIMIT_RPS" envDefault:"2"`

	ExternalTimeout       time.Duration `env:"EXTERNAL_CLASSIFIER_TIMEOUT" envDefault:"10s"`
	ExternalMaxConcurrent int64         `env:"EXTERNAL_CLASSIFIER_MAX_CONCURRENT" envDefault:"4"`
	StrategicCacheTTL     time.Duration `env:"STRATEGIC_CACHE_TTL" envDefault:"60s"`

	APIPort    int `env:"API_PORT" envDefault:"8080"`
	HealthPort int `env:"HEALTH_PORT" envDefault:"9090"`

	PollSchedule    string        `env:"POLL_SCHEDULE" envDefault:"0 */6 * * *"`
	PollTimeout     time.Duration `env:"POLL_TIMEOUT" envDefault:"2m"`
	PollConcurrency int64         `env:"POLL_CONCURRENCY" envDefault:"4"`

	SerpAPIKey     string   `env:"SERP_API_KEY"`
	SerpAPIBaseURL string   `env:"SERP_API_BASE_URL" envDefault:"https://serpapi.com"`
	NewsFeedURLs   []string `env:"NEWS_FEED_URLS" envSeparator:","`

	SentimentMinConfidence float64 `env:"SENTIMENT_MIN_CONFIDENCE" envDefault:"0.6"`
	SentimentTopN          int     `env:"SENTIMENT_TOP_N" envDefault:"20"`

	TaxonomyRefreshInterval time.Duration `env:"TAXONOMY_REFRESH_INTERVAL" envDefault:"5m"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
