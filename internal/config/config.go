package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr  string
	MetricsAddr string
	BaseURL     string

	// Database
	DatabaseURL string

	// Redis cache for keyword research responses. Empty disables caching.
	RedisURL string

	// YouTube Data API
	YouTubeAPIKey string
	YouTubeRegion string  // regionCode passed to search, e.g. "US"
	YouTubeRPS    float64 // client-side request pacing, 0 disables

	// Research
	ResearchMaxResults int           // top-N results analyzed per suggestion
	ResearchCacheTTL   time.Duration // Redis TTL for research responses

	// Rank tracking
	RankSearchWindow  int           // top-N window scanned for a tracked video
	RankCheckDelay    time.Duration // pacing delay after each successful check
	RankCheckInterval time.Duration // scheduler cadence

	// Demand score benchmarks
	BenchmarkDailyViews float64
	BenchmarkLikes      float64
	BenchmarkComments   float64

	// AI metadata generation
	OpenAIAPIKey string
	OpenAIModel  string

	// Audit queue
	AuditWorkers int

	// CORS
	CORSOrigins string // Comma-separated allowed origins
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	cfg := &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":8080"),
		MetricsAddr: getEnv("METRICS_ADDR", ":9090"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/tuberank?sslmode=disable"),
		RedisURL:    getEnv("REDIS_URL", ""),

		YouTubeAPIKey: getEnv("YOUTUBE_API_KEY", ""),
		YouTubeRegion: getEnv("YOUTUBE_REGION", "US"),
		YouTubeRPS:    getEnvFloat("YOUTUBE_RPS", 8),

		ResearchMaxResults: getEnvInt("RESEARCH_MAX_RESULTS", 10),
		ResearchCacheTTL:   getEnvDuration("RESEARCH_CACHE_TTL", 6*time.Hour),

		RankSearchWindow: getEnvInt("RANK_SEARCH_WINDOW", 50),
		RankCheckDelay:   getEnvDuration("RANK_CHECK_DELAY", 100*time.Millisecond),

		BenchmarkDailyViews: getEnvFloat("BENCHMARK_DAILY_VIEWS", 50000),
		BenchmarkLikes:      getEnvFloat("BENCHMARK_LIKES", 10000),
		BenchmarkComments:   getEnvFloat("BENCHMARK_COMMENTS", 500),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		AuditWorkers: getEnvInt("AUDIT_WORKERS", 2),

		CORSOrigins: getEnv("CORS_ORIGINS", ""),
	}

	// Daily cadence in production, short cadence in development so rank
	// checks can be observed without waiting a day.
	defaultInterval := 24 * time.Hour
	if cfg.IsDev() {
		defaultInterval = 15 * time.Minute
	}
	cfg.RankCheckInterval = getEnvDuration("RANK_CHECK_INTERVAL", defaultInterval)

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
