package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Upstream services
	TBABaseURL        string
	TBAAPIKey         string
	StatboticsBaseURL string
	BatchFetchTimeout time.Duration
	ServeFetchTimeout time.Duration
	FetchThrottle     time.Duration

	// Serving cache
	RatingCacheTTL time.Duration
	RedisURL       string // optional; empty = in-memory cache

	// Artifacts
	ModelDir string
	DataDir  string

	// Pipeline
	Years []int
}

// Load loads configuration from environment variables. The TBA API key
// is only required by the batch pipeline; callers that need it use
// RequireTBAKey.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		TBABaseURL:        getEnv("TBA_BASE_URL", "https://www.thebluealliance.com/api/v3"),
		TBAAPIKey:         getEnv("TBA_API_KEY", ""),
		StatboticsBaseURL: getEnv("STATBOTICS_BASE_URL", "https://api.statbotics.io/v3"),
		BatchFetchTimeout: getEnvDuration("BATCH_FETCH_TIMEOUT", 30*time.Second),
		ServeFetchTimeout: getEnvDuration("SERVE_FETCH_TIMEOUT", 10*time.Second),
		FetchThrottle:     getEnvDuration("FETCH_THROTTLE", 1100*time.Millisecond),

		RatingCacheTTL: getEnvDuration("RATING_CACHE_TTL", 10*time.Minute),
		RedisURL:       getEnv("REDIS_URL", ""),

		ModelDir: getEnv("MODEL_DIR", "models"),
		DataDir:  getEnv("DATA_DIR", "data"),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "*")
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	years, err := parseYears(getEnv("YEARS", ""), time.Now().UTC().Year())
	if err != nil {
		return nil, err
	}
	cfg.Years = years

	return cfg, nil
}

// RequireTBAKey fails when the match data API key is missing. Only the
// pipeline needs it; the server never talks to that service.
func (c *Config) RequireTBAKey() error {
	if c.TBAAPIKey == "" {
		return fmt.Errorf("missing required environment variable: TBA_API_KEY")
	}
	return nil
}

// parseYears parses the comma-separated YEARS value, defaulting to the
// last 3 completed seasons. An unparseable entry is a configuration
// error, not something to skip silently.
func parseYears(raw string, currentYear int) ([]int, error) {
	if raw == "" {
		return []int{currentYear - 3, currentYear - 2, currentYear - 1}, nil
	}

	seen := make(map[int]bool)
	var years []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		y, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid year in YEARS: %q", part)
		}
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	if len(years) == 0 {
		return nil, fmt.Errorf("YEARS provided but empty")
	}
	sort.Ints(years)
	return years, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
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
