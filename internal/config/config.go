package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	FrontendURL string

	NewsAPIKey         string
	NewsAPIURL         string
	FinnhubAPIKey      string
	AlphaVantageAPIKey string
	MassiveAPIKey      string

	LLMProvider     string
	GeminiAPIKey    string
	GeminiModel     string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	NewsCacheTTL       time.Duration
	SummaryConcurrency int

	NewsCountry    string
	NewsCategory   string
	IngestPageSize int
	IngestSources  []string
	IngestSchedule string
	BucketLocation *time.Location
}

// Load reads the process environment, after merging a .env file from the
// working directory if one exists.
func Load() Config {
	godotenv.Load()

	return Config{
		Port:        getString("PORT", "5000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		FrontendURL: os.Getenv("FRONTEND_URL"),

		NewsAPIKey:         os.Getenv("NEWS_API_KEY"),
		NewsAPIURL:         getString("NEWS_API_URL", "https://newsapi.org"),
		FinnhubAPIKey:      os.Getenv("FINNHUB_API_KEY"),
		AlphaVantageAPIKey: os.Getenv("ALPHA_VANTAGE_API_KEY"),
		MassiveAPIKey:      os.Getenv("MASSIVE_API_KEY"),

		LLMProvider:     strings.ToLower(getString("LLM_PROVIDER", "gemini")),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getString("GEMINI_MODEL", "gemini-2.0-flash"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),

		NewsCacheTTL:       getDuration("NEWS_CACHE_TTL", 10*time.Minute),
		SummaryConcurrency: getInt("SUMMARY_CONCURRENCY", 5),

		NewsCountry:    getString("NEWS_COUNTRY", "us"),
		NewsCategory:   getString("NEWS_CATEGORY", "business"),
		IngestPageSize: getInt("INGEST_PAGE_SIZE", 10),
		IngestSources:  getList("INGEST_SOURCES", []string{"newsapi"}),
		IngestSchedule: os.Getenv("INGEST_SCHEDULE"),
		BucketLocation: getLocation("TZ_BUCKET"),
	}
}

func getString(name, defaultValue string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return defaultValue
}

func getInt(name string, defaultValue int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return defaultValue
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		slog.Warn("invalid environment value, using default", "name", name, "value", raw, "default", defaultValue)
		return defaultValue
	}
	return v
}

func getDuration(name string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return defaultValue
	}

	v, err := time.ParseDuration(raw)
	if err != nil || v < 0 {
		slog.Warn("invalid environment value, using default", "name", name, "value", raw, "default", defaultValue)
		return defaultValue
	}
	return v
}

func getList(name string, defaultValue []string) []string {
	raw := os.Getenv(name)
	if raw == "" {
		return defaultValue
	}

	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getLocation(name string) *time.Location {
	raw := os.Getenv(name)
	if raw == "" {
		return time.Local
	}

	loc, err := time.LoadLocation(raw)
	if err != nil {
		slog.Warn("invalid time zone, using local", "name", name, "value", raw, "error", err)
		return time.Local
	}
	return loc
}
