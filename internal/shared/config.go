package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv          string
	HTTPAddr        string
	MetricsAddr     string
	OpenAIModel     string
	ClassifyTimeout time.Duration
	RedisAddr       string // empty disables the classification cache
	RedisDB         int
	RedisPass       string
	CacheTTL        time.Duration
	Workers         int
	SeedFile        string
	APIBase         string
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ""),
		OpenAIModel:     env("OPENAI_MODEL", "gpt-4o-mini"),
		ClassifyTimeout: time.Duration(atoi("CLASSIFY_TIMEOUT_SECONDS", 10)) * time.Second,
		RedisAddr:       env("REDIS_ADDR", ""),
		RedisPass:       env("REDIS_PASSWORD", ""),
		RedisDB:         atoi("REDIS_DB", 0),
		CacheTTL:        time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		Workers:         atoi("SEED_WORKERS", 8),
		SeedFile:        env("SEED_FILE", "reviews.txt"),
		APIBase:         env("API_BASE", "http://localhost:8080"),
	}
	if OpenAIKey() == "" {
		log.Warn().Msg("OPENAI_API_KEY is empty, classification will use fallback rules")
	}
	return c
}

// OpenAIKey reads the credential from the environment on every call so it
// can be set, rotated, or removed between requests.
func OpenAIKey() string { return os.Getenv("OPENAI_API_KEY") }

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
