package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort  string
	LogLevel string

	DocumentPath string

	ChunkSize    int
	ChunkOverlap int
	RAGTopK      int

	OpenAIAPIKey     string
	OpenAIBaseURL    string
	OpenAIGenModel   string
	OpenAIEmbedModel string

	RetryMaxAttempts    int
	RetryInitialBackoff time.Duration
	RetryMaxBackoff     time.Duration
	BreakerEnabled      bool
}

// Load reads configuration from the environment, after loading an optional
// .env file. Missing or malformed values fall back to defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIPort:  env("API_PORT", "8080"),
		LogLevel: env("LOG_LEVEL", "info"),

		DocumentPath: env("DOCUMENT_PATH", "./RagDocument.txt"),

		ChunkSize:    envInt("CHUNK_SIZE", 200),
		ChunkOverlap: envInt("CHUNK_OVERLAP", 0),
		RAGTopK:      envInt("RAG_TOP_K", 3),

		OpenAIAPIKey:     env("OPENAI_API_KEY", ""),
		OpenAIBaseURL:    env("OPENAI_BASE_URL", ""),
		OpenAIGenModel:   env("OPENAI_GEN_MODEL", "gpt-4o"),
		OpenAIEmbedModel: env("OPENAI_EMBED_MODEL", "text-embedding-3-small"),

		RetryMaxAttempts:    envInt("RETRY_MAX_ATTEMPTS", 3),
		RetryInitialBackoff: envDuration("RETRY_INITIAL_BACKOFF", 200*time.Millisecond),
		RetryMaxBackoff:     envDuration("RETRY_MAX_BACKOFF", 2*time.Second),
		BreakerEnabled:      envBool("BREAKER_ENABLED", true),
	}
}

func env(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
