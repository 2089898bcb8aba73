// ABOUTME: Centralized configuration for the resume chatbot
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all configuration for the chatbot. Required fields are
// validated at startup; a missing value is fatal, the process must not
// serve requests without them.
type Config struct {
	// OpenAI settings
	OpenAIKey          string `validate:"required"`
	ChatModel          string `validate:"required"`
	EmbeddingModel     string `validate:"required"`
	EmbeddingDimension int    `validate:"gt=0"`

	// Vector index settings
	VectorDBEndpoint string `validate:"required,url"`
	VectorDBAPIKey   string `validate:"required"`
	Namespace        string `validate:"required"`
	Collection       string `validate:"required"`
	Metric           string `validate:"oneof=dot_product cosine euclidean"`

	// Ingestion settings
	SourceURLs   []string `validate:"dive,url"`
	ChunkSize    int      `validate:"gt=0"`
	ChunkOverlap int      `validate:"gte=0"`

	// Retrieval settings
	TopK int `validate:"gt=0"`

	// Server settings
	ListenAddr string `validate:"required"`

	// Upstream call settings
	Timeout    time.Duration
	MaxRetries int `validate:"gte=0,lte=10"`
	RetryDelay time.Duration
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		ChatModel:          getEnv("CHAT_MODEL", "gpt-4.1-mini"),
		EmbeddingModel:     getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		EmbeddingDimension: getEnvInt("EMBEDDING_DIMENSION", 1536),
		VectorDBEndpoint:   os.Getenv("VECTOR_DB_ENDPOINT"),
		VectorDBAPIKey:     os.Getenv("VECTOR_DB_API_KEY"),
		Namespace:          getEnv("VECTOR_DB_NAMESPACE", "default"),
		Collection:         os.Getenv("VECTOR_DB_COLLECTION"),
		Metric:             getEnv("SIMILARITY_METRIC", "dot_product"),
		SourceURLs:         getEnvList("SOURCE_URLS"),
		ChunkSize:          getEnvInt("CHUNK_SIZE", 512),
		ChunkOverlap:       getEnvInt("CHUNK_OVERLAP", 100),
		TopK:               getEnvInt("TOP_K", 10),
		ListenAddr:         getEnv("LISTEN_ADDR", "127.0.0.1:8080"),
		Timeout:            getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:         getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:         getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
	}

	return cfg, cfg.Validate()
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP (%d) must be smaller than CHUNK_SIZE (%d)", c.ChunkOverlap, c.ChunkSize)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
