package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Embedding service (Cohere-compatible embed API)
	EmbeddingBaseURL   string
	EmbeddingAPIKey    string
	EmbeddingModelName string

	// Answer generation (OpenAI-compatible chat completions API)
	LLMBaseURL   string
	LLMAPIKey    string
	LLMModelName string

	// Vector store
	QdrantURL        string
	QdrantCollection string
	QdrantVectorSize int

	// Chunking parameters (runes)
	ChunkSize    int
	ChunkOverlap int

	// Retrieval and context assembly
	TopK             int
	MaxContextLength int
	ConfidenceScale  float64

	// Bound on retrieval+generation per request. Zero disables the bound.
	RequestTimeout time.Duration

	DBPath    string
	APIPort   string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up a few directories to find a project-root .env
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "https://api.cohere.com"),
		EmbeddingAPIKey:    getEnv("EMBEDDING_API_KEY", ""),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL", "embed-english-v3.0"),
		LLMBaseURL:         getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMAPIKey:          getEnv("LLM_API_KEY", "dummy-key"),
		LLMModelName:       getEnv("LLM_MODEL", "llama-3.1-8b-instant"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "book_content"),
		DBPath:             getEnv("DB_PATH", "./data/bookchat.db"),
		APIPort:            getEnv("API_PORT", "9000"),
	}

	// Vector size must match the embedding model output; there is no safe default.
	vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.QdrantVectorSize = vectorSize

	if cfg.ChunkSize, err = getEnvInt("CHUNK_SIZE", 512); err != nil {
		return nil, err
	}
	if cfg.ChunkOverlap, err = getEnvInt("CHUNK_OVERLAP", 50); err != nil {
		return nil, err
	}
	if cfg.TopK, err = getEnvInt("TOP_K", 5); err != nil {
		return nil, err
	}
	if cfg.MaxContextLength, err = getEnvInt("MAX_CONTEXT_LENGTH", 2000); err != nil {
		return nil, err
	}

	scaleStr := getEnv("CONFIDENCE_SCALE", "1.0")
	scale, err := strconv.ParseFloat(scaleStr, 64)
	if err != nil {
		return nil, fmt.Errorf("CONFIDENCE_SCALE must be a valid float: %w", err)
	}
	cfg.ConfidenceScale = scale

	timeoutSec, err := getEnvInt("REQUEST_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	cfg.RequestTimeout = time.Duration(timeoutSec) * time.Second

	if err := parseLogSettings(cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Create the data directory for the SQLite file if needed.
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// validate checks cross-field constraints. Violations are configuration
// errors: fatal at startup, never per-request.
func (c *Config) validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be greater than 0, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("CHUNK_OVERLAP must not be negative, got %d", c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP (%d) must be smaller than CHUNK_SIZE (%d)", c.ChunkOverlap, c.ChunkSize)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("TOP_K must be greater than 0, got %d", c.TopK)
	}
	if c.MaxContextLength <= 0 {
		return fmt.Errorf("MAX_CONTEXT_LENGTH must be greater than 0, got %d", c.MaxContextLength)
	}
	if c.ConfidenceScale <= 0 {
		return fmt.Errorf("CONFIDENCE_SCALE must be greater than 0, got %v", c.ConfidenceScale)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must not be negative")
	}
	return nil
}

// parseLogSettings parses LOG_LEVEL and LOG_FORMAT into the config.
func parseLogSettings(cfg *Config) error {
	levelStr := getEnv("LOG_LEVEL", "info")
	switch levelStr {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "info":
		cfg.LogLevel = slog.LevelInfo
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error; got %q", levelStr)
	}

	format := getEnv("LOG_FORMAT", "text")
	if format != "text" && format != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", format)
	}
	cfg.LogFormat = format

	return nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return parsed, nil
}
