// Package config loads configuration from defaults, an optional YAML file
// and environment variables, in increasing order of precedence.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Provider identifies an embedding or LLM backend.
type Provider string

const (
	ProviderOllama    Provider = "ollama"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// Defaults for the local embedding model.
const (
	DefaultEmbedModel     = "all-minilm:l6-v2"
	DefaultEmbedDimension = 384
)

// Config holds all configuration values.
type Config struct {
	// SurrealDB connection
	SurrealDBURL       string
	SurrealDBNamespace string
	SurrealDBDatabase  string
	SurrealDBUser      string
	SurrealDBPass      string
	SurrealDBAuthLevel string

	// Embeddings
	EmbedProvider  Provider
	EmbedModel     string
	EmbedDimension int
	OllamaHost     string

	// Review LLM
	LLMProvider     Provider
	LLMModel        string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	// GitHub import
	GitHubToken string
	GitHubUser  string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

func defaults() Config {
	return Config{
		SurrealDBURL:       "ws://localhost:8000/rpc",
		SurrealDBNamespace: "worthkeeping",
		SurrealDBDatabase:  "journal",
		SurrealDBUser:      "root",
		SurrealDBPass:      "root",
		SurrealDBAuthLevel: "root",

		EmbedProvider:  ProviderOllama,
		EmbedModel:     DefaultEmbedModel,
		EmbedDimension: DefaultEmbedDimension,
		OllamaHost:     "http://localhost:11434",

		LLMProvider: ProviderOllama,
		LLMModel:    "llama3.2",

		LogFile:  filepath.Join(os.TempDir(), "worthkeeping.log"),
		LogLevel: slog.LevelInfo,
	}
}

// Load reads configuration: built-in defaults, then the YAML file at
// ~/.worthkeeping.yaml (or WORTHKEEPING_CONFIG), then environment variables.
func Load() Config {
	cfg := defaults()
	if path := configPath(); path != "" {
		// A missing file is fine; a malformed one falls back with a warning.
		if err := cfg.applyFile(path); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to load config file", "path", path, "error", err)
		}
	}
	cfg.applyEnv()
	return cfg
}

func (c *Config) applyEnv() {
	setEnv(&c.SurrealDBURL, "SURREALDB_URL")
	setEnv(&c.SurrealDBNamespace, "SURREALDB_NAMESPACE")
	setEnv(&c.SurrealDBDatabase, "SURREALDB_DATABASE")
	setEnv(&c.SurrealDBUser, "SURREALDB_USER")
	setEnv(&c.SurrealDBPass, "SURREALDB_PASS")
	setEnv(&c.SurrealDBAuthLevel, "SURREALDB_AUTH_LEVEL")

	if v := os.Getenv("WORTHKEEPING_EMBED_PROVIDER"); v != "" {
		c.EmbedProvider = Provider(strings.ToLower(v))
	}
	setEnv(&c.EmbedModel, "WORTHKEEPING_EMBED_MODEL")
	if v := os.Getenv("WORTHKEEPING_EMBED_DIMENSION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.EmbedDimension = n
		}
	}
	setEnv(&c.OllamaHost, "OLLAMA_HOST")

	if v := os.Getenv("WORTHKEEPING_LLM_PROVIDER"); v != "" {
		c.LLMProvider = Provider(strings.ToLower(v))
	}
	setEnv(&c.LLMModel, "WORTHKEEPING_LLM_MODEL")
	setEnv(&c.OpenAIAPIKey, "OPENAI_API_KEY")
	setEnv(&c.AnthropicAPIKey, "ANTHROPIC_API_KEY")

	setEnv(&c.GitHubToken, "GITHUB_TOKEN")
	setEnv(&c.GitHubUser, "WORTHKEEPING_GITHUB_USER")

	setEnv(&c.LogFile, "WORTHKEEPING_LOG_FILE")
	if v := os.Getenv("WORTHKEEPING_LOG_LEVEL"); v != "" {
		c.LogLevel = parseLogLevel(v)
	}
}

func setEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// configPath returns the config file location: WORTHKEEPING_CONFIG if set,
// otherwise ~/.worthkeeping.yaml.
func configPath() string {
	if p := os.Getenv("WORTHKEEPING_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".worthkeeping.yaml")
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
