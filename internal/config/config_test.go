package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := defaults()

	if cfg.SurrealDBURL != "ws://localhost:8000/rpc" {
		t.Errorf("SurrealDBURL = %q", cfg.SurrealDBURL)
	}
	if cfg.EmbedProvider != ProviderOllama {
		t.Errorf("EmbedProvider = %q", cfg.EmbedProvider)
	}
	if cfg.EmbedDimension != 384 {
		t.Errorf("EmbedDimension = %d", cfg.EmbedDimension)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("SURREALDB_DATABASE", "scratch")
	t.Setenv("WORTHKEEPING_EMBED_PROVIDER", "OpenAI")
	t.Setenv("WORTHKEEPING_EMBED_DIMENSION", "1536")
	t.Setenv("WORTHKEEPING_LOG_LEVEL", "debug")

	cfg := defaults()
	cfg.applyEnv()

	if cfg.SurrealDBDatabase != "scratch" {
		t.Errorf("SurrealDBDatabase = %q", cfg.SurrealDBDatabase)
	}
	if cfg.EmbedProvider != ProviderOpenAI {
		t.Errorf("EmbedProvider = %q", cfg.EmbedProvider)
	}
	if cfg.EmbedDimension != 1536 {
		t.Errorf("EmbedDimension = %d", cfg.EmbedDimension)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
}

func TestFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worthkeeping.yaml")
	content := `
surrealdb:
  database: fromfile
embedding:
  model: nomic-embed-text
  dimension: 768
github:
  user: octocat
log:
  level: warn
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := defaults()
	if err := cfg.applyFile(path); err != nil {
		t.Fatal(err)
	}

	if cfg.SurrealDBDatabase != "fromfile" {
		t.Errorf("SurrealDBDatabase = %q", cfg.SurrealDBDatabase)
	}
	if cfg.EmbedModel != "nomic-embed-text" {
		t.Errorf("EmbedModel = %q", cfg.EmbedModel)
	}
	if cfg.EmbedDimension != 768 {
		t.Errorf("EmbedDimension = %d", cfg.EmbedDimension)
	}
	if cfg.GitHubUser != "octocat" {
		t.Errorf("GitHubUser = %q", cfg.GitHubUser)
	}
	if cfg.LogLevel != slog.LevelWarn {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	// Untouched fields keep their defaults.
	if cfg.SurrealDBNamespace != "worthkeeping" {
		t.Errorf("SurrealDBNamespace = %q", cfg.SurrealDBNamespace)
	}
}

func TestEnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worthkeeping.yaml")
	if err := os.WriteFile(path, []byte("surrealdb:\n  database: fromfile\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SURREALDB_DATABASE", "fromenv")

	cfg := defaults()
	if err := cfg.applyFile(path); err != nil {
		t.Fatal(err)
	}
	cfg.applyEnv()

	if cfg.SurrealDBDatabase != "fromenv" {
		t.Errorf("SurrealDBDatabase = %q, want fromenv", cfg.SurrealDBDatabase)
	}
}

func TestApplyFileMissing(t *testing.T) {
	cfg := defaults()
	err := cfg.applyFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if !os.IsNotExist(err) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"Warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetupLoggerWithWriters(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelInfo)

	logger.Info("hello", "key", "value")

	if stderr.Len() == 0 {
		t.Error("nothing written to stderr handler")
	}
	var record map[string]any
	if err := json.Unmarshal(file.Bytes(), &record); err != nil {
		t.Fatalf("file output is not JSON: %v", err)
	}
	if record["msg"] != "hello" || record["key"] != "value" {
		t.Errorf("record = %v", record)
	}
}
