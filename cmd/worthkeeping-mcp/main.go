// Package main provides the entry point for the worthkeeping MCP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sjha2048/worthkeeping.app/internal/config"
	"github.com/sjha2048/worthkeeping.app/internal/db"
	"github.com/sjha2048/worthkeeping.app/internal/llm"
	"github.com/sjha2048/worthkeeping.app/internal/metrics"
	"github.com/sjha2048/worthkeeping.app/internal/search"
	"github.com/sjha2048/worthkeeping.app/internal/server"
	"github.com/sjha2048/worthkeeping.app/internal/service"
	"github.com/sjha2048/worthkeeping.app/internal/tools"
)

const version = "0.1.0"

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger (dual output: stderr text + file JSON)
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	// Log startup info
	logger.Info("worthkeeping-mcp starting",
		"version", version,
		"surrealdb_url", cfg.SurrealDBURL,
		"embed_model", cfg.EmbedModel,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Connect to database
	dbCfg := db.Config{
		URL:       cfg.SurrealDBURL,
		Namespace: cfg.SurrealDBNamespace,
		Database:  cfg.SurrealDBDatabase,
		Username:  cfg.SurrealDBUser,
		Password:  cfg.SurrealDBPass,
		AuthLevel: cfg.SurrealDBAuthLevel,
	}

	dbClient, err := db.NewClient(ctx, dbCfg, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		logger.Info("closing database connection")
		_ = dbClient.Close(ctx)
	}()

	// Initialize database schema
	if err := dbClient.InitSchema(ctx, cfg.EmbedDimension); err != nil {
		logger.Error("failed to initialize database schema", "error", err)
		os.Exit(1)
	}

	// Create embedder
	embedder, err := llm.NewEmbedder(cfg)
	if err != nil {
		logger.Error("failed to create embedder", "error", err)
		os.Exit(1)
	}
	logger.Info("embedder initialized", "model", embedder.Model())

	// The review LLM is optional; tools degrade without it.
	model, err := llm.NewModel(cfg)
	if err != nil {
		logger.Warn("review model unavailable", "error", err)
	}

	// Create and setup server
	srv := server.New(version, logger)
	srv.Setup()

	// Wire services and register tools
	stats := metrics.NewCollector()
	engine := search.NewEngine(embedder, logger)

	var reviewer service.Reviewer
	if model != nil {
		reviewer = model
	}

	deps := &tools.Dependencies{
		Journal:  service.NewJournalService(dbClient, embedder, stats),
		Search:   service.NewSearchService(dbClient, engine, reviewer, stats),
		Insights: service.NewInsightsService(dbClient),
		Logger:   logger,
	}
	tools.RegisterAll(srv.MCPServer(), deps)
	logger.Info("tools registered", "count", 5)

	// Log ready state
	logger.Info("server ready, awaiting connections")

	// Run server (blocks until disconnect or context cancelled)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	// Operation timings for the session, useful when diagnosing slow tools.
	snapshot := stats.Snapshot()
	logger.Info("session metrics", "uptime_seconds", snapshot.UptimeSeconds)

	logger.Info("shutdown complete")
}
