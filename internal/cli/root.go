// Package cli provides the command-line interface for worthkeeping.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sjha2048/worthkeeping.app/internal/config"
	"github.com/sjha2048/worthkeeping.app/internal/db"
	"github.com/sjha2048/worthkeeping.app/internal/llm"
	"github.com/sjha2048/worthkeeping.app/internal/metrics"
	"github.com/sjha2048/worthkeeping.app/internal/search"
	"github.com/sjha2048/worthkeeping.app/internal/service"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config and db client
	cfg      config.Config
	dbClient *db.Client
	stats    = metrics.NewCollector()

	// Lazy-initialized LLM components
	embedder *llm.Embedder
	model    *llm.Model
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "worthkeeping",
	Short: "Personal work journal with semantic search",
	Long: `Worthkeeping is a personal work journal for capturing what you accomplish,
then finding it again when review season comes.

Capture one-line accomplishment notes (optionally with a URL), import merged
GitHub pull requests, and search everything with natural-language queries
like "what did I ship last quarter on github".`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip DB connection for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		// Load config
		cfg = config.Load()

		// Connect to database
		ctx := context.Background()
		dbCfg := db.Config{
			URL:       cfg.SurrealDBURL,
			Namespace: cfg.SurrealDBNamespace,
			Database:  cfg.SurrealDBDatabase,
			Username:  cfg.SurrealDBUser,
			Password:  cfg.SurrealDBPass,
			AuthLevel: cfg.SurrealDBAuthLevel,
		}

		var err error
		dbClient, err = db.NewClient(ctx, dbCfg, nil)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}

		// Initialize schema
		if err := dbClient.InitSchema(ctx, cfg.EmbedDimension); err != nil {
			return fmt.Errorf("initialize schema: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		// Close database connection
		if dbClient != nil {
			if err := dbClient.Close(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
			}
		}
	},
}

// getServices creates services with lazy LLM initialization.
// Commands that need embeddings pass requireLLM=true.
func getServices(requireLLM bool) (*service.JournalService, *service.SearchService, *service.InsightsService, error) {
	if requireLLM && embedder == nil {
		var err error
		embedder, err = llm.NewEmbedder(cfg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("init embedder: %w", err)
		}
		model, err = llm.NewModel(cfg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("init model: %w", err)
		}
	}

	var engine *search.Engine
	var reviewer service.Reviewer
	if embedder != nil {
		engine = search.NewEngine(embedder, nil)
	}
	if model != nil {
		reviewer = model
	}

	return service.NewJournalService(dbClient, embedderOrNil(), stats),
		service.NewSearchService(dbClient, engine, reviewer, stats),
		service.NewInsightsService(dbClient), nil
}

// embedderOrNil avoids a typed-nil interface value when the embedder was
// never initialized.
func embedderOrNil() service.Embedder {
	if embedder == nil {
		return nil
	}
	return embedder
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(embedCmd)
	rootCmd.AddCommand(statsCmd)
}
