package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sjha2048/worthkeeping.app/internal/llm"
	"github.com/sjha2048/worthkeeping.app/internal/service"
)

var embedBatchSize int

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Backfill embeddings for pending entries",
	Long: `Embed every entry that was captured without a vector, oldest first.

Entries end up without embeddings when the embedding model was unreachable
at capture time, or after a GitHub import. The backfill is resumable:
cancel it and run again later.

Examples:
  worthkeeping embed
  worthkeeping embed --batch-size 32`,
	RunE: runEmbed,
}

func init() {
	embedCmd.Flags().IntVar(&embedBatchSize, "batch-size", service.DefaultBackfillBatchSize, "entries per embedding call")
}

func runEmbed(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if embedder == nil {
		var err error
		embedder, err = llm.NewEmbedder(cfg)
		if err != nil {
			return fmt.Errorf("init embedder: %w", err)
		}
	}

	pending, err := dbClient.ListMissingEmbeddings(ctx)
	if err != nil {
		return fmt.Errorf("list pending entries: %w", err)
	}
	if len(pending) == 0 {
		fmt.Println("All entries already have embeddings.")
		return nil
	}

	backfill := service.NewBackfillService(dbClient, embedder, stats)
	backfill.BatchSize = embedBatchSize

	result, err := RunBackfillProgress(func(onProgress service.ProgressFunc) (*service.BackfillResult, error) {
		return backfill.Run(ctx, onProgress)
	}, len(pending))
	if err != nil {
		return err
	}

	if result != nil && result.Failed > 0 {
		return fmt.Errorf("%d entries failed to embed", result.Failed)
	}
	return nil
}
