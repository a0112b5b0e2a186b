package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sjha2048/worthkeeping.app/internal/models"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show journal storage statistics",
	Long: `Show how much is in the journal and what still needs embedding.

Examples:
  worthkeeping stats`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	total, err := dbClient.CountEntries(ctx)
	if err != nil {
		return fmt.Errorf("count entries: %w", err)
	}

	pending, err := dbClient.ListMissingEmbeddings(ctx)
	if err != nil {
		return fmt.Errorf("list pending entries: %w", err)
	}

	entries, err := dbClient.GetAllEntries(ctx)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}

	bySource := map[string]int{}
	for _, e := range entries {
		bySource[e.Source]++
	}

	fmt.Printf("Journal\n")
	fmt.Printf("  Entries:            %d\n", total)
	fmt.Printf("  Pending embeddings: %d\n", len(pending))
	fmt.Printf("\nBy source:\n")
	fmt.Printf("  manual: %d\n", bySource[models.SourceManual])
	fmt.Printf("  github: %d\n", bySource[models.SourceGitHub])

	if len(pending) > 0 {
		fmt.Println("\nRun 'worthkeeping embed' to backfill embeddings.")
	}

	return nil
}
