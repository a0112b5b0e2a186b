package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sjha2048/worthkeeping.app/internal/models"
	"github.com/sjha2048/worthkeeping.app/internal/parser"
)

var (
	listLimit int
	listRange string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent journal entries",
	Long: `List the most recently captured journal entries, newest first.

The optional --range flag takes the same natural-language time expressions
as search and lists everything in that window.

Examples:
  worthkeeping list
  worthkeeping list --limit 50
  worthkeeping list --range "last week"
  worthkeeping list -v`,
	RunE: runList,
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 10, "max entries")
	listCmd.Flags().StringVar(&listRange, "range", "", "time range, e.g. \"last week\" or \"this quarter\"")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	journalSvc, searchSvc, _, err := getServices(false)
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}

	var entries []models.JournalEntry
	if listRange != "" {
		timeQuery := parser.ParseTimeQuery(listRange, time.Now())
		if timeQuery == nil {
			return fmt.Errorf("unrecognized time range: %q", listRange)
		}
		entries, err = searchSvc.EntriesFor(ctx, timeQuery)
	} else {
		entries, err = journalSvc.Recent(ctx, listLimit)
	}
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No entries yet. Capture one with 'worthkeeping add'.")
		return nil
	}

	fmt.Printf("Entries (%d):\n\n", len(entries))
	for _, entry := range entries {
		pendingMark := ""
		if !entry.HasEmbedding() {
			pendingMark = " [pending embed]"
		}
		fmt.Printf("- %s  %s%s\n", entry.Created.Format("2006-01-02 15:04"), entry.Text, pendingMark)
		if entry.URL != nil {
			fmt.Printf("  %s\n", *entry.URL)
		}
		if verbose {
			fmt.Printf("  id: %s, source: %s\n", models.MustRecordIDString(entry.ID), entry.Source)
		}
	}

	return nil
}
