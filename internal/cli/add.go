package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sjha2048/worthkeeping.app/internal/models"
	"github.com/sjha2048/worthkeeping.app/internal/service"
)

var (
	addURL   string
	addTitle string
)

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Capture a work accomplishment",
	Long: `Capture a one-line accomplishment note in the journal.

The note is embedded for semantic search at capture time when the embedding
model is reachable; otherwise it is stored without one and picked up by
'worthkeeping embed' later.

Examples:
  worthkeeping add "Shipped the payment retry queue"
  worthkeeping add "Reviewed the auth redesign" --url https://github.com/acme/api/pull/42
  worthkeeping add "Wrote the Q3 capacity doc" --url https://docs.acme.dev/capacity --title "Capacity plan"`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addURL, "url", "u", "", "URL the work relates to (PR, doc, ticket)")
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "title for the URL")
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	journalSvc, _, _, err := getServices(true)
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}

	entry, err := journalSvc.Capture(ctx, service.CaptureInput{
		Text:  args[0],
		URL:   addURL,
		Title: addTitle,
	})
	if err != nil {
		return fmt.Errorf("capture entry: %w", err)
	}

	fmt.Printf("Captured: %s\n", entry.Text)
	if verbose {
		fmt.Printf("  ID: %s\n", models.MustRecordIDString(entry.ID))
		fmt.Printf("  Embedded: %v\n", entry.HasEmbedding())
		if entry.URL != nil {
			fmt.Printf("  URL: %s\n", *entry.URL)
		}
	}
	if !entry.HasEmbedding() {
		fmt.Println("Note: stored without an embedding, run 'worthkeeping embed' to backfill.")
	}

	return nil
}
