package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sjha2048/worthkeeping.app/internal/service"
)

var (
	searchLimit    int
	searchMinScore float64
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search journal entries",
	Long: `Search journal entries by meaning, with substring fallback.

The query may carry natural-language time ranges and site filters, which
are resolved before ranking.

Examples:
  worthkeeping search "database migration"
  worthkeeping search "what did I ship last week"
  worthkeeping search "reviews on github this quarter"
  worthkeeping search "incident" --limit 25 --min-score 0.5`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "max results")
	searchCmd.Flags().Float64Var(&searchMinScore, "min-score", 0, "minimum similarity score (default 0.3)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	ctx := context.Background()

	// Get services (with LLM for query embedding)
	_, searchSvc, _, err := getServices(true)
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}

	result, err := searchSvc.Search(ctx, query, service.SearchOptions{
		Limit:    searchLimit,
		MinScore: searchMinScore,
	})
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if result.Time != nil || result.Site != "" {
		filters := ""
		if result.Time != nil {
			filters = result.Time.Label
		}
		if result.Site != "" {
			if filters != "" {
				filters += ", "
			}
			filters += "site:" + result.Site
		}
		fmt.Printf("Filters: %s\n\n", filters)
	}

	if len(result.Matches) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("Found %d results:\n\n", len(result.Matches))
	for i, m := range result.Matches {
		fmt.Printf("%d. [%.2f] %s  %s\n", i+1, m.Score, m.Entry.Created.Format("2006-01-02"), m.Entry.Text)
		if m.Entry.URL != nil {
			fmt.Printf("   %s\n", *m.Entry.URL)
		}
		if verbose {
			fmt.Printf("   source: %s\n", m.Entry.Source)
		}
	}

	return nil
}
