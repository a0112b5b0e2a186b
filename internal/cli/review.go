package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review <question>",
	Short: "Ask a question and get an LLM-synthesized answer",
	Long: `Ask a question about your journal and get an answer synthesized from
the matching entries.

The question goes through the same retrieval as 'search'; the matches are
handed to the configured LLM as evidence, so the answer only draws on what
you actually logged.

Examples:
  worthkeeping review "what did I accomplish this quarter?"
  worthkeeping review "summarize my work on the billing service"
  worthkeeping review "what did I ship in March?"`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	_, searchSvc, _, err := getServices(true)
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}

	answer, err := searchSvc.Review(ctx, args[0])
	if err != nil {
		return fmt.Errorf("review: %w", err)
	}

	fmt.Println(answer)
	return nil
}
