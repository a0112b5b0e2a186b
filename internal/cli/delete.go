package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a journal entry",
	Long: `Delete a journal entry by its ID.

Find the ID with 'worthkeeping list -v'.

Examples:
  worthkeeping delete 0b9c6f1e-4e6a-4c2d-9a1e-8f3b2c7d5e4a
  worthkeeping delete 0b9c6f1e-4e6a-4c2d-9a1e-8f3b2c7d5e4a --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	id := args[0]
	ctx := context.Background()

	if !deleteForce {
		fmt.Printf("Delete entry %s? [y/N] ", id)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	journalSvc, _, _, err := getServices(false)
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}

	deleted, err := journalSvc.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if !deleted {
		return fmt.Errorf("entry not found: %s", id)
	}

	fmt.Printf("Deleted entry %s\n", id)
	return nil
}
