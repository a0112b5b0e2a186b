package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sjha2048/worthkeeping.app/internal/export"
	"github.com/sjha2048/worthkeeping.app/internal/parser"
)

var exportRange string

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export the journal to CSV",
	Long: `Export journal entries to a CSV file for backup or a spreadsheet.

Pass "-" as the path to write to stdout. The optional --range flag takes
the same natural-language time expressions as search.

Examples:
  worthkeeping export journal.csv
  worthkeeping export - | head
  worthkeeping export q2.csv --range "last quarter"
  worthkeeping export week.csv --range "this week"`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportRange, "range", "", "time range, e.g. \"last quarter\" or \"this month\"")
}

func runExport(cmd *cobra.Command, args []string) error {
	exportPath := args[0]
	ctx := context.Background()

	_, searchSvc, _, err := getServices(false)
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}

	timeQuery := parser.ParseTimeQuery(exportRange, time.Now())
	if exportRange != "" && timeQuery == nil {
		return fmt.Errorf("unrecognized time range: %q", exportRange)
	}

	entries, err := searchSvc.EntriesFor(ctx, timeQuery)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No entries to export.")
		return nil
	}

	out := os.Stdout
	if exportPath != "-" {
		f, err := os.Create(exportPath)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := export.WriteCSV(out, entries); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	if exportPath != "-" {
		fmt.Printf("Exported %d entries to %s\n", len(entries), exportPath)
	}
	return nil
}
