// Package export writes journal entries to portable formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/sjha2048/worthkeeping.app/internal/models"
)

// csvHeader is the column layout of an export file.
var csvHeader = []string{"id", "created", "text", "url", "title", "source", "external_id", "embedded"}

// WriteCSV writes entries as CSV. The embedding vector itself is not
// exported, only whether one exists.
func WriteCSV(w io.Writer, entries []models.JournalEntry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, entry := range entries {
		record := []string{
			models.MustRecordIDString(entry.ID),
			entry.Created.UTC().Format(time.RFC3339),
			entry.Text,
			deref(entry.URL),
			deref(entry.Title),
			entry.Source,
			deref(entry.ExternalID),
			fmt.Sprintf("%t", entry.HasEmbedding()),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
