// Package tools provides MCP tool handlers and registration.
package tools

import (
	"log/slog"

	"github.com/sjha2048/worthkeeping.app/internal/service"
)

// Dependencies holds shared services for tool handlers.
// Passed to handler factories via closure capture.
type Dependencies struct {
	Journal  *service.JournalService
	Search   *service.SearchService
	Insights *service.InsightsService
	Logger   *slog.Logger
}
