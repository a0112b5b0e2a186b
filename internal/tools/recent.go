package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sjha2048/worthkeeping.app/internal/models"
)

// RecentInput defines the input schema for the list_recent tool.
type RecentInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max entries to return, default 10"`
}

type recentEntry struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	URL     string `json:"url,omitempty"`
	Source  string `json:"source"`
	Created string `json:"created"`
}

// NewRecentHandler creates the list_recent tool handler.
func NewRecentHandler(deps *Dependencies) mcp.ToolHandlerFor[RecentInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input RecentInput) (*mcp.CallToolResult, any, error) {
		entries, err := deps.Journal.Recent(ctx, input.Limit)
		if err != nil {
			deps.Logger.Error("list recent failed", "error", err)
			return ErrorResult("Failed to list entries", "Database may be unavailable"), nil, nil
		}

		out := make([]recentEntry, 0, len(entries))
		for _, e := range entries {
			item := recentEntry{
				ID:      models.MustRecordIDString(e.ID),
				Text:    e.Text,
				Source:  e.Source,
				Created: e.Created.Format("2006-01-02 15:04"),
			}
			if e.URL != nil {
				item.URL = *e.URL
			}
			out = append(out, item)
		}

		jsonBytes, _ := json.MarshalIndent(out, "", "  ")
		return TextResult(string(jsonBytes)), nil, nil
	}
}
