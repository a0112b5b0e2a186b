package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sjha2048/worthkeeping.app/internal/service"
)

// SearchInput defines the input schema for the search_entries tool.
type SearchInput struct {
	Query    string  `json:"query" jsonschema:"required,The search query; may include time ranges like 'last week' and site filters like 'on github'"`
	Limit    int     `json:"limit,omitempty" jsonschema:"Max results 1-100, default 10"`
	MinScore float64 `json:"min_score,omitempty" jsonschema:"Minimum similarity score 0-1, default 0.3"`
}

// NewSearchHandler creates the search_entries tool handler.
func NewSearchHandler(deps *Dependencies) mcp.ToolHandlerFor[SearchInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, any, error) {
		if input.Query == "" {
			return ErrorResult("Query cannot be empty", "Provide a search query"), nil, nil
		}
		if input.Limit > 100 {
			return ErrorResult("Limit must be 1-100", "Reduce limit value"), nil, nil
		}

		result, err := deps.Search.Search(ctx, input.Query, service.SearchOptions{
			Limit:    input.Limit,
			MinScore: input.MinScore,
		})
		if err != nil {
			deps.Logger.Error("search failed", "error", err)
			return ErrorResult("Search failed", "Database or embedding model may be unavailable"), nil, nil
		}

		jsonBytes, _ := json.MarshalIndent(result, "", "  ")

		queryLog := input.Query
		if len(queryLog) > 30 {
			queryLog = queryLog[:30] + "..."
		}
		deps.Logger.Info("search completed", "query", queryLog, "results", len(result.Matches))

		return TextResult(string(jsonBytes)), nil, nil
	}
}
