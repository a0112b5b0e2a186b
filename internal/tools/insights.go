package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// InsightsInput defines the input schema for the get_insights tool.
// No parameters; the dashboard always reflects the full journal.
type InsightsInput struct{}

// NewInsightsHandler creates the get_insights tool handler.
func NewInsightsHandler(deps *Dependencies) mcp.ToolHandlerFor[InsightsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input InsightsInput) (*mcp.CallToolResult, any, error) {
		dashboard, err := deps.Insights.Dashboard(ctx)
		if err != nil {
			deps.Logger.Error("insights failed", "error", err)
			return ErrorResult("Failed to compute insights", "Database may be unavailable"), nil, nil
		}

		jsonBytes, _ := json.MarshalIndent(dashboard, "", "  ")
		return TextResult(string(jsonBytes)), nil, nil
	}
}
