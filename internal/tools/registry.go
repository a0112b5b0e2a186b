package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterAll registers all tools with the MCP server.
// Called from main after server creation but before Run().
func RegisterAll(server *mcp.Server, deps *Dependencies) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "ping",
		Description: "Test tool - responds with pong or echoes input",
	}, NewPingHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "capture_entry",
		Description: "Capture a work accomplishment as a journal entry, optionally with a URL",
	}, NewCaptureHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_entries",
		Description: "Search journal entries; understands natural-language time ranges (\"last week\", \"this quarter\") and site filters (\"on github\")",
	}, NewSearchHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_insights",
		Description: "Get journal statistics: entry counts, top sites, streaks, activity trend and keywords",
	}, NewInsightsHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_recent",
		Description: "List the most recently captured journal entries",
	}, NewRecentHandler(deps))
}
