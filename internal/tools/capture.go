package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sjha2048/worthkeeping.app/internal/models"
	"github.com/sjha2048/worthkeeping.app/internal/service"
)

// CaptureInput defines the input schema for the capture_entry tool.
type CaptureInput struct {
	Text  string `json:"text" jsonschema:"required,The accomplishment to record"`
	URL   string `json:"url,omitempty" jsonschema:"Optional URL the work relates to (PR, doc, ticket)"`
	Title string `json:"title,omitempty" jsonschema:"Optional human-readable title for the URL"`
}

// captureOutput is the JSON payload returned on success.
type captureOutput struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Embedded bool   `json:"embedded"`
	Created  string `json:"created"`
}

// NewCaptureHandler creates the capture_entry tool handler.
func NewCaptureHandler(deps *Dependencies) mcp.ToolHandlerFor[CaptureInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CaptureInput) (*mcp.CallToolResult, any, error) {
		if input.Text == "" {
			return ErrorResult("Text cannot be empty", "Provide the accomplishment to record"), nil, nil
		}

		entry, err := deps.Journal.Capture(ctx, service.CaptureInput{
			Text:  input.Text,
			URL:   input.URL,
			Title: input.Title,
		})
		if err != nil {
			deps.Logger.Error("capture failed", "error", err)
			return ErrorResult("Failed to capture entry", "Database may be unavailable"), nil, nil
		}

		out := captureOutput{
			ID:       models.MustRecordIDString(entry.ID),
			Text:     entry.Text,
			Embedded: entry.HasEmbedding(),
			Created:  entry.Created.Format("2006-01-02 15:04"),
		}
		jsonBytes, _ := json.MarshalIndent(out, "", "  ")
		return TextResult(string(jsonBytes)), nil, nil
	}
}
