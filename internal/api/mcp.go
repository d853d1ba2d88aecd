package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kalambet/doclens/internal/action"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Agent    Processor
	Recorder Recorder // optional; if nil, the history resource reports an error
	Version  string
}

// NewMCPServer creates an MCP server exposing document analysis as tools.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	version := deps.Version
	if version == "" {
		version = "dev"
	}

	s := server.NewMCPServer(
		"doclens",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("doclens — document analysis: summarize, extract, translate, classify, and answer questions over document text."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("analyze_document",
			mcp.WithDescription("Analyze a document with a natural language request: summarize, extract entities, answer questions, translate, classify, and more."),
			mcp.WithString("query", mcp.Description("What to do with the document, in plain language"), mcp.Required()),
			mcp.WithString("document_content", mcp.Description("The document text to analyze")),
			mcp.WithString("document_id", mcp.Description("Identifier of a previously supplied document; lets follow-up requests omit the content")),
		),
		mcpAnalyzeDocument(deps),
	)

	s.AddTool(
		mcp.NewTool("capabilities",
			mcp.WithDescription("List the supported analysis actions with example phrasings."),
		),
		mcpCapabilities(),
	)

	s.AddResource(
		mcp.NewResource(
			"doclens://history",
			"Analysis History",
			mcp.WithResourceDescription("Last 10 processed queries (action and confidence only)"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceHistory(deps),
	)

	return s
}

func mcpAnalyzeDocument(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return mcpError("query is required"), nil
		}

		content := req.GetString("document_content", "")
		docID := req.GetString("document_id", "")

		env := deps.Agent.Process(ctx, query, content, docID)

		recordAnalysis(ctx, deps.Recorder, docID, env)

		b, err := json.Marshal(env)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}

		if env.ActionResult.IsError() {
			return mcpError(string(b)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpCapabilities() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		b, err := json.Marshal(action.Capabilities())
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal capabilities: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpResourceHistory(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		if deps.Recorder == nil {
			return nil, fmt.Errorf("analysis history is not configured")
		}

		analyses, err := deps.Recorder.ListAnalyses(ctx, 10)
		if err != nil {
			return nil, fmt.Errorf("failed to list analyses: %w", err)
		}

		type analysisSummary struct {
			ID         string  `json:"id"`
			CreatedAt  string  `json:"created_at"`
			Query      string  `json:"query"`
			Action     string  `json:"action"`
			Confidence float64 `json:"confidence"`
		}

		summaries := make([]analysisSummary, len(analyses))
		for i, a := range analyses {
			query := a.UserQuery
			if utf8.RuneCountInString(query) > 200 {
				runes := []rune(query)
				query = string(runes[:200]) + "..."
			}
			summaries[i] = analysisSummary{
				ID:         a.ID,
				CreatedAt:  a.CreatedAt.Format(time.RFC3339),
				Query:      query,
				Action:     a.Action,
				Confidence: a.Confidence,
			}
		}

		b, err := json.Marshal(summaries)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal analyses: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
