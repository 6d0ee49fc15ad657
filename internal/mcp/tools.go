package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kyohei682474/1day1growth/internal/store"
	"github.com/kyohei682474/1day1growth/internal/timeline"
)

func (s *Server) registerTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "add_entry",
		Description: "Record one growth entry for today: what you worked on, how hard it was (effort 1-5), and optional tags. Entries are immutable once written.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"text": {"type": "string", "description": "What you did or learned (max 500 characters)"},
				"effort": {"type": "number", "description": "Self-rated effort from 1 (easy) to 5 (hard)"},
				"tags": {"type": "array", "items": {"type": "string"}, "description": "Optional ordered tags"}
			},
			"required": ["text", "effort"]
		}`),
	}, s.handleAddEntry)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_entries",
		Description: "List growth entries newest first, one page at a time. Pass the cursor from a previous call to fetch the next page.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"cursor": {"type": "string", "description": "Continuation cursor from the previous page"},
				"limit": {"type": "number", "description": "Page size (default 10)"}
			}
		}`),
	}, s.handleListEntries)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "current_streak",
		Description: "Compute the current streak: the number of consecutive calendar days, ending today, with at least one entry.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {}
		}`),
	}, s.handleCurrentStreak)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "search_entries",
		Description: "Search entry text, case-insensitively, newest first.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Substring to search for"},
				"limit": {"type": "number", "description": "Maximum number of results (default 10)"}
			},
			"required": ["query"]
		}`),
	}, s.handleSearchEntries)
}

func (s *Server) handleAddEntry(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Text   string   `json:"text"`
		Effort *int     `json:"effort"`
		Tags   []string `json:"tags"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.Effort == nil {
		return toolError("effort is required (1-5)"), nil
	}

	entry, err := s.db.CreateEntry(args.Text, *args.Effort, args.Tags)
	if err != nil {
		return toolError("failed to add entry: %v", err), nil
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{
			Text: fmt.Sprintf("Entry logged.\n%s", formatEntry(*entry)),
		}},
	}, nil
}

func (s *Server) handleListEntries(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Cursor string `json:"cursor"`
		Limit  int    `json:"limit"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.Limit <= 0 {
		args.Limit = s.pageSize
	}

	entries, next, err := s.db.ListEntries(args.Cursor, args.Limit)
	if err != nil {
		if errors.Is(err, store.ErrCursorNotFound) {
			return toolError("cursor not found: %s", args.Cursor), nil
		}
		return toolError("failed to list entries: %v", err), nil
	}

	if len(entries) == 0 {
		return &gomcp.CallToolResult{
			Content: []gomcp.Content{&gomcp.TextContent{Text: "No entries found."}},
		}, nil
	}

	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(formatEntry(e))
		sb.WriteString("\n")
	}
	if next != "" {
		sb.WriteString(fmt.Sprintf("\nMore entries available. Next cursor: %s", next))
	} else {
		sb.WriteString("\nEnd of timeline.")
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: sb.String()}},
	}, nil
}

func (s *Server) handleCurrentStreak(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	streak, err := timeline.CurrentStreak(s.db, s.pageSize, time.Now())
	if err != nil {
		return toolError("failed to compute streak: %v", err), nil
	}

	unit := "days"
	if streak == 1 {
		unit = "day"
	}
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{
			Text: fmt.Sprintf("Current streak: %d %s", streak, unit),
		}},
	}, nil
}

func (s *Server) handleSearchEntries(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.Query == "" {
		return toolError("query is required"), nil
	}
	if args.Limit <= 0 {
		args.Limit = s.pageSize
	}

	entries, err := s.db.SearchEntries(args.Query, args.Limit)
	if err != nil {
		return toolError("failed to search entries: %v", err), nil
	}
	if len(entries) == 0 {
		return &gomcp.CallToolResult{
			Content: []gomcp.Content{&gomcp.TextContent{Text: "No matching entries found."}},
		}, nil
	}

	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(formatEntry(e))
		sb.WriteString("\n")
	}
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: sb.String()}},
	}, nil
}

func formatEntry(e store.Entry) string {
	line := fmt.Sprintf("- %s [%d/5] %s",
		e.CreatedTime().Format("2006-01-02 15:04"),
		e.Effort,
		e.Text,
	)
	if len(e.Tags) > 0 {
		line += fmt.Sprintf(" (%s)", strings.Join(e.Tags, ", "))
	}
	return line + fmt.Sprintf("\n  id: %s", e.ID)
}

// toolError creates an error result for MCP tool responses.
func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
