package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wesm/chatvault/internal/export"
	"github.com/wesm/chatvault/internal/query"
	"github.com/wesm/chatvault/internal/search"
)

const maxLimit = 1000

type handlers struct {
	engine query.Engine
	stats  StatsFn
}

func (h *handlers) searchMessages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	queryStr, _ := args["query"].(string)
	if queryStr == "" {
		return mcp.NewToolResultError("query parameter is required"), nil
	}

	q := &search.Query{Match: search.Translate(queryStr)}

	var err error
	if q.Since, err = dateArg(args, "since"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if q.Until, err = dateArg(args, "until"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	limit := limitArg(args, "limit", query.DefaultLimit)

	results, err := h.engine.Search(ctx, q, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	out := make([]map[string]string, len(results))
	for i, r := range results {
		out[i] = map[string]string{
			"message_id":      r.MessageID,
			"conversation_id": r.ConversationID,
			"title":           r.Title,
			"role":            r.Role,
			"created_at":      export.FormatTimestamp(r.CreatedAt),
			"text":            r.Text,
		}
	}
	return jsonResult(out)
}

func (h *handlers) getStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.stats()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get stats failed: %v", err)), nil
	}
	return jsonResult(stats)
}

// dateArg extracts an optional date (YYYY-MM-DD) from the arguments map.
func dateArg(args map[string]any, key string) (*time.Time, error) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return nil, nil
	}
	t, err := search.ParseDate(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return t, nil
}

// limitArg extracts an optional positive integer, clamped to maxLimit.
func limitArg(args map[string]any, key string, def int) int {
	v, ok := args[key].(float64)
	if !ok || v < 1 {
		return def
	}
	limit := int(v)
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
