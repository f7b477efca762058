// Package mcp exposes the chatvault archive to MCP clients over stdio.
package mcp

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wesm/chatvault/internal/query"
)

// Tool name constants.
const (
	ToolSearchMessages = "search_messages"
	ToolGetStats       = "get_stats"
)

// StatsFn returns archive statistics for the get_stats tool.
type StatsFn func() (map[string]int64, error)

// Serve creates an MCP server with archive search tools and serves
// over stdio. It blocks until stdin is closed or ctx is cancelled.
func Serve(ctx context.Context, engine query.Engine, stats StatsFn) error {
	s := server.NewMCPServer(
		"chatvault",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	h := &handlers{engine: engine, stats: stats}

	s.AddTool(searchMessagesTool(), h.searchMessages)
	s.AddTool(getStatsTool(), h.getStats)

	stdio := server.NewStdioServer(s)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

func searchMessagesTool() mcp.Tool {
	return mcp.NewTool(ToolSearchMessages,
		mcp.WithDescription("Search archived ChatGPT messages. Supports FTS5 syntax, a role: shorthand (role:user, role:assistant), and inclusive date bounds."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query (e.g. 'refund role:user', '\"exact phrase\"')"),
		),
		mcp.WithString("since",
			mcp.Description("Only messages on or after this date (YYYY-MM-DD)"),
		),
		mcp.WithString("until",
			mcp.Description("Only messages on or before this date (YYYY-MM-DD)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results to return (default 50)"),
		),
	)
}

func getStatsTool() mcp.Tool {
	return mcp.NewTool(ToolGetStats,
		mcp.WithDescription("Get archive statistics: conversation, message, and index row counts plus database size."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}
