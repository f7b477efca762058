package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wesm/chatvault/internal/mcp"
	"github.com/wesm/chatvault/internal/query"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the archive to MCP clients over stdio",
	Long: `Start an MCP (Model Context Protocol) server on stdin/stdout,
exposing search_messages and get_stats tools. Intended to be launched
by an MCP client, not interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		engine := query.NewSQLiteEngine(st.DB())
		stats := func() (map[string]int64, error) {
			s, err := st.GetStats()
			if err != nil {
				return nil, err
			}
			return map[string]int64{
				"conversations": s.ConversationCount,
				"messages":      s.MessageCount,
				"indexed":       s.IndexedCount,
				"database_size": s.DatabaseSize,
			}, nil
		}
		return mcp.Serve(cmd.Context(), engine, stats)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
