package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wesm/chatvault/internal/api"
	"github.com/wesm/chatvault/internal/query"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the archive over a local HTTP API",
	Long: `Start an HTTP server exposing /api/v1/search and /api/v1/stats.

The server binds to localhost only. Set server.api_key in the config
file to require an X-API-Key header.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		engine := query.NewSQLiteEngine(st.DB())
		srv := api.NewServer(cfg, engine, st, logger)
		return srv.Start(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
