package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wesm/chatvault/internal/export"
	"github.com/wesm/chatvault/internal/query"
	"github.com/wesm/chatvault/internal/search"
)

var (
	searchSince string
	searchUntil string
	searchLimit int
	searchCSV   string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search archived messages",
	Long: `Search message text using FTS5 syntax plus a role: shorthand.

The role: shorthand is rewritten to the index's author_role field, so
role:user and role:assistant filter by message author. Date bounds are
inclusive calendar dates combined with the text match.

Examples:
  chatvault search refund
  chatvault search 'refund NEAR/5 charge'
  chatvault search 'verizon role:user' --since 2025-01-01
  chatvault search billing --until 2025-06-30 --csv hits.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Join all args to form the query (allows unquoted multi-term searches)
		queryStr := strings.Join(args, " ")

		q := &search.Query{Match: search.Translate(queryStr)}

		var err error
		if q.Since, err = search.ParseDate(searchSince); err != nil {
			return err
		}
		if q.Until, err = search.ParseDate(searchUntil); err != nil {
			return err
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		limit := searchLimit
		if limit == 0 {
			limit = cfg.Search.DefaultLimit
		}

		engine := query.NewSQLiteEngine(st.DB())
		results, err := engine.Search(cmd.Context(), q, limit)
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}

		if searchCSV != "" {
			f, err := os.Create(searchCSV)
			if err != nil {
				return fmt.Errorf("create csv file: %w", err)
			}
			defer f.Close()
			if err := export.WriteCSV(f, results); err != nil {
				return err
			}
			fmt.Printf("Wrote %d rows to %s\n", len(results), searchCSV)
			return nil
		}

		if len(results) == 0 {
			fmt.Println("No messages found.")
			return nil
		}
		return export.WriteConsole(os.Stdout, results)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&searchSince, "since", "", "Start date, inclusive (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchUntil, "until", "", "End date, inclusive (YYYY-MM-DD)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Maximum number of results (default from config)")
	searchCmd.Flags().StringVar(&searchCSV, "csv", "", "Export results to a CSV file instead of printing")
}
