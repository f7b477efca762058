package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create the archive schema without ingesting anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		fmt.Printf("Initialized database at %s\n", databasePath())
		if !st.FTS5Available() {
			fmt.Println("Warning: FTS5 is not available in this build; full-text search is disabled.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initDBCmd)
}
