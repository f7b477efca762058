package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rebuildFTSCmd = &cobra.Command{
	Use:   "rebuild-fts",
	Short: "Rebuild the full-text index from the message table",
	Long: `Drop and recreate the full-text index from a full scan of the
message table. The index is normally maintained incrementally during
ingestion; rebuilding is only needed after manual edits or a corrupted
index.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if !st.FTS5Available() {
			return fmt.Errorf("FTS5 is not available in this build")
		}

		n, err := st.RebuildFTS()
		if err != nil {
			return fmt.Errorf("rebuild index: %w", err)
		}
		fmt.Printf("Rebuilt search index: %d message(s) indexed.\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rebuildFTSCmd)
}
