package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesm/chatvault/internal/chatgpt"
	"github.com/wesm/chatvault/internal/importer"
)

var (
	ingestMaxMsgs     int
	ingestTitleFilter string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <conversations.json>",
	Short: "Ingest a ChatGPT export into the archive",
	Long: `Ingest a ChatGPT conversations.json export.

Each conversation is written in one transaction: its row, all its
messages in chronological order, and their search index entries.
Ingestion is idempotent; re-running over the same export changes
nothing, and a conversation's first-known creation time is never
regressed by later runs.

Examples:
  chatvault ingest ~/Downloads/conversations.json
  chatvault ingest conversations.json --max-msgs 50 --title-filter refund`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Decode before touching the database so an unrecognized
		// export shape aborts with no writes.
		exp, err := chatgpt.ReadFile(args[0])
		if err != nil {
			return err
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		maxMsgs := ingestMaxMsgs
		if maxMsgs == 0 {
			maxMsgs = cfg.Ingest.MaxMessages
		}

		res, err := importer.IngestExport(cmd.Context(), st, exp, importer.Options{
			MaxMessages: maxMsgs,
			TitleFilter: ingestTitleFilter,
		}, logger)
		if err != nil {
			return err
		}

		fmt.Printf("Ingested %d conversation(s) (%d message(s)) into %s\n",
			res.Conversations, res.Messages, databasePath())
		if res.Skipped > 0 {
			fmt.Printf("Skipped %d conversation(s) not matching title filter\n", res.Skipped)
		}
		if res.Failed > 0 {
			return fmt.Errorf("%d conversation(s) failed to ingest", res.Failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().IntVar(&ingestMaxMsgs, "max-msgs", 0, "Limit messages per conversation (0 = no limit)")
	ingestCmd.Flags().StringVar(&ingestTitleFilter, "title-filter", "", "Only ingest conversations whose title contains this (case-insensitive)")
}
