package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wesm/chatvault/internal/config"
	"github.com/wesm/chatvault/internal/store"
)

var (
	cfgFile string
	homeDir string
	dbFlag  string
	verbose bool
	cfg     *config.Config
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "chatvault",
	Short: "Searchable archive for ChatGPT exports",
	Long: `chatvault converts a ChatGPT conversations.json export into a local
SQLite archive with full-text search.

Ingestion linearizes each conversation's node mapping chronologically,
derives stable identifiers, and upserts idempotently, so re-running
over the same or an updated export never duplicates data.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))

		var err error
		cfg, err = config.Load(cfgFile, homeDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if err := cfg.EnsureHomeDir(); err != nil {
			return fmt.Errorf("create data directory %s: %w", cfg.HomeDir, err)
		}

		return nil
	},
	SilenceUsage: true,
}

// Execute runs the root command with a background context.
// Prefer ExecuteContext for signal-aware execution.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with the given context,
// enabling graceful shutdown when the context is cancelled.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// databasePath resolves the database location: the --db flag wins,
// then the config file, then <home>/chatvault.db.
func databasePath() string {
	if dbFlag != "" {
		return dbFlag
	}
	return cfg.DatabasePath()
}

// openStore opens the archive and ensures the schema exists.
func openStore() (*store.Store, error) {
	st, err := store.Open(databasePath())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := st.InitSchema(); err != nil {
		st.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return st, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file path (default <home>/config.toml)")
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "chatvault home directory (default ~/.chatvault, or CHATVAULT_HOME)")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "Database file path (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
