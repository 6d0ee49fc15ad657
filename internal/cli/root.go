package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kyohei682474/1day1growth/internal/config"
	"github.com/kyohei682474/1day1growth/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "growth",
	Short: "One small growth entry a day, with streaks",
	Long:  "1day1growth keeps a daily log of short growth entries — what you did, how hard it was — and shows the streak of consecutive days logged. Single Go binary, local SQLite.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(mcpCmd)
}

// openStore loads config and opens the entry database it points at.
func openStore() (*store.DB, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, fmt.Errorf("load config: %w", err)
	}

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, cfg, fmt.Errorf("resolve db path: %w", err)
	}
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, cfg, fmt.Errorf("resolve db path: %w", err)
		}
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return nil, cfg, fmt.Errorf("open database: %w", err)
	}
	return db, cfg, nil
}
