package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/examdesk/internal/config"
	"github.com/abhisek/examdesk/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "examdesk",
	Short:        "Timed exams in the terminal",
	Long:         "ExamDesk runs a timed exam in the terminal: one question at a time, a question grid and a countdown that submits when time runs out.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EXAMDESK_DB, which overrides the config file)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/examdesk/config.toml)")

	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(clockCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the file named by --config, or the default path.
func loadConfig(cmd *cobra.Command) (config.FileConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the EXAMDESK_DB env var, then the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.FileConfig) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if p := os.Getenv(store.DBPathEnv); p != "" {
		return p, store.EnsureDir(p)
	}
	if p := cfg.DBPath(); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens the attempt log.
func openStore(cmd *cobra.Command, cfg config.FileConfig) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
