// Package cli implements the simdb command line interface.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Database   string
	ConfigPath string
}

// NewRootCommand creates the root command for the simdb CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "simdb",
		Short: "Manage simulation output databases",
		Long: `simdb manages the relational store for discrete-event simulation output:
experiments, simulation runs, and their statistics.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Verbose {
				slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
			return resolveDatabase(opts)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to the SQLite database (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a simdb.yaml config file")

	// Add subcommands
	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewTablesCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewPurgeCommand(opts))
	cmd.AddCommand(NewSQLCommand(opts))

	return cmd
}

// resolveDatabase fills opts.Database from the config file when the flag
// is unset, falling back to the default path.
func resolveDatabase(opts *RootOptions) error {
	if opts.Database != "" {
		return nil
	}

	path := opts.ConfigPath
	if path == "" {
		path = DefaultConfigPath
		if _, err := os.Stat(path); err != nil {
			opts.Database = DefaultDatabase
			return nil
		}
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	opts.Database = cfg.Database
	if opts.Database == "" {
		opts.Database = DefaultDatabase
	}
	return nil
}
