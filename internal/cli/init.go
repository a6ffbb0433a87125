package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/desimtools/simdb/internal/store"
)

// InitOptions holds flags for the init command.
type InitOptions struct {
	*RootOptions
	Script string
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the simulation output tables",
		Long: `Create the simulation output tables in the target database.

By default the tables are synthesized from the registered record schemas.
Pass --script to execute an external DDL script instead.

Example:
  simdb --db results.db init`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Script, "script", "", "path to a DDL script to execute instead of the synthesized schema")

	return cmd
}

func runInit(opts *InitOptions, cmd *cobra.Command) error {
	s, err := store.Open(opts.Database)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if opts.Script != "" {
		if err := s.ExecuteScript(ctx, opts.Script); err != nil {
			return err
		}
	} else if err := s.CreateTables(ctx); err != nil {
		return err
	}

	if err := s.CheckConfigured(ctx); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "initialized %s\n", opts.Database)
	return nil
}
