package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/desimtools/simdb/internal/store"
)

// PurgeOptions holds flags for the purge command.
type PurgeOptions struct {
	*RootOptions
	Force bool
}

// NewPurgeCommand creates the purge command.
func NewPurgeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PurgeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Empty every simulation output table",
		Long: `Empty every simulation output table, children before parents.
The table structure is kept; only rows are removed. Requires --force.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPurge(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "confirm removal of all rows")

	return cmd
}

func runPurge(opts *PurgeOptions, cmd *cobra.Command) error {
	if !opts.Force {
		return fmt.Errorf("purge removes every row in %s; re-run with --force to confirm", opts.Database)
	}

	s, err := store.Open(opts.Database)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if err := s.CheckConfigured(ctx); err != nil {
		return err
	}
	if err := s.ClearAllData(ctx); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "purged all data from %s\n", opts.Database)
	return nil
}
