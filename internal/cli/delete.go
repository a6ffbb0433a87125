package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/desimtools/simdb/internal/cascade"
	"github.com/desimtools/simdb/internal/store"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <experiment-name>",
		Short: "Delete an experiment and all its dependent rows",
		Long: `Delete an experiment by name together with every dependent row: its
simulation runs, snapshots, and statistics. The whole removal runs in one
transaction; on failure nothing is deleted.

Example:
  simdb --db results.db delete DriveThroughPharmacy`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runDelete(opts *RootOptions, expName string, cmd *cobra.Command) error {
	s, err := store.Open(opts.Database)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	orch, err := cascade.New(ctx, s)
	if err != nil {
		return err
	}

	deleted, err := orch.DeleteExperiment(ctx, expName)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Fprintf(cmd.OutOrStdout(), "experiment %q not found\n", expName)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "deleted experiment %q\n", expName)
	return nil
}
