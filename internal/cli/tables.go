package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/desimtools/simdb/internal/store"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tables",
		Short:         "List the tables present in the database",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTables(rootOpts, cmd)
		},
	}
	return cmd
}

func runTables(opts *RootOptions, cmd *cobra.Command) error {
	s, err := store.Open(opts.Database)
	if err != nil {
		return err
	}
	defer s.Close()

	names, err := s.TableNames(cmd.Context())
	if err != nil {
		return err
	}

	missing, err := s.MissingTables(cmd.Context())
	if err != nil {
		return err
	}

	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	if len(missing) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\nmissing required tables: %v\n", missing)
	}
	return nil
}
