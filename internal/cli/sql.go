package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/desimtools/simdb/internal/records"
	"github.com/desimtools/simdb/internal/schema"
)

// NewSQLCommand creates the sql command.
func NewSQLCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sql [table]",
		Short: "Print the synthesized SQL statements",
		Long: `Print the CREATE TABLE, INSERT, and UPDATE statements synthesized from
the registered record schemas. With no argument, prints every table.

Example:
  simdb sql simulation_run`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := ""
			if len(args) == 1 {
				table = args[0]
			}
			return runSQL(table, cmd)
		},
	}
	return cmd
}

func runSQL(table string, cmd *cobra.Command) error {
	var selected []schema.Table
	for _, t := range records.Tables() {
		if table == "" || t.TableName() == table {
			selected = append(selected, t)
		}
	}
	if len(selected) == 0 {
		return fmt.Errorf("unknown table %q", table)
	}

	out := cmd.OutOrStdout()
	for i, t := range selected {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "-- %s\n", t.TableName())
		fmt.Fprintf(out, "%s;\n", t.CreateTableSQL())
		fmt.Fprintf(out, "%s;\n", t.InsertSQL())
		fmt.Fprintf(out, "%s;\n", t.UpdateSQL())
	}
	return nil
}
