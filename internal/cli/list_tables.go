/*
PURPOSE:
  Defines the 'list-tables' subcommand.
  Shows which result tables can be decoded and how they are located.

REQUIREMENTS:
  User-specified:
  - List available tables.

  Implementation-discovered:
  - Useful validation step when an engine version changes its headers.

ARCHITECTURE INTEGRATION:
  - Calls: internal/result.LayoutNames(), LookupLayout()

ERROR HANDLING:
  - None; the registry is static.

IMPLEMENTATION RULES:
  - Simple output to stdout.

USAGE:
  hydro-runner list-tables

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/result/layouts.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daryltucker/hydro-runner/internal/result"
)

var listTablesCmd = &cobra.Command{
	Use:   "list-tables",
	Short: "List result tables that can be decoded",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, name := range result.LayoutNames() {
			l, err := result.LookupLayout(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "- %s\n", name)
			fmt.Fprintf(out, "    columns: %s\n", strings.Join(l.Columns, ", "))
			fmt.Fprintf(out, "    header:  %s (+%d)\n", l.Header, l.HeaderOffset)
			fmt.Fprintf(out, "    footer:  %s (-%d)\n", l.Footer, l.FooterOffset)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listTablesCmd)
}
