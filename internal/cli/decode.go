/*
PURPOSE:
  Defines the 'decode' subcommand.

REQUIREMENTS:
  User-specified:
  - Decode an existing result document without running the engine.

  Implementation-discovered:
  - The root name for exports is taken from the M<root>.txt file name.

ARCHITECTURE INTEGRATION:
  - Calls: internal/result, internal/output

ERROR HANDLING:
  - Returns marker, table and I/O errors unchanged.

IMPLEMENTATION RULES:
  - Statistics go to stdout; logs go to stderr.

USAGE:
  hydro-runner decode Mtest.txt --export ./results

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/result/document.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/daryltucker/hydro-runner/internal/output"
	"github.com/daryltucker/hydro-runner/internal/result"
)

var (
	decodeTables  []string
	decodeExport  string
	decodeFormats []string
)

var decodeCmd = &cobra.Command{
	Use:   "decode FILE",
	Short: "Decode tables from an existing result document",
	Example: `  # Summarize the Rrs table of a finished run
  hydro-runner decode output/Hydrolight/excel/Mtest.txt

  # Export it as CSV and XLSX
  hydro-runner decode Mtest.txt --export ./results --formats csv,xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		layouts := make([]result.Layout, 0, len(decodeTables))
		for _, name := range decodeTables {
			l, err := result.LookupLayout(name)
			if err != nil {
				return err
			}
			layouts = append(layouts, l)
		}

		doc, err := result.ReadFile(args[0])
		if err != nil {
			return err
		}
		tables, err := doc.ExtractAll(layouts...)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TABLE\tCOLUMN\tROWS\tMIN\tMAX\tMEAN")
		for _, t := range tables {
			for _, s := range result.Summarize(t) {
				fmt.Fprintf(w, "%s\t%s\t%d\t%g\t%g\t%g\n", t.Name, s.Column, t.Len(), s.Min, s.Max, s.Mean)
			}
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if decodeExport == "" {
			return nil
		}
		root := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		root = strings.TrimPrefix(root, "M")
		sink, err := output.Open(decodeExport, root, decodeFormats)
		if err != nil {
			return err
		}
		for _, t := range tables {
			if err := sink.WriteTable(root, t); err != nil {
				sink.Close()
				return err
			}
		}
		return sink.Close()
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringSliceVar(&decodeTables, "tables", []string{"rrs"}, "Comma-separated tables to decode (see list-tables)")
	decodeCmd.Flags().StringVar(&decodeExport, "export", "", "Directory to export decoded tables to")
	decodeCmd.Flags().StringSliceVar(&decodeFormats, "formats", []string{"csv"}, "Export formats (csv,xlsx)")
}
