/*
PURPOSE:
  Defines the 'run' subcommand.
  Executes the full batch: base case plus sweep.

REQUIREMENTS:
  User-specified:
  - Run the engine for every case.
  - specific flags for overrides.

  Implementation-discovered:
  - Need to load config first.
  - Apply flag overrides to config.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Run()
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if config load fails or any case fails.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load Config -> Override -> Engine.Run.

USAGE:
  hydro-runner run --root /opt/HE53 -p params.yaml

SELF-HEALING INSTRUCTIONS:
  - Check flag names match Config struct fields generally.

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/hydro-runner/internal/engine"
)

var (
	rootOverride    string
	paramsOverride  string
	outputOverride  string
	formatsOverride []string
	tablesOverride  []string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the engine for the base case and every sweep entry",
	Long: `Executes a batch of engine runs.
For each case:
1. Encode: writes run/batch/I<root>.txt and points run/runlist.txt at it.
2. Launch: runs the engine in its run directory, retrying failed launches.
3. Decode: extracts the selected tables from M<root>.txt.

Tables are written as <root>_<table>.csv, records as <output_file>.jsonl and
all tables of the batch into <output_file>.xlsx, depending on --formats.
A failing case is logged and the batch continues.`,
	Example: `  # Run with defaults (uses hydro_runner.yaml and $HYDROLIGHT)
  hydro-runner run

  # Use a parameter file and write results elsewhere
  hydro-runner run -p ./params.yaml -o ./results

  # Workbook only
  hydro-runner run --formats xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Config
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// 2. Overrides
		if outputOverride != "" {
			cfg.OutputDir = outputOverride
		}
		if len(formatsOverride) > 0 {
			cfg.Formats = formatsOverride
		}
		if len(tablesOverride) > 0 {
			cfg.Tables = tablesOverride
		}

		// 3. Execution
		return engine.Run(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&outputOverride, "output-dir", "o", "", "Output directory for results")
	runCmd.Flags().StringSliceVar(&formatsOverride, "formats", nil, "Comma-separated output formats (csv,json,xlsx)")
	runCmd.Flags().StringSliceVar(&tablesOverride, "tables", nil, "Comma-separated result tables to decode (see list-tables)")
}
