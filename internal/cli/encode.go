/*
PURPOSE:
  Defines the 'encode' subcommand.

REQUIREMENTS:
  User-specified:
  - Prepare a run without launching the engine.

  Implementation-discovered:
  - --stdout is handy for diffing against GUI-written scripts.

ARCHITECTURE INTEGRATION:
  - Calls: internal/script.Encoder
  - Uses: internal/config

ERROR HANDLING:
  - Returns validation and file errors unchanged.

IMPLEMENTATION RULES:
  - Logic: Load Config -> Load Parameters -> Override -> Encode.

USAGE:
  hydro-runner encode -p params.yaml --root-name chl20

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daryltucker/hydro-runner/internal/config"
	"github.com/daryltucker/hydro-runner/internal/output"
	"github.com/daryltucker/hydro-runner/internal/script"
)

var (
	rootNameOverride string
	stdoutOnly       bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Write the run script and run list without launching the engine",
	Example: `  # Prepare a case to launch from the engine GUI
  hydro-runner encode -p params.yaml --root-name chl20

  # Inspect the script only
  hydro-runner encode --stdout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		p, err := config.LoadParameters(cfg.Parameters)
		if err != nil {
			return err
		}
		if rootNameOverride != "" {
			p.Run.RootName = rootNameOverride
		}

		if stdoutOnly {
			doc, err := script.Render(p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc.String())
			return nil
		}

		if err := cfg.Validate(); err != nil {
			return err
		}
		enc := script.Encoder{ScriptDir: cfg.Path(cfg.BatchDir), RunList: cfg.Path(cfg.RunList)}
		path, err := enc.Write(p)
		if err != nil {
			return err
		}
		output.Logger.Info("Wrote run script", "path", path, "run_list", enc.RunList)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().StringVar(&rootNameOverride, "root-name", "", "Override the run's root name")
	encodeCmd.Flags().BoolVar(&stdoutOnly, "stdout", false, "Print the script instead of writing files")
}
