/*
PURPOSE:
  Defines the root Cobra command for the Hydro Runner CLI.
  Handles global flags and command initialization.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface.
  - Support global flags like --config and --verbose.

  Implementation-discovered:
  - Needs to expose an ExecuteContext() function for main.go so that
    interrupts reach the engine process.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/hydro-runner/main.go
  - Calls: Child commands (run, encode, decode, list-tables, init)
  - Modifies: Global configuration state (temporarily, until passed down).

ERROR HANDLING:
  - Returns error to main.go for exit code handling.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Keep Run logic in subcommands, Root is usually empty or helps.

USAGE:
  Called by main.go.

SELF-HEALING INSTRUCTIONS:
  - If adding new global flags, add them to init().

RELATED FILES:
  - cmd/hydro-runner/main.go

MAINTENANCE:
  - Update when adding global configuration options.
*/

package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/daryltucker/hydro-runner/internal/config"
	"github.com/daryltucker/hydro-runner/internal/output"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile string
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "hydro-runner",
		Short: "Batch driver for the Hydrolight radiative-transfer engine",
		Long: `Writes engine run scripts from a parameter file, launches the engine and
decodes the tables of its printed result documents. Use 'run --help' for batch options.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				output.SetLevel(slog.LevelDebug)
			}
		},
	}
)

// Execute executes the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext executes the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// loadConfig loads the runner config and applies the overrides shared by
// several commands.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if rootOverride != "" {
		cfg.Root = rootOverride
	}
	if paramsOverride != "" {
		cfg.Parameters = paramsOverride
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./hydro_runner.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log engine launches and file writes")
	rootCmd.PersistentFlags().StringVar(&rootOverride, "root", "", "engine installation directory (overrides config and $HYDROLIGHT)")
	rootCmd.PersistentFlags().StringVarP(&paramsOverride, "params", "p", "", "parameter file (.yaml or .toml)")
}
