/*
PURPOSE:
  Defines the 'init' subcommand.

REQUIREMENTS:
  User-specified:
  - Write a starting runner config and parameter file.

  Implementation-discovered:
  - Existing files are kept unless --force is given.

ARCHITECTURE INTEGRATION:
  - Calls: internal/config.WriteParameters

ERROR HANDLING:
  - Returns error if a target exists or cannot be written.

IMPLEMENTATION RULES:
  - The written config points at the written parameter file.

USAGE:
  hydro-runner init --dir ./case --format toml

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/config/parameters.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/daryltucker/hydro-runner/internal/config"
	"github.com/daryltucker/hydro-runner/internal/model"
	"github.com/daryltucker/hydro-runner/internal/output"
)

var (
	initDir    string
	initFormat string
	initForce  bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default runner config and parameter file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if initFormat != "yaml" && initFormat != "toml" {
			return fmt.Errorf("unknown parameter format %q (yaml or toml)", initFormat)
		}
		if err := os.MkdirAll(initDir, 0755); err != nil {
			return fmt.Errorf("failed to create target directory %s: %w", initDir, err)
		}

		paramsPath := filepath.Join(initDir, "params."+initFormat)
		cfgPath := filepath.Join(initDir, "hydro_runner.yaml")
		for _, p := range []string{paramsPath, cfgPath} {
			if _, err := os.Stat(p); err == nil && !initForce {
				return fmt.Errorf("%s already exists (use --force to overwrite)", p)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
		}

		if err := config.WriteParameters(paramsPath, model.DefaultParameters()); err != nil {
			return fmt.Errorf("failed to write %s: %w", paramsPath, err)
		}
		output.Logger.Info("Wrote parameters", "path", paramsPath)

		cfg := config.DefaultConfig()
		cfg.Parameters = filepath.Base(paramsPath)
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfgPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", cfgPath, err)
		}
		output.Logger.Info("Wrote config", "path", cfgPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&initDir, "dir", "d", ".", "Directory to write the files to")
	initCmd.Flags().StringVar(&initFormat, "format", "yaml", "Parameter file format (yaml or toml)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
}
