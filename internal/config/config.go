/*
PURPOSE:
  Defines the runner configuration and its loading logic.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Configure where the engine lives and how it is launched.
  - Configure which tables are decoded and where results go.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Engine root may reference environment variables (${HYDROLIGHT}).
  - Batch sweeps are listed in the config, one override per run.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: gopkg.in/yaml.v3 (standard for Go config)

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Missing default files fall back to defaults.

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Relative engine paths are resolved against Root.

USAGE:
  cfg, err := config.Load("hydro_runner.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct and update DefaultConfig().

RELATED FILES:
  - internal/config/parameters.go
  - internal/cli/root.go

MAINTENANCE:
  - Update when the engine's directory layout changes.
*/

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for Hydro Runner.
type Config struct {
	// Root is the engine installation directory. Environment variables are expanded.
	Root string `yaml:"root"`
	// Command is the engine launcher, run inside WorkDir.
	Command string `yaml:"command"`
	// WorkDir, BatchDir, RunList and ResultDir are relative to Root unless absolute.
	WorkDir   string `yaml:"work_dir"`
	BatchDir  string `yaml:"batch_dir"`
	RunList   string `yaml:"run_list"`
	ResultDir string `yaml:"result_dir"`
	// Parameters is the parameter file (.yaml, .yml or .toml). Empty means defaults.
	Parameters string `yaml:"parameters"`
	// Tables lists the result layouts to decode.
	Tables     []string      `yaml:"tables"`
	OutputDir  string        `yaml:"output_dir"`
	OutputFile string        `yaml:"output_file"`
	Formats    []string      `yaml:"formats"`
	MaxRetries int           `yaml:"max_retries"`
	RetryDelay time.Duration `yaml:"retry_delay"`
	Timeout    time.Duration `yaml:"timeout"`
	// Sweep lists additional runs; each entry overrides the base parameters.
	Sweep []Override `yaml:"sweep"`
}

// Override changes selected parameters for one run of a sweep.
type Override struct {
	RootName    string   `yaml:"root_name"`
	Title       string   `yaml:"title"`
	Chlorophyll *float64 `yaml:"chlorophyll"`
	CDOM        *float64 `yaml:"cdom"`
	Minerals    *float64 `yaml:"minerals"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Root:       "${HYDROLIGHT}",
		Command:    "runHL.exe",
		WorkDir:    "run",
		BatchDir:   filepath.Join("run", "batch"),
		RunList:    filepath.Join("run", "runlist.txt"),
		ResultDir:  filepath.Join("output", "Hydrolight", "excel"),
		Tables:     []string{"rrs"},
		OutputDir:  ".",
		OutputFile: "hydro_results",
		Formats:    []string{"csv", "json"},
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
		Timeout:    30 * time.Minute,
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches for default files in order.
// If no file found, returns default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		defaults := []string{"hydro_runner.yaml", "runner.yaml"}
		found := false
		for _, name := range defaults {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				found = true
				break
			}
		}
		if !found {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Path resolves an engine-relative path against the expanded Root.
func (c *Config) Path(p string) string {
	p = os.ExpandEnv(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(os.ExpandEnv(c.Root), p)
}

// Validate checks the fields the runner cannot work without.
func (c *Config) Validate() error {
	if os.ExpandEnv(c.Root) == "" {
		return fmt.Errorf("engine root is empty (set root in the config file, --root, or $HYDROLIGHT)")
	}
	if c.Command == "" {
		return fmt.Errorf("engine command is empty")
	}
	if len(c.Tables) == 0 {
		return fmt.Errorf("no result tables selected")
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be at least 1, got %d", c.MaxRetries)
	}
	if c.RetryDelay < 0 || c.Timeout < 0 {
		return fmt.Errorf("retry_delay and timeout must not be negative")
	}
	return nil
}
