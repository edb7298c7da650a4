/*
PURPOSE:
  Loads and writes engine parameter files.

REQUIREMENTS:
  User-specified:
  - Parameter files may be YAML or TOML.
  - Sweep entries override selected parameters per run.

  Implementation-discovered:
  - Unknown keys are rejected so typos do not fall back to defaults silently.
  - An empty file yields the defaults.

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine, internal/cli
  - Dependencies: gopkg.in/yaml.v3, github.com/BurntSushi/toml

ERROR HANDLING:
  - Returns explicit error if a parameter file is unreadable or invalid.

IMPLEMENTATION RULES:
  - Format is chosen by file extension.

USAGE:
  p, err := config.LoadParameters("params.toml")

SELF-HEALING INSTRUCTIONS:
  - If new parameters are added, give them yaml and toml tags in internal/model.

RELATED FILES:
  - internal/model/types.go
  - internal/config/config.go

MAINTENANCE:
  - None.
*/

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/daryltucker/hydro-runner/internal/model"
)

// LoadParameters reads a parameter file on top of model.DefaultParameters.
// Files ending in .toml are decoded as TOML, anything else as YAML.
// Unknown keys are rejected so that typos do not silently fall back to
// defaults. An empty path returns the defaults.
func LoadParameters(path string) (*model.Parameters, error) {
	p := model.DefaultParameters()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameter file: %w", err)
	}

	if isTOML(path) {
		md, err := toml.Decode(string(data), p)
		if err != nil {
			return nil, fmt.Errorf("failed to parse parameter file %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parameter file %s: unknown keys %v", path, undecoded)
		}
		return p, nil
	}

	d := yaml.NewDecoder(bytes.NewReader(data))
	d.KnownFields(true)
	if err := d.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse parameter file %s: %w", path, err)
	}
	return p, nil
}

// WriteParameters writes p to path in the format its extension selects.
func WriteParameters(path string, p *model.Parameters) error {
	var buf bytes.Buffer
	if isTOML(path) {
		if err := toml.NewEncoder(&buf).Encode(p); err != nil {
			return err
		}
	} else {
		e := yaml.NewEncoder(&buf)
		e.SetIndent(2)
		if err := e.Encode(p); err != nil {
			return err
		}
		if err := e.Close(); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Apply returns a copy of base with the override applied.
func (o Override) Apply(base *model.Parameters) *model.Parameters {
	p := base.Clone()
	if o.RootName != "" {
		p.Run.RootName = o.RootName
	}
	if o.Title != "" {
		p.Run.Title = o.Title
	}
	if o.Chlorophyll != nil {
		p.Chlorophyll.Concentration = *o.Chlorophyll
	}
	if o.CDOM != nil {
		p.CDOM.Concentration = *o.CDOM
	}
	if o.Minerals != nil {
		p.Minerals.Concentration = *o.Minerals
	}
	return p
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
