/*
PURPOSE:
  Validates parameters before anything is written.

REQUIREMENTS:
  User-specified:
  - Over-long root names and titles are rejected.
  - Out-of-range model flags are rejected.

  Implementation-discovered:
  - The root name becomes part of file names, so separators are refused.
  - Grid length is bounded; a huge or overflowing band count is refused.

ARCHITECTURE INTEGRATION:
  - Called by: internal/script.Render
  - Uses: internal/model

ERROR HANDLING:
  - Returns the first *model.ValidationError found.

IMPLEMENTATION RULES:
  - Check structure and ranges only, not physical plausibility.

USAGE:
  if err := script.Validate(p); err != nil { ... }

SELF-HEALING INSTRUCTIONS:
  - If the engine adds a model option, extend the enum table.

RELATED FILES:
  - internal/model/types.go
  - internal/model/grid.go

MAINTENANCE:
  - None.
*/

package script

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/daryltucker/hydro-runner/internal/model"
)

// Validate checks that every leaf the grammar needs is present and inside
// its declared range. It returns the first *model.ValidationError found.
// Physical plausibility of values is not checked.
func Validate(p *model.Parameters) error {
	if p == nil {
		return &model.ValidationError{Field: "parameters", Value: nil, Reason: "missing"}
	}

	if err := checkRootName(p.Run.RootName); err != nil {
		return err
	}
	if err := checkText("run.title", p.Run.Title, model.MaxTitleLen); err != nil {
		return err
	}

	enums := []struct {
		field   string
		value   int
		allowed []int
	}{
		{"engine.compile", p.Engine.Compile, []int{0, 1}},
		{"engine.dynamic_depth", p.Engine.DynamicDepth, []int{0, 1}},
		{"output.print", p.Output.Print, []int{-1, 0, 1}},
		{"output.digital", p.Output.Digital, []int{0, 1}},
		{"output.excel_single", p.Output.ExcelSingle, []int{0, 2}},
		{"output.excel_multi", p.Output.ExcelMulti, []int{0, 1}},
		{"output.radiance", p.Output.Radiance, []int{0, 1}},
		{"models.iop", p.Models.IOP, []int{-1, 0, 1, 2, 3, 4}},
		{"models.sky_radiance", p.Models.SkyRadiance, []int{0, 1, 2}},
		{"models.sky_irradiance", p.Models.SkyIrradiance, []int{0, 1, 2}},
	}
	for _, e := range enums {
		if !slices.Contains(e.allowed, e.value) {
			return &model.ValidationError{Field: e.field, Value: e.value, Reason: fmt.Sprintf("must be one of %v", e.allowed)}
		}
	}
	if p.Output.WavebandSkip < 1 {
		return &model.ValidationError{Field: "output.waveband_skip", Value: p.Output.WavebandSkip, Reason: "must be at least 1"}
	}

	numbers := []struct {
		field string
		value float64
	}{
		{"engine.phi_chl", p.Engine.PhiChl},
		{"engine.raman0", p.Engine.Raman0},
		{"engine.raman_xs", p.Engine.RamanXS},
		{"water.concentration", p.Water.Concentration},
		{"chlorophyll.concentration", p.Chlorophyll.Concentration},
		{"cdom.concentration", p.CDOM.Concentration},
		{"minerals.concentration", p.Minerals.Concentration},
		{"wavelengths.start", p.Wavelengths.Start},
		{"wavelengths.end", p.Wavelengths.End},
		{"wavelengths.step", p.Wavelengths.Step},
	}
	for _, n := range numbers {
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) {
			return &model.ValidationError{Field: n.field, Value: n.value, Reason: "must be a finite number"}
		}
	}

	files := []struct{ field, value string }{
		{"water.absorption", p.Water.Absorption},
		{"chlorophyll.absorption", p.Chlorophyll.Absorption},
		{"cdom.absorption", p.CDOM.Absorption},
		{"minerals.absorption", p.Minerals.Absorption},
		{"minerals.scattering", p.Minerals.Scattering},
		{"water.phase_function", p.Water.PhaseFunction},
		{"chlorophyll.phase_function", p.Chlorophyll.PhaseFunction},
		{"cdom.phase_function", p.CDOM.PhaseFunction},
		{"minerals.phase_function", p.Minerals.PhaseFunction},
	}
	for _, f := range files {
		if err := checkText(f.field, f.value, 0); err != nil {
			return err
		}
	}

	g := p.Wavelengths
	if !(g.Step > 0) {
		return &model.ValidationError{Field: "wavelengths.step", Value: g.Step, Reason: "must be positive"}
	}
	if !(g.End > g.Start) {
		return &model.ValidationError{Field: "wavelengths.end", Value: g.End, Reason: fmt.Sprintf("must be greater than start (%v)", g.Start)}
	}
	if n := math.Ceil((g.End - g.Start) / g.Step); math.IsNaN(n) || n < 1 || n > model.MaxGridLen {
		return &model.ValidationError{Field: "wavelengths.step", Value: g.Step,
			Reason: fmt.Sprintf("grid of %v values is outside 1..%d", n, model.MaxGridLen)}
	}
	return nil
}

// checkRootName enforces the engine's limits on the root name, which is
// also used to build file names.
func checkRootName(name string) error {
	if err := checkText("run.root_name", name, model.MaxRootNameLen); err != nil {
		return err
	}
	if strings.ContainsAny(name, `/\:`) || name == "." || name == ".." {
		return &model.ValidationError{Field: "run.root_name", Value: name, Reason: "must not contain path separators"}
	}
	if strings.TrimSpace(name) != name {
		return &model.ValidationError{Field: "run.root_name", Value: name, Reason: "must not start or end with whitespace"}
	}
	return nil
}

// checkText rejects empty values, values spanning several lines and,
// when maxLen > 0, values longer than maxLen characters.
func checkText(field, v string, maxLen int) error {
	if strings.TrimSpace(v) == "" {
		return &model.ValidationError{Field: field, Value: v, Reason: "missing"}
	}
	if strings.ContainsAny(v, "\r\n") {
		return &model.ValidationError{Field: field, Value: v, Reason: "must be a single line"}
	}
	if n := utf8.RuneCountInString(v); maxLen > 0 && n > maxLen {
		return &model.ValidationError{Field: field, Value: v, Reason: fmt.Sprintf("%d characters exceeds the maximum of %d", n, maxLen)}
	}
	return nil
}
