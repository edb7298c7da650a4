/*
PURPOSE:
  Wavelength band grid and its row layout in the run script.

REQUIREMENTS:
  User-specified:
  - Grid values are written ten per line.

  Implementation-discovered:
  - Values are computed from Start each time to avoid accumulated rounding.
  - Band counts above MaxGridLen are treated as empty.

ARCHITECTURE INTEGRATION:
  - Used by: internal/script

ERROR HANDLING:
  - N/A; Len reports 0 for unusable grids and Validate rejects them.

IMPLEMENTATION RULES:
  - Only the last row may be shorter than GridRowWidth.

USAGE:
  rows := p.Wavelengths.Rows()

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/script/document.go

MAINTENANCE:
  - None.
*/

package model

import "math"

// GridRowWidth is the maximum number of wavelengths per script line.
const GridRowWidth = 10

// MaxGridLen is the largest number of wavebands a grid may hold.
const MaxGridLen = 1000

// WavelengthGrid is the half-open band grid [Start, End) sampled every Step nm.
type WavelengthGrid struct {
	Start float64 `yaml:"start" toml:"start" json:"start"`
	End   float64 `yaml:"end" toml:"end" json:"end"`
	Step  float64 `yaml:"step" toml:"step" json:"step"`
}

// Len returns ceil((End-Start)/Step). It returns 0 for a degenerate grid
// and for one holding more than MaxGridLen values.
func (g WavelengthGrid) Len() int {
	if !(g.Step > 0) || !(g.End > g.Start) {
		return 0
	}
	n := math.Ceil((g.End - g.Start) / g.Step)
	if math.IsNaN(n) || n > MaxGridLen {
		return 0
	}
	return int(n)
}

// Values returns the grid values in ascending order. Each value is
// computed from Start directly so that rounding errors do not accumulate.
func (g WavelengthGrid) Values() []float64 {
	n := g.Len()
	v := make([]float64, n)
	for i := range v {
		v[i] = g.Start + float64(i)*g.Step
	}
	return v
}

// Rows splits the grid values into consecutive rows of at most
// GridRowWidth values. Only the last row may be shorter.
func (g WavelengthGrid) Rows() [][]float64 {
	v := g.Values()
	rows := make([][]float64, 0, (len(v)+GridRowWidth-1)/GridRowWidth)
	for len(v) > 0 {
		n := min(GridRowWidth, len(v))
		rows = append(rows, v[:n:n])
		v = v[n:]
	}
	return rows
}
