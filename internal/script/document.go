/*
PURPOSE:
  Renders Parameters into the engine's positional run script.

REQUIREMENTS:
  User-specified:
  - Line order is the whole contract; the engine has no field names.
  - Fixed literal blocks are reproduced byte-for-byte.
  - Wavelength grid: count line, rows of at most 10 values, end value line.

  Implementation-discovered:
  - Numbers must not depend on locale: strconv only, never fmt verbs
    that could be swapped for localized printers.

ARCHITECTURE INTEGRATION:
  - Called by: internal/script (Encoder), internal/cli (encode)
  - Uses: internal/model

ERROR HANDLING:
  - Returns *model.ValidationError before rendering anything.

IMPLEMENTATION RULES:
  - Parameter-derived lines are built here; constant lines live in grammar.go.
  - Document is append-only while rendering and read-only afterwards.

USAGE:
  doc, err := script.Render(params)
  os.Stdout.Write(doc.Bytes())

SELF-HEALING INSTRUCTIONS:
  - If the engine rejects a script, diff it against a script saved by the
    engine's own GUI; the line that differs is the broken position.

RELATED FILES:
  - internal/script/grammar.go
  - internal/script/validate.go

MAINTENANCE:
  - Keep Render in lock-step with the engine version's grammar.
*/

package script

import (
	"strconv"
	"strings"

	"github.com/daryltucker/hydro-runner/internal/model"
)

// Document is an encoded run script.
type Document struct {
	lines []string
}

func (d *Document) add(lines ...string) {
	d.lines = append(d.lines, lines...)
}

// record appends one comma-delimited record.
func (d *Document) record(fields ...string) {
	d.lines = append(d.lines, strings.Join(fields, ","))
}

// Lines returns a copy of the document lines.
func (d *Document) Lines() []string {
	return append([]string(nil), d.lines...)
}

// Len returns the number of lines.
func (d *Document) Len() int { return len(d.lines) }

// String returns the newline-separated document. Like the engine's own
// scripts, the last line carries no trailing newline.
func (d *Document) String() string {
	return strings.Join(d.lines, lineSeparator)
}

// Bytes returns the document as it is written to disk.
func (d *Document) Bytes() []byte { return []byte(d.String()) }

// Render validates p and encodes it.
func Render(p *model.Parameters) (*Document, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}

	d := new(Document)
	e := p.Engine
	d.record(itoa(e.Compile), parMin, parMax, ftoa(e.PhiChl), ftoa(e.Raman0), ftoa(e.RamanXS), itoa(e.DynamicDepth))
	d.add(p.Run.Title, p.Run.RootName)

	o := p.Output
	d.record(itoa(o.Print), itoa(o.Digital), itoa(o.ExcelSingle), itoa(o.ExcelMulti), itoa(o.Radiance), itoa(o.WavebandSkip))

	m := p.Models
	d.record(itoa(m.IOP), itoa(m.SkyRadiance), itoa(m.SkyIrradiance), itoa(m.Chlorophyll), itoa(m.CDOM))

	d.add(componentCounts)
	d.record(ftoa(p.Water.Concentration), ftoa(p.Chlorophyll.Concentration), ftoa(p.CDOM.Concentration), ftoa(p.Minerals.Concentration))
	d.add(concentrationProfiles...)

	d.add(p.Water.Absorption, p.Chlorophyll.Absorption, p.CDOM.Absorption, p.Minerals.Absorption)
	d.add(absorptionModels...)

	d.add(scatteringPlaceholders...)
	d.add(p.Minerals.Scattering)
	d.add(phaseFunctionModels...)
	d.add(p.Water.PhaseFunction, p.Chlorophyll.PhaseFunction, p.CDOM.PhaseFunction, p.Minerals.PhaseFunction)

	d.add(GridLines(p.Wavelengths)...)

	d.add(boundaryConditions...)
	d.add(p.Water.Absorption)
	d.add(dataFileFlag)
	d.add(dataFilePlaceholders...)
	return d, nil
}

// GridLines encodes g as its length, its values in rows of at most
// model.GridRowWidth, and its exclusive end value.
func GridLines(g model.WavelengthGrid) []string {
	rows := g.Rows()
	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, itoa(g.Len()))
	for _, row := range rows {
		f := make([]string, len(row))
		for i, v := range row {
			f[i] = ftoa(v)
		}
		lines = append(lines, strings.Join(f, ","))
	}
	return append(lines, ftoa(g.End))
}

func itoa(i int) string { return strconv.Itoa(i) }

// ftoa formats v with the fewest digits that parse back to v, using a
// decimal point and no exponent.
func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
