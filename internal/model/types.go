/*
PURPOSE:
  Defines the core data structures used throughout Hydro Runner.
  Parameters is the full input of one engine run; Table and RunRecord
  carry decoded results.

REQUIREMENTS:
  User-specified:
  - Every parameter group the run script needs, always present.
  - Decoded tables addressable by column name.

  Implementation-discovered:
  - The script grammar is positional, so each record mirrors one line
    (or one group of lines) of the script in field order.
  - Need yaml and toml tags for parameter files.

ARCHITECTURE INTEGRATION:
  - Used by: internal/script, internal/result, internal/engine, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - See errors.go. Structs here carry no behavior beyond accessors.

IMPLEMENTATION RULES:
  - Keep structs flat and public.
  - "Disabled" states are flag values inside a group, never a missing group.

USAGE:
  p := model.DefaultParameters()
  p.Run.RootName = "test"

SELF-HEALING INSTRUCTIONS:
  - If the engine grammar gains a field, add it here and in internal/script/grammar.go.

RELATED FILES:
  - internal/model/defaults.go
  - internal/script/grammar.go

MAINTENANCE:
  - Update when the engine grammar changes.
*/

package model

// Parameters is the complete parameter set of one engine run.
type Parameters struct {
	Run         RunIdentification `yaml:"run" toml:"run" json:"run"`
	Engine      EngineOptions     `yaml:"engine" toml:"engine" json:"engine"`
	Output      OutputOptions     `yaml:"output" toml:"output" json:"output"`
	Models      ModelSelection    `yaml:"models" toml:"models" json:"models"`
	Water       Component         `yaml:"water" toml:"water" json:"water"`
	Chlorophyll Component         `yaml:"chlorophyll" toml:"chlorophyll" json:"chlorophyll"`
	CDOM        Component         `yaml:"cdom" toml:"cdom" json:"cdom"`
	Minerals    Component         `yaml:"minerals" toml:"minerals" json:"minerals"`
	Wavelengths WavelengthGrid    `yaml:"wavelengths" toml:"wavelengths" json:"wavelengths"`
}

// RunIdentification names the run. RootName is used to build every
// input and output file name of the run.
type RunIdentification struct {
	RootName string `yaml:"root_name" toml:"root_name" json:"root_name"`
	Title    string `yaml:"title" toml:"title" json:"title"`
}

// Maximum lengths accepted by the engine.
const (
	MaxRootNameLen = 32
	MaxTitleLen    = 120
)

// EngineOptions holds the first line of the run script.
type EngineOptions struct {
	// Compile selects the standard (0) or user-compiled (1) executable.
	Compile int `yaml:"compile" toml:"compile" json:"compile"`
	// PhiChl is the chlorophyll fluorescence efficiency.
	PhiChl float64 `yaml:"phi_chl" toml:"phi_chl" json:"phi_chl"`
	// Raman0 is the Raman reference wavelength (nm).
	Raman0 float64 `yaml:"raman0" toml:"raman0" json:"raman0"`
	// RamanXS is the Raman scattering coefficient at Raman0.
	RamanXS float64 `yaml:"raman_xs" toml:"raman_xs" json:"raman_xs"`
	// DynamicDepth enables the dynamic depth option (iDynZ).
	DynamicDepth int `yaml:"dynamic_depth" toml:"dynamic_depth" json:"dynamic_depth"`
}

// OutputOptions selects which engine output files are produced.
type OutputOptions struct {
	Print        int `yaml:"print" toml:"print" json:"print"`                         // iOptPrnt: -1 minimal, 0 standard, 1 extensive
	Digital      int `yaml:"digital" toml:"digital" json:"digital"`                   // iOptDigital: 0 or 1
	ExcelSingle  int `yaml:"excel_single" toml:"excel_single" json:"excel_single"`    // iOptExcelS: 0 or 2
	ExcelMulti   int `yaml:"excel_multi" toml:"excel_multi" json:"excel_multi"`       // iOptExcelM: 0 or 1
	Radiance     int `yaml:"radiance" toml:"radiance" json:"radiance"`                // iOptRad: 0 or 1
	WavebandSkip int `yaml:"waveband_skip" toml:"waveband_skip" json:"waveband_skip"` // nwskip >= 1
}

// ModelSelection picks the IOP, sky and component sub-models.
type ModelSelection struct {
	// IOP is the inherent optical property model:
	// 0 constant, 1 classic case 1, 2 case 2, 3 IOP data, 4 new case 1, -1 user.
	IOP int `yaml:"iop" toml:"iop" json:"iop"`
	// SkyRadiance: 0 analytical, 1 Harrison and Coombes, 2 user.
	SkyRadiance int `yaml:"sky_radiance" toml:"sky_radiance" json:"sky_radiance"`
	// SkyIrradiance: 0 analytical, 1 RADTRANX, 2 user data file.
	SkyIrradiance int `yaml:"sky_irradiance" toml:"sky_irradiance" json:"sky_irradiance"`
	Chlorophyll   int `yaml:"chlorophyll" toml:"chlorophyll" json:"chlorophyll"`
	CDOM          int `yaml:"cdom" toml:"cdom" json:"cdom"`
}

// Component describes one constituent of the water body with a constant
// concentration profile.
type Component struct {
	Concentration float64 `yaml:"concentration" toml:"concentration" json:"concentration"`
	// Absorption is the specific absorption data file.
	Absorption string `yaml:"absorption" toml:"absorption" json:"absorption"`
	// Scattering is the specific scattering data file. Only the minerals
	// channel is written to the script; the others are fixed placeholders.
	Scattering string `yaml:"scattering,omitempty" toml:"scattering,omitempty" json:"scattering,omitempty"`
	// PhaseFunction is the discretized phase function file name.
	PhaseFunction string `yaml:"phase_function" toml:"phase_function" json:"phase_function"`
}

// RunRecord is the outcome of decoding one table of one run.
type RunRecord struct {
	RootName string        `json:"root_name"`
	Table    string        `json:"table"`
	Columns  []string      `json:"columns,omitempty"`
	Rows     int           `json:"rows"`
	Stats    []ColumnStats `json:"stats,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// ColumnStats summarizes one table column.
type ColumnStats struct {
	Column string  `json:"column"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
}
