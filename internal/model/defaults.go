/*
PURPOSE:
  Stock engine parameters, as the engine GUI fills them in.

REQUIREMENTS:
  User-specified:
  - A run needs no parameter file to start.

  Implementation-discovered:
  - Parameter files are layered over these defaults.

ARCHITECTURE INTEGRATION:
  - Used by: internal/config, internal/cli (init)

ERROR HANDLING:
  - N/A

IMPLEMENTATION RULES:
  - Return a fresh value every call.

USAGE:
  p := model.DefaultParameters()

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/config/parameters.go

MAINTENANCE:
  - Update with the engine's own defaults.
*/

package model

// DefaultParameters returns the engine's stock configuration: a case 2
// water body with chlorophyll, CDOM and red-clay minerals, solved from
// 400 to 800 nm in 10 nm bands.
func DefaultParameters() *Parameters {
	return &Parameters{
		Run: RunIdentification{
			RootName: "Results",
			Title:    "Replace the rootname and title",
		},
		Engine: EngineOptions{
			Compile:      0,
			PhiChl:       0.02,
			Raman0:       488,
			RamanXS:      0.00026,
			DynamicDepth: 1,
		},
		Output: OutputOptions{
			Print:        0,
			Digital:      0,
			ExcelSingle:  2,
			ExcelMulti:   1,
			Radiance:     0,
			WavebandSkip: 1,
		},
		Models: ModelSelection{
			IOP:           2,
			SkyRadiance:   1,
			SkyIrradiance: 0,
			Chlorophyll:   2,
			CDOM:          3,
		},
		Water: Component{
			Concentration: 0,
			Absorption:    `..\data\H2OabDefaults.txt`,
			PhaseFunction: "pureh2o.dpf",
		},
		Chlorophyll: Component{
			Concentration: 30,
			Absorption:    `..\data\Examples\astarchl.txt`,
			Scattering:    `..\data\defaults\bstarmin_redclay.txt`,
			PhaseFunction: "isotrop.dpf",
		},
		CDOM: Component{
			Concentration: 0.3,
			Absorption:    "dummyastar.txt",
			PhaseFunction: "isotrop.dpf",
		},
		Minerals: Component{
			Concentration: 30,
			Absorption:    `..\data\defaults\astarmin_redclay.txt`,
			Scattering:    `..\data\defaults\bstarmin_redclay.txt`,
			PhaseFunction: "isotrop.dpf",
		},
		Wavelengths: WavelengthGrid{Start: 400, End: 800, Step: 10},
	}
}

// Clone returns a copy of p. Parameters holds no reference types, so a
// value copy is a deep copy.
func (p *Parameters) Clone() *Parameters {
	c := *p
	return &c
}
