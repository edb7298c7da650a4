/*
PURPOSE:
  Holds the literal lines of the engine's run-script grammar.

REQUIREMENTS:
  User-specified:
  - Scripts must be byte-identical to the ones the engine GUI writes.

  Implementation-discovered:
  - Many lines are fixed placeholders the engine still expects at their position.

ARCHITECTURE INTEGRATION:
  - Used by: internal/script/document.go

ERROR HANDLING:
  - N/A (constants only).

IMPLEMENTATION RULES:
  - Never derive these lines from Parameters.
  - Keep the line order of Render in step with this file.

USAGE:
  d.add(boundaryConditions...)

SELF-HEALING INSTRUCTIONS:
  - If the engine rejects a script, diff it against a GUI-written one line by line.

RELATED FILES:
  - internal/script/document.go

MAINTENANCE:
  - Update when a new engine version changes its batch grammar.
*/

package script

// Fixed literal blocks of the run-script grammar. None of these lines is
// derived from Parameters; the engine requires them verbatim at their
// position regardless of configuration.

// PAR integration bounds (nm) written on the first line.
const (
	parMin = "400"
	parMax = "700"
)

// componentCounts precedes the concentration line: number of components
// and number of concentration profiles.
const componentCounts = "4,4"

// concentrationProfiles holds one constant-profile row per component
// (water, chlorophyll, CDOM, minerals).
var concentrationProfiles = []string{
	"0,1,440,.1,.014",
	"0,0,440,.1,.014",
	"0,4,440,1,.014",
	"0,0,440,.1,.014",
}

// absorptionModels holds the per-component absorption model rows;
// -999 marks an unused field.
var absorptionModels = []string{
	"0,-999,-999,-999,-999,-999",
	"4,550,.3,1,.62,-999",
	"-1,-999,0,-999,-999,-999",
	"0,-999,-999,-999,-999,-999",
}

// scatteringPlaceholders stand in for the water, chlorophyll and CDOM
// scattering files, which the selected models never read. The minerals
// file follows them.
var scatteringPlaceholders = []string{
	"bstarDummy.txt",
	"dummybstar.txt",
	"dummybstar.txt",
}

// phaseFunctionModels holds the per-component scattering and phase
// function rows.
var phaseFunctionModels = []string{
	"0,0,550,.01,0",
	"1,.005,0,0,0",
	"-1,0,0,0,0",
	"1,.028,0,0,0",
}

// boundaryConditions covers the sky, surface, bottom and depth-output
// groups that follow the wavelength grid.
var boundaryConditions = []string{
	"0,0,0,0,2",
	"2,3,30,0,0",
	"-1,0,0,29.92,1,80,2.5,15,4.99746,300",
	"2.99937,1.34,20,35",
	"0,0",
	"0,2,0,10,",
}

// dataFileFlag precedes the unused data-file channels.
const dataFileFlag = "1"

// dataFilePlaceholders name the ac9, HydroScat, component, bottom
// reflectance, irradiance and bioluminescence files of disabled channels.
var dataFilePlaceholders = []string{
	"dummyac9.txt",
	"dummyFilteredAc9.txt",
	"dummyHscat.txt",
	"dummyComp.txt",
	"dummyComp.txt",
	"dummyR.bot",
	"dummydata.txt",
	"dummyComp.txt",
	"dummyComp.txt",
	"dummyComp.txt",
	"DummyIrrad.txt",
	`..\data\MyBiolumData.txt`,
}

// File naming conventions of the engine.
const (
	scriptPrefix  = "I"
	resultPrefix  = "M"
	fileExt       = ".txt"
	RunListName   = "runlist.txt"
	lineSeparator = "\n"
)

// ScriptName returns the run-script file name for rootName.
func ScriptName(rootName string) string { return scriptPrefix + rootName + fileExt }

// ResultName returns the multi-wavelength result file name for rootName.
func ResultName(rootName string) string { return resultPrefix + rootName + fileExt }
