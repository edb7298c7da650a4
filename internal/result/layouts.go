/*
PURPOSE:
  Registry of result-document table layouts.

REQUIREMENTS:
  User-specified:
  - Tables are selected by name on the command line and in config.

  Implementation-discovered:
  - Markers are engine-version constants.

ARCHITECTURE INTEGRATION:
  - Used by: internal/result, internal/engine, internal/cli

ERROR HANDLING:
  - LookupLayout lists known names on an unknown one.

IMPLEMENTATION RULES:
  - Offsets are inclusive bounds relative to the markers.

USAGE:
  l, err := result.LookupLayout("rrs")

SELF-HEALING INSTRUCTIONS:
  - If decoding fails after an engine upgrade, compare marker text with a fresh M-file.

RELATED FILES:
  - internal/result/document.go

MAINTENANCE:
  - Add new tables here.
*/

package result

import (
	"fmt"
	"sort"
)

// Layout describes one fixed-column table of a result document. Data rows
// are the lines from HeaderOffset lines below the header marker to
// FooterOffset lines above the footer marker, both inclusive.
type Layout struct {
	Name         string
	Header       string
	Footer       string
	HeaderOffset int
	FooterOffset int
	Columns      []string
}

// Rrs is the remote-sensing reflectance table of the multi-wavelength
// (M<root>.txt) document: wavelength in nm, Rrs in 1/sr, Ed in W/m^2/nm,
// and the water-leaving and upwelling radiances Lw and Lu in W/m^2/sr/nm.
var Rrs = Layout{
	Name:         "rrs",
	Header:       `" " "in air" "Rrs" "Ed" "Lw" "Lu"`,
	Footer:       `"R" "R = Eu/Ed"`,
	HeaderOffset: 1,
	FooterOffset: 1,
	Columns:      []string{"wavelength", "Rrs", "Ed", "Lw", "Lu"},
}

// Layouts holds every known layout by name.
var Layouts = map[string]Layout{
	Rrs.Name: Rrs,
}

// LookupLayout returns the layout registered under name.
func LookupLayout(name string) (Layout, error) {
	l, ok := Layouts[name]
	if !ok {
		return Layout{}, fmt.Errorf("unknown table %q (known: %v)", name, LayoutNames())
	}
	return l, nil
}

// LayoutNames returns the registered layout names in sorted order.
func LayoutNames() []string {
	names := make([]string, 0, len(Layouts))
	for n := range Layouts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
