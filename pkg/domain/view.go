package domain

import "strings"

// ViewMode selects how the tracked states are displayed.
type ViewMode string

const (
	ViewGraph ViewMode = "graph"
	ViewTable ViewMode = "table"
)

// Valid reports whether m is part of the closed enum.
func (m ViewMode) Valid() bool {
	return m == ViewGraph || m == ViewTable
}

// Defaults applied when the persisted query omits a parameter.
const (
	DefaultUnits            = "si"
	DefaultPlotID           = "ph"
	DefaultIsolineParameter = ParamT
	DefaultViewMode         = ViewGraph
)

// ViewConfig is persisted alongside the states but independent of them.
type ViewConfig struct {
	PlotID           string   `json:"plot"`
	IsolineParameter int      `json:"isoline"`
	Mode             ViewMode `json:"view"`
}

// DefaultViewConfig returns the view used for a fresh workspace.
func DefaultViewConfig() ViewConfig {
	return ViewConfig{
		PlotID:           DefaultPlotID,
		IsolineParameter: DefaultIsolineParameter,
		Mode:             DefaultViewMode,
	}
}

// Settings carries the fluid and unit system chosen on the settings screen.
type Settings struct {
	Fluid string `json:"fluid"`
	Units string `json:"units"`
}

// UnitSystem is a selectable unit profile.
type UnitSystem struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Short string `json:"short"`
}

// UnitSystems lists the selectable unit profiles, default first.
var UnitSystems = []UnitSystem{
	{Value: "si", Label: "SI (kelvin, pascal, joule/kg)", Short: "SI"},
	{Value: "imperial", Label: "Imperial (fahrenheit, psi, btu/lb)", Short: "Imperial"},
}

// UnitLabel returns the short display label of a unit system.
// Unknown systems are shown upper-cased.
func UnitLabel(units string) string {
	for _, u := range UnitSystems {
		if u.Value == units {
			return u.Short
		}
	}
	return strings.ToUpper(units)
}

// LookupUnitSystem returns the unit profile with the given value.
func LookupUnitSystem(units string) (UnitSystem, bool) {
	for _, u := range UnitSystems {
		if u.Value == units {
			return u, true
		}
	}
	return UnitSystem{}, false
}

// FluidMetadata describes a fluid as reported by the property engine.
type FluidMetadata struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
	Formula string   `json:"formula,omitempty"`
}
