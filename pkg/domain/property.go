package domain

import "fmt"

// Parameter codes understood by the property engine.
const (
	ParamT = 19
	ParamP = 20
	ParamQ = 21
	ParamD = 36
	ParamH = 37
	ParamS = 38
	ParamU = 42
)

// Property is a named thermodynamic quantity of the catalogue.
type Property struct {
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	Description string `json:"description"`
	Input       bool   `json:"input"`
	Output      bool   `json:"output"`
	Trivial     bool   `json:"trivial"`
	Code        int    `json:"code,omitempty"`
}

// Properties is the catalogue, in display order.
var Properties = []Property{
	{Name: "T", Unit: "K", Description: "Temperature", Input: true, Output: true, Code: ParamT},
	{Name: "P", Unit: "Pa", Description: "Pressure", Input: true, Output: true, Code: ParamP},
	{Name: "D", Unit: "kg/m^3", Description: "Mass density", Input: true, Output: true, Code: ParamD},
	{Name: "H", Unit: "J/kg", Description: "Mass specific enthalpy", Input: true, Output: true, Code: ParamH},
	{Name: "S", Unit: "J/(kg*K)", Description: "Mass specific entropy", Input: true, Output: true, Code: ParamS},
	{Name: "U", Unit: "J/kg", Description: "Mass specific internal energy", Input: true, Output: true, Code: ParamU},
	{Name: "Q", Unit: "mol/mol", Description: "Molar vapor quality", Input: true, Output: true, Code: ParamQ},
	{Name: "CPMASS", Unit: "J/(kg*K)", Description: "Mass specific constant pressure specific heat", Output: true},
	{Name: "CVMASS", Unit: "J/(kg*K)", Description: "Mass specific constant volume specific heat", Output: true},
	{Name: "TMIN", Unit: "K", Description: "Minimum temperature", Output: true, Trivial: true},
	{Name: "TMAX", Unit: "K", Description: "Maximum temperature", Output: true, Trivial: true},
	{Name: "PMIN", Unit: "Pa", Description: "Minimum pressure", Output: true, Trivial: true},
	{Name: "PMAX", Unit: "Pa", Description: "Maximum pressure", Output: true, Trivial: true},
	{Name: "PHASE", Unit: "", Description: "Phase", Output: true},
	{Name: "G", Unit: "J/kg", Description: "Mass specific Gibbs free energy", Output: true},
}

// LookupProperty returns the catalogue entry for name.
func LookupProperty(name string) (Property, bool) {
	for _, p := range Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// PropertyByCode returns the catalogue entry for an engine parameter code.
func PropertyByCode(code int) (Property, bool) {
	if code == 0 {
		return Property{}, false
	}
	for _, p := range Properties {
		if p.Code == code {
			return p, true
		}
	}
	return Property{}, false
}

// InputProperties returns the input-capable properties, in catalogue order.
func InputProperties() []Property {
	out := make([]Property, 0, 7)
	for _, p := range Properties {
		if p.Input {
			out = append(out, p)
		}
	}
	return out
}

// IsInputProperty reports whether name is an input-capable property.
func IsInputProperty(name string) bool {
	p, ok := LookupProperty(name)
	return ok && p.Input
}

// CheckInputPair validates the two defining properties of a state.
func CheckInputPair(p1, p2 string) error {
	if !IsInputProperty(p1) {
		return fmt.Errorf("%w: invalid input property %q", ErrUnknownProperty, p1)
	}
	if !IsInputProperty(p2) {
		return fmt.Errorf("%w: invalid input property %q", ErrUnknownProperty, p2)
	}
	if p1 == p2 {
		return fmt.Errorf("%w: properties must differ (%s)", ErrInvalidCandidate, p1)
	}
	return nil
}

// OutputTargets returns the non-trivial outputs computed for a state defined by p1 and p2.
func OutputTargets(p1, p2 string) []Property {
	out := make([]Property, 0, len(Properties))
	for _, p := range Properties {
		if !p.Output || p.Trivial || p.Name == p1 || p.Name == p2 {
			continue
		}
		out = append(out, p)
	}
	return out
}
