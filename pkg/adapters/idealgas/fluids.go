package idealgas

// Fluid describes a gas by its molar mass and heat capacity ratio.
type Fluid struct {
	Name       string
	Formula    string
	Aliases    []string
	MolarMass  float64 // kg/mol
	Gamma      float64 // cp/cv
	TMin, TMax float64 // K
	PMin, PMax float64 // Pa
}

// UniversalGasConstant in J/(mol*K).
const UniversalGasConstant = 8.314462618

// Reference state for enthalpy, internal energy and entropy.
const (
	ReferenceT = 298.15
	ReferenceP = 101325.0
)

// DefaultFluids is the built-in gas table.
var DefaultFluids = []Fluid{
	{Name: "Air", Aliases: []string{"air"}, MolarMass: 0.0289647, Gamma: 1.4},
	{Name: "Argon", Formula: "Ar", Aliases: []string{"Ar", "R740"}, MolarMass: 0.039948, Gamma: 5.0 / 3.0},
	{Name: "CarbonDioxide", Formula: "CO_{2}", Aliases: []string{"CO2", "R744"}, MolarMass: 0.0440098, Gamma: 1.289},
	{Name: "Helium", Formula: "He", Aliases: []string{"He", "R704"}, MolarMass: 0.0040026, Gamma: 5.0 / 3.0},
	{Name: "Hydrogen", Formula: "H_{2}", Aliases: []string{"H2", "R702"}, MolarMass: 0.00201588, Gamma: 1.405},
	{Name: "Nitrogen", Formula: "N_{2}", Aliases: []string{"N2", "R728"}, MolarMass: 0.02801348, Gamma: 1.4},
	{Name: "Oxygen", Formula: "O_{2}", Aliases: []string{"O2", "R732"}, MolarMass: 0.0319988, Gamma: 1.395},
	{Name: "Water", Formula: "H_{2}O", Aliases: []string{"H2O", "R718"}, MolarMass: 0.018015268, Gamma: 1.33},
}

// R returns the specific gas constant in J/(kg*K).
func (f Fluid) R() float64 {
	return UniversalGasConstant / f.MolarMass
}

// Cp returns the specific heat at constant pressure in J/(kg*K).
func (f Fluid) Cp() float64 {
	return f.Gamma * f.R() / (f.Gamma - 1)
}

// Cv returns the specific heat at constant volume in J/(kg*K).
func (f Fluid) Cv() float64 {
	return f.Cp() - f.R()
}

func (f Fluid) withDefaults() Fluid {
	if f.TMin == 0 {
		f.TMin = 20
	}
	if f.TMax == 0 {
		f.TMax = 3000
	}
	if f.PMin == 0 {
		f.PMin = 1
	}
	if f.PMax == 0 {
		f.PMax = 1e8
	}
	return f
}
