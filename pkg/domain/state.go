package domain

import "fmt"

// StateDefinition is one tracked thermodynamic state.
// Values are canonical dot-decimal strings; they are never renormalized once stored.
type StateDefinition struct {
	ID        string `json:"id" mapstructure:"id"`
	Label     string `json:"label" mapstructure:"label"`
	Property1 string `json:"property1" mapstructure:"property1"`
	Value1    string `json:"value1" mapstructure:"value1"`
	Property2 string `json:"property2" mapstructure:"property2"`
	Value2    string `json:"value2" mapstructure:"value2"`
}

// Candidate is the raw user input for a new state, before normalization.
type Candidate struct {
	Property1 string `json:"property1" validate:"required,inputprop"`
	Value1    string `json:"value1" validate:"required"`
	Property2 string `json:"property2" validate:"required,inputprop,nefield=Property1"`
	Value2    string `json:"value2" validate:"required"`
}

// StateLabel returns the display label for the n-th created state (1-based).
func StateLabel(n int) string {
	return fmt.Sprintf("State %d", n)
}

// Lookup returns the stored input value for the given property name, if it defines the state.
func (d StateDefinition) Lookup(property string) (string, bool) {
	switch property {
	case d.Property1:
		return d.Value1, true
	case d.Property2:
		return d.Value2, true
	}
	return "", false
}

// Result is a single computed property of a state.
type Result struct {
	Name        string  `json:"name"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
	Value       float64 `json:"value"`
}

// ComputedState pairs a definition with its results or an error marker.
// A computed state is never half-populated: Error is set iff Results is empty.
type ComputedState struct {
	Definition StateDefinition `json:"definition"`
	Results    []Result        `json:"results"`
	Error      string          `json:"error,omitempty"`
}

// Failed reports whether the state could not be evaluated.
func (c ComputedState) Failed() bool {
	return c.Error != ""
}

// Result returns the computed result for the given property name.
func (c ComputedState) Result(name string) (Result, bool) {
	for _, r := range c.Results {
		if r.Name == name {
			return r, true
		}
	}
	return Result{}, false
}

// AxisMapping names the properties drawn on each chart axis.
type AxisMapping struct {
	X string `json:"x"`
	Y string `json:"y"`
}

// PlotPoint is a tracked state placed on the current chart.
type PlotPoint struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}
