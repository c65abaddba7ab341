// Package idealgas is an in-process property engine treating every fluid as a
// calorically perfect ideal gas. It needs no external module and is always ready.
package idealgas

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aretw0/thermoprops/pkg/domain"
)

// phaseGas is the engine phase index reported for every state.
const phaseGas = 5

// Engine implements ports.PropertyEngine.
type Engine struct {
	fluids map[string]Fluid
	index  map[string]string
}

// Option configures an Engine.
type Option func(*Engine)

// WithFluids replaces the gas table.
func WithFluids(fluids ...Fluid) Option {
	return func(e *Engine) {
		e.fluids = map[string]Fluid{}
		e.index = map[string]string{}
		for _, f := range fluids {
			e.add(f)
		}
	}
}

// New creates an engine over DefaultFluids.
func New(opts ...Option) *Engine {
	e := &Engine{fluids: map[string]Fluid{}, index: map[string]string{}}
	for _, f := range DefaultFluids {
		e.add(f)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) add(f Fluid) {
	f = f.withDefaults()
	e.fluids[f.Name] = f
	e.index[strings.ToLower(f.Name)] = f.Name
	for _, a := range f.Aliases {
		e.index[strings.ToLower(a)] = f.Name
	}
}

func (e *Engine) lookup(name string) (Fluid, error) {
	canonical, ok := e.index[strings.ToLower(name)]
	if !ok {
		return Fluid{}, fmt.Errorf("%w: %s", domain.ErrUnknownFluid, name)
	}
	return e.fluids[canonical], nil
}

// Ready is always true.
func (e *Engine) Ready() bool { return true }

// ListFluids returns the fluid names, sorted.
func (e *Engine) ListFluids(context.Context) ([]string, error) {
	names := make([]string, 0, len(e.fluids))
	for name := range e.fluids {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// FluidMetadata returns aliases and formula of a fluid (name or alias).
func (e *Engine) FluidMetadata(_ context.Context, fluid string) (domain.FluidMetadata, error) {
	f, err := e.lookup(fluid)
	if err != nil {
		return domain.FluidMetadata{}, err
	}
	return domain.FluidMetadata{
		Name:    f.Name,
		Aliases: append([]string(nil), f.Aliases...),
		Formula: f.Formula,
	}, nil
}

// ComputeProperty evaluates target from two inputs.
func (e *Engine) ComputeProperty(_ context.Context, target, in1 string, v1 float64, in2 string, v2 float64, fluid string) (float64, error) {
	f, err := e.lookup(fluid)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v1) || math.IsInf(v1, 0) || math.IsNaN(v2) || math.IsInf(v2, 0) {
		return 0, fmt.Errorf("%w: non-finite input", domain.ErrRejectedInput)
	}

	T, P, err := resolve(f, in1, v1, in2, v2)
	if err != nil {
		return 0, err
	}
	if T < f.TMin || T > f.TMax {
		return 0, fmt.Errorf("%w: temperature %g K outside [%g, %g]", domain.ErrRejectedInput, T, f.TMin, f.TMax)
	}
	if P < f.PMin || P > f.PMax {
		return 0, fmt.Errorf("%w: pressure %g Pa outside [%g, %g]", domain.ErrRejectedInput, P, f.PMin, f.PMax)
	}
	return output(f, target, T, P)
}

// resolve turns any supported input pair into temperature and pressure.
func resolve(f Fluid, in1 string, v1 float64, in2 string, v2 float64) (float64, float64, error) {
	if in1 == in2 {
		return 0, 0, fmt.Errorf("%w: inputs must differ", domain.ErrRejectedInput)
	}
	in := map[string]float64{in1: v1, in2: v2}
	for name := range in {
		switch name {
		case "T", "P", "D", "H", "S", "U":
		default:
			return 0, 0, fmt.Errorf("%w: %s is not an ideal-gas input", domain.ErrRejectedInput, name)
		}
	}
	for _, name := range []string{"T", "P", "D"} {
		if v, ok := in[name]; ok && v <= 0 {
			return 0, 0, fmt.Errorf("%w: %s must be positive", domain.ErrRejectedInput, name)
		}
	}

	R, cp, cv := f.R(), f.Cp(), f.Cv()

	// T, H and U all fix the temperature alone.
	T, haveT := 0.0, false
	switch {
	case has(in, "T"):
		T, haveT = in["T"], true
	case has(in, "H"):
		T, haveT = ReferenceT+in["H"]/cp, true
	case has(in, "U"):
		T, haveT = ReferenceT+in["U"]/cv, true
	}

	if haveT {
		caloric := count(in, "T", "H", "U")
		if caloric > 1 {
			return 0, 0, fmt.Errorf("%w: %s and %s both fix the temperature", domain.ErrRejectedInput, in1, in2)
		}
		if T <= 0 {
			return 0, 0, fmt.Errorf("%w: temperature %g K", domain.ErrRejectedInput, T)
		}
		switch {
		case has(in, "P"):
			return T, in["P"], nil
		case has(in, "D"):
			return T, in["D"] * R * T, nil
		case has(in, "S"):
			return T, ReferenceP * math.Exp((cp*math.Log(T/ReferenceT)-in["S"])/R), nil
		}
	}

	switch {
	case has(in, "P") && has(in, "D"):
		return in["P"] / (in["D"] * R), in["P"], nil
	case has(in, "P") && has(in, "S"):
		P := in["P"]
		T := ReferenceT * math.Exp((in["S"]+R*math.Log(P/ReferenceP))/cp)
		return T, P, nil
	case has(in, "D") && has(in, "S"):
		D := in["D"]
		lnT := (in["S"] + cp*math.Log(ReferenceT) + R*math.Log(D*R/ReferenceP)) / cv
		T := math.Exp(lnT)
		return T, D * R * T, nil
	}
	return 0, 0, fmt.Errorf("%w: unsupported input pair %s, %s", domain.ErrRejectedInput, in1, in2)
}

func output(f Fluid, target string, T, P float64) (float64, error) {
	R, cp, cv := f.R(), f.Cp(), f.Cv()
	h := cp * (T - ReferenceT)
	s := cp*math.Log(T/ReferenceT) - R*math.Log(P/ReferenceP)

	var v float64
	switch target {
	case "T":
		v = T
	case "P":
		v = P
	case "D":
		v = P / (R * T)
	case "H":
		v = h
	case "U":
		v = cv * (T - ReferenceT)
	case "S":
		v = s
	case "G":
		v = h - T*s
	case "CPMASS":
		v = cp
	case "CVMASS":
		v = cv
	case "Q":
		v = -1
	case "PHASE":
		v = phaseGas
	case "TMIN":
		v = f.TMin
	case "TMAX":
		v = f.TMax
	case "PMIN":
		v = f.PMin
	case "PMAX":
		v = f.PMax
	default:
		return 0, fmt.Errorf("%w: %s", domain.ErrUnknownProperty, target)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s is not finite", domain.ErrRejectedInput, target)
	}
	return v, nil
}

func has(in map[string]float64, name string) bool {
	_, ok := in[name]
	return ok
}

func count(in map[string]float64, names ...string) int {
	n := 0
	for _, name := range names {
		if has(in, name) {
			n++
		}
	}
	return n
}
