package plot

import (
	"context"
	"math"

	"github.com/aretw0/thermoprops/pkg/domain"
)

// chart is the static shape of a catalogue entry; ranges are filled per fluid.
type chart struct {
	id       string
	label    string
	x, y     string
	xScale   domain.AxisScale
	yScale   domain.AxisScale
	isolines []string
}

var charts = []chart{
	{id: "ph", label: "Pressure-Enthalpy", x: "H", y: "P", yScale: domain.ScaleLog, isolines: []string{"T", "S", "D"}},
	{id: "ts", label: "Temperature-Entropy", x: "S", y: "T", isolines: []string{"P", "D", "H"}},
	{id: "pt", label: "Pressure-Temperature", x: "T", y: "P", yScale: domain.ScaleLog, isolines: []string{"D", "H", "S"}},
	{id: "rh", label: "Density-Enthalpy", x: "H", y: "D", yScale: domain.ScaleLog, isolines: []string{"T", "P", "S"}},
}

// Fallback limits used when the engine cannot report its own.
var (
	fallbackT = domain.Range{Min: 200, Max: 1000}
	fallbackP = domain.Range{Min: 1e4, Max: 1e7}
)

const (
	maxPlotT   = 2000.0
	minPlotP   = 1e3
	maxPlotP   = 1e8
	referenceT = 300.0
	referenceP = 101325.0
)

// limits holds the property ranges of one fluid.
type limits map[string]domain.Range

func (b *Builder) limits(ctx context.Context, fluid string) limits {
	trivial := func(name string, fallback float64) float64 {
		v, err := b.engine.ComputeProperty(ctx, name, "T", referenceT, "P", referenceP, fluid)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return fallback
		}
		return v
	}

	t := domain.Range{
		Min: trivial("TMIN", fallbackT.Min),
		Max: math.Min(trivial("TMAX", fallbackT.Max), maxPlotT),
	}
	p := domain.Range{
		Min: math.Max(trivial("PMIN", fallbackP.Min), minPlotP),
		Max: math.Min(trivial("PMAX", fallbackP.Max), maxPlotP),
	}
	if t.Min >= t.Max {
		t = fallbackT
	}
	if p.Min >= p.Max {
		p = fallbackP
	}

	out := limits{"T": t, "P": p}
	// Derived properties span the values reached at the corners of the T-P box.
	for _, name := range []string{"H", "S", "D"} {
		r := domain.Range{Min: math.Inf(1), Max: math.Inf(-1)}
		for _, tv := range []float64{t.Min, t.Max} {
			for _, pv := range []float64{p.Min, p.Max} {
				v, err := b.engine.ComputeProperty(ctx, name, "T", tv, "P", pv, fluid)
				if err != nil {
					continue
				}
				r.Min = math.Min(r.Min, v)
				r.Max = math.Max(r.Max, v)
			}
		}
		if r.Min < r.Max {
			out[name] = r
		}
	}
	return out
}

func axis(name string, scale domain.AxisScale, r domain.Range) domain.PlotAxis {
	p, _ := domain.LookupProperty(name)
	return domain.PlotAxis{
		Parameter: p.Code,
		Property:  name,
		Scale:     scale,
		Range:     r,
		Title:     AxisTitle(name),
	}
}
