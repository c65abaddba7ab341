// Package plot builds property charts on top of any ports.PropertyEngine.
//
// A chart is a pair of axes plus families of isolines: curves along which
// one property is held constant while another is swept across its range.
package plot

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/aretw0/thermoprops/internal/logging"
	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/aretw0/thermoprops/pkg/ports"
)

const (
	// DefaultValueCount is the number of isolines per family when none is requested.
	DefaultValueCount = 5
	// DefaultPoints is the number of points per isoline when none is requested.
	DefaultPoints = 50
	// MaxValueCount caps the isolines of one family.
	MaxValueCount = 50
	// MaxPoints caps the points of one isoline.
	MaxPoints = 1000
)

// Saturation curve labels.
const (
	LabelSaturatedLiquid = "Saturated Liquid"
	LabelSaturatedVapor  = "Saturated Vapor"
)

// Builder implements ports.PlotEngine.
type Builder struct {
	engine ports.PropertyEngine
	logger *slog.Logger
	points int
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithDefaultPoints changes the number of points per isoline.
func WithDefaultPoints(n int) Option {
	return func(b *Builder) {
		if n > 1 {
			b.points = min(n, MaxPoints)
		}
	}
}

// NewBuilder creates a Builder over engine.
func NewBuilder(engine ports.PropertyEngine, opts ...Option) *Builder {
	b := &Builder{
		engine: engine,
		logger: logging.NewNop(),
		points: DefaultPoints,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// DescribePlots returns the chart catalogue with ranges for fluid.
func (b *Builder) DescribePlots(ctx context.Context, fluid string) (domain.PlotCatalogue, error) {
	if fluid == "" {
		return domain.PlotCatalogue{}, domain.ErrFluidRequired
	}
	if b.engine == nil || !b.engine.Ready() {
		return domain.PlotCatalogue{}, domain.ErrEngineUnavailable
	}
	if _, err := b.engine.FluidMetadata(ctx, fluid); err != nil {
		return domain.PlotCatalogue{}, err
	}

	lim := b.limits(ctx, fluid)
	cat := domain.PlotCatalogue{Fluid: fluid}
	for _, c := range charts {
		xr, okX := lim[c.x]
		yr, okY := lim[c.y]
		if !okX || !okY {
			b.logger.Debug("chart skipped, axis range unavailable", "fluid", fluid, "plot", c.id)
			continue
		}
		def := domain.PlotDefinition{
			ID:    c.id,
			Label: c.label,
			XAxis: axis(c.x, c.xScale, xr),
			YAxis: axis(c.y, c.yScale, yr),
		}
		for _, name := range c.isolines {
			r, ok := lim[name]
			if !ok {
				continue
			}
			p, _ := domain.LookupProperty(name)
			def.IsolineOptions = append(def.IsolineOptions, domain.IsolineOption{
				Parameter: p.Code,
				Property:  name,
				Range:     r,
			})
		}
		cat.Plots = append(cat.Plots, def)
	}
	return cat, nil
}

// BuildPlot generates the requested isolines. Points the engine rejects are
// skipped; an isoline with no points left is dropped.
func (b *Builder) BuildPlot(ctx context.Context, req domain.PlotRequest) (domain.PlotData, error) {
	cat, err := b.DescribePlots(ctx, req.Fluid)
	if err != nil {
		return domain.PlotData{}, err
	}
	def, ok := cat.Find(req.PlotID)
	if !ok {
		return domain.PlotData{}, fmt.Errorf("%w: %s", domain.ErrUnknownPlot, req.PlotID)
	}

	data := domain.PlotData{
		Fluid:             req.Fluid,
		PlotID:            def.ID,
		XAxis:             def.XAxis,
		YAxis:             def.YAxis,
		AvailableIsolines: def.IsolineOptions,
	}

	points := b.points
	if req.DefaultPointsPerIsoline > 1 {
		points = min(req.DefaultPointsPerIsoline, MaxPoints)
	}

	for _, ir := range req.Isolines {
		if err := ctx.Err(); err != nil {
			return domain.PlotData{}, err
		}
		opt, ok := findOption(def, ir.Parameter)
		if !ok {
			return domain.PlotData{}, fmt.Errorf("%w: isoline parameter %d not available on %s", domain.ErrUnknownProperty, ir.Parameter, def.ID)
		}
		n := points
		if ir.Points > 1 {
			n = min(ir.Points, MaxPoints)
		}
		for _, v := range isolineValues(opt, ir) {
			line, ok := b.isoline(ctx, req.Fluid, def, opt.Property, v, n)
			if !ok {
				b.logger.Debug("isoline dropped", "fluid", req.Fluid, "plot", def.ID, "property", opt.Property, "value", v)
				continue
			}
			line.Parameter = opt.Parameter
			data.Isolines = append(data.Isolines, line)
		}
	}

	if req.IncludeSaturationCurves {
		for _, q := range []float64{0, 1} {
			if line, ok := b.saturation(ctx, req.Fluid, def, q, points); ok {
				data.Isolines = append(data.Isolines, line)
			}
		}
	}
	return data, nil
}

func findOption(def domain.PlotDefinition, parameter int) (domain.IsolineOption, bool) {
	for _, o := range def.IsolineOptions {
		if o.Parameter == parameter {
			return o, true
		}
	}
	return domain.IsolineOption{}, false
}

func isolineValues(opt domain.IsolineOption, ir domain.IsolineRequest) []float64 {
	if len(ir.Values) > 0 {
		return ir.Values[:min(len(ir.Values), MaxValueCount)]
	}
	r := opt.Range
	if ir.CustomRange != nil {
		r = *ir.CustomRange
	}
	count := ir.ValueCount
	if count <= 0 {
		count = DefaultValueCount
	}
	count = min(count, MaxValueCount)
	if opt.Property == "P" || opt.Property == "D" {
		return Logspace(r.Min, r.Max, count)
	}
	return Linspace(r.Min, r.Max, count)
}

// isoline holds property at value and sweeps the y axis, falling back to the
// x axis when the engine accepts no point of the first sweep.
func (b *Builder) isoline(ctx context.Context, fluid string, def domain.PlotDefinition, property string, value float64, n int) (domain.Isoline, bool) {
	sweeps := []struct {
		free, other domain.PlotAxis
		freeIsX     bool
	}{
		{free: def.YAxis, other: def.XAxis},
		{free: def.XAxis, other: def.YAxis, freeIsX: true},
	}
	for _, s := range sweeps {
		var xs, ys []float64
		for _, sv := range spacing(s.free, n) {
			ov, err := b.engine.ComputeProperty(ctx, s.other.Property, property, value, s.free.Property, sv, fluid)
			if err != nil {
				continue
			}
			if s.freeIsX {
				xs, ys = append(xs, sv), append(ys, ov)
			} else {
				xs, ys = append(xs, ov), append(ys, sv)
			}
		}
		if len(xs) > 0 {
			return domain.Isoline{
				Value: value,
				Label: IsolineLabel(value, property),
				X:     xs,
				Y:     ys,
			}, true
		}
	}
	return domain.Isoline{}, false
}

// saturation traces the dome branch of quality q across the temperature range.
func (b *Builder) saturation(ctx context.Context, fluid string, def domain.PlotDefinition, q float64, n int) (domain.Isoline, bool) {
	lim := b.limits(ctx, fluid)
	t := lim["T"]

	eval := func(name string, tv float64) (float64, error) {
		if name == "T" {
			return tv, nil
		}
		return b.engine.ComputeProperty(ctx, name, "Q", q, "T", tv, fluid)
	}

	var xs, ys []float64
	for _, tv := range Linspace(t.Min, t.Max, n) {
		x, err := eval(def.XAxis.Property, tv)
		if err != nil {
			continue
		}
		y, err := eval(def.YAxis.Property, tv)
		if err != nil {
			continue
		}
		xs, ys = append(xs, x), append(ys, y)
	}
	if len(xs) == 0 {
		return domain.Isoline{}, false
	}
	label := LabelSaturatedLiquid
	if q == 1 {
		label = LabelSaturatedVapor
	}
	return domain.Isoline{Parameter: domain.ParamQ, Value: q, Label: label, X: xs, Y: ys}, true
}

func spacing(a domain.PlotAxis, n int) []float64 {
	if a.Scale == domain.ScaleLog {
		return Logspace(a.Range.Min, a.Range.Max, n)
	}
	return Linspace(a.Range.Min, a.Range.Max, n)
}

// Linspace returns n evenly spaced values over [lo, hi].
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{(lo + hi) / 2}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	out[n-1] = hi
	return out
}

// Logspace returns n values evenly spaced in log10 over [lo, hi]. Ranges
// that are not strictly positive fall back to Linspace.
func Logspace(lo, hi float64, n int) []float64 {
	if lo <= 0 || hi <= 0 {
		return Linspace(lo, hi, n)
	}
	exps := Linspace(math.Log10(lo), math.Log10(hi), n)
	for i, e := range exps {
		exps[i] = math.Pow(10, e)
	}
	if n > 1 {
		exps[0], exps[n-1] = lo, hi
	}
	return exps
}
