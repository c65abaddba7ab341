package ports

import (
	"context"

	"github.com/aretw0/thermoprops/pkg/domain"
)

// PropertyEngine evaluates thermodynamic properties.
// Implementations must be safe for concurrent use.
type PropertyEngine interface {
	// Ready reports whether the engine finished loading and can serve calls.
	Ready() bool

	// ListFluids returns the supported fluid names, sorted.
	ListFluids(ctx context.Context) ([]string, error)

	// FluidMetadata returns aliases and, when known, the chemical formula.
	// Returns domain.ErrUnknownFluid for unsupported names.
	FluidMetadata(ctx context.Context, fluid string) (domain.FluidMetadata, error)

	// ComputeProperty evaluates target from two independent inputs.
	// Returns domain.ErrRejectedInput when the engine cannot evaluate the pair,
	// and domain.ErrEngineUnavailable while not ready.
	ComputeProperty(ctx context.Context, target, input1 string, value1 float64, input2 string, value2 float64, fluid string) (float64, error)
}

// PlotEngine builds chart data for a fluid.
type PlotEngine interface {
	// DescribePlots lists the chart types available for the fluid.
	DescribePlots(ctx context.Context, fluid string) (domain.PlotCatalogue, error)

	// BuildPlot generates isolines (and optionally saturation curves) for a chart.
	BuildPlot(ctx context.Context, req domain.PlotRequest) (domain.PlotData, error)
}
