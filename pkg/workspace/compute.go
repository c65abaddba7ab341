package workspace

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/aretw0/thermoprops/pkg/numeric"
	"github.com/aretw0/thermoprops/pkg/ports"
)

// CalculateProperties evaluates every non-trivial output of a state, excluding its two inputs.
// It stops at the first failure: a state is either fully computed or not at all.
func CalculateProperties(ctx context.Context, engine ports.PropertyEngine, fluid string, def domain.StateDefinition) ([]domain.Result, error) {
	if fluid == "" {
		return nil, domain.ErrFluidRequired
	}
	if engine == nil || !engine.Ready() {
		return nil, domain.ErrEngineUnavailable
	}

	v1, err := numeric.ParseCanonical(def.Value1)
	if err != nil {
		return nil, err
	}
	v2, err := numeric.ParseCanonical(def.Value2)
	if err != nil {
		return nil, err
	}

	targets := domain.OutputTargets(def.Property1, def.Property2)
	results := make([]domain.Result, 0, len(targets))
	for _, target := range targets {
		value, err := engine.ComputeProperty(ctx, target.Name, def.Property1, v1, def.Property2, v2, fluid)
		if err != nil {
			return nil, fmt.Errorf("compute %s: %w", target.Name, err)
		}
		results = append(results, domain.Result{
			Name:        target.Name,
			Unit:        target.Unit,
			Description: target.Description,
			Value:       value,
		})
	}
	return results, nil
}

// computeState derives one ComputedState, mapping failures to the per-state error markers.
func computeState(ctx context.Context, engine ports.PropertyEngine, fluid string, def domain.StateDefinition) (domain.ComputedState, error) {
	results, err := CalculateProperties(ctx, engine, fluid, def)
	if err == nil {
		return domain.ComputedState{Definition: def, Results: results}, nil
	}

	var msg string
	switch {
	case errors.Is(err, domain.ErrFluidRequired):
		msg = domain.MsgSelectFluid
	case errors.Is(err, domain.ErrEngineUnavailable):
		msg = domain.MsgUnavailable
	case errors.Is(err, domain.ErrInvalidNumber):
		msg = domain.MsgStateNotNumeric
	default:
		msg = domain.MsgStateFailed
	}
	return domain.ComputedState{Definition: def, Error: msg}, err
}

// DerivePlotPoints places every successfully computed state on a chart.
// Axis values come from the defining inputs first, then from the results.
// States with an unresolved axis are left out.
func DerivePlotPoints(computed []domain.ComputedState, axes domain.AxisMapping) []domain.PlotPoint {
	points := make([]domain.PlotPoint, 0, len(computed))
	for _, cs := range computed {
		if cs.Failed() {
			continue
		}
		x, ok := axisValue(cs, axes.X)
		if !ok {
			continue
		}
		y, ok := axisValue(cs, axes.Y)
		if !ok {
			continue
		}
		points = append(points, domain.PlotPoint{
			ID:    cs.Definition.ID,
			Label: cs.Definition.Label,
			X:     x,
			Y:     y,
		})
	}
	return points
}

func axisValue(cs domain.ComputedState, property string) (float64, bool) {
	if raw, ok := cs.Definition.Lookup(property); ok {
		v, err := numeric.ParseCanonical(raw)
		return v, err == nil
	}
	if r, ok := cs.Result(property); ok {
		return r.Value, true
	}
	return 0, false
}
