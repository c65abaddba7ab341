package workspace

import (
	"context"
	"fmt"
	"slices"

	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/aretw0/thermoprops/pkg/ports"
)

// ResolvedSettings is the outcome of the settings screen.
type ResolvedSettings struct {
	domain.Settings
	Fluids   []string             `json:"fluids"`
	Metadata domain.FluidMetadata `json:"metadata"`
}

// ResolveSettings applies the settings-screen defaults: an absent or unknown fluid falls back
// to the first listed fluid and absent units to SI. Metadata of the chosen fluid is attached.
func ResolveSettings(ctx context.Context, engine ports.PropertyEngine, requested domain.Settings) (ResolvedSettings, error) {
	if engine == nil || !engine.Ready() {
		return ResolvedSettings{}, domain.ErrEngineUnavailable
	}

	fluids, err := engine.ListFluids(ctx)
	if err != nil {
		return ResolvedSettings{}, fmt.Errorf("failed to list fluids: %w", err)
	}
	if len(fluids) == 0 {
		return ResolvedSettings{}, fmt.Errorf("%w: engine lists no fluids", domain.ErrUnknownFluid)
	}

	out := ResolvedSettings{Settings: withDefaultUnits(requested), Fluids: fluids}
	if !slices.Contains(fluids, out.Fluid) {
		out.Fluid = fluids[0]
	}

	meta, err := engine.FluidMetadata(ctx, out.Fluid)
	if err != nil {
		return ResolvedSettings{}, fmt.Errorf("failed to read metadata of %s: %w", out.Fluid, err)
	}
	out.Metadata = meta
	return out, nil
}

// Summary describes how many states are tracked.
func Summary(n int) string {
	switch n {
	case 0:
		return "No states tracked yet"
	case 1:
		return "1 state tracked"
	}
	return fmt.Sprintf("%d states tracked", n)
}

// Subtitle is the workspace header line, e.g. "SI units · 2 states tracked".
func Subtitle(units string, n int) string {
	label := domain.UnitLabel(units)
	if label == "" {
		return Summary(n)
	}
	return label + " units · " + Summary(n)
}

// PairProperties applies a property pick on one side of the form (1 or 2).
// Picking the property already chosen on the other side moves the other side to the
// first distinct input property.
func PairProperties(side int, picked, p1, p2 string) (string, string) {
	fallback := func(current string) string {
		for _, p := range domain.InputProperties() {
			if p.Name != picked {
				return p.Name
			}
		}
		return current
	}

	if side == 1 {
		if picked == p2 {
			return picked, fallback(p2)
		}
		return picked, p2
	}
	if picked == p1 {
		return fallback(p1), picked
	}
	return p1, picked
}

// PropertyOptions lists the input properties selectable next to other.
func PropertyOptions(other string) []domain.Property {
	all := domain.InputProperties()
	out := make([]domain.Property, 0, len(all))
	for _, p := range all {
		if p.Name != other {
			out = append(out, p)
		}
	}
	return out
}
