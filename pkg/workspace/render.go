package workspace

import (
	"context"

	"github.com/aretw0/thermoprops/pkg/domain"
)

// Rendering is the read model of a workspace: everything a surface needs to
// display it, computed in one pass.
type Rendering struct {
	ID        string                   `json:"id,omitempty"`
	Query     string                   `json:"query"`
	Settings  domain.Settings          `json:"settings"`
	View      domain.ViewConfig        `json:"view"`
	States    []domain.StateDefinition `json:"states"`
	Computed  []domain.ComputedState   `json:"computed"`
	Axes      *domain.AxisMapping      `json:"axes,omitempty"`
	Points    []domain.PlotPoint       `json:"points"`
	Subtitle  string                   `json:"subtitle"`
	FormError string                   `json:"formError,omitempty"`
}

// Render evaluates every state once and places them on the current chart.
func (c *Controller) Render(ctx context.Context, id string) Rendering {
	computed := c.ComputedStates(ctx)
	r := Rendering{
		ID:       id,
		Query:    c.persisted,
		Settings: c.settings,
		View:     c.view,
		States:   c.States(),
		Computed: computed,
		Points:   []domain.PlotPoint{},
		Subtitle: Subtitle(c.settings.Units, len(c.states)),
	}
	if axes, ok := c.Axes(); ok {
		r.Axes = &axes
		if pts := DerivePlotPoints(computed, axes); pts != nil {
			r.Points = pts
		}
	}
	if c.formErr != nil {
		r.FormError = domain.UserMessage(c.formErr)
	}
	return r
}
