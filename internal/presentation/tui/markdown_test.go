package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/aretw0/thermoprops/pkg/workspace"
)

var inlet = domain.StateDefinition{ID: "a", Label: "State 1", Property1: "T", Value1: "300", Property2: "P", Value2: "101325"}

func TestStateMarkdown(t *testing.T) {
	md := StateMarkdown(domain.ComputedState{
		Definition: inlet,
		Results:    []domain.Result{{Name: "D", Unit: "kg/m³", Description: "Density", Value: 1.13806}},
	})
	assert.Contains(t, md, "### State 1")
	assert.Contains(t, md, "T = 300 K · P = 101325 Pa")
	assert.Contains(t, md, "| D | 1.138 | kg/m³ | Density |")

	failed := StateMarkdown(domain.ComputedState{Definition: inlet, Error: "rejected"})
	assert.Contains(t, failed, "> rejected")
	assert.NotContains(t, failed, "| Property |")
}

func TestWorkspaceMarkdown(t *testing.T) {
	base := workspace.Rendering{
		Query:    "fluid=Nitrogen",
		Settings: domain.Settings{Fluid: "Nitrogen", Units: "si"},
		States:   []domain.StateDefinition{inlet},
		Subtitle: "SI units · 1 state tracked",
	}

	t.Run("Graph", func(t *testing.T) {
		r := base
		r.View = domain.ViewConfig{PlotID: "ph", Mode: domain.ViewGraph}
		r.Axes = &domain.AxisMapping{X: "H", Y: "P"}
		r.Points = []domain.PlotPoint{{ID: "a", Label: "State 1", X: 1500, Y: 101325}}
		md := WorkspaceMarkdown(r)
		assert.Contains(t, md, "# Nitrogen")
		assert.Contains(t, md, "| State 1 | 1,500 | 101,300 |")
		assert.Contains(t, md, "`?fluid=Nitrogen`")
	})

	t.Run("Unknown chart", func(t *testing.T) {
		r := base
		r.View = domain.ViewConfig{PlotID: "xx", Mode: domain.ViewGraph}
		assert.Contains(t, WorkspaceMarkdown(r), "Unknown chart `xx`")
	})

	t.Run("Table", func(t *testing.T) {
		r := base
		r.View = domain.ViewConfig{PlotID: "ph", Mode: domain.ViewTable}
		r.Computed = []domain.ComputedState{{Definition: inlet, Error: "boom"}}
		r.FormError = "Values must be numeric"
		md := WorkspaceMarkdown(r)
		assert.Contains(t, md, "> Values must be numeric")
		assert.Contains(t, md, "> boom")
	})

	t.Run("No fluid", func(t *testing.T) {
		assert.Contains(t, WorkspaceMarkdown(workspace.Rendering{}), "No fluid selected.")
	})
}

func TestPresetMarkdown(t *testing.T) {
	md := PresetMarkdown(domain.Preset{
		ID:       "p",
		Title:    "Compression",
		Settings: domain.Settings{Fluid: "Nitrogen", Units: "si"},
		View:     domain.DefaultViewConfig(),
		States:   []domain.StateDefinition{inlet},
	})
	assert.Contains(t, md, "# Compression")
	assert.Contains(t, md, "**Units:** SI")
	assert.Contains(t, md, "| State 1 | T = 300 K | P = 101325 Pa |")
	assert.Contains(t, md, "fluid=Nitrogen")
}

func TestFluidMarkdown(t *testing.T) {
	assert.Contains(t, FluidsMarkdown([]string{"Argon", "Nitrogen"}), "- Nitrogen\n")
	md := FluidMarkdown(domain.FluidMetadata{Name: "Nitrogen", Formula: "N_{2}", Aliases: []string{"N2", "R728"}})
	assert.Contains(t, md, "**Aliases:** N2, R728")
}

func TestRenderers(t *testing.T) {
	out, err := Plain("# x")
	require.NoError(t, err)
	assert.Equal(t, "# x", out)

	render := NewRenderer(40)
	out, err = render("# Nitrogen")
	require.NoError(t, err)
	assert.Contains(t, out, "Nitrogen")

	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_|")
}
