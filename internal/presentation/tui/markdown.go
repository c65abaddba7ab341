package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/aretw0/thermoprops/pkg/plot"
	"github.com/aretw0/thermoprops/pkg/workspace"
)

// FluidsMarkdown lists fluid names.
func FluidsMarkdown(fluids []string) string {
	var b strings.Builder
	b.WriteString("# Fluids\n\n")
	for _, f := range fluids {
		fmt.Fprintf(&b, "- %s\n", f)
	}
	return b.String()
}

// FluidMarkdown describes one fluid.
func FluidMarkdown(meta domain.FluidMetadata) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", meta.Name)
	if meta.Formula != "" {
		fmt.Fprintf(&b, "**Formula:** `%s`\n\n", meta.Formula)
	}
	if len(meta.Aliases) > 0 {
		fmt.Fprintf(&b, "**Aliases:** %s\n", strings.Join(meta.Aliases, ", "))
	}
	return b.String()
}

// StateMarkdown renders the outputs of one state as a table.
func StateMarkdown(cs domain.ComputedState) string {
	var b strings.Builder
	title := cs.Definition.Label
	if title == "" {
		title = "State"
	}
	fmt.Fprintf(&b, "### %s\n\n", title)
	fmt.Fprintf(&b, "%s · %s\n\n", inputLabel(cs.Definition.Property1, cs.Definition.Value1), inputLabel(cs.Definition.Property2, cs.Definition.Value2))

	if cs.Failed() {
		fmt.Fprintf(&b, "> %s\n", cs.Error)
		return b.String()
	}

	b.WriteString("| Property | Value | Unit | Description |\n")
	b.WriteString("|---|---:|---|---|\n")
	for _, r := range cs.Results {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", r.Name, plot.FormatValue(r.Value), r.Unit, r.Description)
	}
	return b.String()
}

// WorkspaceMarkdown renders a workspace in its current view mode.
func WorkspaceMarkdown(r workspace.Rendering) string {
	var b strings.Builder
	if r.Settings.Fluid == "" {
		b.WriteString("# Workspace\n\nNo fluid selected.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", r.Settings.Fluid, r.Subtitle)
	if r.FormError != "" {
		fmt.Fprintf(&b, "> %s\n\n", r.FormError)
	}

	if r.View.Mode == domain.ViewGraph {
		writePoints(&b, r)
	} else {
		for _, cs := range r.Computed {
			b.WriteString(StateMarkdown(cs))
			b.WriteString("\n")
		}
	}

	if r.Query != "" {
		fmt.Fprintf(&b, "`?%s`\n", r.Query)
	}
	return b.String()
}

func writePoints(b *strings.Builder, r workspace.Rendering) {
	if r.Axes == nil {
		fmt.Fprintf(b, "Unknown chart `%s`.\n\n", r.View.PlotID)
		return
	}
	fmt.Fprintf(b, "Chart `%s`: %s against %s\n\n", r.View.PlotID, plot.AxisTitle(r.Axes.Y), plot.AxisTitle(r.Axes.X))
	if len(r.Points) == 0 {
		b.WriteString("Nothing to plot.\n\n")
		return
	}
	fmt.Fprintf(b, "| State | %s | %s |\n", plot.AxisTitle(r.Axes.X), plot.AxisTitle(r.Axes.Y))
	b.WriteString("|---|---:|---:|\n")
	for _, p := range r.Points {
		fmt.Fprintf(b, "| %s | %s | %s |\n", p.Label, plot.FormatValue(p.X), plot.FormatValue(p.Y))
	}
	b.WriteString("\n")
}

// PresetMarkdown describes a preset and the query it opens.
func PresetMarkdown(p domain.Preset) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Description)
	}
	fmt.Fprintf(&b, "**Fluid:** %s · **Units:** %s · **Chart:** %s\n\n", p.Settings.Fluid, domain.UnitLabel(p.Settings.Units), p.View.PlotID)
	if len(p.States) > 0 {
		b.WriteString("| State | Input 1 | Input 2 |\n")
		b.WriteString("|---|---|---|\n")
		for _, s := range p.States {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", s.Label, inputLabel(s.Property1, s.Value1), inputLabel(s.Property2, s.Value2))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "`?%s`\n", workspace.PresetQuery(p))
	return b.String()
}

func inputLabel(property, value string) string {
	label := property + " = " + value
	if p, ok := domain.LookupProperty(property); ok && p.Unit != "" {
		label += " " + p.Unit
	}
	return label
}
