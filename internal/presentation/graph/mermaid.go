package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/aretw0/thermoprops/pkg/plot"
	"github.com/aretw0/thermoprops/pkg/workspace"
)

// GenerateMermaid draws the tracked states of a workspace as a process path, in
// insertion order. Shapes:
// - Evaluated state: [Rectangle]
// - Failed state: {{Hexagon}}
// Edges between two placed states carry the change of both chart axes.
// Edges touching a failed state are dotted. The last state is highlighted.
func GenerateMermaid(r workspace.Rendering) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	points := make(map[string]domain.PlotPoint, len(r.Points))
	for _, p := range r.Points {
		points[p.ID] = p
	}

	var failed []string
	for i, cs := range r.Computed {
		safeID := sanitizeMermaidID(cs.Definition.ID)

		opener, closer := "[", "]"
		if cs.Failed() {
			opener, closer = "{{", "}}"
			failed = append(failed, safeID)
		}
		label := strings.Join([]string{
			cs.Definition.Label,
			cs.Definition.Property1 + " = " + cs.Definition.Value1,
			cs.Definition.Property2 + " = " + cs.Definition.Value2,
		}, "<br/>")
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escape(label), closer))

		if i == 0 {
			continue
		}
		prev := r.Computed[i-1]
		safePrev := sanitizeMermaidID(prev.Definition.ID)

		arrow := "-->"
		switch {
		case prev.Failed() || cs.Failed():
			arrow = "-.->"
		case r.Axes != nil:
			from, okFrom := points[prev.Definition.ID]
			to, okTo := points[cs.Definition.ID]
			if okFrom && okTo {
				delta := deltaLabel(r.Axes.X, to.X-from.X) + " · " + deltaLabel(r.Axes.Y, to.Y-from.Y)
				arrow = fmt.Sprintf("-- \"%s\" -->", escape(delta))
			}
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", safePrev, arrow, safeID))
	}

	if len(r.Computed) == 0 {
		return sb.String()
	}

	sb.WriteString("\n    %% Overlay Styles\n")
	// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
	sb.WriteString("    classDef failed fill:#ffebee,stroke:#b71c1c,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
	for _, id := range failed {
		sb.WriteString(fmt.Sprintf("    class %s failed;\n", id))
	}
	last := r.Computed[len(r.Computed)-1]
	sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(last.Definition.ID)))
	return sb.String()
}

func deltaLabel(property string, d float64) string {
	sign := ""
	if d > 0 {
		sign = "+"
	}
	label := "Δ" + property + " " + sign + plot.FormatValue(d)
	if p, ok := domain.LookupProperty(property); ok && p.Unit != "" {
		label += " " + p.Unit
	}
	return label
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

// sanitizeMermaidID maps a state id onto the identifier charset of Mermaid.
// The prefix keeps ids that start with a digit valid.
func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return "s_" + s
}
