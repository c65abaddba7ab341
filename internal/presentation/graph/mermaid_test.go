package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/thermoprops/internal/presentation/graph"
	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/aretw0/thermoprops/pkg/workspace"
)

func state(id, label, v1, v2 string) domain.StateDefinition {
	return domain.StateDefinition{ID: id, Label: label, Property1: "T", Value1: v1, Property2: "P", Value2: v2}
}

func TestGenerateMermaid(t *testing.T) {
	a := state("a-1", "State 1", "300", "101325")
	b := state("b.2", "State 2", "580", "1000000")
	c := state("c", "State 3", "1", "1")

	r := workspace.Rendering{
		Computed: []domain.ComputedState{
			{Definition: a},
			{Definition: b},
			{Definition: c, Error: "rejected"},
		},
		Axes: &domain.AxisMapping{X: "H", Y: "P"},
		Points: []domain.PlotPoint{
			{ID: "a-1", X: 1000, Y: 101325},
			{ID: "b.2", X: 500, Y: 1000000},
		},
	}

	got := graph.GenerateMermaid(r)

	for _, want := range []string{
		"graph LR\n",
		`s_a_1["State 1<br/>T = 300<br/>P = 101325"]`,
		`s_c{{"State 3<br/>T = 1<br/>P = 1"}}`,
		`s_a_1 -- "ΔH -500 J/kg · ΔP +898,700 Pa" --> s_b_2`,
		"s_b_2 -.-> s_c",
		"class s_c failed;",
		"class s_c current;",
	} {
		assert.Contains(t, got, want)
	}
}

func TestGenerateMermaid_NoAxes(t *testing.T) {
	r := workspace.Rendering{
		Computed: []domain.ComputedState{
			{Definition: state("a", "State 1", "300", "101325")},
			{Definition: state("b", "State 2", "400", "101325")},
		},
	}
	got := graph.GenerateMermaid(r)
	assert.Contains(t, got, "s_a --> s_b")
	assert.NotContains(t, got, "failed;")
}

func TestGenerateMermaid_Empty(t *testing.T) {
	got := graph.GenerateMermaid(workspace.Rendering{})
	assert.Equal(t, "graph LR\n", got)
	assert.False(t, strings.Contains(got, "classDef"))
}

func TestGenerateMermaid_EscapesQuotes(t *testing.T) {
	r := workspace.Rendering{
		Computed: []domain.ComputedState{
			{Definition: domain.StateDefinition{ID: "x", Label: `Say "hi"`, Property1: "T", Value1: "1", Property2: "P", Value2: "2"}},
		},
	}
	assert.Contains(t, graph.GenerateMermaid(r), `s_x["Say 'hi'<br/>T = 1<br/>P = 2"]`)
}
