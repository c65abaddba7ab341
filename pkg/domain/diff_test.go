package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStates() []StateDefinition {
	return []StateDefinition{
		{ID: "a", Label: "State 1", Property1: "T", Value1: "300", Property2: "P", Value2: "101325"},
		{ID: "b", Label: "State 2", Property1: "P", Value1: "200000", Property2: "H", Value2: "450000"},
		{ID: "c", Label: "State 3", Property1: "T", Value1: "350", Property2: "D", Value2: "1.2"},
	}
}

func TestDiff(t *testing.T) {
	states := sampleStates()
	base := Snapshot{
		WorkspaceID: "ws-1",
		Settings:    Settings{Fluid: "Nitrogen", Units: "si"},
		View:        DefaultViewConfig(),
		States:      states[:2],
	}

	tests := []struct {
		name  string
		old   *Snapshot
		new   func() *Snapshot
		check func(t *testing.T, d *WorkspaceDiff)
	}{
		{
			name: "Initial Load (Old is Nil)",
			old:  nil,
			new:  func() *Snapshot { s := base; return &s },
			check: func(t *testing.T, d *WorkspaceDiff) {
				require.NotNil(t, d)
				assert.Equal(t, "Nitrogen", *d.Fluid)
				assert.Equal(t, ViewGraph, *d.View)
				assert.Equal(t, states[:2], d.States.Appended)
			},
		},
		{
			name:  "No Changes",
			old:   &base,
			new:   func() *Snapshot { s := base; s.States = CloneStates(base.States); return &s },
			check: func(t *testing.T, d *WorkspaceDiff) { assert.Nil(t, d) },
		},
		{
			name: "Append",
			old:  &base,
			new:  func() *Snapshot { s := base; s.States = CloneStates(states); return &s },
			check: func(t *testing.T, d *WorkspaceDiff) {
				require.NotNil(t, d)
				assert.Nil(t, d.Fluid)
				assert.Equal(t, []StateDefinition{states[2]}, d.States.Appended)
			},
		},
		{
			name: "Removal",
			old:  &base,
			new:  func() *Snapshot { s := base; s.States = []StateDefinition{states[1]}; return &s },
			check: func(t *testing.T, d *WorkspaceDiff) {
				require.NotNil(t, d)
				assert.Equal(t, []string{"a"}, d.States.Removed)
			},
		},
		{
			name: "Reorder replaces the list",
			old:  &base,
			new:  func() *Snapshot { s := base; s.States = []StateDefinition{states[1], states[0]}; return &s },
			check: func(t *testing.T, d *WorkspaceDiff) {
				require.NotNil(t, d)
				assert.Equal(t, []StateDefinition{states[1], states[0]}, d.States.Replaced)
			},
		},
		{
			name: "View fields only",
			old:  &base,
			new: func() *Snapshot {
				s := base
				s.View = ViewConfig{PlotID: "ts", IsolineParameter: ParamP, Mode: ViewTable}
				return &s
			},
			check: func(t *testing.T, d *WorkspaceDiff) {
				require.NotNil(t, d)
				assert.Equal(t, "ts", *d.Plot)
				assert.Equal(t, ParamP, *d.Isoline)
				assert.Equal(t, ViewTable, *d.View)
				assert.Nil(t, d.States)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Diff(tt.old, tt.new()))
		})
	}
}

func TestDiff_JSONOmitsUnchangedFields(t *testing.T) {
	old := &Snapshot{WorkspaceID: "ws", Settings: Settings{Fluid: "Argon", Units: "si"}, View: DefaultViewConfig()}
	updated := *old
	updated.View.Mode = ViewTable

	d := Diff(old, &updated)
	require.NotNil(t, d)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.Contains(out, `"view":"table"`), out)
	assert.False(t, strings.Contains(out, "fluid"), out)
	assert.False(t, strings.Contains(out, "states"), out)
}
