package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatesEqual(t *testing.T) {
	s := sampleStates()

	assert.True(t, StatesEqual(s, s))
	assert.True(t, StatesEqual(nil, []StateDefinition{}))
	assert.True(t, StatesEqual(s, CloneStates(s)))

	swapped := CloneStates(s)
	swapped[0], swapped[1] = swapped[1], swapped[0]
	assert.False(t, StatesEqual(s, swapped), "reordering must break equality")

	assert.False(t, StatesEqual(s, s[:2]), "length mismatch")

	mutators := map[string]func(*StateDefinition){
		"id":        func(d *StateDefinition) { d.ID = "z" },
		"label":     func(d *StateDefinition) { d.Label = "State 9" },
		"property1": func(d *StateDefinition) { d.Property1 = "S" },
		"value1":    func(d *StateDefinition) { d.Value1 = "301" },
		"property2": func(d *StateDefinition) { d.Property2 = "U" },
		"value2":    func(d *StateDefinition) { d.Value2 = "1" },
	}
	for field, mutate := range mutators {
		t.Run(field, func(t *testing.T) {
			changed := CloneStates(s)
			mutate(&changed[1])
			assert.False(t, StatesEqual(s, changed))
		})
	}
}

func TestCloneStates_DoesNotAlias(t *testing.T) {
	s := sampleStates()
	c := CloneStates(s)
	c[0].Label = "changed"
	assert.Equal(t, "State 1", s[0].Label)
	assert.Nil(t, CloneStates(nil))
}
