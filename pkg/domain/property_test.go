package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputProperties(t *testing.T) {
	names := []string{}
	for _, p := range InputProperties() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"T", "P", "D", "H", "S", "U", "Q"}, names)
}

func TestCheckInputPair(t *testing.T) {
	assert.NoError(t, CheckInputPair("T", "P"))
	assert.ErrorIs(t, CheckInputPair("T", "T"), ErrInvalidCandidate)
	assert.ErrorIs(t, CheckInputPair("CPMASS", "P"), ErrUnknownProperty)
	assert.ErrorIs(t, CheckInputPair("T", "nope"), ErrUnknownProperty)
}

func TestOutputTargets_SkipsInputsAndTrivial(t *testing.T) {
	targets := OutputTargets("T", "P")
	for _, p := range targets {
		assert.NotEqual(t, "T", p.Name)
		assert.NotEqual(t, "P", p.Name)
		assert.False(t, p.Trivial, p.Name)
	}
	assert.Len(t, targets, 9)
}

func TestPropertyByCode(t *testing.T) {
	p, ok := PropertyByCode(ParamT)
	assert.True(t, ok)
	assert.Equal(t, "T", p.Name)

	_, ok = PropertyByCode(0)
	assert.False(t, ok)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, MsgValuesNumeric, UserMessage(ErrInvalidNumber))
	assert.Equal(t, MsgRejected, UserMessage(errors.Join(errors.New("x"), ErrRejectedInput)))
	assert.Equal(t, MsgSelectFluid, UserMessage(ErrFluidRequired))
	assert.Equal(t, "", UserMessage(nil))
}

func TestUnitLabel(t *testing.T) {
	assert.Equal(t, "SI", UnitLabel("si"))
	assert.Equal(t, "Imperial", UnitLabel("imperial"))
	assert.Equal(t, "CGS", UnitLabel("cgs"))
}
