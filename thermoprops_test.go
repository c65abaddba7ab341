package thermoprops_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/thermoprops"
	"github.com/aretw0/thermoprops/pkg/domain"
)

func TestCompute(t *testing.T) {
	cs, err := thermoprops.Compute(context.Background(), "Nitrogen",
		domain.Candidate{Property1: "T", Value1: "300,0", Property2: "P", Value2: "101325"})
	require.NoError(t, err)
	assert.False(t, cs.Failed())
	assert.Equal(t, "300.0", cs.Definition.Value1)
	assert.NotEmpty(t, cs.Results)
}

func TestCompute_FailuresCarryErrorMarker(t *testing.T) {
	tests := []struct {
		name  string
		fluid string
		cand  domain.Candidate
		err   error
		msg   string
	}{
		{
			name:  "not numeric",
			fluid: "Nitrogen",
			cand:  domain.Candidate{Property1: "T", Value1: "abc", Property2: "P", Value2: "101325"},
			err:   domain.ErrInvalidNumber,
			msg:   domain.MsgValuesNumeric,
		},
		{
			name:  "no fluid",
			cand:  domain.Candidate{Property1: "T", Value1: "300", Property2: "P", Value2: "101325"},
			err:   domain.ErrFluidRequired,
			msg:   domain.MsgSelectFluid,
		},
		{
			name:  "rejected by engine",
			fluid: "Nitrogen",
			cand:  domain.Candidate{Property1: "T", Value1: "-5", Property2: "P", Value2: "101325"},
			err:   domain.ErrRejectedInput,
			msg:   domain.MsgRejected,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, err := thermoprops.Compute(context.Background(), tt.fluid, tt.cand)
			require.ErrorIs(t, err, tt.err)
			assert.True(t, cs.Failed())
			assert.Equal(t, tt.msg, cs.Error)
			assert.Empty(t, cs.Results)
			assert.Equal(t, tt.cand.Property1, cs.Definition.Property1)
		})
	}
}
