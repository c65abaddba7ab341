package codec

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip_SingleState(t *testing.T) {
	states := []domain.StateDefinition{
		{ID: "a", Label: "State 1", Property1: "T", Value1: "300", Property2: "P", Value2: "101325"},
	}

	decoded := Decode(Encode(states))
	assert.Equal(t, states, decoded)
}

func TestRoundTrip_PreservesOrderAndGaps(t *testing.T) {
	states := []domain.StateDefinition{
		{ID: "x", Label: "State 3", Property1: "P", Value1: "1e5", Property2: "H", Value2: "400000"},
		{ID: "y", Label: "State 1", Property1: "T", Value1: "-0.5", Property2: "D", Value2: "1.25"},
	}
	assert.Equal(t, states, Decode(Encode(states)))
}

func TestDecode_Robustness(t *testing.T) {
	for _, token := range []string{"", "   ", "not-valid-token", "%%%", base64.StdEncoding.EncodeToString([]byte(`{"id":"a"}`))} {
		t.Run(token, func(t *testing.T) {
			got := Decode(token)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestDecode_FiltersInvalidElements(t *testing.T) {
	payload := `[
		{"id":"ok","label":"State 1","property1":"T","value1":"300","property2":"P","value2":"101325","color":"red"},
		{"id":"missing-value","label":"State 2","property1":"T","value1":"300","property2":"P"},
		{"id":7,"label":"State 3","property1":"T","value1":"300","property2":"P","value2":"1"},
		"garbage",
		null
	]`
	token := base64.StdEncoding.EncodeToString([]byte(payload))

	var failures []*domain.FailureEvent
	c := New(WithHooks(domain.WorkspaceHooks{
		OnDecodeFailure: func(_ context.Context, e *domain.FailureEvent) { failures = append(failures, e) },
	}))

	got := c.Decode(context.Background(), token)
	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].ID)
	assert.Equal(t, "101325", got[0].Value2)

	require.Len(t, failures, 1)
	assert.Equal(t, "element", failures[0].Kind)
}

func TestDecode_ToleratesUnescapedPlusAndURLAlphabet(t *testing.T) {
	states := []domain.StateDefinition{
		{ID: "??>", Label: "State 1", Property1: "T", Value1: "300", Property2: "P", Value2: "101325"},
	}
	token := Encode(states)

	// A '+' decoded from a form value becomes a space.
	spaced := []rune(token)
	for i, r := range spaced {
		if r == '+' {
			spaced[i] = ' '
		}
	}
	assert.Equal(t, states, Decode(string(spaced)))

	raw, err := base64.StdEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Equal(t, states, Decode(base64.RawURLEncoding.EncodeToString(raw)))
}

func TestDecode_NonArrayReportsFailure(t *testing.T) {
	var kinds []string
	c := New(WithHooks(domain.WorkspaceHooks{
		OnDecodeFailure: func(_ context.Context, e *domain.FailureEvent) { kinds = append(kinds, e.Kind) },
	}))

	assert.Empty(t, c.Decode(context.Background(), base64.StdEncoding.EncodeToString([]byte(`{"a":1}`))))
	assert.Empty(t, c.Decode(context.Background(), base64.StdEncoding.EncodeToString([]byte(`[{`))))
	assert.Equal(t, []string{"shape", "json"}, kinds)
}

func TestEncode_EmptyIsArray(t *testing.T) {
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("[]")), Encode(nil))
}

func genState() gopter.Gen {
	return gopter.CombineGens(
		gen.Identifier(),
		gen.IntRange(1, 99),
		gen.OneConstOf("T", "P", "D", "H", "S", "U", "Q"),
		gen.Float64Range(-1e6, 1e6),
		gen.OneConstOf("T", "P", "D", "H", "S", "U", "Q"),
		gen.AlphaString(),
	).Map(func(v []interface{}) domain.StateDefinition {
		return domain.StateDefinition{
			ID:        v[0].(string),
			Label:     domain.StateLabel(v[1].(int)),
			Property1: v[2].(string),
			Value1:    formatFloat(v[3].(float64)),
			Property2: v[4].(string),
			Value2:    v[5].(string),
		}
	})
}

func TestRoundTrip_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("decode(encode(S)) == S", prop.ForAll(
		func(states []domain.StateDefinition) bool {
			return domain.StatesEqual(states, Decode(Encode(states)))
		},
		gen.SliceOf(genState()),
	))

	properties.Property("swapping two distinct elements breaks equality", prop.ForAll(
		func(states []domain.StateDefinition) bool {
			if len(states) < 2 || states[0] == states[1] {
				return true
			}
			swapped := domain.CloneStates(states)
			swapped[0], swapped[1] = swapped[1], swapped[0]
			return !domain.StatesEqual(Decode(Encode(states)), swapped)
		},
		gen.SliceOf(genState()),
	))

	properties.TestingRun(t)
}
