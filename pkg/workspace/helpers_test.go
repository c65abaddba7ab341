package workspace

import (
	"context"
	"fmt"
	"slices"

	"github.com/aretw0/thermoprops/pkg/domain"
)

type fakeEngine struct {
	ready  bool
	fluids []string
	values map[string]float64
	reject func(in1 string, v1 float64, in2 string, v2 float64) bool
	calls  int
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		ready:  true,
		fluids: []string{"Argon", "Nitrogen"},
		values: map[string]float64{"H": 500000, "S": 6800, "D": 1.13},
	}
}

func (f *fakeEngine) Ready() bool { return f.ready }

func (f *fakeEngine) ListFluids(context.Context) ([]string, error) {
	return f.fluids, nil
}

func (f *fakeEngine) FluidMetadata(_ context.Context, fluid string) (domain.FluidMetadata, error) {
	if !slices.Contains(f.fluids, fluid) {
		return domain.FluidMetadata{}, fmt.Errorf("%w: %s", domain.ErrUnknownFluid, fluid)
	}
	return domain.FluidMetadata{Name: fluid, Aliases: []string{fluid[:1]}}, nil
}

func (f *fakeEngine) ComputeProperty(_ context.Context, target, in1 string, v1 float64, in2 string, v2 float64, _ string) (float64, error) {
	f.calls++
	if !f.ready {
		return 0, domain.ErrEngineUnavailable
	}
	if f.reject != nil && f.reject(in1, v1, in2, v2) {
		return 0, domain.ErrRejectedInput
	}
	return f.values[target], nil
}

type recordingWriter struct {
	queries []string
	err     error
}

func (w *recordingWriter) Write(_ context.Context, q string) error {
	if w.err != nil {
		return w.err
	}
	w.queries = append(w.queries, q)
	return nil
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("s%d", n)
	}
}
