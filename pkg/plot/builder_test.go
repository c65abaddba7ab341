package plot

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/thermoprops/pkg/adapters/idealgas"
	"github.com/aretw0/thermoprops/pkg/domain"
)

type offlineEngine struct{ *idealgas.Engine }

func (offlineEngine) Ready() bool { return false }

func TestDescribePlots_Catalogue(t *testing.T) {
	b := NewBuilder(idealgas.New())
	cat, err := b.DescribePlots(context.Background(), "Nitrogen")
	require.NoError(t, err)

	assert.Equal(t, "Nitrogen", cat.Fluid)
	require.Len(t, cat.Plots, 4)

	ph, ok := cat.Find("ph")
	require.True(t, ok)
	assert.Equal(t, "H", ph.XAxis.Property)
	assert.Equal(t, domain.ScaleLinear, ph.XAxis.Scale)
	assert.Equal(t, "P", ph.YAxis.Property)
	assert.Equal(t, domain.ScaleLog, ph.YAxis.Scale)
	assert.Equal(t, domain.Range{Min: 1e3, Max: 1e8}, ph.YAxis.Range)
	assert.Equal(t, "P (Pa)", ph.YAxis.Title)

	var params []int
	for _, o := range ph.IsolineOptions {
		params = append(params, o.Parameter)
	}
	assert.Equal(t, []int{domain.ParamT, domain.ParamS, domain.ParamD}, params)
	assert.Equal(t, domain.AxisMapping{X: "H", Y: "P"}, ph.Axes())

	ts, ok := cat.Find("ts")
	require.True(t, ok)
	assert.Equal(t, domain.Range{Min: 20, Max: 2000}, ts.YAxis.Range)
}

func TestDescribePlots_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewBuilder(idealgas.New()).DescribePlots(ctx, "")
	assert.ErrorIs(t, err, domain.ErrFluidRequired)

	_, err = NewBuilder(idealgas.New()).DescribePlots(ctx, "Kryptonite")
	assert.ErrorIs(t, err, domain.ErrUnknownFluid)

	_, err = NewBuilder(offlineEngine{idealgas.New()}).DescribePlots(ctx, "Nitrogen")
	assert.ErrorIs(t, err, domain.ErrEngineUnavailable)

	_, err = NewBuilder(nil).DescribePlots(ctx, "Nitrogen")
	assert.ErrorIs(t, err, domain.ErrEngineUnavailable)
}

func TestBuildPlot_TemperatureIsolinesOnPH(t *testing.T) {
	b := NewBuilder(idealgas.New())
	data, err := b.BuildPlot(context.Background(), domain.PlotRequest{
		Fluid:  "Nitrogen",
		PlotID: "ph",
		Isolines: []domain.IsolineRequest{
			{Parameter: domain.ParamT, Values: []float64{300, 600}, Points: 10},
		},
	})
	require.NoError(t, err)
	require.Len(t, data.Isolines, 2)
	assert.Equal(t, "ph", data.PlotID)
	assert.Len(t, data.AvailableIsolines, 3)

	for _, line := range data.Isolines {
		assert.Equal(t, domain.ParamT, line.Parameter)
		require.Len(t, line.X, 10)
		require.Len(t, line.Y, 10)
		assert.InDelta(t, 1e3, line.Y[0], 1e-6)
		assert.InDelta(t, 1e8, line.Y[9], 1e-3)
		// Ideal-gas enthalpy depends on temperature only.
		for _, x := range line.X {
			assert.InDelta(t, line.X[0], x, 1e-6)
		}
		assert.True(t, strings.HasPrefix(line.Label, "T "), line.Label)
		assert.True(t, strings.HasSuffix(line.Label, " K"), line.Label)
	}
	assert.Less(t, data.Isolines[0].X[0], data.Isolines[1].X[0])
}

func TestBuildPlot_FallsBackToXSweep(t *testing.T) {
	b := NewBuilder(idealgas.New())
	data, err := b.BuildPlot(context.Background(), domain.PlotRequest{
		Fluid:  "Nitrogen",
		PlotID: "ts",
		Isolines: []domain.IsolineRequest{
			{Parameter: domain.ParamH, Values: []float64{0}, Points: 40},
		},
	})
	require.NoError(t, err)
	require.Len(t, data.Isolines, 1)

	line := data.Isolines[0]
	require.NotEmpty(t, line.X)
	for _, y := range line.Y {
		assert.InDelta(t, idealgas.ReferenceT, y, 1e-6)
	}
}

func TestBuildPlot_DefaultValueCount(t *testing.T) {
	b := NewBuilder(idealgas.New(), WithDefaultPoints(8))
	data, err := b.BuildPlot(context.Background(), domain.PlotRequest{
		Fluid:    "Argon",
		PlotID:   "ph",
		Isolines: []domain.IsolineRequest{{Parameter: domain.ParamT, CustomRange: &domain.Range{Min: 250, Max: 750}}},
	})
	require.NoError(t, err)
	require.Len(t, data.Isolines, DefaultValueCount)
	assert.Equal(t, 250.0, data.Isolines[0].Value)
	assert.Equal(t, 750.0, data.Isolines[DefaultValueCount-1].Value)
	assert.Len(t, data.Isolines[0].X, 8)
}

func TestBuildPlot_ClampsOversizedRequests(t *testing.T) {
	b := NewBuilder(idealgas.New())
	data, err := b.BuildPlot(context.Background(), domain.PlotRequest{
		Fluid:                   "Nitrogen",
		PlotID:                  "ph",
		DefaultPointsPerIsoline: 100_000_000,
		Isolines: []domain.IsolineRequest{{
			Parameter:   domain.ParamT,
			CustomRange: &domain.Range{Min: 250, Max: 750},
			ValueCount:  100_000_000,
			Points:      100_000_000,
		}},
	})
	require.NoError(t, err)
	require.Len(t, data.Isolines, MaxValueCount)
	assert.Len(t, data.Isolines[0].X, MaxPoints)

	values := make([]float64, 2*MaxValueCount)
	for i := range values {
		values[i] = 300 + float64(i)
	}
	data, err = NewBuilder(idealgas.New(), WithDefaultPoints(1_000_000)).BuildPlot(context.Background(), domain.PlotRequest{
		Fluid:    "Nitrogen",
		PlotID:   "ph",
		Isolines: []domain.IsolineRequest{{Parameter: domain.ParamT, Values: values}},
	})
	require.NoError(t, err)
	require.Len(t, data.Isolines, MaxValueCount)
	assert.Len(t, data.Isolines[0].Y, MaxPoints)
}

func TestBuildPlot_NoSaturationForIdealGas(t *testing.T) {
	b := NewBuilder(idealgas.New())
	data, err := b.BuildPlot(context.Background(), domain.PlotRequest{
		Fluid:                   "Nitrogen",
		PlotID:                  "ts",
		IncludeSaturationCurves: true,
	})
	require.NoError(t, err)
	assert.Empty(t, data.Isolines)
}

func TestBuildPlot_Errors(t *testing.T) {
	b := NewBuilder(idealgas.New())
	ctx := context.Background()

	_, err := b.BuildPlot(ctx, domain.PlotRequest{Fluid: "Nitrogen", PlotID: "hs"})
	assert.ErrorIs(t, err, domain.ErrUnknownPlot)

	_, err = b.BuildPlot(ctx, domain.PlotRequest{
		Fluid:    "Nitrogen",
		PlotID:   "ph",
		Isolines: []domain.IsolineRequest{{Parameter: domain.ParamP}},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownProperty)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = b.BuildPlot(cancelled, domain.PlotRequest{
		Fluid:    "Nitrogen",
		PlotID:   "ph",
		Isolines: []domain.IsolineRequest{{Parameter: domain.ParamT}},
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSpacing(t *testing.T) {
	assert.Equal(t, []float64{0, 0.5, 1}, Linspace(0, 1, 3))
	assert.Equal(t, []float64{5}, Linspace(0, 10, 1))
	assert.Nil(t, Linspace(0, 1, 0))

	logs := Logspace(1, 1000, 4)
	require.Len(t, logs, 4)
	assert.InDelta(t, 10, logs[1], 1e-9)
	assert.InDelta(t, 100, logs[2], 1e-9)
	assert.Equal(t, 1000.0, logs[3])

	assert.Equal(t, Linspace(-1, 1, 3), Logspace(-1, 1, 3))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "P (Pa)", AxisTitle("P"))
	assert.Equal(t, "PHASE", AxisTitle("PHASE"))
	assert.Equal(t, "X", AxisTitle("X"))
	assert.Equal(t, "300", FormatValue(300))
	assert.Equal(t, "T 300 K", IsolineLabel(300, "T"))
}
