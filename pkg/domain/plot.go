package domain

// AxisScale selects a linear or logarithmic axis.
type AxisScale int

const (
	ScaleLinear AxisScale = 0
	ScaleLog    AxisScale = 1
)

// String returns the plotting library name of the scale.
func (s AxisScale) String() string {
	if s == ScaleLog {
		return "log"
	}
	return "linear"
}

// Range is a closed numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PlotAxis describes one chart axis.
type PlotAxis struct {
	Parameter int       `json:"parameter"`
	Property  string    `json:"property"`
	Scale     AxisScale `json:"scale"`
	Range     Range     `json:"range"`
	Title     string    `json:"title,omitempty"`
}

// IsolineOption is an isoline family available on a chart.
type IsolineOption struct {
	Parameter int    `json:"parameter"`
	Property  string `json:"property"`
	Range     Range  `json:"range"`
}

// PlotDefinition is one chart of the catalogue.
type PlotDefinition struct {
	ID             string          `json:"id"`
	Label          string          `json:"label"`
	XAxis          PlotAxis        `json:"xAxis"`
	YAxis          PlotAxis        `json:"yAxis"`
	IsolineOptions []IsolineOption `json:"isolineOptions"`
}

// Axes returns the property names drawn on the chart.
func (p PlotDefinition) Axes() AxisMapping {
	return AxisMapping{X: p.XAxis.Property, Y: p.YAxis.Property}
}

// PlotCatalogue lists the charts available for a fluid.
type PlotCatalogue struct {
	Fluid string           `json:"fluid"`
	Plots []PlotDefinition `json:"plots"`
}

// Find returns the chart with the given id.
func (c PlotCatalogue) Find(id string) (PlotDefinition, bool) {
	for _, p := range c.Plots {
		if p.ID == id {
			return p, true
		}
	}
	return PlotDefinition{}, false
}

// IsolineRequest asks for one isoline family.
type IsolineRequest struct {
	Parameter   int       `json:"parameter"`
	Values      []float64 `json:"values,omitempty"`
	ValueCount  int       `json:"valueCount,omitempty"`
	Points      int       `json:"points,omitempty"`
	CustomRange *Range    `json:"customRange,omitempty"`
}

// PlotRequest asks the plot engine for isoline curves.
type PlotRequest struct {
	Fluid                   string           `json:"fluid"`
	PlotID                  string           `json:"plotId"`
	Isolines                []IsolineRequest `json:"isolines"`
	IncludeSaturationCurves bool             `json:"includeSaturationCurves,omitempty"`
	DefaultPointsPerIsoline int              `json:"defaultPointsPerIsoline,omitempty"`
}

// Isoline is one generated curve of constant Parameter.
type Isoline struct {
	Parameter int       `json:"parameter"`
	Value     float64   `json:"value"`
	Label     string    `json:"label"`
	X         []float64 `json:"x"`
	Y         []float64 `json:"y"`
}

// PlotData is the chart-ready output of the plot engine.
type PlotData struct {
	Fluid             string          `json:"fluid"`
	PlotID            string          `json:"plotId"`
	XAxis             PlotAxis        `json:"xAxis"`
	YAxis             PlotAxis        `json:"yAxis"`
	Isolines          []Isoline       `json:"isolines"`
	AvailableIsolines []IsolineOption `json:"availableIsolines"`
}

// DefaultAxes maps well-known chart ids to their axis properties.
var DefaultAxes = map[string]AxisMapping{
	"ph": {X: "H", Y: "P"},
	"ts": {X: "S", Y: "T"},
	"pt": {X: "T", Y: "P"},
	"rh": {X: "H", Y: "D"},
}
