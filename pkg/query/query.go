// Package query maps a workspace to and from its persisted URL query representation.
//
// Layout (all optional):
//
//	fluid    selected fluid name           (none: the settings screen must be shown)
//	units    unit-system identifier        (si)
//	states   state codec token             (absent: empty collection)
//	view     graph | table                 (graph)
//	plot     chart type identifier         (ph)
//	isoline  numeric isoline parameter     (19, temperature)
package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/aretw0/thermoprops/pkg/domain"
)

// Parameter names.
const (
	KeyFluid   = "fluid"
	KeyUnits   = "units"
	KeyStates  = "states"
	KeyView    = "view"
	KeyPlot    = "plot"
	KeyIsoline = "isoline"
)

// Params is the parsed query with defaults applied.
type Params struct {
	Settings domain.Settings
	View     domain.ViewConfig
	// States is the raw codec token; empty when absent.
	States string
	// Values keeps the full query, unknown parameters included.
	Values url.Values
}

// Parse reads a raw query string (with or without leading '?').
// Malformed pairs are skipped; the returned error reports the first one.
func Parse(raw string) (Params, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if values == nil {
		values = url.Values{}
	}
	return FromValues(values), err
}

// FromValues applies defaults to already parsed values.
func FromValues(values url.Values) Params {
	p := Params{
		Settings: domain.Settings{
			Fluid: values.Get(KeyFluid),
			Units: values.Get(KeyUnits),
		},
		View:   ParseView(values),
		States: values.Get(KeyStates),
		Values: values,
	}
	if p.Settings.Units == "" {
		p.Settings.Units = domain.DefaultUnits
	}
	return p
}

// ParseView reads the view configuration fields with their defaults.
func ParseView(values url.Values) domain.ViewConfig {
	view := domain.DefaultViewConfig()

	if mode := domain.ViewMode(values.Get(KeyView)); mode.Valid() {
		view.Mode = mode
	}
	if plot := values.Get(KeyPlot); plot != "" {
		view.PlotID = plot
	}
	if n, ok := parseIsoline(values.Get(KeyIsoline)); ok {
		view.IsolineParameter = n
	}
	return view
}

// parseIsoline accepts any whole number, so "19" and "19.0" name the same parameter.
func parseIsoline(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// Build projects memory onto a copy of base. Unknown parameters of base are preserved.
// An empty token removes the states parameter.
func Build(base url.Values, settings domain.Settings, view domain.ViewConfig, token string) url.Values {
	next := clone(base)

	if token != "" {
		next.Set(KeyStates, token)
	} else {
		next.Del(KeyStates)
	}
	next.Set(KeyView, string(view.Mode))
	next.Set(KeyPlot, view.PlotID)
	next.Set(KeyIsoline, strconv.Itoa(view.IsolineParameter))
	next.Set(KeyUnits, settings.Units)
	next.Set(KeyFluid, settings.Fluid)
	return next
}

// SettingsValues builds the query of the settings screen: fluid, units and carried states.
func SettingsValues(base url.Values, settings domain.Settings) url.Values {
	next := clone(base)
	setOrDelete(next, KeyFluid, settings.Fluid)
	setOrDelete(next, KeyUnits, settings.Units)
	return next
}

// BackToSettings drops the chart parameters when leaving the workspace.
func BackToSettings(base url.Values) url.Values {
	next := clone(base)
	next.Del(KeyPlot)
	next.Del(KeyIsoline)
	return next
}

// Encode renders values canonically (sorted keys), so string comparison detects changes.
func Encode(values url.Values) string {
	return values.Encode()
}

func setOrDelete(v url.Values, key, value string) {
	if value == "" {
		v.Del(key)
		return
	}
	v.Set(key, value)
}

func clone(v url.Values) url.Values {
	out := make(url.Values, len(v)+6)
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
