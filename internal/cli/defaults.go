package cli

import (
	"net/url"
	"strings"

	"github.com/aretw0/thermoprops/pkg/query"
)

// ApplyDefaults fills fluid and units of raw from the defaults section when the
// query does not name them. A malformed query is returned unchanged.
func (a *App) ApplyDefaults(raw string) string {
	raw = strings.TrimPrefix(raw, "?")
	values, err := url.ParseQuery(raw)
	if err != nil {
		return raw
	}
	if values.Get(query.KeyFluid) == "" && a.Config.Defaults.Fluid != "" {
		values.Set(query.KeyFluid, a.Config.Defaults.Fluid)
	}
	if values.Get(query.KeyUnits) == "" && a.Config.Defaults.Units != "" {
		values.Set(query.KeyUnits, a.Config.Defaults.Units)
	}
	return query.Encode(values)
}
