package workspace

import (
	"github.com/aretw0/thermoprops/pkg/codec"
	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/aretw0/thermoprops/pkg/query"
)

// PresetQuery expands a preset into the workspace query it stands for.
func PresetQuery(p domain.Preset) string {
	view := p.View
	defaults := domain.DefaultViewConfig()
	if !view.Mode.Valid() {
		view.Mode = defaults.Mode
	}
	if view.PlotID == "" {
		view.PlotID = defaults.PlotID
	}
	if view.IsolineParameter == 0 {
		view.IsolineParameter = defaults.IsolineParameter
	}
	token := ""
	if len(p.States) > 0 {
		token = codec.Encode(p.States)
	}
	return query.Encode(query.Build(nil, withDefaultUnits(p.Settings), view, token))
}
