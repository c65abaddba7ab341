package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/aretw0/thermoprops/pkg/domain"
)

// Loader implements ports.PresetLoader using an in-memory map.
type Loader struct {
	presets map[string]domain.Preset
}

// NewLoader creates a Loader serving the given presets.
func NewLoader(presets ...domain.Preset) (*Loader, error) {
	data := make(map[string]domain.Preset, len(presets))
	for _, p := range presets {
		if p.ID == "" {
			return nil, fmt.Errorf("preset missing ID")
		}
		data[p.ID] = p
	}
	return &Loader{presets: data}, nil
}

// NewLoaderFromJSON creates a Loader from raw JSON documents keyed by preset ID.
func NewLoaderFromJSON(raw map[string]string) (*Loader, error) {
	presets := make([]domain.Preset, 0, len(raw))
	for id, doc := range raw {
		var p domain.Preset
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal preset %s: %w", id, err)
		}
		if p.ID == "" {
			p.ID = id
		}
		presets = append(presets, p)
	}
	return NewLoader(presets...)
}

// GetPreset returns a preset by ID.
func (l *Loader) GetPreset(_ context.Context, id string) (domain.Preset, error) {
	p, ok := l.presets[id]
	if !ok {
		return domain.Preset{}, fmt.Errorf("%w: %s", domain.ErrPresetNotFound, id)
	}
	p.States = domain.CloneStates(p.States)
	return p, nil
}

// ListPresets returns all preset IDs, sorted.
func (l *Loader) ListPresets(context.Context) ([]string, error) {
	keys := make([]string, 0, len(l.presets))
	for k := range l.presets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// BuiltinPresets are served when no preset vault is configured.
func BuiltinPresets() []domain.Preset {
	return []domain.Preset{
		{
			ID:          "nitrogen-compression",
			Title:       "Nitrogen compression",
			Description: "Ambient nitrogen compressed to 10 bar.",
			Settings:    domain.Settings{Fluid: "Nitrogen", Units: "si"},
			View:        domain.DefaultViewConfig(),
			States: []domain.StateDefinition{
				{ID: "n2-inlet", Label: "State 1", Property1: "T", Value1: "300", Property2: "P", Value2: "101325"},
				{ID: "n2-outlet", Label: "State 2", Property1: "T", Value1: "580", Property2: "P", Value2: "1000000"},
			},
		},
		{
			ID:          "air-heating",
			Title:       "Isobaric air heating",
			Description: "Air heated at atmospheric pressure, shown on a T-s chart.",
			Settings:    domain.Settings{Fluid: "Air", Units: "si"},
			View:        domain.ViewConfig{PlotID: "ts", IsolineParameter: domain.ParamP, Mode: domain.ViewGraph},
			States: []domain.StateDefinition{
				{ID: "air-cold", Label: "State 1", Property1: "T", Value1: "290", Property2: "P", Value2: "101325"},
				{ID: "air-hot", Label: "State 2", Property1: "T", Value1: "800", Property2: "P", Value2: "101325"},
			},
		},
	}
}
