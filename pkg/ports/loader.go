package ports

import (
	"context"

	"github.com/aretw0/thermoprops/pkg/domain"
)

// PresetLoader retrieves preset workspaces.
// This allows presets to live in a Loam vault, in memory, or elsewhere.
type PresetLoader interface {
	// GetPreset returns a preset by ID, or domain.ErrPresetNotFound.
	GetPreset(ctx context.Context, id string) (domain.Preset, error)

	// ListPresets returns the IDs of all available presets.
	ListPresets(ctx context.Context) ([]string, error)
}
