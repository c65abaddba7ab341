package domain

// Preset is a named, ready-made workspace (e.g. "Nitrogen expansion").
type Preset struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Settings    Settings          `json:"settings"`
	View        ViewConfig        `json:"view"`
	States      []StateDefinition `json:"states"`
}
