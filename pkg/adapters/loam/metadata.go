package loam

// PresetMetadata is the frontmatter of a preset document.
//
//	---
//	title: Nitrogen compression
//	fluid: Nitrogen
//	plot: ph
//	isoline: 19
//	states:
//	  - property1: T
//	    value1: 300
//	    property2: P
//	    value2: 101325
//	---
//	Free text description.
type PresetMetadata struct {
	ID      string        `json:"id" mapstructure:"id"`
	Title   string        `json:"title" mapstructure:"title"`
	Fluid   string        `json:"fluid" mapstructure:"fluid"`
	Units   string        `json:"units" mapstructure:"units"`
	View    string        `json:"view" mapstructure:"view"`
	Plot    string        `json:"plot" mapstructure:"plot"`
	Isoline int           `json:"isoline" mapstructure:"isoline"`
	States  []PresetState `json:"states" mapstructure:"states"`
}

// PresetState is one state of a preset. Values may be written as YAML
// numbers or strings.
type PresetState struct {
	ID        string `json:"id" mapstructure:"id"`
	Label     string `json:"label" mapstructure:"label"`
	Property1 string `json:"property1" mapstructure:"property1"`
	Value1    any    `json:"value1" mapstructure:"value1"`
	Property2 string `json:"property2" mapstructure:"property2"`
	Value2    any    `json:"value2" mapstructure:"value2"`
}
