package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/thermoprops/internal/presentation/tui"
)

// Printer writes command results either as rendered markdown or as JSON.
type Printer struct {
	W      io.Writer
	JSON   bool
	Render tui.Render
}

// Print writes v as indented JSON in JSON mode, otherwise the rendered markdown.
func (p Printer) Print(markdown string, v any) error {
	if p.JSON {
		enc := json.NewEncoder(p.W)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	render := p.Render
	if render == nil {
		render = tui.Plain
	}
	out, err := render(markdown)
	if err != nil {
		return fmt.Errorf("render output: %w", err)
	}
	_, err = io.WriteString(p.W, out)
	return err
}
