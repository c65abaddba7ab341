package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Render turns markdown into terminal output.
type Render func(string) (string, error)

// NewRenderer returns a function that renders markdown using glamour.
// A width of zero keeps glamour's default word wrap.
func NewRenderer(width int) Render {
	opts := []glamour.TermRendererOption{
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return Plain
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// Plain returns the markdown unchanged.
func Plain(markdown string) (string, error) {
	return markdown, nil
}

// RendererFor styles output for terminals and leaves pipes and files as plain markdown.
func RendererFor(f *os.File) Render {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return Plain
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		width = 0
	}
	return NewRenderer(width)
}
