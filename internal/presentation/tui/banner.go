package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the thermoprops banner to w, colored when w supports it.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct{ text, color string }{
		{" _   _                                                      ", "#fde047"},
		{"| |_| |__   ___ _ __ _ __ ___   ___  _ __  _ __ ___  _ __  ___", "#fbbf24"},
		{"| __| '_ \\ / _ \\ '__| '_ ` _ \\ / _ \\| '_ \\| '__/ _ \\| '_ \\/ __|", "#fb923c"},
		{"| |_| | | |  __/ |  | | | | | | (_) | |_) | | | (_) | |_) \\__ \\", "#f97316"},
		{" \\__|_| |_|\\___|_|  |_| |_| |_|\\___/| .__/|_|  \\___/| .__/|___/", "#ef4444"},
		{"                                    |_|             |_|        ", "#dc2626"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
