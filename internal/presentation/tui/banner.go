package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the tourguide banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	// Indigo to rose, one shade per line
	shades := []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6"}
	lines := []string{
		"  _                                _     _      ",
		" | |_ ___  _   _ _ __ __ _ _   _(_) __| | ___ ",
		" | __/ _ \\| | | | '__/ _` | | | | |/ _` |/ _ \\",
		" | || (_) | |_| | | | (_| | |_| | | (_| |  __/",
		"  \\__\\___/ \\__,_|_|  \\__, |\\__,_|_|\\__,_|\\___|",
	}

	fmt.Fprintln(w)
	for i, line := range lines {
		fmt.Fprintln(w, out.String(line).Foreground(out.Color(shades[i%len(shades)])))
	}
	fmt.Fprintln(w, out.String("                     |___/").Foreground(out.Color("#fb7185")))
	fmt.Fprintln(w)
}
