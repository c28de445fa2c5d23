package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Aura banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text, color string
	}{
		{"     _                    ", "#34d399"},
		{"    / \\  _   _ _ __ __ _ ", "#2dd4bf"},
		{"   / _ \\| | | | '__/ _` |", "#22d3ee"},
		{"  / ___ \\ |_| | | | (_| |", "#38bdf8"},
		{" /_/   \\_\\__,_|_|  \\__,_|", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
