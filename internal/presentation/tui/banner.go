package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the VirtualIDE banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()
	// Using a subtle gradient-like color scheme (Indigo/Violet)
	lines := []struct {
		text  string
		color string
	}{
		{` __   ___     _             _   ___ ___  ___ `, "#818cf8"},
		{` \ \ / (_)_ _| |_ _  _ __ _| | |_ _|   \| __|`, "#a78bfa"},
		{`  \ V /| | '_|  _| || / _' | |  | || |) | _| `, "#c084fc"},
		{`   \_/ |_|_|  \__|\_,_\__,_|_| |___|___/|___|`, "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(p.Color(l.color)))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, out.String("  v"+v).Faint())
	}
	fmt.Fprintln(w)
}
