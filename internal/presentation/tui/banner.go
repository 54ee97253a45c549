package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner with the running version.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Subtle gradient from indigo to rose.
	lines := []termenv.Style{
		termenv.String("                         __ _ _            ").Foreground(p.Color("#818cf8")),
		termenv.String("  _ __  _ __ ___   ___  / _| (_)_ __   ___ ").Foreground(p.Color("#a78bfa")),
		termenv.String(" | '_ \\| '__/ _ \\ / _ \\| |_| | | '_ \\ / _ \\").Foreground(p.Color("#c084fc")),
		termenv.String(" | |_) | | | (_) | (_) |  _| | | | | |  __/").Foreground(p.Color("#e879f9")),
		termenv.String(" | .__/|_|  \\___/ \\___/|_| |_|_|_| |_|\\___|").Foreground(p.Color("#f472b6")),
		termenv.String(" |_|").Foreground(p.Color("#fb7185")),
	}

	fmt.Println()
	for _, l := range lines {
		fmt.Println(l)
	}
	fmt.Printf("  v%s\n\n", version)
}
