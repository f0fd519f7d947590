package ui

import (
	"os"

	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Terminals that advertise no color support get plain output.
func init() {
	if termenv.EnvColorProfile() == termenv.Ascii {
		color.NoColor = true
	}
}

// Color definitions for consistent styling across the UI.
var (
	// Available slots: green
	colorAvailable = color.New(color.FgGreen)

	// Blocked/disabled slots: red
	colorBlocked = color.New(color.FgRed)

	// Occupied slots: bold cyan
	colorOccupied = color.New(color.FgCyan, color.Bold)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Prices and stats: yellow
	colorPrice = color.New(color.FgYellow)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatAvailable formats text for open slots.
func formatAvailable(s string) string {
	return colorAvailable.Sprint(s)
}

// formatBlocked formats text for disabled or spillover-blocked slots.
func formatBlocked(s string) string {
	return colorBlocked.Sprint(s)
}

// formatOccupied formats text for booked slots.
func formatOccupied(s string) string {
	return colorOccupied.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatPrice formats prices and counters.
func formatPrice(s string) string {
	return colorPrice.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
