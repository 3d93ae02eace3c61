package main

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/S0urC10ud/audiveris"
)

// voiceStyle returns a lipgloss style painting text with the palette color
// of the given voice ID.
func voiceStyle(id int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hexOf(audiveris.ColorOf(id))))
}

// hexOf renders an RGBA palette entry as a #rrggbb terminal color.
func hexOf(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// outputJSON writes v as indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// voiceCell renders one voice ID, colored in text mode.
func voiceCell(id int) string {
	return voiceStyle(id).Render(fmt.Sprintf("V%d", id))
}
