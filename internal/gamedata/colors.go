package gamedata

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}

	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}

// colorOr parses hex, falling back to def when it is malformed.
func colorOr(hex string, def tcell.Color) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		return def
	}
	return color
}

// glyphRune returns the first rune of s, or fallback when s is empty.
func glyphRune(s string, fallback rune) rune {
	for _, r := range s {
		return r
	}
	return fallback
}
