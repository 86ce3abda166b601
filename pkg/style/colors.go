package style

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/pitwall/f1insight/pkg/model"
)

//nolint:gochecknoglobals // lookup tables
var (
	compoundColors = map[model.Compound]color.RGBA{
		model.CompoundSoft:         {R: 0xFF, A: 0xFF},                   // red
		model.CompoundMedium:       {R: 0xFF, G: 0xFF, A: 0xFF},          // yellow
		model.CompoundHard:         {R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, // white
		model.CompoundIntermediate: {G: 0x80, A: 0xFF},                   // green
		model.CompoundWet:          {B: 0xFF, A: 0xFF},                   // blue
	}
	unknownCompoundColor = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF} // gray

	// used when a driver has no team color
	fallbackPalette = []color.RGBA{
		{R: 0x36, G: 0x71, B: 0xC6, A: 0xFF},
		{R: 0x27, G: 0xF4, B: 0xD2, A: 0xFF},
		{R: 0xFF, G: 0x87, A: 0xFF},
	}
)

// CompoundColor returns the chart color of a tyre compound. Compounds
// without an entry in the lookup table get gray.
func CompoundColor(c model.Compound) color.Color {
	if col, ok := compoundColors[c]; ok {
		return col
	}
	return unknownCompoundColor
}

// ParseHexColor parses an RGB hex string with or without leading '#'.
func ParseHexColor(arg string) (color.RGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(arg), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", arg)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", arg, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}

// TeamColor resolves a driver's team color. Missing or malformed
// values fall back to a fixed palette cycled by the driver's index in
// the comparison. The second return value reports the fallback so the
// caller can log it.
func TeamColor(teamColor string, idx int) (color.Color, bool) {
	if teamColor != "" {
		if col, err := ParseHexColor(teamColor); err == nil {
			return col, false
		}
	}
	if idx < 0 {
		idx = -idx
	}
	return fallbackPalette[idx%len(fallbackPalette)], true
}
