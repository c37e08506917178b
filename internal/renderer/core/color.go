// Package core holds the value types shared by the renderer and its
// backends: colors, styles and screen cells.
package core

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a terminal color: true color, a palette index, or the
// terminal's default.
type Color struct {
	R, G, B uint8
	// Indexed colors keep the palette index in R.
	Indexed bool
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromIndex creates an indexed palette color.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// ColorFromHex parses "#rgb" or "#rrggbb". The leading '#' is optional.
func ColorFromHex(hex string) (Color, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q", hex)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// IsDefault returns true if this is the terminal's default color.
func (c Color) IsDefault() bool {
	return c.Default
}

// String returns a string representation of the color.
func (c Color) String() string {
	switch {
	case c.Default:
		return "default"
	case c.Indexed:
		return fmt.Sprintf("idx(%d)", c.R)
	default:
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
}

// Blend mixes c toward other in Lab space. Indexed and default colors
// cannot be mixed and snap to whichever side amount is closer to.
func (c Color) Blend(other Color, amount float64) Color {
	if c.Indexed || other.Indexed || c.Default || other.Default {
		if amount < 0.5 {
			return c
		}
		return other
	}
	a := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	b := colorful.Color{R: float64(other.R) / 255, G: float64(other.G) / 255, B: float64(other.B) / 255}
	r, g, bl := a.BlendLab(b, amount).Clamped().RGB255()
	return Color{R: r, G: g, B: bl}
}
