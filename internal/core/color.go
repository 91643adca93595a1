package core

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a 24-bit RGB color for a screen cell or a rendered entity.
// The zero value means "terminal default".
type Color uint32

const colorSet = 1 << 24

// ColorDefault leaves the foreground untouched.
const ColorDefault Color = 0

// Named colors used by the HUD and overlays.
var (
	ColorWhite  = RGB(0xff, 0xff, 0xff)
	ColorGray   = RGB(0x80, 0x80, 0x80)
	ColorRed    = RGB(0xff, 0x00, 0x40)
	ColorGreen  = RGB(0x00, 0xff, 0x41)
	ColorYellow = RGB(0xff, 0xff, 0x00)
	ColorCyan   = RGB(0x00, 0xff, 0xff)
	ColorPink   = RGB(0xff, 0x14, 0x93)
	ColorOrange = RGB(0xff, 0x8c, 0x42)
)

// RGB builds a color from its components.
func RGB(r, g, b uint8) Color {
	return Color(colorSet | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Hex parses "#rrggbb". Malformed input yields ColorDefault.
func Hex(s string) Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return ColorDefault
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return ColorDefault
	}
	return Color(colorSet | uint32(v))
}

// IsDefault reports whether the color is the terminal default.
func (c Color) IsDefault() bool {
	return c&colorSet == 0
}

// RGBA converts the color for image-based renderers. The default color maps to white.
func (c Color) RGBA() color.RGBA {
	if c.IsDefault() {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return color.RGBA{
		R: uint8(c >> 16), //#nosec G115 -- masked byte extraction
		G: uint8(c >> 8),  //#nosec G115 -- masked byte extraction
		B: uint8(c),       //#nosec G115 -- masked byte extraction
		A: 0xff,
	}
}

// Hex returns the "#rrggbb" form, or "" for the default color.
func (c Color) Hex() string {
	if c.IsDefault() {
		return ""
	}
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// Dim scales the color toward black by f in [0, 1].
func (c Color) Dim(f float64) Color {
	if c.IsDefault() {
		return c
	}
	f = ClampF(f, 0, 1)
	rgba := c.RGBA()
	return RGB(
		uint8(float64(rgba.R)*f), //#nosec G115 -- bounded by f <= 1
		uint8(float64(rgba.G)*f), //#nosec G115 -- bounded by f <= 1
		uint8(float64(rgba.B)*f), //#nosec G115 -- bounded by f <= 1
	)
}
