// Package color parses and formats the system bar colors used by the plugin.
package color

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is stored as ARGB (0xAARRGGBB), the layout native window APIs expect.
type Color uint32

// RGBA8 constructs a Color from red, green, blue, alpha bytes.
func RGBA8(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB constructs an opaque Color from red, green, blue bytes.
func RGB(r, g, b uint8) Color {
	return RGBA8(r, g, b, 0xFF)
}

// Alpha returns the alpha byte.
func (c Color) Alpha() uint8 {
	return uint8(c >> 24)
}

// Hex formats the color as #RRGGBB when opaque and #AARRGGBB otherwise.
func (c Color) Hex() string {
	if c.Alpha() == 0xFF {
		return fmt.Sprintf("#%06X", uint32(c)&0x00FFFFFF)
	}
	return fmt.Sprintf("#%08X", uint32(c))
}

func (c Color) String() string {
	return c.Hex()
}

// Parse accepts #RRGGBB, #AARRGGBB or an SVG 1.1 color name such as "white".
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 && len(hex) != 8 {
			return 0, fmt.Errorf("color %q: want #RRGGBB or #AARRGGBB", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("color %q: %w", s, err)
		}
		if len(hex) == 6 {
			v |= 0xFF000000
		}
		return Color(v), nil
	}

	named, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unknown color %q", s)
	}
	return RGBA8(named.R, named.G, named.B, named.A), nil
}

// MustParse is like Parse but panics on error. It is meant for constants.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// BarColors are the opaque backgrounds painted behind the system bars.
type BarColors struct {
	StatusBar     Color
	NavigationBar Color
}

// Palette holds the bar colors for both icon appearances.
type Palette struct {
	Light BarColors
	Dark  BarColors
}

// For returns the bar colors for light or dark bars.
func (p Palette) For(isLight bool) BarColors {
	if isLight {
		return p.Light
	}
	return p.Dark
}

// DefaultPalette is light gray over white for light bars and near black over
// black for dark bars.
var DefaultPalette = Palette{
	Light: BarColors{StatusBar: RGB(0xFA, 0xFA, 0xFA), NavigationBar: RGB(0xFF, 0xFF, 0xFF)},
	Dark:  BarColors{StatusBar: RGB(0x20, 0x20, 0x20), NavigationBar: RGB(0x00, 0x00, 0x00)},
}
