// Package insets models the safe area insets reported by the host window.
//
// A Snapshot keeps the raw pixel insets of every inset category the window
// reported, together with the display density, so callers can query the union
// of any combination of categories the same way the platform does.
package insets

import (
	"fmt"
	"math"
	"strings"
)

// Type is a bitmask of inset categories.
type Type uint8

const (
	// SystemBars covers the status bar, navigation bar and caption bar.
	SystemBars Type = 1 << iota
	// DisplayCutout covers hardware notches and punch holes.
	DisplayCutout
	// IME covers the on-screen keyboard.
	IME
)

// All is every inset category.
const All = SystemBars | DisplayCutout | IME

var typeNames = []struct {
	t    Type
	name string
}{
	{SystemBars, "systemBars"},
	{DisplayCutout, "displayCutout"},
	{IME, "ime"},
}

func (t Type) String() string {
	if t == 0 {
		return "none"
	}
	var parts []string
	for _, tn := range typeNames {
		if t&tn.t != 0 {
			parts = append(parts, tn.name)
		}
	}
	return strings.Join(parts, "|")
}

// Insets are raw pixel distances from each edge of the window.
type Insets struct {
	Top, Right, Bottom, Left int
}

// Max returns the per-side maximum of i and o.
func (i Insets) Max(o Insets) Insets {
	return Insets{
		Top:    max(i.Top, o.Top),
		Right:  max(i.Right, o.Right),
		Bottom: max(i.Bottom, o.Bottom),
		Left:   max(i.Left, o.Left),
	}
}

// IsZero reports whether all sides are zero.
func (i Insets) IsZero() bool {
	return i == Insets{}
}

func (i Insets) String() string {
	return fmt.Sprintf("top=%d, right=%d, bottom=%d, left=%d", i.Top, i.Right, i.Bottom, i.Left)
}

// ToDIP converts raw pixels to density-independent units, rounding each side
// to the nearest integer. A non-positive density is treated as 1.
func (i Insets) ToDIP(density float64) DIP {
	if density <= 0 {
		density = 1
	}
	conv := func(px int) int {
		return int(math.Round(float64(px) / density))
	}
	return DIP{
		Top:    conv(i.Top),
		Right:  conv(i.Right),
		Bottom: conv(i.Bottom),
		Left:   conv(i.Left),
	}
}

// DIP are insets in density-independent units, which map 1:1 to CSS pixels.
type DIP struct {
	Top, Right, Bottom, Left int
}

func (d DIP) String() string {
	return fmt.Sprintf("top=%d, right=%d, bottom=%d, left=%d", d.Top, d.Right, d.Bottom, d.Left)
}
