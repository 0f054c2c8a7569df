// Package sdk resolves which platform code paths the plugin takes.
//
// The host reports its platform and Android API level once. Resolve turns that
// into a Capabilities value that the plugin stores and consults on every call,
// so version checks are not scattered through the code.
package sdk

import "fmt"

// Android API levels the plugin distinguishes.
const (
	R               = 30
	S               = 31
	SV2             = 32
	Tiramisu        = 33
	UpsideDownCake  = 34
	VanillaIceCream = 35
)

// Platform names the host operating system.
type Platform string

const (
	Android Platform = "android"
	IOS     Platform = "ios"
	Web     Platform = "web"
)

// LayoutTier selects how insets are applied.
type LayoutTier int

const (
	// LayoutNone ignores insets. Hosts other than Android handle safe areas natively.
	LayoutNone LayoutTier = iota
	// LayoutMargins sets native margins on the web view. The page sees zero safe-area insets.
	LayoutMargins
	// LayoutCSSVariables lets the web view draw edge to edge and writes
	// --android-safe-area-* custom properties into the page.
	LayoutCSSVariables
)

func (t LayoutTier) String() string {
	switch t {
	case LayoutMargins:
		return "margins"
	case LayoutCSSVariables:
		return "css-variables"
	default:
		return "none"
	}
}

// AppearanceTier selects how system bar icon appearance is changed.
type AppearanceTier int

const (
	// AppearanceUnsupported makes appearance changes a no-op.
	AppearanceUnsupported AppearanceTier = iota
	// AppearanceController uses the window insets controller with transparent bars.
	AppearanceController
	// AppearanceExplicitColors paints opaque bar colors before using the insets
	// controller and the legacy visibility flags. API 33 draws transparent bars
	// over the content otherwise.
	AppearanceExplicitColors
)

func (t AppearanceTier) String() string {
	switch t {
	case AppearanceController:
		return "controller"
	case AppearanceExplicitColors:
		return "explicit-colors"
	default:
		return "unsupported"
	}
}

// Capabilities is the resolved set of code paths for one host.
type Capabilities struct {
	Platform   Platform
	APILevel   int
	Layout     LayoutTier
	Appearance AppearanceTier
}

// Resolve computes the capabilities for a platform and API level.
// The API level is ignored for platforms other than Android.
func Resolve(platform Platform, apiLevel int) Capabilities {
	caps := Capabilities{Platform: platform, APILevel: apiLevel}
	if platform != Android {
		return caps
	}

	if apiLevel < VanillaIceCream {
		caps.Layout = LayoutMargins
	} else {
		caps.Layout = LayoutCSSVariables
	}

	switch {
	case apiLevel < R:
		caps.Appearance = AppearanceUnsupported
	case apiLevel == Tiramisu:
		caps.Appearance = AppearanceExplicitColors
	default:
		caps.Appearance = AppearanceController
	}
	return caps
}

func (c Capabilities) String() string {
	if c.Platform == Android {
		return fmt.Sprintf("android api=%d layout=%s appearance=%s", c.APILevel, c.Layout, c.Appearance)
	}
	return fmt.Sprintf("%s layout=%s appearance=%s", c.Platform, c.Layout, c.Appearance)
}

// ParsePlatform maps a host-reported name to a Platform.
func ParsePlatform(name string) (Platform, error) {
	switch p := Platform(name); p {
	case Android, IOS, Web:
		return p, nil
	default:
		return "", fmt.Errorf("unknown platform %q (use android, ios or web)", name)
	}
}
