package safearea

import (
	"github.com/go-drift/safearea/pkg/color"
	"github.com/go-drift/safearea/pkg/insets"
)

// Appearance is a bitmask of system bar appearance flags, matching the values
// of the native window insets controller.
type Appearance int

const (
	// LightStatusBars draws dark status bar icons for light backgrounds.
	LightStatusBars Appearance = 1 << 3
	// LightNavigationBars draws dark navigation bar icons for light backgrounds.
	LightNavigationBars Appearance = 1 << 4

	// AllBars is the mask covering both appearance flags.
	AllBars = LightStatusBars | LightNavigationBars
)

// Legacy system UI visibility flags. API 33 ignores the insets controller in
// some configurations, so the plugin sets these as well.
const (
	FlagLightStatusBar     = 0x00002000
	FlagLightNavigationBar = 0x00000010
)

// Host is the native shell the plugin runs in.
type Host interface {
	// RunOnUIThread schedules fn on the UI thread. It returns an error if the
	// work could not be scheduled.
	RunOnUIThread(fn func()) error
	// Window returns the activity window.
	Window() Window
	// WebView returns the embedded web view.
	WebView() WebView
	// Density returns the display density, used when an inset report does
	// not carry one.
	Density() float64
}

// Window is the activity window that owns the system bars.
type Window interface {
	// InsetsController returns the window's insets controller, or nil if the
	// window has none.
	InsetsController() (InsetsController, error)
	SetStatusBarColor(c color.Color) error
	SetNavigationBarColor(c color.Color) error
	SystemUIVisibility() (int, error)
	SetSystemUIVisibility(flags int) error
	// RequestApplyInsets asks the window to dispatch insets again.
	RequestApplyInsets() error
}

// InsetsController changes system bar appearance.
type InsetsController interface {
	// SetSystemBarsAppearance sets the flags in mask to the values in appearance.
	SetSystemBarsAppearance(appearance, mask Appearance) error
}

// WebView is the embedded browser view.
type WebView interface {
	// SetMargins sets the view's layout margins in raw pixels.
	SetMargins(m insets.Insets) error
	// EvaluateJavascript runs script in the current page.
	EvaluateJavascript(script string) error
}
