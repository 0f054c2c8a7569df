// Package safearea implements the safe area bridge plugin.
//
// The plugin listens for inset reports from the host window and keeps the
// embedded web page clear of the status bar, navigation bar, display cutout and
// keyboard. Depending on the resolved layout tier it either sets native margins
// on the web view or writes --android-safe-area-* CSS custom properties into the
// page. It also switches the system bar icons between light and dark.
//
// # Error policy
//
// Every platform call runs inside a guard that reports failures (returned
// errors and panics) through package errors and then continues. Bridge calls
// always resolve; the web app is never told that a platform call failed.
//
// # Threading
//
// All window and view mutations, and every read or write of the stored inset
// snapshot, run on the UI thread via Host.RunOnUIThread.
package safearea

import (
	stderrors "errors"
	"log/slog"

	"github.com/go-drift/safearea/pkg/color"
	"github.com/go-drift/safearea/pkg/insets"
	"github.com/go-drift/safearea/pkg/platform"
	"github.com/go-drift/safearea/pkg/sdk"
	"github.com/go-drift/safearea/pkg/webscript"
)

var (
	// ErrDispatchRejected is returned by a RecordingHost that refuses UI-thread work.
	ErrDispatchRejected = stderrors.New("safearea: UI thread dispatch rejected")

	// ErrNoInsetsController is reported when the window has no insets controller.
	ErrNoInsetsController = stderrors.New("safearea: window insets controller is nil")
)

// Inset categories applied by each layout tier. The keyboard only matters
// when the page lays itself out; native margins leave it to the window.
const (
	marginInsetTypes = insets.SystemBars | insets.DisplayCutout
	cssInsetTypes    = insets.SystemBars | insets.DisplayCutout | insets.IME
)

// Plugin is one safe area plugin instance bound to a host.
type Plugin struct {
	host    Host
	caps    sdk.Capabilities
	state   insets.State
	log     *slog.Logger
	barsLog *slog.Logger
	opts    options
	loaded  bool
}

type options struct {
	palette      color.Palette
	logger       *slog.Logger
	loadLight    bool
	loadApplyBar bool
}

// Option configures a Plugin.
type Option func(*options)

// WithPalette overrides the bar colors painted on API 33.
func WithPalette(p color.Palette) Option {
	return func(o *options) { o.palette = p }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithAppearanceOnLoad applies the given icon appearance once when the plugin
// is registered, before the web app asks for one.
func WithAppearanceOnLoad(isLight bool) Option {
	return func(o *options) {
		o.loadApplyBar = true
		o.loadLight = isLight
	}
}

// New creates a plugin for host. caps is resolved once by the caller (usually
// with sdk.Resolve) and never re-checked.
func New(host Host, caps sdk.Capabilities, opts ...Option) *Plugin {
	o := options{palette: color.DefaultPalette}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Plugin{
		host:    host,
		caps:    caps,
		log:     logger.With("component", "SafeArea"),
		barsLog: logger.With("component", "SystemBars"),
		opts:    o,
	}
}

// Capabilities returns the code paths this plugin was resolved to.
func (p *Plugin) Capabilities() sdk.Capabilities {
	return p.caps
}

// load runs once when the plugin is wired to its channels.
func (p *Plugin) load() {
	if p.loaded {
		return
	}
	p.loaded = true
	p.log.Debug("safe area plugin loaded", "capabilities", p.caps.String())
	if p.opts.loadApplyBar {
		p.SetSystemBarsIconsAppearance(p.opts.loadLight)
	}
}

// unload undoes load: the stored snapshot is dropped on the UI thread and
// the next load runs again.
func (p *Plugin) unload() {
	if !p.loaded {
		return
	}
	p.loaded = false
	p.runOnUI("safearea.unload", func() error {
		p.state.Clear()
		return nil
	})
	p.log.Debug("safe area plugin unloaded")
}

// OnInsets records a new inset report from the window and applies it.
// The report replaces any earlier one.
func (p *Plugin) OnInsets(snap insets.Snapshot) {
	p.runOnUI("safearea.OnInsets", func() error {
		p.state.Store(snap)
		return p.applyInsets(snap)
	})
}

// Initialize re-applies the last inset report, if there is one. The call
// resolves whether or not insets have been reported yet.
func (p *Plugin) Initialize(call *Call) {
	p.runOnUI("safearea.initialize", func() error {
		snap, ok := p.state.Load()
		if !ok {
			p.log.Debug("no insets reported yet")
			return nil
		}
		return p.applyInsets(snap)
	})
	call.Resolve(nil)
}

// applyInsets must run on the UI thread.
func (p *Plugin) applyInsets(snap insets.Snapshot) error {
	switch p.caps.Layout {
	case sdk.LayoutMargins:
		m := snap.Insets(marginInsetTypes)
		p.log.Debug("applying web view margins", "insets", m.String())
		return p.host.WebView().SetMargins(m)

	case sdk.LayoutCSSVariables:
		density := snap.Density
		if density <= 0 {
			density = p.host.Density()
		}
		dip := snap.Insets(cssInsetTypes).ToDIP(density)
		p.log.Debug("applying css safe area variables", "insets", dip.String(), "density", density)
		return p.host.WebView().EvaluateJavascript(webscript.SafeAreaScript(dip))

	default:
		return nil
	}
}

// runOnUI schedules fn on the UI thread behind the error guard.
func (p *Plugin) runOnUI(op string, fn func() error) {
	platform.RunGuarded(op, p.host.RunOnUIThread, fn)
}
