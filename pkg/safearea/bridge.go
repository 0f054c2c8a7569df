package safearea

import (
	"fmt"

	"github.com/go-drift/safearea/pkg/errors"
	"github.com/go-drift/safearea/pkg/insets"
	"github.com/go-drift/safearea/pkg/platform"
)

// Channel names shared with the native side.
const (
	// PluginChannel carries method calls from the web app.
	PluginChannel = "drift/safe_area"
	// InsetsChannel streams inset reports from the window.
	InsetsChannel = "drift/safe_area/insets"
	// WindowChannel carries the plugin's calls into the native window and web view.
	WindowChannel = "drift/safe_area/window"
)

// Bridge method names.
const (
	MethodInitialize                      = "initialize"
	MethodChangeSystemBarsIconsAppearance = "changeSystemBarsIconsAppearance"
)

// HandleMethodCall dispatches a bridge method call to the plugin.
// It is a platform.MethodHandler.
func (p *Plugin) HandleMethodCall(method string, args any) (any, error) {
	call := NewCall(method, args)
	switch method {
	case MethodInitialize:
		p.Initialize(call)
	case MethodChangeSystemBarsIconsAppearance:
		p.ChangeSystemBarsIconsAppearance(call)
	default:
		return nil, fmt.Errorf("%w: %s", platform.ErrMethodNotFound, method)
	}
	return call.Result()
}

// Registration ties a plugin to its platform channels.
type Registration struct {
	plugin  *Plugin
	methods *platform.MethodChannel
	sub     *platform.Subscription
}

// Register binds p to PluginChannel and starts listening on InsetsChannel.
func Register(p *Plugin) *Registration {
	methods := platform.NewMethodChannel(PluginChannel)
	methods.SetHandler(p.HandleMethodCall)

	events := platform.NewEventChannel(InsetsChannel)
	sub := events.Listen(platform.EventHandler{
		OnEvent: func(data any) {
			snap, err := insets.Parse(data)
			if err != nil {
				errors.Report(&errors.PluginError{
					Op:      "safearea.insetsEvent",
					Kind:    errors.KindParsing,
					Channel: InsetsChannel,
					Err:     err,
				})
				return
			}
			p.OnInsets(snap)
		},
		OnError: func(err error) {
			errors.Report(&errors.PluginError{
				Op:      "safearea.insetsEvent",
				Kind:    errors.KindPlatform,
				Channel: InsetsChannel,
				Err:     err,
			})
		},
	})

	p.load()
	return &Registration{plugin: p, methods: methods, sub: sub}
}

// Plugin returns the registered plugin.
func (r *Registration) Plugin() *Plugin {
	return r.plugin
}

// Unregister stops inset delivery, detaches the method handler and drops the
// plugin's stored snapshot. The plugin can be registered again afterwards.
func (r *Registration) Unregister() {
	r.sub.Cancel()
	r.methods.SetHandler(nil)
	r.plugin.unload()
}
