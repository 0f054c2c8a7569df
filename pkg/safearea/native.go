package safearea

import (
	"fmt"

	"github.com/go-drift/safearea/pkg/color"
	"github.com/go-drift/safearea/pkg/errors"
	"github.com/go-drift/safearea/pkg/insets"
	"github.com/go-drift/safearea/pkg/platform"
	"github.com/go-drift/safearea/pkg/sdk"
)

// NativeHost is a Host that forwards every window and web view call to the
// native side over WindowChannel and schedules UI work with platform.Dispatch.
type NativeHost struct {
	channel *platform.MethodChannel
}

// NewNativeHost creates a host bound to WindowChannel.
func NewNativeHost() *NativeHost {
	return &NativeHost{channel: platform.NewMethodChannel(WindowChannel)}
}

// Capabilities asks the native side for its platform and API level.
func (h *NativeHost) Capabilities() (sdk.Capabilities, error) {
	result, err := h.channel.Invoke("getPlatformInfo", nil)
	if err != nil {
		return sdk.Capabilities{}, fmt.Errorf("get platform info: %w", err)
	}
	m := platform.ParseMap(result)
	if m == nil {
		return sdk.Capabilities{}, &errors.ParseError{Channel: WindowChannel, DataType: "platformInfo", Got: result}
	}
	name, _ := m["platform"].(string)
	p, err := sdk.ParsePlatform(name)
	if err != nil {
		return sdk.Capabilities{}, err
	}
	api, _ := platform.ToInt(m["apiLevel"])
	return sdk.Resolve(p, api), nil
}

// RunOnUIThread implements Host.
func (h *NativeHost) RunOnUIThread(fn func()) error {
	return platform.Dispatch(fn)
}

// Density implements Host. It falls back to 1 if the native side cannot answer.
func (h *NativeHost) Density() float64 {
	result, err := h.channel.Invoke("getDensity", nil)
	if err == nil {
		if d, ok := platform.ToFloat64(platform.ParseMap(result)["density"]); ok && d > 0 {
			return d
		}
		err = &errors.ParseError{Channel: WindowChannel, DataType: "density", Got: result}
	}
	errors.Report(&errors.PluginError{
		Op:      "safearea.NativeHost.Density",
		Kind:    errors.KindPlatform,
		Channel: WindowChannel,
		Err:     err,
	})
	return 1
}

// Window implements Host.
func (h *NativeHost) Window() Window {
	return nativeWindow{h.channel}
}

// WebView implements Host.
func (h *NativeHost) WebView() WebView {
	return nativeWebView{h.channel}
}

func invoke(ch *platform.MethodChannel, method string, args map[string]any) error {
	_, err := ch.Invoke(method, args)
	return err
}

type nativeWindow struct {
	channel *platform.MethodChannel
}

func (w nativeWindow) InsetsController() (InsetsController, error) {
	result, err := w.channel.Invoke("hasInsetsController", nil)
	if err != nil {
		return nil, err
	}
	if ok, _ := platform.ParseBool(platform.ParseMap(result)["available"]); !ok {
		return nil, nil
	}
	return nativeController(w), nil
}

func (w nativeWindow) SetStatusBarColor(c color.Color) error {
	return invoke(w.channel, "setStatusBarColor", map[string]any{"color": uint32(c)})
}

func (w nativeWindow) SetNavigationBarColor(c color.Color) error {
	return invoke(w.channel, "setNavigationBarColor", map[string]any{"color": uint32(c)})
}

func (w nativeWindow) SystemUIVisibility() (int, error) {
	result, err := w.channel.Invoke("getSystemUiVisibility", nil)
	if err != nil {
		return 0, err
	}
	flags, ok := platform.ToInt(platform.ParseMap(result)["flags"])
	if !ok {
		return 0, &errors.ParseError{Channel: WindowChannel, DataType: "systemUiVisibility", Got: result}
	}
	return flags, nil
}

func (w nativeWindow) SetSystemUIVisibility(flags int) error {
	return invoke(w.channel, "setSystemUiVisibility", map[string]any{"flags": flags})
}

func (w nativeWindow) RequestApplyInsets() error {
	return invoke(w.channel, "requestApplyInsets", nil)
}

type nativeController struct {
	channel *platform.MethodChannel
}

func (c nativeController) SetSystemBarsAppearance(appearance, mask Appearance) error {
	return invoke(c.channel, "setSystemBarsAppearance", map[string]any{
		"appearance": int(appearance),
		"mask":       int(mask),
	})
}

type nativeWebView struct {
	channel *platform.MethodChannel
}

func (v nativeWebView) SetMargins(m insets.Insets) error {
	return invoke(v.channel, "setWebViewMargins", map[string]any{
		"bottom": m.Bottom,
		"top":    m.Top,
		"right":  m.Right,
		"left":   m.Left,
	})
}

func (v nativeWebView) EvaluateJavascript(script string) error {
	return invoke(v.channel, "evaluateJavascript", map[string]any{"script": script})
}

// Load asks the native side for its capabilities, then creates and registers
// a plugin backed by a NativeHost. Call it after platform.SetNativeBridge and
// platform.RegisterDispatch.
func Load(opts ...Option) (*Registration, error) {
	host := NewNativeHost()
	caps, err := host.Capabilities()
	if err != nil {
		errors.Report(&errors.PluginError{
			Op:      "safearea.Load",
			Kind:    errors.KindInit,
			Channel: WindowChannel,
			Err:     err,
		})
		return nil, err
	}
	return Register(New(host, caps, opts...)), nil
}
