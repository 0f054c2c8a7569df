package safearea

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/safearea/pkg/color"
	"github.com/go-drift/safearea/pkg/insets"
	"github.com/go-drift/safearea/pkg/sdk"
)

// mockWindow and mockController let tests script failures and panics from
// individual platform calls.
type mockWindow struct{ mock.Mock }

func (m *mockWindow) InsetsController() (InsetsController, error) {
	args := m.Called()
	ctrl, _ := args.Get(0).(InsetsController)
	return ctrl, args.Error(1)
}

func (m *mockWindow) SetStatusBarColor(c color.Color) error {
	return m.Called(c).Error(0)
}

func (m *mockWindow) SetNavigationBarColor(c color.Color) error {
	return m.Called(c).Error(0)
}

func (m *mockWindow) SystemUIVisibility() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func (m *mockWindow) SetSystemUIVisibility(flags int) error {
	return m.Called(flags).Error(0)
}

func (m *mockWindow) RequestApplyInsets() error {
	return m.Called().Error(0)
}

type mockController struct{ mock.Mock }

func (m *mockController) SetSystemBarsAppearance(appearance, mask Appearance) error {
	return m.Called(appearance, mask).Error(0)
}

// mockHost runs UI work inline against a mockWindow.
type mockHost struct {
	window *mockWindow
}

func (h mockHost) RunOnUIThread(fn func()) error { fn(); return nil }
func (h mockHost) Window() Window                { return h.window }
func (h mockHost) WebView() WebView              { return nil }
func (h mockHost) Density() float64              { return 1 }

func TestAppearanceExplicitColorsLight(t *testing.T) {
	host := &RecordingHost{Visibility: 0x100}
	p := New(host, sdk.Resolve(sdk.Android, sdk.Tiramisu))

	call := NewCall(MethodChangeSystemBarsIconsAppearance, map[string]any{"isLight": true})
	p.ChangeSystemBarsIconsAppearance(call)

	require.True(t, call.Settled())
	assert.Equal(t, []string{
		OpSetStatusBarColor,
		OpSetNavigationBarColor,
		OpSetSystemBarsAppearance,
		OpSetSystemUIVisibility,
	}, host.Ops())

	status, _ := host.Last(OpSetStatusBarColor)
	assert.Equal(t, "#FAFAFA", status.Color.Hex())
	nav, _ := host.Last(OpSetNavigationBarColor)
	assert.Equal(t, "#FFFFFF", nav.Color.Hex())

	app, _ := host.Last(OpSetSystemBarsAppearance)
	assert.Equal(t, LightStatusBars|LightNavigationBars, app.Appearance)
	assert.Equal(t, AllBars, app.Mask)

	assert.Equal(t, 0x100|FlagLightStatusBar|FlagLightNavigationBar, host.Visibility,
		"light flags are added, unrelated flags kept")
}

func TestAppearanceExplicitColorsDark(t *testing.T) {
	host := &RecordingHost{Visibility: 0x100 | FlagLightStatusBar | FlagLightNavigationBar}
	p := New(host, sdk.Resolve(sdk.Android, sdk.Tiramisu))

	p.ChangeSystemBarsIconsAppearance(NewCall(MethodChangeSystemBarsIconsAppearance, nil))

	status, _ := host.Last(OpSetStatusBarColor)
	assert.Equal(t, "#202020", status.Color.Hex())
	nav, _ := host.Last(OpSetNavigationBarColor)
	assert.Equal(t, "#000000", nav.Color.Hex())
	app, _ := host.Last(OpSetSystemBarsAppearance)
	assert.Equal(t, Appearance(0), app.Appearance)
	assert.Equal(t, AllBars, app.Mask)
	assert.Equal(t, 0x100, host.Visibility)
	assert.NotContains(t, host.Ops(), OpRequestApplyInsets)
}

func TestAppearanceExplicitColorsWithoutController(t *testing.T) {
	sink := captureReports(t)
	host := &RecordingHost{NoController: true}
	p := New(host, sdk.Resolve(sdk.Android, sdk.Tiramisu))

	p.SetSystemBarsIconsAppearance(true)

	assert.Equal(t, []string{OpSetStatusBarColor, OpSetNavigationBarColor, OpSetSystemUIVisibility}, host.Ops())
	assert.Empty(t, sink.Errors(), "a missing controller is tolerated on the explicit-color path")
}

func TestAppearanceCustomPalette(t *testing.T) {
	host := &RecordingHost{}
	palette := color.Palette{
		Light: color.BarColors{StatusBar: color.MustParse("#EEEEEE"), NavigationBar: color.MustParse("white")},
		Dark:  color.DefaultPalette.Dark,
	}
	p := New(host, sdk.Resolve(sdk.Android, sdk.Tiramisu), WithPalette(palette))

	p.SetSystemBarsIconsAppearance(true)

	status, _ := host.Last(OpSetStatusBarColor)
	assert.Equal(t, "#EEEEEE", status.Color.Hex())
}

func TestAppearanceController(t *testing.T) {
	for _, api := range []int{sdk.R, sdk.SV2, sdk.UpsideDownCake, sdk.VanillaIceCream} {
		host := &RecordingHost{}
		p := New(host, sdk.Resolve(sdk.Android, api))

		p.SetSystemBarsIconsAppearance(true)
		p.SetSystemBarsIconsAppearance(false)

		require.Equal(t, []string{
			OpSetSystemBarsAppearance, OpRequestApplyInsets,
			OpSetSystemBarsAppearance, OpRequestApplyInsets,
		}, host.Ops(), "api %d", api)
		actions := host.Actions()
		assert.Equal(t, AllBars, actions[0].Appearance)
		assert.Equal(t, Appearance(0), actions[2].Appearance)
		assert.Equal(t, AllBars, actions[2].Mask)
	}
}

func TestAppearanceControllerMissingIsReported(t *testing.T) {
	sink := captureReports(t)
	host := &RecordingHost{NoController: true}
	p := New(host, sdk.Resolve(sdk.Android, sdk.UpsideDownCake))

	call := NewCall(MethodChangeSystemBarsIconsAppearance, map[string]any{"isLight": true})
	p.ChangeSystemBarsIconsAppearance(call)

	assert.True(t, call.Settled())
	assert.Empty(t, host.Actions())
	reported := sink.Errors()
	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], ErrNoInsetsController)
}

func TestAppearanceUnsupportedIsNoop(t *testing.T) {
	sink := captureReports(t)
	for _, caps := range []sdk.Capabilities{
		sdk.Resolve(sdk.Android, 29),
		sdk.Resolve(sdk.Android, 21),
		sdk.Resolve(sdk.Web, 0),
	} {
		host := &RecordingHost{RejectDispatch: true}
		p := New(host, caps)

		call := NewCall(MethodChangeSystemBarsIconsAppearance, map[string]any{"isLight": true})
		p.ChangeSystemBarsIconsAppearance(call)

		assert.True(t, call.Settled(), caps.String())
		_, err := call.Result()
		assert.NoError(t, err)
		assert.Empty(t, host.Actions())
	}
	assert.Empty(t, sink.Errors(), "unsupported hosts never reach the UI thread")
}

func TestAppearancePanicIsSwallowed(t *testing.T) {
	sink := captureReports(t)
	win := &mockWindow{}
	ctrl := &mockController{}
	win.On("InsetsController").Return(ctrl, nil)
	ctrl.On("SetSystemBarsAppearance", AllBars, AllBars).Run(func(mock.Arguments) {
		panic("controller is null")
	})
	p := New(mockHost{window: win}, sdk.Resolve(sdk.Android, sdk.UpsideDownCake))

	call := NewCall(MethodChangeSystemBarsIconsAppearance, map[string]any{"isLight": true})
	assert.NotPanics(t, func() { p.ChangeSystemBarsIconsAppearance(call) })

	assert.True(t, call.Settled())
	_, err := call.Result()
	assert.NoError(t, err)
	panics := sink.Panics()
	require.Len(t, panics, 1)
	assert.Equal(t, "controller is null", panics[0].Value)
	assert.Equal(t, "safearea.changeSystemBarsIconsAppearance", panics[0].Op)
	win.AssertNotCalled(t, "RequestApplyInsets")
}

func TestAppearanceFailureStopsSequence(t *testing.T) {
	sink := captureReports(t)
	boom := stderrors.New("window gone")
	win := &mockWindow{}
	win.On("SetStatusBarColor", color.DefaultPalette.Light.StatusBar).Return(nil)
	win.On("SetNavigationBarColor", color.DefaultPalette.Light.NavigationBar).Return(boom)
	p := New(mockHost{window: win}, sdk.Resolve(sdk.Android, sdk.Tiramisu))

	p.SetSystemBarsIconsAppearance(true)

	win.AssertExpectations(t)
	win.AssertNotCalled(t, "InsetsController")
	win.AssertNotCalled(t, "SetSystemUIVisibility", mock.Anything)
	reported := sink.Errors()
	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], boom)
}

func TestAppearanceOnLoad(t *testing.T) {
	host := &RecordingHost{}
	p := New(host, sdk.Resolve(sdk.Android, sdk.UpsideDownCake), WithAppearanceOnLoad(true))

	p.load()
	p.load()

	assert.Equal(t, []string{OpSetSystemBarsAppearance, OpRequestApplyInsets}, host.Ops(), "applied once")
}

func TestAppearanceDoesNotTouchInsets(t *testing.T) {
	p, host := newAndroidPlugin(sdk.VanillaIceCream)
	p.OnInsets(barsSnapshot(2, 10, 0, 10, 0))
	host.Reset()

	p.SetSystemBarsIconsAppearance(false)

	assert.NotContains(t, host.Ops(), OpEvaluateJavascript)
	snap, ok := p.state.Load()
	require.True(t, ok)
	assert.Equal(t, insets.Insets{Top: 10, Bottom: 10}, snap.Insets(insets.SystemBars))
}

func TestLegacyFlags(t *testing.T) {
	assert.Equal(t, FlagLightStatusBar|FlagLightNavigationBar, legacyFlags(0, true))
	assert.Equal(t, 0x1, legacyFlags(0x1|FlagLightStatusBar, false))
}

func TestAppearanceIgnoresNonBooleanIsLight(t *testing.T) {
	for _, v := range []any{"true", 1, map[string]any{}} {
		host := &RecordingHost{}
		p := New(host, sdk.Resolve(sdk.Android, sdk.UpsideDownCake))

		p.ChangeSystemBarsIconsAppearance(NewCall(MethodChangeSystemBarsIconsAppearance, map[string]any{"isLight": v}))

		a, ok := host.Last(OpSetSystemBarsAppearance)
		require.True(t, ok)
		assert.Equal(t, Appearance(0), a.Appearance, "isLight=%#v falls back to dark", v)
	}
}
