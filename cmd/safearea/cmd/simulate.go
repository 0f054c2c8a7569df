package cmd

import (
	stderrors "errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/go-drift/safearea/cmd/safearea/internal/config"
	"github.com/go-drift/safearea/pkg/platform"
	"github.com/go-drift/safearea/pkg/safearea"
	"github.com/go-drift/safearea/pkg/sdk"
)

// hostOptions select the simulated host. Zero values fall back to drift.yaml.
type hostOptions struct {
	platform string
	apiLevel int
	fail     []string
}

// errSimulated is returned by operations named with --fail.
var errSimulated = stderrors.New("simulated failure")

var hostOps = []string{
	safearea.OpSetMargins,
	safearea.OpEvaluateJavascript,
	safearea.OpSetStatusBarColor,
	safearea.OpSetNavigationBarColor,
	safearea.OpSetSystemBarsAppearance,
	safearea.OpSetSystemUIVisibility,
	safearea.OpRequestApplyInsets,
}

func (o *hostOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.platform, "platform", "", "Host platform: android, ios or web (default: safe_area.platform)")
	cmd.Flags().IntVar(&o.apiLevel, "api", 0, "Android API level (default: safe_area.api_level)")
	cmd.Flags().StringSliceVar(&o.fail, "fail", nil, "Native operations that fail, e.g. setStatusBarColor")
}

// failures maps each --fail operation to errSimulated.
func (o *hostOptions) failures() (map[string]error, error) {
	if len(o.fail) == 0 {
		return nil, nil
	}
	out := make(map[string]error, len(o.fail))
	for _, op := range o.fail {
		if !slices.Contains(hostOps, op) {
			return nil, fmt.Errorf("unknown native operation %q", op)
		}
		out[op] = errSimulated
	}
	return out, nil
}

func (o *hostOptions) capabilities(res *config.Resolved) (sdk.Capabilities, error) {
	p := res.Platform
	if o.platform != "" {
		var err error
		if p, err = sdk.ParsePlatform(o.platform); err != nil {
			return sdk.Capabilities{}, err
		}
	}
	api := res.APILevel
	if o.apiLevel > 0 {
		api = o.apiLevel
	}
	return sdk.Resolve(p, api), nil
}

// newPlugin creates a plugin on a recording host configured from drift.yaml.
func newPlugin(caps sdk.Capabilities, failures map[string]error) (*safearea.Plugin, *safearea.RecordingHost) {
	host := &safearea.RecordingHost{DensityValue: cfg.Density, Failures: failures}
	opts := append(cfg.PluginOptions(), safearea.WithLogger(logger))
	return safearea.New(host, caps, opts...), host
}

type simulateOptions struct {
	host        hostOptions
	fixture     string
	theme       string
	systemDark  bool
	showScripts bool
}

func newSimulateCmd() *cobra.Command {
	var opts simulateOptions
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay inset reports against a simulated host",
		Long: `Replay the inset reports of a fixture file through the plugin and print
every native call it makes. After the reports, the web app's startup sequence
is replayed: initialize, then changeSystemBarsIconsAppearance when --theme is set.`,
		Example: `  safearea simulate --fixture testdata/pixel8.yaml --api 34
  safearea simulate --fixture testdata/pixel8.yaml --api 33 --theme auto --system-dark`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caps, err := opts.host.capabilities(cfg)
			if err != nil {
				return err
			}
			failures, err := opts.host.failures()
			if err != nil {
				return err
			}
			fixture, err := config.LoadFixture(opts.fixture)
			if err != nil {
				return err
			}
			return runSimulate(cmd.OutOrStdout(), caps, failures, fixture, opts)
		},
	}

	opts.host.register(cmd)
	cmd.Flags().StringVar(&opts.fixture, "fixture", "", "Fixture file with inset reports")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "App theme after initialize: light, dark or auto")
	cmd.Flags().BoolVar(&opts.systemDark, "system-dark", false, "System prefers dark mode (for --theme auto)")
	cmd.Flags().BoolVar(&opts.showScripts, "show-scripts", false, "Print injected scripts in full")
	_ = cmd.MarkFlagRequired("fixture")
	return cmd
}

func runSimulate(w io.Writer, caps sdk.Capabilities, failures map[string]error, fixture *config.Fixture, opts simulateOptions) error {
	var isLight *bool
	if opts.theme != "" {
		mode, err := safearea.ParseThemeMode(opts.theme)
		if err != nil {
			return err
		}
		v := mode.IsLight(opts.systemDark)
		isLight = &v
	}

	p, host := newPlugin(caps, failures)
	fmt.Fprintf(w, "# %s: %s\n", cfg.AppName, caps)

	reg := safearea.Register(p)
	defer reg.Unregister()
	printActions(w, "load", host, opts.showScripts)

	for i, ev := range fixture.Events {
		data, err := platform.DefaultCodec.Encode(ev.Payload())
		if err != nil {
			return err
		}
		if err := platform.HandleEvent(safearea.InsetsChannel, data); err != nil {
			return err
		}
		printActions(w, fmt.Sprintf("event %d", i+1), host, opts.showScripts)
	}

	if _, err := platform.HandleMethodCall(safearea.PluginChannel, safearea.MethodInitialize, nil); err != nil {
		return err
	}
	printActions(w, safearea.MethodInitialize, host, opts.showScripts)

	if isLight != nil {
		args, err := platform.DefaultCodec.Encode(map[string]any{"isLight": *isLight})
		if err != nil {
			return err
		}
		if _, err := platform.HandleMethodCall(safearea.PluginChannel, safearea.MethodChangeSystemBarsIconsAppearance, args); err != nil {
			return err
		}
		printActions(w, fmt.Sprintf("%s(isLight=%v)", safearea.MethodChangeSystemBarsIconsAppearance, *isLight), host, opts.showScripts)
	}
	return nil
}

// printActions prints and then clears the host's recorded actions and the
// error reports raised since the last step.
func printActions(w io.Writer, label string, host *safearea.RecordingHost, showScripts bool) {
	actions := host.Actions()
	host.Reset()
	var failed []error
	if reports != nil {
		failed = reports.Drain()
	}

	fmt.Fprintf(w, "%s:\n", label)
	if len(actions) == 0 && len(failed) == 0 {
		fmt.Fprintln(w, "  (no native calls)")
		return
	}
	for _, a := range actions {
		fmt.Fprintf(w, "  %s\n", a)
		if showScripts && a.Op == safearea.OpEvaluateJavascript {
			fmt.Fprintf(w, "    %s\n", a.Script)
		}
	}
	for _, err := range failed {
		fmt.Fprintf(w, "  ! %v\n", err)
	}
}
