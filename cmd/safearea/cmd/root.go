// Package cmd implements the safearea CLI commands.
//
// The CLI drives the real plugin against an in-memory host so the margins,
// injected scripts and bar calls for a device can be inspected without one.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-drift/safearea/cmd/safearea/internal/config"
	"github.com/go-drift/safearea/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

var (
	cfg        *config.Resolved
	globalOpts struct {
		verbose    bool
		projectDir string
	}
	logger *slog.Logger
	// reports collects plugin error reports so commands can print them next
	// to the native calls that caused them.
	reports *errors.Recorder
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "safearea",
		Short: "Preview the drift safe area plugin",
		Long: `safearea runs the drift safe area plugin against a simulated host.

It shows the native margins, injected CSS variable scripts and system bar
calls the plugin makes for a given Android API level, density and set of
insets. Settings are read from the safe_area section of drift.yaml.`,
		Version:       fmt.Sprintf("%s (built %s)", Version, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			dir := globalOpts.projectDir
			if dir == "" {
				var err error
				if dir, err = config.FindProjectRoot(); err != nil {
					return err
				}
			}
			var err error
			cfg, err = config.Resolve(dir)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			setupLogger(cmd.ErrOrStderr(), globalOpts.verbose || cfg.Verbose)
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&globalOpts.projectDir, "project", "", "Project directory (default: nearest go.mod)")

	root.AddCommand(newScriptCmd(), newSimulateCmd(), newAppearanceCmd(), newVersionCmd())
	return root
}

// setupLogger installs the process logger and routes plugin error reports through it.
func setupLogger(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	reports = &errors.Recorder{}
	errors.SetHandler(errors.Tee{&errors.LogHandler{Logger: logger, Verbose: verbose}, reports})
}

// Execute runs the CLI with os.Args.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "safearea %s (built %s)\n", Version, BuildTime)
			return err
		},
	}
}
