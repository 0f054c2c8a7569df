package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/go-drift/safearea/cmd/safearea/internal/config"
	"github.com/go-drift/safearea/pkg/insets"
	"github.com/go-drift/safearea/pkg/webscript"
)

type scriptOptions struct {
	top, right, bottom, left int
	density                  float64
	asURL                    bool
	watch                    string
}

func newScriptCmd() *cobra.Command {
	var opts scriptOptions
	cmd := &cobra.Command{
		Use:   "script",
		Short: "Print the CSS variable injection script",
		Long: `Print the script the plugin injects on API 35 and newer.

Insets are raw pixels and are converted with --density (default: safe_area.density).
With --watch, the script is rendered from the last event of a fixture file and
re-rendered every time the file changes.`,
		Example: `  safearea script --top 63 --bottom 126 --density 2.625
  safearea script --watch testdata/pixel8.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("density") {
				opts.density = cfg.Density
			}
			if opts.watch != "" {
				return watchScript(cmd.Context(), cmd.OutOrStdout(), opts)
			}
			snap := insets.NewSnapshot(opts.density).With(insets.SystemBars, insets.Insets{
				Top: opts.top, Right: opts.right, Bottom: opts.bottom, Left: opts.left,
			})
			return renderScript(cmd.OutOrStdout(), snap, opts.density, opts.asURL)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.top, "top", 0, "Top inset in pixels")
	f.IntVar(&opts.right, "right", 0, "Right inset in pixels")
	f.IntVar(&opts.bottom, "bottom", 0, "Bottom inset in pixels")
	f.IntVar(&opts.left, "left", 0, "Left inset in pixels")
	f.Float64Var(&opts.density, "density", 0, "Display density")
	f.BoolVar(&opts.asURL, "url", false, "Print as a javascript: URL")
	f.StringVar(&opts.watch, "watch", "", "Fixture file to render and watch")
	return cmd
}

// renderScript writes the script for snap. fallbackDensity is used when the
// snapshot carries none.
func renderScript(w io.Writer, snap insets.Snapshot, fallbackDensity float64, asURL bool) error {
	density := snap.Density
	if density <= 0 {
		density = fallbackDensity
	}
	script := webscript.SafeAreaScript(snap.Insets(insets.All).ToDIP(density))
	if asURL {
		script = webscript.JavascriptURL(script)
	}
	_, err := fmt.Fprintln(w, script)
	return err
}

func renderFixture(w io.Writer, path string, opts scriptOptions) error {
	f, err := config.LoadFixture(path)
	if err != nil {
		return err
	}
	last := f.Events[len(f.Events)-1]
	return renderScript(w, last.Snapshot(), opts.density, opts.asURL)
}

// watchScript renders the fixture, then re-renders it on every change until
// ctx is done. The parent directory is watched so editors that replace the
// file on save are handled.
func watchScript(ctx context.Context, w io.Writer, opts scriptOptions) error {
	path, err := filepath.Abs(opts.watch)
	if err != nil {
		return err
	}
	if err := renderFixture(w, path, opts); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}
	logger.Info("watching fixture", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			if err := renderFixture(w, path, opts); err != nil {
				logger.Warn("failed to render fixture", "path", path, "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}
