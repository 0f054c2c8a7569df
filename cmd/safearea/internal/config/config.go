// Package config resolves the safe area settings of a drift project.
//
// Settings live under the safe_area key of the optional drift.yaml next to the
// project's go.mod. Every field has a default, so a project without drift.yaml
// (or a directory without go.mod) still resolves.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/safearea/pkg/color"
	"github.com/go-drift/safearea/pkg/safearea"
	"github.com/go-drift/safearea/pkg/sdk"
)

// Defaults used when drift.yaml leaves a field empty.
const (
	DefaultPlatform = sdk.Android
	DefaultAPILevel = sdk.VanillaIceCream
	DefaultDensity  = 1.0
)

// Config represents the optional drift.yaml configuration.
type Config struct {
	App      AppConfig      `yaml:"app"`
	SafeArea SafeAreaConfig `yaml:"safe_area"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// SafeAreaConfig contains plugin and simulator settings.
type SafeAreaConfig struct {
	// Platform and APILevel select the simulated host.
	Platform string `yaml:"platform,omitempty"`
	APILevel int    `yaml:"api_level,omitempty"`
	// Density is used when an inset report carries none.
	Density float64 `yaml:"density,omitempty"`
	// AppearanceOnLoad is light, dark or empty (leave the bars alone).
	AppearanceOnLoad string       `yaml:"appearance_on_load,omitempty"`
	Colors           ColorsConfig `yaml:"colors,omitempty"`
	Verbose          bool         `yaml:"verbose,omitempty"`
}

// ColorsConfig overrides the opaque bar colors used on API 33.
type ColorsConfig struct {
	Light BarsConfig `yaml:"light,omitempty"`
	Dark  BarsConfig `yaml:"dark,omitempty"`
}

// BarsConfig holds one appearance's bar colors as #RRGGBB or color names.
type BarsConfig struct {
	StatusBar     string `yaml:"status_bar,omitempty"`
	NavigationBar string `yaml:"navigation_bar,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	AppName    string
	Platform   sdk.Platform
	APILevel   int
	Density    float64
	Palette    color.Palette
	// AppearanceOnLoad is nil when no appearance is applied on load.
	AppearanceOnLoad *bool
	Verbose          bool
}

// Capabilities resolves the simulated host's capabilities.
func (r *Resolved) Capabilities() sdk.Capabilities {
	return sdk.Resolve(r.Platform, r.APILevel)
}

// PluginOptions converts the resolved settings into plugin options.
func (r *Resolved) PluginOptions() []safearea.Option {
	opts := []safearea.Option{safearea.WithPalette(r.Palette)}
	if r.AppearanceOnLoad != nil {
		opts = append(opts, safearea.WithAppearanceOnLoad(*r.AppearanceOnLoad))
	}
	return opts
}

// LoadOptional reads drift.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "drift.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read drift.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse drift.yaml: %w", err)
	}

	return &cfg, nil
}

// Resolve loads drift.yaml (if present) from dir and resolves defaults.
// A missing go.mod is not an error; the module path is then left empty.
func Resolve(dir string) (*Resolved, error) {
	modPath, err := modulePath(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modPath, dir)
	}

	sa := cfg.SafeArea
	res := &Resolved{
		Root:       dir,
		ModulePath: modPath,
		AppName:    appName,
		Platform:   DefaultPlatform,
		APILevel:   DefaultAPILevel,
		Density:    DefaultDensity,
		Verbose:    sa.Verbose,
	}

	if name := strings.TrimSpace(sa.Platform); name != "" {
		if res.Platform, err = sdk.ParsePlatform(name); err != nil {
			return nil, fmt.Errorf("safe_area.platform: %w", err)
		}
	}
	if sa.APILevel < 0 {
		return nil, fmt.Errorf("safe_area.api_level must not be negative (got %d)", sa.APILevel)
	}
	if sa.APILevel > 0 {
		res.APILevel = sa.APILevel
	}
	if sa.Density < 0 {
		return nil, fmt.Errorf("safe_area.density must not be negative (got %v)", sa.Density)
	}
	if sa.Density > 0 {
		res.Density = sa.Density
	}

	switch mode := strings.TrimSpace(sa.AppearanceOnLoad); mode {
	case "":
	case "light", "dark":
		isLight := mode == "light"
		res.AppearanceOnLoad = &isLight
	default:
		return nil, fmt.Errorf("safe_area.appearance_on_load must be light or dark (got %q)", mode)
	}

	if res.Palette, err = resolvePalette(sa.Colors); err != nil {
		return nil, err
	}
	return res, nil
}

func resolvePalette(c ColorsConfig) (color.Palette, error) {
	p := color.DefaultPalette
	fields := []struct {
		key string
		val string
		dst *color.Color
	}{
		{"safe_area.colors.light.status_bar", c.Light.StatusBar, &p.Light.StatusBar},
		{"safe_area.colors.light.navigation_bar", c.Light.NavigationBar, &p.Light.NavigationBar},
		{"safe_area.colors.dark.status_bar", c.Dark.StatusBar, &p.Dark.StatusBar},
		{"safe_area.colors.dark.navigation_bar", c.Dark.NavigationBar, &p.Dark.NavigationBar},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.val) == "" {
			continue
		}
		parsed, err := color.Parse(f.val)
		if err != nil {
			return color.Palette{}, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = parsed
	}
	return p, nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
// It returns the current directory when no go.mod exists above it.
func FindProjectRoot() (string, error) {
	start, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modName, _, ok := module.SplitPathVersion(modulePath); ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "drift_app"
	}
	return base
}
