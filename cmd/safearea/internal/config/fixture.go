package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/safearea/pkg/insets"
)

// Fixture is a recorded sequence of inset reports, replayed by the CLI:
//
//	events:
//	  - density: 2.75
//	    system_bars: {top: 63, bottom: 126}
//	    display_cutout: {top: 90}
type Fixture struct {
	Events []FixtureEvent `yaml:"events"`
}

// FixtureEvent is one inset report.
type FixtureEvent struct {
	Density       float64      `yaml:"density,omitempty"`
	SystemBars    *EdgesConfig `yaml:"system_bars,omitempty"`
	DisplayCutout *EdgesConfig `yaml:"display_cutout,omitempty"`
	IME           *EdgesConfig `yaml:"ime,omitempty"`
}

// EdgesConfig holds raw pixel insets.
type EdgesConfig struct {
	Top    int `yaml:"top,omitempty"`
	Right  int `yaml:"right,omitempty"`
	Bottom int `yaml:"bottom,omitempty"`
	Left   int `yaml:"left,omitempty"`
}

func (e *EdgesConfig) insets() insets.Insets {
	return insets.Insets{Top: e.Top, Right: e.Right, Bottom: e.Bottom, Left: e.Left}
}

func (e *EdgesConfig) validate(field string, index int) error {
	if e == nil {
		return nil
	}
	if e.Top < 0 || e.Right < 0 || e.Bottom < 0 || e.Left < 0 {
		return fmt.Errorf("events[%d].%s: insets must not be negative", index, field)
	}
	return nil
}

// Snapshot converts the event into an inset snapshot.
func (e FixtureEvent) Snapshot() insets.Snapshot {
	s := insets.NewSnapshot(e.Density)
	if e.SystemBars != nil {
		s = s.With(insets.SystemBars, e.SystemBars.insets())
	}
	if e.DisplayCutout != nil {
		s = s.With(insets.DisplayCutout, e.DisplayCutout.insets())
	}
	if e.IME != nil {
		s = s.With(insets.IME, e.IME.insets())
	}
	return s
}

// ParseFixture decodes and validates fixture YAML.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if len(f.Events) == 0 {
		return nil, fmt.Errorf("fixture has no events")
	}
	for i, ev := range f.Events {
		if ev.Density < 0 {
			return nil, fmt.Errorf("events[%d].density must not be negative", i)
		}
		if err := ev.SystemBars.validate("system_bars", i); err != nil {
			return nil, err
		}
		if err := ev.DisplayCutout.validate("display_cutout", i); err != nil {
			return nil, err
		}
		if err := ev.IME.validate("ime", i); err != nil {
			return nil, err
		}
	}
	return &f, nil
}

// LoadFixture reads a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return ParseFixture(data)
}

// Payload converts the event into the wire form the window sends on the
// insets channel.
func (e FixtureEvent) Payload() map[string]any {
	p := map[string]any{}
	if e.Density > 0 {
		p["density"] = e.Density
	}
	for key, edges := range map[string]*EdgesConfig{
		"systemBars":    e.SystemBars,
		"displayCutout": e.DisplayCutout,
		"ime":           e.IME,
	} {
		if edges != nil {
			p[key] = map[string]any{"top": edges.Top, "right": edges.Right, "bottom": edges.Bottom, "left": edges.Left}
		}
	}
	return p
}
