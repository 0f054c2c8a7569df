package insets

import (
	"github.com/go-drift/safearea/pkg/errors"
	"github.com/go-drift/safearea/pkg/platform"
)

// Snapshot is one inset report from the host window.
// The zero value has no insets and density 0.
type Snapshot struct {
	// Density is the display scale factor (physical pixels per density-independent pixel).
	Density float64
	byType  map[Type]Insets
}

// NewSnapshot returns an empty snapshot with the given density.
func NewSnapshot(density float64) Snapshot {
	return Snapshot{Density: density}
}

// With returns a copy of s with the insets of category t replaced.
// t should name a single category; combined masks are split across each bit.
func (s Snapshot) With(t Type, in Insets) Snapshot {
	next := Snapshot{Density: s.Density, byType: make(map[Type]Insets, len(s.byType)+1)}
	for k, v := range s.byType {
		next.byType[k] = v
	}
	for _, tn := range typeNames {
		if t&tn.t != 0 {
			next.byType[tn.t] = in
		}
	}
	return next
}

// Insets returns the union of the insets of every category in mask.
func (s Snapshot) Insets(mask Type) Insets {
	var out Insets
	for t, in := range s.byType {
		if mask&t != 0 {
			out = out.Max(in)
		}
	}
	return out
}

// Types returns the categories that contributed a non-zero inset.
func (s Snapshot) Types() Type {
	var t Type
	for k, in := range s.byType {
		if !in.IsZero() {
			t |= k
		}
	}
	return t
}

// Parse decodes the payload of an inset notification:
//
//	{"density": 2.75, "systemBars": {"top": 63, ...}, "displayCutout": {...}, "ime": {...}}
//
// Missing categories and sides are zero. A missing density is left at 0 so the
// caller can substitute the host's value.
func Parse(data any) (Snapshot, error) {
	m := platform.ParseMap(data)
	if m == nil {
		return Snapshot{}, &errors.ParseError{DataType: "insets.Snapshot", Got: data}
	}

	s := Snapshot{byType: make(map[Type]Insets, len(typeNames))}
	if d, ok := platform.ToFloat64(m["density"]); ok {
		s.Density = d
	}
	for _, tn := range typeNames {
		raw, present := m[tn.name]
		if !present || raw == nil {
			continue
		}
		side := platform.ParseMap(raw)
		if side == nil {
			return Snapshot{}, &errors.ParseError{DataType: "insets.Insets", Got: raw}
		}
		s.byType[tn.t] = parseInsets(side)
	}
	return s, nil
}

func parseInsets(m map[string]any) Insets {
	var in Insets
	in.Top, _ = platform.ToInt(m["top"])
	in.Right, _ = platform.ToInt(m["right"])
	in.Bottom, _ = platform.ToInt(m["bottom"])
	in.Left, _ = platform.ToInt(m["left"])
	return in
}
