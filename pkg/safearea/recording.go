package safearea

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-drift/safearea/pkg/color"
	"github.com/go-drift/safearea/pkg/insets"
)

// Recorded operation names.
const (
	OpSetMargins              = "setMargins"
	OpEvaluateJavascript      = "evaluateJavascript"
	OpSetStatusBarColor       = "setStatusBarColor"
	OpSetNavigationBarColor   = "setNavigationBarColor"
	OpSetSystemBarsAppearance = "setSystemBarsAppearance"
	OpSetSystemUIVisibility   = "setSystemUiVisibility"
	OpRequestApplyInsets      = "requestApplyInsets"
)

// Action is one native mutation captured by a RecordingHost.
type Action struct {
	Op         string
	Margins    insets.Insets
	Script     string
	Color      color.Color
	Appearance Appearance
	Mask       Appearance
	Flags      int
}

func (a Action) String() string {
	switch a.Op {
	case OpSetMargins:
		return fmt.Sprintf("%s(%s)", a.Op, a.Margins)
	case OpEvaluateJavascript:
		return fmt.Sprintf("%s(%d bytes)", a.Op, len(a.Script))
	case OpSetStatusBarColor, OpSetNavigationBarColor:
		return fmt.Sprintf("%s(%s)", a.Op, a.Color)
	case OpSetSystemBarsAppearance:
		return fmt.Sprintf("%s(appearance=%#x, mask=%#x)", a.Op, int(a.Appearance), int(a.Mask))
	case OpSetSystemUIVisibility:
		return fmt.Sprintf("%s(%#x)", a.Op, a.Flags)
	default:
		return a.Op + "()"
	}
}

// RecordingHost is an in-memory Host that records every native mutation in
// order. It backs tests and the CLI simulator.
//
// UI work runs synchronously unless Deferred is set, in which case it queues
// until Flush.
type RecordingHost struct {
	// DensityValue is returned by Density. Zero means 1.
	DensityValue float64
	// NoController makes InsetsController return nil.
	NoController bool
	// Visibility is the current legacy visibility flag set.
	Visibility int
	// Failures maps an operation name to the error it returns.
	Failures map[string]error
	// Deferred queues UI work until Flush.
	Deferred bool
	// RejectDispatch makes RunOnUIThread refuse work.
	RejectDispatch bool

	mu      sync.Mutex
	actions []Action
	queue   []func()
}

// RunOnUIThread implements Host.
func (h *RecordingHost) RunOnUIThread(fn func()) error {
	if h.RejectDispatch {
		return ErrDispatchRejected
	}
	if h.Deferred {
		h.mu.Lock()
		h.queue = append(h.queue, fn)
		h.mu.Unlock()
		return nil
	}
	fn()
	return nil
}

// Flush runs queued UI work in order.
func (h *RecordingHost) Flush() {
	for {
		h.mu.Lock()
		if len(h.queue) == 0 {
			h.mu.Unlock()
			return
		}
		fn := h.queue[0]
		h.queue = h.queue[1:]
		h.mu.Unlock()
		fn()
	}
}

// Density implements Host.
func (h *RecordingHost) Density() float64 {
	if h.DensityValue <= 0 {
		return 1
	}
	return h.DensityValue
}

// Window implements Host.
func (h *RecordingHost) Window() Window { return recordingWindow{h} }

// WebView implements Host.
func (h *RecordingHost) WebView() WebView { return recordingWebView{h} }

// Actions returns a copy of the recorded actions.
func (h *RecordingHost) Actions() []Action {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Action, len(h.actions))
	copy(out, h.actions)
	return out
}

// Ops returns the recorded operation names.
func (h *RecordingHost) Ops() []string {
	actions := h.Actions()
	ops := make([]string, len(actions))
	for i, a := range actions {
		ops[i] = a.Op
	}
	return ops
}

// Last returns the most recent action with the given op.
func (h *RecordingHost) Last(op string) (Action, bool) {
	actions := h.Actions()
	for i := len(actions) - 1; i >= 0; i-- {
		if actions[i].Op == op {
			return actions[i], true
		}
	}
	return Action{}, false
}

// Reset forgets recorded actions.
func (h *RecordingHost) Reset() {
	h.mu.Lock()
	h.actions = nil
	h.mu.Unlock()
}

// String renders the recorded actions one per line.
func (h *RecordingHost) String() string {
	var sb strings.Builder
	for _, a := range h.Actions() {
		sb.WriteString(a.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (h *RecordingHost) record(a Action) error {
	if err := h.Failures[a.Op]; err != nil {
		return err
	}
	h.mu.Lock()
	h.actions = append(h.actions, a)
	if a.Op == OpSetSystemUIVisibility {
		h.Visibility = a.Flags
	}
	h.mu.Unlock()
	return nil
}

type recordingWindow struct{ h *RecordingHost }

func (w recordingWindow) InsetsController() (InsetsController, error) {
	if w.h.NoController {
		return nil, nil
	}
	return recordingController(w), nil
}

func (w recordingWindow) SetStatusBarColor(c color.Color) error {
	return w.h.record(Action{Op: OpSetStatusBarColor, Color: c})
}

func (w recordingWindow) SetNavigationBarColor(c color.Color) error {
	return w.h.record(Action{Op: OpSetNavigationBarColor, Color: c})
}

func (w recordingWindow) SystemUIVisibility() (int, error) {
	w.h.mu.Lock()
	defer w.h.mu.Unlock()
	return w.h.Visibility, nil
}

func (w recordingWindow) SetSystemUIVisibility(flags int) error {
	return w.h.record(Action{Op: OpSetSystemUIVisibility, Flags: flags})
}

func (w recordingWindow) RequestApplyInsets() error {
	return w.h.record(Action{Op: OpRequestApplyInsets})
}

type recordingController struct{ h *RecordingHost }

func (c recordingController) SetSystemBarsAppearance(appearance, mask Appearance) error {
	return c.h.record(Action{Op: OpSetSystemBarsAppearance, Appearance: appearance, Mask: mask})
}

type recordingWebView struct{ h *RecordingHost }

func (v recordingWebView) SetMargins(m insets.Insets) error {
	return v.h.record(Action{Op: OpSetMargins, Margins: m})
}

func (v recordingWebView) EvaluateJavascript(script string) error {
	return v.h.record(Action{Op: OpEvaluateJavascript, Script: script})
}
