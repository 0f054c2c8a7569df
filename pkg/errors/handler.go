package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	handlerMu sync.RWMutex
	// DefaultHandler receives every report. It is a LogHandler on slog.Default()
	// until SetHandler replaces it.
	DefaultHandler ErrorHandler = &LogHandler{}
)

// SetHandler installs h and returns the handler it replaced, so tests can
// restore it:
//
//	defer errors.SetHandler(errors.SetHandler(rec))
//
// Passing nil installs a fresh LogHandler.
func SetHandler(h ErrorHandler) ErrorHandler {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	defer handlerMu.Unlock()
	prev := DefaultHandler
	DefaultHandler = h
	return prev
}

func currentHandler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Report hands err to the installed handler. A missing timestamp or stack
// trace is filled in from the reporting call site.
func Report(err *PluginError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if err.StackTrace == "" {
		err.StackTrace = captureStack(3)
	}
	currentHandler().HandleError(err)
}

// ReportPanic hands a recovered panic to the installed handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	currentHandler().HandlePanic(err)
}

// Recover reports a panic in progress as a PanicError for op and stops it.
// It must be deferred directly:
//
//	defer errors.Recover("safearea.applyInsets")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(&PanicError{
			Op:         op,
			Value:      r,
			StackTrace: captureStack(4),
		})
	}
}

// CaptureStack returns the stack of its caller, one frame per entry.
func CaptureStack() string {
	return captureStack(3)
}

// captureStack skips the given number of frames, counted as runtime.Callers does.
func captureStack(skip int) string {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
		if !more {
			return sb.String()
		}
	}
}

// Recorder is an ErrorHandler that keeps every report in memory. The CLI
// uses it to show which platform calls failed during a simulation; tests use
// it to assert on reports.
type Recorder struct {
	mu     sync.Mutex
	errs   []*PluginError
	panics []*PanicError
}

// HandleError implements ErrorHandler.
func (r *Recorder) HandleError(err *PluginError) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
}

// HandlePanic implements ErrorHandler.
func (r *Recorder) HandlePanic(err *PanicError) {
	r.mu.Lock()
	r.panics = append(r.panics, err)
	r.mu.Unlock()
}

// Errors returns the recorded errors in report order.
func (r *Recorder) Errors() []*PluginError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*PluginError(nil), r.errs...)
}

// Panics returns the recorded panics in report order.
func (r *Recorder) Panics() []*PanicError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*PanicError(nil), r.panics...)
}

// Drain returns everything recorded so far as error values and forgets it.
func (r *Recorder) Drain() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]error, 0, len(r.errs)+len(r.panics))
	for _, e := range r.errs {
		out = append(out, e)
	}
	for _, p := range r.panics {
		out = append(out, p)
	}
	r.errs, r.panics = nil, nil
	return out
}

// Tee forwards every report to each handler in order.
type Tee []ErrorHandler

// HandleError implements ErrorHandler.
func (t Tee) HandleError(err *PluginError) {
	for _, h := range t {
		h.HandleError(err)
	}
}

// HandlePanic implements ErrorHandler.
func (t Tee) HandlePanic(err *PanicError) {
	for _, h := range t {
		h.HandlePanic(err)
	}
}
