package errors

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type testHandler struct {
	onError func(*PluginError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *PluginError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}

func TestPluginErrorWithChannel(t *testing.T) {
	err := &PluginError{
		Op:      "safearea.OnInsets",
		Kind:    KindParsing,
		Channel: "drift/safe_area/insets",
		Err:     &ParseError{Channel: "drift/safe_area/insets", DataType: "Snapshot", Got: 3},
	}
	got := err.Error()
	want := "channel=drift/safe_area/insets"
	if !strings.Contains(got, want) {
		t.Errorf("error string %q should contain %q", got, want)
	}
}

func TestPluginErrorUnwrap(t *testing.T) {
	base := stderrors.New("controller missing")
	err := &PluginError{Op: "safearea.appearance", Kind: KindPlatform, Err: base}
	if !stderrors.Is(err, base) {
		t.Error("expected errors.Is to find the wrapped error")
	}
	if got, want := err.Error(), "safearea.appearance [platform]: controller missing"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindPlatform, "platform"},
		{KindParsing, "parsing"},
		{KindInit, "init"},
		{KindDispatch, "dispatch"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "boom", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: boom"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
	err.Op = "safearea.applyInsets"
	if got, want := err.Error(), "panic in safearea.applyInsets: boom"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestParseErrorString(t *testing.T) {
	err := &ParseError{DataType: "Snapshot", Got: 123}
	if got, want := err.Error(), "failed to parse Snapshot: got int"; got != want {
		t.Errorf("ParseError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var captured *PluginError
	handler := &testHandler{onError: func(err *PluginError) { captured = err }}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	Report(&PluginError{Op: "test.op", Kind: KindInit, Err: stderrors.New("x")})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportNil(t *testing.T) {
	called := false
	oldHandler := DefaultHandler
	SetHandler(&testHandler{onError: func(*PluginError) { called = true }})
	defer SetHandler(oldHandler)

	Report(nil)
	if called {
		t.Error("Report(nil) should not reach the handler")
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	oldHandler := DefaultHandler
	SetHandler(&testHandler{onPanic: func(err *PanicError) { captured = err }})
	defer SetHandler(oldHandler)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", captured.Value, "intentional test panic")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerNil(t *testing.T) {
	SetHandler(nil)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	h.HandleError(&PluginError{
		Op:      "safearea.applyInsets",
		Kind:    KindPlatform,
		Channel: "drift/safe_area/window",
		Err:     stderrors.New("view detached"),
	})
	h.HandlePanic(&PanicError{Op: "safearea.appearance", Value: "nil controller"})

	out := buf.String()
	for _, want := range []string{
		"op=safearea.applyInsets",
		"kind=platform",
		"channel=drift/safe_area/window",
		`error="view detached"`,
		`value="nil controller"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q should contain %q", out, want)
		}
	}
}

func TestSetHandlerReturnsPrevious(t *testing.T) {
	rec := &Recorder{}
	prev := SetHandler(rec)
	defer SetHandler(prev)

	if got := SetHandler(rec); got != rec {
		t.Errorf("SetHandler returned %T, want the installed recorder", got)
	}
}

func TestReportFillsStackTrace(t *testing.T) {
	rec := &Recorder{}
	defer SetHandler(SetHandler(rec))

	Report(&PluginError{Op: "safearea.applyInsets", Kind: KindPlatform, Err: stderrors.New("x")})

	errs := rec.Errors()
	if len(errs) != 1 {
		t.Fatalf("recorded %d errors, want 1", len(errs))
	}
	if !strings.Contains(errs[0].StackTrace, "TestReportFillsStackTrace") {
		t.Errorf("stack trace should start at the reporter, got:\n%s", errs[0].StackTrace)
	}
	if strings.Contains(errs[0].StackTrace, "errors.captureStack") {
		t.Error("stack trace should not include the capture helper")
	}
}

func TestRecorderDrain(t *testing.T) {
	rec := &Recorder{}
	defer SetHandler(SetHandler(rec))

	Report(&PluginError{Op: "a", Err: stderrors.New("first")})
	func() {
		defer Recover("b")
		panic("second")
	}()

	if got := len(rec.Panics()); got != 1 {
		t.Fatalf("recorded %d panics, want 1", got)
	}
	drained := rec.Drain()
	if len(drained) != 2 {
		t.Fatalf("Drain returned %d reports, want 2", len(drained))
	}
	if got, want := drained[1].Error(), "panic in b: second"; got != want {
		t.Errorf("drained[1] = %q, want %q", got, want)
	}
	if len(rec.Drain()) != 0 || len(rec.Errors()) != 0 {
		t.Error("Drain should forget what it returned")
	}
}

func TestTee(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	defer SetHandler(SetHandler(Tee{a, b}))

	Report(&PluginError{Op: "safearea.OnInsets", Err: stderrors.New("x")})
	ReportPanic(&PanicError{Op: "safearea.OnInsets", Value: 1})

	for i, r := range []*Recorder{a, b} {
		if len(r.Errors()) != 1 || len(r.Panics()) != 1 {
			t.Errorf("handler %d got %d errors and %d panics, want 1 and 1", i, len(r.Errors()), len(r.Panics()))
		}
	}
}
