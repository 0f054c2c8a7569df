package platform

import (
	"sync"

	"github.com/go-drift/safearea/pkg/errors"
)

var (
	dispatchMu   sync.RWMutex
	dispatchFunc func(callback func())
)

// RegisterDispatch installs the function that runs callbacks on the UI
// thread. The host registers it once while wiring the bridge; nil removes it.
func RegisterDispatch(fn func(callback func())) {
	dispatchMu.Lock()
	dispatchFunc = fn
	dispatchMu.Unlock()
}

// Dispatch schedules callback on the UI thread. It returns
// ErrDispatchUnavailable when no dispatcher is registered and
// ErrNilCallback when callback is nil.
func Dispatch(callback func()) error {
	if callback == nil {
		return ErrNilCallback
	}
	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()
	if fn == nil {
		return ErrDispatchUnavailable
	}
	fn(callback)
	return nil
}

// Scheduler runs work on the UI thread, or says why it cannot.
// Dispatch is the bridge's Scheduler.
type Scheduler func(fn func()) error

// RunGuarded schedules fn through schedule and runs it under Guard. A
// scheduler that refuses the work is reported as a dispatch error for op.
// Either way the caller continues.
func RunGuarded(op string, schedule Scheduler, fn func() error) {
	if schedule == nil {
		schedule = Dispatch
	}
	if err := schedule(func() { Guard(op, fn) }); err != nil {
		errors.Report(&errors.PluginError{
			Op:   op,
			Kind: errors.KindDispatch,
			Err:  err,
		})
	}
}

// Guard runs fn and reports a returned error or a panic under op instead of
// propagating it.
func Guard(op string, fn func() error) {
	defer errors.Recover(op)
	if err := fn(); err != nil {
		errors.Report(&errors.PluginError{
			Op:   op,
			Kind: errors.KindPlatform,
			Err:  err,
		})
	}
}
