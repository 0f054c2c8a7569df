package safearea

import (
	"testing"

	"github.com/go-drift/safearea/pkg/errors"
)

// captureReports records error reports for the duration of the test.
func captureReports(t *testing.T) *errors.Recorder {
	t.Helper()
	rec := &errors.Recorder{}
	prev := errors.SetHandler(rec)
	t.Cleanup(func() { errors.SetHandler(prev) })
	return rec
}
