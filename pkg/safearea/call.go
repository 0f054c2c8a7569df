package safearea

import (
	"sync"

	"github.com/go-drift/safearea/pkg/platform"
)

// Call is one method call from the web app, carrying named arguments.
// It is settled exactly once; later Resolve or Reject calls are ignored.
type Call struct {
	Method string
	args   map[string]any

	mu      sync.Mutex
	settled bool
	result  any
	err     error
}

// NewCall creates a call for method with the decoded argument object.
func NewCall(method string, args any) *Call {
	return &Call{Method: method, args: platform.ParseMap(args)}
}

// GetBool returns the named boolean argument, or def when it is missing or
// not a JSON boolean. Strings such as "true" are not booleans.
func (c *Call) GetBool(name string, def bool) bool {
	if v, ok := c.args[name].(bool); ok {
		return v
	}
	return def
}

// Resolve settles the call successfully.
func (c *Call) Resolve(data any) {
	c.settle(data, nil)
}

// Reject settles the call with an error.
func (c *Call) Reject(err error) {
	c.settle(nil, err)
}

func (c *Call) settle(data any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.settled {
		return
	}
	c.settled = true
	c.result = data
	c.err = err
}

// Settled reports whether Resolve or Reject has been called.
func (c *Call) Settled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settled
}

// Result returns what the call was settled with.
func (c *Call) Result() (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result, c.err
}
