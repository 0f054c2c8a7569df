package platform

import "sync"

// BridgeCall is one method call received by a TestBridge.
type BridgeCall struct {
	Channel string
	Method  string
	Args    map[string]any
}

type cannedReply struct {
	result any
	err    error
}

// TestBridge plays the native side in tests. It records every method call
// and stream change, and answers calls from replies registered per channel
// and method. Methods without a reply return null.
type TestBridge struct {
	mu      sync.Mutex
	calls   []BridgeCall
	started []string
	stopped []string
	replies map[string]cannedReply
}

// NewTestBridge returns a bridge with no replies.
func NewTestBridge() *TestBridge {
	return &TestBridge{replies: make(map[string]cannedReply)}
}

func replyKey(channel, method string) string {
	return channel + "#" + method
}

// Reply makes method on channel return result. It replaces any earlier reply.
func (b *TestBridge) Reply(channel, method string, result any) *TestBridge {
	b.mu.Lock()
	b.replies[replyKey(channel, method)] = cannedReply{result: result}
	b.mu.Unlock()
	return b
}

// Fail makes method on channel return err.
func (b *TestBridge) Fail(channel, method string, err error) *TestBridge {
	b.mu.Lock()
	b.replies[replyKey(channel, method)] = cannedReply{err: err}
	b.mu.Unlock()
	return b
}

// InvokeMethod implements NativeBridge. The call is recorded even when its
// reply is an error.
func (b *TestBridge) InvokeMethod(channel, method string, args []byte) ([]byte, error) {
	decoded, err := DefaultCodec.Decode(args)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	b.calls = append(b.calls, BridgeCall{Channel: channel, Method: method, Args: ParseMap(decoded)})
	r := b.replies[replyKey(channel, method)]
	b.mu.Unlock()

	if r.err != nil {
		return nil, r.err
	}
	return DefaultCodec.Encode(r.result)
}

// StartEventStream implements NativeBridge.
func (b *TestBridge) StartEventStream(channel string) error {
	b.mu.Lock()
	b.started = append(b.started, channel)
	b.mu.Unlock()
	return nil
}

// StopEventStream implements NativeBridge.
func (b *TestBridge) StopEventStream(channel string) error {
	b.mu.Lock()
	b.stopped = append(b.stopped, channel)
	b.mu.Unlock()
	return nil
}

// Calls returns the calls received on channel, or on every channel when
// channel is empty, leaving out the methods named in except.
func (b *TestBridge) Calls(channel string, except ...string) []BridgeCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []BridgeCall
	for _, c := range b.calls {
		if channel != "" && c.Channel != channel {
			continue
		}
		skip := false
		for _, m := range except {
			if c.Method == m {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, c)
		}
	}
	return out
}

// Started returns the channels whose streams were started, in order.
func (b *TestBridge) Started() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.started...)
}

// Stopped returns the channels whose streams were stopped, in order.
func (b *TestBridge) Stopped() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.stopped...)
}

// SetupTestBridge installs a fresh TestBridge and a dispatcher that runs UI
// work inline, and registers ResetForTest with cleanup:
//
//	bridge := platform.SetupTestBridge(t.Cleanup)
//	bridge.Reply("drift/safe_area/window", "getDensity", map[string]any{"density": 2})
func SetupTestBridge(cleanup func(func())) *TestBridge {
	bridge := NewTestBridge()
	SetNativeBridge(bridge)
	RegisterDispatch(func(cb func()) { cb() })
	cleanup(ResetForTest)
	return bridge
}

// ResetForTest drops the native bridge, every event subscription and method
// handler, and the dispatcher. Only tests should call it.
func ResetForTest() {
	nativeBridge = nil

	for _, ch := range registry.events() {
		ch.mu.Lock()
		ch.subscriptions = nil
		ch.started = false
		ch.mu.Unlock()
	}

	registry.mu.RLock()
	for _, ch := range registry.methodChannels {
		ch.SetHandler(nil)
	}
	registry.mu.RUnlock()

	RegisterDispatch(nil)
}
