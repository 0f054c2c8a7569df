package webscript

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/grafana/sobek"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/safearea/pkg/insets"
)

// fakeDOM is a minimal document/console pair, enough for the injected script.
const fakeDOM = `
var props = {};
var logs = [];
var errors = [];
var listeners = {};
var console = {
  log: function(m) { logs.push(String(m)); },
  error: function(m) { errors.push(String(m)); }
};
var document = {
  readyState: %q,
  documentElement: %s,
  querySelector: function() { return null; },
  addEventListener: function(name, fn) { (listeners[name] = listeners[name] || []).push(fn); }
};
function fire(name) { (listeners[name] || []).forEach(function(fn) { fn(); }); }
`

const rootElement = `{ style: { setProperty: function(k, v) { props[k] = v; } } }`

type page struct {
	t  *testing.T
	vm *sobek.Runtime
}

func newPage(t *testing.T, readyState string, withRoot bool) *page {
	t.Helper()
	root := "null"
	if withRoot {
		root = rootElement
	}
	vm := sobek.New()
	_, err := vm.RunString(fmt.Sprintf(fakeDOM, readyState, root))
	require.NoError(t, err)
	return &page{t: t, vm: vm}
}

func (p *page) run(src string) {
	p.t.Helper()
	_, err := p.vm.RunString(src)
	require.NoError(p.t, err)
}

func (p *page) decode(expr string, v any) {
	p.t.Helper()
	out, err := p.vm.RunString("JSON.stringify(" + expr + ")")
	require.NoError(p.t, err)
	require.NoError(p.t, json.Unmarshal([]byte(out.String()), v))
}

func (p *page) props() map[string]string {
	var m map[string]string
	p.decode("props", &m)
	return m
}

func TestPropertyHelpers(t *testing.T) {
	assert.Equal(t, "--android-safe-area-top", PropertyName(Top))
	assert.Equal(t, "max(env(safe-area-inset-bottom), 10px)", PropertyValue(Bottom, 10))
}

func TestValues(t *testing.T) {
	d := insets.Insets{Top: 10, Bottom: 20}.ToDIP(2.0)
	v := Values(d)
	assert.Equal(t, "max(env(safe-area-inset-top), 5px)", v["--android-safe-area-top"])
	assert.Equal(t, "max(env(safe-area-inset-right), 0px)", v["--android-safe-area-right"])
	assert.Equal(t, "max(env(safe-area-inset-bottom), 10px)", v["--android-safe-area-bottom"])
	assert.Equal(t, "max(env(safe-area-inset-left), 0px)", v["--android-safe-area-left"])
}

func TestScriptSetsPropertiesWhenReady(t *testing.T) {
	d := insets.DIP{Top: 5, Right: 1, Bottom: 10, Left: 2}
	p := newPage(t, "complete", true)
	p.run(SafeAreaScript(d))

	assert.Equal(t, Values(d), p.props())

	var logs []string
	p.decode("logs", &logs)
	require.Len(t, logs, 1)
	assert.Equal(t, "Safe area insets set: top=5, right=1, bottom=10, left=2", logs[0])
}

func TestScriptDefersWhileLoading(t *testing.T) {
	d := insets.DIP{Top: 24, Bottom: 48}
	p := newPage(t, "loading", true)
	p.run(SafeAreaScript(d))

	assert.Empty(t, p.props(), "nothing is written before DOMContentLoaded")

	p.run("fire('DOMContentLoaded')")
	props := p.props()
	assert.Equal(t, "max(env(safe-area-inset-top), 24px)", props["--android-safe-area-top"])
	assert.Equal(t, "max(env(safe-area-inset-bottom), 48px)", props["--android-safe-area-bottom"])
}

func TestScriptWithoutRootElement(t *testing.T) {
	p := newPage(t, "interactive", false)
	p.run(SafeAreaScript(insets.DIP{Top: 1}))

	assert.Empty(t, p.props())
	var errs []string
	p.decode("errors", &errs)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Could not find document.documentElement")
}

func TestJavascriptURL(t *testing.T) {
	url := JavascriptURL(SafeAreaScript(insets.DIP{}))
	assert.True(t, strings.HasPrefix(url, "javascript:(function() {"))
}
