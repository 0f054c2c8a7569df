// Package webscript generates the script that publishes safe area insets to a web page.
//
// The script writes four custom properties on the root element:
//
//	--android-safe-area-top: max(env(safe-area-inset-top), 24px)
//
// so stylesheets can use var(--android-safe-area-top) and still pick up the
// browser's own env() value whenever it is larger.
package webscript

import (
	"fmt"
	"strings"

	"github.com/go-drift/safearea/pkg/insets"
)

// Edge names one side of the viewport.
type Edge string

const (
	Top    Edge = "top"
	Right  Edge = "right"
	Bottom Edge = "bottom"
	Left   Edge = "left"
)

// Edges lists the sides in the order they are written.
var Edges = []Edge{Top, Right, Bottom, Left}

// PropertyPrefix prefixes every custom property written by the script.
const PropertyPrefix = "--android-safe-area-"

// PropertyName returns the custom property for an edge.
func PropertyName(e Edge) string {
	return PropertyPrefix + string(e)
}

// PropertyValue returns the CSS value written for an edge.
func PropertyValue(e Edge, px int) string {
	return fmt.Sprintf("max(env(safe-area-inset-%s), %dpx)", e, px)
}

// Values returns the property values for d keyed by property name.
func Values(d insets.DIP) map[string]string {
	return map[string]string{
		PropertyName(Top):    PropertyValue(Top, d.Top),
		PropertyName(Right):  PropertyValue(Right, d.Right),
		PropertyName(Bottom): PropertyValue(Bottom, d.Bottom),
		PropertyName(Left):   PropertyValue(Left, d.Left),
	}
}

func edgeValue(d insets.DIP, e Edge) int {
	switch e {
	case Top:
		return d.Top
	case Right:
		return d.Right
	case Bottom:
		return d.Bottom
	default:
		return d.Left
	}
}

// SafeAreaScript returns a self-invoking script that sets the custom properties
// for d. It runs immediately when the DOM is ready and otherwise waits for
// DOMContentLoaded.
func SafeAreaScript(d insets.DIP) string {
	var sb strings.Builder
	sb.WriteString("(function() {")
	sb.WriteString("  function setSafeAreaInsets() {")
	sb.WriteString("    var root = document.documentElement || document.querySelector('html');")
	sb.WriteString("    if (root) {")
	for _, e := range Edges {
		fmt.Fprintf(&sb, "      root.style.setProperty('%s', '%s');", PropertyName(e), PropertyValue(e, edgeValue(d, e)))
	}
	fmt.Fprintf(&sb, "      console.log('Safe area insets set: %s');", d)
	sb.WriteString("      return true;")
	sb.WriteString("    }")
	sb.WriteString("    console.error('Could not find document.documentElement or html element');")
	sb.WriteString("    return false;")
	sb.WriteString("  }")
	sb.WriteString("  if (document.readyState === 'loading') {")
	sb.WriteString("    document.addEventListener('DOMContentLoaded', setSafeAreaInsets);")
	sb.WriteString("  } else {")
	sb.WriteString("    setSafeAreaInsets();")
	sb.WriteString("  }")
	sb.WriteString("})();")
	return sb.String()
}

// JavascriptURL wraps a script for hosts that execute scripts by loading a
// javascript: URL.
func JavascriptURL(script string) string {
	return "javascript:" + script
}
