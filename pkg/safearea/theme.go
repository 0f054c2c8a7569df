package safearea

import "fmt"

// ThemeMode is the app's theme setting.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
	// ThemeAuto follows the system dark mode preference.
	ThemeAuto ThemeMode = "auto"
)

// ParseThemeMode validates a theme name.
func ParseThemeMode(s string) (ThemeMode, error) {
	switch m := ThemeMode(s); m {
	case ThemeLight, ThemeDark, ThemeAuto:
		return m, nil
	default:
		return "", fmt.Errorf("unknown theme %q (use light, dark or auto)", s)
	}
}

// IsLight reports whether the bars should be light for mode, given whether the
// system currently prefers dark mode.
func (m ThemeMode) IsLight(systemDark bool) bool {
	switch m {
	case ThemeDark:
		return false
	case ThemeAuto:
		return !systemDark
	default:
		return true
	}
}
