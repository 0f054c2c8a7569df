package safearea

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeModeIsLight(t *testing.T) {
	tests := []struct {
		mode       ThemeMode
		systemDark bool
		want       bool
	}{
		{ThemeLight, false, true},
		{ThemeLight, true, true},
		{ThemeDark, false, false},
		{ThemeDark, true, false},
		{ThemeAuto, false, true},
		{ThemeAuto, true, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.mode.IsLight(tt.systemDark), "%s.IsLight(%v)", tt.mode, tt.systemDark)
	}
}

func TestParseThemeMode(t *testing.T) {
	m, err := ParseThemeMode("auto")
	require.NoError(t, err)
	assert.Equal(t, ThemeAuto, m)

	_, err = ParseThemeMode("sepia")
	assert.Error(t, err)
}
