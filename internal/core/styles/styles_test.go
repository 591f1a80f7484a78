package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeNames(t *testing.T) {
	assert.Equal(t, []string{"gruvbox", "tokyo-night"}, ThemeNames())
}

func TestSetTheme(t *testing.T) {
	p, ok := GetPalette("gruvbox")
	require.True(t, ok)

	SetTheme(p)
	t.Cleanup(func() {
		def, _ := GetPalette(DefaultTheme)
		SetTheme(def)
	})

	assert.Equal(t, p, CurrentPalette)
	assert.Equal(t, p.Error, ErrorStyle.GetForeground())
}

func TestDivider(t *testing.T) {
	assert.Contains(t, Divider(3), "───")
	assert.Contains(t, Divider(0), "─")
}
