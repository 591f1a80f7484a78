// Package styles provides shared lipgloss styles for CLI output.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style

	LabelStyle   lipgloss.Style
	ValueStyle   lipgloss.Style
	MutedStyle   lipgloss.Style
	AddressStyle lipgloss.Style
	AmountStyle  lipgloss.Style

	SuccessStyle lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style

	StateOpenStyle     lipgloss.Style
	StatePartialStyle  lipgloss.Style
	StateResolvedStyle lipgloss.Style
)

// SetTheme rebuilds every exported style from p.
func SetTheme(p Palette) {
	CurrentPalette = p

	CommandHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	DividerStyle = lipgloss.NewStyle().Foreground(p.Surface)

	LabelStyle = lipgloss.NewStyle().Foreground(p.Muted).Width(12)
	ValueStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	MutedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	AddressStyle = lipgloss.NewStyle().Foreground(p.Secondary)
	AmountStyle = lipgloss.NewStyle().Foreground(p.Warning).Bold(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	WarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error).Bold(true)

	StateOpenStyle = lipgloss.NewStyle().Foreground(p.Primary)
	StatePartialStyle = lipgloss.NewStyle().Foreground(p.Warning)
	StateResolvedStyle = lipgloss.NewStyle().Foreground(p.Success)
}

// Divider returns a horizontal rule of the given width.
func Divider(width int) string {
	if width < 1 {
		width = 1
	}
	return DividerStyle.Render(strings.Repeat("─", width))
}

func init() {
	p, _ := GetPalette(DefaultTheme)
	SetTheme(p)
}
