package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// currentTheme holds the currently configured theme for TUI components.
// When nil, currentThemeOrDefault() returns the default verupTheme.
var currentTheme *huh.Theme

// SetTheme sets the current theme by name.
// If the name is invalid or empty, the verup theme is used.
func SetTheme(name string) {
	currentTheme = GetTheme(name)
}

// currentThemeOrDefault returns the current theme for TUI components.
func currentThemeOrDefault() *huh.Theme {
	if currentTheme == nil {
		return verupTheme()
	}
	return currentTheme
}

// verupTheme is huh's base theme with a rounded focus border and padded buttons.
func verupTheme() *huh.Theme {
	t := huh.ThemeBase()

	accent := lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#22D3EE"}
	muted := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

	t.Focused.Base = t.Focused.Base.BorderStyle(lipgloss.RoundedBorder()).BorderForeground(accent)
	t.Focused.Title = t.Focused.Title.Foreground(accent).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Bold(true).Padding(0, 1).Background(accent)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Padding(0, 1).Foreground(muted)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())

	return t
}
