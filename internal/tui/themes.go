package tui

import (
	"slices"

	"github.com/charmbracelet/huh"
)

// themes maps the names accepted by the theme setting to their builders.
var themes = map[string]func() *huh.Theme{
	"verup":      verupTheme,
	"base":       huh.ThemeBase,
	"base16":     huh.ThemeBase16,
	"catppuccin": huh.ThemeCatppuccin,
	"charm":      huh.ThemeCharm,
	"dracula":    huh.ThemeDracula,
}

// ValidThemes lists the accepted theme names, the default first.
var ValidThemes = []string{"verup", "base", "base16", "catppuccin", "charm", "dracula"}

// IsValidTheme reports whether name is an accepted theme name.
func IsValidTheme(name string) bool {
	return slices.Contains(ValidThemes, name)
}

// GetTheme builds the named theme, or returns nil for an unknown name.
func GetTheme(name string) *huh.Theme {
	build, ok := themes[name]
	if !ok {
		return nil
	}
	return build()
}
