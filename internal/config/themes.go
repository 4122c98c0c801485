package config

import (
	"fmt"
	"sort"
)

// ThemePreset represents a named color scheme.
type ThemePreset string

const (
	ThemeClassic ThemePreset = "classic"
	ThemeOcean   ThemePreset = "ocean"
	ThemeMono    ThemePreset = "mono"
)

type theme struct {
	border       string
	foreground   string
	background   string
	gradientStep int
	description  string
}

var themes = map[ThemePreset]theme{
	ThemeClassic: {"█", "#0a6478", "#e62882", 10, "teal walls over a magenta-to-yellow sunset"},
	ThemeOcean:   {"▓", "#f0f0dc", "#003264", 12, "sand walls over deepening sea green"},
	ThemeMono:    {"#", "#c8c8c8", "#202020", 0, "flat grey, no gradient"},
}

// ParseThemePreset validates a theme name.
func ParseThemePreset(name string) (ThemePreset, error) {
	p := ThemePreset(name)
	if _, ok := themes[p]; !ok {
		return "", fmt.Errorf("config: unknown theme %q (available: %v)", name, ThemeNames())
	}
	return p, nil
}

// ThemeNames returns all preset names, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for p := range themes {
		names = append(names, string(p))
	}
	sort.Strings(names)
	return names
}

// ThemeDescription returns a one-line summary of a preset.
func ThemeDescription(preset ThemePreset) string {
	return themes[preset].description
}

// ApplyThemePreset modifies the style section based on a theme preset.
// Geometry and spawn settings are left alone.
func ApplyThemePreset(cfg *WorldConfig, preset ThemePreset) {
	t, ok := themes[preset]
	if !ok {
		return
	}
	cfg.Style.Border = t.border
	cfg.Style.Foreground = t.foreground
	cfg.Style.BaseBackground = t.background
	cfg.Style.GradientStep = t.gradientStep
}
