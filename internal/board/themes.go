package board

import (
	"fmt"

	"github.com/verte-zerg/quizboard/internal/model"
)

// DefaultPreset is applied when a board has no theme.
const DefaultPreset = "classic"

// ThemePreset is a named, built-in colour set.
type ThemePreset struct {
	ID     string
	Name   string
	Colors model.Theme
}

var presets = []ThemePreset{
	{ID: "classic", Name: "Classic Board", Colors: model.Theme{BoardColor: "#060ce9", QuestionColor: "#060ce9", TextColor: "#d69f4c", AccentColor: "#d69f4c", BackgroundColor: "#0f172a"}},
	{ID: "modern", Name: "Modern Dark", Colors: model.Theme{BoardColor: "#1e293b", QuestionColor: "#334155", TextColor: "#f1f5f9", AccentColor: "#3b82f6", BackgroundColor: "#0f172a"}},
	{ID: "neon", Name: "Neon Night", Colors: model.Theme{BoardColor: "#0f172a", QuestionColor: "#1e1b4b", TextColor: "#a78bfa", AccentColor: "#c026d3", BackgroundColor: "#000000"}},
	{ID: "forest", Name: "Forest Green", Colors: model.Theme{BoardColor: "#14532d", QuestionColor: "#166534", TextColor: "#bbf7d0", AccentColor: "#4ade80", BackgroundColor: "#052e16"}},
	{ID: "sunset", Name: "Sunset Orange", Colors: model.Theme{BoardColor: "#7c2d12", QuestionColor: "#9a3412", TextColor: "#fed7aa", AccentColor: "#fb923c", BackgroundColor: "#431407"}},
	{ID: "ocean", Name: "Ocean Blue", Colors: model.Theme{BoardColor: "#0c4a6e", QuestionColor: "#075985", TextColor: "#bae6fd", AccentColor: "#38bdf8", BackgroundColor: "#082f49"}},
	{ID: "royal", Name: "Royal Purple", Colors: model.Theme{BoardColor: "#4c1d95", QuestionColor: "#5b21b6", TextColor: "#e9d5ff", AccentColor: "#a855f7", BackgroundColor: "#2e1065"}},
	{ID: "crimson", Name: "Crimson Red", Colors: model.Theme{BoardColor: "#7f1d1d", QuestionColor: "#991b1b", TextColor: "#fecaca", AccentColor: "#f87171", BackgroundColor: "#450a0a"}},
}

// Presets lists the built-in themes in display order.
func Presets() []ThemePreset {
	out := make([]ThemePreset, len(presets))
	copy(out, presets)
	return out
}

// Preset looks up a built-in theme by id.
func Preset(id string) (ThemePreset, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return ThemePreset{}, false
}

// ValidateCustomTheme requires the board, question, text and accent colours
// to be #RRGGBB values. The background colour is optional.
func ValidateCustomTheme(t model.Theme) error {
	required := []struct {
		name  string
		value string
	}{
		{"boardColor", t.BoardColor},
		{"questionColor", t.QuestionColor},
		{"textColor", t.TextColor},
		{"accentColor", t.AccentColor},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("missing %s", f.name)
		}
		if !hexColor.MatchString(f.value) {
			return fmt.Errorf("invalid hex color for %s: %q", f.name, f.value)
		}
	}
	if t.BackgroundColor != "" && !hexColor.MatchString(t.BackgroundColor) {
		return fmt.Errorf("invalid hex color for backgroundColor: %q", t.BackgroundColor)
	}
	return nil
}

// ResolveTheme returns the effective colours of a board theme. A known preset
// wins; custom colours fill in over the default preset.
func ResolveTheme(t *model.Theme) model.Theme {
	base, _ := Preset(DefaultPreset)
	colors := base.Colors
	if t == nil {
		return colors
	}
	if p, ok := Preset(t.Preset); ok {
		return p.Colors
	}
	if t.BoardColor != "" {
		colors.BoardColor = t.BoardColor
	}
	if t.QuestionColor != "" {
		colors.QuestionColor = t.QuestionColor
	}
	if t.TextColor != "" {
		colors.TextColor = t.TextColor
	}
	if t.AccentColor != "" {
		colors.AccentColor = t.AccentColor
	}
	if t.BackgroundColor != "" {
		colors.BackgroundColor = t.BackgroundColor
	}
	return colors
}
