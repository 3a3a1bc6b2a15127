// Package board reads, repairs, writes and builds trivia board configurations.
package board

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"

	"github.com/verte-zerg/quizboard/internal/errors"
	"github.com/verte-zerg/quizboard/internal/game"
	"github.com/verte-zerg/quizboard/internal/model"
)

const (
	MinCategories = 1
	MaxCategories = 6

	// DefaultFinalCategory names a final round that has no category.
	DefaultFinalCategory = "Final Round"
)

var (
	hexColor     = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	imagePattern = regexp.MustCompile(`(?i)^(https?://|data:image/)`)
	themeColors  = []string{"boardColor", "questionColor", "textColor", "accentColor", "backgroundColor"}
)

// Result is a repaired configuration and the repairs made to it.
type Result struct {
	Config   model.Configuration
	Warnings []string
}

type validator struct {
	warnings []string
	failures []string
}

func (v *validator) warnf(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

// Validate turns a loosely typed board into a Configuration. Everything but a
// missing or oversized category list is repaired and reported as a warning.
func Validate(raw map[string]any) (Result, error) {
	v := &validator{}
	cfg := model.Configuration{}

	if title, ok := raw["title"].(string); ok && title != "" {
		cfg.Title = title
	} else {
		cfg.Title = game.DefaultTitle
		v.warnf("No title provided, using %q", game.DefaultTitle)
	}

	categories, ok := asList(raw["categories"])
	switch {
	case !ok:
		v.failures = append(v.failures, `missing or invalid "categories" list`)
	case len(categories) < MinCategories:
		v.failures = append(v.failures, fmt.Sprintf("must have at least %d category", MinCategories))
	case len(categories) > MaxCategories:
		v.failures = append(v.failures, fmt.Sprintf("cannot have more than %d categories", MaxCategories))
	}
	if len(v.failures) > 0 {
		return Result{}, errors.Validation("invalid board", v.failures)
	}

	cfg.Categories = make([]model.Category, 0, len(categories))
	for i, item := range categories {
		cfg.Categories = append(cfg.Categories, v.category(i, item))
	}

	if settings, ok := raw["settings"]; ok && settings != nil {
		cfg.Settings = v.settings(settings)
	}

	final, ok := raw["finalRound"]
	if !ok || final == nil {
		final, ok = raw["finalJeopardy"]
	}
	if ok && final != nil {
		cfg.FinalRound = v.finalRound(final)
	}

	if theme, ok := raw["theme"]; ok && theme != nil {
		cfg.Theme = v.theme(theme)
	}

	return Result{Config: cfg, Warnings: v.warnings}, nil
}

func (v *validator) category(i int, item any) model.Category {
	m, ok := asMap(item)
	if !ok {
		v.warnf("Category %d: not an object, using an empty category", i+1)
	}

	cat := model.Category{}
	if name, ok := m["name"].(string); ok && name != "" {
		cat.Name = name
	} else {
		cat.Name = fmt.Sprintf("Category %d", i+1)
		v.warnf("Category %d: No name provided, using default", i+1)
	}

	questions, ok := asList(m["questions"])
	if !ok {
		v.warnf("Category %d: No questions list, creating empty list", i+1)
	}
	cat.Questions = make([]model.Question, 0, len(questions))
	for j, q := range questions {
		cat.Questions = append(cat.Questions, v.question(i, j, q))
	}
	return cat
}

func (v *validator) question(i, j int, item any) model.Question {
	m, ok := asMap(item)
	if !ok {
		v.warnf("Category %d, Question %d: not an object, using an empty question", i+1, j+1)
	}

	q := model.Question{
		Question: text(m["question"]),
		Answer:   text(m["answer"]),
	}

	if n, ok := number(m["value"]); ok {
		q.Value = n
	} else {
		q.Value = (j + 1) * 200
		v.warnf("Category %d, Question %d: No value provided, using %d", i+1, j+1, q.Value)
	}

	flag, ok := m["wagerSpecial"]
	if !ok {
		flag = m["dailyDouble"]
	}
	q.WagerSpecial = truthy(flag)

	if img, ok := m["image"]; ok && img != nil {
		s := text(img)
		if imagePattern.MatchString(s) {
			q.Image = s
		} else {
			v.warnf("Category %d, Question %d: Image URL should start with http://, https://, or data:image/, ignoring", i+1, j+1)
		}
	}
	return q
}

func (v *validator) settings(raw any) *model.BoardSettings {
	m, ok := asMap(raw)
	if !ok {
		v.warnf("Settings: not an object, ignoring")
		return nil
	}

	clean := make(map[string]any, len(m))
	for k, val := range m {
		clean[k] = val
	}
	if pv, ok := clean["pointValues"]; ok {
		if _, isList := asList(pv); !isList {
			delete(clean, "pointValues")
			v.warnf(`Settings: "pointValues" was invalid, removed`)
		}
	}
	if ts, ok := clean["timerSeconds"]; ok {
		if _, isNum := number(ts); !isNum {
			delete(clean, "timerSeconds")
			v.warnf(`Settings: "timerSeconds" was invalid, removed`)
		}
	}

	var out model.BoardSettings
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		v.warnf("Settings: %v, ignoring", err)
		return nil
	}
	if err := dec.Decode(clean); err != nil {
		v.warnf("Settings: %v, ignoring", err)
		return nil
	}
	return &out
}

func (v *validator) finalRound(raw any) *model.FinalRound {
	m, ok := asMap(raw)
	if !ok {
		v.warnf("Final round: not an object, using an empty final round")
	}
	fr := &model.FinalRound{
		Question: text(m["question"]),
		Answer:   text(m["answer"]),
	}
	if cat, ok := m["category"].(string); ok && cat != "" {
		fr.Category = cat
	} else {
		fr.Category = DefaultFinalCategory
		v.warnf("Final round: No category provided, using default")
	}
	return fr
}

func (v *validator) theme(raw any) *model.Theme {
	if name, ok := raw.(string); ok {
		if _, known := Preset(name); !known {
			v.warnf("Theme: unknown preset %q, ignoring", name)
			return nil
		}
		return &model.Theme{Preset: name}
	}

	m, ok := asMap(raw)
	if !ok {
		v.warnf("Theme: Invalid format, ignoring")
		return nil
	}

	t := &model.Theme{}
	if name, ok := m["preset"].(string); ok && name != "" {
		if _, known := Preset(name); known {
			t.Preset = name
		} else {
			v.warnf("Theme: unknown preset %q, ignoring", name)
		}
	}
	for _, field := range themeColors {
		val, ok := m[field]
		if !ok || val == nil {
			continue
		}
		s, isString := val.(string)
		if !isString || !hexColor.MatchString(s) {
			v.warnf("Theme: %q has invalid hex color format, ignoring", field)
			continue
		}
		setThemeColor(t, field, s)
	}
	if *t == (model.Theme{}) {
		return nil
	}
	return t
}

func setThemeColor(t *model.Theme, field, value string) {
	switch field {
	case "boardColor":
		t.BoardColor = value
	case "questionColor":
		t.QuestionColor = value
	case "textColor":
		t.TextColor = value
	case "accentColor":
		t.AccentColor = value
	case "backgroundColor":
		t.BackgroundColor = value
	}
}

// asMap accepts the map shapes produced by the JSON, YAML and TOML decoders.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[cast.ToString(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// asList accepts []any and the []map[string]any that TOML uses for arrays of tables.
func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out, true
	default:
		return nil, false
	}
}

func number(v any) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return int(f), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return cast.ToInt(n), true
	default:
		return 0, false
	}
}

func text(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return cast.ToString(v)
}

func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		return b != ""
	case json.Number:
		f, err := b.Float64()
		return err != nil || f != 0
	default:
		if _, ok := number(b); ok {
			return cast.ToFloat64(b) != 0
		}
		return true
	}
}
