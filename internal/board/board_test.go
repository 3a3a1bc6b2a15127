package board_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/quizboard/internal/board"
	"github.com/verte-zerg/quizboard/internal/errors"
	"github.com/verte-zerg/quizboard/internal/model"
)

func ptr[T any](v T) *T { return &v }

const jsonBoard = `{
  "title": "Rivers",
  "settings": {"timerSeconds": 20},
  "categories": [
    {"name": "Geo", "questions": [
      {"value": 200, "question": "Longest river?", "answer": "Nile", "wagerSpecial": true}
    ]}
  ],
  "finalRound": {"category": "Seas", "question": "Largest ocean?", "answer": "Pacific"},
  "theme": "ocean"
}`

const yamlBoard = `title: Rivers
settings:
  timerSeconds: 20
categories:
  - name: Geo
    questions:
      - value: 200
        question: Longest river?
        answer: Nile
        wagerSpecial: true
finalRound:
  category: Seas
  question: Largest ocean?
  answer: Pacific
theme: ocean
`

const tomlBoard = `title = "Rivers"
theme = "ocean"

[settings]
timerSeconds = 20

[[categories]]
name = "Geo"

[[categories.questions]]
value = 200
question = "Longest river?"
answer = "Nile"
wagerSpecial = true

[finalRound]
category = "Seas"
question = "Largest ocean?"
answer = "Pacific"
`

func riversBoard() model.Configuration {
	return model.Configuration{
		Title: "Rivers",
		Categories: []model.Category{{
			Name: "Geo",
			Questions: []model.Question{
				{Value: 200, Question: "Longest river?", Answer: "Nile", WagerSpecial: true},
			},
		}},
		Settings:   &model.BoardSettings{TimerSeconds: ptr(20)},
		FinalRound: &model.FinalRound{Category: "Seas", Question: "Largest ocean?", Answer: "Pacific"},
		Theme:      &model.Theme{Preset: "ocean"},
	}
}

func TestParse_Formats(t *testing.T) {
	tests := map[string]struct {
		content  string
		filename string
	}{
		"json by extension": {content: jsonBoard, filename: "rivers.json"},
		"yaml by extension": {content: yamlBoard, filename: "rivers.yaml"},
		"yml by extension":  {content: yamlBoard, filename: "rivers.yml"},
		"toml by extension": {content: tomlBoard, filename: "rivers.toml"},
		"json detected":     {content: jsonBoard, filename: "rivers.txt"},
		"yaml detected":     {content: yamlBoard, filename: "rivers"},
		"toml detected":     {content: tomlBoard, filename: ""},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			res, err := board.Parse([]byte(tc.content), tc.filename)
			require.NoError(t, err)
			assert.Equal(t, riversBoard(), res.Config)
			assert.Empty(t, res.Warnings)
		})
	}
}

func TestParse_InvalidDocument(t *testing.T) {
	_, err := board.Parse([]byte("{not json"), "broken.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")

	_, err = board.Parse([]byte("- just\n- a list\n"), "list.yaml")
	require.Error(t, err)
}

func TestExport_RoundTrip(t *testing.T) {
	b := board.NewBuilder("Round Trip", board.WithSeed(7))
	require.NoError(t, b.Resize(3, 4))
	require.NoError(t, b.SetQuestion(1, 2, model.Question{Value: 750, Question: "What is 6x7?", Answer: "42", Image: "https://example.com/q.png"}))
	require.NoError(t, b.SetCategoryName(0, "Math"))
	b.PlaceRandomWagerSpecial()
	b.SetFinalRound(&model.FinalRound{Question: "Last?", Answer: "Yes"})
	cfg := b.Config()
	cfg.Theme = &model.Theme{BoardColor: "#112233", AccentColor: "#abcdef"}

	for _, f := range []board.Format{board.FormatJSON, board.FormatYAML, board.FormatTOML} {
		t.Run(string(f), func(t *testing.T) {
			data, err := board.Export(cfg, f)
			require.NoError(t, err)

			res, err := board.Parse(data, "export"+f.Extension())
			require.NoError(t, err)
			assert.Equal(t, cfg, res.Config)
			assert.Empty(t, res.Warnings)
		})
	}
}

func TestValidate_Repairs(t *testing.T) {
	raw := map[string]any{
		"categories": []any{
			map[string]any{"questions": []any{
				map[string]any{"question": 42, "answer": nil, "dailyDouble": "yes"},
				map[string]any{"value": json.Number("300"), "question": "Q", "answer": "A", "image": "ftp://example.com/a.png"},
				"garbage",
			}},
			map[string]any{"name": "Named", "questions": "nope"},
		},
		"settings":      map[string]any{"pointValues": "bad", "timerSeconds": "soon", "showAnswers": true},
		"finalJeopardy": map[string]any{"question": "FQ", "answer": 7},
		"theme":         map[string]any{"boardColor": "#123456", "textColor": "red"},
	}

	res, err := board.Validate(raw)
	require.NoError(t, err)

	want := model.Configuration{
		Title: "Untitled Game",
		Categories: []model.Category{
			{Name: "Category 1", Questions: []model.Question{
				{Value: 200, Question: "42", Answer: "", WagerSpecial: true},
				{Value: 300, Question: "Q", Answer: "A"},
				{Value: 600},
			}},
			{Name: "Named", Questions: []model.Question{}},
		},
		Settings:   &model.BoardSettings{ShowAnswers: ptr(true)},
		FinalRound: &model.FinalRound{Category: board.DefaultFinalCategory, Question: "FQ", Answer: "7"},
		Theme:      &model.Theme{BoardColor: "#123456"},
	}
	assert.Equal(t, want, res.Config)
	assert.Len(t, res.Warnings, 11)
	assert.Contains(t, res.Warnings, `No title provided, using "Untitled Game"`)
	assert.Contains(t, res.Warnings, `Settings: "pointValues" was invalid, removed`)
	assert.Contains(t, res.Warnings, `Theme: "textColor" has invalid hex color format, ignoring`)
}

func TestValidate_Theme(t *testing.T) {
	tests := map[string]struct {
		theme any
		want  *model.Theme
		warns int
	}{
		"known preset":        {theme: "neon", want: &model.Theme{Preset: "neon"}},
		"unknown preset":      {theme: "plaid", want: nil, warns: 1},
		"wrong type":          {theme: 12, want: nil, warns: 1},
		"all colours invalid": {theme: map[string]any{"accentColor": "#12"}, want: nil, warns: 1},
		"preset in object":    {theme: map[string]any{"preset": "royal", "accentColor": "#ffffff"}, want: &model.Theme{Preset: "royal", AccentColor: "#ffffff"}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			res, err := board.Validate(map[string]any{
				"title":      "Themed",
				"categories": []any{map[string]any{"name": "A", "questions": []any{}}},
				"theme":      tc.theme,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Config.Theme)
			assert.Len(t, res.Warnings, tc.warns)
		})
	}
}

func TestValidate_HardFailures(t *testing.T) {
	seven := make([]any, 7)
	for i := range seven {
		seven[i] = map[string]any{"name": "c"}
	}

	tests := map[string]struct {
		raw    map[string]any
		detail string
	}{
		"missing categories":  {raw: map[string]any{"title": "x"}, detail: `missing or invalid "categories" list`},
		"categories not list": {raw: map[string]any{"categories": "x"}, detail: `missing or invalid "categories" list`},
		"no categories":       {raw: map[string]any{"categories": []any{}}, detail: "must have at least 1 category"},
		"too many categories": {raw: map[string]any{"categories": seven}, detail: "cannot have more than 6 categories"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := board.Validate(tc.raw)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.CodeValidation))
			assert.Contains(t, err.Error(), tc.detail)
		})
	}
}

func TestValidate_KeepsMultipleWagerFlags(t *testing.T) {
	res, err := board.Validate(map[string]any{
		"categories": []any{map[string]any{"name": "A", "questions": []any{
			map[string]any{"value": 100, "wagerSpecial": true},
			map[string]any{"value": 200, "wagerSpecial": true},
		}}},
	})
	require.NoError(t, err)

	assert.True(t, res.Config.Categories[0].Questions[0].WagerSpecial)
	assert.True(t, res.Config.Categories[0].Questions[1].WagerSpecial)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rivers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlBoard), 0o600))

	res, err := board.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, riversBoard(), res.Config)

	_, err = board.LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := board.ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, board.FormatYAML, f)

	_, err = board.ParseFormat("xml")
	require.Error(t, err)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "quiz-night-2", board.Slug("Quiz Night 2"))
	assert.Equal(t, "board", board.Slug(""))
}
