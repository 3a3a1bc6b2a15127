package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/quizboard/internal/board"
	"github.com/verte-zerg/quizboard/internal/errors"
	"github.com/verte-zerg/quizboard/internal/model"
)

func wagerCells(cfg model.Configuration) [][2]int {
	var cells [][2]int
	for c, cat := range cfg.Categories {
		for r, q := range cat.Questions {
			if q.WagerSpecial {
				cells = append(cells, [2]int{c, r})
			}
		}
	}
	return cells
}

func TestNewBuilder_DefaultGrid(t *testing.T) {
	cfg := board.NewBuilder("Quiz").Config()

	require.Len(t, cfg.Categories, board.DefaultColumns)
	assert.Equal(t, "Quiz", cfg.Title)
	assert.Equal(t, "Category 5", cfg.Categories[4].Name)
	for _, cat := range cfg.Categories {
		require.Len(t, cat.Questions, board.DefaultRows)
		for r, q := range cat.Questions {
			assert.Equal(t, (r+1)*200, q.Value)
		}
	}
	require.NotNil(t, cfg.Settings)
	assert.True(t, *cfg.Settings.AllowNegativeScores)
	assert.Nil(t, cfg.FinalRound)
	assert.Empty(t, wagerCells(cfg))
}

func TestBuilder_Bounds(t *testing.T) {
	b := board.NewBuilder("Bounds")

	require.NoError(t, b.AddColumn())
	err := b.AddColumn()
	assert.True(t, errors.IsCode(err, errors.CodeCapacity))
	assert.Equal(t, 6, b.Columns())

	require.NoError(t, b.Resize(1, 10))
	assert.True(t, errors.IsCode(b.RemoveColumn(), errors.CodeCapacity))
	assert.True(t, errors.IsCode(b.AddRow(), errors.CodeCapacity))
	assert.Equal(t, 2000, b.Config().Categories[0].Questions[9].Value)

	require.NoError(t, b.Resize(2, 1))
	assert.True(t, errors.IsCode(b.RemoveRow(), errors.CodeCapacity))

	assert.True(t, errors.IsCode(b.Resize(7, 3), errors.CodeCapacity))
	assert.True(t, errors.IsCode(b.Resize(3, 0), errors.CodeCapacity))
}

func TestBuilder_SingleWagerSpecial(t *testing.T) {
	b := board.NewBuilder("Wager")

	require.NoError(t, b.SetQuestion(0, 0, model.Question{Value: 200, Question: "a", Answer: "b", WagerSpecial: true}))
	require.NoError(t, b.SetWagerSpecial(2, 3))
	assert.Equal(t, [][2]int{{2, 3}}, wagerCells(b.Config()))

	require.NoError(t, b.SetQuestion(2, 3, model.Question{Value: 800, Question: "c", Answer: "d"}))
	assert.Empty(t, wagerCells(b.Config()))

	assert.True(t, errors.IsCode(b.SetWagerSpecial(9, 0), errors.CodeNotFound))
}

func TestBuilder_RemovingWagerCellClearsFlag(t *testing.T) {
	b := board.NewBuilder("Clear")

	require.NoError(t, b.SetWagerSpecial(4, 0))
	require.NoError(t, b.RemoveColumn())
	_, _, ok := b.WagerSpecial()
	assert.False(t, ok)

	require.NoError(t, b.SetWagerSpecial(0, 4))
	require.NoError(t, b.RemoveRow())
	_, _, ok = b.WagerSpecial()
	assert.False(t, ok)

	require.NoError(t, b.SetWagerSpecial(0, 0))
	require.NoError(t, b.RemoveRow())
	col, row, ok := b.WagerSpecial()
	assert.True(t, ok)
	assert.Equal(t, [2]int{0, 0}, [2]int{col, row})
}

func TestBuilder_PlaceRandomWagerSpecialIsSeeded(t *testing.T) {
	a := board.NewBuilder("A", board.WithSeed(42))
	b := board.NewBuilder("B", board.WithSeed(42))

	ac, ar := a.PlaceRandomWagerSpecial()
	bc, br := b.PlaceRandomWagerSpecial()

	assert.Equal(t, ac, bc)
	assert.Equal(t, ar, br)
	assert.Len(t, wagerCells(a.Config()), 1)
}

func TestBuilder_Edits(t *testing.T) {
	b := board.NewBuilder("Edits")

	require.NoError(t, b.SetCategoryName(1, "  History "))
	assert.True(t, errors.IsCode(b.SetCategoryName(1, "  "), errors.CodeValidation))
	assert.True(t, errors.IsCode(b.SetCategoryName(8, "x"), errors.CodeNotFound))
	require.NoError(t, b.SetQuestion(1, 0, model.Question{Value: 0, Question: " Who? ", Answer: " Me "}))
	b.SetFinalRound(&model.FinalRound{Question: "Final?", Answer: "Done"})

	cfg := b.Config()
	assert.Equal(t, "History", cfg.Categories[1].Name)
	assert.Equal(t, model.Question{Value: board.DefaultQuestionValue, Question: "Who?", Answer: "Me"}, cfg.Categories[1].Questions[0])
	assert.Equal(t, &model.FinalRound{Category: board.DefaultFinalCategory, Question: "Final?", Answer: "Done"}, cfg.FinalRound)

	cfg.Categories[1].Name = "mutated"
	assert.Equal(t, "History", b.Config().Categories[1].Name)

	b.SetFinalRound(nil)
	assert.Nil(t, b.Config().FinalRound)
}

func TestBuilder_ConfigValidates(t *testing.T) {
	cfg := board.NewBuilder("Valid", board.WithSeed(1)).Config()

	data, err := board.Export(cfg, board.FormatJSON)
	require.NoError(t, err)
	res, err := board.Parse(data, "valid.json")

	require.NoError(t, err)
	assert.Equal(t, cfg, res.Config)
}

func TestBuilder_SetTheme(t *testing.T) {
	custom := &model.Theme{BoardColor: "#000000", QuestionColor: "#111111", TextColor: "#ffffff", AccentColor: "#abcdef"}

	tests := map[string]struct {
		theme    *model.Theme
		want     *model.Theme
		wantCode errors.Code
	}{
		"preset":         {theme: &model.Theme{Preset: "ocean", AccentColor: "#000000"}, want: &model.Theme{Preset: "ocean"}},
		"custom":         {theme: custom, want: custom},
		"unknown preset": {theme: &model.Theme{Preset: "plaid"}, wantCode: errors.CodeValidation},
		"missing colour": {theme: &model.Theme{BoardColor: "#000000"}, wantCode: errors.CodeValidation},
		"bad hex colour": {theme: &model.Theme{BoardColor: "navy", QuestionColor: "#111111", TextColor: "#ffffff", AccentColor: "#abcdef"}, wantCode: errors.CodeValidation},
		"nil clears":     {theme: nil, want: nil},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			b := board.NewBuilder("Themed")
			require.NoError(t, b.SetTheme(&model.Theme{Preset: "royal"}))

			err := b.SetTheme(tc.theme)

			if tc.wantCode != "" {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, tc.wantCode))
				assert.Equal(t, &model.Theme{Preset: "royal"}, b.Config().Theme, "rejected theme leaves the old one")
				return
			}
			require.NoError(t, err)
			cfg := b.Config()
			assert.Equal(t, tc.want, cfg.Theme)

			data, err := board.Export(cfg, board.FormatYAML)
			require.NoError(t, err)
			res, err := board.Parse(data, "themed.yaml")
			require.NoError(t, err)
			assert.Equal(t, cfg.Theme, res.Config.Theme)
		})
	}
}
