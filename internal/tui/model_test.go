package tui

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/quizboard/internal/errors"
	"github.com/verte-zerg/quizboard/internal/model"
	"github.com/verte-zerg/quizboard/internal/play"
)

type memStore struct {
	games map[string]*model.Session
}

func (m *memStore) GetAll(context.Context) ([]*model.Session, error) { return nil, nil }

func (m *memStore) Get(_ context.Context, id string) (*model.Session, error) {
	s, ok := m.games[id]
	if !ok {
		return nil, errors.NotFoundf("game %s not found", id)
	}
	return s, nil
}

func (m *memStore) Save(_ context.Context, s *model.Session) error {
	m.games[s.ID] = s
	return nil
}

func (m *memStore) Update(context.Context, *model.Session) error { return nil }

func (m *memStore) Delete(_ context.Context, id string) error {
	delete(m.games, id)
	return nil
}

func newBoardModel(t *testing.T) *Model {
	t.Helper()
	ctl := play.NewController(play.Config{
		Store:  &memStore{games: map[string]*model.Session{}},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	s, err := ctl.Create(context.Background(), model.Configuration{
		Title: "Board",
		Categories: []model.Category{
			{Name: "Rivers", Questions: []model.Question{
				{Value: 200, Question: "Longest river?", Answer: "Nile"},
				{Value: 400, Question: "Deepest river?", Answer: "Congo", WagerSpecial: true},
			}},
			{Name: "Peaks", Questions: []model.Question{
				{Value: 200, Question: "Highest peak?", Answer: "Everest"},
			}},
		},
	}, "Owls", "Foxes")
	require.NoError(t, err)
	return NewModel(ctl, s)
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func TestNavigationClamps(t *testing.T) {
	m := newBoardModel(t)

	press(m, "h", "k")
	assert.Equal(t, 0, m.col)
	assert.Equal(t, 0, m.row)

	press(m, "down", "j", "j")
	assert.Equal(t, 1, m.row)

	press(m, "l", "l")
	assert.Equal(t, 1, m.col)
	assert.Equal(t, 0, m.row, "column with one question clamps the row")
}

func TestAnswerFlow(t *testing.T) {
	m := newBoardModel(t)

	press(m, "enter")
	require.Equal(t, modeQuestion, m.mode)
	assert.Contains(t, m.View(), "Longest river?")
	assert.NotContains(t, m.View(), "Nile")

	press(m, "space")
	assert.Contains(t, m.View(), "Nile")

	press(m, "2", "c")

	assert.Equal(t, modeBoard, m.mode)
	assert.Equal(t, 0, m.session.State.Teams[0].Score)
	assert.Equal(t, 200, m.session.State.Teams[1].Score)
	assert.Equal(t, "Foxes answered correctly (+200)", m.status)
}

func TestAnsweredCellStaysClosed(t *testing.T) {
	m := newBoardModel(t)
	press(m, "enter", "x")

	press(m, "enter")

	assert.Equal(t, modeBoard, m.mode)
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "Already answered")

	press(m, "R")
	assert.Empty(t, m.session.State.AnsweredQuestions)
	assert.Equal(t, -200, m.session.State.Teams[0].Score)
}

func TestWagerFlow(t *testing.T) {
	m := newBoardModel(t)
	press(m, "j", "enter")
	require.Equal(t, modeWager, m.mode)

	m.wagerInput.SetValue("lots")
	press(m, "enter")
	assert.Equal(t, modeWager, m.mode)
	assert.Equal(t, "Enter a whole number.", m.status)

	m.wagerInput.SetValue("401")
	press(m, "enter")
	assert.Equal(t, modeWager, m.mode)
	assert.True(t, m.statusErr)

	m.wagerInput.SetValue("300")
	press(m, "enter")
	require.Equal(t, modeQuestion, m.mode)
	assert.Contains(t, m.View(), "wagering 300")

	press(m, "2", "x")

	assert.Equal(t, modeBoard, m.mode)
	assert.Equal(t, -300, m.session.State.Teams[0].Score, "team is locked once the wager is placed")
}

func TestUndoRedoKeys(t *testing.T) {
	m := newBoardModel(t)

	press(m, "u")
	assert.Equal(t, "Nothing to undo.", m.status)

	press(m, "enter", "c", "u")
	assert.Equal(t, 0, m.session.State.Teams[0].Score)
	assert.Equal(t, "Undid: Owls answered correctly (+200)", m.status)

	press(m, "r")
	assert.Equal(t, 200, m.session.State.Teams[0].Score)
	assert.Equal(t, "Redid: Owls answered correctly (+200)", m.status)

	press(m, "r")
	assert.Equal(t, "Nothing to redo.", m.status)
}

func TestQuitKeys(t *testing.T) {
	m := newBoardModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestRenderFooterFormats(t *testing.T) {
	m := newBoardModel(t)
	press(m, "enter", "c")

	out := m.renderFooter()

	for _, want := range []string{"Progress 33%", "u undo", "Owls answered correctly (+200)"} {
		assert.Contains(t, out, want)
	}
}

func TestViewShowsBoardAndTeams(t *testing.T) {
	m := newBoardModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	view := m.View()

	assert.Contains(t, view, "Board")
	assert.Contains(t, view, "Rivers")
	assert.Contains(t, view, "400")
	assert.Contains(t, view, "> 1 Owls 0")
	assert.Contains(t, view, "2 Foxes 0")
	assert.Equal(t, 24, len(strings.Split(view, "\n")))
}

func TestNewStylesUseThemeColors(t *testing.T) {
	theme := model.Theme{BoardColor: "#000001", QuestionColor: "#000002", TextColor: "#000003", AccentColor: "#000004"}

	st := newStyles(theme)

	assert.Equal(t, lipgloss.Color("#000002"), st.question.GetBackground())
	assert.Equal(t, lipgloss.Color("#000003"), st.question.GetForeground())
	assert.Equal(t, lipgloss.Color("#000001"), st.cell.GetBackground())
}
