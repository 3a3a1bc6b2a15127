package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/quizboard/internal/board"
	"github.com/verte-zerg/quizboard/internal/game"
	"github.com/verte-zerg/quizboard/internal/history"
	"github.com/verte-zerg/quizboard/internal/model"
)

func newSession(t *testing.T) *model.Session {
	t.Helper()
	s, err := game.NewSession(model.Configuration{
		Title: "Quiz Night",
		Categories: []model.Category{
			{Name: "Rivers", Questions: []model.Question{
				{Value: 200, Question: "Longest river?", Answer: "Nile"},
				{Value: 1000, Question: "Deepest river?", Answer: "Congo", WagerSpecial: true},
			}},
			{Name: "Mountains", Questions: []model.Question{
				{Value: 200, Question: "Highest peak?", Answer: "Everest"},
			}},
		},
		FinalRound: &model.FinalRound{Category: "Capitals", Question: "fq", Answer: "fa"},
	})
	require.NoError(t, err)
	_, err = game.AddTeam(s, "Owls")
	require.NoError(t, err)
	return s
}

func TestFormatTableAlignsColumns(t *testing.T) {
	lines := formatTable(
		[]string{"Team", "Score"},
		[][]string{{"Owls", "1,200"}, {"チーム", "-200"}},
		map[int]bool{1: true},
	)

	assert.Equal(t, []string{
		"Team    Score",
		"Owls    1,200",
		"チーム   -200",
	}, lines)
}

func TestFormatTable_Empty(t *testing.T) {
	assert.Nil(t, formatTable(nil, nil, nil))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Geogra...", truncate("Geography of Europe", 9))
}

func TestPoints(t *testing.T) {
	tests := map[string]struct {
		got  string
		want string
	}{
		"zero":           {got: Points(0), want: "0"},
		"thousands":      {got: Points(1200), want: "1,200"},
		"negative":       {got: Points(-1500), want: "-1,500"},
		"signed gain":    {got: SignedPoints(200), want: "+200"},
		"signed loss":    {got: SignedPoints(-5), want: "-5"},
		"signed zero":    {got: SignedPoints(0), want: "0"},
		"signed grouped": {got: SignedPoints(12000), want: "+12,000"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.got)
		})
	}
}

func TestAnsiColor(t *testing.T) {
	assert.Equal(t, "\x1b[38;2;255;128;0m", ansiColor("#ff8000"))
	assert.Empty(t, ansiColor("ff8000"))
	assert.Empty(t, ansiColor("#gg0000"))
	assert.Equal(t, "x", colorize("x", "#ff8000", false))
}

func TestScoreboard(t *testing.T) {
	s := newSession(t)
	require.NoError(t, game.UpdateScore(s, s.State.Teams[1].ID, 1200))
	require.NoError(t, game.UpdateScore(s, s.State.Teams[0].ID, -200))
	game.MarkAnswered(s, 0, 0)

	var buf bytes.Buffer
	require.NoError(t, Scoreboard(&buf, s, false))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, "Quiz Night  [in-progress]  1/3 answered (33%)", lines[0])
	assert.Equal(t, "#  Team    Score", lines[2])
	assert.Equal(t, "1  Owls    1,200", lines[3])
	assert.Equal(t, "2  Team 1   -200", lines[4])
	assert.Equal(t, "Final round: opens when the board is cleared", lines[len(lines)-1])
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestFinalRoundLine(t *testing.T) {
	s := newSession(t)
	for _, id := range []struct{ c, q int }{{0, 0}, {0, 1}, {1, 0}} {
		game.MarkAnswered(s, id.c, id.q)
	}
	require.NoError(t, game.SetFinalWager(s, s.State.Teams[0].ID, 0))

	assert.Equal(t, "Final round: 1/2 wagers, 0/2 judged", finalRoundLine(s))

	game.CompleteFinalRound(s)
	assert.Equal(t, "Final round: complete", finalRoundLine(s))
}

func TestBoard(t *testing.T) {
	s := newSession(t)
	game.MarkAnswered(s, 1, 0)

	var hidden, shown bytes.Buffer
	require.NoError(t, Board(&hidden, s, false))
	require.NoError(t, Board(&shown, s, true))

	assert.Equal(t, strings.Join([]string{
		"   Rivers  Mountains",
		"1  200     --",
		"2  1,000",
		"",
		"Final round: Capitals",
		"",
	}, "\n"), hidden.String())
	assert.Contains(t, shown.String(), "1,000*")
}

func TestQuestion(t *testing.T) {
	s := newSession(t)
	q, ok := game.GetQuestion(s, 0, 1)
	require.True(t, ok)

	var buf bytes.Buffer
	require.NoError(t, Question(&buf, q, false))
	assert.Contains(t, buf.String(), "Rivers for 1,000")
	assert.Contains(t, buf.String(), "Deepest river?")
	assert.Contains(t, buf.String(), "Wager question")
	assert.NotContains(t, buf.String(), "Congo")

	buf.Reset()
	require.NoError(t, Question(&buf, q, true))
	assert.Contains(t, buf.String(), "Answer: Congo")
}

func TestHistory(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)
	items := []history.SummaryItem{
		{Index: 0, Description: "Owls answered correctly (+200)", Timestamp: at, Current: true},
		{Index: 1, Description: "Added team: Foxes", Timestamp: at.Add(time.Minute), Undone: true},
	}

	var buf bytes.Buffer
	require.NoError(t, History(&buf, items))

	assert.Equal(t, strings.Join([]string{
		"   #  Time      Action",
		">  1  12:00:00  Owls answered correctly (+200)",
		"   2  12:01:00  Added team: Foxes (undone)",
		"",
	}, "\n"), buf.String())
}

func TestHistory_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, History(&buf, nil))
	assert.Equal(t, "No actions recorded.\n", buf.String())
}

func TestGameList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GameList(&buf, nil))
	assert.Contains(t, buf.String(), "No games yet")

	s := newSession(t)
	game.MarkAnswered(s, 0, 0)
	buf.Reset()
	require.NoError(t, GameList(&buf, []*model.Session{s}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.True(t, strings.HasPrefix(lines[1], s.ID))
	assert.Contains(t, lines[1], "Quiz Night")
	assert.Contains(t, lines[1], "in-progress")
	assert.Contains(t, lines[1], "1/3")
}

func TestScoreSeries(t *testing.T) {
	s := newSession(t)
	e := history.New(0)
	owls := s.State.Teams[1]
	require.NoError(t, e.Do(s, model.AnswerAction{TeamID: owls.ID, TeamName: owls.Name, PointChange: 200, Correct: true}))
	require.NoError(t, e.Do(s, model.ScoreAdjustAction{TeamID: owls.ID, TeamName: owls.Name, PointChange: -50}))
	require.NoError(t, e.Do(s, model.ScoreAdjustAction{TeamID: owls.ID, TeamName: owls.Name, PointChange: 500}))
	require.True(t, e.Undo(s))

	series := ScoreSeries(s)

	require.Len(t, series, 2)
	assert.Equal(t, []float64{0, 0, 0}, series[0].Values)
	assert.Equal(t, "Owls", series[1].Name)
	assert.Equal(t, owls.Color, series[1].Color)
	assert.Equal(t, []float64{0, 200, 150}, series[1].Values)
}

func TestTimeline(t *testing.T) {
	series := []Series{
		{Name: "Owls", Values: []float64{0, 200, 150, 1200}},
		{Name: "Foxes", Values: []float64{0, -400, -400, 0}},
	}

	var buf bytes.Buffer
	require.NoError(t, Timeline(&buf, series, 20, 4, false))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "1,200 │ "))
	assert.True(t, strings.HasPrefix(lines[3], " -400 │ "))
	assert.Equal(t, "Legend: ⠁ Owls (solid)  ⠁ Foxes (dashed)", lines[4])
}

func TestTimeline_NotEnoughHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Timeline(&buf, []Series{{Name: "Owls", Values: []float64{0}}}, 20, 4, false))
	assert.Equal(t, "Not enough history for a timeline.\n", buf.String())
}

func TestResampleSeries(t *testing.T) {
	assert.Equal(t, []float64{0, 50, 100}, resampleSeries([]float64{0, 100}, 3))
	assert.Equal(t, []float64{1.5, 3.5}, resampleSeries([]float64{1, 2, 3, 4}, 2))
	assert.Equal(t, []float64{7, 7}, resampleSeries([]float64{7}, 2))
}

func TestThemes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Themes(&buf, board.Presets(), false))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 9)
	assert.True(t, strings.HasPrefix(lines[1], "classic  Classic Board"))
	assert.Contains(t, lines[6], "#38bdf8")
	assert.NotContains(t, buf.String(), "\x1b[")
}
