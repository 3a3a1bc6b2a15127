package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/quizboard/internal/board"
	"github.com/verte-zerg/quizboard/internal/config"
	"github.com/verte-zerg/quizboard/internal/model"
)

const testBoard = `{
  "title": "Pub Night",
  "categories": [
    {"name": "Rivers", "questions": [
      {"value": 200, "question": "Longest river?", "answer": "Nile"},
      {"value": 400, "question": "River through Paris?", "answer": "Seine"}
    ]},
    {"name": "Peaks", "questions": [
      {"value": 200, "question": "Highest peak?", "answer": "Everest"},
      {"value": 400, "question": "Highest in Africa?", "answer": "Kilimanjaro", "wagerSpecial": true}
    ]}
  ]
}`

type cli struct {
	t   *testing.T
	dir string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	return &cli{t: t, dir: t.TempDir()}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args,
		"--config", filepath.Join(c.dir, "config.toml"),
		"--db", filepath.Join(c.dir, "games.db"),
		"--storage", config.BackendSQLite,
	))
	err := root.Execute()
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "quizboard %s", strings.Join(args, " "))
	return out
}

func (c *cli) newGame(teams ...string) string {
	c.t.Helper()
	path := filepath.Join(c.dir, "board.json")
	require.NoError(c.t, os.WriteFile(path, []byte(testBoard), 0o644))
	args := []string{"new", path}
	for _, team := range teams {
		args = append(args, "--team", team)
	}
	out := c.mustRun(args...)
	first, _, _ := strings.Cut(out, "\n")
	id, ok := strings.CutPrefix(first, "Created game ")
	require.True(c.t, ok, "unexpected output: %q", out)
	return id
}

func TestCLI_GameFlow(t *testing.T) {
	c := newCLI(t)
	id := c.newGame("Owls", "Foxes")

	out := c.mustRun("answer", id, "1", "1", "--team", "Owls", "--correct")
	assert.Equal(t, "Owls answered correctly (+200)\n", out)

	out = c.mustRun("answer", id[:8], "2", "1", "--team", "2", "--wrong")
	assert.Equal(t, "Foxes answered incorrectly (-200)\n", out)

	out = c.mustRun("show", id)
	assert.Contains(t, out, "Pub Night  [in-progress]  2/4 answered (50%)")
	assert.Contains(t, out, "Owls")

	out = c.mustRun("undo", id)
	assert.Equal(t, "Undid: Foxes answered incorrectly (-200)\n", out)
	out = c.mustRun("redo", id)
	assert.Equal(t, "Redid: Foxes answered incorrectly (-200)\n", out)

	out = c.mustRun("history", id)
	assert.Contains(t, out, "Owls answered correctly")
	assert.Contains(t, out, "Foxes answered incorrectly")
}

func TestCLI_AnswerWagerQuestion(t *testing.T) {
	c := newCLI(t)
	id := c.newGame("Owls")

	_, err := c.run("answer", id, "2", "2", "--team", "Owls", "--correct")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wager question")

	_, err = c.run("answer", id, "1", "1", "--team", "Owls", "--correct", "--wager", "100")
	require.Error(t, err)

	out := c.mustRun("answer", id, "2", "2", "--team", "Owls", "--wrong", "--wager", "300")
	assert.Equal(t, "Owls lost the wager question (-300)\n", out)
}

func TestCLI_Teams(t *testing.T) {
	c := newCLI(t)
	id := c.newGame("Owls")

	assert.Equal(t, "Added team: Foxes\n", c.mustRun("team", "add", id, "Foxes"))
	c.mustRun("team", "update", id, "foxes", "--name", "Red Foxes")
	c.mustRun("adjust", id, "--team", "Red Foxes", "--points", "50")
	assert.Equal(t, "Removed team: Owls\n", c.mustRun("team", "remove", id, "1"))

	_, err := c.run("team", "remove", id, "Red Foxes")
	require.Error(t, err)
}

func TestCLI_UnknownGame(t *testing.T) {
	c := newCLI(t)
	c.newGame()
	_, err := c.run("show", "no-such-game")
	require.Error(t, err)
}

func TestCLI_InitAndValidate(t *testing.T) {
	c := newCLI(t)
	path := filepath.Join(c.dir, "trivia.yaml")

	out := c.mustRun("init", path, "--categories", "Rivers,Peaks,Films", "--rows", "3", "--random-wager", "--seed", "7", "--final", "Capitals")
	assert.Equal(t, "Wrote "+path+" (3 x 3)\n", out)

	res, err := board.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "trivia", res.Config.Title)
	require.Len(t, res.Config.Categories, 3)
	assert.Equal(t, "Peaks", res.Config.Categories[1].Name)
	require.NotNil(t, res.Config.FinalRound)
	assert.Equal(t, "Capitals", res.Config.FinalRound.Category)

	_, err = c.run("init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	out = c.mustRun("validate", path)
	assert.Equal(t, "OK: 3 categories, 9 questions\n", out)
}

func TestCLI_InitTheme(t *testing.T) {
	c := newCLI(t)
	path := filepath.Join(c.dir, "themed.json")

	c.mustRun("init", path, "--theme", "#101010, #202020,#303030,#404040")
	res, err := board.LoadFile(path)
	require.NoError(t, err)
	require.NotNil(t, res.Config.Theme)
	assert.Equal(t, "#202020", res.Config.Theme.QuestionColor)
	assert.Empty(t, res.Config.Theme.BackgroundColor)

	other := filepath.Join(c.dir, "bad.json")
	_, err = c.run("init", other, "--theme", "#101010,#202020,red,#404040")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "textColor")
	_, statErr := os.Stat(other)
	assert.True(t, os.IsNotExist(statErr), "nothing written for a rejected theme")

	_, err = c.run("init", other, "--theme", "plaid")
	require.Error(t, err)

	c.mustRun("init", other, "--theme", "neon")
	res, err = board.LoadFile(other)
	require.NoError(t, err)
	assert.Equal(t, &model.Theme{Preset: "neon"}, res.Config.Theme)
}

func TestResolveFormat(t *testing.T) {
	tests := map[string]struct {
		name string
		path string
		want board.Format
	}{
		"explicit wins":  {name: "toml", path: "out.json", want: board.FormatTOML},
		"from extension": {path: "out.yml", want: board.FormatYAML},
		"default json":   {want: board.FormatJSON},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := resolveFormat(tt.name, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := resolveFormat("", "board.txt")
	require.Error(t, err)
}

func TestParsePosition(t *testing.T) {
	c, q, err := parsePosition("2", "5")
	require.NoError(t, err)
	assert.Equal(t, 1, c)
	assert.Equal(t, 4, q)

	_, _, err = parsePosition("0", "1")
	require.Error(t, err)
	_, _, err = parsePosition("1", "x")
	require.Error(t, err)
}

func TestDefaultConfigTemplateLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644))
	_, err := config.LoadConfig(path)
	require.NoError(t, err)
}
