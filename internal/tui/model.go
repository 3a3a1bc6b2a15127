// Package tui provides the Bubble Tea board for hosting a game.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/quizboard/internal/board"
	"github.com/verte-zerg/quizboard/internal/errors"
	"github.com/verte-zerg/quizboard/internal/game"
	"github.com/verte-zerg/quizboard/internal/history"
	"github.com/verte-zerg/quizboard/internal/model"
	"github.com/verte-zerg/quizboard/internal/report"
)

// Controller is the subset of game operations the board drives.
type Controller interface {
	Answer(ctx context.Context, s *model.Session, teamID string, categoryIndex, questionIndex int, correct bool) error
	AnswerWagerSpecial(ctx context.Context, s *model.Session, teamID string, categoryIndex, questionIndex, wager int, correct bool) error
	ResetQuestion(ctx context.Context, s *model.Session, categoryIndex, questionIndex int) error
	Undo(ctx context.Context, s *model.Session) (bool, error)
	Redo(ctx context.Context, s *model.Session) (bool, error)
}

type mode int

const (
	modeBoard mode = iota
	modeWager
	modeQuestion
)

const (
	defaultCellWidth = 12
	minCellWidth     = 6
	maxCellWidth     = 22
)

// Model implements the Bubble Tea board UI.
type Model struct {
	ctl     Controller
	session *model.Session
	styles  styles

	width  int
	height int

	mode     mode
	col      int
	row      int
	team     int
	revealed bool
	wager    int

	wagerInput textinput.Model

	status    string
	statusErr bool
}

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	cell     lipgloss.Style
	cursor   lipgloss.Style
	answered lipgloss.Style
	question lipgloss.Style
	answer   lipgloss.Style
	footer   lipgloss.Style
	err      lipgloss.Style
}

func newStyles(t model.Theme) styles {
	board := lipgloss.Color(t.BoardColor)
	text := lipgloss.Color(t.TextColor)
	accent := lipgloss.Color(t.AccentColor)
	question := lipgloss.Color(t.QuestionColor)
	cell := lipgloss.NewStyle().Background(board).Foreground(accent).Bold(true).Align(lipgloss.Center)
	return styles{
		title:    lipgloss.NewStyle().Foreground(accent).Bold(true),
		header:   lipgloss.NewStyle().Background(board).Foreground(text).Bold(true).Align(lipgloss.Center),
		cell:     cell,
		cursor:   cell.Background(accent).Foreground(board),
		answered: lipgloss.NewStyle().Background(board).Foreground(lipgloss.Color("#6E6E6E")).Align(lipgloss.Center),
		question: lipgloss.NewStyle().Background(question).Foreground(text),
		answer:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		footer:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")),
		err:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
	}
}

// NewModel constructs the board UI for a loaded session.
func NewModel(ctl Controller, s *model.Session) *Model {
	in := textinput.New()
	in.Prompt = "Wager: "
	in.CharLimit = 7
	in.Width = 10
	return &Model{
		ctl:        ctl,
		session:    s,
		styles:     newStyles(board.ResolveTheme(s.Config.Theme)),
		wagerInput: in,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeWager:
			return m.updateWager(msg)
		case modeQuestion:
			m.updateQuestion(msg)
			return m, nil
		default:
			return m.updateBoard(msg)
		}
	default:
		return m, nil
	}
}

func (m *Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit
	case "left", "h":
		m.move(-1, 0)
	case "right", "l":
		m.move(1, 0)
	case "up", "k":
		m.move(0, -1)
	case "down", "j":
		m.move(0, 1)
	case "tab":
		m.cycleTeam()
	case "enter", " ":
		return m, m.open()
	case "R":
		m.reset()
	case "u":
		m.undo()
	case "r":
		m.redo()
	default:
		m.selectTeam(key)
	}
	return m, nil
}

func (m *Model) updateWager(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.wagerInput.Blur()
		m.mode = modeBoard
		return m, nil
	case tea.KeyTab:
		m.cycleTeam()
		return m, nil
	case tea.KeyEnter:
		m.submitWager()
		return m, nil
	}
	var cmd tea.Cmd
	m.wagerInput, cmd = m.wagerInput.Update(msg)
	return m, cmd
}

func (m *Model) updateQuestion(msg tea.KeyMsg) {
	switch key := msg.String(); key {
	case "esc":
		m.mode = modeBoard
	case " ":
		m.revealed = !m.revealed
	case "tab":
		m.cycleTeam()
	case "c":
		m.judge(true)
	case "x":
		m.judge(false)
	default:
		// Team picks are disabled once the wager is locked in.
		if !m.currentQuestion().WagerSpecial {
			m.selectTeam(key)
		}
	}
}

func (m *Model) move(dc, dr int) {
	cats := m.session.Config.Categories
	if len(cats) == 0 {
		return
	}
	m.col = min(max(m.col+dc, 0), len(cats)-1)
	rows := len(cats[m.col].Questions)
	m.row = min(max(m.row+dr, 0), max(rows-1, 0))
}

func (m *Model) cycleTeam() {
	if n := len(m.session.State.Teams); n > 0 {
		m.team = (m.team + 1) % n
	}
}

func (m *Model) selectTeam(key string) {
	n, err := strconv.Atoi(key)
	if err != nil || n < 1 || n > len(m.session.State.Teams) {
		return
	}
	m.team = n - 1
}

func (m *Model) currentTeam() model.Team {
	teams := m.session.State.Teams
	m.team = min(m.team, len(teams)-1)
	return teams[m.team]
}

func (m *Model) currentQuestion() model.QuestionView {
	q, _ := game.GetQuestion(m.session, m.col, m.row)
	return q
}

func (m *Model) open() tea.Cmd {
	q, ok := game.GetQuestion(m.session, m.col, m.row)
	if !ok {
		return nil
	}
	if game.IsAnswered(m.session, m.col, m.row) {
		m.setStatus("Already answered. Press R to put it back on the board.", true)
		return nil
	}
	m.revealed = false
	m.status = ""
	if !q.WagerSpecial {
		m.mode = modeQuestion
		return nil
	}
	m.mode = modeWager
	m.wagerInput.Reset()
	m.wagerInput.Placeholder = fmt.Sprintf("%d-%d", game.MinWager, game.MaxWager(m.session, m.currentTeam().ID))
	return m.wagerInput.Focus()
}

func (m *Model) submitWager() {
	team := m.currentTeam()
	n, err := strconv.Atoi(strings.TrimSpace(m.wagerInput.Value()))
	if err != nil {
		m.setStatus("Enter a whole number.", true)
		return
	}
	if err := game.ValidateWager(m.session, team.ID, n); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.wager = n
	m.wagerInput.Blur()
	m.status = ""
	m.mode = modeQuestion
}

func (m *Model) judge(correct bool) {
	ctx := context.Background()
	q := m.currentQuestion()
	team := m.currentTeam()
	var err error
	if q.WagerSpecial {
		err = m.ctl.AnswerWagerSpecial(ctx, m.session, team.ID, m.col, m.row, m.wager, correct)
	} else {
		err = m.ctl.Answer(ctx, m.session, team.ID, m.col, m.row, correct)
	}
	if err != nil && !errors.IsCode(err, errors.CodePersistence) {
		m.setStatus(err.Error(), true)
		return
	}
	m.mode = modeBoard
	if err != nil {
		m.setStatus("Scored but not saved: "+err.Error(), true)
		return
	}
	m.setStatus(history.Describe(m.session.History[m.session.HistoryIndex].Action), false)
}

func (m *Model) reset() {
	if !game.IsAnswered(m.session, m.col, m.row) {
		return
	}
	if err := m.ctl.ResetQuestion(context.Background(), m.session, m.col, m.row); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus("Question is back on the board.", false)
}

func (m *Model) undo() {
	ok, err := m.ctl.Undo(context.Background(), m.session)
	switch {
	case err != nil:
		m.setStatus(err.Error(), true)
	case !ok:
		m.setStatus("Nothing to undo.", false)
	default:
		m.setStatus("Undid: "+history.Describe(m.session.History[m.session.HistoryIndex+1].Action), false)
	}
	m.team = min(m.team, len(m.session.State.Teams)-1)
}

func (m *Model) redo() {
	ok, err := m.ctl.Redo(context.Background(), m.session)
	switch {
	case err != nil:
		m.setStatus(err.Error(), true)
	case !ok:
		m.setStatus("Nothing to redo.", false)
	default:
		m.setStatus("Redid: "+history.Describe(m.session.History[m.session.HistoryIndex].Action), false)
	}
	m.team = min(m.team, len(m.session.State.Teams)-1)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.mode {
	case modeWager:
		content = m.renderWager()
	case modeQuestion:
		content = m.renderQuestion()
	default:
		content = m.renderBoard()
	}
	content += "\n\n" + m.renderTeams()
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) cellWidth() int {
	cols := len(m.session.Config.Categories)
	if m.width == 0 || cols == 0 {
		return defaultCellWidth
	}
	return min(max(m.width/cols-1, minCellWidth), maxCellWidth)
}

func (m *Model) renderBoard() string {
	cats := m.session.Config.Categories
	w := m.cellWidth()
	depth := 0
	headers := make([]string, 0, len(cats))
	for _, c := range cats {
		headers = append(headers, m.styles.header.Width(w).Render(runewidth.Truncate(c.Name, w, "...")))
		depth = max(depth, len(c.Questions))
	}
	rows := []string{m.styles.title.Render(m.session.Title), "", joinCells(headers)}
	for qi := 0; qi < depth; qi++ {
		cells := make([]string, 0, len(cats))
		for ci, c := range cats {
			text, style := "", m.styles.answered
			if qi < len(c.Questions) {
				text, style = report.Points(c.Questions[qi].Value), m.styles.cell
				if game.IsAnswered(m.session, ci, qi) {
					text, style = "", m.styles.answered
				}
			}
			if ci == m.col && qi == m.row {
				style = m.styles.cursor
			}
			cells = append(cells, style.Width(w).Render(text))
		}
		rows = append(rows, joinCells(cells))
	}
	return strings.Join(rows, "\n")
}

func joinCells(cells []string) string {
	spaced := make([]string, 0, len(cells)*2)
	for i, c := range cells {
		if i > 0 {
			spaced = append(spaced, " ")
		}
		spaced = append(spaced, c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, spaced...)
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 60
	}
	return max(int(float64(m.width)*0.70), 1)
}

func (m *Model) renderQuestion() string {
	q := m.currentQuestion()
	heading := fmt.Sprintf("%s for %s", q.CategoryName, report.Points(q.Value))
	if q.WagerSpecial {
		heading = fmt.Sprintf("%s, wagering %s", heading, report.Points(m.wager))
	}
	width := m.contentWidth()
	parts := []string{
		m.styles.title.Render(heading),
		"",
		wrapText(q.Text(), width, m.styles.question),
	}
	if q.Image != "" {
		parts = append(parts, "", m.styles.footer.Render("Image: "+q.Image))
	}
	if m.revealed {
		parts = append(parts, "", wrapText(q.Answer, width, m.styles.answer))
	}
	return strings.Join(parts, "\n")
}

func (m *Model) renderWager() string {
	team := m.currentTeam()
	q := m.currentQuestion()
	return strings.Join([]string{
		m.styles.title.Render(fmt.Sprintf("Wager question: %s", q.CategoryName)),
		"",
		fmt.Sprintf("%s may wager %d to %s.", team.Name, game.MinWager, report.Points(game.MaxWager(m.session, team.ID))),
		"",
		m.wagerInput.View(),
	}, "\n")
}

func (m *Model) renderTeams() string {
	parts := make([]string, 0, len(m.session.State.Teams))
	for i, t := range m.session.State.Teams {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color))
		label := fmt.Sprintf("%d %s %s", i+1, t.Name, report.Points(t.Score))
		if i == m.team {
			style = style.Bold(true).Underline(true)
			label = "> " + label
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, "   ")
}

func (m *Model) renderFooter() string {
	p := game.Progress(m.session)
	segments := []string{fmt.Sprintf("Progress %d%%", p.Percentage)}
	switch m.mode {
	case modeWager:
		segments = append(segments, "enter confirm · tab team · esc back")
	case modeQuestion:
		segments = append(segments, "space reveal · c correct · x wrong · esc back")
	default:
		segments = append(segments, "enter open · 1-6 team · u undo · r redo · q quit")
	}
	footer := m.styles.footer.Render(strings.Join(segments, "  "))
	if m.status == "" {
		return footer
	}
	style := m.styles.footer
	if m.statusErr {
		style = m.styles.err
	}
	return footer + "  " + style.Render(m.status)
}
