package report

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/verte-zerg/quizboard/internal/board"
	"github.com/verte-zerg/quizboard/internal/game"
	"github.com/verte-zerg/quizboard/internal/history"
	"github.com/verte-zerg/quizboard/internal/model"
)

const (
	maxTitleWidth    = 32
	maxCategoryWidth = 18
	answeredCell     = "--"
)

// Scoreboard writes the game header and the teams ranked by score.
func Scoreboard(w io.Writer, s *model.Session, forceColor bool) error {
	useColor := shouldUseColor(w, forceColor)
	p := game.Progress(s)
	header := fmt.Sprintf("%s  [%s]  %d/%d answered (%d%%)", s.Title, s.Status, p.Answered, p.Total, p.Percentage)

	teams := slices.Clone(s.State.Teams)
	slices.SortStableFunc(teams, func(a, b model.Team) int {
		return b.Score - a.Score
	})
	rows := make([][]string, 0, len(teams))
	for i, t := range teams {
		rows = append(rows, []string{strconv.Itoa(i + 1), t.Name, Points(t.Score)})
	}
	lines := formatTable([]string{"#", "Team", "Score"}, rows, map[int]bool{0: true, 2: true})
	if useColor {
		// Colour after padding so escape codes do not skew column widths.
		for i, t := range teams {
			lines[i+1] = colorize(lines[i+1], t.Color, true)
		}
	}

	out := append([]string{header, ""}, lines...)
	if line := finalRoundLine(s); line != "" {
		out = append(out, "", line)
	}
	return writeLines(w, out)
}

func finalRoundLine(s *model.Session) string {
	if !game.HasFinalRound(s) {
		return ""
	}
	fr := s.State.FinalRound
	switch {
	case fr != nil && fr.Completed:
		return "Final round: complete"
	case !game.FinalRoundReady(s):
		return "Final round: opens when the board is cleared"
	}
	wagers, judged := 0, 0
	if fr != nil {
		wagers, judged = len(fr.Wagers), len(fr.Answers)
	}
	n := len(s.State.Teams)
	return fmt.Sprintf("Final round: %d/%d wagers, %d/%d judged", wagers, n, judged, n)
}

// Board writes the grid of point values. Answered cells show "--". With
// showAnswers the wager question is marked with "*".
func Board(w io.Writer, s *model.Session, showAnswers bool) error {
	cats := s.Config.Categories
	headers := make([]string, 0, len(cats)+1)
	headers = append(headers, "")
	depth := 0
	for _, c := range cats {
		headers = append(headers, truncate(c.Name, maxCategoryWidth))
		depth = max(depth, len(c.Questions))
	}

	rows := make([][]string, 0, depth)
	for qi := 0; qi < depth; qi++ {
		row := []string{strconv.Itoa(qi + 1)}
		for ci, c := range cats {
			if qi >= len(c.Questions) {
				row = append(row, "")
				continue
			}
			q := c.Questions[qi]
			cell := Points(q.Value)
			switch {
			case game.IsAnswered(s, ci, qi):
				cell = answeredCell
			case showAnswers && q.WagerSpecial:
				cell += "*"
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}

	right := map[int]bool{0: true}
	lines := formatTable(headers, rows, right)
	if fr := s.Config.FinalRound; fr != nil && game.HasFinalRound(s) {
		lines = append(lines, "", "Final round: "+fr.Category)
	}
	return writeLines(w, lines)
}

// Question writes one clue for the host.
func Question(w io.Writer, q model.QuestionView, showAnswer bool) error {
	lines := []string{
		fmt.Sprintf("%s for %s", q.CategoryName, Points(q.Value)),
		"",
		q.Text(),
	}
	if q.WagerSpecial {
		lines = append(lines, "", "Wager question")
	}
	if q.Image != "" {
		lines = append(lines, "Image: "+q.Image)
	}
	if showAnswer {
		lines = append(lines, "", "Answer: "+q.Answer)
	}
	return writeLines(w, lines)
}

// History writes the action log. The entry at the cursor is marked with ">".
func History(w io.Writer, items []history.SummaryItem) error {
	if len(items) == 0 {
		return writeLines(w, []string{"No actions recorded."})
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		marker := ""
		if item.Current {
			marker = ">"
		}
		desc := item.Description
		if item.Undone {
			desc += " (undone)"
		}
		rows = append(rows, []string{
			marker,
			strconv.Itoa(item.Index + 1),
			item.Timestamp.Local().Format("15:04:05"),
			desc,
		})
	}
	return writeLines(w, formatTable([]string{"", "#", "Time", "Action"}, rows, map[int]bool{1: true}))
}

// GameList writes one row per stored game.
func GameList(w io.Writer, sessions []*model.Session) error {
	if len(sessions) == 0 {
		return writeLines(w, []string{"No games yet. Start one with: quizboard new <board-file>"})
	}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		p := game.Progress(s)
		rows = append(rows, []string{
			s.ID,
			truncate(s.Title, maxTitleWidth),
			string(s.Status),
			fmt.Sprintf("%d/%d", p.Answered, p.Total),
			strconv.Itoa(len(s.State.Teams)),
			formatTime(s.LastPlayed),
		})
	}
	headers := []string{"ID", "Title", "Status", "Progress", "Teams", "Last played"}
	return writeLines(w, formatTable(headers, rows, map[int]bool{3: true, 4: true}))
}

// Themes lists the built-in presets with a colour swatch per preset.
func Themes(w io.Writer, presets []board.ThemePreset, forceColor bool) error {
	useColor := shouldUseColor(w, forceColor)
	rows := make([][]string, 0, len(presets))
	for _, p := range presets {
		c := p.Colors
		rows = append(rows, []string{p.ID, p.Name, c.BoardColor, c.QuestionColor, c.TextColor, c.AccentColor})
	}
	lines := formatTable([]string{"ID", "Name", "Board", "Question", "Text", "Accent"}, rows, nil)
	if useColor {
		for i, p := range presets {
			lines[i+1] += "  " + colorize("███", p.Colors.BoardColor, true) + colorize("███", p.Colors.AccentColor, true)
		}
	}
	return writeLines(w, lines)
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
