package history

import (
	"fmt"
	"time"

	"github.com/verte-zerg/quizboard/internal/model"
)

// SummaryItem describes one entry for display.
type SummaryItem struct {
	Index       int
	Kind        model.ActionKind
	Description string
	Timestamp   time.Time
	Current     bool
	// Undone entries sit past the cursor and are what Redo would replay.
	Undone bool
}

// Summary describes every entry, marking the one at the cursor.
func Summary(s *model.Session) []SummaryItem {
	items := make([]SummaryItem, 0, len(s.History))
	for i, entry := range s.History {
		items = append(items, SummaryItem{
			Index:       i,
			Kind:        entry.Action.Kind(),
			Description: Describe(entry.Action),
			Timestamp:   entry.Timestamp,
			Current:     i == s.HistoryIndex,
			Undone:      i > s.HistoryIndex,
		})
	}
	return items
}

// Describe returns a one-line human description of an action.
func Describe(a model.Action) string {
	var d describer
	_ = a.Accept(&d)
	return d.text
}

type describer struct {
	text string
}

func (d *describer) VisitAnswer(a model.AnswerAction) error {
	if a.Correct {
		d.text = fmt.Sprintf("%s answered correctly (%s)", a.TeamName, signed(a.PointChange))
	} else {
		d.text = fmt.Sprintf("%s answered incorrectly (%s)", a.TeamName, signed(a.PointChange))
	}
	return nil
}

func (d *describer) VisitWagerSpecial(a model.WagerSpecialAction) error {
	outcome := "lost"
	if a.Correct {
		outcome = "won"
	}
	d.text = fmt.Sprintf("%s %s the wager question (%s)", a.TeamName, outcome, signed(a.PointChange()))
	return nil
}

func (d *describer) VisitQuestionReset(a model.QuestionResetAction) error {
	d.text = "Reset question " + a.QuestionID
	return nil
}

func (d *describer) VisitTeamAdd(a model.TeamAddAction) error {
	d.text = "Added team: " + a.Team.Name
	return nil
}

func (d *describer) VisitTeamRemove(a model.TeamRemoveAction) error {
	d.text = "Removed team: " + a.TeamName
	return nil
}

func (d *describer) VisitTeamUpdate(a model.TeamUpdateAction) error {
	d.text = "Updated team: " + a.TeamName
	return nil
}

func (d *describer) VisitScoreAdjust(a model.ScoreAdjustAction) error {
	d.text = fmt.Sprintf("Adjusted %s score (%s)", a.TeamName, signed(a.PointChange))
	return nil
}

func (d *describer) VisitFinalWager(a model.FinalWagerAction) error {
	d.text = fmt.Sprintf("%s wagered %d on the final round", a.TeamName, a.Wager)
	return nil
}

func (d *describer) VisitFinalAnswer(a model.FinalAnswerAction) error {
	verdict := "incorrect"
	if a.Correct {
		verdict = "correct"
	}
	d.text = fmt.Sprintf("%s final answer judged %s", a.TeamName, verdict)
	return nil
}

func (d *describer) VisitFinalComplete(model.FinalCompleteAction) error {
	d.text = "Completed the final round"
	return nil
}

func signed(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}
