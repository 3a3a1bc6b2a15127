package game

import (
	"fmt"
	"math"
	"slices"

	"github.com/verte-zerg/quizboard/internal/model"
)

// QuestionID returns the stable identifier of a board cell.
func QuestionID(categoryIndex, questionIndex int) string {
	return fmt.Sprintf("cat%d-q%d", categoryIndex, questionIndex)
}

// IsAnswered reports whether the cell has been resolved.
func IsAnswered(s *model.Session, categoryIndex, questionIndex int) bool {
	return slices.Contains(s.State.AnsweredQuestions, QuestionID(categoryIndex, questionIndex))
}

// GetQuestion returns the cell at the given indices, or false when they are out of range.
func GetQuestion(s *model.Session, categoryIndex, questionIndex int) (model.QuestionView, bool) {
	cats := s.Config.Categories
	if categoryIndex < 0 || categoryIndex >= len(cats) {
		return model.QuestionView{}, false
	}
	cat := cats[categoryIndex]
	if questionIndex < 0 || questionIndex >= len(cat.Questions) {
		return model.QuestionView{}, false
	}
	return model.QuestionView{
		Question:      cat.Questions[questionIndex],
		ID:            QuestionID(categoryIndex, questionIndex),
		CategoryName:  cat.Name,
		CategoryIndex: categoryIndex,
		QuestionIndex: questionIndex,
	}, true
}

// MarkAnswered adds the cell to the answered set once and advances the status.
func MarkAnswered(s *model.Session, categoryIndex, questionIndex int) {
	id := QuestionID(categoryIndex, questionIndex)
	if !slices.Contains(s.State.AnsweredQuestions, id) {
		s.State.AnsweredQuestions = append(s.State.AnsweredQuestions, id)
	}
	touch(s)

	if len(s.State.AnsweredQuestions) >= TotalQuestions(s) {
		s.Status = model.StatusCompleted
	} else if s.Status == model.StatusNew {
		s.Status = model.StatusInProgress
	}
}

// ResetAnswered puts the cell back on the board. Scores are not touched.
// It reports whether the cell was answered.
func ResetAnswered(s *model.Session, categoryIndex, questionIndex int) bool {
	id := QuestionID(categoryIndex, questionIndex)
	i := slices.Index(s.State.AnsweredQuestions, id)
	if i < 0 {
		return false
	}
	s.State.AnsweredQuestions = slices.Delete(s.State.AnsweredQuestions, i, i+1)
	return true
}

// TotalQuestions counts every cell on the board.
func TotalQuestions(s *model.Session) int {
	total := 0
	for _, cat := range s.Config.Categories {
		total += len(cat.Questions)
	}
	return total
}

// Progress reports answered and total cells and the rounded percentage.
func Progress(s *model.Session) model.Progress {
	total := TotalQuestions(s)
	answered := len(s.State.AnsweredQuestions)
	pct := 0
	if total > 0 {
		pct = int(math.Round(float64(answered) / float64(total) * 100))
	}
	return model.Progress{
		Answered:   answered,
		Total:      total,
		Percentage: pct,
	}
}

// RecomputeStatus derives the status from the answered set. A completed
// final round keeps the session completed.
func RecomputeStatus(s *model.Session) {
	if fr := s.State.FinalRound; fr != nil && fr.Completed {
		s.Status = model.StatusCompleted
		return
	}
	p := Progress(s)
	switch {
	case p.Answered == 0:
		s.Status = model.StatusNew
	case p.Answered < p.Total:
		s.Status = model.StatusInProgress
	default:
		s.Status = model.StatusCompleted
	}
}

// HighestValue returns the largest point value on the board.
func HighestValue(cfg model.Configuration) int {
	highest := 0
	for _, cat := range cfg.Categories {
		for _, q := range cat.Questions {
			if q.Value > highest {
				highest = q.Value
			}
		}
	}
	return highest
}
