package game

import (
	"github.com/verte-zerg/quizboard/internal/errors"
	"github.com/verte-zerg/quizboard/internal/model"
)

// MinWager is the smallest bet allowed on the wager-special question.
const MinWager = 5

// MaxWager is the largest bet a team may place on the wager-special
// question: its score or the highest board value, whichever is larger.
func MaxWager(s *model.Session, teamID string) int {
	t := GetTeam(s, teamID)
	if t == nil {
		return 0
	}
	return max(t.Score, HighestValue(s.Config))
}

// ValidateWager checks a wager-special bet against MinWager and MaxWager.
func ValidateWager(s *model.Session, teamID string, amount int) error {
	if GetTeam(s, teamID) == nil {
		return errors.NotFoundf("team %s not found", teamID)
	}
	hi := MaxWager(s, teamID)
	if amount < MinWager || amount > hi {
		return errors.New(errors.CodeValidation,
			errors.WithMessagef("wager must be between %d and %d, got %d", MinWager, hi, amount))
	}
	return nil
}

// HasFinalRound reports whether the board defines a playable final round.
func HasFinalRound(s *model.Session) bool {
	fr := s.Config.FinalRound
	return fr != nil && fr.Question != "" && fr.Answer != ""
}

// FinalRoundReady reports whether the board is cleared and a final round can start.
func FinalRoundReady(s *model.Session) bool {
	p := Progress(s)
	return p.Answered >= p.Total && HasFinalRound(s)
}

// FinalRoundMaxWager is the team's score, never below zero.
func FinalRoundMaxWager(s *model.Session, teamID string) int {
	t := GetTeam(s, teamID)
	if t == nil {
		return 0
	}
	return max(0, t.Score)
}

// ValidateFinalWager checks a final-round bet against [0, FinalRoundMaxWager].
func ValidateFinalWager(s *model.Session, teamID string, amount int) error {
	t := GetTeam(s, teamID)
	if t == nil {
		return errors.NotFoundf("team %s not found", teamID)
	}
	hi := FinalRoundMaxWager(s, teamID)
	if amount < 0 || amount > hi {
		return errors.New(errors.CodeValidation,
			errors.WithMessagef("%s's wager must be between 0 and %d, got %d", t.Name, hi, amount))
	}
	return nil
}

// SetFinalWager stores a final-round bet. Bounds are the caller's concern.
func SetFinalWager(s *model.Session, teamID string, amount int) error {
	if GetTeam(s, teamID) == nil {
		return errors.NotFoundf("team %s not found", teamID)
	}
	finalRound(s).Wagers[teamID] = amount
	return nil
}

// SetFinalAnswer records the verdict and scores the stored wager in one step.
func SetFinalAnswer(s *model.Session, teamID string, correct bool) error {
	if GetTeam(s, teamID) == nil {
		return errors.NotFoundf("team %s not found", teamID)
	}
	fr := finalRound(s)
	fr.Answers[teamID] = correct
	wager := fr.Wagers[teamID]
	if !correct {
		wager = -wager
	}
	return UpdateScore(s, teamID, wager)
}

// CompleteFinalRound closes the final round and the game.
func CompleteFinalRound(s *model.Session) {
	finalRound(s).Completed = true
	s.Status = model.StatusCompleted
	touch(s)
}

// AllFinalWagersSet reports whether every team has placed a final-round bet.
func AllFinalWagersSet(s *model.Session) bool {
	fr := s.State.FinalRound
	if fr == nil {
		return false
	}
	for _, t := range s.State.Teams {
		if _, ok := fr.Wagers[t.ID]; !ok {
			return false
		}
	}
	return true
}

// AllFinalAnswersJudged reports whether every team's final answer has a verdict.
func AllFinalAnswersJudged(s *model.Session) bool {
	fr := s.State.FinalRound
	if fr == nil {
		return false
	}
	for _, t := range s.State.Teams {
		if _, ok := fr.Answers[t.ID]; !ok {
			return false
		}
	}
	return true
}

func newFinalRoundState() *model.FinalRoundState {
	return &model.FinalRoundState{
		Wagers:  map[string]int{},
		Answers: map[string]bool{},
	}
}

func finalRound(s *model.Session) *model.FinalRoundState {
	if s.State.FinalRound == nil {
		s.State.FinalRound = newFinalRoundState()
	}
	fr := s.State.FinalRound
	if fr.Wagers == nil {
		fr.Wagers = map[string]int{}
	}
	if fr.Answers == nil {
		fr.Answers = map[string]bool{}
	}
	return fr
}
