package history

import (
	"github.com/verte-zerg/quizboard/internal/errors"
	"github.com/verte-zerg/quizboard/internal/game"
	"github.com/verte-zerg/quizboard/internal/model"
)

// replayer applies actions to a session. Do and Redo share it, so a redo runs
// exactly the mutation the first run applied.
type replayer struct {
	s *model.Session
}

func (r replayer) VisitAnswer(a model.AnswerAction) error {
	if game.GetTeam(r.s, a.TeamID) == nil {
		return teamNotFound(a.TeamID)
	}
	game.MarkAnswered(r.s, a.CategoryIndex, a.QuestionIndex)
	return game.UpdateScore(r.s, a.TeamID, a.PointChange)
}

func (r replayer) VisitWagerSpecial(a model.WagerSpecialAction) error {
	if game.GetTeam(r.s, a.TeamID) == nil {
		return teamNotFound(a.TeamID)
	}
	game.MarkAnswered(r.s, a.CategoryIndex, a.QuestionIndex)
	return game.UpdateScore(r.s, a.TeamID, a.PointChange())
}

func (r replayer) VisitQuestionReset(a model.QuestionResetAction) error {
	game.ResetAnswered(r.s, a.CategoryIndex, a.QuestionIndex)
	game.RecomputeStatus(r.s)
	return nil
}

func (r replayer) VisitTeamAdd(a model.TeamAddAction) error {
	return game.InsertTeam(r.s, a.Team)
}

func (r replayer) VisitTeamRemove(a model.TeamRemoveAction) error {
	return game.RemoveTeam(r.s, a.TeamID)
}

func (r replayer) VisitTeamUpdate(a model.TeamUpdateAction) error {
	return game.UpdateTeam(r.s, a.TeamID, a.Updates)
}

func (r replayer) VisitScoreAdjust(a model.ScoreAdjustAction) error {
	return game.UpdateScore(r.s, a.TeamID, a.PointChange)
}

func (r replayer) VisitFinalWager(a model.FinalWagerAction) error {
	return game.SetFinalWager(r.s, a.TeamID, a.Wager)
}

func (r replayer) VisitFinalAnswer(a model.FinalAnswerAction) error {
	return game.SetFinalAnswer(r.s, a.TeamID, a.Correct)
}

func (r replayer) VisitFinalComplete(model.FinalCompleteAction) error {
	game.CompleteFinalRound(r.s)
	return nil
}

func teamNotFound(teamID string) error {
	return errors.NotFoundf("team %s not found", teamID)
}
