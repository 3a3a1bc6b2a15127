// Package play runs game operations end to end: validate the request, apply it
// through the history engine, persist the session.
package play

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/verte-zerg/quizboard/internal/errors"
	"github.com/verte-zerg/quizboard/internal/game"
	"github.com/verte-zerg/quizboard/internal/history"
	"github.com/verte-zerg/quizboard/internal/model"
)

// Store is the persistence the controller needs.
type Store interface {
	GetAll(ctx context.Context) ([]*model.Session, error)
	Get(ctx context.Context, id string) (*model.Session, error)
	Save(ctx context.Context, s *model.Session) error
	Update(ctx context.Context, s *model.Session) error
	Delete(ctx context.Context, id string) error
}

type Config struct {
	Store    Store
	History  *history.Engine
	Logger   *slog.Logger
	Settings *model.Settings
}

// Controller applies game operations to sessions and persists the result.
// A failed write is returned but the in-memory session keeps the change.
type Controller struct {
	store    Store
	history  *history.Engine
	log      *slog.Logger
	settings model.Settings
}

func NewController(c Config) *Controller {
	ctl := &Controller{
		store:    c.Store,
		history:  c.History,
		log:      c.Logger,
		settings: game.DefaultSettings(),
	}
	if ctl.history == nil {
		ctl.history = history.New(history.DefaultCapacity)
	}
	if ctl.log == nil {
		ctl.log = slog.Default()
	}
	if c.Settings != nil {
		ctl.settings = *c.Settings
	}
	return ctl
}

// Create starts a session for cfg. Team names replace and extend the default team.
func (c *Controller) Create(ctx context.Context, cfg model.Configuration, teamNames ...string) (*model.Session, error) {
	s, err := game.NewSession(cfg, game.WithSettings(c.settings))
	if err != nil {
		return nil, err
	}
	for i, name := range teamNames {
		name = strings.TrimSpace(name)
		if i == 0 {
			if name != "" {
				s.State.Teams[0].Name = name
			}
			continue
		}
		if _, err := game.AddTeam(s, name); err != nil {
			return nil, err
		}
	}
	if err := c.store.Save(ctx, s); err != nil {
		c.log.ErrorContext(ctx, "save new game", "game_id", s.ID, "err", err)
		return nil, err
	}
	c.log.InfoContext(ctx, "game created", "game_id", s.ID, "title", s.Title, "teams", len(s.State.Teams))
	return s, nil
}

func (c *Controller) Load(ctx context.Context, id string) (*model.Session, error) {
	return c.store.Get(ctx, id)
}

// List returns every stored game, most recently played first.
func (c *Controller) List(ctx context.Context) ([]*model.Session, error) {
	all, err := c.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(all, func(a, b *model.Session) int {
		return b.LastPlayed.Compare(a.LastPlayed)
	})
	return all, nil
}

func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, id); err != nil {
		return err
	}
	c.log.InfoContext(ctx, "game deleted", "game_id", id)
	return nil
}

// Answer scores a regular question: plus its value when correct, minus it otherwise.
func (c *Controller) Answer(ctx context.Context, s *model.Session, teamID string, categoryIndex, questionIndex int, correct bool) error {
	q, err := openQuestion(s, categoryIndex, questionIndex)
	if err != nil {
		return err
	}
	if q.WagerSpecial {
		return errors.New(errors.CodeValidation,
			errors.WithMessagef("question %s is the wager question and needs a wager", q.ID))
	}
	team, err := findTeam(s, teamID)
	if err != nil {
		return err
	}
	points := q.Value
	if !correct {
		points = -points
	}
	return c.do(ctx, s, model.AnswerAction{
		TeamID:        team.ID,
		TeamName:      team.Name,
		CategoryIndex: categoryIndex,
		QuestionIndex: questionIndex,
		PointChange:   points,
		Correct:       correct,
	})
}

// AnswerWagerSpecial scores the wager question with the team's bet.
func (c *Controller) AnswerWagerSpecial(ctx context.Context, s *model.Session, teamID string, categoryIndex, questionIndex, wager int, correct bool) error {
	q, err := openQuestion(s, categoryIndex, questionIndex)
	if err != nil {
		return err
	}
	if !q.WagerSpecial {
		return errors.New(errors.CodeValidation,
			errors.WithMessagef("question %s is not the wager question", q.ID))
	}
	team, err := findTeam(s, teamID)
	if err != nil {
		return err
	}
	if err := game.ValidateWager(s, team.ID, wager); err != nil {
		return err
	}
	return c.do(ctx, s, model.WagerSpecialAction{
		TeamID:        team.ID,
		TeamName:      team.Name,
		CategoryIndex: q.CategoryIndex,
		QuestionIndex: q.QuestionIndex,
		Wager:         wager,
		Correct:       correct,
	})
}

// ResetQuestion puts an answered question back on the board. Scores stay.
func (c *Controller) ResetQuestion(ctx context.Context, s *model.Session, categoryIndex, questionIndex int) error {
	q, ok := game.GetQuestion(s, categoryIndex, questionIndex)
	if !ok {
		return errors.NotFoundf("question %d/%d not found", categoryIndex+1, questionIndex+1)
	}
	if !game.IsAnswered(s, categoryIndex, questionIndex) {
		return errors.New(errors.CodeValidation, errors.WithMessagef("question %s has not been answered", q.ID))
	}
	return c.do(ctx, s, model.QuestionResetAction{
		CategoryIndex: categoryIndex,
		QuestionIndex: questionIndex,
		QuestionID:    q.ID,
	})
}

func (c *Controller) AddTeam(ctx context.Context, s *model.Session, name string) (model.Team, error) {
	team, err := game.PlanTeam(s, strings.TrimSpace(name))
	if err != nil {
		return model.Team{}, err
	}
	if err := c.do(ctx, s, model.TeamAddAction{Team: team}); err != nil {
		return model.Team{}, err
	}
	return team, nil
}

func (c *Controller) RemoveTeam(ctx context.Context, s *model.Session, teamID string) error {
	team, err := findTeam(s, teamID)
	if err != nil {
		return err
	}
	return c.do(ctx, s, model.TeamRemoveAction{TeamID: team.ID, TeamName: team.Name})
}

func (c *Controller) UpdateTeam(ctx context.Context, s *model.Session, teamID string, u model.TeamUpdate) error {
	team, err := findTeam(s, teamID)
	if err != nil {
		return err
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return errors.New(errors.CodeValidation, errors.WithMessagef("team name cannot be empty"))
	}
	return c.do(ctx, s, model.TeamUpdateAction{TeamID: team.ID, TeamName: team.Name, Updates: u})
}

// AdjustScore applies a manual correction.
func (c *Controller) AdjustScore(ctx context.Context, s *model.Session, teamID string, delta int) error {
	team, err := findTeam(s, teamID)
	if err != nil {
		return err
	}
	return c.do(ctx, s, model.ScoreAdjustAction{TeamID: team.ID, TeamName: team.Name, PointChange: delta})
}

// SetFinalWager records a team's final-round bet once the board is cleared.
func (c *Controller) SetFinalWager(ctx context.Context, s *model.Session, teamID string, amount int) error {
	if err := finalRoundOpen(s); err != nil {
		return err
	}
	if !game.FinalRoundReady(s) {
		p := game.Progress(s)
		return errors.New(errors.CodeValidation,
			errors.WithMessagef("final round opens when the board is cleared (%d of %d answered)", p.Answered, p.Total))
	}
	team, err := findTeam(s, teamID)
	if err != nil {
		return err
	}
	if err := game.ValidateFinalWager(s, team.ID, amount); err != nil {
		return err
	}
	return c.do(ctx, s, model.FinalWagerAction{TeamID: team.ID, TeamName: team.Name, Wager: amount})
}

// JudgeFinal records a verdict and scores the team's stored wager.
func (c *Controller) JudgeFinal(ctx context.Context, s *model.Session, teamID string, correct bool) error {
	if err := finalRoundOpen(s); err != nil {
		return err
	}
	team, err := findTeam(s, teamID)
	if err != nil {
		return err
	}
	fr := s.State.FinalRound
	if fr == nil {
		return errors.New(errors.CodeValidation, errors.WithMessagef("%s has not placed a final wager", team.Name))
	}
	if _, ok := fr.Wagers[team.ID]; !ok {
		return errors.New(errors.CodeValidation, errors.WithMessagef("%s has not placed a final wager", team.Name))
	}
	if _, ok := fr.Answers[team.ID]; ok {
		return errors.New(errors.CodeValidation, errors.WithMessagef("%s's final answer is already judged", team.Name))
	}
	return c.do(ctx, s, model.FinalAnswerAction{TeamID: team.ID, TeamName: team.Name, Correct: correct})
}

// CompleteFinal ends the final round and the game.
func (c *Controller) CompleteFinal(ctx context.Context, s *model.Session) error {
	if err := finalRoundOpen(s); err != nil {
		return err
	}
	return c.do(ctx, s, model.FinalCompleteAction{})
}

// Undo reverts the last applied action. It reports false when there was none.
func (c *Controller) Undo(ctx context.Context, s *model.Session) (bool, error) {
	if !c.history.Undo(s) {
		return false, nil
	}
	return true, c.persist(ctx, s)
}

// Redo re-applies the next undone action. It reports false when there was none.
func (c *Controller) Redo(ctx context.Context, s *model.Session) (bool, error) {
	ok, err := c.history.Redo(s)
	if err != nil || !ok {
		return false, err
	}
	return true, c.persist(ctx, s)
}

func (c *Controller) ClearHistory(ctx context.Context, s *model.Session) error {
	c.history.Clear(s)
	return c.persist(ctx, s)
}

func (c *Controller) do(ctx context.Context, s *model.Session, action model.Action) error {
	if err := c.history.Do(s, action); err != nil {
		c.log.DebugContext(ctx, "action rejected", "game_id", s.ID, "action", action.Kind(), "err", err)
		return err
	}
	c.log.DebugContext(ctx, "action applied", "game_id", s.ID, "action", action.Kind(), "history_index", s.HistoryIndex)
	return c.persist(ctx, s)
}

func (c *Controller) persist(ctx context.Context, s *model.Session) error {
	if err := c.store.Update(ctx, s); err != nil {
		c.log.ErrorContext(ctx, "persist game", "game_id", s.ID, "err", err)
		return err
	}
	return nil
}

// ResolveTeam finds a team by id, case-insensitive name, or 1-based position.
func ResolveTeam(s *model.Session, ref string) (model.Team, error) {
	ref = strings.TrimSpace(ref)
	for _, t := range s.State.Teams {
		if t.ID == ref {
			return t, nil
		}
	}
	for _, t := range s.State.Teams {
		if strings.EqualFold(t.Name, ref) {
			return t, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(s.State.Teams) {
		return s.State.Teams[n-1], nil
	}
	return model.Team{}, errors.NotFoundf("team %q not found", ref)
}

func findTeam(s *model.Session, teamID string) (model.Team, error) {
	t := game.GetTeam(s, teamID)
	if t == nil {
		return model.Team{}, errors.NotFoundf("team %s not found", teamID)
	}
	return *t, nil
}

func openQuestion(s *model.Session, categoryIndex, questionIndex int) (model.QuestionView, error) {
	q, ok := game.GetQuestion(s, categoryIndex, questionIndex)
	if !ok {
		return model.QuestionView{}, errors.NotFoundf("question %d/%d not found", categoryIndex+1, questionIndex+1)
	}
	if game.IsAnswered(s, categoryIndex, questionIndex) {
		return model.QuestionView{}, errors.New(errors.CodeValidation,
			errors.WithMessagef("question %s has already been answered", q.ID))
	}
	return q, nil
}

func finalRoundOpen(s *model.Session) error {
	if !game.HasFinalRound(s) {
		return errors.New(errors.CodeValidation, errors.WithMessagef("this board has no final round"))
	}
	if s.State.FinalRound != nil && s.State.FinalRound.Completed {
		return errors.New(errors.CodeValidation, errors.WithMessagef("the final round is already complete"))
	}
	return nil
}
