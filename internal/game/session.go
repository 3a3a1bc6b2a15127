// Package game implements the rules of a trivia board session.
//
// Every function takes the session explicitly and mutates only what it
// documents. Mutations are deterministic given the session and their
// arguments, which is what lets the history engine replay them on redo.
package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/quizboard/internal/model"
)

// DefaultTitle is used when a board has no title.
const DefaultTitle = "Untitled Game"

var now = time.Now

// DefaultSettings are the built-in session settings.
func DefaultSettings() model.Settings {
	return model.Settings{
		TimerEnabled:        false,
		TimerSeconds:        30,
		SoundEnabled:        false,
		ShowAnswers:         false,
		AllowNegativeScores: true,
	}
}

type options struct {
	settings model.Settings
}

// Option customizes NewSession.
type Option func(*options)

// WithSettings replaces the built-in defaults. Board settings still take precedence.
func WithSettings(s model.Settings) Option {
	return func(o *options) {
		o.settings = s
	}
}

// NewSession creates a fresh session for cfg with a single default team.
func NewSession(cfg model.Configuration, opts ...Option) (*model.Session, error) {
	o := options{settings: DefaultSettings()}
	for _, opt := range opts {
		opt(&o)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate session ID: %w", err)
	}

	title := cfg.Title
	if title == "" {
		title = DefaultTitle
	}

	ts := now()
	s := &model.Session{
		ID:         id.String(),
		Title:      title,
		CreatedAt:  ts,
		LastPlayed: ts,
		Status:     model.StatusNew,
		Config:     cfg,
		State: model.State{
			Teams:             []model.Team{},
			AnsweredQuestions: []string{},
			Settings:          applyBoardSettings(o.settings, cfg.Settings),
		},
		History:      []model.Entry{},
		HistoryIndex: -1,
	}
	if cfg.FinalRound != nil {
		s.State.FinalRound = newFinalRoundState()
	}

	if _, err := AddTeam(s, ""); err != nil {
		return nil, err
	}
	return s, nil
}

func applyBoardSettings(base model.Settings, b *model.BoardSettings) model.Settings {
	if b == nil {
		return base
	}
	if b.TimerEnabled != nil {
		base.TimerEnabled = *b.TimerEnabled
	}
	if b.TimerSeconds != nil {
		base.TimerSeconds = *b.TimerSeconds
	}
	if b.SoundEnabled != nil {
		base.SoundEnabled = *b.SoundEnabled
	}
	if b.ShowAnswers != nil {
		base.ShowAnswers = *b.ShowAnswers
	}
	if b.AllowNegativeScores != nil {
		base.AllowNegativeScores = *b.AllowNegativeScores
	}
	return base
}

// CloneState returns a deep copy of the session state for history snapshots.
func CloneState(s *model.Session) model.State {
	return s.State.Clone()
}

func touch(s *model.Session) {
	s.LastPlayed = now()
}
