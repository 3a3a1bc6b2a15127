// Package history records game mutations so they can be undone and redone.
//
// Every entry stores the state captured before its action ran. Undo restores
// that snapshot. Redo re-executes the recorded action through the game
// package, which is deterministic for a given session and payload.
package history

import (
	"time"

	"github.com/verte-zerg/quizboard/internal/game"
	"github.com/verte-zerg/quizboard/internal/model"
)

// DefaultCapacity bounds the number of entries kept per session.
const DefaultCapacity = 100

// Engine applies and records actions against a session passed on each call.
type Engine struct {
	Capacity int
	Now      func() time.Time
}

// New returns an engine that keeps at most capacity entries.
// A non-positive capacity selects DefaultCapacity.
func New(capacity int) *Engine {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Engine{Capacity: capacity, Now: time.Now}
}

// Do snapshots the state, applies the action and records it. If the action
// fails, the session is left exactly as it was and nothing is recorded.
func (e *Engine) Do(s *model.Session, action model.Action) error {
	before := game.CloneState(s)
	status, lastPlayed := s.Status, s.LastPlayed

	if err := action.Accept(replayer{s: s}); err != nil {
		s.State = before
		s.Status = status
		s.LastPlayed = lastPlayed
		return err
	}
	e.record(s, action, before)
	return nil
}

// Record appends an action using the current state as its snapshot. The caller
// applies the mutation afterwards.
func (e *Engine) Record(s *model.Session, action model.Action) {
	e.record(s, action, game.CloneState(s))
}

func (e *Engine) record(s *model.Session, action model.Action, before model.State) {
	if s.HistoryIndex < len(s.History)-1 {
		s.History = s.History[:s.HistoryIndex+1]
	}
	s.History = append(s.History, model.Entry{
		Action:      action,
		Timestamp:   e.now(),
		StateBefore: before,
	})
	s.HistoryIndex = len(s.History) - 1

	capacity := e.capacity()
	for len(s.History) > capacity {
		s.History = s.History[1:]
		s.HistoryIndex = max(s.HistoryIndex-1, -1)
	}
}

// Undo restores the state from before the action at the cursor. It reports
// false when there is nothing to undo.
func (e *Engine) Undo(s *model.Session) bool {
	if !CanUndo(s) {
		return false
	}
	s.State = s.History[s.HistoryIndex].StateBefore.Clone()
	s.HistoryIndex--
	game.RecomputeStatus(s)
	return true
}

// Redo re-executes the next recorded action. It reports false when the cursor
// is already at the tail. A failed replay leaves the session untouched.
func (e *Engine) Redo(s *model.Session) (bool, error) {
	if !CanRedo(s) {
		return false, nil
	}
	before := game.CloneState(s)
	status, lastPlayed, index := s.Status, s.LastPlayed, s.HistoryIndex

	s.HistoryIndex++
	if err := s.History[s.HistoryIndex].Action.Accept(replayer{s: s}); err != nil {
		s.State = before
		s.Status = status
		s.LastPlayed = lastPlayed
		s.HistoryIndex = index
		return false, err
	}
	return true, nil
}

// Clear drops every entry.
func (e *Engine) Clear(s *model.Session) {
	s.History = []model.Entry{}
	s.HistoryIndex = -1
}

func CanUndo(s *model.Session) bool {
	return s.HistoryIndex >= 0
}

func CanRedo(s *model.Session) bool {
	return s.HistoryIndex < len(s.History)-1
}

func (e *Engine) capacity() int {
	if e.Capacity <= 0 {
		return DefaultCapacity
	}
	return e.Capacity
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}
