package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Entry is one recorded action and the state captured before it ran.
type Entry struct {
	Action      Action
	Timestamp   time.Time
	StateBefore State
}

type entryJSON struct {
	Action      ActionKind      `json:"action"`
	Timestamp   time.Time       `json:"timestamp"`
	Data        json.RawMessage `json:"data"`
	StateBefore State           `json:"stateBefore"`
}

// MarshalJSON implements json.Marshaler.
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Action == nil {
		return nil, fmt.Errorf("history entry has no action")
	}
	data, err := json.Marshal(e.Action)
	if err != nil {
		return nil, fmt.Errorf("encode %s action: %w", e.Action.Kind(), err)
	}
	return json.Marshal(entryJSON{
		Action:      e.Action.Kind(),
		Timestamp:   e.Timestamp,
		Data:        data,
		StateBefore: e.StateBefore,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Entry) UnmarshalJSON(b []byte) error {
	var raw entryJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	action, err := decodeAction(raw.Action, raw.Data)
	if err != nil {
		return err
	}
	e.Action = action
	e.Timestamp = raw.Timestamp
	e.StateBefore = raw.StateBefore
	return nil
}

func decodeAction(kind ActionKind, data json.RawMessage) (Action, error) {
	switch kind {
	case ActionAnswerCorrect, ActionAnswerIncorrect:
		return decodeInto[AnswerAction](kind, data)
	case ActionWagerSpecial:
		return decodeInto[WagerSpecialAction](kind, data)
	case ActionQuestionReset:
		return decodeInto[QuestionResetAction](kind, data)
	case ActionTeamAdd:
		return decodeInto[TeamAddAction](kind, data)
	case ActionTeamRemove:
		return decodeInto[TeamRemoveAction](kind, data)
	case ActionTeamUpdate:
		return decodeInto[TeamUpdateAction](kind, data)
	case ActionScoreAdjust:
		return decodeInto[ScoreAdjustAction](kind, data)
	case ActionFinalWager:
		return decodeInto[FinalWagerAction](kind, data)
	case ActionFinalAnswer:
		return decodeInto[FinalAnswerAction](kind, data)
	case ActionFinalComplete:
		return decodeInto[FinalCompleteAction](kind, data)
	default:
		return nil, fmt.Errorf("unknown history action %q", kind)
	}
}

func decodeInto[T Action](kind ActionKind, data json.RawMessage) (Action, error) {
	var a T
	if len(data) == 0 || string(data) == "null" {
		return a, nil
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode %s action: %w", kind, err)
	}
	return a, nil
}
