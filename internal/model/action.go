package model

// ActionKind tags a recorded history action.
type ActionKind string

const (
	ActionAnswerCorrect   ActionKind = "answer-correct"
	ActionAnswerIncorrect ActionKind = "answer-incorrect"
	ActionWagerSpecial    ActionKind = "wager-special"
	ActionQuestionReset   ActionKind = "question-reset"
	ActionTeamAdd         ActionKind = "team-add"
	ActionTeamRemove      ActionKind = "team-remove"
	ActionTeamUpdate      ActionKind = "team-update"
	ActionScoreAdjust     ActionKind = "score-adjust"
	ActionFinalWager      ActionKind = "final-wager"
	ActionFinalAnswer     ActionKind = "final-answer"
	ActionFinalComplete   ActionKind = "final-complete"
)

// Action is a recordable game mutation. The set of implementations is closed:
// every consumer handles all of them through ActionVisitor.
type Action interface {
	Kind() ActionKind
	Accept(v ActionVisitor) error
}

// ActionVisitor has one method per action type.
type ActionVisitor interface {
	VisitAnswer(AnswerAction) error
	VisitWagerSpecial(WagerSpecialAction) error
	VisitQuestionReset(QuestionResetAction) error
	VisitTeamAdd(TeamAddAction) error
	VisitTeamRemove(TeamRemoveAction) error
	VisitTeamUpdate(TeamUpdateAction) error
	VisitScoreAdjust(ScoreAdjustAction) error
	VisitFinalWager(FinalWagerAction) error
	VisitFinalAnswer(FinalAnswerAction) error
	VisitFinalComplete(FinalCompleteAction) error
}

// AnswerAction resolves a regular board question for one team.
type AnswerAction struct {
	TeamID        string `json:"teamId"`
	TeamName      string `json:"teamName"`
	CategoryIndex int    `json:"categoryIndex"`
	QuestionIndex int    `json:"questionIndex"`
	PointChange   int    `json:"pointChange"`
	Correct       bool   `json:"correct"`
}

func (a AnswerAction) Kind() ActionKind {
	if a.Correct {
		return ActionAnswerCorrect
	}
	return ActionAnswerIncorrect
}

func (a AnswerAction) Accept(v ActionVisitor) error { return v.VisitAnswer(a) }

// WagerSpecialAction resolves the wager-special question.
type WagerSpecialAction struct {
	TeamID        string `json:"teamId"`
	TeamName      string `json:"teamName"`
	CategoryIndex int    `json:"categoryIndex"`
	QuestionIndex int    `json:"questionIndex"`
	Wager         int    `json:"wager"`
	Correct       bool   `json:"correct"`
}

func (WagerSpecialAction) Kind() ActionKind { return ActionWagerSpecial }

func (a WagerSpecialAction) Accept(v ActionVisitor) error { return v.VisitWagerSpecial(a) }

// PointChange is the signed score delta of the wager.
func (a WagerSpecialAction) PointChange() int {
	if a.Correct {
		return a.Wager
	}
	return -a.Wager
}

// QuestionResetAction returns an answered question to the board.
type QuestionResetAction struct {
	CategoryIndex int    `json:"categoryIndex"`
	QuestionIndex int    `json:"questionIndex"`
	QuestionID    string `json:"questionId"`
}

func (QuestionResetAction) Kind() ActionKind { return ActionQuestionReset }

func (a QuestionResetAction) Accept(v ActionVisitor) error { return v.VisitQuestionReset(a) }

// TeamAddAction carries the fully planned team so replays produce the same id.
type TeamAddAction struct {
	Team Team `json:"team"`
}

func (TeamAddAction) Kind() ActionKind { return ActionTeamAdd }

func (a TeamAddAction) Accept(v ActionVisitor) error { return v.VisitTeamAdd(a) }

type TeamRemoveAction struct {
	TeamID   string `json:"teamId"`
	TeamName string `json:"teamName"`
}

func (TeamRemoveAction) Kind() ActionKind { return ActionTeamRemove }

func (a TeamRemoveAction) Accept(v ActionVisitor) error { return v.VisitTeamRemove(a) }

type TeamUpdateAction struct {
	TeamID   string     `json:"teamId"`
	TeamName string     `json:"teamName"`
	Updates  TeamUpdate `json:"updates"`
}

func (TeamUpdateAction) Kind() ActionKind { return ActionTeamUpdate }

func (a TeamUpdateAction) Accept(v ActionVisitor) error { return v.VisitTeamUpdate(a) }

// ScoreAdjustAction is a manual score correction.
type ScoreAdjustAction struct {
	TeamID      string `json:"teamId"`
	TeamName    string `json:"teamName"`
	PointChange int    `json:"pointChange"`
}

func (ScoreAdjustAction) Kind() ActionKind { return ActionScoreAdjust }

func (a ScoreAdjustAction) Accept(v ActionVisitor) error { return v.VisitScoreAdjust(a) }

type FinalWagerAction struct {
	TeamID   string `json:"teamId"`
	TeamName string `json:"teamName"`
	Wager    int    `json:"wager"`
}

func (FinalWagerAction) Kind() ActionKind { return ActionFinalWager }

func (a FinalWagerAction) Accept(v ActionVisitor) error { return v.VisitFinalWager(a) }

// FinalAnswerAction judges a final-round answer and scores the stored wager.
type FinalAnswerAction struct {
	TeamID   string `json:"teamId"`
	TeamName string `json:"teamName"`
	Correct  bool   `json:"correct"`
}

func (FinalAnswerAction) Kind() ActionKind { return ActionFinalAnswer }

func (a FinalAnswerAction) Accept(v ActionVisitor) error { return v.VisitFinalAnswer(a) }

type FinalCompleteAction struct{}

func (FinalCompleteAction) Kind() ActionKind { return ActionFinalComplete }

func (a FinalCompleteAction) Accept(v ActionVisitor) error { return v.VisitFinalComplete(a) }
