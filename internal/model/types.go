// Package model defines shared data structures.
package model

import "time"

// Status is the lifecycle state of a game session.
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Configuration is an authored board. It is never mutated once a session starts.
type Configuration struct {
	Title      string         `json:"title" yaml:"title" toml:"title"`
	Categories []Category     `json:"categories" yaml:"categories" toml:"categories"`
	Settings   *BoardSettings `json:"settings,omitempty" yaml:"settings,omitempty" toml:"settings,omitempty"`
	FinalRound *FinalRound    `json:"finalRound,omitempty" yaml:"finalRound,omitempty" toml:"finalRound,omitempty"`
	Theme      *Theme         `json:"theme,omitempty" yaml:"theme,omitempty" toml:"theme,omitempty"`
}

// Category is one board column.
type Category struct {
	Name      string     `json:"name" yaml:"name" toml:"name"`
	Questions []Question `json:"questions" yaml:"questions" toml:"questions"`
}

// Question is one board cell.
type Question struct {
	Value        int    `json:"value" yaml:"value" toml:"value"`
	Question     string `json:"question" yaml:"question" toml:"question"`
	Answer       string `json:"answer" yaml:"answer" toml:"answer"`
	WagerSpecial bool   `json:"wagerSpecial,omitempty" yaml:"wagerSpecial,omitempty" toml:"wagerSpecial,omitempty"`
	Image        string `json:"image,omitempty" yaml:"image,omitempty" toml:"image,omitempty"`
}

// FinalRound is the optional end-of-game wagering question.
type FinalRound struct {
	Category string `json:"category" yaml:"category" toml:"category"`
	Question string `json:"question" yaml:"question" toml:"question"`
	Answer   string `json:"answer" yaml:"answer" toml:"answer"`
}

// BoardSettings are per-board overrides of the session defaults.
type BoardSettings struct {
	TimerEnabled        *bool `json:"timerEnabled,omitempty" yaml:"timerEnabled,omitempty" toml:"timerEnabled,omitempty" mapstructure:"timerEnabled"`
	TimerSeconds        *int  `json:"timerSeconds,omitempty" yaml:"timerSeconds,omitempty" toml:"timerSeconds,omitempty" mapstructure:"timerSeconds"`
	SoundEnabled        *bool `json:"soundEnabled,omitempty" yaml:"soundEnabled,omitempty" toml:"soundEnabled,omitempty" mapstructure:"soundEnabled"`
	ShowAnswers         *bool `json:"showAnswers,omitempty" yaml:"showAnswers,omitempty" toml:"showAnswers,omitempty" mapstructure:"showAnswers"`
	AllowNegativeScores *bool `json:"allowNegativeScores,omitempty" yaml:"allowNegativeScores,omitempty" toml:"allowNegativeScores,omitempty" mapstructure:"allowNegativeScores"`
	PointValues         []int `json:"pointValues,omitempty" yaml:"pointValues,omitempty" toml:"pointValues,omitempty" mapstructure:"pointValues"`
}

// Theme is either a preset name or a set of custom #RRGGBB colours.
type Theme struct {
	Preset          string `json:"preset,omitempty" yaml:"preset,omitempty" toml:"preset,omitempty"`
	BoardColor      string `json:"boardColor,omitempty" yaml:"boardColor,omitempty" toml:"boardColor,omitempty"`
	QuestionColor   string `json:"questionColor,omitempty" yaml:"questionColor,omitempty" toml:"questionColor,omitempty"`
	TextColor       string `json:"textColor,omitempty" yaml:"textColor,omitempty" toml:"textColor,omitempty"`
	AccentColor     string `json:"accentColor,omitempty" yaml:"accentColor,omitempty" toml:"accentColor,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty" toml:"backgroundColor,omitempty"`
}

// Session is one play-through of a board.
type Session struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	CreatedAt    time.Time     `json:"createdAt"`
	LastPlayed   time.Time     `json:"lastPlayed"`
	Status       Status        `json:"status"`
	Config       Configuration `json:"config"`
	State        State         `json:"state"`
	History      []Entry       `json:"history"`
	HistoryIndex int           `json:"historyIndex"`
}

// State is the mutable part of a session. History entries hold copies of it.
type State struct {
	Teams             []Team           `json:"teams"`
	AnsweredQuestions []string         `json:"answeredQuestions"`
	Settings          Settings         `json:"settings"`
	FinalRound        *FinalRoundState `json:"finalRound,omitempty"`
}

// Team is a scoring participant.
type Team struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Score int    `json:"score"`
}

// TeamUpdate carries the team fields to merge; nil fields are left alone.
type TeamUpdate struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

// Settings are the effective gameplay settings of a session.
type Settings struct {
	TimerEnabled        bool `json:"timerEnabled"`
	TimerSeconds        int  `json:"timerSeconds"`
	SoundEnabled        bool `json:"soundEnabled"`
	ShowAnswers         bool `json:"showAnswers"`
	AllowNegativeScores bool `json:"allowNegativeScores"`
}

// FinalRoundState tracks wagers and verdicts keyed by team id.
type FinalRoundState struct {
	Wagers    map[string]int  `json:"wagers"`
	Answers   map[string]bool `json:"answers"`
	Completed bool            `json:"completed"`
}

// QuestionView is a board question together with its position.
type QuestionView struct {
	Question
	ID            string
	CategoryName  string
	CategoryIndex int
	QuestionIndex int
}

// Text is the clue read to the teams.
func (q QuestionView) Text() string {
	return q.Question.Question
}

// Progress summarizes how much of the board has been played.
type Progress struct {
	Answered   int
	Total      int
	Percentage int
}
