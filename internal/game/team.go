package game

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/verte-zerg/quizboard/internal/errors"
	"github.com/verte-zerg/quizboard/internal/model"
)

const (
	MinTeams = 1
	MaxTeams = 6
)

// TeamColors is the palette assigned to new teams by position.
var TeamColors = []string{"#3b82f6", "#ef4444", "#10b981", "#f59e0b", "#8b5cf6", "#ec4899"}

// PlanTeam builds the team AddTeam would insert, without touching the session.
func PlanTeam(s *model.Session, name string) (model.Team, error) {
	if len(s.State.Teams) >= MaxTeams {
		return model.Team{}, errors.Capacityf("a game allows at most %d teams", MaxTeams)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return model.Team{}, fmt.Errorf("generate team ID: %w", err)
	}
	n := len(s.State.Teams)
	if name == "" {
		name = fmt.Sprintf("Team %d", n+1)
	}
	return model.Team{
		ID:    "team-" + id.String(),
		Name:  name,
		Color: TeamColors[n%len(TeamColors)],
		Score: 0,
	}, nil
}

// InsertTeam appends a fully specified team.
func InsertTeam(s *model.Session, team model.Team) error {
	if len(s.State.Teams) >= MaxTeams {
		return errors.Capacityf("a game allows at most %d teams", MaxTeams)
	}
	if GetTeam(s, team.ID) != nil {
		return fmt.Errorf("team %s already exists", team.ID)
	}
	s.State.Teams = append(s.State.Teams, team)
	return nil
}

// AddTeam plans and inserts a new team. An empty name becomes "Team N".
func AddTeam(s *model.Session, name string) (model.Team, error) {
	team, err := PlanTeam(s, name)
	if err != nil {
		return model.Team{}, err
	}
	if err := InsertTeam(s, team); err != nil {
		return model.Team{}, err
	}
	return team, nil
}

// RemoveTeam deletes a team. The last remaining team cannot be removed.
func RemoveTeam(s *model.Session, teamID string) error {
	if len(s.State.Teams) <= MinTeams {
		return errors.Capacityf("a game needs at least %d team", MinTeams)
	}
	for i, t := range s.State.Teams {
		if t.ID == teamID {
			s.State.Teams = append(s.State.Teams[:i:i], s.State.Teams[i+1:]...)
			return nil
		}
	}
	return errors.NotFoundf("team %s not found", teamID)
}

// UpdateTeam merges the non-nil fields of u into the team.
func UpdateTeam(s *model.Session, teamID string, u model.TeamUpdate) error {
	t := GetTeam(s, teamID)
	if t == nil {
		return errors.NotFoundf("team %s not found", teamID)
	}
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.Color != nil {
		t.Color = *u.Color
	}
	return nil
}

// GetTeam returns a pointer into the session's team list, or nil.
func GetTeam(s *model.Session, teamID string) *model.Team {
	for i := range s.State.Teams {
		if s.State.Teams[i].ID == teamID {
			return &s.State.Teams[i]
		}
	}
	return nil
}

// UpdateScore adds delta to the team's score, clamping at zero when
// negative scores are disabled.
func UpdateScore(s *model.Session, teamID string, delta int) error {
	t := GetTeam(s, teamID)
	if t == nil {
		return errors.NotFoundf("team %s not found", teamID)
	}
	t.Score += delta
	if !s.State.Settings.AllowNegativeScores && t.Score < 0 {
		t.Score = 0
	}
	touch(s)
	return nil
}
