package player

import (
	"context"

	"github.com/DhavalSuthar-24/leaguehub/internal/match"
	"github.com/DhavalSuthar-24/leaguehub/internal/team"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperr"
)

// RecentMatchLimit caps the matches shown on the player dashboard.
const RecentMatchLimit = 5

type InvitationRequest struct {
	TeamID uint `json:"teamId" binding:"required" example:"1"`
}

type Dashboard struct {
	Team             *team.TeamResponse    `json:"team"`
	InvitationsCount int64                 `json:"invitationsCount"`
	RecentMatches    []match.MatchResponse `json:"recentMatches"`
}

// PlayerService is the player's view of teams and matches.
type PlayerService struct {
	teams   *team.TeamService
	matches *match.MatchService
}

func NewPlayerService(teams *team.TeamService, matches *match.MatchService) *PlayerService {
	return &PlayerService{teams: teams, matches: matches}
}

func (s *PlayerService) Invitations(ctx context.Context, p *user.User) ([]team.TeamInvitation, error) {
	return s.teams.PlayerInvitations(ctx, p)
}

func (s *PlayerService) AcceptInvitation(ctx context.Context, p *user.User, teamID uint) (*team.Team, error) {
	return s.teams.AcceptInvitation(ctx, p, teamID)
}

func (s *PlayerService) DeclineInvitation(ctx context.Context, p *user.User, teamID uint) error {
	return s.teams.DeclineInvitation(ctx, p, teamID)
}

func (s *PlayerService) Team(ctx context.Context, p *user.User) (*team.Team, error) {
	return s.teams.PlayerTeam(ctx, p)
}

// currentTeam is like Team but reports "no team" as nil instead of an error.
func (s *PlayerService) currentTeam(ctx context.Context, p *user.User) (*team.Team, error) {
	t, err := s.teams.PlayerTeam(ctx, p)
	if apperr.Is(err, apperr.ErrNotFound) {
		return nil, nil
	}
	return t, err
}

// Matches lists the matches of the player's team. A player without a team has none.
func (s *PlayerService) Matches(ctx context.Context, p *user.User) ([]match.Match, error) {
	t, err := s.currentTeam(ctx, p)
	if err != nil || t == nil {
		return nil, err
	}
	return s.matches.TeamMatches(ctx, t.ID, 0)
}

func (s *PlayerService) Dashboard(ctx context.Context, p *user.User) (*Dashboard, error) {
	t, err := s.currentTeam(ctx, p)
	if err != nil {
		return nil, err
	}
	invitations, err := s.teams.CountInvitations(ctx, p)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{InvitationsCount: invitations, RecentMatches: []match.MatchResponse{}}
	if t != nil {
		res := team.ToResponse(t)
		d.Team = &res
		recent, err := s.matches.TeamMatches(ctx, t.ID, RecentMatchLimit)
		if err != nil {
			return nil, err
		}
		d.RecentMatches = match.ToResponses(recent)
	}
	return d, nil
}
