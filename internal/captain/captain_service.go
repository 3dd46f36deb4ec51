package captain

import (
	"context"

	"github.com/DhavalSuthar-24/leaguehub/internal/match"
	"github.com/DhavalSuthar-24/leaguehub/internal/team"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperr"
)

const recentMatchLimit = 5

type Info struct {
	Name               string                   `json:"name"`
	Email              string                   `json:"email"`
	UniqueID           string                   `json:"uniqueId"`
	IsApproved         bool                     `json:"isApproved"`
	SubscriptionStatus *user.SubscriptionStatus `json:"subscriptionStatus"`
}

type Statistics struct {
	TotalTeams         int `json:"totalTeams"`
	TotalPlayers       int `json:"totalPlayers"`
	TotalMatches       int `json:"totalMatches"`
	PendingInvitations int `json:"pendingInvitations"`
}

type Dashboard struct {
	Captain       Info                  `json:"captain"`
	Statistics    Statistics            `json:"statistics"`
	Team          *team.TeamResponse    `json:"team"`
	RecentMatches []match.MatchResponse `json:"recentMatches"`
}

type CaptainService struct {
	teams   *team.TeamService
	matches *match.MatchService
}

func NewCaptainService(teams *team.TeamService, matches *match.MatchService) *CaptainService {
	return &CaptainService{teams: teams, matches: matches}
}

// ownTeam returns the captain's team, or nil when they have not created one.
func (s *CaptainService) ownTeam(ctx context.Context, c *user.User) (*team.Team, error) {
	t, err := s.teams.CaptainTeam(ctx, c)
	if apperr.Is(err, apperr.ErrNotFound) {
		return nil, nil
	}
	return t, err
}

func (s *CaptainService) Dashboard(ctx context.Context, c *user.User) (*Dashboard, error) {
	if !c.IsApproved {
		return nil, apperr.Forbidden("Captain approval pending. Please wait for admin approval.")
	}

	d := &Dashboard{
		Captain: Info{
			Name:               c.Name,
			Email:              c.Email,
			UniqueID:           c.UniqueID,
			IsApproved:         c.IsApproved,
			SubscriptionStatus: c.SubscriptionStatus,
		},
		RecentMatches: []match.MatchResponse{},
	}

	t, err := s.ownTeam(ctx, c)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return d, nil
	}

	matches, err := s.matches.TeamMatches(ctx, t.ID, 0)
	if err != nil {
		return nil, err
	}
	res := team.ToResponse(t)
	d.Team = &res
	d.Statistics = Statistics{
		TotalTeams:         1,
		TotalPlayers:       len(t.Players),
		TotalMatches:       len(matches),
		PendingInvitations: len(t.Invitations),
	}
	if len(matches) > recentMatchLimit {
		matches = matches[:recentMatchLimit]
	}
	d.RecentMatches = match.ToResponses(matches)
	return d, nil
}

// Matches lists the matches of the captain's team.
func (s *CaptainService) Matches(ctx context.Context, c *user.User) ([]match.Match, error) {
	t, err := s.ownTeam(ctx, c)
	if err != nil || t == nil {
		return nil, err
	}
	return s.matches.TeamMatches(ctx, t.ID, 0)
}
