package match

import (
	"context"
	"time"

	"github.com/DhavalSuthar-24/leaguehub/internal/team"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperr"
	"go.uber.org/zap"
)

// TeamFinder is the part of the team store a match needs.
type TeamFinder interface {
	GetTeamByID(ctx context.Context, id uint) (*team.Team, error)
}

type MatchService struct {
	repo  MatchRepository
	teams TeamFinder
	log   *zap.SugaredLogger
	now   func() time.Time
}

func NewMatchService(repo MatchRepository, teams TeamFinder, log *zap.SugaredLogger) *MatchService {
	return &MatchService{repo: repo, teams: teams, log: log, now: time.Now}
}

func (s *MatchService) loadMatch(ctx context.Context, repo MatchRepository, id uint) (*Match, error) {
	m, err := repo.GetMatchByID(ctx, id)
	if err != nil {
		return nil, apperr.FromStore(err, "load match", "Match not found")
	}
	return m, nil
}

func (s *MatchService) CreateMatch(ctx context.Context, admin *user.User, req CreateMatchRequest) (*Match, error) {
	if req.Team1ID == req.Team2ID {
		return nil, apperr.Validation("Cannot create a match between the same team")
	}
	for _, id := range []uint{req.Team1ID, req.Team2ID} {
		if _, err := s.teams.GetTeamByID(ctx, id); err != nil {
			return nil, apperr.FromStore(err, "load match team", "One or both teams not found")
		}
	}

	m := &Match{
		Status:      StatusUpcoming,
		MatchDate:   s.now(),
		Location:    DefaultLocation,
		Description: req.Description,
		Teams: []MatchTeam{
			{Position: 1, TeamID: &req.Team1ID},
			{Position: 2, TeamID: &req.Team2ID},
		},
	}
	if req.MatchDate != nil {
		m.MatchDate = *req.MatchDate
	}
	if req.Location != "" {
		m.Location = req.Location
	}
	if admin != nil {
		m.CreatedByID = &admin.ID
	}

	err := s.repo.WithTransaction(ctx, func(tx MatchRepository) error {
		return tx.CreateMatch(ctx, m)
	})
	if err != nil {
		return nil, apperr.Internal(err, "create match")
	}

	s.log.Infow("match created", "match_id", m.ID, "team1_id", req.Team1ID, "team2_id", req.Team2ID)
	return s.loadMatch(ctx, s.repo, m.ID)
}

// UpdateScore records one side's score. An upcoming match goes live with its
// first score; live and completed matches keep their status. The winner is
// recomputed after every change.
func (s *MatchService) UpdateScore(ctx context.Context, req UpdateScoreRequest) (*Match, error) {
	if req.Score == nil || *req.Score < 0 {
		return nil, apperr.Validation("Score must be a non-negative number")
	}

	err := s.repo.WithTransaction(ctx, func(tx MatchRepository) error {
		m, err := s.loadMatch(ctx, tx, req.MatchID)
		if err != nil {
			return err
		}
		if m.Status == StatusCancelled {
			return apperr.Conflict("Cannot update the score of a cancelled match")
		}
		side := m.Side(req.TeamID)
		if side == nil {
			return apperr.NotFound("Team not found in this match")
		}

		side.Score = *req.Score
		if err := tx.UpdateMatchScore(ctx, m.ID, req.TeamID, side.Score); err != nil {
			return err
		}
		if m.Status == StatusUpcoming {
			m.Status = StatusLive
		}
		m.ResolveWinner()
		return tx.UpdateMatchResult(ctx, m)
	})
	if err != nil {
		return nil, apperr.Internal(err, "update score")
	}

	s.log.Infow("match score updated", "match_id", req.MatchID, "team_id", req.TeamID, "score", *req.Score)
	return s.loadMatch(ctx, s.repo, req.MatchID)
}

func (s *MatchService) UpdateStatus(ctx context.Context, req UpdateStatusRequest) (*Match, error) {
	next := MatchStatus(req.Status)
	if !next.Valid() {
		return nil, apperr.Validation("Invalid status. Must be one of: Upcoming, Live, Completed, Cancelled")
	}

	var from MatchStatus
	err := s.repo.WithTransaction(ctx, func(tx MatchRepository) error {
		m, err := s.loadMatch(ctx, tx, req.MatchID)
		if err != nil {
			return err
		}
		from = m.Status
		if !CanTransition(m.Status, next) {
			return apperr.Conflict("Cannot change match status from %s to %s", m.Status, next)
		}
		m.Status = next
		m.ResolveWinner()
		return tx.UpdateMatchResult(ctx, m)
	})
	if err != nil {
		return nil, apperr.Internal(err, "update match status")
	}

	s.log.Infow("match status changed", "match_id", req.MatchID, "from", from, "to", next)
	return s.loadMatch(ctx, s.repo, req.MatchID)
}

func (s *MatchService) UpdateMatch(ctx context.Context, id uint, req UpdateMatchRequest) (*Match, error) {
	m, err := s.loadMatch(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	if req.MatchDate != nil {
		m.MatchDate = *req.MatchDate
	}
	if req.Location != nil {
		m.Location = *req.Location
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if err := s.repo.UpdateMatchDetails(ctx, m); err != nil {
		return nil, apperr.Internal(err, "update match")
	}
	return s.loadMatch(ctx, s.repo, id)
}

func (s *MatchService) DeleteMatch(ctx context.Context, id uint) error {
	err := s.repo.WithTransaction(ctx, func(tx MatchRepository) error {
		return tx.DeleteMatch(ctx, id)
	})
	if err != nil {
		return apperr.FromStore(err, "delete match", "Match not found")
	}
	s.log.Infow("match deleted", "match_id", id)
	return nil
}

// ListMatches returns every match, or only those in status when it is set.
func (s *MatchService) ListMatches(ctx context.Context, status string) ([]Match, error) {
	filter := MatchStatus(status)
	if filter != "" && !filter.Valid() {
		return nil, apperr.Validation("Invalid status. Must be one of: Upcoming, Live, Completed, Cancelled")
	}
	matches, err := s.repo.GetMatches(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err, "list matches")
	}
	return matches, nil
}

func (s *MatchService) GetMatch(ctx context.Context, id uint) (*Match, error) {
	return s.loadMatch(ctx, s.repo, id)
}

// TeamMatches lists the matches of one team; limit <= 0 returns all of them.
func (s *MatchService) TeamMatches(ctx context.Context, teamID uint, limit int) ([]Match, error) {
	matches, err := s.repo.GetTeamMatches(ctx, teamID, limit)
	if err != nil {
		return nil, apperr.Internal(err, "list team matches")
	}
	return matches, nil
}

func (s *MatchService) RecentMatches(ctx context.Context, limit int) ([]Match, error) {
	matches, err := s.repo.RecentMatches(ctx, limit)
	if err != nil {
		return nil, apperr.Internal(err, "list recent matches")
	}
	return matches, nil
}

func (s *MatchService) StatusCounts(ctx context.Context) (map[MatchStatus]int64, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "count matches")
	}
	return counts, nil
}
