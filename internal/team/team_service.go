package team

import (
	"context"
	"errors"

	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperr"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TeamService owns the team lifecycle: creation, invitations, jersey numbers,
// removal requests and deletion.
type TeamService struct {
	repo  TeamRepository
	users user.UserRepository
	log   *zap.SugaredLogger
}

func NewTeamService(repo TeamRepository, users user.UserRepository, log *zap.SugaredLogger) *TeamService {
	return &TeamService{repo: repo, users: users, log: log}
}

func (s *TeamService) loadTeam(ctx context.Context, repo TeamRepository, id uint) (*Team, error) {
	t, err := repo.GetTeamByID(ctx, id)
	if err != nil {
		return nil, apperr.FromStore(err, "load team", "Team not found")
	}
	return t, nil
}

// ownedTeam resolves the team a captain acts on. A zero teamID means the
// captain's own team.
func (s *TeamService) ownedTeam(ctx context.Context, captain *user.User, teamID uint) (*Team, error) {
	if teamID == 0 {
		t, err := s.repo.GetTeamByCaptain(ctx, captain.ID)
		if err != nil {
			return nil, apperr.FromStore(err, "load captain team", "You have not created a team yet")
		}
		return t, nil
	}

	t, err := s.loadTeam(ctx, s.repo, teamID)
	if err != nil {
		return nil, err
	}
	if t.CaptainID != captain.ID {
		return nil, apperr.Forbidden("Not authorized to manage this team")
	}
	return t, nil
}

// canManage admits admins and the owning captain.
func canManage(actor *user.User, t *Team) bool {
	return actor.IsAdmin() || (actor.IsCaptain() && t.CaptainID == actor.ID)
}

func (s *TeamService) CreateTeam(ctx context.Context, captain *user.User, req CreateTeamRequest) (*Team, error) {
	if !captain.IsApproved {
		return nil, apperr.Forbidden("Captain approval pending. Cannot create team until approved by admin.")
	}

	if _, err := s.repo.GetTeamByCaptain(ctx, captain.ID); err == nil {
		return nil, apperr.Conflict("You already have a team. Each captain can only create one team.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal(err, "check existing team")
	}

	t := &Team{Name: req.Name, Description: req.Description, CaptainID: captain.ID}
	err := s.repo.WithTransaction(ctx, func(tx TeamRepository) error {
		if err := tx.CreateTeam(ctx, t); err != nil {
			return err
		}
		jersey := CaptainJerseyNumber
		return tx.AddPlayer(ctx, &TeamPlayer{TeamID: t.ID, UserID: captain.ID, JerseyNumber: &jersey})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("You already have a team. Each captain can only create one team.")
		}
		return nil, apperr.Internal(err, "create team")
	}

	s.log.Infow("team created", "team_id", t.ID, "captain_id", captain.ID)
	return s.loadTeam(ctx, s.repo, t.ID)
}

func (s *TeamService) InvitePlayer(ctx context.Context, captain *user.User, req InvitePlayerRequest) (*Team, error) {
	t, err := s.ownedTeam(ctx, captain, req.TeamID)
	if err != nil {
		return nil, err
	}

	player, err := s.users.GetUserByUniqueID(ctx, req.PlayerUniqueID)
	if err != nil {
		return nil, apperr.FromStore(err, "lookup player", "Player not found with this unique ID")
	}
	if !player.IsPlayer() {
		return nil, apperr.NotFound("Player not found with this unique ID")
	}

	if _, err := s.repo.GetMembership(ctx, player.ID); err == nil {
		return nil, apperr.Conflict("Player is already part of a team")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal(err, "check membership")
	}

	if t.HasInvitation(player.ID) {
		return nil, apperr.Conflict("Player has already been invited to this team")
	}
	if err := s.repo.CreateInvitation(ctx, &TeamInvitation{TeamID: t.ID, UserID: player.ID}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Player has already been invited to this team")
		}
		return nil, apperr.Internal(err, "create invitation")
	}

	s.log.Infow("player invited", "team_id", t.ID, "player_id", player.ID)
	return s.loadTeam(ctx, s.repo, t.ID)
}

// AcceptInvitation moves the player into the team and drops every other
// invitation they hold. The unique membership index makes a concurrent second
// accept fail instead of producing two memberships.
func (s *TeamService) AcceptInvitation(ctx context.Context, player *user.User, teamID uint) (*Team, error) {
	err := s.repo.WithTransaction(ctx, func(tx TeamRepository) error {
		if _, err := tx.GetMembership(ctx, player.ID); err == nil {
			return apperr.Conflict("You are already part of a team")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if _, err := s.loadTeam(ctx, tx, teamID); err != nil {
			return err
		}

		invited, err := tx.InvitationExists(ctx, teamID, player.ID)
		if err != nil {
			return err
		}
		if !invited {
			return apperr.Validation("You are not invited to this team")
		}

		if err := tx.AddPlayer(ctx, &TeamPlayer{TeamID: teamID, UserID: player.ID}); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("You are already part of a team")
			}
			return err
		}
		return tx.DeleteUserInvitations(ctx, player.ID)
	})
	if err != nil {
		return nil, apperr.Internal(err, "accept invitation")
	}

	s.log.Infow("invitation accepted", "team_id", teamID, "player_id", player.ID)
	return s.loadTeam(ctx, s.repo, teamID)
}

func (s *TeamService) DeclineInvitation(ctx context.Context, player *user.User, teamID uint) error {
	if _, err := s.loadTeam(ctx, s.repo, teamID); err != nil {
		return err
	}
	removed, err := s.repo.DeleteInvitation(ctx, teamID, player.ID)
	if err != nil {
		return apperr.Internal(err, "decline invitation")
	}
	if !removed {
		return apperr.Validation("You are not invited to this team")
	}
	s.log.Infow("invitation declined", "team_id", teamID, "player_id", player.ID)
	return nil
}

func (s *TeamService) AssignJersey(ctx context.Context, captain *user.User, req AssignJerseyRequest) (*Team, error) {
	if req.JerseyNumber <= 0 {
		return nil, apperr.Validation("Jersey number must be a positive integer")
	}
	t, err := s.ownedTeam(ctx, captain, req.TeamID)
	if err != nil {
		return nil, err
	}
	if !t.HasPlayer(req.PlayerID) {
		return nil, apperr.Validation("Player is not in this team")
	}

	holder, err := s.repo.GetJerseyHolder(ctx, t.ID, req.JerseyNumber)
	switch {
	case err == nil && holder.UserID != req.PlayerID:
		return nil, apperr.Conflict("Jersey number %d is already taken by another player", req.JerseyNumber)
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperr.Internal(err, "check jersey number")
	}

	if err := s.repo.SetJerseyNumber(ctx, t.ID, req.PlayerID, req.JerseyNumber); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Jersey number %d is already taken by another player", req.JerseyNumber)
		}
		return nil, apperr.FromStore(err, "assign jersey number", "Player is not in this team")
	}
	return s.loadTeam(ctx, s.repo, t.ID)
}

// RequestRemoval flags one member for admin-approved removal. A newer request
// replaces the pending one.
func (s *TeamService) RequestRemoval(ctx context.Context, captain *user.User, req RemovePlayerRequest) (*Team, error) {
	t, err := s.ownedTeam(ctx, captain, req.TeamID)
	if err != nil {
		return nil, err
	}
	if req.PlayerID == t.CaptainID {
		return nil, apperr.Validation("Captain cannot be removed from their own team")
	}
	if !t.HasPlayer(req.PlayerID) {
		return nil, apperr.Validation("Player not in team")
	}

	playerID := req.PlayerID
	if err := s.repo.SetRemovalRequest(ctx, t.ID, &playerID); err != nil {
		return nil, apperr.FromStore(err, "request removal", "Team not found")
	}
	s.log.Infow("player removal requested", "team_id", t.ID, "player_id", playerID)
	return s.loadTeam(ctx, s.repo, t.ID)
}

// ApproveRemoval removes the flagged player and clears the slot.
func (s *TeamService) ApproveRemoval(ctx context.Context, teamID uint) (*Team, error) {
	err := s.repo.WithTransaction(ctx, func(tx TeamRepository) error {
		t, err := s.loadTeam(ctx, tx, teamID)
		if err != nil {
			return err
		}
		if t.RemovalRequestedID == nil {
			return apperr.Validation("No removal request pending for this team")
		}
		if err := tx.RemovePlayer(ctx, t.ID, *t.RemovalRequestedID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.SetRemovalRequest(ctx, t.ID, nil)
	})
	if err != nil {
		return nil, apperr.Internal(err, "approve removal")
	}
	s.log.Infow("player removal approved", "team_id", teamID)
	return s.loadTeam(ctx, s.repo, teamID)
}

// RejectRemoval clears the slot and keeps the player.
func (s *TeamService) RejectRemoval(ctx context.Context, teamID uint) (*Team, error) {
	t, err := s.loadTeam(ctx, s.repo, teamID)
	if err != nil {
		return nil, err
	}
	if t.RemovalRequestedID == nil {
		return nil, apperr.Validation("No removal request pending for this team")
	}
	if err := s.repo.SetRemovalRequest(ctx, t.ID, nil); err != nil {
		return nil, apperr.Internal(err, "reject removal")
	}
	s.log.Infow("player removal rejected", "team_id", teamID)
	return s.loadTeam(ctx, s.repo, teamID)
}

func (s *TeamService) UpdateTeam(ctx context.Context, actor *user.User, teamID uint, req UpdateTeamRequest) (*Team, error) {
	t, err := s.loadTeam(ctx, s.repo, teamID)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, t) {
		return nil, apperr.Forbidden("Not authorized to update this team")
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if err := s.repo.UpdateTeam(ctx, t); err != nil {
		return nil, apperr.Internal(err, "update team")
	}
	return s.loadTeam(ctx, s.repo, teamID)
}

// DeleteTeam removes the team atomically and detaches it from its matches.
func (s *TeamService) DeleteTeam(ctx context.Context, actor *user.User, teamID uint) error {
	t, err := s.loadTeam(ctx, s.repo, teamID)
	if err != nil {
		return err
	}
	if !canManage(actor, t) {
		return apperr.Forbidden("Not authorized to delete this team")
	}

	err = s.repo.WithTransaction(ctx, func(tx TeamRepository) error {
		return tx.DeleteTeamCascade(ctx, teamID)
	})
	if err != nil {
		return apperr.FromStore(err, "delete team", "Team not found")
	}
	s.log.Infow("team deleted", "team_id", teamID, "by", actor.ID)
	return nil
}

func (s *TeamService) ListTeams(ctx context.Context) ([]Team, error) {
	teams, err := s.repo.ListTeams(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "list teams")
	}
	return teams, nil
}

func (s *TeamService) GetTeam(ctx context.Context, teamID uint) (*Team, error) {
	return s.loadTeam(ctx, s.repo, teamID)
}

func (s *TeamService) CaptainTeam(ctx context.Context, captain *user.User) (*Team, error) {
	t, err := s.repo.GetTeamByCaptain(ctx, captain.ID)
	if err != nil {
		return nil, apperr.FromStore(err, "load captain team", "You have not created a team yet")
	}
	return t, nil
}

func (s *TeamService) PlayerTeam(ctx context.Context, player *user.User) (*Team, error) {
	t, err := s.repo.GetTeamByMember(ctx, player.ID)
	if err != nil {
		return nil, apperr.FromStore(err, "load player team", "You are not part of any team")
	}
	return t, nil
}

func (s *TeamService) PlayerInvitations(ctx context.Context, player *user.User) ([]TeamInvitation, error) {
	invs, err := s.repo.ListUserInvitations(ctx, player.ID)
	if err != nil {
		return nil, apperr.Internal(err, "list invitations")
	}
	return invs, nil
}

func (s *TeamService) CountInvitations(ctx context.Context, player *user.User) (int64, error) {
	n, err := s.repo.CountUserInvitations(ctx, player.ID)
	if err != nil {
		return 0, apperr.Internal(err, "count invitations")
	}
	return n, nil
}

func (s *TeamService) PendingRemovals(ctx context.Context) ([]Team, error) {
	teams, err := s.repo.ListPendingRemovals(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "list pending removals")
	}
	return teams, nil
}

// Stats feeds the admin dashboard.
func (s *TeamService) Stats(ctx context.Context) (total, pendingRemovals int64, err error) {
	if total, err = s.repo.CountTeams(ctx); err != nil {
		return 0, 0, apperr.Internal(err, "count teams")
	}
	if pendingRemovals, err = s.repo.CountPendingRemovals(ctx); err != nil {
		return 0, 0, apperr.Internal(err, "count pending removals")
	}
	return total, pendingRemovals, nil
}
