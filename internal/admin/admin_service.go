package admin

import (
	"context"
	"errors"
	"time"

	"github.com/DhavalSuthar-24/leaguehub/internal/match"
	"github.com/DhavalSuthar-24/leaguehub/internal/team"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperr"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AdminService struct {
	uow                  UnitOfWork
	users                user.UserRepository
	teams                *team.TeamService
	matches              *match.MatchService
	subscriptionDuration time.Duration
	now                  func() time.Time
	log                  *zap.SugaredLogger
}

func NewAdminService(
	uow UnitOfWork,
	users user.UserRepository,
	teams *team.TeamService,
	matches *match.MatchService,
	subscriptionDuration time.Duration,
	log *zap.SugaredLogger,
) *AdminService {
	return &AdminService{
		uow:                  uow,
		users:                users,
		teams:                teams,
		matches:              matches,
		subscriptionDuration: subscriptionDuration,
		now:                  time.Now,
		log:                  log,
	}
}

func (s *AdminService) loadCaptain(ctx context.Context, id uint) (*user.User, error) {
	u, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, apperr.FromStore(err, "load captain", "Captain not found")
	}
	if !u.IsCaptain() {
		return nil, apperr.NotFound("Captain not found")
	}
	return u, nil
}

// ApproveCaptain activates the captain's subscription for one term starting now.
func (s *AdminService) ApproveCaptain(ctx context.Context, captainID uint) (*user.User, error) {
	captain, err := s.loadCaptain(ctx, captainID)
	if err != nil {
		return nil, err
	}

	active := user.SubscriptionActive
	expiry := s.now().Add(s.subscriptionDuration)
	captain.IsApproved = true
	captain.SubscriptionStatus = &active
	captain.SubscriptionExpiryDate = &expiry
	if err := s.users.UpdateApproval(ctx, captain); err != nil {
		return nil, apperr.Internal(err, "approve captain")
	}

	s.log.Infow("captain approved", "captain_id", captain.ID, "expires_at", expiry)
	return captain, nil
}

// RejectCaptain removes the captain's account with the same cascade as DeleteUser.
func (s *AdminService) RejectCaptain(ctx context.Context, captainID uint) error {
	if _, err := s.loadCaptain(ctx, captainID); err != nil {
		return err
	}
	return s.DeleteUser(ctx, captainID)
}

// DeleteUser removes a non-admin account and everything that points at it in
// one transaction. A captain's team goes with them; a player leaves their team,
// invitations and any removal slot. Payments stay on record without an owner.
func (s *AdminService) DeleteUser(ctx context.Context, userID uint) error {
	var role user.Role
	err := s.uow(ctx, func(st Stores) error {
		target, err := st.Users.GetUserByID(ctx, userID)
		if err != nil {
			return apperr.FromStore(err, "load user", "User not found")
		}
		if target.IsAdmin() {
			return apperr.Validation("Cannot delete admin user")
		}
		role = target.Role

		if target.IsCaptain() {
			owned, err := st.Teams.GetTeamByCaptain(ctx, target.ID)
			switch {
			case err == nil:
				if err := st.Teams.DeleteTeamCascade(ctx, owned.ID); err != nil {
					return err
				}
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}

		if err := st.Teams.RemoveUserMemberships(ctx, target.ID); err != nil {
			return err
		}
		if err := st.Teams.DeleteUserInvitations(ctx, target.ID); err != nil {
			return err
		}
		if err := st.Teams.ClearRemovalRequestsFor(ctx, target.ID); err != nil {
			return err
		}
		if err := st.Sessions.DeleteUserSessions(ctx, target.ID); err != nil {
			return err
		}
		if err := st.Payments.DetachCaptain(ctx, target.ID); err != nil {
			return err
		}
		return st.Users.DeleteUser(ctx, target.ID)
	})
	if err != nil {
		s.log.Warnw("user deletion rolled back", "user_id", userID, "error", err)
		return apperr.Internal(err, "delete user")
	}

	s.log.Infow("user deleted", "user_id", userID, "role", role)
	return nil
}

func (s *AdminService) DeleteTeam(ctx context.Context, admin *user.User, teamID uint) error {
	return s.teams.DeleteTeam(ctx, admin, teamID)
}

func (s *AdminService) ListUsers(ctx context.Context, role string) ([]user.User, error) {
	r := user.Role(role)
	if r != "" && !r.Valid() {
		return nil, apperr.Validation("Invalid role. Must be one of: Admin, Captain, Player")
	}
	users, err := s.users.ListUsers(ctx, r)
	if err != nil {
		return nil, apperr.Internal(err, "list users")
	}
	return users, nil
}

func (s *AdminService) PendingCaptains(ctx context.Context) ([]user.User, error) {
	users, err := s.users.ListPendingCaptains(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "list pending captains")
	}
	return users, nil
}

func (s *AdminService) PendingRemovals(ctx context.Context) ([]team.Team, error) {
	return s.teams.PendingRemovals(ctx)
}

func (s *AdminService) ApprovePlayerRemoval(ctx context.Context, teamID uint) (*team.Team, error) {
	return s.teams.ApproveRemoval(ctx, teamID)
}

func (s *AdminService) RejectPlayerRemoval(ctx context.Context, teamID uint) (*team.Team, error) {
	return s.teams.RejectRemoval(ctx, teamID)
}

func (s *AdminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "count users")
	}
	pendingCaptains, err := s.users.CountPendingCaptains(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "count pending captains")
	}
	totalTeams, pendingRemovals, err := s.teams.Stats(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.matches.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	recentUsers, err := s.users.RecentUsers(ctx, RecentLimit)
	if err != nil {
		return nil, apperr.Internal(err, "list recent users")
	}
	recentMatches, err := s.matches.RecentMatches(ctx, RecentLimit)
	if err != nil {
		return nil, err
	}

	stats := DashboardStats{
		TotalCaptains:    byRole[user.RoleCaptain],
		TotalPlayers:     byRole[user.RolePlayer],
		PendingCaptains:  pendingCaptains,
		TotalTeams:       totalTeams,
		UpcomingMatches:  byStatus[match.StatusUpcoming],
		LiveMatches:      byStatus[match.StatusLive],
		CompletedMatches: byStatus[match.StatusCompleted],
		CancelledMatches: byStatus[match.StatusCancelled],
		PendingRemovals:  pendingRemovals,
	}
	for _, n := range byRole {
		stats.TotalUsers += n
	}
	for _, n := range byStatus {
		stats.TotalMatches += n
	}

	return &Dashboard{
		Statistics: stats,
		RecentActivities: RecentActivities{
			RecentUsers:   user.ToResponses(recentUsers),
			RecentMatches: match.ToResponses(recentMatches),
		},
	}, nil
}
