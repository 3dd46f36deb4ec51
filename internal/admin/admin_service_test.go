package admin

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DhavalSuthar-24/leaguehub/internal/match"
	"github.com/DhavalSuthar-24/leaguehub/internal/payment"
	"github.com/DhavalSuthar-24/leaguehub/internal/team"
	"github.com/DhavalSuthar-24/leaguehub/internal/testutil"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperr"
	"github.com/DhavalSuthar-24/leaguehub/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type adminFixture struct {
	db       *gorm.DB
	service  *AdminService
	users    user.UserRepository
	sessions user.SessionRepository
	teams    *team.TeamService
	matches  *match.MatchService
	payments *payment.PaymentService
	admin    *user.User
	seq      int
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	db := testutil.NewDB(t,
		&user.User{}, &user.Session{}, &user.TokenBlacklist{},
		&team.Team{}, &team.TeamPlayer{}, &team.TeamInvitation{},
		&match.Match{}, &match.MatchTeam{},
		&payment.Transaction{},
	)
	log := logger.Nop()
	users := user.NewUserRepository(db)
	teamRepo := team.NewTeamRepository(db)
	teams := team.NewTeamService(teamRepo, users, log)
	matches := match.NewMatchService(match.NewGormMatchRepository(db), teamRepo, log)

	f := &adminFixture{
		db:       db,
		service:  NewAdminService(GormUnitOfWork(db), users, teams, matches, 365*24*time.Hour, log),
		users:    users,
		sessions: user.NewSessionRepository(db),
		teams:    teams,
		matches:  matches,
		payments: payment.NewPaymentService(payment.NewPaymentRepository(db), 1, log),
	}
	f.admin = f.newUser(t, user.RoleAdmin)
	return f
}

func (f *adminFixture) newUser(t *testing.T, role user.Role) *user.User {
	t.Helper()
	f.seq++
	u := user.New(fmt.Sprintf("User %d", f.seq), fmt.Sprintf("u%d@example.com", f.seq), "", role, "hash", fmt.Sprintf("usr%05d", f.seq))
	require.NoError(t, f.users.CreateUser(context.Background(), u))
	return u
}

func (f *adminFixture) approvedCaptainWithTeam(t *testing.T) (*user.User, *team.Team) {
	t.Helper()
	ctx := context.Background()
	captain := f.newUser(t, user.RoleCaptain)
	captain, err := f.service.ApproveCaptain(ctx, captain.ID)
	require.NoError(t, err)
	tm, err := f.teams.CreateTeam(ctx, captain, team.CreateTeamRequest{Name: "Team " + captain.UniqueID})
	require.NoError(t, err)
	return captain, tm
}

func (f *adminFixture) join(t *testing.T, tm *team.Team, captain *user.User) *user.User {
	t.Helper()
	ctx := context.Background()
	p := f.newUser(t, user.RolePlayer)
	_, err := f.teams.InvitePlayer(ctx, captain, team.InvitePlayerRequest{TeamID: tm.ID, PlayerUniqueID: p.UniqueID})
	require.NoError(t, err)
	_, err = f.teams.AcceptInvitation(ctx, p, tm.ID)
	require.NoError(t, err)
	return p
}

func TestApproveCaptain(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	f.service.now = func() time.Time { return fixed }

	captain := f.newUser(t, user.RoleCaptain)
	require.False(t, captain.IsApproved)

	approved, err := f.service.ApproveCaptain(ctx, captain.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
	assert.Equal(t, user.SubscriptionActive, *approved.SubscriptionStatus)
	assert.True(t, fixed.AddDate(0, 0, 365).Equal(*approved.SubscriptionExpiryDate))

	stored, err := f.users.GetUserByID(ctx, captain.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsApproved)

	player := f.newUser(t, user.RolePlayer)
	_, err = f.service.ApproveCaptain(ctx, player.ID)
	assert.True(t, apperr.Is(err, apperr.ErrNotFound))
	_, err = f.service.ApproveCaptain(ctx, 9999)
	assert.True(t, apperr.Is(err, apperr.ErrNotFound))
}

func TestRejectCaptain(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	captain := f.newUser(t, user.RoleCaptain)

	require.NoError(t, f.service.RejectCaptain(ctx, captain.ID))
	_, err := f.users.GetUserByID(ctx, captain.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	player := f.newUser(t, user.RolePlayer)
	assert.True(t, apperr.Is(f.service.RejectCaptain(ctx, player.ID), apperr.ErrNotFound))
}

func TestDeleteUser_Captain(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	captain, tm := f.approvedCaptainWithTeam(t)
	member := f.join(t, tm, captain)
	_, rival := f.approvedCaptainWithTeam(t)

	m, err := f.matches.CreateMatch(ctx, f.admin, match.CreateMatchRequest{Team1ID: tm.ID, Team2ID: rival.ID})
	require.NoError(t, err)
	_, err = f.payments.ProcessPayment(ctx, captain, payment.PaymentRequest{Amount: 30})
	require.NoError(t, err)
	require.NoError(t, f.sessions.CreateSession(ctx, &user.Session{UserID: captain.ID, Token: "tok-captain", ExpiresAt: time.Now().Add(time.Hour)}))

	require.NoError(t, f.service.DeleteUser(ctx, captain.ID))

	_, err = f.users.GetUserByID(ctx, captain.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = f.teams.GetTeam(ctx, tm.ID)
	assert.True(t, apperr.Is(err, apperr.ErrNotFound))
	_, err = f.teams.PlayerTeam(ctx, member)
	assert.True(t, apperr.Is(err, apperr.ErrNotFound), "members are released with the team")

	ok, err := f.sessions.SessionExists(ctx, captain.ID, "tok-captain")
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := f.matches.GetMatch(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, got.Teams, 2)
	assert.Nil(t, got.Teams[0].TeamID)
	require.NotNil(t, got.Teams[1].TeamID)
	assert.Equal(t, rival.ID, *got.Teams[1].TeamID)

	txns, err := f.payments.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Nil(t, txns[0].CaptainID)
}

func TestDeleteUser_Player(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	captain, tm := f.approvedCaptainWithTeam(t)
	member := f.join(t, tm, captain)
	_, err := f.teams.RequestRemoval(ctx, captain, team.RemovePlayerRequest{TeamID: tm.ID, PlayerID: member.ID})
	require.NoError(t, err)

	otherCaptain, other := f.approvedCaptainWithTeam(t)
	invitee := f.newUser(t, user.RolePlayer)
	_, err = f.teams.InvitePlayer(ctx, otherCaptain, team.InvitePlayerRequest{TeamID: other.ID, PlayerUniqueID: invitee.UniqueID})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteUser(ctx, member.ID))
	require.NoError(t, f.service.DeleteUser(ctx, invitee.ID))

	reloaded, err := f.teams.GetTeam(ctx, tm.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.HasPlayer(member.ID))
	assert.Nil(t, reloaded.RemovalRequestedID)
	assert.True(t, reloaded.HasPlayer(captain.ID))

	reloaded, err = f.teams.GetTeam(ctx, other.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.HasInvitation(invitee.ID))
}

func TestDeleteUser_Rejections(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	err := f.service.DeleteUser(ctx, f.admin.ID)
	assert.True(t, apperr.Is(err, apperr.ErrValidation))

	err = f.service.DeleteUser(ctx, 4040)
	assert.True(t, apperr.Is(err, apperr.ErrNotFound))
}

func TestDeleteUser_RollsBackOnFailure(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	captain, tm := f.approvedCaptainWithTeam(t)
	member := f.join(t, tm, captain)

	// the cascade reaches the payments table after the team is gone
	require.NoError(t, f.db.Migrator().DropTable(&payment.Transaction{}))

	err := f.service.DeleteUser(ctx, captain.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.ErrInternal))

	_, err = f.users.GetUserByID(ctx, captain.ID)
	require.NoError(t, err)
	kept, err := f.teams.GetTeam(ctx, tm.ID)
	require.NoError(t, err)
	assert.True(t, kept.HasPlayer(member.ID))
	assert.True(t, kept.HasPlayer(captain.ID))
}

func TestRemovalDecisions(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	captain, tm := f.approvedCaptainWithTeam(t)
	member := f.join(t, tm, captain)

	_, err := f.teams.RequestRemoval(ctx, captain, team.RemovePlayerRequest{TeamID: tm.ID, PlayerID: member.ID})
	require.NoError(t, err)

	pending, err := f.service.PendingRemovals(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	kept, err := f.service.RejectPlayerRemoval(ctx, tm.ID)
	require.NoError(t, err)
	assert.True(t, kept.HasPlayer(member.ID))

	_, err = f.service.ApprovePlayerRemoval(ctx, tm.ID)
	assert.True(t, apperr.Is(err, apperr.ErrValidation))

	_, err = f.teams.RequestRemoval(ctx, captain, team.RemovePlayerRequest{TeamID: tm.ID, PlayerID: member.ID})
	require.NoError(t, err)
	removed, err := f.service.ApprovePlayerRemoval(ctx, tm.ID)
	require.NoError(t, err)
	assert.False(t, removed.HasPlayer(member.ID))
}

func TestDashboardAndListings(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	_, a := f.approvedCaptainWithTeam(t)
	_, b := f.approvedCaptainWithTeam(t)
	f.newUser(t, user.RoleCaptain)
	f.newUser(t, user.RolePlayer)

	m, err := f.matches.CreateMatch(ctx, f.admin, match.CreateMatchRequest{Team1ID: a.ID, Team2ID: b.ID})
	require.NoError(t, err)
	_, err = f.matches.UpdateStatus(ctx, match.UpdateStatusRequest{MatchID: m.ID, Status: "Live"})
	require.NoError(t, err)

	d, err := f.service.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), d.Statistics.TotalUsers)
	assert.Equal(t, int64(3), d.Statistics.TotalCaptains)
	assert.Equal(t, int64(1), d.Statistics.TotalPlayers)
	assert.Equal(t, int64(1), d.Statistics.PendingCaptains)
	assert.Equal(t, int64(2), d.Statistics.TotalTeams)
	assert.Equal(t, int64(1), d.Statistics.TotalMatches)
	assert.Equal(t, int64(1), d.Statistics.LiveMatches)
	assert.Zero(t, d.Statistics.PendingRemovals)
	assert.Len(t, d.RecentActivities.RecentUsers, RecentLimit)
	assert.Len(t, d.RecentActivities.RecentMatches, 1)

	pending, err := f.service.PendingCaptains(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	captains, err := f.service.ListUsers(ctx, "Captain")
	require.NoError(t, err)
	assert.Len(t, captains, 3)

	_, err = f.service.ListUsers(ctx, "Referee")
	assert.True(t, apperr.Is(err, apperr.ErrValidation))
}
