package team

import (
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/DhavalSuthar-24/leaguehub/internal/testutil"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperr"
	"github.com/DhavalSuthar-24/leaguehub/pkg/logger"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type teamFixture struct {
	db      *gorm.DB
	service *TeamService
	repo    TeamRepository
	users   user.UserRepository
	seq     int
}

func newTeamFixture(t *testing.T) *teamFixture {
	t.Helper()
	db := testutil.NewDB(t, &user.User{}, &Team{}, &TeamPlayer{}, &TeamInvitation{})
	// minimal match tables so team deletion can detach matches
	require.NoError(t, db.Exec(`CREATE TABLE matches (id integer primary key, winner_id integer)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE match_teams (id integer primary key, match_id integer, position integer, team_id integer, score integer)`).Error)

	repo := NewTeamRepository(db)
	users := user.NewUserRepository(db)
	return &teamFixture{
		db:      db,
		service: NewTeamService(repo, users, logger.Nop()),
		repo:    repo,
		users:   users,
	}
}

func (f *teamFixture) newUser(t *testing.T, role user.Role, approved bool) *user.User {
	t.Helper()
	f.seq++
	u := user.New(fmt.Sprintf("%s %d", role, f.seq), fmt.Sprintf("u%d@example.com", f.seq), "", role, "hash", fmt.Sprintf("uid%05d", f.seq))
	if role == user.RoleCaptain {
		u.IsApproved = approved
	}
	require.NoError(t, f.users.CreateUser(context.Background(), u))
	return u
}

func (f *teamFixture) newTeam(t *testing.T) (*Team, *user.User) {
	t.Helper()
	captain := f.newUser(t, user.RoleCaptain, true)
	team, err := f.service.CreateTeam(context.Background(), captain, CreateTeamRequest{Name: "Team " + captain.UniqueID})
	require.NoError(t, err)
	return team, captain
}

func (f *teamFixture) join(t *testing.T, team *Team, captain *user.User) *user.User {
	t.Helper()
	ctx := context.Background()
	p := f.newUser(t, user.RolePlayer, true)
	_, err := f.service.InvitePlayer(ctx, captain, InvitePlayerRequest{TeamID: team.ID, PlayerUniqueID: p.UniqueID})
	require.NoError(t, err)
	_, err = f.service.AcceptInvitation(ctx, p, team.ID)
	require.NoError(t, err)
	return p
}

func TestCreateTeam(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()

	pending := f.newUser(t, user.RoleCaptain, false)
	_, err := f.service.CreateTeam(ctx, pending, CreateTeamRequest{Name: "Nope"})
	require.True(t, apperr.Is(err, apperr.ErrForbidden))

	team, captain := f.newTeam(t)
	require.Len(t, team.Players, 1)
	res := ToResponse(team)
	require.Equal(t, captain.ID, res.Captain.ID)
	require.Equal(t, CaptainJerseyNumber, res.JerseyNumbers[strconv.FormatUint(uint64(captain.ID), 10)])

	_, err = f.service.CreateTeam(ctx, captain, CreateTeamRequest{Name: "Second"})
	require.True(t, apperr.Is(err, apperr.ErrConflict))
}

func TestInviteAcceptFlow(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()
	team, captain := f.newTeam(t)
	player := f.newUser(t, user.RolePlayer, true)

	invited, err := f.service.InvitePlayer(ctx, captain, InvitePlayerRequest{PlayerUniqueID: player.UniqueID})
	require.NoError(t, err)
	require.True(t, invited.HasInvitation(player.ID))

	_, err = f.service.InvitePlayer(ctx, captain, InvitePlayerRequest{TeamID: team.ID, PlayerUniqueID: player.UniqueID})
	require.True(t, apperr.Is(err, apperr.ErrConflict))

	joined, err := f.service.AcceptInvitation(ctx, player, team.ID)
	require.NoError(t, err)
	require.True(t, joined.HasPlayer(player.ID))
	require.False(t, joined.HasInvitation(player.ID))

	// a member can no longer be invited anywhere
	other, otherCaptain := f.newTeam(t)
	_, err = f.service.InvitePlayer(ctx, otherCaptain, InvitePlayerRequest{TeamID: other.ID, PlayerUniqueID: player.UniqueID})
	require.True(t, apperr.Is(err, apperr.ErrConflict))
}

func TestInvitePlayer_Rejections(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()
	team, captain := f.newTeam(t)
	_, intruder := f.newTeam(t)

	_, err := f.service.InvitePlayer(ctx, captain, InvitePlayerRequest{TeamID: team.ID, PlayerUniqueID: "nobody00"})
	require.True(t, apperr.Is(err, apperr.ErrNotFound))

	// unique ids of non-players do not resolve
	_, err = f.service.InvitePlayer(ctx, captain, InvitePlayerRequest{TeamID: team.ID, PlayerUniqueID: intruder.UniqueID})
	require.True(t, apperr.Is(err, apperr.ErrNotFound))

	p := f.newUser(t, user.RolePlayer, true)
	_, err = f.service.InvitePlayer(ctx, intruder, InvitePlayerRequest{TeamID: team.ID, PlayerUniqueID: p.UniqueID})
	require.True(t, apperr.Is(err, apperr.ErrForbidden))

	_, err = f.service.InvitePlayer(ctx, captain, InvitePlayerRequest{TeamID: 9999, PlayerUniqueID: p.UniqueID})
	require.True(t, apperr.Is(err, apperr.ErrNotFound))
}

func TestAccept_DropsOtherInvitations(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()
	teamA, captainA := f.newTeam(t)
	teamB, captainB := f.newTeam(t)
	player := f.newUser(t, user.RolePlayer, true)

	_, err := f.service.InvitePlayer(ctx, captainA, InvitePlayerRequest{TeamID: teamA.ID, PlayerUniqueID: player.UniqueID})
	require.NoError(t, err)
	_, err = f.service.InvitePlayer(ctx, captainB, InvitePlayerRequest{TeamID: teamB.ID, PlayerUniqueID: player.UniqueID})
	require.NoError(t, err)

	n, err := f.service.CountInvitations(ctx, player)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	_, err = f.service.AcceptInvitation(ctx, player, teamA.ID)
	require.NoError(t, err)

	invs, err := f.service.PlayerInvitations(ctx, player)
	require.NoError(t, err)
	require.Empty(t, invs)

	// the dropped invitation cannot be accepted anymore
	_, err = f.service.AcceptInvitation(ctx, player, teamB.ID)
	require.True(t, apperr.Is(err, apperr.ErrConflict))
}

func TestAccept_SecondAcceptLoses(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()
	teamA, _ := f.newTeam(t)
	teamB, _ := f.newTeam(t)
	player := f.newUser(t, user.RolePlayer, true)

	// invitations written directly so both survive until the second accept
	require.NoError(t, f.repo.CreateInvitation(ctx, &TeamInvitation{TeamID: teamA.ID, UserID: player.ID}))
	require.NoError(t, f.repo.CreateInvitation(ctx, &TeamInvitation{TeamID: teamB.ID, UserID: player.ID}))
	require.NoError(t, f.repo.AddPlayer(ctx, &TeamPlayer{TeamID: teamA.ID, UserID: player.ID}))

	_, err := f.service.AcceptInvitation(ctx, player, teamB.ID)
	require.True(t, apperr.Is(err, apperr.ErrConflict))

	// the unique membership index backs the check
	err = f.repo.AddPlayer(ctx, &TeamPlayer{TeamID: teamB.ID, UserID: player.ID})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestAcceptAndDecline_NotInvited(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()
	team, _ := f.newTeam(t)
	player := f.newUser(t, user.RolePlayer, true)

	_, err := f.service.AcceptInvitation(ctx, player, team.ID)
	require.True(t, apperr.Is(err, apperr.ErrValidation))

	err = f.service.DeclineInvitation(ctx, player, team.ID)
	require.True(t, apperr.Is(err, apperr.ErrValidation))

	_, err = f.service.AcceptInvitation(ctx, player, 4242)
	require.True(t, apperr.Is(err, apperr.ErrNotFound))
}

func TestDeclineInvitation(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()
	team, captain := f.newTeam(t)
	player := f.newUser(t, user.RolePlayer, true)

	_, err := f.service.InvitePlayer(ctx, captain, InvitePlayerRequest{TeamID: team.ID, PlayerUniqueID: player.UniqueID})
	require.NoError(t, err)
	require.NoError(t, f.service.DeclineInvitation(ctx, player, team.ID))

	reloaded, err := f.service.GetTeam(ctx, team.ID)
	require.NoError(t, err)
	require.False(t, reloaded.HasInvitation(player.ID))
	require.False(t, reloaded.HasPlayer(player.ID))
}

func TestAssignJersey(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()
	team, captain := f.newTeam(t)
	p1 := f.join(t, team, captain)
	p2 := f.join(t, team, captain)
	outsider := f.newUser(t, user.RolePlayer, true)

	got, err := f.service.AssignJersey(ctx, captain, AssignJerseyRequest{TeamID: team.ID, PlayerID: p1.ID, JerseyNumber: 10})
	require.NoError(t, err)
	require.Equal(t, 10, ToResponse(got).JerseyNumbers[strconv.FormatUint(uint64(p1.ID), 10)])

	// same player, same number is fine
	_, err = f.service.AssignJersey(ctx, captain, AssignJerseyRequest{TeamID: team.ID, PlayerID: p1.ID, JerseyNumber: 10})
	require.NoError(t, err)

	_, err = f.service.AssignJersey(ctx, captain, AssignJerseyRequest{TeamID: team.ID, PlayerID: p2.ID, JerseyNumber: 10})
	require.True(t, apperr.Is(err, apperr.ErrConflict))

	_, err = f.service.AssignJersey(ctx, captain, AssignJerseyRequest{TeamID: team.ID, PlayerID: p2.ID, JerseyNumber: CaptainJerseyNumber})
	require.True(t, apperr.Is(err, apperr.ErrConflict))

	_, err = f.service.AssignJersey(ctx, captain, AssignJerseyRequest{TeamID: team.ID, PlayerID: outsider.ID, JerseyNumber: 7})
	require.True(t, apperr.Is(err, apperr.ErrValidation))

	_, err = f.service.AssignJersey(ctx, captain, AssignJerseyRequest{TeamID: team.ID, PlayerID: p2.ID, JerseyNumber: 0})
	require.True(t, apperr.Is(err, apperr.ErrValidation))
}

func TestRemovalRequest_ApproveAndReject(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()
	team, captain := f.newTeam(t)
	p1 := f.join(t, team, captain)
	p2 := f.join(t, team, captain)

	_, err := f.service.RequestRemoval(ctx, captain, RemovePlayerRequest{TeamID: team.ID, PlayerID: captain.ID})
	require.True(t, apperr.Is(err, apperr.ErrValidation))

	_, err = f.service.RequestRemoval(ctx, captain, RemovePlayerRequest{TeamID: team.ID, PlayerID: p1.ID})
	require.NoError(t, err)

	// a second request overwrites the first
	flagged, err := f.service.RequestRemoval(ctx, captain, RemovePlayerRequest{TeamID: team.ID, PlayerID: p2.ID})
	require.NoError(t, err)
	require.Equal(t, p2.ID, *flagged.RemovalRequestedID)

	pending, err := f.service.PendingRemovals(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	rejected, err := f.service.RejectRemoval(ctx, team.ID)
	require.NoError(t, err)
	require.Nil(t, rejected.RemovalRequestedID)
	require.True(t, rejected.HasPlayer(p2.ID))

	_, err = f.service.RejectRemoval(ctx, team.ID)
	require.True(t, apperr.Is(err, apperr.ErrValidation))

	_, err = f.service.RequestRemoval(ctx, captain, RemovePlayerRequest{TeamID: team.ID, PlayerID: p1.ID})
	require.NoError(t, err)
	approved, err := f.service.ApproveRemoval(ctx, team.ID)
	require.NoError(t, err)
	require.Nil(t, approved.RemovalRequestedID)
	require.False(t, approved.HasPlayer(p1.ID))
	require.True(t, approved.HasPlayer(p2.ID))

	// the removed player is free to join another team
	_, err = f.service.PlayerTeam(ctx, p1)
	require.True(t, apperr.Is(err, apperr.ErrNotFound))
}

func TestUpdateTeam_Ownership(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()
	team, captain := f.newTeam(t)
	_, otherCaptain := f.newTeam(t)
	admin := f.newUser(t, user.RoleAdmin, true)

	name := "Renamed"
	_, err := f.service.UpdateTeam(ctx, otherCaptain, team.ID, UpdateTeamRequest{Name: &name})
	require.True(t, apperr.Is(err, apperr.ErrForbidden))

	updated, err := f.service.UpdateTeam(ctx, captain, team.ID, UpdateTeamRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)

	desc := "by admin"
	updated, err = f.service.UpdateTeam(ctx, admin, team.ID, UpdateTeamRequest{Description: &desc})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
	require.Equal(t, "by admin", updated.Description)
}

func TestUpdateTeam_KeepsPendingRemoval(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()
	team, captain := f.newTeam(t)
	p := f.join(t, team, captain)

	stale, err := f.repo.GetTeamByID(ctx, team.ID)
	require.NoError(t, err)
	require.Nil(t, stale.RemovalRequestedID)

	_, err = f.service.RequestRemoval(ctx, captain, RemovePlayerRequest{TeamID: team.ID, PlayerID: p.ID})
	require.NoError(t, err)

	stale.Name = "Renamed"
	require.NoError(t, f.repo.UpdateTeam(ctx, stale))

	got, err := f.repo.GetTeamByID(ctx, team.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Name)
	require.NotNil(t, got.RemovalRequestedID)
	require.Equal(t, p.ID, *got.RemovalRequestedID)
}

func TestDeleteTeam_DetachesMatches(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()
	team, captain := f.newTeam(t)
	player := f.join(t, team, captain)
	other, _ := f.newTeam(t)
	invitee := f.newUser(t, user.RolePlayer, true)
	_, err := f.service.InvitePlayer(ctx, captain, InvitePlayerRequest{TeamID: team.ID, PlayerUniqueID: invitee.UniqueID})
	require.NoError(t, err)

	require.NoError(t, f.db.Exec(`INSERT INTO matches (id, winner_id) VALUES (1, ?)`, team.ID).Error)
	require.NoError(t, f.db.Exec(`INSERT INTO match_teams (match_id, position, team_id, score) VALUES (1, 1, ?, 3), (1, 2, ?, 1)`, team.ID, other.ID).Error)

	_, otherCaptain := f.newTeam(t)
	require.True(t, apperr.Is(f.service.DeleteTeam(ctx, otherCaptain, team.ID), apperr.ErrForbidden))

	require.NoError(t, f.service.DeleteTeam(ctx, captain, team.ID))

	_, err = f.service.GetTeam(ctx, team.ID)
	require.True(t, apperr.Is(err, apperr.ErrNotFound))

	var detached, kept int64
	require.NoError(t, f.db.Table("match_teams").Where("team_id IS NULL").Count(&detached).Error)
	require.NoError(t, f.db.Table("match_teams").Where("team_id = ?", other.ID).Count(&kept).Error)
	require.Equal(t, int64(1), detached)
	require.Equal(t, int64(1), kept)

	var winners int64
	require.NoError(t, f.db.Table("matches").Where("winner_id IS NOT NULL").Count(&winners).Error)
	require.Zero(t, winners)

	_, err = f.service.PlayerTeam(ctx, player)
	require.True(t, apperr.Is(err, apperr.ErrNotFound))
	n, err := f.service.CountInvitations(ctx, invitee)
	require.NoError(t, err)
	require.Zero(t, n)

	// the captain may start over
	_, err = f.service.CreateTeam(ctx, captain, CreateTeamRequest{Name: "Again"})
	require.NoError(t, err)
}

func TestMyTeamAndPlayerTeam(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()
	loner := f.newUser(t, user.RoleCaptain, true)
	_, err := f.service.CaptainTeam(ctx, loner)
	require.True(t, apperr.Is(err, apperr.ErrNotFound))

	team, captain := f.newTeam(t)
	mine, err := f.service.CaptainTeam(ctx, captain)
	require.NoError(t, err)
	require.Equal(t, team.ID, mine.ID)

	p := f.join(t, team, captain)
	theirs, err := f.service.PlayerTeam(ctx, p)
	require.NoError(t, err)
	require.Equal(t, team.ID, theirs.ID)

	total, removals, err := f.service.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Zero(t, removals)
}
