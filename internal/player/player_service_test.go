package player

import (
	"context"
	"testing"

	"github.com/DhavalSuthar-24/leaguehub/internal/match"
	"github.com/DhavalSuthar-24/leaguehub/internal/team"
	"github.com/DhavalSuthar-24/leaguehub/internal/testutil"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperr"
	"github.com/DhavalSuthar-24/leaguehub/pkg/logger"
	"github.com/stretchr/testify/require"
)

func TestPlayerViews(t *testing.T) {
	db := testutil.NewDB(t,
		&user.User{}, &team.Team{}, &team.TeamPlayer{}, &team.TeamInvitation{},
		&match.Match{}, &match.MatchTeam{},
	)
	ctx := context.Background()
	users := user.NewUserRepository(db)
	teamRepo := team.NewTeamRepository(db)
	teams := team.NewTeamService(teamRepo, users, logger.Nop())
	matches := match.NewMatchService(match.NewGormMatchRepository(db), teamRepo, logger.Nop())
	svc := NewPlayerService(teams, matches)

	newCaptainTeam := func(uid string) (*user.User, *team.Team) {
		c := user.New("Cap "+uid, uid+"@example.com", "", user.RoleCaptain, "hash", uid)
		c.IsApproved = true
		require.NoError(t, users.CreateUser(ctx, c))
		tm, err := teams.CreateTeam(ctx, c, team.CreateTeamRequest{Name: "Team " + uid})
		require.NoError(t, err)
		return c, tm
	}
	capA, teamA := newCaptainTeam("capaaaaa")
	capB, teamB := newCaptainTeam("capbbbbb")

	p := user.New("Player", "player@example.com", "", user.RolePlayer, "hash", "ply00001")
	require.NoError(t, users.CreateUser(ctx, p))

	// no team yet
	d, err := svc.Dashboard(ctx, p)
	require.NoError(t, err)
	require.Nil(t, d.Team)
	require.Empty(t, d.RecentMatches)
	ms, err := svc.Matches(ctx, p)
	require.NoError(t, err)
	require.Empty(t, ms)
	_, err = svc.Team(ctx, p)
	require.True(t, apperr.Is(err, apperr.ErrNotFound))

	_, err = teams.InvitePlayer(ctx, capA, team.InvitePlayerRequest{TeamID: teamA.ID, PlayerUniqueID: p.UniqueID})
	require.NoError(t, err)
	_, err = teams.InvitePlayer(ctx, capB, team.InvitePlayerRequest{TeamID: teamB.ID, PlayerUniqueID: p.UniqueID})
	require.NoError(t, err)

	invs, err := svc.Invitations(ctx, p)
	require.NoError(t, err)
	require.Len(t, invs, 2)
	res := team.ToInvitationResponses(invs)
	require.NotNil(t, res[0].Captain)

	require.NoError(t, svc.DeclineInvitation(ctx, p, teamB.ID))
	joined, err := svc.AcceptInvitation(ctx, p, teamA.ID)
	require.NoError(t, err)
	require.True(t, joined.HasPlayer(p.ID))

	admin := user.New("Admin", "admin@example.com", "", user.RoleAdmin, "hash", "adm00001")
	require.NoError(t, users.CreateUser(ctx, admin))
	_, err = matches.CreateMatch(ctx, admin, match.CreateMatchRequest{Team1ID: teamA.ID, Team2ID: teamB.ID})
	require.NoError(t, err)

	d, err = svc.Dashboard(ctx, p)
	require.NoError(t, err)
	require.NotNil(t, d.Team)
	require.Equal(t, teamA.ID, d.Team.ID)
	require.Zero(t, d.InvitationsCount)
	require.Len(t, d.RecentMatches, 1)

	ms, err = svc.Matches(ctx, p)
	require.NoError(t, err)
	require.Len(t, ms, 1)
}
