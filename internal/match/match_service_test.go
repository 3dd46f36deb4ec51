package match

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DhavalSuthar-24/leaguehub/internal/team"
	"github.com/DhavalSuthar-24/leaguehub/internal/testutil"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperr"
	"github.com/DhavalSuthar-24/leaguehub/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type matchFixture struct {
	service *MatchService
	teams   *team.TeamService
	admin   *user.User
	users   user.UserRepository
	seq     int
}

func newMatchFixture(t *testing.T) *matchFixture {
	t.Helper()
	db := testutil.NewDB(t,
		&user.User{}, &team.Team{}, &team.TeamPlayer{}, &team.TeamInvitation{},
		&Match{}, &MatchTeam{},
	)
	users := user.NewUserRepository(db)
	teamRepo := team.NewTeamRepository(db)

	admin := user.New("Admin", "admin@example.com", "", user.RoleAdmin, "hash", "admin001")
	require.NoError(t, users.CreateUser(context.Background(), admin))

	return &matchFixture{
		service: NewMatchService(NewGormMatchRepository(db), teamRepo, logger.Nop()),
		teams:   team.NewTeamService(teamRepo, users, logger.Nop()),
		admin:   admin,
		users:   users,
	}
}

func (f *matchFixture) newTeam(t *testing.T) (*team.Team, *user.User) {
	t.Helper()
	f.seq++
	captain := user.New(fmt.Sprintf("Captain %d", f.seq), fmt.Sprintf("c%d@example.com", f.seq), "", user.RoleCaptain, "hash", fmt.Sprintf("cap%05d", f.seq))
	captain.IsApproved = true
	require.NoError(t, f.users.CreateUser(context.Background(), captain))
	tm, err := f.teams.CreateTeam(context.Background(), captain, team.CreateTeamRequest{Name: fmt.Sprintf("Team %d", f.seq)})
	require.NoError(t, err)
	return tm, captain
}

func (f *matchFixture) newMatch(t *testing.T) (*Match, *team.Team, *team.Team) {
	t.Helper()
	a, _ := f.newTeam(t)
	b, _ := f.newTeam(t)
	m, err := f.service.CreateMatch(context.Background(), f.admin, CreateMatchRequest{Team1ID: a.ID, Team2ID: b.ID})
	require.NoError(t, err)
	return m, a, b
}

func score(n int) *int { return &n }

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to MatchStatus
		ok       bool
	}{
		{StatusUpcoming, StatusUpcoming, true},
		{StatusUpcoming, StatusLive, true},
		{StatusUpcoming, StatusCompleted, true},
		{StatusUpcoming, StatusCancelled, true},
		{StatusLive, StatusCompleted, true},
		{StatusLive, StatusCancelled, true},
		{StatusLive, StatusUpcoming, false},
		{StatusCompleted, StatusCompleted, true},
		{StatusCompleted, StatusLive, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusUpcoming, false},
		{StatusCancelled, StatusLive, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestResolveWinner(t *testing.T) {
	a, b := uint(1), uint(2)
	m := &Match{Status: StatusLive, Teams: []MatchTeam{{TeamID: &a, Score: 3}, {TeamID: &b, Score: 1}}}

	m.ResolveWinner()
	assert.Nil(t, m.WinnerID, "only completed matches have a winner")

	m.Status = StatusCompleted
	m.ResolveWinner()
	require.NotNil(t, m.WinnerID)
	assert.Equal(t, a, *m.WinnerID)

	m.Teams[1].Score = 3
	m.ResolveWinner()
	assert.Nil(t, m.WinnerID, "a tie has no winner")
}

func TestCreateMatch(t *testing.T) {
	f := newMatchFixture(t)
	ctx := context.Background()

	m, a, b := f.newMatch(t)
	assert.Equal(t, StatusUpcoming, m.Status)
	assert.Equal(t, DefaultLocation, m.Location)
	res := ToResponse(m)
	require.Len(t, res.Scores, 2)
	assert.Equal(t, a.ID, *res.Scores[0].TeamID)
	assert.Equal(t, b.ID, *res.Scores[1].TeamID)
	assert.Zero(t, res.Scores[0].Score)
	assert.Zero(t, res.Scores[1].Score)
	assert.Nil(t, res.Winner)
	require.NotNil(t, res.CreatedBy)
	assert.Equal(t, f.admin.ID, res.CreatedBy.ID)

	_, err := f.service.CreateMatch(ctx, f.admin, CreateMatchRequest{Team1ID: a.ID, Team2ID: a.ID})
	assert.True(t, apperr.Is(err, apperr.ErrValidation))

	_, err = f.service.CreateMatch(ctx, f.admin, CreateMatchRequest{Team1ID: a.ID, Team2ID: 999})
	assert.True(t, apperr.Is(err, apperr.ErrNotFound))

	when := time.Date(2030, 5, 1, 18, 0, 0, 0, time.UTC)
	m, err = f.service.CreateMatch(ctx, f.admin, CreateMatchRequest{Team1ID: b.ID, Team2ID: a.ID, MatchDate: &when, Location: "Riverside"})
	require.NoError(t, err)
	assert.Equal(t, "Riverside", m.Location)
	assert.True(t, when.Equal(m.MatchDate))
}

func TestScoreThenComplete(t *testing.T) {
	f := newMatchFixture(t)
	ctx := context.Background()
	m, a, _ := f.newMatch(t)

	m, err := f.service.UpdateScore(ctx, UpdateScoreRequest{MatchID: m.ID, TeamID: a.ID, Score: score(10)})
	require.NoError(t, err)
	assert.Equal(t, StatusLive, m.Status)
	assert.Nil(t, m.WinnerID)

	m, err = f.service.UpdateStatus(ctx, UpdateStatusRequest{MatchID: m.ID, Status: string(StatusCompleted)})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, m.Status)
	require.NotNil(t, m.WinnerID)
	assert.Equal(t, a.ID, *m.WinnerID)
	assert.Equal(t, a.Name, ToResponse(m).Winner.Name)
}

func TestScoreOnCompletedMatch_KeepsStatusAndRecomputesWinner(t *testing.T) {
	f := newMatchFixture(t)
	ctx := context.Background()
	m, a, b := f.newMatch(t)

	_, err := f.service.UpdateScore(ctx, UpdateScoreRequest{MatchID: m.ID, TeamID: a.ID, Score: score(2)})
	require.NoError(t, err)
	_, err = f.service.UpdateStatus(ctx, UpdateStatusRequest{MatchID: m.ID, Status: string(StatusCompleted)})
	require.NoError(t, err)

	m, err = f.service.UpdateScore(ctx, UpdateScoreRequest{MatchID: m.ID, TeamID: b.ID, Score: score(5)})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, m.Status)
	require.NotNil(t, m.WinnerID)
	assert.Equal(t, b.ID, *m.WinnerID)

	m, err = f.service.UpdateScore(ctx, UpdateScoreRequest{MatchID: m.ID, TeamID: a.ID, Score: score(5)})
	require.NoError(t, err)
	assert.Nil(t, m.WinnerID)
}

func TestCompleteWithTie(t *testing.T) {
	f := newMatchFixture(t)
	ctx := context.Background()
	m, _, _ := f.newMatch(t)

	m, err := f.service.UpdateStatus(ctx, UpdateStatusRequest{MatchID: m.ID, Status: string(StatusCompleted)})
	require.NoError(t, err)
	assert.Nil(t, m.WinnerID)
}

func TestUpdateScore_Rejections(t *testing.T) {
	f := newMatchFixture(t)
	ctx := context.Background()
	m, a, _ := f.newMatch(t)
	outsider, _ := f.newTeam(t)

	_, err := f.service.UpdateScore(ctx, UpdateScoreRequest{MatchID: m.ID, TeamID: outsider.ID, Score: score(1)})
	assert.True(t, apperr.Is(err, apperr.ErrNotFound))

	_, err = f.service.UpdateScore(ctx, UpdateScoreRequest{MatchID: 404, TeamID: a.ID, Score: score(1)})
	assert.True(t, apperr.Is(err, apperr.ErrNotFound))

	_, err = f.service.UpdateScore(ctx, UpdateScoreRequest{MatchID: m.ID, TeamID: a.ID, Score: score(-1)})
	assert.True(t, apperr.Is(err, apperr.ErrValidation))

	_, err = f.service.UpdateStatus(ctx, UpdateStatusRequest{MatchID: m.ID, Status: string(StatusCancelled)})
	require.NoError(t, err)
	_, err = f.service.UpdateScore(ctx, UpdateScoreRequest{MatchID: m.ID, TeamID: a.ID, Score: score(1)})
	assert.True(t, apperr.Is(err, apperr.ErrConflict))
}

func TestUpdateStatus_Rejections(t *testing.T) {
	f := newMatchFixture(t)
	ctx := context.Background()
	m, _, _ := f.newMatch(t)

	_, err := f.service.UpdateStatus(ctx, UpdateStatusRequest{MatchID: m.ID, Status: "Postponed"})
	assert.True(t, apperr.Is(err, apperr.ErrValidation))

	_, err = f.service.UpdateStatus(ctx, UpdateStatusRequest{MatchID: m.ID, Status: string(StatusLive)})
	require.NoError(t, err)
	_, err = f.service.UpdateStatus(ctx, UpdateStatusRequest{MatchID: m.ID, Status: string(StatusUpcoming)})
	assert.True(t, apperr.Is(err, apperr.ErrConflict))

	_, err = f.service.UpdateStatus(ctx, UpdateStatusRequest{MatchID: m.ID, Status: string(StatusCompleted)})
	require.NoError(t, err)
	_, err = f.service.UpdateStatus(ctx, UpdateStatusRequest{MatchID: m.ID, Status: string(StatusCancelled)})
	assert.True(t, apperr.Is(err, apperr.ErrConflict))

	// same status is a no-op
	got, err := f.service.UpdateStatus(ctx, UpdateStatusRequest{MatchID: m.ID, Status: string(StatusCompleted)})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
}

func TestListUpdateDelete(t *testing.T) {
	f := newMatchFixture(t)
	ctx := context.Background()
	m1, a, _ := f.newMatch(t)
	m2, _, _ := f.newMatch(t)

	_, err := f.service.UpdateStatus(ctx, UpdateStatusRequest{MatchID: m2.ID, Status: string(StatusLive)})
	require.NoError(t, err)

	all, err := f.service.ListMatches(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	live, err := f.service.ListMatches(ctx, string(StatusLive))
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, m2.ID, live[0].ID)

	_, err = f.service.ListMatches(ctx, "Sideways")
	assert.True(t, apperr.Is(err, apperr.ErrValidation))

	forTeam, err := f.service.TeamMatches(ctx, a.ID, 0)
	require.NoError(t, err)
	require.Len(t, forTeam, 1)
	assert.Equal(t, m1.ID, forTeam[0].ID)

	counts, err := f.service.StatusCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[StatusUpcoming])
	assert.Equal(t, int64(1), counts[StatusLive])
	assert.Zero(t, counts[StatusCancelled])

	loc, desc := "North Field", "semi final"
	updated, err := f.service.UpdateMatch(ctx, m1.ID, UpdateMatchRequest{Location: &loc, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, loc, updated.Location)
	assert.Equal(t, desc, updated.Description)
	assert.Equal(t, StatusUpcoming, updated.Status)

	require.NoError(t, f.service.DeleteMatch(ctx, m1.ID))
	_, err = f.service.GetMatch(ctx, m1.ID)
	assert.True(t, apperr.Is(err, apperr.ErrNotFound))
	assert.True(t, apperr.Is(f.service.DeleteMatch(ctx, m1.ID), apperr.ErrNotFound))
}

func TestUpdateMatchDetails_KeepsConcurrentResult(t *testing.T) {
	f := newMatchFixture(t)
	ctx := context.Background()
	m, a, _ := f.newMatch(t)

	repo := f.service.repo
	stale, err := repo.GetMatchByID(ctx, m.ID)
	require.NoError(t, err)

	_, err = f.service.UpdateScore(ctx, UpdateScoreRequest{MatchID: m.ID, TeamID: a.ID, Score: score(2)})
	require.NoError(t, err)

	stale.Location = "East Ground"
	require.NoError(t, repo.UpdateMatchDetails(ctx, stale))

	got, err := f.service.GetMatch(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "East Ground", got.Location)
	assert.Equal(t, StatusLive, got.Status)
	assert.Equal(t, 2, got.Side(a.ID).Score)

	// a completed result survives a later details edit made from an old copy
	_, err = f.service.UpdateStatus(ctx, UpdateStatusRequest{MatchID: m.ID, Status: string(StatusCompleted)})
	require.NoError(t, err)
	stale.Description = "rain delay"
	require.NoError(t, repo.UpdateMatchDetails(ctx, stale))

	got, err = f.service.GetMatch(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
	require.NotNil(t, got.WinnerID)
	assert.Equal(t, a.ID, *got.WinnerID)
	assert.Equal(t, "rain delay", got.Description)
}

func TestDeletedTeamLeavesScoreRow(t *testing.T) {
	f := newMatchFixture(t)
	ctx := context.Background()
	m, a, b := f.newMatch(t)

	_, err := f.service.UpdateScore(ctx, UpdateScoreRequest{MatchID: m.ID, TeamID: a.ID, Score: score(4)})
	require.NoError(t, err)
	_, err = f.service.UpdateStatus(ctx, UpdateStatusRequest{MatchID: m.ID, Status: string(StatusCompleted)})
	require.NoError(t, err)

	require.NoError(t, f.teams.DeleteTeam(ctx, f.admin, a.ID))

	m, err = f.service.GetMatch(ctx, m.ID)
	require.NoError(t, err)
	assert.Nil(t, m.WinnerID)
	res := ToResponse(m)
	require.Len(t, res.Scores, 2)
	assert.Nil(t, res.Scores[0].TeamID)
	assert.Equal(t, 4, res.Scores[0].Score)
	require.Len(t, res.Teams, 1)
	assert.Equal(t, b.ID, res.Teams[0].ID)
}
