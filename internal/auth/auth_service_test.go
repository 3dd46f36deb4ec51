package auth

import (
	"context"
	"testing"
	"time"

	"github.com/DhavalSuthar-24/leaguehub/internal/middleware"
	"github.com/DhavalSuthar-24/leaguehub/internal/testutil"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperr"
	"github.com/DhavalSuthar-24/leaguehub/pkg/logger"
	"github.com/DhavalSuthar-24/leaguehub/utils"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const secret = "test-secret"

type authFixture struct {
	service *AuthService
	users   user.UserRepository
	gate    *middleware.Gate
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	utils.HashCost = bcrypt.MinCost

	db := testutil.NewDB(t, &user.User{}, &user.Session{}, &user.TokenBlacklist{})
	users := user.NewUserRepository(db)
	sessions := user.NewSessionRepository(db)
	return &authFixture{
		service: NewAuthService(users, sessions, secret, time.Hour, logger.Nop()),
		users:   users,
		gate:    middleware.NewGate(users, sessions, secret),
	}
}

func TestRegister(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	res, err := f.service.Register(ctx, RegisterRequest{
		Name: "Cap", Email: " Cap@Example.com ", Role: user.RoleCaptain, Password: "password123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	require.Equal(t, "cap@example.com", res.User.Email)
	require.False(t, res.User.IsApproved)
	require.Equal(t, user.SubscriptionInactive, *res.User.SubscriptionStatus)
	require.Len(t, res.User.UniqueID, 8)

	// the issued token passes the gate straight away
	u, err := f.gate.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	require.Equal(t, res.User.ID, u.ID)

	_, err = f.service.Register(ctx, RegisterRequest{
		Name: "Dup", Email: "cap@example.com", Role: user.RolePlayer, Password: "password123",
	})
	require.True(t, apperr.Is(err, apperr.ErrConflict))
}

func TestRegister_RejectsAdminRole(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Register(context.Background(), RegisterRequest{
		Name: "Root", Email: "root@example.com", Role: user.RoleAdmin, Password: "password123",
	})
	require.True(t, apperr.Is(err, apperr.ErrValidation))
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	reg, err := f.service.Register(ctx, RegisterRequest{
		Name: "Pat", Email: "pat@example.com", Role: user.RolePlayer, Password: "password123",
	})
	require.NoError(t, err)

	_, err = f.service.Login(ctx, LoginRequest{Email: "pat@example.com", Password: "wrong"})
	require.True(t, apperr.Is(err, apperr.ErrValidation))
	require.EqualError(t, err, "Invalid credentials")

	_, err = f.service.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "password123"})
	require.EqualError(t, err, "Invalid credentials")

	res, err := f.service.Login(ctx, LoginRequest{Email: "PAT@example.com", Password: "password123"})
	require.NoError(t, err)
	require.NotEqual(t, reg.Token, res.Token)

	// both sessions stay valid side by side
	_, err = f.gate.Authenticate(ctx, reg.Token)
	require.NoError(t, err)
	_, err = f.gate.Authenticate(ctx, res.Token)
	require.NoError(t, err)
}

func TestLogout_RevokesOnlyThatToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	first, err := f.service.Register(ctx, RegisterRequest{
		Name: "Pat", Email: "pat@example.com", Role: user.RolePlayer, Password: "password123",
	})
	require.NoError(t, err)
	second, err := f.service.Login(ctx, LoginRequest{Email: "pat@example.com", Password: "password123"})
	require.NoError(t, err)

	u, err := f.gate.Authenticate(ctx, first.Token)
	require.NoError(t, err)
	require.NoError(t, f.service.Logout(ctx, u, first.Token))

	_, err = f.gate.Authenticate(ctx, first.Token)
	require.True(t, apperr.Is(err, apperr.ErrUnauthenticated))

	_, err = f.gate.Authenticate(ctx, second.Token)
	require.NoError(t, err)
}

func TestUpdateProfile(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, RegisterRequest{Name: "A", Email: "a@example.com", Role: user.RolePlayer, Password: "password123"})
	require.NoError(t, err)
	res, err := f.service.Register(ctx, RegisterRequest{Name: "B", Email: "b@example.com", Role: user.RolePlayer, Password: "password123"})
	require.NoError(t, err)

	b, err := f.users.GetUserByID(ctx, res.User.ID)
	require.NoError(t, err)

	taken := "a@example.com"
	_, err = f.service.UpdateProfile(ctx, b, UpdateProfileRequest{Email: &taken})
	require.True(t, apperr.Is(err, apperr.ErrConflict))

	b, err = f.users.GetUserByID(ctx, res.User.ID)
	require.NoError(t, err)
	name, phone := "Bee", "12345"
	updated, err := f.service.UpdateProfile(ctx, b, UpdateProfileRequest{Name: &name, Phone: &phone})
	require.NoError(t, err)
	require.Equal(t, "Bee", updated.Name)
	require.Equal(t, "b@example.com", updated.Email)

	reloaded, err := f.users.GetUserByID(ctx, res.User.ID)
	require.NoError(t, err)
	require.Equal(t, "12345", reloaded.Phone)
}

func TestUpdateProfile_ConflictLeavesCallerUntouched(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, RegisterRequest{Name: "A", Email: "a@example.com", Role: user.RolePlayer, Password: "password123"})
	require.NoError(t, err)
	res, err := f.service.Register(ctx, RegisterRequest{Name: "B", Email: "b@example.com", Role: user.RolePlayer, Password: "password123"})
	require.NoError(t, err)

	b, err := f.users.GetUserByID(ctx, res.User.ID)
	require.NoError(t, err)
	name, taken := "Changed", "a@example.com"
	_, err = f.service.UpdateProfile(ctx, b, UpdateProfileRequest{Name: &name, Email: &taken})
	require.True(t, apperr.Is(err, apperr.ErrConflict))
	require.Equal(t, "B", b.Name)
	require.Equal(t, "b@example.com", b.Email)
}

func TestUpdateProfile_KeepsConcurrentApproval(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	res, err := f.service.Register(ctx, RegisterRequest{Name: "Cap", Email: "cap@example.com", Role: user.RoleCaptain, Password: "password123"})
	require.NoError(t, err)

	// the copy the gate loaded before the approval landed
	stale, err := f.users.GetUserByID(ctx, res.User.ID)
	require.NoError(t, err)

	approved, err := f.users.GetUserByID(ctx, res.User.ID)
	require.NoError(t, err)
	active := user.SubscriptionActive
	expiry := time.Now().Add(24 * time.Hour)
	approved.IsApproved = true
	approved.SubscriptionStatus = &active
	approved.SubscriptionExpiryDate = &expiry
	require.NoError(t, f.users.UpdateApproval(ctx, approved))

	name := "Captain Renamed"
	updated, err := f.service.UpdateProfile(ctx, stale, UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, name, updated.Name)
	require.True(t, updated.IsApproved)
	require.Equal(t, user.SubscriptionActive, *updated.SubscriptionStatus)

	reloaded, err := f.users.GetUserByID(ctx, res.User.ID)
	require.NoError(t, err)
	require.True(t, reloaded.IsApproved)
	require.Equal(t, user.SubscriptionActive, *reloaded.SubscriptionStatus)
	require.NotNil(t, reloaded.SubscriptionExpiryDate)
}

func TestEnsureAdmin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.EnsureAdmin(ctx, "", ""))
	require.NoError(t, f.service.EnsureAdmin(ctx, "admin@example.com", "adminpass"))
	require.NoError(t, f.service.EnsureAdmin(ctx, "admin@example.com", "adminpass"))

	admins, err := f.users.ListUsers(ctx, user.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	require.True(t, admins[0].IsApproved)

	res, err := f.service.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "adminpass"})
	require.NoError(t, err)
	require.Equal(t, user.RoleAdmin, res.User.Role)
}
