package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperr"
	"github.com/DhavalSuthar-24/leaguehub/pkg/token"
	pkgutils "github.com/DhavalSuthar-24/leaguehub/pkg/utils"
	"github.com/DhavalSuthar-24/leaguehub/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const uniqueIDAttempts = 5

type AuthService struct {
	users     user.UserRepository
	sessions  user.SessionRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       *zap.SugaredLogger
}

func NewAuthService(users user.UserRepository, sessions user.SessionRepository, jwtSecret string, tokenTTL time.Duration, log *zap.SugaredLogger) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if req.Role != user.RoleCaptain && req.Role != user.RolePlayer {
		return nil, apperr.Validation("Role must be Captain or Player")
	}
	email := normalizeEmail(req.Email)

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("User already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal(err, "lookup user by email")
	}

	u, err := s.createUser(ctx, strings.TrimSpace(req.Name), email, strings.TrimSpace(req.Phone), req.Role, req.Password)
	if err != nil {
		return nil, err
	}
	s.log.Infow("user registered", "user_id", u.ID, "role", u.Role)

	return s.issueToken(ctx, u)
}

func (s *AuthService) createUser(ctx context.Context, name, email, phone string, role user.Role, password string) (*user.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperr.Internal(err, "hash password")
	}

	uniqueID, err := s.freeUniqueID(ctx)
	if err != nil {
		return nil, err
	}

	u := user.New(name, email, phone, role, hash, uniqueID)
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("User already exists")
		}
		return nil, apperr.Internal(err, "create user")
	}
	return u, nil
}

func (s *AuthService) freeUniqueID(ctx context.Context) (string, error) {
	for i := 0; i < uniqueIDAttempts; i++ {
		id, err := pkgutils.GenerateUniqueID()
		if err != nil {
			return "", apperr.Internal(err, "generate unique id")
		}
		_, err = s.users.GetUserByUniqueID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return id, nil
		}
		if err != nil {
			return "", apperr.Internal(err, "lookup unique id")
		}
	}
	return "", apperr.Internal(errors.New("unique id space exhausted"), "generate unique id")
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.users.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("Invalid credentials")
		}
		return nil, apperr.Internal(err, "lookup user by email")
	}
	if !utils.CheckPassword(u.Password, req.Password) {
		s.log.Infow("login rejected", "user_id", u.ID)
		return nil, apperr.Validation("Invalid credentials")
	}

	return s.issueToken(ctx, u)
}

// issueToken signs a token for u and records it as one of u's sessions.
func (s *AuthService) issueToken(ctx context.Context, u *user.User) (*AuthResponse, error) {
	signed, err := token.GenerateJWT(u.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, apperr.Internal(err, "sign token")
	}

	session := &user.Session{UserID: u.ID, Token: signed, ExpiresAt: time.Now().Add(s.tokenTTL)}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, apperr.Internal(err, "create session")
	}

	return &AuthResponse{Token: signed, User: user.ToResponse(u)}, nil
}

// Logout ends the session and blacklists its token atomically.
func (s *AuthService) Logout(ctx context.Context, u *user.User, raw string) error {
	if err := s.sessions.RevokeSession(ctx, u.ID, raw); err != nil {
		return apperr.Internal(err, "revoke session")
	}
	s.log.Infow("user logged out", "user_id", u.ID)
	return nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, u *user.User, req UpdateProfileRequest) (*user.User, error) {
	name, phone, email := u.Name, u.Phone, u.Email
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		email = normalizeEmail(*req.Email)
		if email != u.Email {
			existing, err := s.users.GetUserByEmail(ctx, email)
			if err == nil && existing.ID != u.ID {
				return nil, apperr.Conflict("Email already in use")
			}
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Internal(err, "lookup user by email")
			}
		}
	}

	updated := *u
	updated.Name, updated.Phone, updated.Email = name, phone, email
	if err := s.users.UpdateProfile(ctx, &updated); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Email already in use")
		}
		return nil, apperr.Internal(err, "update profile")
	}

	fresh, err := s.users.GetUserByID(ctx, u.ID)
	if err != nil {
		return nil, apperr.FromStore(err, "reload profile", "User not found")
	}
	return fresh, nil
}

// EnsureAdmin creates the bootstrap admin account when no user owns email yet.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		if !existing.IsAdmin() {
			s.log.Warnw("bootstrap admin email belongs to a non-admin account", "user_id", existing.ID)
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Internal(err, "lookup bootstrap admin")
	}

	u, err := s.createUser(ctx, "Administrator", email, "", user.RoleAdmin, password)
	if err != nil {
		return err
	}
	s.log.Infow("bootstrap admin created", "user_id", u.ID)
	return nil
}
