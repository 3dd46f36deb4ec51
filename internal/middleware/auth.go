package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/DhavalSuthar-24/leaguehub/internal/common"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperr"
	"github.com/DhavalSuthar-24/leaguehub/pkg/responses"
	"github.com/DhavalSuthar-24/leaguehub/pkg/token"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Gate turns a bearer token into the user it belongs to. It never mutates state.
type Gate struct {
	users     user.UserRepository
	sessions  user.SessionRepository
	jwtSecret string
}

func NewGate(users user.UserRepository, sessions user.SessionRepository, jwtSecret string) *Gate {
	return &Gate{users: users, sessions: sessions, jwtSecret: jwtSecret}
}

// Authenticate checks, in order: blacklist, signature and expiry, the user
// still existing, and the token still being one of the user's sessions.
func (g *Gate) Authenticate(ctx context.Context, raw string) (*user.User, error) {
	if raw == "" {
		return nil, apperr.Unauthenticated("Not authorized, no token")
	}

	blacklisted, err := g.sessions.IsBlacklisted(ctx, raw)
	if err != nil {
		return nil, apperr.Internal(err, "check token blacklist")
	}
	if blacklisted {
		return nil, apperr.Unauthenticated("Not authorized, token revoked")
	}

	claims, err := token.ValidateJWT(raw, g.jwtSecret)
	if err != nil {
		return nil, apperr.Unauthenticated("Not authorized, %s", err.Error())
	}

	u, err := g.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthenticated("User not found")
		}
		return nil, apperr.Internal(err, "load token owner")
	}

	active, err := g.sessions.SessionExists(ctx, u.ID, raw)
	if err != nil {
		return nil, apperr.Internal(err, "check session")
	}
	if !active {
		return nil, apperr.Unauthenticated("Not authorized, session ended")
	}
	return u, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

func AuthMiddleware(jwtSecret string, db *gorm.DB, log *zap.SugaredLogger) gin.HandlerFunc {
	gate := NewGate(user.NewUserRepository(db), user.NewSessionRepository(db), jwtSecret)
	return gate.Middleware(log)
}

// Middleware stores the authenticated user and raw token in the gin context.
func (g *Gate) Middleware(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			responses.Unauthorized(c, "Not authorized, no token")
			return
		}

		raw, ok := BearerToken(authHeader)
		if !ok {
			responses.Unauthorized(c, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		u, err := g.Authenticate(c.Request.Context(), raw)
		if err != nil {
			log.Infow("authentication rejected", "path", c.FullPath(), "reason", err.Error())
			responses.SendAppError(c, err, true)
			return
		}

		c.Set(common.ContextUserKey, u)
		c.Set(common.ContextTokenKey, raw)
		c.Next()
	}
}
