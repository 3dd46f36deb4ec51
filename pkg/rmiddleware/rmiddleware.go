package rmiddleware

import (
	"github.com/DhavalSuthar-24/leaguehub/internal/common"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/responses"
	"github.com/gin-gonic/gin"
)

// RoleMiddleware lets the request through only when the authenticated user
// holds one of requiredRoles. It must run after the auth middleware.
func RoleMiddleware(requiredRoles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := common.GetCurrentUser(c)
		if err != nil {
			responses.Unauthorized(c, "Not authorized")
			return
		}

		for _, role := range requiredRoles {
			if u.Role == role {
				c.Next()
				return
			}
		}

		responses.Forbidden(c, "User role "+string(u.Role)+" is not authorized to access this route")
	}
}

// AdminMiddleware is a convenience middleware for admin-only access
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(user.RoleAdmin)
}

// CaptainMiddleware is a convenience middleware for captain-only access
func CaptainMiddleware() gin.HandlerFunc {
	return RoleMiddleware(user.RoleCaptain)
}

// PlayerMiddleware is a convenience middleware for player-only access
func PlayerMiddleware() gin.HandlerFunc {
	return RoleMiddleware(user.RolePlayer)
}

// CaptainOrAdminMiddleware admits team owners and admins; ownership is checked later.
func CaptainOrAdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(user.RoleCaptain, user.RoleAdmin)
}
