package rmiddleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DhavalSuthar-24/leaguehub/internal/common"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, current *user.User, mw gin.HandlerFunc) int {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		if current != nil {
			c.Set(common.ContextUserKey, current)
		}
		c.Next()
	}, mw, func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	return w.Code
}

func TestRoleMiddleware(t *testing.T) {
	captain := &user.User{Role: user.RoleCaptain}
	admin := &user.User{Role: user.RoleAdmin}
	player := &user.User{Role: user.RolePlayer}

	require.Equal(t, http.StatusNoContent, serve(t, captain, CaptainMiddleware()))
	require.Equal(t, http.StatusForbidden, serve(t, player, CaptainMiddleware()))
	require.Equal(t, http.StatusForbidden, serve(t, captain, AdminMiddleware()))
	require.Equal(t, http.StatusNoContent, serve(t, admin, CaptainOrAdminMiddleware()))
	require.Equal(t, http.StatusNoContent, serve(t, player, PlayerMiddleware()))
	require.Equal(t, http.StatusUnauthorized, serve(t, nil, PlayerMiddleware()))
}
