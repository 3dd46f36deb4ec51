package common

import (
	"errors"
	"strconv"

	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/gin-gonic/gin"
)

const (
	// Context keys
	ContextUserKey  = "currentUser"  // *user.User resolved by the auth gate
	ContextTokenKey = "currentToken" // raw bearer token of the request
)

// GetCurrentUser retrieves the authenticated user from the Gin context.
func GetCurrentUser(c *gin.Context) (*user.User, error) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, errors.New("user not found in context")
	}
	u, ok := v.(*user.User)
	if !ok || u == nil {
		return nil, errors.New("user in context is not a *user.User")
	}
	return u, nil
}

// GetCurrentToken retrieves the bearer token the request was authenticated with.
func GetCurrentToken(c *gin.Context) string {
	return c.GetString(ContextTokenKey)
}

// ParseIDParam reads a positive numeric path parameter.
func ParseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return uint(id), nil
}
