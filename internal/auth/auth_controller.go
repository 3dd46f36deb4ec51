package auth

import (
	"net/http"

	"github.com/DhavalSuthar-24/leaguehub/config"
	"github.com/DhavalSuthar-24/leaguehub/internal/common"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/responses"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	service *AuthService
	config  *config.Config
}

func NewAuthController(service *AuthService, cfg *config.Config) *AuthController {
	return &AuthController{
		service: service,
		config:  cfg,
	}
}

// @Summary      Register a new user
// @Description  Create a Captain or Player account. Captains start unapproved with an Inactive subscription.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body  RegisterRequest  true  "User registration details"
// @Success      201   {object} responses.SuccessResponse{data=AuthResponse} "User registered successfully"
// @Failure      400   {object} responses.ErrorResponse "Validation error or user already exists"
// @Failure      500   {object} responses.ErrorResponse "Internal server error"
// @Router       /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	res, err := ac.service.Register(c.Request.Context(), req)
	if err != nil {
		responses.SendAppError(c, err, ac.config.IsProduction())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "User registered successfully", res)
}

// @Summary      Log in
// @Description  Exchange email and password for a bearer token. Every login opens a new session.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Login credentials"
// @Success      200   {object} responses.SuccessResponse{data=AuthResponse}
// @Failure      400   {object} responses.ErrorResponse "Invalid credentials"
// @Failure      500   {object} responses.ErrorResponse
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	res, err := ac.service.Login(c.Request.Context(), req)
	if err != nil {
		responses.SendAppError(c, err, ac.config.IsProduction())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Logged in successfully", res)
}

// @Summary      Log out
// @Description  Ends the current session and blacklists its token.
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object} responses.SuccessResponse
// @Failure      401   {object} responses.ErrorResponse
// @Router       /auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	u, err := common.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	if err := ac.service.Logout(c.Request.Context(), u, common.GetCurrentToken(c)); err != nil {
		responses.SendAppError(c, err, ac.config.IsProduction())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Logged out successfully", nil)
}

// @Summary      Current user profile
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object} responses.SuccessResponse{data=user.UserResponse}
// @Failure      401   {object} responses.ErrorResponse
// @Router       /auth/profile [get]
func (ac *AuthController) GetProfile(c *gin.Context) {
	u, err := common.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile retrieved successfully", user.ToResponse(u))
}

// @Summary      Update profile
// @Description  Change name, email or phone of the current user.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        profile  body  UpdateProfileRequest  true  "Fields to change"
// @Success      200   {object} responses.SuccessResponse{data=user.UserResponse}
// @Failure      400   {object} responses.ErrorResponse "Validation error or email already in use"
// @Failure      401   {object} responses.ErrorResponse
// @Router       /auth/profile [put]
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	u, err := common.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	updated, err := ac.service.UpdateProfile(c.Request.Context(), u, req)
	if err != nil {
		responses.SendAppError(c, err, ac.config.IsProduction())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile updated successfully", user.ToResponse(updated))
}
