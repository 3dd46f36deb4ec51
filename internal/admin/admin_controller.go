package admin

import (
	"net/http"

	"github.com/DhavalSuthar-24/leaguehub/config"
	"github.com/DhavalSuthar-24/leaguehub/internal/common"
	"github.com/DhavalSuthar-24/leaguehub/internal/team"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/responses"
	"github.com/gin-gonic/gin"
)

type AdminController struct {
	service   *AdminService
	appConfig *config.Config
}

func NewAdminController(service *AdminService, appConfig *config.Config) *AdminController {
	return &AdminController{service: service, appConfig: appConfig}
}

func (ac *AdminController) fail(c *gin.Context, err error) {
	responses.SendAppError(c, err, ac.appConfig.IsProduction())
}

// GetDashboard godoc
// @Summary      Admin dashboard
// @Description  User, team and match statistics with the most recent users and matches.
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  responses.SuccessResponse{data=Dashboard}
// @Router       /admin/dashboard [get]
func (ac *AdminController) GetDashboard(c *gin.Context) {
	d, err := ac.service.Dashboard(c.Request.Context())
	if err != nil {
		ac.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Dashboard retrieved successfully", d)
}

// ApproveCaptain godoc
// @Summary      Approve a captain
// @Description  Marks the captain approved and activates a one-year subscription.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  CaptainIDRequest  true  "Captain"
// @Success      200  {object}  responses.SuccessResponse{data=user.UserResponse}
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /admin/approve-captain [post]
func (ac *AdminController) ApproveCaptain(c *gin.Context) {
	var req CaptainIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	captain, err := ac.service.ApproveCaptain(c.Request.Context(), req.CaptainID)
	if err != nil {
		ac.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Captain approved successfully", user.ToResponse(captain))
}

// RejectCaptain godoc
// @Summary      Reject a captain
// @Description  Deletes the captain's account together with anything that references it.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  CaptainIDRequest  true  "Captain"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /admin/reject-captain [post]
func (ac *AdminController) RejectCaptain(c *gin.Context) {
	var req CaptainIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	if err := ac.service.RejectCaptain(c.Request.Context(), req.CaptainID); err != nil {
		ac.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Captain rejected successfully", nil)
}

// GetUsers godoc
// @Summary      List users
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        role  query  string  false  "Filter by role"  Enums(Admin, Captain, Player)
// @Success      200  {object}  responses.SuccessResponse{data=[]user.UserResponse}
// @Router       /admin/users [get]
func (ac *AdminController) GetUsers(c *gin.Context) {
	users, err := ac.service.ListUsers(c.Request.Context(), c.Query("role"))
	if err != nil {
		ac.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Users retrieved successfully", user.ToResponses(users))
}

// GetPendingCaptains godoc
// @Summary      Captains awaiting approval
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  responses.SuccessResponse{data=[]user.UserResponse}
// @Router       /admin/pending-captains [get]
func (ac *AdminController) GetPendingCaptains(c *gin.Context) {
	users, err := ac.service.PendingCaptains(c.Request.Context())
	if err != nil {
		ac.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Pending captains retrieved successfully", user.ToResponses(users))
}

// GetPendingRemovals godoc
// @Summary      Teams with a pending player removal
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  responses.SuccessResponse{data=[]team.TeamResponse}
// @Router       /admin/pending-removals [get]
func (ac *AdminController) GetPendingRemovals(c *gin.Context) {
	teams, err := ac.service.PendingRemovals(c.Request.Context())
	if err != nil {
		ac.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Pending removals retrieved successfully", team.ToResponses(teams))
}

// ApprovePlayerRemoval godoc
// @Summary      Approve a player removal
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  TeamIDRequest  true  "Team"
// @Success      200  {object}  responses.SuccessResponse{data=team.TeamResponse}
// @Failure      400  {object}  responses.ErrorResponse "No removal requested"
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /admin/approve-player-removal [post]
func (ac *AdminController) ApprovePlayerRemoval(c *gin.Context) {
	var req TeamIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	t, err := ac.service.ApprovePlayerRemoval(c.Request.Context(), req.TeamID)
	if err != nil {
		ac.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Player removal approved successfully", team.ToResponse(t))
}

// RejectPlayerRemoval godoc
// @Summary      Reject a player removal
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  TeamIDRequest  true  "Team"
// @Success      200  {object}  responses.SuccessResponse{data=team.TeamResponse}
// @Failure      400  {object}  responses.ErrorResponse "No removal requested"
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /admin/reject-player-removal [post]
func (ac *AdminController) RejectPlayerRemoval(c *gin.Context) {
	var req TeamIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	t, err := ac.service.RejectPlayerRemoval(c.Request.Context(), req.TeamID)
	if err != nil {
		ac.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Player removal rejected successfully", team.ToResponse(t))
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Removes a captain or player atomically. Admin accounts cannot be deleted.
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "User ID"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      400  {object}  responses.ErrorResponse "Cannot delete admin user"
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /admin/users/{id} [delete]
func (ac *AdminController) DeleteUser(c *gin.Context) {
	id, err := common.ParseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid user ID")
		return
	}

	if err := ac.service.DeleteUser(c.Request.Context(), id); err != nil {
		ac.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "User deleted successfully", nil)
}

// DeleteTeam godoc
// @Summary      Delete a team
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Team ID"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /admin/teams/{id} [delete]
func (ac *AdminController) DeleteTeam(c *gin.Context) {
	admin, err := common.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	id, err := common.ParseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return
	}

	if err := ac.service.DeleteTeam(c.Request.Context(), admin, id); err != nil {
		ac.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team deleted successfully", nil)
}
