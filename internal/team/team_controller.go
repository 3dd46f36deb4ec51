package team

import (
	"net/http"

	"github.com/DhavalSuthar-24/leaguehub/config"
	"github.com/DhavalSuthar-24/leaguehub/internal/common"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/responses"
	"github.com/gin-gonic/gin"
)

// TeamController handles team-related HTTP requests
type TeamController struct {
	service   *TeamService
	appConfig *config.Config
}

// NewTeamController creates a new team controller
func NewTeamController(service *TeamService, appConfig *config.Config) *TeamController {
	return &TeamController{
		service:   service,
		appConfig: appConfig,
	}
}

func (tc *TeamController) currentUser(c *gin.Context) (*user.User, bool) {
	u, err := common.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return nil, false
	}
	return u, true
}

func (tc *TeamController) fail(c *gin.Context, err error) {
	responses.SendAppError(c, err, tc.appConfig.IsProduction())
}

// CreateTeam godoc
// @Summary      Create a team
// @Description  An approved captain creates their single team and becomes its first member with jersey #1.
// @Tags         Teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        team  body  CreateTeamRequest  true  "Team details"
// @Success      201  {object}  responses.SuccessResponse{data=TeamResponse}
// @Failure      400  {object}  responses.ErrorResponse "Validation error or captain already has a team"
// @Failure      403  {object}  responses.ErrorResponse "Captain not approved"
// @Router       /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	captain, ok := tc.currentUser(c)
	if !ok {
		return
	}
	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	t, err := tc.service.CreateTeam(c.Request.Context(), captain, req)
	if err != nil {
		tc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Team created successfully", ToResponse(t))
}

// InvitePlayer godoc
// @Summary      Invite a player
// @Description  Invite a player by their unique id. The player must not belong to any team.
// @Tags         Teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        invitation  body  InvitePlayerRequest  true  "Invitation"
// @Success      200  {object}  responses.SuccessResponse{data=TeamResponse}
// @Failure      400  {object}  responses.ErrorResponse "Player already in a team or already invited"
// @Failure      403  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse "Team or player not found"
// @Router       /teams/invite [post]
func (tc *TeamController) InvitePlayer(c *gin.Context) {
	captain, ok := tc.currentUser(c)
	if !ok {
		return
	}
	var req InvitePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	t, err := tc.service.InvitePlayer(c.Request.Context(), captain, req)
	if err != nil {
		tc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Player invitation sent successfully", ToResponse(t))
}

// GetAllTeams godoc
// @Summary      List teams
// @Tags         Teams
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  responses.SuccessResponse{data=[]TeamResponse}
// @Router       /teams [get]
func (tc *TeamController) GetAllTeams(c *gin.Context) {
	teams, err := tc.service.ListTeams(c.Request.Context())
	if err != nil {
		tc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Teams retrieved successfully", ToResponses(teams))
}

// GetTeamByID godoc
// @Summary      Get a team
// @Tags         Teams
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Team ID"
// @Success      200  {object}  responses.SuccessResponse{data=TeamResponse}
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /teams/{id} [get]
func (tc *TeamController) GetTeamByID(c *gin.Context) {
	teamID, err := common.ParseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return
	}

	t, err := tc.service.GetTeam(c.Request.Context(), teamID)
	if err != nil {
		tc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team retrieved successfully", ToResponse(t))
}

// GetMyTeam godoc
// @Summary      The captain's own team
// @Tags         Teams
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  responses.SuccessResponse{data=TeamResponse}
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /teams/my-team [get]
func (tc *TeamController) GetMyTeam(c *gin.Context) {
	captain, ok := tc.currentUser(c)
	if !ok {
		return
	}

	t, err := tc.service.CaptainTeam(c.Request.Context(), captain)
	if err != nil {
		tc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team retrieved successfully", ToResponse(t))
}

// UpdateTeam godoc
// @Summary      Update a team
// @Description  The owning captain or an admin may change name and description.
// @Tags         Teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                true  "Team ID"
// @Param        team  body  UpdateTeamRequest  true  "Fields to change"
// @Success      200  {object}  responses.SuccessResponse{data=TeamResponse}
// @Failure      403  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /teams/{id} [put]
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	actor, ok := tc.currentUser(c)
	if !ok {
		return
	}
	teamID, err := common.ParseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return
	}
	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	t, err := tc.service.UpdateTeam(c.Request.Context(), actor, teamID, req)
	if err != nil {
		tc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team updated successfully", ToResponse(t))
}

// DeleteTeam godoc
// @Summary      Delete a team
// @Description  The owning captain or an admin deletes the team. Matches keep their score rows without the team.
// @Tags         Teams
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Team ID"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      403  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /teams/{id} [delete]
func (tc *TeamController) DeleteTeam(c *gin.Context) {
	actor, ok := tc.currentUser(c)
	if !ok {
		return
	}
	teamID, err := common.ParseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return
	}

	if err := tc.service.DeleteTeam(c.Request.Context(), actor, teamID); err != nil {
		tc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team deleted successfully", nil)
}

// RequestPlayerRemoval godoc
// @Summary      Request removal of a player
// @Description  Flags one member for admin-approved removal. A new request replaces the pending one.
// @Tags         Teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  RemovePlayerRequest  true  "Player to remove"
// @Success      200  {object}  responses.SuccessResponse{data=TeamResponse}
// @Failure      400  {object}  responses.ErrorResponse "Player not in team"
// @Failure      403  {object}  responses.ErrorResponse
// @Router       /teams/remove-player [post]
func (tc *TeamController) RequestPlayerRemoval(c *gin.Context) {
	captain, ok := tc.currentUser(c)
	if !ok {
		return
	}
	var req RemovePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	t, err := tc.service.RequestRemoval(c.Request.Context(), captain, req)
	if err != nil {
		tc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Player removal requested", ToResponse(t))
}

// AssignJerseyNumber godoc
// @Summary      Assign a jersey number
// @Tags         Teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  AssignJerseyRequest  true  "Jersey assignment"
// @Success      200  {object}  responses.SuccessResponse{data=TeamResponse}
// @Failure      400  {object}  responses.ErrorResponse "Number taken or player not in team"
// @Failure      403  {object}  responses.ErrorResponse
// @Router       /teams/assign-jersey [post]
func (tc *TeamController) AssignJerseyNumber(c *gin.Context) {
	captain, ok := tc.currentUser(c)
	if !ok {
		return
	}
	var req AssignJerseyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	t, err := tc.service.AssignJersey(c.Request.Context(), captain, req)
	if err != nil {
		tc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Jersey number assigned successfully", ToResponse(t))
}
