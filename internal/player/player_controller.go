package player

import (
	"net/http"

	"github.com/DhavalSuthar-24/leaguehub/config"
	"github.com/DhavalSuthar-24/leaguehub/internal/common"
	"github.com/DhavalSuthar-24/leaguehub/internal/match"
	"github.com/DhavalSuthar-24/leaguehub/internal/team"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/responses"
	"github.com/gin-gonic/gin"
)

type PlayerController struct {
	service   *PlayerService
	appConfig *config.Config
}

func NewPlayerController(service *PlayerService, appConfig *config.Config) *PlayerController {
	return &PlayerController{service: service, appConfig: appConfig}
}

func (pc *PlayerController) currentPlayer(c *gin.Context) (*user.User, bool) {
	p, err := common.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return nil, false
	}
	return p, true
}

// GetInvitations godoc
// @Summary      Pending team invitations
// @Tags         Player
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  responses.SuccessResponse{data=[]team.InvitationResponse}
// @Router       /player/invitations [get]
func (pc *PlayerController) GetInvitations(c *gin.Context) {
	p, ok := pc.currentPlayer(c)
	if !ok {
		return
	}
	invs, err := pc.service.Invitations(c.Request.Context(), p)
	if err != nil {
		responses.SendAppError(c, err, pc.appConfig.IsProduction())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Invitations retrieved successfully", team.ToInvitationResponses(invs))
}

// AcceptInvitation godoc
// @Summary      Accept a team invitation
// @Description  Joins the team and drops every other pending invitation.
// @Tags         Player
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  InvitationRequest  true  "Team"
// @Success      200  {object}  responses.SuccessResponse{data=team.TeamResponse}
// @Failure      400  {object}  responses.ErrorResponse "Already in a team or not invited"
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /player/accept-invitation [post]
func (pc *PlayerController) AcceptInvitation(c *gin.Context) {
	p, ok := pc.currentPlayer(c)
	if !ok {
		return
	}
	var req InvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	t, err := pc.service.AcceptInvitation(c.Request.Context(), p, req.TeamID)
	if err != nil {
		responses.SendAppError(c, err, pc.appConfig.IsProduction())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team invitation accepted successfully", team.ToResponse(t))
}

// DeclineInvitation godoc
// @Summary      Decline a team invitation
// @Tags         Player
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  InvitationRequest  true  "Team"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      400  {object}  responses.ErrorResponse "Not invited"
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /player/decline-invitation [post]
func (pc *PlayerController) DeclineInvitation(c *gin.Context) {
	p, ok := pc.currentPlayer(c)
	if !ok {
		return
	}
	var req InvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	if err := pc.service.DeclineInvitation(c.Request.Context(), p, req.TeamID); err != nil {
		responses.SendAppError(c, err, pc.appConfig.IsProduction())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team invitation declined successfully", nil)
}

// GetTeam godoc
// @Summary      The player's team
// @Tags         Player
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  responses.SuccessResponse{data=team.TeamResponse}
// @Failure      404  {object}  responses.ErrorResponse "You are not part of any team"
// @Router       /player/team [get]
func (pc *PlayerController) GetTeam(c *gin.Context) {
	p, ok := pc.currentPlayer(c)
	if !ok {
		return
	}
	t, err := pc.service.Team(c.Request.Context(), p)
	if err != nil {
		responses.SendAppError(c, err, pc.appConfig.IsProduction())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team retrieved successfully", team.ToResponse(t))
}

// GetMatches godoc
// @Summary      Matches of the player's team
// @Tags         Player
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  responses.SuccessResponse{data=[]match.MatchResponse}
// @Router       /player/matches [get]
func (pc *PlayerController) GetMatches(c *gin.Context) {
	p, ok := pc.currentPlayer(c)
	if !ok {
		return
	}
	matches, err := pc.service.Matches(c.Request.Context(), p)
	if err != nil {
		responses.SendAppError(c, err, pc.appConfig.IsProduction())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Matches retrieved successfully", match.ToResponses(matches))
}

// GetDashboard godoc
// @Summary      Player dashboard
// @Tags         Player
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  responses.SuccessResponse{data=Dashboard}
// @Router       /player/dashboard [get]
func (pc *PlayerController) GetDashboard(c *gin.Context) {
	p, ok := pc.currentPlayer(c)
	if !ok {
		return
	}
	d, err := pc.service.Dashboard(c.Request.Context(), p)
	if err != nil {
		responses.SendAppError(c, err, pc.appConfig.IsProduction())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Dashboard retrieved successfully", d)
}
