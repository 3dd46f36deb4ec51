package match

import (
	"net/http"

	"github.com/DhavalSuthar-24/leaguehub/config"
	"github.com/DhavalSuthar-24/leaguehub/internal/common"
	"github.com/DhavalSuthar-24/leaguehub/pkg/responses"
	"github.com/gin-gonic/gin"
)

// MatchController handles match-related HTTP requests
type MatchController struct {
	service   *MatchService
	appConfig *config.Config
}

// NewMatchController creates a new match controller
func NewMatchController(service *MatchService, appConfig *config.Config) *MatchController {
	return &MatchController{service: service, appConfig: appConfig}
}

// CreateMatch godoc
// @Summary      Create a match
// @Description  Schedules a match between two distinct teams. Scores start at 0 and the status at Upcoming.
// @Tags         Matches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        match  body  CreateMatchRequest  true  "Match details"
// @Success      201  {object}  responses.SuccessResponse{data=MatchResponse}
// @Failure      400  {object}  responses.ErrorResponse "Invalid input or same team twice"
// @Failure      404  {object}  responses.ErrorResponse "One or both teams not found"
// @Router       /matches [post]
func (mc *MatchController) CreateMatch(c *gin.Context) {
	admin, err := common.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	m, err := mc.service.CreateMatch(c.Request.Context(), admin, req)
	if err != nil {
		responses.SendAppError(c, err, mc.appConfig.IsProduction())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Match created successfully", ToResponse(m))
}

// UpdateScore godoc
// @Summary      Update a team's score
// @Description  Sets the score of one team in the match. An upcoming match becomes live.
// @Tags         Matches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        score  body  UpdateScoreRequest  true  "Score"
// @Success      200  {object}  responses.SuccessResponse{data=MatchResponse}
// @Failure      400  {object}  responses.ErrorResponse "Invalid score or cancelled match"
// @Failure      404  {object}  responses.ErrorResponse "Match not found or team not in match"
// @Router       /matches/score [put]
func (mc *MatchController) UpdateScore(c *gin.Context) {
	var req UpdateScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	m, err := mc.service.UpdateScore(c.Request.Context(), req)
	if err != nil {
		responses.SendAppError(c, err, mc.appConfig.IsProduction())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Score updated successfully", ToResponse(m))
}

// UpdateStatus godoc
// @Summary      Change a match's status
// @Description  Moves forward along Upcoming, Live, Completed or cancels an unfinished match. Completing decides the winner.
// @Tags         Matches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        status  body  UpdateStatusRequest  true  "New status"
// @Success      200  {object}  responses.SuccessResponse{data=MatchResponse}
// @Failure      400  {object}  responses.ErrorResponse "Invalid status or transition"
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /matches/status [put]
func (mc *MatchController) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	m, err := mc.service.UpdateStatus(c.Request.Context(), req)
	if err != nil {
		responses.SendAppError(c, err, mc.appConfig.IsProduction())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match status updated successfully", ToResponse(m))
}

// GetMatches godoc
// @Summary      List matches
// @Tags         Matches
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "Filter by status"  Enums(Upcoming, Live, Completed, Cancelled)
// @Success      200  {object}  responses.SuccessResponse{data=[]MatchResponse}
// @Failure      400  {object}  responses.ErrorResponse
// @Router       /matches [get]
func (mc *MatchController) GetMatches(c *gin.Context) {
	mc.listByStatus(c, c.Query("status"))
}

// GetMatchesByStatus godoc
// @Summary      List matches in one status
// @Tags         Matches
// @Produce      json
// @Security     BearerAuth
// @Param        status  path  string  true  "Match status"  Enums(Upcoming, Live, Completed, Cancelled)
// @Success      200  {object}  responses.SuccessResponse{data=[]MatchResponse}
// @Failure      400  {object}  responses.ErrorResponse
// @Router       /matches/status/{status} [get]
func (mc *MatchController) GetMatchesByStatus(c *gin.Context) {
	mc.listByStatus(c, c.Param("status"))
}

func (mc *MatchController) listByStatus(c *gin.Context, status string) {
	matches, err := mc.service.ListMatches(c.Request.Context(), status)
	if err != nil {
		responses.SendAppError(c, err, mc.appConfig.IsProduction())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Matches retrieved successfully", ToResponses(matches))
}

// GetMatchByID godoc
// @Summary      Get a match
// @Tags         Matches
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Match ID"
// @Success      200  {object}  responses.SuccessResponse{data=MatchResponse}
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /matches/{id} [get]
func (mc *MatchController) GetMatchByID(c *gin.Context) {
	id, err := common.ParseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid match ID")
		return
	}

	m, err := mc.service.GetMatch(c.Request.Context(), id)
	if err != nil {
		responses.SendAppError(c, err, mc.appConfig.IsProduction())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match retrieved successfully", ToResponse(m))
}

// UpdateMatch godoc
// @Summary      Update match details
// @Tags         Matches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path  int                 true  "Match ID"
// @Param        match  body  UpdateMatchRequest  true  "Fields to change"
// @Success      200  {object}  responses.SuccessResponse{data=MatchResponse}
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /matches/{id} [put]
func (mc *MatchController) UpdateMatch(c *gin.Context) {
	id, err := common.ParseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid match ID")
		return
	}
	var req UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	m, err := mc.service.UpdateMatch(c.Request.Context(), id, req)
	if err != nil {
		responses.SendAppError(c, err, mc.appConfig.IsProduction())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match updated successfully", ToResponse(m))
}

// DeleteMatch godoc
// @Summary      Delete a match
// @Tags         Matches
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Match ID"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /matches/{id} [delete]
func (mc *MatchController) DeleteMatch(c *gin.Context) {
	id, err := common.ParseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid match ID")
		return
	}

	if err := mc.service.DeleteMatch(c.Request.Context(), id); err != nil {
		responses.SendAppError(c, err, mc.appConfig.IsProduction())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match deleted successfully", nil)
}
