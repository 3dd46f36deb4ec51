package captain

import (
	"net/http"

	"github.com/DhavalSuthar-24/leaguehub/config"
	"github.com/DhavalSuthar-24/leaguehub/internal/common"
	"github.com/DhavalSuthar-24/leaguehub/internal/match"
	"github.com/DhavalSuthar-24/leaguehub/pkg/responses"
	"github.com/gin-gonic/gin"
)

type CaptainController struct {
	service   *CaptainService
	appConfig *config.Config
}

func NewCaptainController(service *CaptainService, appConfig *config.Config) *CaptainController {
	return &CaptainController{service: service, appConfig: appConfig}
}

// GetDashboard godoc
// @Summary      Captain dashboard
// @Description  Team, roster counts and recent matches of an approved captain.
// @Tags         Captain
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  responses.SuccessResponse{data=Dashboard}
// @Failure      403  {object}  responses.ErrorResponse "Captain approval pending"
// @Router       /captain/dashboard [get]
func (cc *CaptainController) GetDashboard(c *gin.Context) {
	captain, err := common.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	d, err := cc.service.Dashboard(c.Request.Context(), captain)
	if err != nil {
		responses.SendAppError(c, err, cc.appConfig.IsProduction())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Dashboard retrieved successfully", d)
}

// GetMatches godoc
// @Summary      Matches of the captain's team
// @Tags         Captain
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  responses.SuccessResponse{data=[]match.MatchResponse}
// @Router       /captain/matches [get]
func (cc *CaptainController) GetMatches(c *gin.Context) {
	captain, err := common.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	matches, err := cc.service.Matches(c.Request.Context(), captain)
	if err != nil {
		responses.SendAppError(c, err, cc.appConfig.IsProduction())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Matches retrieved successfully", match.ToResponses(matches))
}
