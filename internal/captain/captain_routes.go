package captain

import (
	"github.com/DhavalSuthar-24/leaguehub/config"
	mw "github.com/DhavalSuthar-24/leaguehub/internal/middleware"
	"github.com/DhavalSuthar-24/leaguehub/internal/match"
	"github.com/DhavalSuthar-24/leaguehub/internal/team"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/rmiddleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func CaptainRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, log *zap.SugaredLogger) {
	teamRepo := team.NewTeamRepository(db)
	service := NewCaptainService(
		team.NewTeamService(teamRepo, user.NewUserRepository(db), log),
		match.NewMatchService(match.NewGormMatchRepository(db), teamRepo, log),
	)
	captainController := NewCaptainController(service, appConfig)

	captains := router.Group("/captain")
	captains.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db, log))
	captains.Use(rmiddleware.CaptainMiddleware())
	{
		captains.GET("/dashboard", captainController.GetDashboard)
		captains.GET("/matches", captainController.GetMatches)
	}
}
