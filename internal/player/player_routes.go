package player

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

func PlayerRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, log *zap.SugaredLogger) {
	teamRepo := team.NewTeamRepository(db)
	service := NewPlayerService(
		team.NewTeamService(teamRepo, user.NewUserRepository(db), log),
		match.NewMatchService(match.NewGormMatchRepository(db), teamRepo, log),
	)
	playerController := NewPlayerController(service, appConfig)

	players := router.Group("/player")
	players.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db, log))
	players.Use(rmiddleware.PlayerMiddleware())
	{
		players.GET("/invitations", playerController.GetInvitations)
		players.POST("/accept-invitation", playerController.AcceptInvitation)
		players.POST("/decline-invitation", playerController.DeclineInvitation)
		players.GET("/team", playerController.GetTeam)
		players.GET("/matches", playerController.GetMatches)
		players.GET("/dashboard", playerController.GetDashboard)
	}
}
