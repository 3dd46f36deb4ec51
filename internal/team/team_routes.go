package team

import (
	"github.com/DhavalSuthar-24/leaguehub/config"
	mw "github.com/DhavalSuthar-24/leaguehub/internal/middleware"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/rmiddleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TeamRoutes sets up all team-related routes
func TeamRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, log *zap.SugaredLogger) {
	service := NewTeamService(NewTeamRepository(db), user.NewUserRepository(db), log)
	teamController := NewTeamController(service, appConfig)

	teams := router.Group("/teams")
	teams.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db, log))
	{
		// Readable by any authenticated user
		teams.GET("", teamController.GetAllTeams)
		teams.GET("/:id", teamController.GetTeamByID)

		// Captain-only management of their own team
		teams.POST("", rmiddleware.CaptainMiddleware(), teamController.CreateTeam)
		teams.GET("/my-team", rmiddleware.CaptainMiddleware(), teamController.GetMyTeam)
		teams.POST("/invite", rmiddleware.CaptainMiddleware(), teamController.InvitePlayer)
		teams.POST("/remove-player", rmiddleware.CaptainMiddleware(), teamController.RequestPlayerRemoval)
		teams.POST("/assign-jersey", rmiddleware.CaptainMiddleware(), teamController.AssignJerseyNumber)

		// Owner captain or admin; ownership is checked by the service
		teams.PUT("/:id", rmiddleware.CaptainOrAdminMiddleware(), teamController.UpdateTeam)
		teams.DELETE("/:id", rmiddleware.CaptainOrAdminMiddleware(), teamController.DeleteTeam)
	}
}
