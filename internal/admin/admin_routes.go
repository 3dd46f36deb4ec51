package admin

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

// AdminRoutes sets up the admin-only routes.
func AdminRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, log *zap.SugaredLogger) {
	users := user.NewUserRepository(db)
	teamRepo := team.NewTeamRepository(db)
	service := NewAdminService(
		GormUnitOfWork(db),
		users,
		team.NewTeamService(teamRepo, users, log),
		match.NewMatchService(match.NewGormMatchRepository(db), teamRepo, log),
		appConfig.SubscriptionDuration(),
		log,
	)
	adminController := NewAdminController(service, appConfig)

	adminRoutes := router.Group("/admin")
	adminRoutes.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db, log))
	adminRoutes.Use(rmiddleware.AdminMiddleware())
	{
		adminRoutes.GET("/dashboard", adminController.GetDashboard)
		adminRoutes.POST("/approve-captain", adminController.ApproveCaptain)
		adminRoutes.POST("/reject-captain", adminController.RejectCaptain)
		adminRoutes.GET("/users", adminController.GetUsers)
		adminRoutes.DELETE("/users/:id", adminController.DeleteUser)
		adminRoutes.GET("/pending-captains", adminController.GetPendingCaptains)
		adminRoutes.GET("/pending-removals", adminController.GetPendingRemovals)
		adminRoutes.POST("/approve-player-removal", adminController.ApprovePlayerRemoval)
		adminRoutes.POST("/reject-player-removal", adminController.RejectPlayerRemoval)
		adminRoutes.DELETE("/teams/:id", adminController.DeleteTeam)
	}
}
