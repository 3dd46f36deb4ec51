package match

import (
	"github.com/DhavalSuthar-24/leaguehub/config"
	mw "github.com/DhavalSuthar-24/leaguehub/internal/middleware"
	"github.com/DhavalSuthar-24/leaguehub/internal/team"
	"github.com/DhavalSuthar-24/leaguehub/pkg/rmiddleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MatchRoutes sets up all match-related routes.
func MatchRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, log *zap.SugaredLogger) {
	service := NewMatchService(NewGormMatchRepository(db), team.NewTeamRepository(db), log)
	matchController := NewMatchController(service, appConfig)

	authRoutes := router.Group("/matches")
	authRoutes.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db, log))
	{
		authRoutes.GET("", matchController.GetMatches)
		authRoutes.GET("/status/:status", matchController.GetMatchesByStatus)
		authRoutes.GET("/:id", matchController.GetMatchByID)
	}

	adminRoutes := authRoutes.Group("")
	adminRoutes.Use(rmiddleware.AdminMiddleware())
	{
		adminRoutes.POST("", matchController.CreateMatch)
		adminRoutes.PUT("/score", matchController.UpdateScore)
		adminRoutes.PUT("/status", matchController.UpdateStatus)
		adminRoutes.PUT("/:id", matchController.UpdateMatch)
		adminRoutes.DELETE("/:id", matchController.DeleteMatch)
	}
}
