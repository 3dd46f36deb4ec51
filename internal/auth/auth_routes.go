package auth

import (
	"github.com/DhavalSuthar-24/leaguehub/config"
	"github.com/DhavalSuthar-24/leaguehub/internal/middleware"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, log *zap.SugaredLogger) {
	service := NewAuthService(
		user.NewUserRepository(db),
		user.NewSessionRepository(db),
		appConfig.JWT.Secret,
		appConfig.TokenTTL(),
		log,
	)
	authController := NewAuthController(service, appConfig)

	// Public routes
	authPublic := router.Group("/auth")
	{
		authPublic.POST("/register", authController.Register)
		authPublic.POST("/login", authController.Login)
	}

	// Authenticated routes
	authProtected := router.Group("/auth")
	authProtected.Use(middleware.AuthMiddleware(appConfig.JWT.Secret, db, log))
	{
		authProtected.POST("/logout", authController.Logout)
		authProtected.GET("/profile", authController.GetProfile)
		authProtected.PUT("/profile", authController.UpdateProfile)
	}
}
