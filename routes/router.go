package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/leaguehub/config"
	"github.com/DhavalSuthar-24/leaguehub/internal/admin"
	"github.com/DhavalSuthar-24/leaguehub/internal/auth"
	"github.com/DhavalSuthar-24/leaguehub/internal/captain"
	"github.com/DhavalSuthar-24/leaguehub/internal/match"
	"github.com/DhavalSuthar-24/leaguehub/internal/middleware"
	"github.com/DhavalSuthar-24/leaguehub/internal/payment"
	"github.com/DhavalSuthar-24/leaguehub/internal/player"
	"github.com/DhavalSuthar-24/leaguehub/internal/team"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
)

// Models lists every table the API needs, in migration order.
func Models() []interface{} {
	return []interface{}{
		&user.User{}, &user.Session{}, &user.TokenBlacklist{},
		&team.Team{}, &team.TeamPlayer{}, &team.TeamInvitation{},
		&match.Match{}, &match.MatchTeam{},
		&payment.Transaction{},
	}
}

func SetupRoutes(db *gorm.DB, appConfig *config.Config, log *zap.SugaredLogger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(log))
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, db, appConfig, log)
	team.TeamRoutes(api, db, appConfig, log)
	match.MatchRoutes(api, db, appConfig, log)
	payment.PaymentRoutes(api, db, appConfig, log)
	admin.AdminRoutes(api, db, appConfig, log)
	player.PlayerRoutes(api, db, appConfig, log)
	captain.CaptainRoutes(api, db, appConfig, log)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	return r
}
