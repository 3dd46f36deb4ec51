package payment

import (
	"github.com/DhavalSuthar-24/leaguehub/config"
	mw "github.com/DhavalSuthar-24/leaguehub/internal/middleware"
	"github.com/DhavalSuthar-24/leaguehub/pkg/rmiddleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func PaymentRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, log *zap.SugaredLogger) {
	service := NewPaymentService(NewPaymentRepository(db), appConfig.Payment.SuccessRate, log)
	paymentController := NewPaymentController(service, appConfig)

	payments := router.Group("/payments")
	payments.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db, log))
	{
		payments.POST("", rmiddleware.CaptainMiddleware(), paymentController.ProcessPayment)
		payments.GET("/my", rmiddleware.CaptainMiddleware(), paymentController.GetMyTransactions)
		payments.GET("", rmiddleware.AdminMiddleware(), paymentController.GetTransactions)
		payments.PUT("/status", rmiddleware.AdminMiddleware(), paymentController.UpdateTransactionStatus)
		// ownership is checked by the service
		payments.GET("/:id", rmiddleware.CaptainOrAdminMiddleware(), paymentController.GetTransactionByID)
	}
}
