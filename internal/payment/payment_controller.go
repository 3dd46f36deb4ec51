package payment

import (
	"net/http"

	"github.com/DhavalSuthar-24/leaguehub/config"
	"github.com/DhavalSuthar-24/leaguehub/internal/common"
	"github.com/DhavalSuthar-24/leaguehub/pkg/responses"
	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	service   *PaymentService
	appConfig *config.Config
}

func NewPaymentController(service *PaymentService, appConfig *config.Config) *PaymentController {
	return &PaymentController{service: service, appConfig: appConfig}
}

// ProcessPayment godoc
// @Summary      Pay the subscription
// @Description  Dummy gateway. The attempt is always recorded; a declined payment answers 400 with the failed transaction.
// @Tags         Payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payment  body  PaymentRequest  true  "Amount"
// @Success      200  {object}  responses.SuccessResponse{data=TransactionResponse}
// @Failure      400  {object}  responses.ErrorResponse{data=TransactionResponse} "Payment failed"
// @Router       /payments [post]
func (pc *PaymentController) ProcessPayment(c *gin.Context) {
	captain, err := common.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	txn, err := pc.service.ProcessPayment(c.Request.Context(), captain, req)
	if err != nil {
		responses.SendAppError(c, err, pc.appConfig.IsProduction())
		return
	}
	if txn.Status != StatusCompleted {
		responses.SendErrorWithData(c, http.StatusBadRequest, "Payment failed", ToResponse(txn))
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Payment successful", ToResponse(txn))
}

// GetTransactions godoc
// @Summary      List all transactions
// @Tags         Payments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  responses.SuccessResponse{data=[]TransactionResponse}
// @Router       /payments [get]
func (pc *PaymentController) GetTransactions(c *gin.Context) {
	txns, err := pc.service.ListTransactions(c.Request.Context())
	if err != nil {
		responses.SendAppError(c, err, pc.appConfig.IsProduction())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Transactions retrieved successfully", ToResponses(txns))
}

// GetMyTransactions godoc
// @Summary      The captain's own transactions
// @Tags         Payments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  responses.SuccessResponse{data=[]TransactionResponse}
// @Router       /payments/my [get]
func (pc *PaymentController) GetMyTransactions(c *gin.Context) {
	captain, err := common.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	txns, err := pc.service.CaptainTransactions(c.Request.Context(), captain)
	if err != nil {
		responses.SendAppError(c, err, pc.appConfig.IsProduction())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Transactions retrieved successfully", ToResponses(txns))
}

// GetTransactionByID godoc
// @Summary      Get a transaction
// @Description  Admins see every transaction, captains only their own.
// @Tags         Payments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Transaction ID"
// @Success      200  {object}  responses.SuccessResponse{data=TransactionResponse}
// @Failure      403  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /payments/{id} [get]
func (pc *PaymentController) GetTransactionByID(c *gin.Context) {
	actor, err := common.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	id, err := common.ParseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid transaction ID")
		return
	}

	txn, err := pc.service.GetTransaction(c.Request.Context(), actor, id)
	if err != nil {
		responses.SendAppError(c, err, pc.appConfig.IsProduction())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Transaction retrieved successfully", ToResponse(txn))
}

// UpdateTransactionStatus godoc
// @Summary      Override a transaction's status
// @Tags         Payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  UpdateStatusRequest  true  "New status"
// @Success      200  {object}  responses.SuccessResponse{data=TransactionResponse}
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /payments/status [put]
func (pc *PaymentController) UpdateTransactionStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	txn, err := pc.service.UpdateStatus(c.Request.Context(), req)
	if err != nil {
		responses.SendAppError(c, err, pc.appConfig.IsProduction())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Transaction status updated successfully", ToResponse(txn))
}
