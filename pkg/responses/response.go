package responses

import (
	"net/http"

	"github.com/DhavalSuthar-24/leaguehub/pkg/apperr"
	"github.com/DhavalSuthar-24/leaguehub/pkg/validator"
	"github.com/gin-gonic/gin"
)

// SuccessResponse represents a standard success JSON response.
type SuccessResponse struct {
	Status  string      `json:"status"` // always "success"
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// ErrorResponse represents a standard error JSON response.
type ErrorResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// SendSuccess sends a standardized success response.
func SendSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	if message == "" {
		message = "Operation completed successfully"
	}
	c.JSON(statusCode, SuccessResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// SendError sends a standardized error response and aborts the chain.
func SendError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{Message: message})
}

// SendErrorWithData sends an error response that still carries a payload, such
// as the record of a declined payment.
func SendErrorWithData(c *gin.Context, statusCode int, message string, data interface{}) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{Message: message, Data: data})
}

// StatusFor maps an application error onto its HTTP status.
func StatusFor(err error) int {
	switch {
	case apperr.Is(err, apperr.ErrValidation), apperr.Is(err, apperr.ErrConflict):
		return http.StatusBadRequest
	case apperr.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized
	case apperr.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case apperr.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// SendAppError writes err using the taxonomy in pkg/apperr. Internal failures
// keep their detail out of the body when hideInternal is set.
func SendAppError(c *gin.Context, err error, hideInternal bool) {
	status := StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		if hideInternal {
			message = "An unexpected error occurred on the server"
		}
	}
	SendError(c, status, message)
}

// ValidationError reports a binding failure as a 400.
func ValidationError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, validator.Message(err))
}

// Unauthorized sends a 401 Unauthorized error response.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized access"
	}
	SendError(c, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 Forbidden error response.
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access to this resource is forbidden"
	}
	SendError(c, http.StatusForbidden, message)
}

// BadRequest sends a 400 Bad Request error response.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request payload or parameters"
	}
	SendError(c, http.StatusBadRequest, message)
}
