package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "requestID"

	maxLoggedBody = 2048
)

var maskedFields = []string{"password", "oldPassword", "newPassword"}

// RequestLogger logs every request once it has been served. Bodies are logged
// at debug level with password fields masked.
func RequestLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		if log.Desugar().Core().Enabled(zap.DebugLevel) && c.Request.Body != nil {
			body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxLoggedBody+1))
			if err == nil {
				// put back what was consumed followed by whatever was left unread
				c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), c.Request.Body))
				switch {
				case len(body) > maxLoggedBody:
					log.Debugw("request body", "request_id", requestID, "body", "[omitted: too large]")
				case len(body) > 0:
					log.Debugw("request body", "request_id", requestID, "body", MaskBody(body))
				}
			}
		}

		c.Next()

		fields := []interface{}{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Errorw("request failed", fields...)
		case status >= 400:
			log.Warnw("request rejected", fields...)
		default:
			log.Infow("request served", fields...)
		}
	}
}

// MaskBody hides credential fields of a JSON object body. Anything that is not
// a JSON object is returned as is.
func MaskBody(body []byte) string {
	var obj map[string]interface{}
	if err := json.Unmarshal(body, &obj); err != nil {
		return string(body)
	}
	for _, f := range maskedFields {
		if _, ok := obj[f]; ok {
			obj[f] = "********"
		}
	}
	masked, err := json.Marshal(obj)
	if err != nil {
		return ""
	}
	return string(masked)
}
