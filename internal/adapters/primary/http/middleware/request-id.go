package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"disease-intake-service/internal/core/domain"
)

const (
	headerRequestID = "X-Request-ID"
	ctxRequestID    = "request_id"
	maxRequestIDLen = 128
)

// RequestID echoes the camera's X-Request-ID, or mints one, and carries it
// on the request context so intake log lines can be joined to the access log.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(headerRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = uuid.New().String()
		}

		c.Set(ctxRequestID, requestID)
		c.Header(headerRequestID, requestID)
		c.Request = c.Request.WithContext(domain.WithRequestID(c.Request.Context(), requestID))

		c.Next()
	}
}
