package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fleamarket/internal/logging"
)

// RequestLogger logs every request with timing and a generated request id.
func RequestLogger(c *gin.Context) {
	start := time.Now()
	requestID := uuid.NewString()
	c.Set("request_id", requestID)

	c.Next() // process request

	logging.Info("HTTP Request", map[string]any{
		"request_id": requestID,
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     c.Writer.Status(),
		"latency":    time.Since(start).String(),
	})
}
