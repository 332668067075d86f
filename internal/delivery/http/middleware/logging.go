package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one structured line per request.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("module", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status_code", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if userID, ok := c.Get("user_id"); ok {
			fields = append(fields, "user_id", userID)
		}
		switch {
		case status >= 500:
			logger.ErrorContext(c.Request.Context(), "http request", fields...)
		case status >= 400:
			logger.WarnContext(c.Request.Context(), "http request", fields...)
		default:
			logger.InfoContext(c.Request.Context(), "http request", fields...)
		}
	}
}
