package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zemenlab/zemen/internal/logging"
)

const RequestIDKey = "request_id"
const LoggerKey = "logger"

// RequestIDMiddleware injects a request ID into the context and logger for
// each request. A caller-supplied X-Request-ID is honored only when it is a
// well-formed UUID, so log fields stay greppable.
func RequestIDMiddleware(baseLogger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if _, err := uuid.Parse(reqID); err != nil {
			reqID = uuid.New().String()
		}
		c.Set(RequestIDKey, reqID)
		c.Writer.Header().Set("X-Request-ID", reqID)

		c.Set(LoggerKey, logging.WithRequestID(baseLogger, reqID))

		c.Next()
	}
}

// RequestLogger returns the per-request logger, or a nop logger when the
// middleware is not installed, so handlers never have to nil-check.
func RequestLogger(c *gin.Context) *zap.Logger {
	if logger, ok := c.Get(LoggerKey); ok {
		if zl, ok := logger.(*zap.Logger); ok {
			return zl
		}
	}
	return zap.NewNop()
}
