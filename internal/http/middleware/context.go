package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/soldout/backend/internal/logger"
)

// LoggerKey is the gin context key holding the request scoped logger
const LoggerKey = "logger"

var nopLogger = logger.NewNop()

// GetLogger retrieves the logger from the gin context
func GetLogger(c *gin.Context) logger.Logger {
	if log, exists := c.Get(LoggerKey); exists {
		if contextLogger, ok := log.(logger.Logger); ok {
			return contextLogger
		}
	}
	return nopLogger
}

// SetUserID attaches the authenticated user id to the request logger
func SetUserID(c *gin.Context, userID int64) {
	if log, exists := c.Get(LoggerKey); exists {
		if contextLogger, ok := log.(logger.Logger); ok {
			c.Set(LoggerKey, contextLogger.WithUserID(userID))
		}
	}
}
