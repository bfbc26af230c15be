package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nataliestudio/utils"
)

// LoggerKey is where the request logger middleware stores the scoped logger.
const LoggerKey = "logger"

// getLogger retrieves a Zap logger from the Gin context or falls back to the global one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get(LoggerKey); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}
