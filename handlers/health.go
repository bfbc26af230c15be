package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nataliestudio/utils"
)

// HealthHandler reports process liveness and the last keep-alive outcome.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Natalie Studio booking console",
		"backend": utils.GetHealthStatus(),
	})
}
