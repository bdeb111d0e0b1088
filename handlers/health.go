package handlers

import (
	"net/http"

	"okclinic/utils"

	"github.com/gin-gonic/gin"
)

// Health handles GET /health with the last dependency check results.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"mongo":     status.Mongo,
		"redis":     status.Redis,
		"checkedAt": status.CheckedAt,
	})
}
