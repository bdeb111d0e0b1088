package handlers

import (
	"net/http"

	"okclinic/middleware"
	"okclinic/models"
	"okclinic/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requireUser returns the authenticated account or writes a 401.
func requireUser(c *gin.Context) (*models.User, bool) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		getLogger(c).Error("User not found in context")
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
		return nil, false
	}
	return u, true
}

// bindJSON decodes the body into dst or writes a 400.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		getLogger(c).Warn("Invalid request body", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	return true
}
