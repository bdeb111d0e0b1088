package middleware

import (
	"net/http"

	"okclinic/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through only when the authenticated account
// has the given role. It must run after JWTAuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
			return
		}
		if u.Role != role {
			utils.JSONError(c, http.StatusForbidden, "Forbidden", "")
			return
		}
		c.Next()
	}
}
