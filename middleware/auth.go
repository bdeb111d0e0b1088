package middleware

import (
	"net/http"
	"strings"

	userRepo "okclinic/database/repository/user"
	"okclinic/models"
	"okclinic/utils"
	"okclinic/utils/apperr"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Context keys set by JWTAuthMiddleware.
const (
	ContextUserID = "userID"
	ContextUser   = "user"
)

// JWTAuthMiddleware requires a valid bearer token whose subject is still a
// registered account. The identity is looked up through the auth cache when
// one is configured, falling back to the identity store.
func JWTAuthMiddleware(users userRepo.UserRepository, authCache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "No token provided", "")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		claims, err := utils.ExtractClaims(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid or expired token", "")
			return
		}

		ctx := c.Request.Context()
		var identity *models.UserSummary
		if authCache != nil {
			identity, err = utils.GetAuthIdentity(ctx, authCache, claims.Subject)
			if err != nil {
				utils.GetLogger().Warn("Auth cache read failed; falling back to database", zap.Error(err))
			}
		}

		if identity == nil {
			u, err := users.GetByID(ctx, claims.Subject)
			if err != nil {
				if apperr.Is(err, apperr.ErrNotFound) {
					utils.JSONError(c, http.StatusUnauthorized, "Invalid token user", "")
					return
				}
				utils.RespondError(c, err)
				return
			}
			identity = u.Summary()
			if authCache != nil {
				if err := utils.SaveAuthIdentity(ctx, authCache, *identity); err != nil {
					utils.GetLogger().Warn("Auth cache write failed", zap.Error(err))
				}
			}
		}

		c.Set(ContextUserID, identity.ID)
		c.Set(ContextUser, &models.User{ID: identity.ID, Name: identity.Name, Email: identity.Email, Role: identity.Role})
		c.Next()
	}
}

// CurrentUser returns the identity set by JWTAuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok && u != nil
}
