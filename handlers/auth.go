package handlers

import (
	"net/http"

	"okclinic/models"
	"okclinic/services/user"
	"okclinic/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type AuthHandler struct {
	UserService user.UserService
	AuthCache   *redis.Client
}

func NewAuthHandler(svc user.UserService, authCache *redis.Client) *AuthHandler {
	return &AuthHandler{UserService: svc, AuthCache: authCache}
}

// SendSignupCode handles POST /api/auth/send-signup-code.
func (h *AuthHandler) SendSignupCode(c *gin.Context) {
	var req models.CodeRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.UserService.SendSignupCode(c.Request.Context(), req.Email); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent."})
}

// VerifySignupCode handles POST /api/auth/verify-signup-code.
func (h *AuthHandler) VerifySignupCode(c *gin.Context) {
	var req models.CodeRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.UserService.VerifySignupCode(c.Request.Context(), req.Email, req.Code); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email verified. You can sign up now."})
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.UserService.Signup(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Signin handles POST /api/auth/signin.
func (h *AuthHandler) Signin(c *gin.Context) {
	var req models.SigninRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.UserService.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("User signed in", zap.String("userID", resp.ID))
	c.JSON(http.StatusOK, resp)
}

// UpdateProfile handles PUT /api/auth/update-profile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	current, ok := requireUser(c)
	if !ok {
		return
	}
	var req models.ProfileUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.UserService.UpdateProfile(c.Request.Context(), current.ID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := utils.InvalidateAuthIdentity(c.Request.Context(), h.AuthCache, current.ID); err != nil {
		getLogger(c).Warn("Failed to invalidate auth cache", zap.Error(err))
	}
	c.JSON(http.StatusOK, updated)
}

// RequestReset handles POST /api/auth/request-reset.
func (h *AuthHandler) RequestReset(c *gin.Context) {
	var req models.CodeRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.UserService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reset code sent!"})
}

// VerifyResetCode handles POST /api/auth/verify-reset-code.
func (h *AuthHandler) VerifyResetCode(c *gin.Context) {
	var req models.CodeRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.UserService.VerifyResetCode(c.Request.Context(), req.Email, req.ResetCode); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Code verified."})
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.PasswordResetRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.UserService.ResetPassword(c.Request.Context(), req); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful."})
}
