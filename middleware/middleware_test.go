package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"okclinic/database/repository/memory"
	"okclinic/models"
	"okclinic/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedEngine(users *memory.UserStore, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuthMiddleware(users, nil)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		u, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": u.ID, "role": u.Role})
	})
	r.GET("/me", handlers...)
	return r
}

func get(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserStore()
	ada := &models.User{Name: "Ada", Email: "ada@example.com", Role: models.RoleCustomer}
	require.NoError(t, users.Create(ctx, ada))
	r := protectedEngine(users)

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "garbage").Code)

	expired, err := utils.GenerateToken(ada.ID, ada.Email, ada.Role, -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, expired).Code)

	token, err := utils.GenerateToken(ada.ID, ada.Email, ada.Role, time.Hour)
	require.NoError(t, err)
	w := get(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ada.ID)

	require.NoError(t, users.Delete(ctx, ada.ID))
	w = get(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token user")
}

func TestRequireRoleUsesStoredRole(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserStore()
	ada := &models.User{Name: "Ada", Email: "ada@example.com", Role: models.RoleCustomer}
	require.NoError(t, users.Create(ctx, ada))
	r := protectedEngine(users, RequireRole(models.RoleAdmin))

	// A token claiming admin does not grant it; the account record decides.
	forged, err := utils.GenerateToken(ada.ID, ada.Email, models.RoleAdmin, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, get(r, forged).Code)

	ada.Role = models.RoleAdmin
	require.NoError(t, users.Update(ctx, ada))
	assert.Equal(t, http.StatusOK, get(r, forged).Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(3))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	}
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1"))
	assert.Equal(t, http.StatusOK, do("10.0.0.2"), "limits are per client")
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "1.1.1.1, 2.2.2.2"}, "9.9.9.9:1234", "1.1.1.1"},
		{"real ip", map[string]string{"X-Real-IP": " 3.3.3.3 "}, "9.9.9.9:1234", "3.3.3.3"},
		{"remote addr", nil, "9.9.9.9:1234", "9.9.9.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = req
			assert.Equal(t, tt.want, getClientIP(c))
		})
	}
}
