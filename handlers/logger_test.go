package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGetLoggerPrefersRequestLogger(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.NotNil(t, getLogger(c))

	scoped := zap.NewNop()
	c.Set("logger", scoped)
	assert.Same(t, scoped, getLogger(c))
}

func TestRequireUserWithoutIdentity(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/pets", nil)

	_, ok := requireUser(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}

func TestBindJSONRejectsMalformedBody(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/pets", strings.NewReader("{"))
	c.Request.Header.Set("Content-Type", "application/json")

	var dst struct{ Name string }
	assert.False(t, bindJSON(c, &dst))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
