package controllers

import (
	"net/http"
	"testing"

	"dashformance/leads-api/internal/api/middleware"
	"dashformance/leads-api/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(password string, secure bool) *gin.Engine {
	router := setupTestRouter()
	router.POST("/auth/login", NewAuthController(password, secure, logger.Discard()).Login)
	return router
}

func TestAuthController_Login(t *testing.T) {
	t.Run("correct password sets cookie", func(t *testing.T) {
		w := performRequest(setupAuthRouter("s3cret", true), http.MethodPost, "/auth/login", map[string]string{"password": "s3cret"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success": true}`, w.Body.String())

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, middleware.AccessCookie, cookies[0].Name)
		assert.Equal(t, "true", cookies[0].Value)
		assert.Equal(t, middleware.AccessCookieMaxAge, cookies[0].MaxAge)
		assert.True(t, cookies[0].HttpOnly)
		assert.True(t, cookies[0].Secure)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := performRequest(setupAuthRouter("s3cret", false), http.MethodPost, "/auth/login", map[string]string{"password": "guess"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		apiErr := decodeAPIError(t, w)
		assert.Equal(t, "INVALID_PASSWORD", apiErr.Error.Code)
		assert.Equal(t, "Senha incorreta", apiErr.Error.Message)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("missing password field", func(t *testing.T) {
		w := performRequest(setupAuthRouter("s3cret", false), http.MethodPost, "/auth/login", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no password configured", func(t *testing.T) {
		w := performRequest(setupAuthRouter("", false), http.MethodPost, "/auth/login", map[string]string{"password": "anything"})

		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, w.Result().Cookies(), 1)
		assert.False(t, w.Result().Cookies()[0].Secure)
	})
}
