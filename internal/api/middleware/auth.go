package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"dashformance/leads-api/internal/dto"

	"github.com/gin-gonic/gin"
)

const (
	// AccessCookie is set by a successful login
	AccessCookie = "dash_access"
	// AccessCookieMaxAge keeps a login for seven days
	AccessCookieMaxAge = 7 * 24 * 60 * 60
)

// Auth admits requests that carry the access cookie or the shared password
// as a bearer token. An empty password disables the check.
func Auth(password string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if password == "" {
			c.Next()
			return
		}

		if cookie, err := c.Cookie(AccessCookie); err == nil && cookie == "true" {
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if ok && PasswordMatches(token, password) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.APIError{
			RequestID: GetRequestID(c),
			Error: dto.ErrorDetail{
				Type:    "AUTH",
				Code:    "UNAUTHORIZED",
				Message: "Unauthorized",
			},
		})
	}
}

// PasswordMatches compares in constant time
func PasswordMatches(given, password string) bool {
	return subtle.ConstantTimeCompare([]byte(given), []byte(password)) == 1
}
