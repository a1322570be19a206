package controllers

import (
	"net/http"

	"dashformance/leads-api/internal/api/middleware"
	"dashformance/leads-api/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// LoginRequest carries the shared dashboard password
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// AuthController handles dashboard login
type AuthController struct {
	password     string
	secureCookie bool
	log          *logrus.Entry
}

// NewAuthController creates a new AuthController instance
func NewAuthController(password string, secureCookie bool, logger *logrus.Logger) *AuthController {
	return &AuthController{
		password:     password,
		secureCookie: secureCookie,
		log:          logger.WithField("component", "AuthController"),
	}
}

// Login godoc
// @Summary      Log in to the dashboard
// @Description  Check the shared password and set the dash_access cookie for seven days
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Password"
// @Success      200 {object} map[string]bool
// @Failure      400 {object} dto.APIError
// @Failure      401 {object} dto.APIError
// @Router       /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if ctrl.password != "" && !middleware.PasswordMatches(req.Password, ctrl.password) {
		ctrl.log.WithField("ip", c.ClientIP()).Warn("[AuthController] Invalid password")
		c.JSON(http.StatusUnauthorized, dto.APIError{
			RequestID: middleware.GetRequestID(c),
			Error: dto.ErrorDetail{
				Type:    "AUTH",
				Code:    "INVALID_PASSWORD",
				Message: "Senha incorreta",
			},
		})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessCookie, "true", middleware.AccessCookieMaxAge, "/", "", ctrl.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
