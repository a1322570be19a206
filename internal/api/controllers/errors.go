package controllers

import (
	"errors"
	"net/http"

	"dashformance/leads-api/internal/api/middleware"
	"dashformance/leads-api/internal/dto"

	"github.com/gin-gonic/gin"
)

// respondError writes the error envelope for err with the status its kind maps to
func respondError(c *gin.Context, err error) {
	status, detail := classifyError(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.APIError{
		RequestID: middleware.GetRequestID(c),
		Error:     detail,
	})
}

// respondBadRequest reports a malformed body or query
func respondBadRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.APIError{
		RequestID: middleware.GetRequestID(c),
		Error: dto.ErrorDetail{
			Type:    "VALIDATION",
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		},
	})
}

func classifyError(err error) (int, dto.ErrorDetail) {
	var providerErr *dto.ProviderError
	var validationErr *dto.ValidationError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, dto.ErrorDetail{Type: "VALIDATION", Code: "INVALID_REQUEST", Message: err.Error(), Details: validationErr.Fields}
	case errors.Is(err, dto.ErrMissingAPIKey):
		return http.StatusInternalServerError, dto.ErrorDetail{Type: "CONFIGURATION", Code: "MISSING_API_KEY", Message: err.Error()}
	case errors.As(err, &providerErr):
		detail := dto.ErrorDetail{Type: "PROVIDER", Code: "UPSTREAM_ERROR", Message: providerErr.Error()}
		if providerErr.Status != 0 {
			detail.Details = gin.H{"status": providerErr.Status}
		}
		return http.StatusBadGateway, detail
	case errors.Is(err, dto.ErrLeadNotFound):
		return http.StatusNotFound, dto.ErrorDetail{Type: "DATABASE", Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, dto.ErrLeadConflict):
		return http.StatusConflict, dto.ErrorDetail{Type: "DATABASE", Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, dto.ErrDatabaseUnavailable):
		return http.StatusServiceUnavailable, dto.ErrorDetail{Type: "DATABASE_INIT", Code: "UNAVAILABLE", Message: err.Error()}
	default:
		return http.StatusInternalServerError, dto.ErrorDetail{Type: "UNKNOWN", Code: "INTERNAL_ERROR", Message: err.Error()}
	}
}
