package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"dashformance/leads-api/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestClassifyError(t *testing.T) {
	verr := &dto.ValidationError{}
	verr.Add("email", "invalid email")

	tests := []struct {
		name       string
		err        error
		status     int
		errType    string
		code       string
		hasDetails bool
	}{
		{"validation", verr, http.StatusBadRequest, "VALIDATION", "INVALID_REQUEST", true},
		{"missing api key", dto.ErrMissingAPIKey, http.StatusInternalServerError, "CONFIGURATION", "MISSING_API_KEY", false},
		{"provider with status", &dto.ProviderError{Status: 500, Body: "boom"}, http.StatusBadGateway, "PROVIDER", "UPSTREAM_ERROR", true},
		{"provider timeout", &dto.ProviderError{Err: context.DeadlineExceeded}, http.StatusBadGateway, "PROVIDER", "UPSTREAM_ERROR", false},
		{"not found", fmt.Errorf("get lead: %w", dto.ErrLeadNotFound), http.StatusNotFound, "DATABASE", "NOT_FOUND", false},
		{"conflict", dto.ErrLeadConflict, http.StatusConflict, "DATABASE", "CONFLICT", false},
		{"unavailable", fmt.Errorf("list: %w", dto.ErrDatabaseUnavailable), http.StatusServiceUnavailable, "DATABASE_INIT", "UNAVAILABLE", false},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "UNKNOWN", "INTERNAL_ERROR", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := classifyError(tt.err)

			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.errType, detail.Type)
			assert.Equal(t, tt.code, detail.Code)
			assert.Equal(t, tt.hasDetails, detail.Details != nil)
			assert.NotEmpty(t, detail.Message)
		})
	}
}
