package dto

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLeadNotFound is returned when no lead matches the requested id
	ErrLeadNotFound = errors.New("lead not found")
	// ErrLeadConflict is returned when a write violates a unique constraint
	ErrLeadConflict = errors.New("lead conflicts with an existing record")
	// ErrDatabaseUnavailable is returned when the store cannot be reached
	ErrDatabaseUnavailable = errors.New("database unavailable")
	// ErrMissingAPIKey is returned when the registry API key is not configured
	ErrMissingAPIKey = errors.New("casa dos dados API key not configured")
)

// ProviderError is returned when the registry API fails or times out.
// Status is zero when no HTTP response was received.
type ProviderError struct {
	Status int
	Body   string
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("casa dos dados request failed: %v", e.Err)
	}
	return fmt.Sprintf("casa dos dados returned status %d: %s", e.Status, truncate(e.Body, 200))
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// FieldError is a single failed validation rule
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects the field errors of a rejected payload
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a failed rule
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns the error only when at least one rule failed
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// APIError is the body of every failed API response
// @Description Uniform error envelope
type APIError struct {
	RequestID string      `json:"request_id" example:"5f0c9a2e-8c4b-4f57-9f55-0a1f2d7c3b11"`
	Error     ErrorDetail `json:"error"`
}

// ErrorDetail classifies a failure
type ErrorDetail struct {
	Type    string      `json:"type" example:"DATABASE"`
	Code    string      `json:"code" example:"NOT_FOUND"`
	Message string      `json:"message" example:"lead not found"`
	Details interface{} `json:"details,omitempty"`
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
