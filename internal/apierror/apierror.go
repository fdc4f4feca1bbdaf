// Package apierror provides the standardized error envelope for the API.
// Every 4xx/5xx response goes through this package so clients see a uniform
// shape and internal details (stack traces, SQL errors) never leak.
package apierror

// APIError is the canonical error envelope for all error responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps per-field validation failures.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
