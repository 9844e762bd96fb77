// Package errors provides standardized error handling for the admin console.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Transport / API boundary errors.
	ErrCodeNetwork ErrorCode = "NETWORK_ERROR"
	ErrCodeAPI     ErrorCode = "API_ERROR"

	// Client-side errors raised before a call fires.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// Authentication errors.
	ErrCodeAuth         ErrorCode = "AUTH_ERROR"
	ErrCodeTokenMissing ErrorCode = "TOKEN_MISSING"

	// Token persistence errors.
	ErrCodeTokenStore ErrorCode = "TOKEN_STORE_ERROR"
)

// AppError represents a structured application error.
type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	StatusCode int                    `json:"statusCode,omitempty"`
	Retryable  bool                   `json:"retryable"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("AppError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewNetworkError wraps a transport failure (request never reached the
// server, or the response was unreadable).
func NewNetworkError(err error) *AppError {
	return &AppError{
		Code:      ErrCodeNetwork,
		Message:   "Network request failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewAPIError wraps a non-2xx server response. message should be the
// server-provided message when one was decodable, otherwise empty.
func NewAPIError(statusCode int, message string) *AppError {
	if message == "" {
		message = fmt.Sprintf("Request failed with status %d", statusCode)
	}
	return &AppError{
		Code:       ErrCodeAPI,
		Message:    message,
		StatusCode: statusCode,
		Retryable:  statusCode >= 500,
		Timestamp:  time.Now().UTC(),
	}
}

// NewValidationError reports a client-side check that failed before the
// call was made.
func NewValidationError(details string) *AppError {
	return &AppError{
		Code:      ErrCodeValidation,
		Message:   "Validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthError reports a rejected login or a missing token in a response.
func NewAuthError(message string) *AppError {
	if message == "" {
		message = "Authentication failed"
	}
	return &AppError{
		Code:      ErrCodeAuth,
		Message:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTokenMissingError reports a login the server accepted without
// issuing a token.
func NewTokenMissingError() *AppError {
	return &AppError{
		Code:      ErrCodeTokenMissing,
		Message:   "Login response did not include a token",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTokenStoreError wraps a failure to read or write the persisted token.
func NewTokenStoreError(err error) *AppError {
	return &AppError{
		Code:      ErrCodeTokenStore,
		Message:   "Token store operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Helpers
// ==========================

// CodeOf returns the ErrorCode carried by err, or empty when err is not
// an AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// UserMessage extracts the string a page should display for err. AppErrors
// surface their message verbatim; anything else falls back to Error().
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
