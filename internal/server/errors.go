package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrEmailAlreadyExists indicates the email is already registered.
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates the user was not found.
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates the current password is incorrect.
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrAIBudgetExceeded indicates the shared daily AI request budget is spent.
type ErrAIBudgetExceeded struct {
	RetryAfter int
}

func (e *ErrAIBudgetExceeded) Error() string {
	return "AI rate limit reached. Please wait and try again."
}

// ErrUpstreamAI indicates the model provider failed to produce a usable
// response.
type ErrUpstreamAI struct {
	Cause error
}

func (e *ErrUpstreamAI) Error() string {
	return fmt.Sprintf("upstream AI failure: %v", e.Cause)
}

func (e *ErrUpstreamAI) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized
	case *ErrUserNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrAIBudgetExceeded:
		return http.StatusTooManyRequests
	case *ErrUpstreamAI:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
