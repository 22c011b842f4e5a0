package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrBusinessNotFound is returned when a business id is unknown.
	ErrBusinessNotFound = errors.New("business not found")
	// ErrUserNotFound is returned when a user id is unknown.
	ErrUserNotFound = errors.New("user not found")
	// ErrNotOwner is returned when a non-owner tries to edit a listing.
	ErrNotOwner = errors.New("only the business owner can edit this listing")
	// ErrGuestForbidden is returned when a guest tries to review, save
	// favorites, update a profile, or add a listing.
	ErrGuestForbidden = errors.New("sign in to perform this action")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned when a refresh token is invalid or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// ValidationError reports a rejected input field. It is recovered at the
// submission boundary and surfaced as a field-scoped message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a field-scoped validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Field      string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
		Field: e.Field,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		httpErr := NewHTTPError(http.StatusBadRequest, ve.Message, "VALIDATION_FAILED")
		httpErr.Field = ve.Field
		return httpErr
	}

	switch {
	case errors.Is(err, ErrBusinessNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "BUSINESS_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrNotOwner):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_OWNER")
	case errors.Is(err, ErrGuestForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "GUEST_FORBIDDEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_TOKEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
