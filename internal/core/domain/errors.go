package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrForbidden          = errors.New("access forbidden")
	ErrNoSession          = errors.New("no active session")
)

// ErrorKind classifies a failure surfaced to the user.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindAuth       ErrorKind = "auth"
	KindServer     ErrorKind = "server"
	KindNetwork    ErrorKind = "network"
)

// User-facing messages for the sign-in failure taxonomy.
const (
	MsgInvalidCredentials = "Invalid username or password."
	MsgAccountDisabled    = "This account has been disabled. Contact your administrator."
	MsgRateLimited        = "Too many sign-in attempts. Please wait a moment and try again."
	MsgServerError        = "The server encountered an error. Please try again later."
	MsgOffline            = "No internet connection. Check your network and try again."
	MsgUnreachable        = "Could not reach the server. Please try again."
)

// APIError is the normalised form of every failure coming back from the
// backend boundary. Status is the HTTP status the backend answered with, or 0
// when no response was received.
type APIError struct {
	Kind    ErrorKind `json:"kind"`
	Status  int       `json:"status,omitempty"`
	Message string    `json:"message"`
	// Field names the offending form input for validation failures.
	Field string `json:"field,omitempty"`
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is lets errors.Is match an APIError against the credential sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrInvalidCredentials:
		return e.Kind == KindAuth && e.Status == 401
	case ErrAccountDisabled:
		return e.Kind == KindAuth && e.Status == 403
	}
	return false
}

// NewValidationError builds a validation failure with the given message.
func NewValidationError(msg string) *APIError {
	return &APIError{Kind: KindValidation, Message: msg}
}

// NewNetworkError builds a connectivity failure.
func NewNetworkError(msg string) *APIError {
	return &APIError{Kind: KindNetwork, Message: msg}
}

// AsAPIError unwraps err into an *APIError when possible.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
