// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound           = errors.New("not found")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Session errors.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrNotSignedIn        = errors.New("not signed in")

	// Input and classification errors.
	ErrInvalidInput         = errors.New("invalid input")
	ErrClassificationFailed = errors.New("classification failed")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage returns the inline message to render for err.
func UserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}

	switch {
	case errors.Is(err, ErrDuplicateUsername):
		return "Username already exists. Please choose a different username."
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid username or password."
	case errors.Is(err, ErrPasswordMismatch):
		return "Passwords do not match."
	case errors.Is(err, ErrNotSignedIn):
		return "Please sign in first."
	case errors.Is(err, ErrStorageUnavailable):
		return "Error! Cannot reach the database."
	case errors.Is(err, ErrClassificationFailed):
		return "The risk model could not produce a prediction. Please try again later."
	case errors.Is(err, ErrInvalidInput):
		return "Some of the values entered are not valid."
	default:
		return "Something went wrong."
	}
}

// IsRecoverable reports whether the user can fix err by re-entering input.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrDuplicateUsername) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrPasswordMismatch) ||
		errors.Is(err, ErrInvalidInput)
}
