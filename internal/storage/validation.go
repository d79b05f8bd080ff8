package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/healthy-heart/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrInvalidRecord = errors.New("invalid record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateUser(user *model.User) error {
	if user == nil {
		return fmt.Errorf("%w: user", ErrNilParameter)
	}
	if strings.TrimSpace(user.Username) == "" {
		return fmt.Errorf("%w: missing username", ErrInvalidRecord)
	}
	return nil
}

func validateSubmission(sub *model.Submission) error {
	if sub == nil {
		return fmt.Errorf("%w: submission", ErrNilParameter)
	}
	if strings.TrimSpace(sub.Username) == "" {
		return fmt.Errorf("%w: missing username", ErrInvalidRecord)
	}
	if !sub.Label.Valid() {
		return fmt.Errorf("%w: unknown risk label %d", ErrInvalidRecord, sub.Label)
	}
	return nil
}

func validateRating(rating int) error {
	if rating < model.MinRating || rating > model.MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidRecord, model.MinRating, model.MaxRating)
	}
	return nil
}
