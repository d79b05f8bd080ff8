// Package engine implements the form workflow: sign-up, sign-in, and risk
// assessment of submitted vitals.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/healthy-heart/internal/classifier"
	"github.com/Veraticus/healthy-heart/internal/common"
	"github.com/Veraticus/healthy-heart/internal/features"
	"github.com/Veraticus/healthy-heart/internal/model"
)

// Assessment is the outcome of one prediction request.
type Assessment struct {
	Submission model.Submission
	Vector     features.Vector
	Label      model.RiskLabel
}

// Engine encodes, classifies and persists form submissions.
type Engine struct {
	storage    Storage
	classifier classifier.RiskClassifier
	builder    *features.Builder
}

// New creates an engine using the standard feature builder.
func New(storage Storage, riskClassifier classifier.RiskClassifier) *Engine {
	return NewWithBuilder(storage, riskClassifier, features.NewBuilder())
}

// NewWithBuilder creates an engine with a custom feature builder.
func NewWithBuilder(storage Storage, riskClassifier classifier.RiskClassifier, builder *features.Builder) *Engine {
	return &Engine{
		storage:    storage,
		classifier: riskClassifier,
		builder:    builder,
	}
}

// SignUp registers a new user with placeholder vitals.
func (e *Engine) SignUp(ctx context.Context, username, password, confirm string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", common.ErrInvalidInput)
	}
	if password != confirm {
		return common.ErrPasswordMismatch
	}

	err := e.storage.CreateUser(ctx, model.NewUser(username, password))
	if errors.Is(err, common.ErrDuplicateUsername) {
		slog.Info("Sign-up rejected, username taken", "username", username)
		return err
	}
	if err != nil {
		return storageError("failed to create user", err)
	}

	slog.Info("User signed up", "username", username)
	return nil
}

// SignIn checks the credentials and marks sess as signed in. On mismatch
// sess is left untouched.
func (e *Engine) SignIn(ctx context.Context, sess *Session, username, password string) (*model.User, error) {
	if sess == nil {
		return nil, fmt.Errorf("%w: nil session", common.ErrInvalidInput)
	}
	if strings.TrimSpace(username) == "" {
		return nil, common.ErrInvalidCredentials
	}

	user, err := e.storage.FindUser(ctx, username, password)
	if errors.Is(err, common.ErrNotFound) {
		slog.Info("Sign-in rejected", "username", username)
		return nil, common.ErrInvalidCredentials
	}
	if err != nil {
		return nil, storageError("failed to look up user", err)
	}

	sess.SignedIn = true
	sess.Username = user.Username
	slog.Info("User signed in", "username", user.Username)
	return user, nil
}

// SignOut clears sess.
func (e *Engine) SignOut(sess *Session) {
	if sess == nil {
		return
	}
	if sess.SignedIn {
		slog.Info("User signed out", "username", sess.Username)
	}
	*sess = Session{}
}

// Assess encodes raw, classifies it and appends the submission for the
// signed-in user. The steps run in order and the first failure stops the rest.
func (e *Engine) Assess(ctx context.Context, sess *Session, raw model.RawInput) (*Assessment, error) {
	if err := requireSignedIn(sess); err != nil {
		return nil, err
	}

	vector := e.builder.Build(raw)
	slog.Debug("Encoded feature vector", "active", vector.Active())

	label, err := e.classifier.Predict(ctx, vector)
	if err != nil {
		if errors.Is(err, common.ErrClassificationFailed) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrClassificationFailed, err)
	}

	sub := model.Submission{
		Username: sess.Username,
		Input:    raw,
		Label:    label,
	}
	if err := e.storage.AppendSubmission(ctx, &sub); err != nil {
		return nil, storageError("failed to save submission", err)
	}

	slog.Info("Assessment complete",
		"username", sess.Username,
		"submission_id", sub.ID,
		"risk", label.String())

	return &Assessment{
		Submission: sub,
		Vector:     vector,
		Label:      label,
	}, nil
}

// History returns the signed-in user's latest submissions, newest first.
func (e *Engine) History(ctx context.Context, sess *Session, limit int) ([]model.Submission, error) {
	if err := requireSignedIn(sess); err != nil {
		return nil, err
	}

	subs, err := e.storage.ListSubmissions(ctx, sess.Username, limit)
	if err != nil {
		return nil, storageError("failed to load history", err)
	}
	return subs, nil
}

// RecordFeedback stores an app rating from the signed-in user.
func (e *Engine) RecordFeedback(ctx context.Context, sess *Session, rating int) error {
	if err := requireSignedIn(sess); err != nil {
		return err
	}
	if rating < model.MinRating || rating > model.MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", common.ErrInvalidInput, model.MinRating, model.MaxRating)
	}

	if err := e.storage.SaveFeedback(ctx, sess.Username, rating); err != nil {
		return storageError("failed to save feedback", err)
	}
	return nil
}

// Authorize confirms that a restored session still names an existing user.
func (e *Engine) Authorize(ctx context.Context, sess *Session) error {
	if err := requireSignedIn(sess); err != nil {
		return err
	}

	exists, err := e.storage.UserExists(ctx, sess.Username)
	if err != nil {
		return storageError("failed to check user", err)
	}
	if !exists {
		return common.ErrNotSignedIn
	}
	return nil
}

func requireSignedIn(sess *Session) error {
	if sess == nil || !sess.SignedIn || sess.Username == "" {
		return common.ErrNotSignedIn
	}
	return nil
}

func storageError(msg string, err error) error {
	if errors.Is(err, common.ErrStorageUnavailable) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return fmt.Errorf("%s: %w: %v", msg, common.ErrStorageUnavailable, err)
}
