package engine

import (
	"context"

	"github.com/Veraticus/healthy-heart/internal/model"
)

// Storage defines the contract for the credential and submission store.
type Storage interface {
	Migrate(ctx context.Context) error
	CreateUser(ctx context.Context, user *model.User) error
	FindUser(ctx context.Context, username, password string) (*model.User, error)
	UserExists(ctx context.Context, username string) (bool, error)
	AppendSubmission(ctx context.Context, sub *model.Submission) error
	ListSubmissions(ctx context.Context, username string, limit int) ([]model.Submission, error)
	SaveFeedback(ctx context.Context, username string, rating int) error
}
