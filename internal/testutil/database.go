// Package testutil provides a migrated test database and shared vitals
// fixtures for package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/healthy-heart/internal/model"
	"github.com/Veraticus/healthy-heart/internal/storage"
)

// TestDB is an in-memory database that is closed when the test ends.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a migrated in-memory database.
//
// Example:
//
//	db := testutil.SetupTestDB(t).WithUser("alice", "secret")
//	eng := engine.New(db.Storage, engine.NewMockClassifier(model.RiskLow))
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// WithUser seeds an account, as sign-up would.
func (db *TestDB) WithUser(username, password string) *TestDB {
	db.t.Helper()

	if err := db.Storage.CreateUser(context.Background(), model.NewUser(username, password)); err != nil {
		db.t.Fatalf("failed to seed user %q: %v", username, err)
	}
	return db
}

// Submissions returns everything stored for username, newest first.
func (db *TestDB) Submissions(username string) []model.Submission {
	db.t.Helper()

	subs, err := db.Storage.ListSubmissions(context.Background(), username, 1000)
	if err != nil {
		db.t.Fatalf("failed to list submissions for %q: %v", username, err)
	}
	return subs
}

// Break closes the database so later calls fail as an unreachable store.
func (db *TestDB) Break() {
	db.t.Helper()

	if err := db.Storage.Close(); err != nil {
		db.t.Fatalf("failed to close test database: %v", err)
	}
}
