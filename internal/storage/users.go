package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/healthy-heart/internal/common"
	"github.com/Veraticus/healthy-heart/internal/model"
	"github.com/mattn/go-sqlite3"
)

// CreateUser inserts a new user row. An existing username is never
// overwritten; the call fails with common.ErrDuplicateUsername instead.
func (s *SQLiteStorage) CreateUser(ctx context.Context, user *model.User) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUser(user); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		v := user.Vitals
		_, err := tx.ExecContext(ctx, `
			INSERT INTO users (username, password, age, sex, cp, trestbps, chol, thalach, exang, oldpeak, slope, ca, thal)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, user.Username, user.Password, v.Age, v.Sex, v.ChestPain, v.RestingBP, v.Cholesterol,
			v.MaxHeartRate, v.ExerciseAngina, v.Oldpeak, v.Slope, v.Vessels, v.Thal)
		if isConstraintViolation(err) {
			return fmt.Errorf("%w: %s", common.ErrDuplicateUsername, user.Username)
		}
		if err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}
		return nil
	})
}

// FindUser returns the user whose username and password both match.
// Passwords are compared in cleartext.
func (s *SQLiteStorage) FindUser(ctx context.Context, username, password string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(username, "username"); err != nil {
		return nil, err
	}

	return s.findUser(ctx, s.db, username, password)
}

func (s *SQLiteStorage) findUser(ctx context.Context, q queryable, username, password string) (*model.User, error) {
	var (
		user model.User
		v    = &user.Vitals
	)

	err := q.QueryRowContext(ctx, `
		SELECT username, password, age, sex, cp, trestbps, chol, thalach, exang, oldpeak, slope, ca, thal
		FROM users
		WHERE username = ? AND password = ?
	`, username, password).Scan(
		&user.Username,
		&user.Password,
		&v.Age,
		&v.Sex,
		&v.ChestPain,
		&v.RestingBP,
		&v.Cholesterol,
		&v.MaxHeartRate,
		&v.ExerciseAngina,
		&v.Oldpeak,
		&v.Slope,
		&v.Vessels,
		&v.Thal,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// UserExists reports whether username has signed up.
func (s *SQLiteStorage) UserExists(ctx context.Context, username string) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}

	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)
	`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
