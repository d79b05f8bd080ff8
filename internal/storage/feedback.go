package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SaveFeedback records an app rating.
func (s *SQLiteStorage) SaveFeedback(ctx context.Context, username string, rating int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(username, "username"); err != nil {
		return err
	}
	if err := validateRating(rating); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO feedback (username, rating, created_at)
			VALUES (?, ?, ?)
		`, username, rating, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to insert feedback: %w", err)
		}
		return nil
	})
}

// AverageRating returns the mean rating and the number of ratings.
func (s *SQLiteStorage) AverageRating(ctx context.Context) (float64, int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, 0, err
	}

	var (
		avg   sql.NullFloat64
		count int
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT AVG(rating), COUNT(*) FROM feedback
	`).Scan(&avg, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate feedback: %w", err)
	}
	return avg.Float64, count, nil
}
