package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Veraticus/healthy-heart/internal/model"
	"github.com/google/uuid"
)

const defaultHistoryLimit = 50

// AppendSubmission stores one prediction. ID and CreatedAt are filled in when empty.
func (s *SQLiteStorage) AppendSubmission(ctx context.Context, sub *model.Submission) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSubmission(sub); err != nil {
		return err
	}

	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		in := sub.Input
		_, err := tx.ExecContext(ctx, `
			INSERT INTO submissions (id, username, age, sex, cp, trestbps, chol, thalach, exang, oldpeak, slope, ca, thal, risk_label, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, sub.ID, sub.Username, in.Age, in.Sex, in.ChestPain, in.RestingBP, in.Cholesterol,
			in.MaxHeartRate, in.ExerciseAngina, in.Oldpeak, in.Slope, in.Vessels, in.Thal,
			int(sub.Label), sub.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert submission: %w", err)
		}
		return nil
	})
}

// ListSubmissions returns the newest submissions of username first.
func (s *SQLiteStorage) ListSubmissions(ctx context.Context, username string, limit int) ([]model.Submission, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(username, "username"); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, age, sex, cp, trestbps, chol, thalach, exang, oldpeak, slope, ca, thal, risk_label, created_at
		FROM submissions
		WHERE username = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, username, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var subs []model.Submission
	for rows.Next() {
		var (
			sub   model.Submission
			in    = &sub.Input
			label int
		)
		err := rows.Scan(
			&sub.ID,
			&sub.Username,
			&in.Age,
			&in.Sex,
			&in.ChestPain,
			&in.RestingBP,
			&in.Cholesterol,
			&in.MaxHeartRate,
			&in.ExerciseAngina,
			&in.Oldpeak,
			&in.Slope,
			&in.Vessels,
			&in.Thal,
			&label,
			&sub.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		sub.Label = model.RiskLabel(label)
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submissions: %w", err)
	}
	return subs, nil
}
