package storage

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/healthy-heart/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStorage_AppendSubmission(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	createTestUser(t, store, "alice", "pw")

	sub := &model.Submission{
		Username: "alice",
		Input:    testVitals(),
		Label:    model.RiskHigh,
	}
	require.NoError(t, store.AppendSubmission(ctx, sub))
	assert.NotEmpty(t, sub.ID)
	assert.False(t, sub.CreatedAt.IsZero())

	subs, err := store.ListSubmissions(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, subs, 1)

	got := subs[0]
	assert.Equal(t, sub.ID, got.ID)
	assert.Equal(t, testVitals(), got.Input)
	assert.Equal(t, model.RiskHigh, got.Label)
	assert.WithinDuration(t, sub.CreatedAt, got.CreatedAt, time.Second)
}

func TestSQLiteStorage_AppendSubmission_AppendsRows(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	createTestUser(t, store, "alice", "pw")
	createTestUser(t, store, "bob", "pw")

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		in := testVitals()
		in.Age = 40 + i
		require.NoError(t, store.AppendSubmission(ctx, &model.Submission{
			Username:  "alice",
			Input:     in,
			Label:     model.RiskLow,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, store.AppendSubmission(ctx, &model.Submission{
		Username: "bob",
		Input:    testVitals(),
		Label:    model.RiskLow,
	}))

	subs, err := store.ListSubmissions(ctx, "alice", 0)
	require.NoError(t, err)
	require.Len(t, subs, 3)
	assert.Equal(t, 42, subs[0].Input.Age, "newest first")
	assert.Equal(t, 40, subs[2].Input.Age)

	limited, err := store.ListSubmissions(ctx, "alice", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSQLiteStorage_AppendSubmission_Invalid(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		sub     *model.Submission
		wantErr error
		name    string
	}{
		{name: "nil", sub: nil, wantErr: ErrNilParameter},
		{name: "no username", sub: &model.Submission{Label: model.RiskLow}, wantErr: ErrInvalidRecord},
		{name: "bad label", sub: &model.Submission{Username: "alice", Label: 7}, wantErr: ErrInvalidRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, store.AppendSubmission(ctx, tt.sub), tt.wantErr)
		})
	}
}

func TestSQLiteStorage_AppendSubmission_UnknownUser(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	err := store.AppendSubmission(context.Background(), &model.Submission{
		Username: "ghost",
		Input:    testVitals(),
		Label:    model.RiskLow,
	})
	assert.Error(t, err)
}
