package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Veraticus/healthy-heart/internal/model"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name      string
		str       string
		paramName string
		wantErr   bool
	}{
		{
			name:      "valid string",
			str:       "test",
			paramName: "param",
			wantErr:   false,
		},
		{
			name:      "empty string",
			str:       "",
			paramName: "param",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			str:       "   ",
			paramName: "param",
			wantErr:   true,
		},
		{
			name:      "string with spaces",
			str:       "  test  ",
			paramName: "param",
			wantErr:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, tt.paramName)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.paramName) {
				t.Errorf("validateString() error should contain param name %s, got %v", tt.paramName, err)
			}
		})
	}
}

func TestValidateUser(t *testing.T) {
	tests := []struct {
		user    *model.User
		wantErr error
		name    string
	}{
		{
			name: "valid user",
			user: model.NewUser("alice", "secret"),
		},
		{
			name:    "nil user",
			user:    nil,
			wantErr: ErrNilParameter,
		},
		{
			name:    "blank username",
			user:    model.NewUser("  ", "secret"),
			wantErr: ErrInvalidRecord,
		},
		{
			name: "empty password is the caller's concern",
			user: model.NewUser("alice", ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateUser(tt.user)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validateUser() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateUser() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSubmission(t *testing.T) {
	valid := func() *model.Submission {
		return &model.Submission{
			ID:       "id-1",
			Username: "alice",
			Input:    testVitals(),
			Label:    model.RiskHigh,
		}
	}

	tests := []struct {
		sub     *model.Submission
		wantErr error
		name    string
	}{
		{
			name: "valid submission",
			sub:  valid(),
		},
		{
			name:    "nil submission",
			sub:     nil,
			wantErr: ErrNilParameter,
		},
		{
			name: "missing username",
			sub: func() *model.Submission {
				s := valid()
				s.Username = ""
				return s
			}(),
			wantErr: ErrInvalidRecord,
		},
		{
			name: "unknown label",
			sub: func() *model.Submission {
				s := valid()
				s.Label = model.RiskLabel(7)
				return s
			}(),
			wantErr: ErrInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSubmission(tt.sub)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validateSubmission() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateSubmission() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRating(t *testing.T) {
	for rating := -1; rating <= 6; rating++ {
		err := validateRating(rating)
		wantErr := rating < model.MinRating || rating > model.MaxRating
		if (err != nil) != wantErr {
			t.Errorf("validateRating(%d) error = %v, wantErr %v", rating, err, wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidRecord) {
			t.Errorf("validateRating(%d) error = %v, want ErrInvalidRecord", rating, err)
		}
	}
}
