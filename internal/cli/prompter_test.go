package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/healthy-heart/internal/common"
	"github.com/Veraticus/healthy-heart/internal/engine"
	"github.com/Veraticus/healthy-heart/internal/model"
	"github.com/Veraticus/healthy-heart/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// vitalsScript answers PromptVitals with the values of testutil.SampleVitals.
const vitalsScript = "45\n1\nTypical angina\n120\n200\n150\n2\n1.0\n2\n0\n3\n"

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return NewCLIPrompter(strings.NewReader(input), &out), &out
}

func TestPrompter_PromptVitals(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantOutput  string
		want        model.RawInput
		expectError bool
	}{
		{
			name:  "all fields by number",
			input: vitalsScript,
			want:  testutil.SampleVitals(),
		},
		{
			name:       "out of range age is re-asked",
			input:      "0\nabc\n" + vitalsScript,
			want:       testutil.SampleVitals(),
			wantOutput: "Enter a whole number between 1 and 120.",
		},
		{
			name:       "unknown option is re-asked",
			input:      "45\n7\nMALE\nTypical angina\n120\n200\n150\n2\n1.0\n2\n0\n3\n",
			want:       testutil.SampleVitals(),
			wantOutput: "Invalid choice.",
		},
		{
			name:       "oldpeak rejects NaN",
			input:      "45\n1\n1\n120\n200\n150\n2\nNaN\n1.0\n2\n0\n3\n",
			want:       testutil.SampleVitals(),
			wantOutput: "Enter a number",
		},
		{
			name:        "input ends early",
			input:       "45\n1\n",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out := newTestPrompter(tt.input)

			got, err := p.PromptVitals(context.Background())
			if tt.expectError {
				require.ErrorIs(t, err, ErrInputClosed)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			require.NoError(t, got.Validate())
			if tt.wantOutput != "" {
				assert.Contains(t, out.String(), tt.wantOutput)
			}
		})
	}
}

func TestPrompter_BlankOldpeakDefaultsToZero(t *testing.T) {
	p, _ := newTestPrompter("45\n1\n1\n120\n200\n150\n2\n\n2\n0\n3\n")

	got, err := p.PromptVitals(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got.Oldpeak, 1e-12)
}

func TestPrompter_PromptCredentials(t *testing.T) {
	p, out := newTestPrompter("\nalice\nsecret\n")

	username, password, err := p.PromptCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
	assert.Equal(t, "secret", password)
	assert.Contains(t, out.String(), "Username cannot be empty")
}

func TestPrompter_PromptSignUp(t *testing.T) {
	p, _ := newTestPrompter("bob\npw1\npw2\n")

	username, password, confirm, err := p.PromptSignUp(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bob", username)
	assert.Equal(t, "pw1", password)
	assert.Equal(t, "pw2", confirm)
}

func TestPrompter_SecretReader(t *testing.T) {
	p, _ := newTestPrompter("alice\n")
	p.readSecret = func() (string, error) {
		return "hidden", nil
	}

	username, password, err := p.PromptCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
	assert.Equal(t, "hidden", password)
}

func TestPrompter_PromptRating(t *testing.T) {
	p, out := newTestPrompter("9\n4\n")

	rating, err := p.PromptRating(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, rating)
	assert.Contains(t, out.String(), "between 0 and 5")
}

func TestPrompter_PromptMenu(t *testing.T) {
	p, out := newTestPrompter("2\n4\n")

	action, err := p.PromptMenu(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, ActionSignUp, action)
	assert.NotContains(t, out.String(), ActionCheck)

	action, err = p.PromptMenu(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, ActionSignOut, action)
}

func TestPrompter_ContextCancellation(t *testing.T) {
	p, _ := newTestPrompter("45\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.PromptVitals(ctx)
	assert.ErrorIs(t, err, ErrInputCancelled)
}

func TestPrompter_ShowAssessment(t *testing.T) {
	tests := []struct {
		name  string
		label model.RiskLabel
	}{
		{name: "low risk", label: model.RiskLow},
		{name: "high risk", label: model.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out := newTestPrompter("")
			p.ShowAssessment(&engine.Assessment{Label: tt.label})

			assert.Contains(t, out.String(), tt.label.Message())
			assert.Contains(t, out.String(), "not a substitute for professional medical advice")
		})
	}
}

func TestPrompter_ShowHistory(t *testing.T) {
	p, out := newTestPrompter("")
	p.ShowHistory(nil)
	assert.Contains(t, out.String(), "No submissions yet.")

	out.Reset()
	p.ShowHistory([]model.Submission{
		{
			CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
			Input:     testutil.SampleVitals(),
			Label:     model.RiskHigh,
		},
	})
	assert.Contains(t, out.String(), "high")
	assert.Contains(t, out.String(), "male")
}

func TestPrompter_ShowError(t *testing.T) {
	p, out := newTestPrompter("")
	p.ShowError(common.ErrDuplicateUsername)
	assert.Contains(t, out.String(), "Username already exists")

	out.Reset()
	p.ShowError(nil)
	assert.Empty(t, out.String())

	p.ShowError(errors.New("boom"))
	assert.Contains(t, out.String(), "Something went wrong.")
}
