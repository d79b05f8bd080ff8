package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Veraticus/healthy-heart/internal/common"
	"github.com/Veraticus/healthy-heart/internal/engine"
	"github.com/Veraticus/healthy-heart/internal/model"
	"github.com/Veraticus/healthy-heart/internal/storage"
	"github.com/Veraticus/healthy-heart/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, input string, label model.RiskLabel) (*Controller, *storage.SQLiteStorage, *bytes.Buffer) {
	t.Helper()

	db := testutil.SetupTestDB(t).Storage

	var out bytes.Buffer
	eng := engine.New(db, engine.NewMockClassifier(label))
	return NewController(eng, NewCLIPrompter(strings.NewReader(input), &out)), db, &out
}

func TestController_FullSession(t *testing.T) {
	script := strings.Join([]string{
		"2", "alice", "pw", "pw", // sign up
		"1", "alice", "wrong", // failed sign in
		"1", "alice", "pw", // sign in
	}, "\n") + "\n" +
		"1\n" + vitalsScript + // check
		"2\n" + // history
		"3\n4\n" + // rate
		"5\n" // quit

	ctrl, db, out := newTestController(t, script, model.RiskHigh)

	require.NoError(t, ctrl.Run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "Successfully signed up!")
	assert.Contains(t, output, "Invalid username or password.")
	assert.Contains(t, output, "Successfully signed in!")
	assert.Contains(t, output, model.RiskHigh.Message())
	assert.Contains(t, output, "Thank you for rating the app!")
	assert.True(t, ctrl.Session().SignedIn)

	subs, err := db.ListSubmissions(context.Background(), "alice", 10)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, testutil.SampleVitals(), subs[0].Input)
}

func TestController_DuplicateSignUpIsRecoverable(t *testing.T) {
	script := "2\nalice\npw\npw\n2\nalice\nother\nother\n3\n"
	ctrl, db, out := newTestController(t, script, model.RiskLow)

	require.NoError(t, ctrl.Run(context.Background()))
	assert.Contains(t, out.String(), "Username already exists")

	_, err := db.FindUser(context.Background(), "alice", "pw")
	require.NoError(t, err)
	_, err = db.FindUser(context.Background(), "alice", "other")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestController_SignOut(t *testing.T) {
	script := "2\nalice\npw\npw\n1\nalice\npw\n4\n3\n"
	ctrl, _, out := newTestController(t, script, model.RiskLow)

	require.NoError(t, ctrl.Run(context.Background()))
	assert.Contains(t, out.String(), "Signed out.")
	assert.False(t, ctrl.Session().SignedIn)
}

func TestController_EndOfInputQuits(t *testing.T) {
	ctrl, _, _ := newTestController(t, "", model.RiskLow)
	assert.NoError(t, ctrl.Run(context.Background()))
}

func TestController_StorageFailureEndsRun(t *testing.T) {
	ctrl, db, out := newTestController(t, "", model.RiskLow)

	// Sign up and in succeed, then the database goes away before the check.
	ctrl.prompter.reader = NewNonBlockingReader(strings.NewReader("2\nalice\npw\npw\n1\nalice\npw\n5\n"))
	require.NoError(t, ctrl.Run(context.Background()))
	require.NoError(t, db.Close())

	ctrl.prompter.reader = NewNonBlockingReader(strings.NewReader("1\n" + vitalsScript + "5\n"))
	err := ctrl.Run(context.Background())
	require.ErrorIs(t, err, common.ErrStorageUnavailable)
	assert.Contains(t, out.String(), "Cannot reach the database")
}

func TestController_UseForm(t *testing.T) {
	script := "2\nalice\npw\npw\n1\nalice\npw\n1\n1\n5\n"
	ctrl, _, out := newTestController(t, script, model.RiskLow)

	calls := 0
	ctrl.UseForm(func(_ context.Context, sess *engine.Session) (*engine.Assessment, error) {
		calls++
		assert.Equal(t, "alice", sess.Username)
		if calls == 1 {
			return &engine.Assessment{Label: model.RiskLow}, nil
		}
		return nil, nil
	})

	require.NoError(t, ctrl.Run(context.Background()))
	assert.Equal(t, 2, calls)
	assert.Contains(t, out.String(), model.RiskLow.Message())
	assert.Contains(t, out.String(), "Nothing was submitted.")
}
