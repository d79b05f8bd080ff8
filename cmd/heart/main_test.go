package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/Veraticus/healthy-heart/internal/common"
	"github.com/Veraticus/healthy-heart/internal/storage"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommands(t *testing.T) {
	want := []string{"serve", "check", "signup", "history", "screen", "migrate", "version"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestVersionCmd(t *testing.T) {
	cmd := versionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "heart version dev\n", out.String())
}

func TestMigrateCmd(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "heart.db")
	viper.Set("database.path", dbPath)
	t.Cleanup(viper.Reset)

	run := func(args ...string) string {
		cmd := migrateCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs(args)
		require.NoError(t, cmd.ExecuteContext(context.Background()))
		return out.String()
	}

	assert.Contains(t, run("--status"), "Current version: 0")
	run()
	assert.Contains(t, run("--status"), fmt.Sprintf("Current version: %d", storage.ExpectedSchemaVersion))
}

func TestErrorText(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want string
	}{
		{
			name: "storage failure shows the inline message",
			err:  fmt.Errorf("failed to save: %w", common.ErrStorageUnavailable),
			want: "Error! Cannot reach the database.",
		},
		{
			name: "user error",
			err:  common.NewUserError("Pick another name.", common.ErrInvalidInput),
			want: "Pick another name.",
		},
		{
			name: "config errors keep their detail",
			err:  fmt.Errorf("%w: server.jwt_secret", common.ErrMissingConfig),
			want: "missing configuration: server.jwt_secret",
		},
		{
			name: "anything else",
			err:  errors.New("open foo.csv: no such file"),
			want: "open foo.csv: no such file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorText(tt.err))
		})
	}
}
