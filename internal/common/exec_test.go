package common

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunner_PassesStdin(t *testing.T) {
	runner := NewExecRunner()

	result, err := runner.Run(context.Background(), "tok1", "sh", "-c", "cat")
	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Equal(t, "tok1", result.Stdout)
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	runner := NewExecRunner()

	result, err := runner.Run(context.Background(), "", "sh", "-c", "echo oops >&2; exit 3")
	require.NoError(t, err)
	assert.False(t, result.Success())
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "oops\n", result.Stderr)
}

func TestExecRunner_SpawnFailure(t *testing.T) {
	runner := NewExecRunner()

	result, err := runner.Run(context.Background(), "", "goat-definitely-not-a-binary")
	require.Error(t, err)
	assert.False(t, result.Success())
}

func TestExecRunner_Timeout(t *testing.T) {
	runner := NewExecRunner()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	result, err := runner.Run(ctx, "", "sh", "-c", "sleep 5")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, -1, result.ExitCode)
}

func TestExecRunner_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	runner := &ExecRunner{Dir: dir}

	result, err := runner.Run(context.Background(), "", "sh", "-c", "pwd -P")
	require.NoError(t, err)
	assert.Contains(t, result.Stdout, filepath.Base(dir))
}
