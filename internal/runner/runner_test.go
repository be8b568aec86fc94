package runner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesStdoutAndStderr(t *testing.T) {
	r := New()

	res, err := r.Run(context.Background(), "", "sh", "-c", "echo out; echo err 1>&2")
	require.NoError(t, err)

	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
}

func TestRunNonZeroExitIsNotAnError(t *testing.T) {
	r := New()

	res, err := r.Run(context.Background(), "", "sh", "-c", "echo boom 1>&2; exit 3")
	require.NoError(t, err)

	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "boom\n", res.Stderr)
}

func TestRunNoOutputStillResolves(t *testing.T) {
	r := New()

	res, err := r.Run(context.Background(), "", "true")
	require.NoError(t, err)

	assert.Equal(t, 0, res.ExitCode)
	assert.Empty(t, res.Stdout)
	assert.Empty(t, res.Stderr)
}

func TestRunMissingBinaryIsSpawnError(t *testing.T) {
	r := New()

	_, err := r.Run(context.Background(), "", "/nonexistent/binary-xyz")
	require.Error(t, err)

	var spawnErr *SpawnError
	assert.ErrorAs(t, err, &spawnErr)
}

func TestRunHonorsWorkingDirectory(t *testing.T) {
	r := New()
	dir := t.TempDir()

	res, err := r.Run(context.Background(), dir, "pwd")
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, dir)
}

func TestRunContextTimeoutKillsProcess(t *testing.T) {
	r := New()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := r.Run(ctx, "", "sleep", "10")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
