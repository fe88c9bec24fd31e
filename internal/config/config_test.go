package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every ROWMAX_* variable for the duration of the test so
// the machine's environment cannot leak into the assertions. t.Setenv
// registers the restore; the unset makes the variable truly absent.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ROWMAX_ROWS", "ROWMAX_COLS", "ROWMAX_CHUNK", "ROWMAX_REPS",
		"ROWMAX_SEED", "ROWMAX_PARALLEL", "ROWMAX_PRETTY_LOGS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 256, cfg.Rows)
	assert.Equal(t, 4096, cfg.Cols)
	assert.Equal(t, 256, cfg.ChunkSize)
	assert.Equal(t, 20, cfg.Reps)
	assert.Equal(t, int64(1), cfg.Seed)
	assert.True(t, cfg.Parallel)
	assert.True(t, cfg.PrettyLogs)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ROWMAX_ROWS", "8")
	t.Setenv("ROWMAX_COLS", "64")
	t.Setenv("ROWMAX_CHUNK", "16")
	t.Setenv("ROWMAX_PARALLEL", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Rows)
	assert.Equal(t, 64, cfg.Cols)
	assert.Equal(t, 16, cfg.ChunkSize)
	assert.False(t, cfg.Parallel)
}

func TestLoadRejectsMalformed(t *testing.T) {
	clearEnv(t)
	t.Setenv("ROWMAX_ROWS", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}
