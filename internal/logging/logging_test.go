package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		verbose bool
		want    zapcore.Level
		wantErr bool
	}{
		{name: "empty defaults to info", raw: "", want: zapcore.InfoLevel},
		{name: "warn", raw: "warn", want: zapcore.WarnLevel},
		{name: "verbose wins", raw: "error", verbose: true, want: zapcore.DebugLevel},
		{name: "unknown", raw: "chatty", want: zapcore.InfoLevel, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLevel(tt.raw, tt.verbose)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(zapcore.WarnLevel, &buf)

	logger.Info("hidden")
	logger.Warn("storage write failed", zap.String("key", "sessions"))
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "storage write failed")
	assert.Contains(t, out, `"key": "sessions"`)
}

func TestNewFileAppends(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "dmf.log")

	for _, msg := range []string{"first", "second"} {
		logger, closeFn, err := NewFile(zapcore.InfoLevel, path)
		require.NoError(t, err)
		logger.Info(msg)
		require.NoError(t, closeFn())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"first"`)
	assert.Contains(t, string(data), `"msg":"second"`)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
