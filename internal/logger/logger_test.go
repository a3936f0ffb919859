package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":      zapcore.InfoLevel,
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := build("warn", &buf, FileConfig{})
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown")
	require.NoError(t, log.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sandbox.log")
	log, err := build("debug", nil, DefaultFileConfig(path))
	require.NoError(t, err)

	log.Named("texarray").Debug("slot loaded")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DEBUG")
	assert.Contains(t, string(data), "texarray")
	assert.Contains(t, string(data), "slot loaded")
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	var buf bytes.Buffer
	log, err := build("info", &buf, FileConfig{})
	require.NoError(t, err)
	assert.Same(t, log, OrNop(log))
}
