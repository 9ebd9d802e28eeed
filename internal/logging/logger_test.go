package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestNewZap_TeesToFileAsJSON(t *testing.T) {
	var console, file bytes.Buffer
	logger := newZap(&console, &file, zapcore.InfoLevel)

	logger.Info("book created", zap.String("book_id", "abc"), zap.Int64("elapsed_ms", 3))
	logger.Debug("dropped")
	require.NoError(t, logger.Sync())

	assert.Contains(t, console.String(), "book created")
	assert.NotContains(t, console.String(), "dropped")

	lines := strings.Split(strings.TrimSpace(file.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "abc", entry["book_id"])
	assert.Equal(t, "book created", entry["msg"])
}

func TestNewZap_ConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	logger := newZap(&console, nil, zapcore.WarnLevel)

	logger.Info("ignored")
	logger.Warn("kept")

	assert.NotContains(t, console.String(), "ignored")
	assert.Contains(t, console.String(), "kept")
}
