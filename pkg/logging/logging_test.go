package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "json")

	logger.Debug("hidden")
	logger.Info("Expense created", "group_id", "g1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Expense created", line["msg"])
	assert.Equal(t, "g1", line["group_id"])
	assert.Equal(t, "INFO", line["level"])
}

func TestTextFormatHasNoColorOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "debug", "text").Debug("Balances computed", "debts", 2)

	out := buf.String()
	assert.Contains(t, out, "Balances computed")
	assert.Contains(t, out, "debts=2")
	assert.NotContains(t, out, "\x1b[")
}
