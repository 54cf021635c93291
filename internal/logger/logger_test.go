package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("info", "json", &buf)
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("search complete", slog.Int("qualifying", 3))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "search complete", entry["msg"])
	assert.Equal(t, "underdog", entry["service"])
	assert.EqualValues(t, 3, entry["qualifying"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("debug", "text", &buf)
	require.NoError(t, err)

	log.Debug("page fetched")
	assert.Contains(t, buf.String(), "msg=\"page fetched\"")
}

func TestNew_Invalid(t *testing.T) {
	_, err := New("info", "xml", &bytes.Buffer{})
	assert.Error(t, err)

	_, err = New("chatty", "text", &bytes.Buffer{})
	assert.Error(t, err)
}
