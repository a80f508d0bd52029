package common

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
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLoggerTo(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, SetupLoggerTo(&buf, slog.LevelInfo, "json"))

		LogInfo("Fetched documents", Fields{"documents": 3})
		LogDebug("hidden", Fields{"x": 1})

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "Fetched documents", entry["msg"])
		assert.InDelta(t, 3, entry["documents"], 0)
		assert.NotContains(t, buf.String(), "hidden")
	})

	t.Run("console", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, SetupLoggerTo(&buf, slog.LevelDebug, "console"))

		LogDebug("page fetched", Fields{"page": 2})
		assert.Contains(t, buf.String(), "page=2")
	})

	t.Run("invalid format", func(t *testing.T) {
		err := SetupLoggerTo(&bytes.Buffer{}, slog.LevelInfo, "xml")
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}
