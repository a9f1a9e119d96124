package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn", FormatJSON)
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	logger.Warn().Str("source", "schema").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "schema", entry["source"])
}

func TestNew_ConsoleIsHumanReadable(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "debug", FormatConsole)
	require.NoError(t, err)

	logger.Debug().Msg("form ready")
	assert.Contains(t, buf.String(), "form ready")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestNew_RejectsUnknownSettings(t *testing.T) {
	_, err := New(nil, "verbose", FormatJSON)
	assert.Error(t, err)

	_, err = New(nil, "info", "xml")
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":      zerolog.InfoLevel,
		"DEBUG": zerolog.DebugLevel,
		"warn":  zerolog.WarnLevel,
		"error": zerolog.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
