package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"": LevelInfo, "DEBUG": LevelDebug, "warning": LevelWarn, "error": LevelError} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)
	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestNewJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelWarn, FormatJSON)
	log.Info("hidden")
	log.Warn("table column count mismatch", "line", 3)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "table column count mismatch", rec["msg"])
	assert.Equal(t, float64(3), rec["line"])
	assert.Contains(t, rec, "time")
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, LevelDebug, FormatText).Debug("scanned", "blocks", 4)
	assert.Contains(t, buf.String(), "msg=scanned blocks=4")
}

func TestInitLogger(t *testing.T) {
	old := GetLogger()
	defer func() {
		defaultLogger = old
		slog.SetDefault(old)
	}()
	InitLogger(LevelError, FormatText)
	assert.NotSame(t, old, GetLogger())
	assert.False(t, GetLogger().Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelError))
}
