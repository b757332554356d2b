package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonLogger(buf *bytes.Buffer, level Level) Logger {
	return NewLogger(&Config{
		Level:      level,
		Component:  "test",
		JSONFormat: true,
		Output:     buf,
	})
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := jsonLogger(&buf, LevelInfo)

	log.Info("insight routed", F("destination", "engineering"), F("confidence", 0.96))

	entry := decodeLine(t, &buf)
	assert.Equal(t, "insight routed", entry["message"])
	assert.Equal(t, "engineering", entry["destination"])
	assert.Equal(t, 0.96, entry["confidence"])
	assert.Equal(t, "test", entry["component"])
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := jsonLogger(&buf, LevelWarn)

	log.Debug("hidden")
	log.Info("hidden too")
	assert.Zero(t, buf.Len())

	log.Warn("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	log := jsonLogger(&buf, LevelInfo).With(F("transcript_id", "TXN-1"))

	log.Info("processing")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "TXN-1", entry["transcript_id"])
}

func TestErrField(t *testing.T) {
	var buf bytes.Buffer
	log := jsonLogger(&buf, LevelInfo)

	log.Error("failed", Err(errors.New("boom")))

	entry := decodeLine(t, &buf)
	assert.Equal(t, "boom", entry["error"])
}

func TestNopLogger(t *testing.T) {
	log := NewNopLogger()
	// Must not panic, and With must stay chainable.
	log.With(F("k", "v")).Info("ignored")
	log.Debug("ignored")
	log.Warn("ignored")
	log.Error("ignored", Err(errors.New("x")))
}
