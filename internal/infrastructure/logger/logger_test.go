// internal/infrastructure/logger/logger_test.go
package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, InfoLevel)

	log.Info("curve loaded", map[string]interface{}{
		"year":    2024,
		"entries": 250,
	})

	var record map[string]interface{}
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "info", record["level"])
	assert.Equal(t, "curve loaded", record["message"])
	assert.Equal(t, float64(2024), record["year"])
	assert.Equal(t, float64(250), record["entries"])
	assert.NotEmpty(t, record["time"])
	assert.NotEmpty(t, record["caller"])
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, WarnLevel)

	log.Debug("hidden", nil)
	log.Info("hidden", nil)
	assert.Empty(t, buf.String())

	log.Warn("visible", nil)
	assert.Contains(t, buf.String(), "visible")
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, InfoLevel).WithFields(map[string]interface{}{
		"component": "ingest",
	})

	log.Info("loading", map[string]interface{}{"year": 2024})

	var record map[string]interface{}
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ingest", record["component"])
	assert.Equal(t, float64(2024), record["year"])
}

func TestLoggerWithField(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, InfoLevel).WithField("request_id", "abc-123")

	log.Info("handled", nil)

	assert.Contains(t, buf.String(), "abc-123")
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Level("chatty"))

	log.Debug("hidden", nil)
	assert.Empty(t, buf.String())

	log.Info("visible", nil)
	assert.Contains(t, buf.String(), "visible")
}
