package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	log.Debug("hidden")
	log.Info("lead accepted", "lead_id", 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "lead accepted", entry["msg"])
	assert.Equal(t, "production", entry["env"])
	assert.EqualValues(t, 2, entry["lead_id"])
}

func TestNewDevelopmentLogsDebugAsText(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("Development", &buf)

	log.Debug("visible")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "msg=visible")
}

func TestWithContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter("development", &buf)

	ctx := context.WithValue(context.Background(), chimw.RequestIDKey, "req-123")
	WithContext(ctx, base).Info("hello")
	assert.Contains(t, buf.String(), "request_id=req-123")

	buf.Reset()
	WithContext(context.Background(), base).Info("hello")
	assert.NotContains(t, buf.String(), "request_id")
}
