package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductionLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New("production", &buf)

	log.Debug("hidden")
	log.Info("order submitted", "table", "4")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "order submitted", line["msg"])
	assert.Equal(t, "4", line["table"])
}

func TestWithCtxFallsBackToBase(t *testing.T) {
	assert.Same(t, L, WithCtx(context.Background()))

	var buf bytes.Buffer
	tagged := New("local", &buf).With("request_id", "abc")
	ctx := InjectLogger(context.Background(), tagged)

	WithCtx(ctx).Info("hello")
	assert.Contains(t, buf.String(), "request_id=abc")
}
