package logger_adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MinYonhee/api-urban-valle/internal/core/port"
)

type recordedPost struct {
	tag  string
	data map[string]interface{}
}

type fakeFluent struct {
	posts  []recordedPost
	closed bool
}

func (f *fakeFluent) Post(tag string, message interface{}) error {
	f.posts = append(f.posts, recordedPost{tag: tag, data: message.(port.Fields)})
	return nil
}

func (f *fakeFluent) Close() error {
	f.closed = true
	return nil
}

func TestSlogAdapterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelDebug, IsJSON: true})

	logger.WithFields(port.Fields{"use_case": "CreateUser"}).
		Error("Use case failed", errors.New("boom"), port.Fields{"user_id": 7})

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "Use case failed", record["msg"])
	assert.Equal(t, "CreateUser", record["use_case"])
	assert.Equal(t, float64(7), record["user_id"])
	assert.Equal(t, "boom", record["error"])
}

func TestSlogAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelWarn})

	logger.Info("hidden", nil)
	logger.Debug("hidden", nil)
	assert.Zero(t, buf.Len())

	logger.Warn("shown", nil)
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestFluentAdapter(t *testing.T) {
	client := &fakeFluent{}
	adapter, err := NewFluentLoggerAdapter(client, slog.LevelInfo)
	require.NoError(t, err)
	adapter.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

	scoped := adapter.WithFields(port.Fields{"component": "PropertyRepository"})
	scoped.Debug("dropped", nil)
	scoped.Info("stored", port.Fields{"property_id": 3})
	scoped.Error("failed", errors.New("timeout"), nil)

	require.Len(t, client.posts, 2)
	assert.Equal(t, "info", client.posts[0].tag)
	assert.Equal(t, "PropertyRepository", client.posts[0].data["component"])
	assert.Equal(t, 3, client.posts[0].data["property_id"])
	assert.Equal(t, "2024-03-01T12:00:00Z", client.posts[0].data["timestamp"])
	assert.Equal(t, "error", client.posts[1].tag)
	assert.Equal(t, "timeout", client.posts[1].data["error"])

	require.NoError(t, adapter.Close())
	assert.True(t, client.closed)

	_, err = NewFluentLoggerAdapter(nil, nil)
	assert.Error(t, err)
}

func TestMultiLogger(t *testing.T) {
	_, err := NewMultiloggerAdapter()
	assert.Error(t, err)

	var first, second bytes.Buffer
	multi, err := NewMultiloggerAdapter(
		NewSlogAdapter(SlogConfig{Writer: &first}),
		NewSlogAdapter(SlogConfig{Writer: &second}),
	)
	require.NoError(t, err)

	multi.WithFields(port.Fields{"trace_id": "abc"}).Info("Request started", nil)
	assert.Contains(t, first.String(), "trace_id=abc")
	assert.Contains(t, second.String(), "Request started")
	assert.Contains(t, second.String(), "trace_id=abc")
}

func TestMultiLoggerSkipsDisabledSinks(t *testing.T) {
	var out bytes.Buffer
	stdout := NewSlogAdapter(SlogConfig{Writer: &out})

	var fluentSink port.LoggerPort
	logger, err := NewMultiloggerAdapter(stdout, fluentSink)
	require.NoError(t, err)
	assert.Same(t, stdout, logger, "a single sink is used directly")

	_, err = NewMultiloggerAdapter(nil, nil)
	assert.Error(t, err)
}
