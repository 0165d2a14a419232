package contextkeys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MinYonhee/api-urban-valle/internal/core/port"
)

func TestTraceID(t *testing.T) {
	_, ok := TraceIDFromContext(context.Background())
	assert.False(t, ok)

	ctx := ContextWithTraceID(context.Background(), "7f1c")
	traceID, ok := TraceIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "7f1c", traceID)

	same := ContextWithTraceID(ctx, "")
	traceID, _ = TraceIDFromContext(same)
	assert.Equal(t, "7f1c", traceID, "blank id keeps the outer trace")
}

func TestLoggerAndTraceDoNotCollide(t *testing.T) {
	ctx := ContextWithTraceID(context.Background(), "7f1c")
	assert.NotNil(t, LoggerFromContext(ctx), "a trace id alone yields the no-op logger")

	var logger port.LoggerPort = &noopLogger{}
	ctx = ContextWithLogger(ctx, logger)
	assert.Same(t, logger, LoggerFromContext(ctx))
	traceID, ok := TraceIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "7f1c", traceID)
}
