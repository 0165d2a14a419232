package contextkeys

import "context"

// ContextWithTraceID tags ctx with the X-Trace-ID of the request. An empty id
// leaves ctx as it is, so a blank header never masks an outer trace.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	if traceID == "" {
		return ctx
	}
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext reports the trace id of the request ctx belongs to.
func TraceIDFromContext(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(traceIDKey).(string)
	return traceID, ok
}
