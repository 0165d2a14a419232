package port

// Fields - structured data attached to a log record.
type Fields map[string]interface{}

// LoggerPort abstracts the core from the concrete logging backend.
type LoggerPort interface {
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	// Error records a failure, usually together with the error value.
	Error(msg string, err error, fields Fields)
	Debug(msg string, fields Fields)

	// WithFields returns a logger that adds the given fields to every record,
	// e.g. trace_id or the name of the use case.
	WithFields(fields Fields) LoggerPort
}
