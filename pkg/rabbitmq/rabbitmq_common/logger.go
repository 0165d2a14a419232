package rabbitmq_common

// Logger is the key/value logger the rabbitmq packages log through.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(err error, msg string, keysAndValues ...interface{})
}

// NopLogger discards everything. It is what a nil Logger turns into.
type NopLogger struct{}

func (NopLogger) Debug(string, ...interface{})        {}
func (NopLogger) Info(string, ...interface{})         {}
func (NopLogger) Warn(string, ...interface{})         {}
func (NopLogger) Error(error, string, ...interface{}) {}

// OrNop returns logger, or a NopLogger when it is nil.
func OrNop(logger Logger) Logger {
	if logger == nil {
		return NopLogger{}
	}
	return logger
}
