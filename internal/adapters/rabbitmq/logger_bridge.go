package rabbitmq

import (
	"fmt"

	"github.com/MinYonhee/api-urban-valle/internal/core/port"
	"github.com/MinYonhee/api-urban-valle/pkg/rabbitmq/rabbitmq_common"
)

// PkgLoggerBridge lets pkg/rabbitmq log through LoggerPort. Every record is
// tagged with the broker and the component that owns the connection.
type PkgLoggerBridge struct {
	internalLogger port.LoggerPort
}

// NewPkgLoggerBridge creates a bridge for one component, such as
// "rabbitmq_producer" or "rabbitmq_conn_manager".
func NewPkgLoggerBridge(logger port.LoggerPort, component string) rabbitmq_common.Logger {
	return &PkgLoggerBridge{internalLogger: logger.WithFields(port.Fields{
		"component": component,
		"broker":    "rabbitmq",
	})}
}

// toFields pairs up keysAndValues. Non-string keys are printed; a trailing
// value without a key lands under "extra".
func (b *PkgLoggerBridge) toFields(keysAndValues ...interface{}) port.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}
	fields := make(port.Fields, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 == len(keysAndValues) {
			fields["extra"] = keysAndValues[i]
			break
		}
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}

func (b *PkgLoggerBridge) Debug(msg string, keysAndValues ...interface{}) {
	b.internalLogger.Debug(msg, b.toFields(keysAndValues...))
}

func (b *PkgLoggerBridge) Info(msg string, keysAndValues ...interface{}) {
	b.internalLogger.Info(msg, b.toFields(keysAndValues...))
}

func (b *PkgLoggerBridge) Warn(msg string, keysAndValues ...interface{}) {
	b.internalLogger.Warn(msg, b.toFields(keysAndValues...))
}

// Error falls back to Warn when the caller has no error value.
func (b *PkgLoggerBridge) Error(err error, msg string, keysAndValues ...interface{}) {
	if err == nil {
		b.internalLogger.Warn(msg, b.toFields(keysAndValues...))
		return
	}
	b.internalLogger.Error(msg, err, b.toFields(keysAndValues...))
}
