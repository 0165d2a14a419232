package contextkeys

// ctxKey keeps these values out of reach of other packages' context keys.
type ctxKey int

const (
	loggerKey ctxKey = iota
	traceIDKey
)
