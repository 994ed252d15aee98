package log

import (
	"context"
	"fmt"

	"github.com/gaslessrelay/relaysdk/pkg/logtrace"
)

// Logger is the logging surface used throughout the SDK. Arguments after msg
// are alternating key/value pairs.
type Logger interface {
	Debug(ctx context.Context, msg string, keysAndValues ...interface{})
	Info(ctx context.Context, msg string, keysAndValues ...interface{})
	Warn(ctx context.Context, msg string, keysAndValues ...interface{})
	Error(ctx context.Context, msg string, keysAndValues ...interface{})
}

type noopLogger struct{}

// NewNoopLogger returns a Logger that discards everything.
func NewNoopLogger() Logger { return noopLogger{} }

func (noopLogger) Debug(context.Context, string, ...interface{}) {}
func (noopLogger) Info(context.Context, string, ...interface{})  {}
func (noopLogger) Warn(context.Context, string, ...interface{})  {}
func (noopLogger) Error(context.Context, string, ...interface{}) {}

// logtraceLogger forwards to pkg/logtrace, tagging each line with a module.
type logtraceLogger struct {
	module string
}

// NewLogtraceLogger returns a Logger backed by the process-wide logtrace logger.
func NewLogtraceLogger(module string) Logger {
	return &logtraceLogger{module: module}
}

func (l *logtraceLogger) Debug(ctx context.Context, msg string, kv ...interface{}) {
	logtrace.Debug(ctx, msg, l.fields(kv))
}

func (l *logtraceLogger) Info(ctx context.Context, msg string, kv ...interface{}) {
	logtrace.Info(ctx, msg, l.fields(kv))
}

func (l *logtraceLogger) Warn(ctx context.Context, msg string, kv ...interface{}) {
	logtrace.Warn(ctx, msg, l.fields(kv))
}

func (l *logtraceLogger) Error(ctx context.Context, msg string, kv ...interface{}) {
	logtrace.Error(ctx, msg, l.fields(kv))
}

func (l *logtraceLogger) fields(kv []interface{}) logtrace.Fields {
	fields := logtrace.Fields{logtrace.FieldModule: l.module}
	for i := 0; i < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		if i+1 >= len(kv) {
			fields[key] = "(MISSING)"
			break
		}
		if err, ok := kv[i+1].(error); ok {
			fields[key] = err.Error()
			continue
		}
		fields[key] = kv[i+1]
	}
	return fields
}
