package log

import (
	"context"
	"errors"
	"testing"

	"github.com/gaslessrelay/relaysdk/pkg/logtrace"
	"github.com/stretchr/testify/assert"
)

func TestLogtraceLoggerFields(t *testing.T) {
	l := &logtraceLogger{module: "relayer"}

	fields := l.fields([]interface{}{"endpoint", "wallet", "error", errors.New("boom"), "dangling"})

	assert.Equal(t, logtrace.Fields{
		logtrace.FieldModule: "relayer",
		"endpoint":           "wallet",
		"error":              "boom",
		"dangling":           "(MISSING)",
	}, fields)
}

func TestNoopLoggerDoesNotPanic(t *testing.T) {
	l := NewNoopLogger()
	assert.NotPanics(t, func() {
		l.Info(context.Background(), "ignored", "k", "v")
	})
}
