package logtrace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWriteAttachesContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	ctx := CtxWithCorrelationID(context.Background(), "transfer-42")
	ctx = CtxWithOrigin(ctx, "send")

	Info(ctx, "transfer submitted", Fields{FieldRecipient: "abc", FieldAmount: uint64(5)})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "transfer submitted", entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "transfer-42", fields[FieldCorrelationID])
	assert.Equal(t, "send", fields[FieldOrigin])
	assert.Equal(t, "abc", fields[FieldRecipient])
	assert.EqualValues(t, 5, fields[FieldAmount])
}

func TestWriteRespectsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	Debug(context.Background(), "hidden", nil)
	Warn(context.Background(), "shown", nil)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "unknown", logs.All()[0].ContextMap()[FieldCorrelationID])
}

func TestWithFieldsDoesNotMutateBase(t *testing.T) {
	base := Fields{FieldModule: "relayer"}
	merged := WithFields(base, Fields{FieldEndpoint: "wallet"})

	assert.Len(t, base, 1)
	assert.Equal(t, Fields{FieldModule: "relayer", FieldEndpoint: "wallet"}, merged)
}
