package mylog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/MarcGrol/shopauth/lib/mycontext"
)

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetBase(zap.New(core))
	defer SetBase(zap.NewNop())

	logger := New("shopifyauth")

	t.Run("Severity and fields", func(t *testing.T) {
		c := mycontext.WithRequestID(context.Background(), "req-1")
		logger.Log(c, "shop1.myshopify.com", SeverityWarn, "callback rejected: %s", "missing code")

		entries := logs.TakeAll()
		assert.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		assert.Equal(t, "callback rejected: missing code", entries[0].Message)

		fields := entries[0].ContextMap()
		assert.Equal(t, "shopifyauth", fields["component"])
		assert.Equal(t, "shop1.myshopify.com", fields["aggregate"])
		assert.Equal(t, "req-1", fields["request_id"])
	})

	t.Run("Levels", func(t *testing.T) {
		c := context.Background()
		logger.Log(c, "", SeverityDebug, "d")
		logger.Log(c, "", SeverityInfo, "i")
		logger.Log(c, "", SeverityError, "e")

		entries := logs.TakeAll()
		assert.Len(t, entries, 3)
		assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
		assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
		assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
		_, hasAggregate := entries[1].ContextMap()["aggregate"]
		assert.False(t, hasAggregate)
	})
}

func TestInitFailure(t *testing.T) {
	defer SetBase(zap.NewNop())

	cause := errors.New("no such sink")
	err := initWith(func(...zap.Option) (*zap.Logger, error) {
		return nil, cause
	})

	assert.ErrorIs(t, err, cause)
	assert.ErrorContains(t, err, "error creating logger")
}
