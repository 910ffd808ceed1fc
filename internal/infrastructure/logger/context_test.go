package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContext(t *testing.T) {
	logger := zap.NewNop()
	ctx := WithContext(context.Background(), logger)
	assert.Equal(t, logger, FromContext(ctx))
}

func TestFromContext_NotSet(t *testing.T) {
	// Must return a usable no-op logger, never nil
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	logger.Info("does not panic")
}

func TestWithRequestID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	ctx, enriched := WithRequestID(context.Background(), logger, "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))

	enriched.Info("message")
	logs := recorded.All()
	require.Len(t, logs, 1)

	found := false
	for _, field := range logs[0].Context {
		if field.Key == "request_id" && field.String == "req-123" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestWithUserID(t *testing.T) {
	ctx, _ := WithUserID(context.Background(), zap.NewNop(), "user-42")
	assert.Equal(t, "user-42", GetUserID(ctx))
}

func TestGetRequestID_NotFound(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestL(t *testing.T) {
	t.Run("enriches with request id", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		ctx := WithContext(context.Background(), zap.New(core))
		ctx = context.WithValue(ctx, RequestIDKey, "req-abc")

		L(ctx).Info("hello")

		logs := recorded.All()
		require.Len(t, logs, 1)
		found := false
		for _, field := range logs[0].Context {
			if field.Key == "request_id" {
				found = true
				assert.Equal(t, "req-abc", field.String)
			}
		}
		assert.True(t, found)
	})

	t.Run("empty context is safe", func(t *testing.T) {
		L(context.Background()).Info("no-op")
	})
}
