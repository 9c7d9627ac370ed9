package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

func TestFromContext_Default(t *testing.T) {
	logger := FromContext(context.Background())
	assert.NotNil(t, logger)
}

func TestWithContext_RoundTrip(t *testing.T) {
	logger := zap.NewNop()
	ctx := WithContext(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}

func TestWithRequestID(t *testing.T) {
	ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))
}

func TestWithCompanyID(t *testing.T) {
	ctx, _ := WithCompanyID(context.Background(), zap.NewNop(), "company-456")
	assert.Equal(t, "company-456", GetCompanyID(ctx))
}

func TestWithUserID(t *testing.T) {
	ctx, _ := WithUserID(context.Background(), zap.NewNop(), "user-789")
	assert.Equal(t, "user-789", GetUserID(ctx))
}

func TestGetters_Empty(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetCompanyID(ctx))
	assert.Empty(t, GetUserID(ctx))
	assert.Empty(t, GetTraceID(ctx))
}

func TestContextLogger_EnrichesFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	ctx := context.Background()
	ctx, logger = WithRequestID(ctx, logger, "req-1")
	ctx = context.WithValue(ctx, CompanyIDKey, "company-1")
	ctx = context.WithValue(ctx, UserIDKey, "user-1")
	ctx = WithContext(ctx, logger)

	L(ctx).Info("test message")

	entries := logs.All()
	assert.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "company-1", fields["company_id"])
	assert.Equal(t, "user-1", fields["user_id"])
}

func TestContextLogger_With(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := WithContext(context.Background(), zap.New(core))

	L(ctx).With(zap.String("component", "worker")).Info("started")

	assert.Equal(t, "worker", logs.All()[0].ContextMap()["component"])
}
