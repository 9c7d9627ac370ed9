package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), logs
}

func TestGormLogger_TraceQuery(t *testing.T) {
	gl, logs := newObservedGormLogger(gormlogger.Info)

	ctx := WithCompanyID(context.Background(), "company-1")
	gl.Trace(ctx, time.Now(), func() (string, int64) {
		return "SELECT * FROM contacts WHERE company_id = $1", 3
	}, nil)

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "SQL Query", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "SELECT * FROM contacts WHERE company_id = $1", fields["sql"])
	assert.Equal(t, int64(3), fields["rows"])
	assert.Equal(t, "company-1", fields["company_id"])
}

func TestGormLogger_TraceError(t *testing.T) {
	gl, logs := newObservedGormLogger(gormlogger.Warn)

	gl.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "INSERT INTO orders VALUES ($1)", 0
	}, errors.New("duplicate key"))

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "SQL Error", entries[0].Message)
}

func TestGormLogger_IgnoresRecordNotFound(t *testing.T) {
	gl, logs := newObservedGormLogger(gormlogger.Warn)

	gl.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM deals WHERE id = $1", 0
	}, gormlogger.ErrRecordNotFound)

	assert.Equal(t, 0, logs.Len())
}

func TestGormLogger_SlowQueryWarns(t *testing.T) {
	gl, logs := newObservedGormLogger(gormlogger.Warn, WithSlowThreshold(time.Millisecond))

	gl.Trace(context.Background(), time.Now().Add(-50*time.Millisecond), func() (string, int64) {
		return "SELECT pg_sleep(1)", 0
	}, nil)

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestGormLogger_SilentLogsNothing(t *testing.T) {
	gl, logs := newObservedGormLogger(gormlogger.Silent)

	gl.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT 1", 1
	}, errors.New("boom"))

	assert.Equal(t, 0, logs.Len())
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("unknown"))
}
