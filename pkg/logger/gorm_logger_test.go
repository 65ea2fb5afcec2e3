package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestGormLogger_Trace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Warn, 100*time.Millisecond, true)
	query := func() (string, int64) { return "SELECT 1", 1 }

	gl.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
	assert.Equal(t, 0, logs.Len(), "record not found is ignored")

	gl.Trace(context.Background(), time.Now(), query, errors.New("connection reset"))
	assert.Equal(t, 1, logs.FilterMessage("Database query failed").Len())

	gl.Trace(context.Background(), time.Now().Add(-time.Second), query, nil)
	assert.Equal(t, 1, logs.FilterMessage("Slow database query").Len())

	gl.Trace(context.Background(), time.Now(), query, nil)
	assert.Equal(t, 0, logs.FilterMessage("Database query").Len(), "plain queries need info level")

	gl.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now(), query, errors.New("x"))
	assert.Equal(t, 1, logs.FilterMessage("Database query failed").Len())
}
