package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestGormLogger(t *testing.T) {
	testLogger := newMockLogger()
	gormLogger := NewGormLogger(testLogger, 200*time.Millisecond)
	ctx := context.Background()

	t.Run("Info Logging", func(t *testing.T) {
		gormLogger.Info(ctx, "opened %s", "pool")
		messages := testLogger.InfoMessages()
		require.NotEmpty(t, messages)
		assert.Equal(t, "opened pool", messages[len(messages)-1].Message)
	})

	t.Run("Warn Logging", func(t *testing.T) {
		gormLogger.Warn(ctx, "test warn message")
		messages := testLogger.WarnMessages()
		require.NotEmpty(t, messages)
		assert.Equal(t, "test warn message", messages[len(messages)-1].Message)
	})

	t.Run("Error Logging", func(t *testing.T) {
		gormLogger.Error(ctx, "test error message")
		messages := testLogger.ErrorMessages()
		require.NotEmpty(t, messages)
		assert.Equal(t, "GORM error", messages[len(messages)-1].Message)
	})

	t.Run("Trace Normal Query", func(t *testing.T) {
		testLogger.Clear()
		gormLogger.Trace(ctx, time.Now(), func() (string, int64) {
			return "SELECT * FROM users", 10
		}, nil)

		messages := testLogger.DebugMessages()
		require.NotEmpty(t, messages)
		last := messages[len(messages)-1]
		assert.Equal(t, "SELECT * FROM users", last.Fields["sql"])
		assert.Equal(t, int64(10), last.Fields["rows_affected"])
	})

	t.Run("Trace Slow Query", func(t *testing.T) {
		testLogger.Clear()
		gormLogger.Trace(ctx, time.Now().Add(-300*time.Millisecond), func() (string, int64) {
			return "SELECT * FROM videos", 1000
		}, nil)

		messages := testLogger.WarnMessages()
		require.NotEmpty(t, messages)
		assert.Equal(t, int64(1000), messages[len(messages)-1].Fields["rows_affected"])
	})

	t.Run("Trace Query Error", func(t *testing.T) {
		testLogger.Clear()
		gormLogger.Trace(ctx, time.Now(), func() (string, int64) {
			return "SELECT * FROM nonexistent_table", 0
		}, errors.New("table does not exist"))

		messages := testLogger.ErrorMessages()
		require.NotEmpty(t, messages)
		last := messages[len(messages)-1]
		assert.Equal(t, "SELECT * FROM nonexistent_table", last.Fields["sql"])
		assert.Equal(t, "table does not exist", last.Fields["error"])
	})

	t.Run("Trace with Request ID", func(t *testing.T) {
		testLogger.Clear()
		reqCtx := context.WithValue(ctx, RequestIDKey, "test-request-id")
		gormLogger.Trace(reqCtx, time.Now(), func() (string, int64) {
			return "SELECT * FROM users", 5
		}, nil)

		messages := testLogger.DebugMessages()
		require.NotEmpty(t, messages)
		assert.Equal(t, "test-request-id", messages[len(messages)-1].Fields["request_id"])
	})

	t.Run("Skip Record Not Found Error", func(t *testing.T) {
		testLogger.Clear()
		gormLogger.Trace(ctx, time.Now(), func() (string, int64) {
			return "SELECT * FROM users WHERE id = 1", 0
		}, fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound))
		assert.Empty(t, testLogger.ErrorMessages())
	})

	t.Run("Duplicate Key Logged At Debug", func(t *testing.T) {
		testLogger.Clear()
		gormLogger.Trace(ctx, time.Now(), func() (string, int64) {
			return "INSERT INTO likes", 0
		}, gorm.ErrDuplicatedKey)
		assert.Empty(t, testLogger.ErrorMessages())
		assert.NotEmpty(t, testLogger.DebugMessages())
	})

	t.Run("Silent Mode", func(t *testing.T) {
		testLogger.Clear()
		silent := gormLogger.LogMode(gormlogger.Silent)
		silent.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 1", 1 }, errors.New("boom"))
		silent.Info(ctx, "hidden")
		assert.Empty(t, testLogger.ErrorMessages())
		assert.Empty(t, testLogger.InfoMessages())
	})
}
