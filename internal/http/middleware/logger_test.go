package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/soldout/backend/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

type logSink struct {
	mu      sync.Mutex
	entries []logEntry
}

// mockLogger implements logger.Logger and writes into a shared sink
type mockLogger struct {
	sink   *logSink
	fields map[string]interface{}
}

func newMockLogger() *mockLogger {
	return &mockLogger{sink: &logSink{}, fields: map[string]interface{}{}}
}

func (m *mockLogger) record(level, msg string, fields map[string]interface{}) {
	merged := map[string]interface{}{}
	for k, v := range m.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	m.sink.mu.Lock()
	defer m.sink.mu.Unlock()
	m.sink.entries = append(m.sink.entries, logEntry{level: level, msg: msg, fields: merged})
}

func (m *mockLogger) LogInfo(msg string, fields map[string]interface{}) { m.record("info", msg, fields) }
func (m *mockLogger) LogWarn(msg string, fields map[string]interface{}) { m.record("warn", msg, fields) }
func (m *mockLogger) LogDebug(msg string, fields map[string]interface{}) {
	m.record("debug", msg, fields)
}
func (m *mockLogger) LogError(err error, msg string) error {
	m.record("error", msg, nil)
	return err
}
func (m *mockLogger) LogErrorf(err error, format string, args ...interface{}) error { return err }
func (m *mockLogger) LogFatal(err error, context string)                          {}

func (m *mockLogger) WithFields(fields map[string]interface{}) logger.Logger {
	child := &mockLogger{sink: m.sink, fields: map[string]interface{}{}}
	for k, v := range m.fields {
		child.fields[k] = v
	}
	for k, v := range fields {
		child.fields[k] = v
	}
	return child
}

func (m *mockLogger) WithRequestID(requestID string) logger.Logger {
	return m.WithFields(map[string]interface{}{"requestID": requestID})
}

func (m *mockLogger) WithUserID(userID int64) logger.Logger {
	return m.WithFields(map[string]interface{}{"userID": userID})
}

func (m *mockLogger) last(t *testing.T) logEntry {
	t.Helper()
	m.sink.mu.Lock()
	defer m.sink.mu.Unlock()
	require.NotEmpty(t, m.sink.entries)
	return m.sink.entries[len(m.sink.entries)-1]
}

func setupTestRouter(mockLogger *mockLogger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLoggerMiddleware(mockLogger))
	return router
}

func serve(router *gin.Engine, path string, header http.Header) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRequestLoggerMiddleware(t *testing.T) {
	t.Run("Basic Request Logging", func(t *testing.T) {
		mockLogger := newMockLogger()
		router := setupTestRouter(mockLogger)
		router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := serve(router, "/test", nil)

		entry := mockLogger.last(t)
		assert.Equal(t, "info", entry.level)
		assert.Equal(t, "GET", entry.fields["method"])
		assert.Equal(t, "/test", entry.fields["path"])
		assert.Equal(t, 200, entry.fields["status"])
		assert.NotEmpty(t, entry.fields["requestID"])
		assert.Equal(t, entry.fields["requestID"], w.Header().Get(RequestIDHeader))
	})

	t.Run("Incoming Request ID Is Kept", func(t *testing.T) {
		mockLogger := newMockLogger()
		router := setupTestRouter(mockLogger)
		router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

		id := "3f0b0e9c-58a4-4a8e-bb69-6c1d5f7b2a10"
		w := serve(router, "/test", http.Header{RequestIDHeader: []string{id}})

		assert.Equal(t, id, w.Header().Get(RequestIDHeader))
		assert.Equal(t, id, mockLogger.last(t).fields["requestID"])
	})

	t.Run("Error Status Code Logging", func(t *testing.T) {
		mockLogger := newMockLogger()
		router := setupTestRouter(mockLogger)
		router.GET("/error", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

		serve(router, "/error", nil)
		assert.Equal(t, "error", mockLogger.last(t).level)
	})

	t.Run("Warning Status Code Logging", func(t *testing.T) {
		mockLogger := newMockLogger()
		router := setupTestRouter(mockLogger)
		router.GET("/warning", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

		serve(router, "/warning", nil)
		assert.Equal(t, "warn", mockLogger.last(t).level)
	})

	t.Run("User ID Logging", func(t *testing.T) {
		mockLogger := newMockLogger()
		router := setupTestRouter(mockLogger)
		router.GET("/user", func(c *gin.Context) {
			SetUserID(c, 42)
			c.Status(http.StatusOK)
		})

		serve(router, "/user", nil)
		assert.Equal(t, int64(42), mockLogger.last(t).fields["userID"])
	})

	t.Run("Latency Tracking", func(t *testing.T) {
		mockLogger := newMockLogger()
		router := setupTestRouter(mockLogger)
		router.GET("/latency", func(c *gin.Context) {
			time.Sleep(10 * time.Millisecond)
			c.Status(http.StatusOK)
		})

		serve(router, "/latency", nil)
		latency, ok := mockLogger.last(t).fields["latency"].(time.Duration)
		require.True(t, ok)
		assert.GreaterOrEqual(t, latency, 10*time.Millisecond)
	})
}

func TestGetLoggerWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.NotNil(t, GetLogger(c))
}
