package testhelper

import (
	"fmt"
	"sync"

	"github.com/soldout/backend/internal/logger"
)

// LogEntry represents a log entry with its message and fields
type LogEntry struct {
	Message string
	Fields  map[string]interface{}
}

type logStore struct {
	mu    sync.RWMutex
	info  []LogEntry
	errs  []LogEntry
	warn  []LogEntry
	debug []LogEntry
}

// TestLogger records log calls. Loggers derived with With* share one store
// so assertions on the root logger see everything.
type TestLogger struct {
	store        *logStore
	fields       map[string]interface{}
	debugEnabled bool
}

// NewTestLogger creates a new test logger instance
func NewTestLogger(debugEnabled bool) *TestLogger {
	return &TestLogger{
		store:        &logStore{},
		fields:       make(map[string]interface{}),
		debugEnabled: debugEnabled,
	}
}

// LogInfo implements logger.Logger
func (t *TestLogger) LogInfo(msg string, fields map[string]interface{}) {
	t.append(&t.store.info, msg, fields)
}

// LogError implements logger.Logger
func (t *TestLogger) LogError(err error, msg string) error {
	fields := map[string]interface{}{}
	if err != nil {
		fields["error"] = err.Error()
	}
	t.append(&t.store.errs, msg, fields)
	return err
}

// LogErrorf implements logger.Logger
func (t *TestLogger) LogErrorf(err error, format string, args ...interface{}) error {
	return t.LogError(err, fmt.Sprintf(format, args...))
}

// LogFatal records the entry as an error; tests never exit
func (t *TestLogger) LogFatal(err error, context string) {
	t.LogError(err, "FATAL: "+context)
}

// LogDebug implements logger.Logger
func (t *TestLogger) LogDebug(message string, fields map[string]interface{}) {
	if !t.debugEnabled {
		return
	}
	t.append(&t.store.debug, message, fields)
}

// LogWarn implements logger.Logger
func (t *TestLogger) LogWarn(message string, fields map[string]interface{}) {
	t.append(&t.store.warn, message, fields)
}

// WithFields implements logger.Logger
func (t *TestLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return &TestLogger{
		store:        t.store,
		fields:       t.mergeFields(fields),
		debugEnabled: t.debugEnabled,
	}
}

// WithRequestID implements logger.Logger
func (t *TestLogger) WithRequestID(requestID string) logger.Logger {
	return t.WithFields(map[string]interface{}{"requestID": requestID})
}

// WithUserID implements logger.Logger
func (t *TestLogger) WithUserID(userID int64) logger.Logger {
	return t.WithFields(map[string]interface{}{"userID": userID})
}

// GetInfoMessages returns all info level messages
func (t *TestLogger) GetInfoMessages() []LogEntry { return t.read(&t.store.info) }

// GetErrorMessages returns all error level messages
func (t *TestLogger) GetErrorMessages() []LogEntry { return t.read(&t.store.errs) }

// GetWarnMessages returns all warning level messages
func (t *TestLogger) GetWarnMessages() []LogEntry { return t.read(&t.store.warn) }

// GetDebugMessages returns all debug level messages
func (t *TestLogger) GetDebugMessages() []LogEntry { return t.read(&t.store.debug) }

// ClearMessages clears all logged messages
func (t *TestLogger) ClearMessages() {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.info, t.store.errs, t.store.warn, t.store.debug = nil, nil, nil, nil
}

func (t *TestLogger) append(dst *[]LogEntry, msg string, fields map[string]interface{}) {
	entry := LogEntry{Message: msg, Fields: t.mergeFields(fields)}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	*dst = append(*dst, entry)
}

func (t *TestLogger) read(src *[]LogEntry) []LogEntry {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	return append([]LogEntry(nil), (*src)...)
}

func (t *TestLogger) mergeFields(fields map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(t.fields)+len(fields))
	for k, v := range t.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}
