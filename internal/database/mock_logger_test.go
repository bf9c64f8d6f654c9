package database

import (
	"fmt"
	"sync"
)

type mockLogEntry struct {
	Message string
	Fields  map[string]interface{}
}

type mockLogStore struct {
	mu    sync.RWMutex
	info  []mockLogEntry
	errs  []mockLogEntry
	warn  []mockLogEntry
	debug []mockLogEntry
}

// mockLogger records entries into a store shared by all derived loggers.
type mockLogger struct {
	store  *mockLogStore
	fields map[string]interface{}
}

func newMockLogger() *mockLogger {
	return &mockLogger{store: &mockLogStore{}, fields: map[string]interface{}{}}
}

func (m *mockLogger) LogInfo(msg string, fields map[string]interface{}) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.info = append(m.store.info, mockLogEntry{Message: msg, Fields: m.merge(fields)})
}

func (m *mockLogger) LogError(err error, msg string) error {
	fields := map[string]interface{}{}
	if err != nil {
		fields["error"] = err.Error()
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.errs = append(m.store.errs, mockLogEntry{Message: msg, Fields: m.merge(fields)})
	return err
}

func (m *mockLogger) LogErrorf(err error, format string, args ...interface{}) error {
	return m.LogError(err, fmt.Sprintf(format, args...))
}

func (m *mockLogger) LogWarn(msg string, fields map[string]interface{}) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.warn = append(m.store.warn, mockLogEntry{Message: msg, Fields: m.merge(fields)})
}

func (m *mockLogger) LogDebug(msg string, fields map[string]interface{}) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.debug = append(m.store.debug, mockLogEntry{Message: msg, Fields: m.merge(fields)})
}

func (m *mockLogger) LogFatal(err error, context string) {
	m.LogError(err, "FATAL: "+context)
}

func (m *mockLogger) WithFields(fields map[string]interface{}) Logger {
	return &mockLogger{store: m.store, fields: m.merge(fields)}
}

func (m *mockLogger) WithRequestID(requestID string) Logger {
	return m.WithFields(map[string]interface{}{"request_id": requestID})
}

func (m *mockLogger) WithUserID(userID int64) Logger {
	return m.WithFields(map[string]interface{}{"user_id": userID})
}

func (m *mockLogger) InfoMessages() []mockLogEntry {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return m.store.info
}

func (m *mockLogger) ErrorMessages() []mockLogEntry {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return m.store.errs
}

func (m *mockLogger) WarnMessages() []mockLogEntry {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return m.store.warn
}

func (m *mockLogger) DebugMessages() []mockLogEntry {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return m.store.debug
}

func (m *mockLogger) Clear() {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.info, m.store.errs, m.store.warn, m.store.debug = nil, nil, nil, nil
}

func (m *mockLogger) merge(fields map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(m.fields)+len(fields))
	for k, v := range m.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}
