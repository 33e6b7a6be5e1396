package logger

import (
	"sync"
	"testing"
)

// Entry is one message captured by a TestLogger
type Entry struct {
	Level  string
	Msg    string
	Fields map[string]interface{}
}

type entrySink struct {
	mu      sync.Mutex
	entries []Entry
}

// TestLogger forwards messages to testing.T and records them so tests can
// assert on what was logged. Loggers derived with WithField share the same
// record.
type TestLogger struct {
	T      *testing.T
	fields map[string]interface{}
	sink   *entrySink
}

// NewTestLogger creates a new test logger
func NewTestLogger(t *testing.T) *TestLogger {
	return &TestLogger{T: t, sink: &entrySink{}}
}

func (l *TestLogger) log(level, msg string) {
	if l.sink == nil {
		l.sink = &entrySink{}
	}
	fields := make(map[string]interface{}, len(l.fields))
	for k, v := range l.fields {
		fields[k] = v
	}
	l.sink.mu.Lock()
	l.sink.entries = append(l.sink.entries, Entry{Level: level, Msg: msg, Fields: fields})
	l.sink.mu.Unlock()
	if l.T != nil {
		l.T.Logf("[%s] %s %v", level, msg, fields)
	}
}

func (l *TestLogger) Debug(msg string) { l.log("debug", msg) }
func (l *TestLogger) Info(msg string)  { l.log("info", msg) }
func (l *TestLogger) Warn(msg string)  { l.log("warn", msg) }
func (l *TestLogger) Error(msg string) { l.log("error", msg) }
func (l *TestLogger) Fatal(msg string) { l.log("fatal", msg) }

// WithField returns a child logger carrying key
func (l *TestLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

// WithFields returns a child logger carrying fields on top of the parent's
func (l *TestLogger) WithFields(fields map[string]interface{}) Logger {
	if l.sink == nil {
		l.sink = &entrySink{}
	}
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &TestLogger{T: l.T, fields: merged, sink: l.sink}
}

// Entries returns every message recorded so far, in order
func (l *TestLogger) Entries() []Entry {
	if l.sink == nil {
		return nil
	}
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	out := make([]Entry, len(l.sink.entries))
	copy(out, l.sink.entries)
	return out
}

// EntriesAt returns the recorded messages of one level
func (l *TestLogger) EntriesAt(level string) []Entry {
	var out []Entry
	for _, e := range l.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}
