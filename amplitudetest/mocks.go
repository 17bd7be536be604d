package amplitudetest

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	amplitude "github.com/jdziat/amplitude-go"
)

var (
	_ amplitude.StructuredLogger = (*MockLogger)(nil)
	_ amplitude.Metrics          = (*MockMetrics)(nil)
)

// ErrNetworkDown is the default error of FailingTransport.
var ErrNetworkDown = errors.New("amplitudetest: network is down")

// FailingTransport is an http.RoundTripper whose requests never reach a server.
type FailingTransport struct {
	// Err is returned from RoundTrip. Defaults to ErrNetworkDown.
	Err error
}

// RoundTrip implements http.RoundTripper.
func (f FailingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return nil, ErrNetworkDown
}

// LogEntry is a single captured log call.
type LogEntry struct {
	Level   string
	Message string
	Args    []any
}

// MockLogger is a StructuredLogger that captures log calls.
type MockLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewMockLogger creates a new mock logger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (l *MockLogger) record(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Message: msg, Args: args})
}

// Debug implements StructuredLogger.
func (l *MockLogger) Debug(msg string, args ...any) { l.record("DEBUG", msg, args) }

// Info implements StructuredLogger.
func (l *MockLogger) Info(msg string, args ...any) { l.record("INFO", msg, args) }

// Warn implements StructuredLogger.
func (l *MockLogger) Warn(msg string, args ...any) { l.record("WARN", msg, args) }

// Error implements StructuredLogger.
func (l *MockLogger) Error(msg string, args ...any) { l.record("ERROR", msg, args) }

// Entries returns all captured entries.
func (l *MockLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogEntry{}, l.entries...)
}

// Messages returns the captured entries formatted as "LEVEL message".
func (l *MockLogger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = fmt.Sprintf("%s %s", e.Level, e.Message)
	}
	return out
}

// Reset clears all captured entries.
func (l *MockLogger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// MockMetrics is a Metrics implementation that records all operations.
type MockMetrics struct {
	mu       sync.Mutex
	Counters map[string]int64
	Timings  map[string][]time.Duration
}

// NewMockMetrics creates a new mock metrics collector.
func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Counters: make(map[string]int64),
		Timings:  make(map[string][]time.Duration),
	}
}

// IncrementCounter implements Metrics.IncrementCounter.
func (m *MockMetrics) IncrementCounter(name string, value int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Counters[name] += value
}

// RecordDuration implements Metrics.RecordDuration.
func (m *MockMetrics) RecordDuration(name string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Timings[name] = append(m.Timings[name], duration)
}

// GetCounter returns the value of a counter.
func (m *MockMetrics) GetCounter(name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Counters[name]
}

// GetTimings returns all recorded timings for a metric.
func (m *MockMetrics) GetTimings(name string) []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration{}, m.Timings[name]...)
}
