// Package security: structured JSON logging for security-relevant events.
package security

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"
)

// LogLevel classifies a log entry's severity.
type LogLevel string

const (
	LogLevelInfo     LogLevel = "INFO"
	LogLevelWarning  LogLevel = "WARN"
	LogLevelError    LogLevel = "ERROR"
	LogLevelCritical LogLevel = "CRITICAL"
	LogLevelSecurity LogLevel = "SECURITY"
)

// EventType identifies a class of security-relevant occurrence.
type EventType string

const (
	EventLoginSuccess        EventType = "LOGIN_SUCCESS"
	EventLoginFailure        EventType = "LOGIN_FAILURE"
	EventLogout              EventType = "LOGOUT"
	EventSignup              EventType = "SIGNUP"
	EventAccountLocked       EventType = "ACCOUNT_LOCKED"
	EventRateLimitExceeded   EventType = "RATE_LIMIT_EXCEEDED"
	EventAgentAuthFailure    EventType = "AGENT_AUTH_FAILURE"
	EventOwnershipDenied     EventType = "OWNERSHIP_DENIED"
	EventInputRejected       EventType = "INPUT_REJECTED"
	EventCSRFViolation       EventType = "CSRF_VIOLATION"
	EventSQLInjectionAttempt EventType = "SQL_INJECTION_ATTEMPT"
	EventXSSAttempt          EventType = "XSS_ATTEMPT"
	EventUnauthorizedAccess  EventType = "UNAUTHORIZED_ACCESS"
	EventPartialWriteDrift   EventType = "PARTIAL_WRITE_DRIFT"
)

// LogEntry is one structured log record. Serialized as a single JSON line.
type LogEntry struct {
	Timestamp  time.Time              `json:"timestamp"`
	Level      LogLevel               `json:"level"`
	Message    string                 `json:"message"`
	EventType  EventType              `json:"event_type,omitempty"`
	ActorID    *int                   `json:"actor_id,omitempty"`
	ActorEmail string                 `json:"actor_email,omitempty"`
	IPAddress  string                 `json:"ip_address,omitempty"`
	UserAgent  string                 `json:"user_agent,omitempty"`
	Error      string                 `json:"error,omitempty"`
	Extra      map[string]interface{} `json:"extra,omitempty"`
}

// Alerter receives high-severity events for out-of-band notification
// (email, Slack, SIEM). Optional; nil disables alerting.
type Alerter interface {
	Alert(event EventType, details map[string]interface{})
}

// Logger emits structured JSON log lines to standard output.
type Logger struct {
	output *log.Logger
}

// NewLogger creates a logger writing JSON lines to stdout.
func NewLogger() *Logger {
	return &Logger{output: log.New(os.Stdout, "", 0)}
}

func (l *Logger) emit(entry LogEntry) {
	entry.Timestamp = time.Now().UTC()
	line, err := json.Marshal(entry)
	if err != nil {
		// Marshaling a LogEntry can only fail on non-serializable Extra
		// values; fall back to the bare message.
		l.output.Printf(`{"level":"ERROR","message":"log marshal failed: %s"}`, entry.Message)
		return
	}
	l.output.Println(string(line))
}

// Info logs an informational message.
func (l *Logger) Info(message string) {
	l.emit(LogEntry{Level: LogLevelInfo, Message: message})
}

// Warn logs a warning.
func (l *Logger) Warn(message string) {
	l.emit(LogEntry{Level: LogLevelWarning, Message: message})
}

// Error logs an error with its underlying cause.
func (l *Logger) Error(message string, err error) {
	entry := LogEntry{Level: LogLevelError, Message: message}
	if err != nil {
		entry.Error = err.Error()
	}
	l.emit(entry)
}

// Critical logs a critical failure with its underlying cause.
func (l *Logger) Critical(message string, err error) {
	entry := LogEntry{Level: LogLevelCritical, Message: message}
	if err != nil {
		entry.Error = err.Error()
	}
	l.emit(entry)
}

// HTTPRequest logs one completed HTTP request with latency.
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs int64, ipAddress, userAgent string) {
	l.emit(LogEntry{
		Level:     LogLevelInfo,
		Message:   fmt.Sprintf("%s %s %d", method, path, status),
		IPAddress: ipAddress,
		UserAgent: userAgent,
		Extra: map[string]interface{}{
			"method":     method,
			"path":       path,
			"status":     status,
			"latency_ms": latencyMs,
		},
	})
}

// SecurityEvent logs a structured security event with actor attribution.
func (l *Logger) SecurityEvent(event EventType, actorID *int, actorEmail, ipAddress, userAgent string, extra map[string]interface{}) {
	l.emit(LogEntry{
		Level:      LogLevelSecurity,
		Message:    string(event),
		EventType:  event,
		ActorID:    actorID,
		ActorEmail: actorEmail,
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Extra:      extra,
	})
}
