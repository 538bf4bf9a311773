// Package telemetry emits structured JSON diagnostics for the CLI.
package telemetry

import (
	"encoding/json"
	"errors"
	"io"
	"sync"
	"time"
)

// StructuredLogger emits structured log entries.
type StructuredLogger interface {
	Emit(Entry) error
}

// Severity represents the log severity level.
type Severity string

const (
	// SeverityInfo captures normal operation messages.
	SeverityInfo Severity = "info"
	// SeverityWarn captures recoverable anomalies.
	SeverityWarn Severity = "warn"
	// SeverityError captures unrecoverable or failure states.
	SeverityError Severity = "error"
)

// Category captures the structured log category.
type Category string

const (
	// CategoryDiscovery marks configuration file search events.
	CategoryDiscovery Category = "discovery"
	// CategoryLoad marks parse and merge events.
	CategoryLoad Category = "load"
	// CategoryRefine marks refinement and formatting events.
	CategoryRefine Category = "refine"
)

// Entry describes a structured log entry prior to serialization.
type Entry struct {
	Category Category
	Message  string
	Severity Severity
	Metadata map[string]string
	Error    error
}

// Logger emits structured JSON logs, one object per line.
type Logger struct {
	enc *json.Encoder
	mu  sync.Mutex
}

// NewLogger constructs a logger writing to w.
func NewLogger(w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, errors.New("logger writer is required")
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Logger{enc: enc}, nil
}

// Emit writes the provided entry to the underlying writer.
func (l *Logger) Emit(entry Entry) error {
	if l == nil {
		return errors.New("logger is nil")
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	severity := entry.Severity
	if severity == "" {
		severity = SeverityInfo
	}

	metadata := map[string]string{}
	for k, v := range entry.Metadata {
		metadata[k] = v
	}
	if entry.Error != nil {
		severity = SeverityError
		metadata["error"] = entry.Error.Error()
	}

	payload := map[string]any{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"category":  string(entry.Category),
		"message":   entry.Message,
		"severity":  string(severity),
	}
	if len(metadata) > 0 {
		payload["metadata"] = metadata
	}

	return l.enc.Encode(payload)
}

// Emit sends entry to logger when one is configured; a nil StructuredLogger
// is a disabled logger.
func Emit(logger StructuredLogger, entry Entry) {
	if logger == nil {
		return
	}
	_ = logger.Emit(entry)
}
