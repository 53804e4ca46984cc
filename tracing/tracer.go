// Package tracing records a local, sanitized trace of login attempts and
// navigations for the binotify CLI.
package tracing

import (
	"time"
)

// Tracer defines the contract for recording login flow events.
type Tracer interface {
	// TrackLogin records the resolution of a login attempt
	TrackLogin(event LoginEvent) error

	// TrackNavigation records a route change
	TrackNavigation(nav NavigationEvent) error

	// TrackError records errors and diagnostic information
	TrackError(err ErrorEvent) error

	// SessionID identifies the current trace session
	SessionID() string

	// Flush ensures all pending events are persisted
	Flush() error

	// Close flushes and releases resources
	Close() error
}

// Event represents the base interface for all trackable events.
type Event interface {
	// EventType returns the type identifier for this event
	EventType() string

	// Timestamp returns when this event occurred
	Timestamp() time.Time

	// Validate ensures the event data is complete and valid
	Validate() error

	// Sanitize removes or masks any sensitive information
	Sanitize() Event
}

// SessionInfo contains metadata about the current session
type SessionInfo struct {
	ID        string    `json:"session_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time,omitempty"`
	UserAgent string    `json:"user_agent"`
	Platform  string    `json:"platform"`
	Version   string    `json:"version"`
}

// EventBatch represents a collection of events written together
type EventBatch struct {
	Session SessionInfo `json:"session"`
	Events  []Event     `json:"events"`
}

// TracingConfig holds configuration for the tracing system
type TracingConfig struct {
	Enabled       bool          `json:"enabled"`
	LocalDir      string        `json:"local_dir"`
	MaxSessions   int           `json:"max_sessions"`
	FlushInterval time.Duration `json:"flush_interval"`
	MaxBufferSize int           `json:"max_buffer_size"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() TracingConfig {
	return TracingConfig{
		Enabled:       true,
		LocalDir:      "~/.binotify/traces",
		MaxSessions:   10,
		FlushInterval: 10 * time.Second,
		MaxBufferSize: 100,
	}
}

// NoOpTracer discards all events. Used when tracing is disabled.
type NoOpTracer struct{}

func (n *NoOpTracer) TrackLogin(event LoginEvent) error         { return nil }
func (n *NoOpTracer) TrackNavigation(nav NavigationEvent) error { return nil }
func (n *NoOpTracer) TrackError(err ErrorEvent) error           { return nil }
func (n *NoOpTracer) SessionID() string                         { return "" }
func (n *NoOpTracer) Flush() error                              { return nil }
func (n *NoOpTracer) Close() error                              { return nil }

// NewNoOpTracer creates a tracer that discards all events
func NewNoOpTracer() Tracer {
	return &NoOpTracer{}
}

// New returns a LocalTracer when tracing is enabled and a NoOpTracer otherwise
func New(config TracingConfig, version string) (Tracer, error) {
	if !config.Enabled {
		return NewNoOpTracer(), nil
	}
	return NewLocalTracer(config, version)
}
