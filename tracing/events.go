package tracing

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"
)

// BaseEvent provides common functionality for all event types.
type BaseEvent struct {
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
}

// EventType returns the type identifier for this event
func (b BaseEvent) EventType() string {
	return b.Type
}

// Timestamp returns when this event occurred
func (b BaseEvent) Timestamp() time.Time {
	return b.CreatedAt
}

// Duration wraps time.Duration to provide human-readable JSON serialization
type Duration time.Duration

// MarshalJSON implements json.Marshaler interface
func (d Duration) MarshalJSON() ([]byte, error) {
	duration := time.Duration(d)
	return json.Marshal(map[string]interface{}{
		"nanoseconds":  int64(duration),
		"readable":     duration.String(),
		"milliseconds": duration.Milliseconds(),
	})
}

// UnmarshalJSON implements json.Unmarshaler interface
func (d *Duration) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
	case map[string]interface{}:
		if ns, ok := value["nanoseconds"].(float64); ok {
			*d = Duration(time.Duration(ns))
		}
	}

	return nil
}

// LoginEvent records how a login attempt resolved
type LoginEvent struct {
	BaseEvent
	Outcome  string            `json:"outcome"`          // success, rejected, failed
	Status   int               `json:"status,omitempty"` // HTTP status when one was received
	Duration Duration          `json:"duration"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// NewLoginEvent creates a new login event
func NewLoginEvent(sessionID, outcome string, status int, duration time.Duration) *LoginEvent {
	return &LoginEvent{
		BaseEvent: BaseEvent{
			Type:      "login",
			CreatedAt: time.Now(),
			SessionID: sessionID,
		},
		Outcome:  outcome,
		Status:   status,
		Duration: Duration(duration),
		Metadata: make(map[string]string),
	}
}

// Validate ensures the event data is complete and valid
func (l *LoginEvent) Validate() error {
	if l.Outcome == "" {
		return errors.New("outcome is required")
	}
	if time.Duration(l.Duration) < 0 {
		return errors.New("duration cannot be negative")
	}
	return nil
}

// Sanitize removes or masks any sensitive information
func (l *LoginEvent) Sanitize() Event {
	sanitized := *l
	sanitized.Metadata = withoutSensitiveKeys(l.Metadata)
	return &sanitized
}

// NavigationEvent tracks route changes
type NavigationEvent struct {
	BaseEvent
	FromRoute string            `json:"from_route"`
	ToRoute   string            `json:"to_route"`
	Trigger   string            `json:"trigger"`
	Context   map[string]string `json:"context,omitempty"`
}

// NewNavigationEvent creates a new navigation event
func NewNavigationEvent(sessionID, fromRoute, toRoute, trigger string) *NavigationEvent {
	return &NavigationEvent{
		BaseEvent: BaseEvent{
			Type:      "navigation",
			CreatedAt: time.Now(),
			SessionID: sessionID,
		},
		FromRoute: fromRoute,
		ToRoute:   toRoute,
		Trigger:   trigger,
		Context:   make(map[string]string),
	}
}

// Validate ensures the event data is complete and valid
func (n *NavigationEvent) Validate() error {
	if n.ToRoute == "" {
		return errors.New("to_route is required")
	}
	if n.Trigger == "" {
		return errors.New("trigger is required")
	}
	return nil
}

// Sanitize removes or masks any sensitive information
func (n *NavigationEvent) Sanitize() Event {
	sanitized := *n
	sanitized.Context = withoutSensitiveKeys(n.Context)
	return &sanitized
}

// ErrorEvent tracks errors and diagnostic information
type ErrorEvent struct {
	BaseEvent
	Error     string            `json:"error"`
	Component string            `json:"component,omitempty"`
	Context   map[string]string `json:"context,omitempty"`
}

// NewErrorEvent creates a new error event
func NewErrorEvent(sessionID, errorMsg, component string) *ErrorEvent {
	return &ErrorEvent{
		BaseEvent: BaseEvent{
			Type:      "error",
			CreatedAt: time.Now(),
			SessionID: sessionID,
		},
		Error:     errorMsg,
		Component: component,
		Context:   make(map[string]string),
	}
}

// Validate ensures the event data is complete and valid
func (e *ErrorEvent) Validate() error {
	if e.Error == "" {
		return errors.New("error message is required")
	}
	return nil
}

// Sanitize removes or masks any sensitive information
func (e *ErrorEvent) Sanitize() Event {
	sanitized := *e
	sanitized.Error = sanitizeErrorMessage(e.Error)
	sanitized.Context = withoutSensitiveKeys(e.Context)
	return &sanitized
}

var sensitiveKeys = []string{
	"password", "token", "secret", "key", "auth", "credential",
	"username", "email",
}

// isSensitiveKey checks if a key names sensitive information
func isSensitiveKey(key string) bool {
	key = strings.ToLower(key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(key, sensitive) {
			return true
		}
	}
	return false
}

func withoutSensitiveKeys(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		if !isSensitiveKey(k) {
			out[k] = v
		}
	}
	return out
}

var (
	sensitiveAssignment = regexp.MustCompile(`(?i)(token|password|secret|key|auth)=[^&\s]+`)
	bearerToken         = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9\-_.]+`)
	jwtLike             = regexp.MustCompile(`eyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]*`)
)

// sanitizeErrorMessage masks credentials that leak into error strings
func sanitizeErrorMessage(msg string) string {
	msg = sensitiveAssignment.ReplaceAllString(msg, "$1=[REDACTED]")
	msg = bearerToken.ReplaceAllString(msg, "Bearer [REDACTED]")
	return jwtLike.ReplaceAllString(msg, "[REDACTED]")
}
