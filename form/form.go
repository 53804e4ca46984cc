package form

import (
	"fmt"
	"sync"
)

// SubmissionState tracks whether a login attempt is outstanding
type SubmissionState int

const (
	// Idle - no request outstanding, the form accepts a submit
	Idle SubmissionState = iota

	// InFlight - a request has been issued and not yet resolved
	InFlight
)

// String returns a human-readable representation of the state
func (s SubmissionState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case InFlight:
		return "InFlight"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Login holds the credential fields of the login screen and the submission state.
// The submit gate is derived on every read, so it can never go stale.
//
// Reads may happen from the render loop while a login command runs in the
// background, hence the mutex.
type Login struct {
	mu       sync.RWMutex
	username string
	password string
	state    SubmissionState
}

// New creates an empty, idle login form
func New() *Login {
	return &Login{}
}

// SetUsername replaces the username field
func (l *Login) SetUsername(value string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.username = value
}

// SetPassword replaces the password field
func (l *Login) SetPassword(value string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.password = value
}

// Values returns the raw field values
func (l *Login) Values() (username, password string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.username, l.password
}

// CanSubmit reports whether both fields are non-empty
func (l *Login) CanSubmit() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.username != "" && l.password != ""
}

// IsBusy reports whether a submission is in flight
func (l *Login) IsBusy() bool {
	return l.State() == InFlight
}

// State returns the current submission state
func (l *Login) State() SubmissionState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// TryBegin moves the form from Idle to InFlight. It returns false, leaving the
// state untouched, when a submission is already in flight.
func (l *Login) TryBegin() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == InFlight {
		return false
	}
	l.state = InFlight
	return true
}

// Finish returns the form to Idle
func (l *Login) Finish() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = Idle
}
