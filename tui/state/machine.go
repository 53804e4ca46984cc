package state

import (
	"fmt"

	"binotify-cli/route"

	tea "github.com/charmbracelet/bubbletea"
)

// State represents the screen the TUI is showing
type State int

const (
	// Login - credential entry screen
	Login State = iota

	// Subscription - administrative landing screen
	Subscription

	// SongManagement - landing screen for regular users
	SongManagement
)

// String returns a human-readable representation of the state
func (s State) String() string {
	switch s {
	case Login:
		return "Login"
	case Subscription:
		return "Subscription"
	case SongManagement:
		return "SongManagement"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// IsValid checks if the state is a valid state
func (s State) IsValid() bool {
	return s >= Login && s <= SongManagement
}

// Route returns the route a state is reached through
func (s State) Route() string {
	switch s {
	case Subscription:
		return route.Admin
	case SongManagement:
		return route.Standard
	default:
		return route.Login
	}
}

// ForRoute maps a route to the state that renders it
func ForRoute(path string) (State, bool) {
	switch path {
	case route.Login:
		return Login, true
	case route.Admin:
		return Subscription, true
	case route.Standard:
		return SongManagement, true
	default:
		return Login, false
	}
}

// Transition represents a state transition
type Transition struct {
	From State
	To   State
}

// String returns a human-readable representation of the transition
func (t Transition) String() string {
	return fmt.Sprintf("%s -> %s", t.From, t.To)
}

// Machine manages state transitions and validation
type Machine struct {
	current State
	history []State
}

// NewMachine creates a new state machine with the given initial state
func NewMachine(initial State) *Machine {
	return &Machine{
		current: initial,
		history: []State{initial},
	}
}

// Current returns the current state
func (m *Machine) Current() State {
	return m.current
}

// Transition transitions to a new state
func (m *Machine) Transition(to State) tea.Cmd {
	if !to.IsValid() {
		return func() tea.Msg {
			return ErrorMsg{
				Error: fmt.Errorf("invalid state transition to %s", to),
			}
		}
	}

	transition := Transition{From: m.current, To: to}
	m.current = to
	m.history = append(m.history, to)

	return func() tea.Msg {
		return TransitionMsg{Transition: transition}
	}
}

// Navigate transitions to the state rendering path
func (m *Machine) Navigate(path string) tea.Cmd {
	to, ok := ForRoute(path)
	if !ok {
		return func() tea.Msg {
			return ErrorMsg{
				Error: fmt.Errorf("no screen for route %q", path),
			}
		}
	}
	return m.Transition(to)
}

// History returns a copy of the state history
func (m *Machine) History() []State {
	history := make([]State, len(m.history))
	copy(history, m.history)
	return history
}

// Reset resets the state machine to the given state
func (m *Machine) Reset(initial State) {
	m.current = initial
	m.history = []State{initial}
}

// Messages for state machine events
type (
	// TransitionMsg is sent when a state transition occurs
	TransitionMsg struct {
		Transition Transition
	}

	// ErrorMsg is sent when a state machine error occurs
	ErrorMsg struct {
		Error error
	}
)
