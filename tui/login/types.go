package login

import (
	"context"

	"binotify-cli/auth"

	tea "github.com/charmbracelet/bubbletea"
)

// Service is the part of the authentication service the form drives
type Service interface {
	Begin(form auth.Form) (auth.Credentials, error)
	Complete(ctx context.Context, form auth.Form, creds auth.Credentials) (auth.Outcome, error)
}

// Drainer hands over the notifications and navigations raised during an attempt
type Drainer interface {
	Drain() []tea.Msg
}

// LoginDoneMsg is sent when a login attempt has resolved.
// Effects holds the notifications and navigations it raised, in order.
type LoginDoneMsg struct {
	Outcome auth.Outcome
	Err     error
	Effects []tea.Msg
}
