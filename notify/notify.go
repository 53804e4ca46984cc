package notify

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Kind classifies a notification
type Kind int

const (
	Success Kind = iota
	Error
)

// String returns the kind as shown to users
func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// DefaultAutoDismiss is how long a notification stays visible unless dismissed
const DefaultAutoDismiss = 5000 * time.Millisecond

// Notification is a single user-facing message
type Notification struct {
	Title       string
	Description string
	Kind        Kind
	AutoDismiss time.Duration
	Dismissible bool
}

// New builds a notification with the default dismissal behaviour
func New(kind Kind, title, description string) Notification {
	return Notification{
		Title:       title,
		Description: description,
		Kind:        kind,
		AutoDismiss: DefaultAutoDismiss,
		Dismissible: true,
	}
}

// Notifier displays notifications. Fire-and-forget.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface
type NotifierFunc func(n Notification)

// Notify calls f(n)
func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

// Console writes notifications as single styled lines
type Console struct {
	out          io.Writer
	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	bodyStyle    lipgloss.Style
}

// NewConsole creates a console notifier writing to out
func NewConsole(out io.Writer) *Console {
	return &Console{
		out:          out,
		successStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#1DB954")).Bold(true),
		errorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")).Bold(true),
		bodyStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("#939393")),
	}
}

// Notify writes the notification. Auto-dismiss has no meaning on a scrolling terminal.
func (c *Console) Notify(n Notification) {
	style := c.successStyle
	marker := "✓"
	if n.Kind == Error {
		style = c.errorStyle
		marker = "✗"
	}

	line := style.Render(marker + " " + n.Title)
	if n.Description != "" {
		line += " " + c.bodyStyle.Render(n.Description)
	}
	fmt.Fprintln(c.out, line)
}
