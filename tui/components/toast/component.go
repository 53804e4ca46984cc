package toast

import (
	"strings"
	"time"

	"binotify-cli/notify"
	"binotify-cli/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
)

// expireMsg fires when a toast's auto-dismiss delay has elapsed
type expireMsg struct {
	id int
}

type entry struct {
	id           int
	notification notify.Notification
}

// Component stacks notifications, newest last
type Component struct {
	entries []entry
	nextID  int
}

// New creates an empty toast stack
func New() *Component {
	return &Component{}
}

// Show adds a notification and returns the command that expires it
func (c *Component) Show(n notify.Notification) tea.Cmd {
	c.nextID++
	id := c.nextID
	c.entries = append(c.entries, entry{id: id, notification: n})

	if n.AutoDismiss <= 0 {
		return nil
	}
	return tea.Tick(n.AutoDismiss, func(time.Time) tea.Msg {
		return expireMsg{id: id}
	})
}

// Dismiss removes the newest dismissible toast and reports whether one was removed
func (c *Component) Dismiss() bool {
	for i := len(c.entries) - 1; i >= 0; i-- {
		if c.entries[i].notification.Dismissible {
			c.remove(c.entries[i].id)
			return true
		}
	}
	return false
}

// Active returns the notifications currently displayed
func (c *Component) Active() []notify.Notification {
	active := make([]notify.Notification, 0, len(c.entries))
	for _, e := range c.entries {
		active = append(active, e.notification)
	}
	return active
}

// Update handles expiry messages
func (c *Component) Update(msg tea.Msg) (*Component, tea.Cmd) {
	if msg, ok := msg.(expireMsg); ok {
		c.remove(msg.id)
	}
	return c, nil
}

// View renders the stack, one toast per line
func (c *Component) View() string {
	if len(c.entries) == 0 {
		return ""
	}

	lines := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		n := e.notification
		style := styles.SuccessToastStyle
		marker := "✓"
		if n.Kind == notify.Error {
			style = styles.ErrorToastStyle
			marker = "✗"
		}

		text := marker + " " + n.Title
		if n.Description != "" {
			text += ": " + n.Description
		}
		lines = append(lines, style.Render(text))
	}
	return strings.Join(lines, "\n")
}

func (c *Component) remove(id int) {
	for i, e := range c.entries {
		if e.id == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}
