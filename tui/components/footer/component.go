package footer

import (
	"strings"

	"binotify-cli/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Component represents a footer with help text
type Component struct {
	style lipgloss.Style
}

// New creates a new footer component
func New() *Component {
	return &Component{
		style: lipgloss.NewStyle().
			Foreground(styles.Muted).
			Faint(true),
	}
}

// KeyBinding represents a single key binding
type KeyBinding struct {
	Key         string
	Description string
}

// View renders the footer with the provided key bindings
func (c *Component) View(bindings ...KeyBinding) string {
	var parts []string
	for _, binding := range bindings {
		if formatted := binding.Format(); formatted != "" {
			parts = append(parts, formatted)
		}
	}
	if len(parts) == 0 {
		return ""
	}

	return c.style.Render(strings.Join(parts, "  "))
}

// Format renders a key binding in the standard format
func (kb KeyBinding) Format() string {
	if kb.Key == "" || kb.Description == "" {
		return ""
	}
	return "[" + kb.Key + "] " + kb.Description
}

// Common key bindings for reuse
var (
	QuitBinding     = KeyBinding{Key: "ctrl+c", Description: "quit"}
	LeaveBinding    = KeyBinding{Key: "q", Description: "quit"}
	SubmitBinding   = KeyBinding{Key: "enter", Description: "submit"}
	TabBinding      = KeyBinding{Key: "tab", Description: "switch"}
	RevealBinding   = KeyBinding{Key: "ctrl+r", Description: "show/hide password"}
	DismissBinding  = KeyBinding{Key: "esc", Description: "dismiss"}
	NavigateBinding = KeyBinding{Key: "↑/↓", Description: "move"}
)
