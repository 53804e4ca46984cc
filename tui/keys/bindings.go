package keys

import (
	"binotify-cli/tui/components/footer"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// GlobalKeyMap defines global key bindings used across the application
type GlobalKeyMap struct {
	Submit  key.Binding
	Tab     key.Binding
	Quit    key.Binding
	Leave   key.Binding
	Dismiss key.Binding
	Reveal  key.Binding
}

// DefaultGlobalKeys returns the default global key bindings
func DefaultGlobalKeys() GlobalKeyMap {
	return GlobalKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "up", "down"),
			key.WithHelp("tab", "switch"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		// q is a printable character on the login form, so it only quits elsewhere
		Leave: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Reveal: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "show/hide password"),
		),
	}
}

// Handler provides a centralized way to handle common key patterns
type Handler struct {
	keys GlobalKeyMap
}

// NewHandler creates a new key handler with default bindings
func NewHandler() *Handler {
	return &Handler{
		keys: DefaultGlobalKeys(),
	}
}

// HandleGlobalKeys handles keys that work on every screen
func (h *Handler) HandleGlobalKeys(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, h.keys.Quit) {
		return tea.Quit
	}
	return nil
}

// IsQuit returns true for the quit-anywhere combination
func (h *Handler) IsQuit(msg tea.KeyMsg) bool {
	return key.Matches(msg, h.keys.Quit)
}

// IsLeave returns true for the single-key quit used outside text inputs
func (h *Handler) IsLeave(msg tea.KeyMsg) bool {
	return key.Matches(msg, h.keys.Leave)
}

// IsSubmit returns true if the key message is a submit command
func (h *Handler) IsSubmit(msg tea.KeyMsg) bool {
	return key.Matches(msg, h.keys.Submit)
}

// IsTab returns true if the key message moves focus
func (h *Handler) IsTab(msg tea.KeyMsg) bool {
	return key.Matches(msg, h.keys.Tab)
}

// IsDismiss returns true if the key message dismisses a notification
func (h *Handler) IsDismiss(msg tea.KeyMsg) bool {
	return key.Matches(msg, h.keys.Dismiss)
}

// IsReveal returns true if the key message toggles password visibility
func (h *Handler) IsReveal(msg tea.KeyMsg) bool {
	return key.Matches(msg, h.keys.Reveal)
}

// FooterBindings returns appropriate footer bindings for different contexts
type FooterBindings struct{}

// NewFooterBindings creates a new footer bindings helper
func NewFooterBindings() *FooterBindings {
	return &FooterBindings{}
}

// Login returns bindings for the login form
func (f *FooterBindings) Login() []footer.KeyBinding {
	return []footer.KeyBinding{
		footer.TabBinding,
		footer.SubmitBinding,
		footer.RevealBinding,
		footer.DismissBinding,
		footer.QuitBinding,
	}
}

// Landing returns bindings for the post-login screens
func (f *FooterBindings) Landing() []footer.KeyBinding {
	return []footer.KeyBinding{
		footer.NavigateBinding,
		footer.DismissBinding,
		footer.LeaveBinding,
	}
}
