package landing

import (
	"binotify-cli/token"
	"binotify-cli/tui/components/table"
	"binotify-cli/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
)

// Component is the screen shown after a successful login
type Component struct {
	payload token.Payload
	claims  *table.Component
}

// New creates the landing screen for the given session
func New(payload token.Payload) *Component {
	claims := table.New()
	claims.SetPayload(payload)
	claims.SetFocused(true)
	return &Component{
		payload: payload,
		claims:  claims,
	}
}

// Title names the screen by role
func (c *Component) Title() string {
	if c.payload.IsAdmin {
		return "Subscription requests"
	}
	return "Song management"
}

// Payload returns the session claims the screen was built from
func (c *Component) Payload() token.Payload {
	return c.payload
}

// Update forwards navigation to the claims table
func (c *Component) Update(msg tea.Msg) (*Component, tea.Cmd) {
	var cmd tea.Cmd
	c.claims, cmd = c.claims.Update(msg)
	return c, cmd
}

// View renders the landing screen
func (c *Component) View() string {
	greeting := "Signed in"
	if c.payload.Username != "" {
		greeting = "Signed in as " + c.payload.Username
	}
	return styles.HeaderStyle.Render(c.Title()) + "\n" +
		styles.SubtitleStyle.Render(greeting) + "\n\n" +
		c.claims.View()
}
