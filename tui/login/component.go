package login

import (
	"context"
	"strings"

	"binotify-cli/auth"
	"binotify-cli/form"
	"binotify-cli/route"
	"binotify-cli/tui/components/footer"
	"binotify-cli/tui/keys"
	"binotify-cli/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	usernameField = iota
	passwordField
)

// Component handles the credential form
type Component struct {
	inputs   []textinput.Model
	focusIdx int
	revealed bool
	// awaiting stays set from submit until the attempt's LoginDoneMsg has been
	// delivered; the form itself returns to Idle earlier, off the update loop
	awaiting bool
	spinner  spinner.Model
	width    int
	height   int

	form     *form.Login
	service  Service
	effects  Drainer
	keys     *keys.Handler
	bindings *keys.FooterBindings
	footer   *footer.Component
}

// New creates the login form. The service's notifier and navigator must feed effects.
func New(loginForm *form.Login, service Service, effects Drainer) *Component {
	username := textinput.New()
	username.Placeholder = "Username"
	username.Focus()
	username.Width = 32

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.Width = 32

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	return &Component{
		inputs:   []textinput.Model{username, password},
		focusIdx: usernameField,
		spinner:  s,
		width:    80,
		height:   24,
		form:     loginForm,
		service:  service,
		effects:  effects,
		keys:     keys.NewHandler(),
		bindings: keys.NewFooterBindings(),
		footer:   footer.New(),
	}
}

// Init initializes the login component
func (c *Component) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the login component
func (c *Component) Update(msg tea.Msg) (*Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width, c.height = msg.Width, msg.Height
		return c, nil
	case LoginDoneMsg:
		c.awaiting = false
		return c, nil
	case spinner.TickMsg:
		if !c.Busy() {
			return c, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return c, cmd
	case tea.KeyMsg:
		// The form is frozen until the attempt's result has been applied
		if c.Busy() {
			return c, nil
		}
		return c.handleKey(msg)
	}
	return c, nil
}

func (c *Component) handleKey(msg tea.KeyMsg) (*Component, tea.Cmd) {
	switch {
	case c.keys.IsTab(msg):
		if msg.String() == "shift+tab" || msg.String() == "up" {
			c.focusIdx--
		} else {
			c.focusIdx++
		}
		if c.focusIdx > passwordField {
			c.focusIdx = usernameField
		} else if c.focusIdx < usernameField {
			c.focusIdx = passwordField
		}
		return c, c.updateFocus()
	case c.keys.IsReveal(msg):
		c.ToggleReveal()
		return c, nil
	case c.keys.IsSubmit(msg):
		if c.focusIdx == usernameField {
			c.focusIdx = passwordField
			return c, c.updateFocus()
		}
		return c, c.submit()
	}

	var cmd tea.Cmd
	c.inputs[c.focusIdx], cmd = c.inputs[c.focusIdx].Update(msg)
	c.sync()
	return c, cmd
}

// submit flips the form to in flight before returning, so the very next
// render already shows the loading state
func (c *Component) submit() tea.Cmd {
	if c.awaiting {
		return nil
	}
	creds, err := c.service.Begin(c.form)
	if err != nil {
		return nil
	}
	c.awaiting = true
	return tea.Batch(c.spinner.Tick, c.complete(creds))
}

// complete runs the request off the update loop. No deadline beyond the
// client's own timeout: an attempt cannot be cancelled from the UI.
func (c *Component) complete(creds auth.Credentials) tea.Cmd {
	return func() tea.Msg {
		outcome, err := c.service.Complete(context.Background(), c.form, creds)
		return LoginDoneMsg{Outcome: outcome, Err: err, Effects: c.effects.Drain()}
	}
}

// Prefill sets initial field values, e.g. from command-line flags
func (c *Component) Prefill(username, password string) {
	c.inputs[usernameField].SetValue(username)
	c.inputs[passwordField].SetValue(password)
	c.sync()
	if username != "" {
		c.focusIdx = passwordField
		c.updateFocus()
	}
}

// ToggleReveal switches the password field between masked and plain text
func (c *Component) ToggleReveal() {
	c.revealed = !c.revealed
	if c.revealed {
		c.inputs[passwordField].EchoMode = textinput.EchoNormal
	} else {
		c.inputs[passwordField].EchoMode = textinput.EchoPassword
	}
}

// Revealed reports whether the password is shown in plain text
func (c *Component) Revealed() bool {
	return c.revealed
}

// Busy reports whether a login attempt is outstanding or its result not yet applied
func (c *Component) Busy() bool {
	return c.awaiting || c.form.IsBusy()
}

// GetUsername returns the current username input
func (c *Component) GetUsername() string {
	return c.inputs[usernameField].Value()
}

// GetPassword returns the current password input
func (c *Component) GetPassword() string {
	return c.inputs[passwordField].Value()
}

// View renders the login component
func (c *Component) View() string {
	if c.Busy() {
		return lipgloss.Place(c.width, c.height, lipgloss.Center, lipgloss.Center,
			c.spinner.View()+" "+styles.HeaderStyle.Render("Logging in..."))
	}

	var inputs []string
	for i := range c.inputs {
		input := c.inputs[i].View()
		if i == c.focusIdx {
			input += lipgloss.NewStyle().Foreground(styles.Primary).Render("█")
		}
		inputs = append(inputs, input)
	}

	button := styles.DisabledButtonStyle.Render("Log In")
	if c.form.CanSubmit() {
		button = styles.ButtonStyle.Render("Log In")
	}

	content := strings.Join([]string{
		styles.HeaderStyle.Render("Log in to Binotify Premium"),
		"",
		styles.LabelStyle.Render("Username"),
		inputs[usernameField],
		styles.LabelStyle.Render("Password"),
		inputs[passwordField],
		"",
		button,
		"",
		styles.SubtitleStyle.Render("Don't have an account? ") + styles.LinkStyle.Render("Sign up at "+route.Register),
	}, "\n")

	page := lipgloss.JoinVertical(lipgloss.Center,
		styles.Logo(),
		"",
		styles.LoginBoxStyle.Render(content),
		c.footer.View(c.bindings.Login()...),
	)
	return lipgloss.Place(c.width, c.height, lipgloss.Center, lipgloss.Center, page)
}

func (c *Component) updateFocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range c.inputs {
		if i == c.focusIdx {
			cmd = c.inputs[i].Focus()
		} else {
			c.inputs[i].Blur()
		}
	}
	return cmd
}

// sync copies the inputs into the form so the submit gate follows every keystroke
func (c *Component) sync() {
	c.form.SetUsername(c.inputs[usernameField].Value())
	c.form.SetPassword(c.inputs[passwordField].Value())
}
