package controller

import (
	"binotify-cli/route"
	"binotify-cli/token"
	"binotify-cli/tracing"
	"binotify-cli/tui/components/footer"
	"binotify-cli/tui/components/toast"
	"binotify-cli/tui/effects"
	"binotify-cli/tui/keys"
	"binotify-cli/tui/landing"
	"binotify-cli/tui/login"
	"binotify-cli/tui/state"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// SessionReader reads back the claims of the persisted token
type SessionReader interface {
	Read() (token.Payload, error)
}

// Controller manages the overall TUI state and coordinates between components
type Controller struct {
	// State management
	stateMachine *state.Machine

	// Key handling
	keyHandler     *keys.Handler
	footerBindings *keys.FooterBindings

	// Components
	loginComponent   *login.Component
	landingComponent *landing.Component
	toast            *toast.Component
	footer           *footer.Component

	// Dependencies
	session SessionReader
	logger  *zap.Logger
	tracer  tracing.Tracer

	// Application state
	errorMsg string
	fatalErr error
	quitting bool
}

// New creates a new TUI controller starting on the login screen
func New(loginComponent *login.Component, session SessionReader, logger *zap.Logger, tracer tracing.Tracer) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tracer == nil {
		tracer = tracing.NewNoOpTracer()
	}

	return &Controller{
		stateMachine:   state.NewMachine(state.Login),
		keyHandler:     keys.NewHandler(),
		footerBindings: keys.NewFooterBindings(),
		loginComponent: loginComponent,
		toast:          toast.New(),
		footer:         footer.New(),
		session:        session,
		logger:         logger,
		tracer:         tracer,
	}
}

// Init initializes the controller and returns initial commands
func (c *Controller) Init() tea.Cmd {
	return c.loginComponent.Init()
}

// Update handles incoming messages and updates the controller state
func (c *Controller) Update(msg tea.Msg) (*Controller, tea.Cmd) {
	// Handle global quit
	if keyMsg, ok := msg.(tea.KeyMsg); ok && c.keyHandler.IsQuit(keyMsg) {
		c.quitting = true
		return c, tea.Quit
	}

	// Toast expiry can arrive in any state
	var toastCmd tea.Cmd
	c.toast, toastCmd = c.toast.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		var cmd tea.Cmd
		c.loginComponent, cmd = c.loginComponent.Update(msg)
		return c, cmd
	case login.LoginDoneMsg:
		return c.handleLoginDone(msg)
	case state.TransitionMsg:
		c.logger.Debug("screen changed", zap.String("transition", msg.Transition.String()))
		return c, nil
	case state.ErrorMsg:
		c.errorMsg = msg.Error.Error()
		c.logger.Error("navigation failed", zap.Error(msg.Error))
		_ = c.tracer.TrackError(*tracing.NewErrorEvent(c.tracer.SessionID(), msg.Error.Error(), "controller"))
		return c, nil
	case tea.KeyMsg:
		if c.keyHandler.IsDismiss(msg) && c.toast.Dismiss() {
			return c, nil
		}
	}

	cmd := c.handleStateUpdate(msg)
	return c, tea.Batch(toastCmd, cmd)
}

// handleStateUpdate delegates message handling based on current state
func (c *Controller) handleStateUpdate(msg tea.Msg) tea.Cmd {
	switch c.stateMachine.Current() {
	case state.Login:
		var cmd tea.Cmd
		c.loginComponent, cmd = c.loginComponent.Update(msg)
		return cmd
	case state.Subscription, state.SongManagement:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && c.keyHandler.IsLeave(keyMsg) {
			c.quitting = true
			return tea.Quit
		}
		if c.landingComponent == nil {
			return nil
		}
		var cmd tea.Cmd
		c.landingComponent, cmd = c.landingComponent.Update(msg)
		return cmd
	default:
		return nil
	}
}

// handleLoginDone applies the effects of a resolved attempt in the order they were raised
func (c *Controller) handleLoginDone(msg login.LoginDoneMsg) (*Controller, tea.Cmd) {
	c.loginComponent, _ = c.loginComponent.Update(msg)

	if msg.Err != nil {
		c.fatalErr = msg.Err
		c.quitting = true
		return c, tea.Quit
	}

	var cmds []tea.Cmd
	for _, effect := range msg.Effects {
		switch effect := effect.(type) {
		case effects.NotifyMsg:
			cmds = append(cmds, c.toast.Show(effect.Notification))
		case effects.NavigateMsg:
			cmds = append(cmds, c.navigate(effect.Path))
		}
	}
	return c, tea.Batch(cmds...)
}

// navigate switches to the screen of path, building the landing screen from the persisted token
func (c *Controller) navigate(path string) tea.Cmd {
	if path != route.Login {
		payload, err := c.session.Read()
		if err != nil {
			c.fatalErr = err
			c.quitting = true
			return tea.Quit
		}
		c.landingComponent = landing.New(payload)
	}
	return c.stateMachine.Navigate(path)
}

// View renders the current state
func (c *Controller) View() string {
	if c.quitting {
		return c.renderQuitting()
	}

	var view string
	switch c.stateMachine.Current() {
	case state.Login:
		view = c.renderLogin()
	case state.Subscription, state.SongManagement:
		view = c.renderLanding()
	default:
		view = "Unknown state"
	}
	return c.withOverlays(view)
}

// Getters for accessing controller state
func (c *Controller) IsQuitting() bool {
	return c.quitting
}

func (c *Controller) CurrentState() state.State {
	return c.stateMachine.Current()
}

func (c *Controller) GetErrorMsg() string {
	return c.errorMsg
}

// Err returns the error that ended the session, if any
func (c *Controller) Err() error {
	return c.fatalErr
}
