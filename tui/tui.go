package tui

import (
	"binotify-cli/tui/controller"

	tea "github.com/charmbracelet/bubbletea"
)

// model adapts the controller to tea.Model
type model struct {
	controller *controller.Controller
}

// NewProgram creates the full-screen program driving c
func NewProgram(c *controller.Controller, opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	return tea.NewProgram(model{controller: c}, opts...)
}

// Run runs the program until the user quits and returns the error that ended the session, if any
func Run(c *controller.Controller, opts ...tea.ProgramOption) error {
	if _, err := NewProgram(c, opts...).Run(); err != nil {
		return err
	}
	return c.Err()
}

func (m model) Init() tea.Cmd {
	return m.controller.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.controller, cmd = m.controller.Update(msg)
	return m, cmd
}

func (m model) View() string {
	return m.controller.View()
}
