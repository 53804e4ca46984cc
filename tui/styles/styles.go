package styles

import (
	"github.com/charmbracelet/lipgloss"
	btable "github.com/evertras/bubble-table/table"
)

// Colors
var (
	Primary    = lipgloss.Color("#1DB954") // Binotify green
	Hover      = lipgloss.Color("#169844") // Darker green
	Muted      = lipgloss.Color("#939393") // Grey body text
	Field      = lipgloss.Color("#212121") // Input background
	Background = lipgloss.Color("#121212") // Page background
	Text       = lipgloss.AdaptiveColor{Light: "#121212", Dark: "#ffffff"}
	ErrorColor = lipgloss.Color("#ff4d4f")
)

// Common Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Muted)

	LoginBoxStyle = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 4).
			Width(48)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(Background).
			Background(Primary).
			Bold(true).
			Padding(0, 3)

	DisabledButtonStyle = lipgloss.NewStyle().
				Foreground(Muted).
				Background(Field).
				Padding(0, 3)

	LinkStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Underline(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	SuccessToastStyle = lipgloss.NewStyle().
				Foreground(Text).
				Background(Hover).
				Padding(0, 2)

	ErrorToastStyle = lipgloss.NewStyle().
			Foreground(Text).
			Background(ErrorColor).
			Padding(0, 2)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)

// Table Configuration
var (
	ClaimsTableColumns = []btable.Column{
		btable.NewColumn("claim", "Claim", 16),
		btable.NewColumn("value", "Value", 32),
	}
)

// Logo renders the product header shown above the login box
func Logo() string {
	return lipgloss.NewStyle().Foreground(Primary).Bold(true).Render(`
 ____  _             _   _  __
| __ )(_)_ __   ___ | |_(_)/ _|_   _
|  _ \| | '_ \ / _ \| __| | |_| | | |
| |_) | | | | | (_) | |_| |  _| |_| |
|____/|_|_| |_|\___/ \__|_|_|  \__, |
                   premium     |___/`)
}
