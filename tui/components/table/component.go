package table

import (
	"binotify-cli/token"
	"binotify-cli/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
	btable "github.com/evertras/bubble-table/table"
)

// Component renders the claims of the current session
type Component struct {
	table   btable.Model
	claims  []token.Claim
	focused bool
}

// New creates an empty claims table
func New() *Component {
	return &Component{
		table: btable.New(styles.ClaimsTableColumns),
	}
}

// SetPayload replaces the table rows with the claims of p
func (c *Component) SetPayload(p token.Payload) {
	c.claims = p.Claims()
	c.refreshTable()
}

// Rows returns the claims currently shown
func (c *Component) Rows() []token.Claim {
	return c.claims
}

// SetFocused sets whether the table reacts to navigation keys
func (c *Component) SetFocused(focused bool) {
	c.focused = focused
	c.table = c.table.Focused(focused)
}

// HighlightedClaim returns the row under the cursor, or nil when the table is empty
func (c *Component) HighlightedClaim() *token.Claim {
	row := c.table.HighlightedRow()
	if row.Data == nil {
		return nil
	}
	name, ok := row.Data["claim"].(string)
	if !ok {
		return nil
	}
	for i := range c.claims {
		if c.claims[i].Name == name {
			return &c.claims[i]
		}
	}
	return nil
}

// Update handles Bubble Tea messages
func (c *Component) Update(msg tea.Msg) (*Component, tea.Cmd) {
	var cmd tea.Cmd
	c.table, cmd = c.table.Update(msg)
	return c, cmd
}

// View renders the table
func (c *Component) View() string {
	return c.table.View()
}

func (c *Component) refreshTable() {
	rows := make([]btable.Row, 0, len(c.claims))
	for _, claim := range c.claims {
		rows = append(rows, btable.NewRow(btable.RowData{
			"claim": claim.Name,
			"value": claim.Value,
		}))
	}

	c.table = c.table.WithRows(rows)
	if c.focused {
		c.table = c.table.Focused(true)
	}
}
