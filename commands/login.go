package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"binotify-cli/auth"
	"binotify-cli/form"
	"binotify-cli/notify"
	"binotify-cli/route"
	"binotify-cli/token"

	"github.com/charmbracelet/x/term"
	"github.com/olekukonko/tablewriter"
)

var (
	// ErrLoginRejected is returned when the server refused the credentials
	ErrLoginRejected = errors.New("login rejected")

	// ErrLoginFailed is returned when no authentication decision was obtained
	ErrLoginFailed = errors.New("login failed")
)

// LoginCmd runs a single login attempt on a plain terminal
type LoginCmd struct {
	Username string
	Password string

	provider auth.AuthProvider
	store    auth.TokenStore
	opts     []auth.Option
	in       io.Reader
	out      io.Writer
}

// NewLoginCmd creates a login command reading prompts from in and writing to out
func NewLoginCmd(provider auth.AuthProvider, store auth.TokenStore, in io.Reader, out io.Writer, opts ...auth.Option) *LoginCmd {
	return &LoginCmd{
		provider: provider,
		store:    store,
		opts:     opts,
		in:       in,
		out:      out,
	}
}

// Execute prompts for missing credentials, logs in and prints the session claims
func (c *LoginCmd) Execute(ctx context.Context) error {
	reader := bufio.NewReader(c.in)

	if c.Username == "" {
		fmt.Fprint(c.out, "Enter username: ")
		username, err := readLine(reader)
		if err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
		c.Username = username
	}

	if c.Password == "" {
		fmt.Fprint(c.out, "Enter password: ")
		password, err := c.readPassword(reader)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		c.Password = password
	}

	loginForm := form.New()
	loginForm.SetUsername(c.Username)
	loginForm.SetPassword(c.Password)

	navigator := route.NavigatorFunc(func(path string) {
		fmt.Fprintf(c.out, "→ %s\n", path)
	})
	service := auth.NewAuthService(c.provider, c.store, notify.NewConsole(c.out), navigator, c.opts...)

	outcome, err := service.AttemptLogin(ctx, loginForm)
	if err != nil {
		return err
	}

	switch o := outcome.(type) {
	case auth.Success:
		payload, err := c.store.Read()
		if err != nil {
			return fmt.Errorf("%w: %w", auth.ErrTokenDecode, err)
		}
		return renderClaims(c.out, payload)
	case auth.Rejected:
		return fmt.Errorf("%w (status %d)", ErrLoginRejected, o.Status)
	case auth.Failed:
		return fmt.Errorf("%w: %w", ErrLoginFailed, o.Cause)
	default:
		return fmt.Errorf("unknown login outcome %T", outcome)
	}
}

// readPassword reads without echo when attached to a terminal
func (c *LoginCmd) readPassword(reader *bufio.Reader) (string, error) {
	if f, ok := c.in.(*os.File); ok && term.IsTerminal(f.Fd()) {
		password, err := term.ReadPassword(f.Fd())
		fmt.Fprintln(c.out)
		return string(password), err
	}
	return readLine(reader)
}

// readLine strips the line terminator only; credentials are sent verbatim
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func renderClaims(out io.Writer, p token.Payload) error {
	table := tablewriter.NewWriter(out)
	table.Header("Claim", "Value")
	for _, claim := range p.Claims() {
		if err := table.Append([]string{claim.Name, claim.Value}); err != nil {
			return fmt.Errorf("failed to render claims: %w", err)
		}
	}
	return table.Render()
}
