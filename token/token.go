// Package token persists the bearer token issued at login and decodes the
// claims the client needs from it. Signatures are not verified here; that is
// the server's job on every authenticated request.
package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptyToken is returned when decoding an empty token string
var ErrEmptyToken = errors.New("empty token")

// Payload represents the claims decoded from an issued token
type Payload struct {
	IsAdmin   bool
	UserID    string
	Username  string
	ExpiresAt time.Time
}

// ErrInvalidRole is returned when the isAdmin claim is present but not a boolean
var ErrInvalidRole = errors.New("isAdmin claim is not a boolean")

// Persistence is the storage the token is written to and read back from
type Persistence interface {
	UpdateAuthConfig(accessToken string) error
	GetToken() (string, error)
}

// Store owns the persisted token
type Store struct {
	persistence Persistence
	parser      *jwt.Parser
}

// NewStore creates a token store on top of the given persistence
func NewStore(persistence Persistence) *Store {
	return &Store{
		persistence: persistence,
		parser:      jwt.NewParser(),
	}
}

// Store persists the token, replacing any previous one
func (s *Store) Store(raw string) error {
	if raw == "" {
		return ErrEmptyToken
	}
	if err := s.persistence.UpdateAuthConfig(raw); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	return nil
}

// Token returns the raw persisted token
func (s *Store) Token() (string, error) {
	return s.persistence.GetToken()
}

// Read decodes the payload of the persisted token
func (s *Store) Read() (Payload, error) {
	raw, err := s.persistence.GetToken()
	if err != nil {
		return Payload{}, fmt.Errorf("failed to read token: %w", err)
	}
	return decode(s.parser, raw)
}

// Decode decodes the payload of a raw token
func Decode(raw string) (Payload, error) {
	return decode(jwt.NewParser(), raw)
}

// decode reads only the claims the client uses. Other claims, whatever their
// type, do not affect the result.
func decode(parser *jwt.Parser, raw string) (Payload, error) {
	if raw == "" {
		return Payload{}, ErrEmptyToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return Payload{}, fmt.Errorf("failed to decode token: %w", err)
	}

	var payload Payload
	if v, ok := claims["isAdmin"]; ok && v != nil {
		isAdmin, ok := v.(bool)
		if !ok {
			return Payload{}, fmt.Errorf("%w: got %T", ErrInvalidRole, v)
		}
		payload.IsAdmin = isAdmin
	}
	if username, ok := claims["username"].(string); ok {
		payload.Username = username
	}
	payload.UserID = stringClaim(claims["sub"])
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		payload.ExpiresAt = exp.Time
	}
	return payload, nil
}

// stringClaim renders a string or numeric claim; anything else is dropped
func stringClaim(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// Claim is a named, display-ready value of a payload
type Claim struct {
	Name  string
	Value string
}

// Claims flattens the payload into display rows, in a fixed order
func (p Payload) Claims() []Claim {
	role := "standard"
	if p.IsAdmin {
		role = "admin"
	}
	expires := "never"
	if !p.ExpiresAt.IsZero() {
		expires = p.ExpiresAt.Local().Format("2006-01-02 15:04")
	}
	return []Claim{
		{Name: "username", Value: orDash(p.Username)},
		{Name: "user id", Value: orDash(p.UserID)},
		{Name: "role", Value: role},
		{Name: "expires", Value: expires},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
