package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockPersistence implements Persistence in memory
type MockPersistence struct {
	token    string
	writes   int
	writeErr error
}

func (m *MockPersistence) UpdateAuthConfig(accessToken string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes++
	m.token = accessToken
	return nil
}

func (m *MockPersistence) GetToken() (string, error) {
	if m.token == "" {
		return "", errors.New("no token")
	}
	return m.token, nil
}

func signedToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return raw
}

func TestStore_StoreAndRead(t *testing.T) {
	tests := []struct {
		name    string
		isAdmin bool
	}{
		{name: "admin", isAdmin: true},
		{name: "standard user", isAdmin: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			persistence := &MockPersistence{}
			store := NewStore(persistence)
			exp := time.Now().Add(time.Hour).Truncate(time.Second)
			raw := signedToken(t, jwt.MapClaims{
				"isAdmin":  tt.isAdmin,
				"username": "alice",
				"sub":      "42",
				"exp":      exp.Unix(),
			})

			// Act
			require.NoError(t, store.Store(raw))
			payload, err := store.Read()

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.isAdmin, payload.IsAdmin)
			assert.Equal(t, "alice", payload.Username)
			assert.Equal(t, "42", payload.UserID)
			assert.True(t, payload.ExpiresAt.Equal(exp))
			assert.Equal(t, 1, persistence.writes)
		})
	}
}

func TestStore_ReadIgnoresSignature(t *testing.T) {
	// Arrange
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"isAdmin": true}).
		SignedString([]byte("a-key-the-client-never-sees"))
	require.NoError(t, err)
	store := NewStore(&MockPersistence{token: raw})

	// Act
	payload, err := store.Read()

	// Assert
	require.NoError(t, err)
	assert.True(t, payload.IsAdmin)
}

func TestStore_ReadMissingClaimDefaultsToStandard(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{"username": "bob"})
	store := NewStore(&MockPersistence{token: raw})

	payload, err := store.Read()

	require.NoError(t, err)
	assert.False(t, payload.IsAdmin)
	assert.True(t, payload.ExpiresAt.IsZero())
}

func TestDecode_IgnoresUnrelatedClaimTypes(t *testing.T) {
	// Arrange
	raw := signedToken(t, jwt.MapClaims{
		"isAdmin": true,
		"sub":     1234,
		"aud":     42,
		"iat":     "yesterday",
		"exp":     "soon",
		"roles":   []string{"admin"},
	})

	// Act
	payload, err := Decode(raw)

	// Assert
	require.NoError(t, err)
	assert.True(t, payload.IsAdmin)
	assert.Equal(t, "1234", payload.UserID)
	assert.True(t, payload.ExpiresAt.IsZero())
}

func TestDecode_NonBooleanRole(t *testing.T) {
	_, err := Decode(signedToken(t, jwt.MapClaims{"isAdmin": "yes"}))

	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestStore_ReadFailures(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "nothing stored", token: ""},
		{name: "not a jwt", token: "opaque-token"},
		{name: "bad base64 payload", token: "eyJhbGciOiJIUzI1NiJ9.@@@.sig"},
		{name: "non boolean isAdmin", token: signedToken(t, jwt.MapClaims{"isAdmin": "yes"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(&MockPersistence{token: tt.token})

			_, err := store.Read()

			assert.Error(t, err)
		})
	}
}

func TestStore_StoreRejectsEmptyToken(t *testing.T) {
	persistence := &MockPersistence{}
	store := NewStore(persistence)

	err := store.Store("")

	assert.ErrorIs(t, err, ErrEmptyToken)
	assert.Equal(t, 0, persistence.writes)
}

func TestStore_StoreWrapsPersistenceError(t *testing.T) {
	diskFull := errors.New("disk full")
	store := NewStore(&MockPersistence{writeErr: diskFull})

	err := store.Store("T")

	assert.ErrorIs(t, err, diskFull)
}

func TestStore_Token(t *testing.T) {
	store := NewStore(&MockPersistence{token: "T"})

	raw, err := store.Token()

	require.NoError(t, err)
	assert.Equal(t, "T", raw)
}

func TestDecode(t *testing.T) {
	payload, err := Decode(signedToken(t, jwt.MapClaims{"isAdmin": true}))
	require.NoError(t, err)
	assert.True(t, payload.IsAdmin)

	_, err = Decode("")
	assert.ErrorIs(t, err, ErrEmptyToken)
}

func TestPayload_Claims(t *testing.T) {
	tests := []struct {
		name     string
		payload  Payload
		expected []Claim
	}{
		{
			name: "admin with all claims",
			payload: Payload{
				IsAdmin:   true,
				UserID:    "42",
				Username:  "alice",
				ExpiresAt: time.Date(2030, 1, 2, 3, 4, 0, 0, time.Local),
			},
			expected: []Claim{
				{Name: "username", Value: "alice"},
				{Name: "user id", Value: "42"},
				{Name: "role", Value: "admin"},
				{Name: "expires", Value: "2030-01-02 03:04"},
			},
		},
		{
			name:    "standard user without optional claims",
			payload: Payload{},
			expected: []Claim{
				{Name: "username", Value: "-"},
				{Name: "user id", Value: "-"},
				{Name: "role", Value: "standard"},
				{Name: "expires", Value: "never"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.payload.Claims())
		})
	}
}
