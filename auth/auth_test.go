package auth

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"binotify-cli/api"
	"binotify-cli/form"
	"binotify-cli/notify"
	"binotify-cli/route"
	"binotify-cli/token"
	"binotify-cli/tracing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// MockAuthProvider implements AuthProvider for testing
type MockAuthProvider struct {
	loginFunc func(ctx context.Context, username, password string) (*api.LoginResponse, error)

	calls        int
	lastUsername string
	lastPassword string
}

func (m *MockAuthProvider) Login(ctx context.Context, username, password string) (*api.LoginResponse, error) {
	m.calls++
	m.lastUsername = username
	m.lastPassword = password
	if m.loginFunc != nil {
		return m.loginFunc(ctx, username, password)
	}
	return &api.LoginResponse{Status: http.StatusOK, Message: "Login successful", Token: "mock-token"}, nil
}

// MockTokenStore implements TokenStore for testing
type MockTokenStore struct {
	stored   []string
	storeErr error
	payload  token.Payload
	readErr  error
	reads    int
}

func (m *MockTokenStore) Store(raw string) error {
	if m.storeErr != nil {
		return m.storeErr
	}
	m.stored = append(m.stored, raw)
	return nil
}

func (m *MockTokenStore) Read() (token.Payload, error) {
	m.reads++
	return m.payload, m.readErr
}

// effects records notifications and navigations
type effects struct {
	mu            sync.Mutex
	notifications []notify.Notification
	routes        []string
}

func (e *effects) Notify(n notify.Notification) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notifications = append(e.notifications, n)
}

func (e *effects) Navigate(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.routes = append(e.routes, path)
}

// MockTracer records tracked events
type MockTracer struct {
	tracing.NoOpTracer
	logins      []tracing.LoginEvent
	navigations []tracing.NavigationEvent
	errors      []tracing.ErrorEvent
}

func (m *MockTracer) TrackLogin(event tracing.LoginEvent) error {
	m.logins = append(m.logins, event)
	return nil
}

func (m *MockTracer) TrackNavigation(nav tracing.NavigationEvent) error {
	m.navigations = append(m.navigations, nav)
	return nil
}

func (m *MockTracer) TrackError(err tracing.ErrorEvent) error {
	m.errors = append(m.errors, err)
	return nil
}

type fixture struct {
	provider *MockAuthProvider
	store    *MockTokenStore
	effects  *effects
	form     *form.Login
	logs     *observer.ObservedLogs
	tracer   *MockTracer
	service  *AuthService
}

func newFixture(opts ...Option) *fixture {
	core, logs := observer.New(zapcore.DebugLevel)
	f := &fixture{
		provider: &MockAuthProvider{},
		store:    &MockTokenStore{},
		effects:  &effects{},
		form:     form.New(),
		logs:     logs,
		tracer:   &MockTracer{},
	}
	opts = append([]Option{WithLogger(zap.New(core)), WithTracer(f.tracer)}, opts...)
	f.service = NewAuthService(f.provider, f.store, f.effects, f.effects, opts...)
	f.form.SetUsername("alice")
	f.form.SetPassword("secret")
	return f
}

func TestAuthService_AttemptLogin_EmptyFieldsMakeNoRequest(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "both empty"},
		{name: "empty username", password: "secret"},
		{name: "empty password", username: "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := newFixture()
			f.form.SetUsername(tt.username)
			f.form.SetPassword(tt.password)

			// Act
			outcome, err := f.service.AttemptLogin(context.Background(), f.form)

			// Assert
			assert.ErrorIs(t, err, ErrValidationRejected)
			assert.Nil(t, outcome)
			assert.Equal(t, 0, f.provider.calls)
			assert.Empty(t, f.effects.notifications)
			assert.Equal(t, form.Idle, f.form.State())
		})
	}
}

func TestAuthService_Begin_ReportsBlockingField(t *testing.T) {
	// Arrange
	f := newFixture()
	f.form.SetPassword("")

	// Act
	_, err := f.service.Begin(f.form)

	// Assert
	assert.ErrorIs(t, err, ErrValidationRejected)
	assert.Contains(t, err.Error(), "password is empty")
	entries := f.logs.FilterMessage("submit ignored").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
}

func TestAuthService_AttemptLogin_BusyIsNoOp(t *testing.T) {
	// Arrange
	f := newFixture()
	require.True(t, f.form.TryBegin())

	// Act
	_, err := f.service.AttemptLogin(context.Background(), f.form)

	// Assert
	assert.ErrorIs(t, err, ErrInFlight)
	assert.Equal(t, 0, f.provider.calls)
	assert.Equal(t, form.InFlight, f.form.State(), "a rejected submit must not clear someone else's attempt")
}

func TestAuthService_AttemptLogin_BusyWinsOverClosedGate(t *testing.T) {
	f := newFixture()
	f.form.SetPassword("")
	require.True(t, f.form.TryBegin())

	_, err := f.service.AttemptLogin(context.Background(), f.form)

	assert.ErrorIs(t, err, ErrInFlight)
	assert.Equal(t, 0, f.provider.calls)
}

func TestAuthService_AttemptLogin_SuccessRoutesByRole(t *testing.T) {
	tests := []struct {
		name      string
		isAdmin   bool
		wantRoute string
	}{
		{name: "standard user", isAdmin: false, wantRoute: route.Standard},
		{name: "admin", isAdmin: true, wantRoute: route.Admin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := newFixture()
			f.provider.loginFunc = func(ctx context.Context, username, password string) (*api.LoginResponse, error) {
				return &api.LoginResponse{Status: http.StatusOK, Message: "Login successful", Token: "T"}, nil
			}
			f.store.payload = token.Payload{IsAdmin: tt.isAdmin}

			// Act
			outcome, err := f.service.AttemptLogin(context.Background(), f.form)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, Success{Token: "T", Message: "Login successful", IsAdmin: tt.isAdmin, Route: tt.wantRoute}, outcome)

			require.Len(t, f.effects.notifications, 1)
			n := f.effects.notifications[0]
			assert.Equal(t, notify.Success, n.Kind)
			assert.Equal(t, "Login successful", n.Title)
			assert.Equal(t, "Login successful", n.Description)
			assert.Equal(t, notify.DefaultAutoDismiss, n.AutoDismiss)
			assert.True(t, n.Dismissible)

			assert.Equal(t, []string{"T"}, f.store.stored)
			assert.Equal(t, 1, f.store.reads)
			assert.Equal(t, []string{tt.wantRoute}, f.effects.routes)
			assert.Equal(t, form.Idle, f.form.State())
		})
	}
}

func TestAuthService_AttemptLogin_UnauthorizedNotifiesServerMessage(t *testing.T) {
	// Arrange
	f := newFixture()
	f.provider.loginFunc = func(ctx context.Context, username, password string) (*api.LoginResponse, error) {
		return nil, &api.StatusError{Status: http.StatusUnauthorized, Message: "Invalid credentials"}
	}

	// Act
	outcome, err := f.service.AttemptLogin(context.Background(), f.form)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, Rejected{Status: http.StatusUnauthorized, Message: "Invalid credentials"}, outcome)
	require.Len(t, f.effects.notifications, 1)
	assert.Equal(t, notify.Error, f.effects.notifications[0].Kind)
	assert.Equal(t, "Login failed", f.effects.notifications[0].Title)
	assert.Equal(t, "Invalid credentials", f.effects.notifications[0].Description)
	assert.Empty(t, f.store.stored)
	assert.Empty(t, f.effects.routes)
	assert.Equal(t, form.Idle, f.form.State())
}

func TestAuthService_AttemptLogin_UnauthorizedWithoutMessage(t *testing.T) {
	f := newFixture()
	f.provider.loginFunc = func(ctx context.Context, username, password string) (*api.LoginResponse, error) {
		return nil, &api.StatusError{Status: http.StatusUnauthorized}
	}

	outcome, err := f.service.AttemptLogin(context.Background(), f.form)

	require.NoError(t, err)
	assert.IsType(t, Rejected{}, outcome)
	require.Len(t, f.effects.notifications, 1)
	assert.Equal(t, "", f.effects.notifications[0].Description)
}

func TestAuthService_AttemptLogin_NonOKResponseIsRejected(t *testing.T) {
	f := newFixture()
	f.provider.loginFunc = func(ctx context.Context, username, password string) (*api.LoginResponse, error) {
		return &api.LoginResponse{Status: http.StatusNoContent, Message: "Account not activated"}, nil
	}

	outcome, err := f.service.AttemptLogin(context.Background(), f.form)

	require.NoError(t, err)
	assert.Equal(t, Rejected{Status: http.StatusNoContent, Message: "Account not activated"}, outcome)
	require.Len(t, f.effects.notifications, 1)
	assert.Equal(t, "Account not activated", f.effects.notifications[0].Description)
	assert.Empty(t, f.store.stored)
	assert.Empty(t, f.effects.routes)
}

func TestAuthService_AttemptLogin_TransportFailureIsLoggedNotNotified(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "timeout", err: context.DeadlineExceeded},
		{name: "server error", err: &api.StatusError{Status: http.StatusInternalServerError}},
		{name: "connection refused", err: errors.New("dial tcp 127.0.0.1:3000: connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := newFixture()
			f.provider.loginFunc = func(ctx context.Context, username, password string) (*api.LoginResponse, error) {
				return nil, tt.err
			}

			// Act
			outcome, err := f.service.AttemptLogin(context.Background(), f.form)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, Failed{Cause: tt.err}, outcome)
			assert.Empty(t, f.effects.notifications)
			assert.Empty(t, f.store.stored)
			assert.Empty(t, f.effects.routes)
			assert.Equal(t, form.Idle, f.form.State())

			entries := f.logs.FilterMessage("login transport failure").All()
			require.Len(t, entries, 1)
			assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
		})
	}
}

func TestAuthService_AttemptLogin_TransportFailureNotice(t *testing.T) {
	f := newFixture(WithTransportFailureNotice(true))
	f.provider.loginFunc = func(ctx context.Context, username, password string) (*api.LoginResponse, error) {
		return nil, context.DeadlineExceeded
	}

	_, err := f.service.AttemptLogin(context.Background(), f.form)

	require.NoError(t, err)
	require.Len(t, f.effects.notifications, 1)
	assert.Equal(t, notify.Error, f.effects.notifications[0].Kind)
	assert.Equal(t, transportFailureMessage, f.effects.notifications[0].Description)
}

func TestAuthService_AttemptLogin_NormalizesUsernameOnly(t *testing.T) {
	// Arrange
	f := newFixture()
	f.form.SetUsername("User@Example")
	f.form.SetPassword("MiXeD Pass")

	// Act
	_, err := f.service.AttemptLogin(context.Background(), f.form)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "user@example", f.provider.lastUsername)
	assert.Equal(t, "MiXeD Pass", f.provider.lastPassword)
	username, _ := f.form.Values()
	assert.Equal(t, "User@Example", username, "the form field itself is not rewritten")
}

func TestAuthService_AttemptLogin_BusyDuringRequest(t *testing.T) {
	// Arrange
	f := newFixture()
	var busyDuringRequest bool
	f.provider.loginFunc = func(ctx context.Context, username, password string) (*api.LoginResponse, error) {
		busyDuringRequest = f.form.IsBusy()
		_, err := f.service.AttemptLogin(ctx, f.form)
		assert.ErrorIs(t, err, ErrInFlight, "a second submit during the request must be ignored")
		return &api.LoginResponse{Status: http.StatusOK, Message: "ok", Token: "T"}, nil
	}

	// Act
	_, err := f.service.AttemptLogin(context.Background(), f.form)

	// Assert
	require.NoError(t, err)
	assert.True(t, busyDuringRequest)
	assert.Equal(t, 1, f.provider.calls)
	assert.Equal(t, form.Idle, f.form.State())
}

func TestAuthService_AttemptLogin_DecodeFailureIsFatal(t *testing.T) {
	// Arrange
	f := newFixture()
	f.store.readErr = errors.New("token is malformed")

	// Act
	outcome, err := f.service.AttemptLogin(context.Background(), f.form)

	// Assert
	assert.ErrorIs(t, err, ErrTokenDecode)
	assert.IsType(t, Success{}, outcome)
	assert.Equal(t, []string{"mock-token"}, f.store.stored)
	assert.Empty(t, f.effects.routes, "must not navigate without a decoded payload")
	assert.Equal(t, form.Idle, f.form.State())
	assert.Len(t, f.logs.FilterMessage("failed to decode token").All(), 1)
}

func TestAuthService_AttemptLogin_SuccessWithoutTokenIsFatal(t *testing.T) {
	f := newFixture()
	f.provider.loginFunc = func(ctx context.Context, username, password string) (*api.LoginResponse, error) {
		return &api.LoginResponse{Status: http.StatusOK, Message: "Login successful"}, nil
	}

	_, err := f.service.AttemptLogin(context.Background(), f.form)

	assert.ErrorIs(t, err, ErrTokenDecode)
	assert.ErrorIs(t, err, token.ErrEmptyToken)
	assert.Empty(t, f.store.stored)
	assert.Empty(t, f.effects.notifications)
	assert.Empty(t, f.effects.routes)
	assert.Equal(t, form.Idle, f.form.State())
}

func TestAuthService_AttemptLogin_PersistFailure(t *testing.T) {
	f := newFixture()
	f.store.storeErr = errors.New("read-only file system")

	_, err := f.service.AttemptLogin(context.Background(), f.form)

	assert.ErrorIs(t, err, ErrTokenPersist)
	assert.Equal(t, 0, f.store.reads)
	assert.Empty(t, f.effects.routes)
	assert.Equal(t, form.Idle, f.form.State())
}

func TestAuthService_AttemptLogin_PanicStillClearsBusy(t *testing.T) {
	// Arrange
	f := newFixture()
	f.provider.loginFunc = func(ctx context.Context, username, password string) (*api.LoginResponse, error) {
		panic("transport bug")
	}

	// Act
	func() {
		defer func() { _ = recover() }()
		_, _ = f.service.AttemptLogin(context.Background(), f.form)
	}()

	// Assert
	assert.Equal(t, form.Idle, f.form.State())
}

func TestAuthService_AttemptLogin_ReenterableAfterResolution(t *testing.T) {
	// Arrange
	f := newFixture()
	attempt := 0
	f.provider.loginFunc = func(ctx context.Context, username, password string) (*api.LoginResponse, error) {
		attempt++
		if attempt == 1 {
			return nil, &api.StatusError{Status: http.StatusUnauthorized, Message: "Invalid credentials"}
		}
		return &api.LoginResponse{Status: http.StatusOK, Message: "Welcome", Token: "T2"}, nil
	}

	// Act
	first, err := f.service.AttemptLogin(context.Background(), f.form)
	require.NoError(t, err)
	second, err := f.service.AttemptLogin(context.Background(), f.form)
	require.NoError(t, err)

	// Assert
	assert.IsType(t, Rejected{}, first)
	assert.IsType(t, Success{}, second)
	assert.Len(t, f.effects.notifications, 2)
	assert.Equal(t, []string{"T2"}, f.store.stored)
}

func TestAuthService_BeginThenComplete(t *testing.T) {
	// Arrange
	f := newFixture()
	f.form.SetUsername("ALICE")

	// Act
	creds, err := f.service.Begin(f.form)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, Credentials{Username: "alice", Password: "secret"}, creds)
	assert.True(t, f.form.IsBusy(), "busy must be visible before the request starts")
	assert.Equal(t, 0, f.provider.calls)

	_, err = f.service.Complete(context.Background(), f.form, creds)
	require.NoError(t, err)
	assert.Equal(t, 1, f.provider.calls)
	assert.False(t, f.form.IsBusy())
}

func TestAuthService_TracesAttempts(t *testing.T) {
	// Arrange
	f := newFixture()
	f.store.payload = token.Payload{IsAdmin: true}

	// Act
	_, err := f.service.AttemptLogin(context.Background(), f.form)
	require.NoError(t, err)

	f.provider.loginFunc = func(ctx context.Context, username, password string) (*api.LoginResponse, error) {
		return nil, &api.StatusError{Status: http.StatusBadGateway}
	}
	_, err = f.service.AttemptLogin(context.Background(), f.form)
	require.NoError(t, err)

	// Assert
	require.Len(t, f.tracer.logins, 2)
	assert.Equal(t, "success", f.tracer.logins[0].Outcome)
	assert.Equal(t, http.StatusOK, f.tracer.logins[0].Status)
	assert.Equal(t, "failed", f.tracer.logins[1].Outcome)
	assert.Equal(t, http.StatusBadGateway, f.tracer.logins[1].Status)
	require.Len(t, f.tracer.navigations, 1)
	assert.Equal(t, route.Admin, f.tracer.navigations[0].ToRoute)
	require.Len(t, f.tracer.errors, 1)
	assert.Equal(t, "auth", f.tracer.errors[0].Component)
}

func TestCredentials_Validate(t *testing.T) {
	assert.NoError(t, Credentials{Username: "a", Password: "b"}.Validate())
	assert.ErrorIs(t, Credentials{Password: "b"}.Validate(), ErrValidationRejected)
	assert.ErrorIs(t, Credentials{Username: "a"}.Validate(), ErrValidationRejected)
}

func TestNewAuthService_Defaults(t *testing.T) {
	// Arrange
	provider := &MockAuthProvider{}
	store := &MockTokenStore{}
	fx := &effects{}

	// Act
	service := NewAuthService(provider, store, fx, fx)

	// Assert
	assert.NotNil(t, service.logger)
	assert.NotNil(t, service.tracer)
	assert.False(t, service.notifyTransportFailures)
	assert.Same(t, provider, service.authProvider)
}
