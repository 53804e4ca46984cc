package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"binotify-cli/api"
	"binotify-cli/notify"
	"binotify-cli/route"
	"binotify-cli/token"
	"binotify-cli/tracing"

	"go.uber.org/zap"
)

var (
	// ErrValidationRejected is returned when submit is attempted with an empty field
	ErrValidationRejected = errors.New("username and password are required")

	// ErrInFlight is returned when submit is attempted while a login is outstanding
	ErrInFlight = errors.New("login already in progress")

	// ErrTokenDecode is returned when the token issued by a successful login cannot be decoded
	ErrTokenDecode = errors.New("failed to decode issued token")

	// ErrTokenPersist is returned when the token issued by a successful login cannot be stored
	ErrTokenPersist = errors.New("failed to persist issued token")
)

const (
	successTitle = "Login successful"
	failureTitle = "Login failed"

	transportFailureMessage = "Unable to reach the server. Please try again later."
)

// AuthProvider interface for the authentication endpoint
type AuthProvider interface {
	Login(ctx context.Context, username, password string) (*api.LoginResponse, error)
}

// TokenStore interface for persisting the issued token and reading its payload back
type TokenStore interface {
	Store(raw string) error
	Read() (token.Payload, error)
}

// Form is the submission gate the service drives
type Form interface {
	CanSubmit() bool
	IsBusy() bool
	TryBegin() bool
	Finish()
	Values() (username, password string)
}

// Credentials are the values submitted to the authentication endpoint
type Credentials struct {
	Username string
	Password string
}

// Normalize lower-cases the username. The password is left untouched.
func (c Credentials) Normalize() Credentials {
	c.Username = strings.ToLower(c.Username)
	return c
}

// Validate reports which field, if any, blocks submission
func (c Credentials) Validate() error {
	if c.Username == "" {
		return fmt.Errorf("%w: username is empty", ErrValidationRejected)
	}
	if c.Password == "" {
		return fmt.Errorf("%w: password is empty", ErrValidationRejected)
	}
	return nil
}

// AuthService runs login attempts and performs their side effects
type AuthService struct {
	authProvider AuthProvider
	tokenStore   TokenStore
	notifier     notify.Notifier
	navigator    route.Navigator
	logger       *zap.Logger
	tracer       tracing.Tracer

	notifyTransportFailures bool
}

// Option configures an AuthService
type Option func(*AuthService)

// WithLogger sets the logger used for the attempt lifecycle
func WithLogger(logger *zap.Logger) Option {
	return func(s *AuthService) {
		s.logger = logger
	}
}

// WithTracer records attempts and navigations to the given tracer
func WithTracer(tracer tracing.Tracer) Option {
	return func(s *AuthService) {
		s.tracer = tracer
	}
}

// WithTransportFailureNotice shows an error notification for transport
// failures too, instead of only logging them
func WithTransportFailureNotice(enabled bool) Option {
	return func(s *AuthService) {
		s.notifyTransportFailures = enabled
	}
}

// NewAuthService creates a new authentication service
func NewAuthService(authProvider AuthProvider, tokenStore TokenStore, notifier notify.Notifier, navigator route.Navigator, opts ...Option) *AuthService {
	s := &AuthService{
		authProvider: authProvider,
		tokenStore:   tokenStore,
		notifier:     notifier,
		navigator:    navigator,
		logger:       zap.NewNop(),
		tracer:       tracing.NewNoOpTracer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AttemptLogin performs the complete login flow for the values held by form
func (s *AuthService) AttemptLogin(ctx context.Context, form Form) (Outcome, error) {
	creds, err := s.Begin(form)
	if err != nil {
		return nil, err
	}
	return s.Complete(ctx, form, creds)
}

// Begin checks the gate and moves form to InFlight. Nothing is sent yet, so
// callers can render the loading state before the request starts.
func (s *AuthService) Begin(form Form) (Credentials, error) {
	if form.IsBusy() {
		s.logger.Debug("submit ignored, login in flight")
		return Credentials{}, ErrInFlight
	}
	if !form.CanSubmit() {
		username, password := form.Values()
		err := Credentials{Username: username, Password: password}.Validate()
		if err == nil {
			err = ErrValidationRejected
		}
		s.logger.Debug("submit ignored", zap.Error(err))
		return Credentials{}, err
	}
	if !form.TryBegin() {
		return Credentials{}, ErrInFlight
	}

	username, password := form.Values()
	return Credentials{Username: username, Password: password}.Normalize(), nil
}

// Complete issues the request for creds, applies the outcome and returns form to Idle.
// The returned error is non-nil only for failures after a successful login
// (ErrTokenPersist, ErrTokenDecode); rejections and transport failures are outcomes.
func (s *AuthService) Complete(ctx context.Context, form Form, creds Credentials) (Outcome, error) {
	defer form.Finish()

	start := time.Now()
	resp, reqErr := s.authProvider.Login(ctx, creds.Username, creds.Password)
	outcome, err := s.apply(Decide(resp, reqErr))
	s.trackAttempt(outcome, err, time.Since(start))

	return outcome, err
}

// apply performs the notify/persist/navigate side effects of an outcome
func (s *AuthService) apply(outcome Outcome) (Outcome, error) {
	switch o := outcome.(type) {
	case Success:
		return s.applySuccess(o)

	case Rejected:
		s.logger.Info("login rejected", zap.Int("status", o.Status), zap.String("message", o.Message))
		s.notifier.Notify(notify.New(notify.Error, failureTitle, o.Message))
		return o, nil

	case Failed:
		s.logger.Error("login transport failure", zap.Error(o.Cause))
		if s.notifyTransportFailures {
			s.notifier.Notify(notify.New(notify.Error, failureTitle, transportFailureMessage))
		}
		return o, nil

	default:
		return outcome, fmt.Errorf("unknown login outcome %T", outcome)
	}
}

func (s *AuthService) applySuccess(o Success) (Outcome, error) {
	if o.Token == "" {
		err := fmt.Errorf("%w: %w", ErrTokenDecode, token.ErrEmptyToken)
		s.logger.Error("login succeeded without a token", zap.Error(err))
		return o, err
	}

	s.notifier.Notify(notify.New(notify.Success, successTitle, o.Message))

	if err := s.tokenStore.Store(o.Token); err != nil {
		err = fmt.Errorf("%w: %w", ErrTokenPersist, err)
		s.logger.Error("failed to persist token", zap.Error(err))
		return o, err
	}

	payload, err := s.tokenStore.Read()
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrTokenDecode, err)
		s.logger.Error("failed to decode token", zap.Error(err))
		return o, err
	}

	o.IsAdmin = payload.IsAdmin
	o.Route = route.For(payload.IsAdmin)
	s.logger.Info("login succeeded", zap.Bool("is_admin", o.IsAdmin), zap.String("route", o.Route))

	s.navigator.Navigate(o.Route)
	s.track(s.tracer.TrackNavigation(*tracing.NewNavigationEvent(s.tracer.SessionID(), route.Login, o.Route, "login_success")))

	return o, nil
}

func (s *AuthService) trackAttempt(outcome Outcome, err error, elapsed time.Duration) {
	s.track(s.tracer.TrackLogin(*tracing.NewLoginEvent(s.tracer.SessionID(), outcome.Kind(), statusOf(outcome), elapsed)))

	var cause error
	switch o := outcome.(type) {
	case Failed:
		cause = o.Cause
	default:
		cause = err
	}
	if cause != nil {
		s.track(s.tracer.TrackError(*tracing.NewErrorEvent(s.tracer.SessionID(), cause.Error(), "auth")))
	}
}

func (s *AuthService) track(err error) {
	if err != nil {
		s.logger.Debug("failed to record trace event", zap.Error(err))
	}
}
