package auth

import (
	"errors"
	"net/http"

	"binotify-cli/api"
)

// Outcome is the resolution of a login attempt: Success, Rejected or Failed
type Outcome interface {
	// Kind returns "success", "rejected" or "failed"
	Kind() string
}

// Success means the server accepted the credentials and issued a token.
// IsAdmin and Route are filled in once the token has been persisted and decoded.
type Success struct {
	Token   string
	Message string
	IsAdmin bool
	Route   string
}

// Rejected means the server explicitly refused the credentials
type Rejected struct {
	Status  int
	Message string
}

// Failed means no authentication decision was obtained (network, timeout, 5xx)
type Failed struct {
	Cause error
}

func (Success) Kind() string  { return "success" }
func (Rejected) Kind() string { return "rejected" }
func (Failed) Kind() string   { return "failed" }

// errNoResponse is the cause reported when a provider returns neither a response nor an error
var errNoResponse = errors.New("no response from authentication server")

// Decide maps the transport result of POST /login to an Outcome. It performs no I/O.
func Decide(resp *api.LoginResponse, err error) Outcome {
	if err != nil {
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) && statusErr.Status == http.StatusUnauthorized {
			return Rejected{Status: statusErr.Status, Message: statusErr.Message}
		}
		return Failed{Cause: err}
	}

	if resp == nil {
		return Failed{Cause: errNoResponse}
	}

	if resp.Status == http.StatusOK {
		return Success{Token: resp.Token, Message: resp.Message}
	}
	return Rejected{Status: resp.Status, Message: resp.Message}
}

// statusOf returns the HTTP status carried by an outcome, or 0
func statusOf(outcome Outcome) int {
	switch o := outcome.(type) {
	case Success:
		return http.StatusOK
	case Rejected:
		return o.Status
	case Failed:
		var statusErr *api.StatusError
		if errors.As(o.Cause, &statusErr) {
			return statusErr.Status
		}
	}
	return 0
}
