package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxErrorBody bounds how much of a failed response is kept for diagnostics
const maxErrorBody = 4 << 10

// Client represents the authentication API client
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// LoginRequest is the body of POST /login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is a reply the transport accepted as a normal response
type LoginResponse struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

// StatusError is returned when the server answers with a status the
// transport does not accept as a normal response
type StatusError struct {
	Status  int
	Message string
	Body    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error: %d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
	}
	return fmt.Sprintf("API error: %d %s", e.Status, http.StatusText(e.Status))
}

// NewClient creates a new API client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the URL requests are issued against
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login submits credentials to the authentication endpoint. Credentials are
// sent exactly as given; normalization is the caller's concern.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	data, err := json.Marshal(LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newStatusError(resp)
	}

	var loginResp LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	loginResp.Status = resp.StatusCode

	return &loginResp, nil
}

// newStatusError builds a StatusError, reading the message field when the body has one
func newStatusError(resp *http.Response) *StatusError {
	statusErr := &StatusError{Status: resp.StatusCode}

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return statusErr
	}
	statusErr.Body = string(bodyBytes)

	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(bodyBytes, &body) == nil {
		statusErr.Message = body.Message
	}
	return statusErr
}
