// Package client is a Go SDK for the Saves HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Session header names. The server echoes them on every response that
// resolves a session.
const (
	HeaderSessionID  = "X-Session-ID"
	HeaderExternalID = "X-External-ID"
	HeaderRoleArn    = "X-Role-ARN"
)

// Storage keys used with SessionStore
const (
	KeyExternalID = "spotsave_external_id"
	KeySessionID  = "spotsave_session_id"
	KeyRoleArn    = "spotsave_role_arn"
)

var headerKeys = map[string]string{
	HeaderSessionID:  KeySessionID,
	HeaderExternalID: KeyExternalID,
	HeaderRoleArn:    KeyRoleArn,
}

// Doer executes HTTP requests. *http.Client and retrying clients satisfy it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// SessionStore keeps the session identity between calls, the way a browser
// keeps it in local storage. Get returns "" for absent keys.
type SessionStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Client is the main Saves API client
type Client struct {
	baseURL    string
	httpClient Doer
	store      SessionStore
}

// Config holds the client configuration
type Config struct {
	BaseURL    string        // API base URL (e.g., "http://localhost:8080")
	Timeout    time.Duration // HTTP client timeout (default: 30s)
	HTTPClient Doer          // Optional custom HTTP client
	Store      SessionStore  // Optional identity store (default: in memory)
}

// NewClient creates a new Saves API client
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
		}
	}

	store := cfg.Store
	if store == nil {
		store = NewMemoryStore()
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		store:      store,
	}
}

// envelope is the API response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *APIError       `json:"error,omitempty"`
}

// newRequest builds a request carrying the stored session headers
func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	for header, key := range headerKeys {
		if v, err := c.store.Get(key); err == nil && v != "" {
			req.Header.Set(header, v)
		}
	}

	return req, nil
}

// send performs the request, remembers echoed session headers and returns
// the raw body of a successful response
func (c *Client) send(req *http.Request) (*http.Response, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	for header, key := range headerKeys {
		if v := resp.Header.Get(header); v != "" {
			// Best effort: the identity survives in server-side state anyway
			_ = c.store.Set(key, v)
		}
	}

	if resp.StatusCode >= 400 {
		var env envelope
		if err := json.Unmarshal(respBody, &env); err != nil || env.Error == nil {
			return resp, nil, &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
		}
		env.Error.StatusCode = resp.StatusCode
		return resp, nil, env.Error
	}

	return resp, respBody, nil
}

// doRequest performs a JSON request and decodes the envelope's data into result
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	_, respBody, err := c.send(req)
	if err != nil {
		return err
	}

	if result == nil || len(respBody) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, result); err != nil {
		return fmt.Errorf("failed to parse response data: %w", err)
	}
	return nil
}

// Sessions returns the session service
func (c *Client) Sessions() *SessionService {
	return &SessionService{client: c}
}

// Views returns the view state service
func (c *Client) Views() *ViewService {
	return &ViewService{client: c}
}

// Dashboards returns the dashboard service
func (c *Client) Dashboards() *DashboardService {
	return &DashboardService{client: c}
}

// Setup returns the role provisioning service
func (c *Client) Setup() *SetupService {
	return &SetupService{client: c}
}
