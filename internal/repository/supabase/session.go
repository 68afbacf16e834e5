// Package supabase stores sessions in a Supabase table through its PostgREST API.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gojek/heimdall/v7"
	"github.com/gojek/heimdall/v7/httpclient"

	"github.com/pandey-solutions/saves/internal/config"
	"github.com/pandey-solutions/saves/internal/domain/session"
	"github.com/pandey-solutions/saves/internal/pkg/errors"
)

// Doer executes HTTP requests
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// SessionRepository implements session.Repository against a PostgREST table
type SessionRepository struct {
	client  Doer
	baseURL string
	apiKey  string
	table   string
}

// row is the wire shape of a sessions row
type row struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id"`
	RoleArn    *string   `json:"role_arn"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (r row) toSession() *session.Session {
	return &session.Session{
		ID:         r.ID,
		ExternalID: r.ExternalID,
		RoleArn:    r.RoleArn,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// NewClient builds the retrying HTTP client used for the session table
func NewClient(cfg config.SessionStoreConfig) *httpclient.Client {
	backoff := heimdall.NewConstantBackoff(100*time.Millisecond, 50*time.Millisecond)

	return httpclient.NewClient(
		httpclient.WithHTTPTimeout(cfg.Timeout),
		httpclient.WithRetryCount(cfg.RetryCount),
		httpclient.WithRetrier(heimdall.NewRetrier(backoff)),
	)
}

// NewSessionRepository creates a repository for the configured project
func NewSessionRepository(client Doer, cfg config.SessionStoreConfig) *SessionRepository {
	return &SessionRepository{
		client:  client,
		baseURL: strings.TrimRight(cfg.SupabaseURL, "/"),
		apiKey:  cfg.SupabaseAnonKey,
		table:   cfg.SupabaseTable,
	}
}

// FindByID retrieves a session by ID
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*session.Session, error) {
	q := url.Values{}
	q.Set("id", "eq."+id)
	q.Set("select", "*")

	var rows []row
	if err := r.do(ctx, http.MethodGet, q, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.NotFound("Session")
	}
	return rows[0].toSession(), nil
}

// Insert creates a session row. The session ID is assigned by the table default.
func (r *SessionRepository) Insert(ctx context.Context, externalID string) (*session.Session, error) {
	body := []map[string]string{{"external_id": externalID}}

	var rows []row
	if err := r.do(ctx, http.MethodPost, nil, body, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 || rows[0].ID == "" {
		return nil, errors.New(errors.ErrCodeSessionStoreUnavailable, "Session store returned no row", http.StatusBadGateway)
	}
	return rows[0].toSession(), nil
}

// UpdateRole attaches a role ARN to an existing session
func (r *SessionRepository) UpdateRole(ctx context.Context, id, roleArn string) error {
	q := url.Values{}
	q.Set("id", "eq."+id)

	body := map[string]interface{}{
		"role_arn":   roleArn,
		"updated_at": time.Now().UTC(),
	}

	var rows []row
	if err := r.do(ctx, http.MethodPatch, q, body, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors.NotFound("Session")
	}
	return nil
}

func (r *SessionRepository) do(ctx context.Context, method string, query url.Values, body, out interface{}) error {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", r.baseURL, r.table)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Internal("Failed to encode session request", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.Internal("Failed to build session request", err)
	}
	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		return errors.SessionStoreUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return errors.SessionStoreUnavailable(fmt.Errorf("%s %s: status %d: %s", method, r.table, resp.StatusCode, strings.TrimSpace(string(msg))))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.SessionStoreUnavailable(fmt.Errorf("decode %s response: %w", r.table, err))
	}
	return nil
}
