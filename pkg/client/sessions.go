package client

import "context"

// SessionService handles session bootstrap calls
type SessionService struct {
	client *Client
}

// Acquire resolves this client's session, creating it on first use. The
// returned ids are remembered in the client's store.
func (s *SessionService) Acquire(ctx context.Context) (*Session, error) {
	var sess Session
	if err := s.client.doRequest(ctx, "POST", "/api/v1/session", nil, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Get returns the session with its persisted role ARN
func (s *SessionService) Get(ctx context.Context) (*Session, error) {
	var sess Session
	if err := s.client.doRequest(ctx, "GET", "/api/v1/session", nil, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Connect submits roleArn for verification. Failed connections return an
// *APIError whose Failure() carries the banner.
func (c *Client) Connect(ctx context.Context, roleArn string) (*ConnectResult, error) {
	var result ConnectResult
	body := map[string]string{"roleArn": roleArn}
	if err := c.doRequest(ctx, "POST", "/api/v1/connect", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Validate checks roleArn without connecting
func (c *Client) Validate(ctx context.Context, roleArn string) (*Validation, error) {
	var v Validation
	body := map[string]string{"roleArn": roleArn}
	if err := c.doRequest(ctx, "POST", "/api/v1/validate", body, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
