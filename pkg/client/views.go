package client

import (
	"context"
	"net/url"
)

// View actions accepted by Dispatch
const (
	ActionStart   = "start"
	ActionDemo    = "demo"
	ActionHome    = "home"
	ActionBack    = "back"
	ActionDismiss = "dismiss"
	ActionMethod  = "method"
)

// ViewService handles view state calls
type ViewService struct {
	client *Client
}

// Get returns the current view state
func (s *ViewService) Get(ctx context.Context) (*ViewState, error) {
	var st ViewState
	if err := s.client.doRequest(ctx, "GET", "/api/v1/view", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Dispatch applies a navigation action
func (s *ViewService) Dispatch(ctx context.Context, action string) (*ViewState, error) {
	var st ViewState
	if err := s.client.doRequest(ctx, "POST", "/api/v1/view/"+url.PathEscape(action), nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// SelectMethod chooses the provisioning method shown in the wizard
func (s *ViewService) SelectMethod(ctx context.Context, method string) (*ViewState, error) {
	var st ViewState
	body := map[string]string{"method": method}
	if err := s.client.doRequest(ctx, "POST", "/api/v1/view/"+ActionMethod, body, &st); err != nil {
		return nil, err
	}
	return &st, nil
}
