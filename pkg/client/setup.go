package client

import (
	"context"
	"net/url"
)

// SetupService handles role provisioning calls
type SetupService struct {
	client *Client
}

// Template downloads the CloudFormation template YAML
func (s *SetupService) Template(ctx context.Context) ([]byte, error) {
	req, err := s.client.newRequest(ctx, "GET", "/api/v1/setup/template", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/x-yaml")

	_, body, err := s.client.send(req)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// Script returns the CloudShell script for this client's session
func (s *SetupService) Script(ctx context.Context) (*Script, error) {
	var script Script
	if err := s.client.doRequest(ctx, "GET", "/api/v1/setup/script", nil, &script); err != nil {
		return nil, err
	}
	return &script, nil
}

// Instructions returns the setup steps for method. An empty method uses
// the one selected in the session's view state.
func (s *SetupService) Instructions(ctx context.Context, method string) (*Instructions, error) {
	path := "/api/v1/setup/instructions"
	if method != "" {
		path += "?method=" + url.QueryEscape(method)
	}

	var in Instructions
	if err := s.client.doRequest(ctx, "GET", path, nil, &in); err != nil {
		return nil, err
	}
	return &in, nil
}
