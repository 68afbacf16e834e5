package client

import (
	"context"
	"net/url"
)

// DashboardService handles dashboard calls
type DashboardService struct {
	client *Client
}

// DashboardOptions selects the dashboard seed. With neither set the server
// uses the role persisted on the session.
type DashboardOptions struct {
	RoleArn string
	Seed    string
}

func (o *DashboardOptions) query() string {
	if o == nil {
		return ""
	}
	q := url.Values{}
	if o.RoleArn != "" {
		q.Set("roleArn", o.RoleArn)
	}
	if o.Seed != "" {
		q.Set("seed", o.Seed)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// Get returns the generated dashboard
func (s *DashboardService) Get(ctx context.Context, opts *DashboardOptions) (*Dashboard, error) {
	var d Dashboard
	if err := s.client.doRequest(ctx, "GET", "/api/v1/dashboard"+opts.query(), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Scan returns the simulated analysis log
func (s *DashboardService) Scan(ctx context.Context, opts *DashboardOptions) (*Scan, error) {
	var scan Scan
	if err := s.client.doRequest(ctx, "GET", "/api/v1/dashboard/scan"+opts.query(), nil, &scan); err != nil {
		return nil, err
	}
	return &scan, nil
}

// Demo returns the public showcase dataset
func (s *DashboardService) Demo(ctx context.Context) (*Showcase, error) {
	var sc Showcase
	if err := s.client.doRequest(ctx, "GET", "/api/v1/demo", nil, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
