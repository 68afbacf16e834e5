package services

import (
	"context"

	"github.com/pandey-solutions/saves/internal/domain/connection"
	"github.com/pandey-solutions/saves/internal/domain/dashboard"
	"github.com/pandey-solutions/saves/internal/domain/session"
	"github.com/pandey-solutions/saves/internal/generator"
	"github.com/pandey-solutions/saves/internal/pkg/logger"
	"github.com/pandey-solutions/saves/internal/pkg/metrics"
)

// DashboardService serves generated and showcase dashboard data
type DashboardService struct {
	sessions session.Service
	logger   *logger.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(sessions session.Service, log *logger.Logger) *DashboardService {
	return &DashboardService{
		sessions: sessions,
		logger:   log,
	}
}

// ResolveSeed picks the dataset seed: an explicit seed wins, then the role
// ARN's account, then the role persisted on the session, then "UNKNOWN".
func (s *DashboardService) ResolveSeed(ctx context.Context, local session.LocalStore, sessionID, roleArn, seed string) string {
	if seed != "" {
		return seed
	}
	if roleArn == "" && sessionID != "" {
		roleArn = s.sessions.RoleArn(ctx, local, sessionID)
	}
	return generator.AccountSeed(roleArn)
}

// Generate returns the dataset for seed
func (s *DashboardService) Generate(seed string) dashboard.Dataset {
	d := generator.Generate(seed)
	metrics.RecordDatasetGenerated("account")
	s.logger.WithFields(map[string]interface{}{
		"seed":            d.Seed,
		"recommendations": len(d.Recommendations),
	}).Debug("Dashboard dataset generated")
	return d
}

// ScanSteps returns the analysis log for seed
func (s *DashboardService) ScanSteps(seed string) []dashboard.ScanStep {
	if seed == "" {
		seed = connection.UnknownAccount
	}
	return generator.ScanSteps(seed)
}

// Showcase returns the public demo dataset
func (s *DashboardService) Showcase() dashboard.Showcase {
	metrics.RecordDatasetGenerated("showcase")
	return generator.Showcase()
}
