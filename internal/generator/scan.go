package generator

import (
	"fmt"

	"github.com/pandey-solutions/saves/internal/domain/dashboard"
)

// ScanSteps returns the analysis log replayed before the dashboard appears
func ScanSteps(accountID string) []dashboard.ScanStep {
	return []dashboard.ScanStep{
		{Message: fmt.Sprintf("Establishing secure session with %s...", accountID), DurationMs: 1200},
		{Message: "Validating AssumeRole permissions...", DurationMs: 1000},
		{Message: "Scanning active regions (us-east-1, us-west-2, eu-central-1)...", DurationMs: 1500},
		{Message: "Querying Cost Explorer API for last 6 months...", DurationMs: 2000},
		{Message: "Analyzing EC2 utilization metrics (CloudWatch)...", DurationMs: 1800},
		{Message: "Checking for unattached EBS volumes...", DurationMs: 800},
		{Message: "Identifying idle RDS instances...", DurationMs: 1200},
		{Message: "Aggregating findings...", DurationMs: 1000},
	}
}
