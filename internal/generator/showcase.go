package generator

import "github.com/pandey-solutions/saves/internal/domain/dashboard"

// Showcase returns the fixed dataset shown on the public demo page
func Showcase() dashboard.Showcase {
	return dashboard.Showcase{
		Savings: []dashboard.SavingsPoint{
			{Month: "Jan", Actual: 4200, Optimized: 3100},
			{Month: "Feb", Actual: 4350, Optimized: 3150},
			{Month: "Mar", Actual: 4100, Optimized: 3050},
			{Month: "Apr", Actual: 4800, Optimized: 3100},
			{Month: "May", Actual: 5100, Optimized: 3200},
			{Month: "Jun", Actual: 5400, Optimized: 3250},
		},
		Recommendations: []dashboard.ShowcaseRecommendation{
			{ID: 1, Service: "EC2", Type: "Rightsizing", Resource: "i-0ab12... (m5.2xlarge)", Savings: 345, Risk: "Low", Status: "Open"},
			{ID: 2, Service: "EBS", Type: "Unattached", Resource: "vol-098... (500GB gp2)", Savings: 50, Risk: "None", Status: "Open"},
			{ID: 3, Service: "RDS", Type: "Idle", Resource: "db-staging-01", Savings: 120, Risk: "Medium", Status: "Open"},
			{ID: 4, Service: "S3", Type: "Lifecycle", Resource: "logs-bucket-legacy", Savings: 85, Risk: "Low", Status: "Open"},
		},
		SpendBreakdown: []dashboard.SpendSlice{
			{Name: "EC2", Value: 450, Color: "#059669"},
			{Name: "EBS", Value: 300, Color: "#10b981"},
			{Name: "RDS", Value: 200, Color: "#34d399"},
			{Name: "Other", Value: 150, Color: "#a7f3d0"},
		},
		SavingsBreakdown: []dashboard.BreakdownRow{
			{Label: "Compute (EC2)", Percent: 45},
			{Label: "Storage (EBS)", Percent: 25},
			{Label: "Database (RDS)", Percent: 15},
		},
		TotalPotentialSavings: 2150,
		OptimizationScore:     64,
		TimeRanges:            []string{"1M", "3M", "6M", "1Y"},
	}
}
