package dashboard

import "time"

// Complexity values for generated recommendations
const (
	ComplexityEasy   = "Easy"
	ComplexityMedium = "Medium"
)

// MonthlyRecord is one point on the spend history chart
type MonthlyRecord struct {
	Month     string `json:"month"`
	Actual    int    `json:"actual"`
	Optimized int    `json:"optimized"`
	Waste     int    `json:"waste"`
}

// Recommendation is a single generated savings opportunity
type Recommendation struct {
	ID         int    `json:"id"`
	Service    string `json:"service"`
	Type       string `json:"type"`
	Resource   string `json:"resource"`
	Savings    int    `json:"savings"`
	Complexity string `json:"complexity"`
}

// Dataset is the deterministic synthetic dashboard for one seed
type Dataset struct {
	Seed            string           `json:"seed"`
	TotalSpend      int              `json:"totalSpend"`
	WastedSpend     int              `json:"wastedSpend"`
	WastePercentage float64          `json:"wastePercentage"`
	History         []MonthlyRecord  `json:"history"`
	Recommendations []Recommendation `json:"recommendations"`
	Score           int              `json:"score"`
}

// PotentialSavings sums the monthly savings of all recommendations
func (d *Dataset) PotentialSavings() int {
	total := 0
	for _, r := range d.Recommendations {
		total += r.Savings
	}
	return total
}

// ScanStep is one line of the simulated account analysis log
type ScanStep struct {
	Message    string `json:"message"`
	DurationMs int64  `json:"durationMs"`
}

// Duration returns how long the step is displayed
func (s ScanStep) Duration() time.Duration {
	return time.Duration(s.DurationMs) * time.Millisecond
}

// SavingsPoint is a month on the showcase savings chart
type SavingsPoint struct {
	Month     string `json:"month"`
	Actual    int    `json:"actual"`
	Optimized int    `json:"optimized"`
}

// ShowcaseRecommendation is a curated recommendation on the live demo page
type ShowcaseRecommendation struct {
	ID       int    `json:"id"`
	Service  string `json:"service"`
	Type     string `json:"type"`
	Resource string `json:"resource"`
	Savings  int    `json:"savings"`
	Risk     string `json:"risk"`
	Status   string `json:"status"`
}

// SpendSlice is one segment of the spend breakdown chart
type SpendSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// BreakdownRow is a labelled share in the savings breakdown list
type BreakdownRow struct {
	Label   string `json:"label"`
	Percent int    `json:"percent"`
}

// Showcase is the fixed dataset behind the public demo page
type Showcase struct {
	Savings               []SavingsPoint           `json:"savings"`
	Recommendations       []ShowcaseRecommendation `json:"recommendations"`
	SpendBreakdown        []SpendSlice             `json:"spendBreakdown"`
	SavingsBreakdown      []BreakdownRow           `json:"savingsBreakdown"`
	TotalPotentialSavings int                      `json:"totalPotentialSavings"`
	OptimizationScore     int                      `json:"optimizationScore"`
	TimeRanges            []string                 `json:"timeRanges"`
}
