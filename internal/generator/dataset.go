package generator

import (
	"fmt"
	"math"
	"strconv"

	"github.com/pandey-solutions/saves/internal/domain/connection"
	"github.com/pandey-solutions/saves/internal/domain/dashboard"
)

var (
	// Months are fixed labels and do not follow the calendar
	Months = []string{"Aug", "Sep", "Oct", "Nov", "Dec", "Jan"}

	Services = []string{"EC2", "RDS", "EBS", "S3", "Lambda", "Elasticache"}

	RecommendationTypes = []string{"Rightsizing", "Idle", "Unattached", "Lifecycle", "Modernize"}
)

const (
	minBaseSpend   = 2000
	baseSpendRange = 8000
	minWaste       = 0.15
	wasteRange     = 0.3
	minRecs        = 3
	recsRange      = 5
	minSavings     = 50
	savingsRange   = 500
	minScore       = 60
	scoreRange     = 35
)

// AccountSeed returns the seed used for an account's dashboard: the account
// segment of the role ARN, or "UNKNOWN".
func AccountSeed(roleArn string) string {
	return connection.AccountID(roleArn)
}

// Generate builds the dashboard dataset for seed. It is a pure function. An
// empty seed is treated as "UNKNOWN".
func Generate(seed string) dashboard.Dataset {
	if seed == "" {
		seed = connection.UnknownAccount
	}

	baseSpend := minBaseSpend + floor(Rand(seed+"spend")*baseSpendRange)
	waste := minWaste + Rand(seed+"waste")*wasteRange
	wasted := floor(float64(baseSpend) * waste)

	history := make([]dashboard.MonthlyRecord, len(Months))
	for i, month := range Months {
		variance := 0.9 + Rand(seed+strconv.Itoa(i))*0.2
		spend := floor(float64(baseSpend) * variance)
		monthlyWaste := floor(float64(spend) * waste)
		history[i] = dashboard.MonthlyRecord{
			Month:     month,
			Actual:    spend,
			Optimized: spend - monthlyWaste,
			Waste:     monthlyWaste,
		}
	}

	numRecs := minRecs + floor(Rand(seed+"recs")*recsRange)
	recs := make([]dashboard.Recommendation, numRecs)
	for i := range recs {
		prefix := seed + strconv.Itoa(i)

		complexity := dashboard.ComplexityMedium
		if Rand(prefix+"comp") > 0.5 {
			complexity = dashboard.ComplexityEasy
		}

		recs[i] = dashboard.Recommendation{
			ID:         i,
			Service:    Services[floor(Rand(prefix+"svc")*float64(len(Services)))],
			Type:       RecommendationTypes[floor(Rand(prefix+"type")*float64(len(RecommendationTypes)))],
			Resource:   fmt.Sprintf("res-%d", floor(Rand(prefix+"id")*10000)),
			Savings:    minSavings + floor(Rand(prefix+"save")*savingsRange),
			Complexity: complexity,
		}
	}

	return dashboard.Dataset{
		Seed:            seed,
		TotalSpend:      baseSpend,
		WastedSpend:     wasted,
		WastePercentage: waste,
		History:         history,
		Recommendations: recs,
		Score:           minScore + floor(Rand(seed+"score")*scoreRange),
	}
}

func floor(v float64) int {
	return int(math.Floor(v))
}
