package dto

import "github.com/pandey-solutions/saves/internal/domain/dashboard"

// DashboardDTO is a generated account dashboard
type DashboardDTO struct {
	dashboard.Dataset
	PotentialSavings int `json:"potentialSavings"`
}

// ToDashboardDTO converts a dataset to a DTO
func ToDashboardDTO(d dashboard.Dataset) DashboardDTO {
	return DashboardDTO{
		Dataset:          d,
		PotentialSavings: d.PotentialSavings(),
	}
}

// ScanDTO is the simulated analysis log for one account
type ScanDTO struct {
	AccountID       string               `json:"accountId"`
	Steps           []dashboard.ScanStep `json:"steps"`
	TotalDurationMs int64                `json:"totalDurationMs"`
}

// ToScanDTO converts scan steps to a DTO
func ToScanDTO(accountID string, steps []dashboard.ScanStep) ScanDTO {
	var total int64
	for _, s := range steps {
		total += s.DurationMs
	}
	return ScanDTO{
		AccountID:       accountID,
		Steps:           steps,
		TotalDurationMs: total,
	}
}
