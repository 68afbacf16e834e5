package dto

import (
	"github.com/pandey-solutions/saves/internal/domain/connection"
)

// RoleArnRequest carries a role ARN for connect and validate
type RoleArnRequest struct {
	RoleArn string `json:"roleArn" validate:"required"`
}

// ConnectResponse is returned after a successful connection
type ConnectResponse struct {
	Status      connection.Status `json:"status"`
	RoleArn     string            `json:"roleArn"`
	AccountID   string            `json:"accountId"`
	PersistedTo string            `json:"persistedTo"`
	View        ViewStateDTO      `json:"view"`
}

// ValidateResponse reports whether an ARN would pass the connect checks
type ValidateResponse struct {
	Valid     bool                `json:"valid"`
	AccountID string              `json:"accountId,omitempty"`
	Failure   *connection.Failure `json:"failure,omitempty"`
}

// ToValidateResponse builds the validation outcome for roleArn
func ToValidateResponse(roleArn string, failure *connection.Failure) ValidateResponse {
	if failure != nil {
		return ValidateResponse{Failure: failure}
	}
	return ValidateResponse{Valid: true, AccountID: connection.AccountID(roleArn)}
}
