package dto

import "github.com/pandey-solutions/saves/internal/domain/session"

// SessionDTO is the resolved wizard identity
// Uses camelCase for frontend compatibility
type SessionDTO struct {
	SessionID  string `json:"sessionId"`
	ExternalID string `json:"externalId"`
	Source     string `json:"source"`
	RoleArn    string `json:"roleArn,omitempty"`
}

// ToSessionDTO converts an identity and its persisted role to a DTO
func ToSessionDTO(id session.Identity, roleArn string) SessionDTO {
	return SessionDTO{
		SessionID:  id.SessionID,
		ExternalID: id.ExternalID,
		Source:     id.Source,
		RoleArn:    roleArn,
	}
}
