package dto

import (
	"github.com/pandey-solutions/saves/internal/domain/connection"
	"github.com/pandey-solutions/saves/internal/domain/view"
)

// ViewStateDTO is the UI state plus the derived wizard step
type ViewStateDTO struct {
	View       view.Name           `json:"view"`
	Step       view.Step           `json:"step,omitempty"`
	Method     view.Method         `json:"method"`
	ExternalID string              `json:"externalId,omitempty"`
	RoleArn    string              `json:"roleArn,omitempty"`
	Loading    bool                `json:"loading"`
	Connected  bool                `json:"connected"`
	Feedback   *connection.Failure `json:"feedback,omitempty"`
}

// ViewActionRequest is the optional body of POST /view/{action}
type ViewActionRequest struct {
	Method string `json:"method,omitempty" validate:"omitempty,oneof=cloudformation cli"`
}

// ToViewStateDTO converts a view state to a DTO
func ToViewStateDTO(s view.State) ViewStateDTO {
	return ViewStateDTO{
		View:       s.View,
		Step:       s.Step(),
		Method:     s.Method,
		ExternalID: s.ExternalID,
		RoleArn:    s.RoleArn,
		Loading:    s.Loading,
		Connected:  s.Connected,
		Feedback:   s.Feedback,
	}
}
