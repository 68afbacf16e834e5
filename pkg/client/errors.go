package client

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes returned by the connect flow
const (
	CodeInvalidArnFormat = "INVALID_ARN_FORMAT"
	CodeInvalidAccountID = "INVALID_ACCOUNT_ID"
	CodeNetworkTimeout   = "NETWORK_TIMEOUT"
	CodeConnectInFlight  = "CONNECT_IN_FLIGHT"
	CodeInvalidAction    = "INVALID_ACTION"
)

// APIError represents an error returned by the API
type APIError struct {
	StatusCode int             `json:"-"`
	Code       string          `json:"code"`
	Message    string          `json:"message"`
	Details    json.RawMessage `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API error [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("API error: %s (status: %d)", e.Message, e.StatusCode)
}

// Failure decodes the connection failure banner carried by connect errors.
// It returns nil for other errors.
func (e *APIError) Failure() *Failure {
	if len(e.Details) == 0 {
		return nil
	}
	var f Failure
	if err := json.Unmarshal(e.Details, &f); err != nil || f.Type == "" {
		return nil
	}
	return &f
}

// IsNotFound returns true if the error is a 404 not found error
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsValidationError returns true if the error is a 400 validation error
func (e *APIError) IsValidationError() bool {
	return e.StatusCode == http.StatusBadRequest
}

// IsConflict returns true for actions rejected by the current view state
func (e *APIError) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}

// IsTimeout returns true when role verification timed out
func (e *APIError) IsTimeout() bool {
	return e.Code == CodeNetworkTimeout
}

// IsRateLimited returns true if the request was throttled
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsServerError returns true if the error is a 5xx server error
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}
