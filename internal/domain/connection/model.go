package connection

import (
	"net/http"

	"github.com/pandey-solutions/saves/internal/pkg/errors"
)

// Status is the lifecycle of one connection attempt
type Status string

const (
	StatusIdle       Status = "idle"
	StatusValidating Status = "validating"
	StatusVerifying  Status = "verifying"
	StatusSuccess    Status = "success"
	StatusFailed     Status = "failed"
)

// ErrorKind is the closed set of user-visible connection failures
type ErrorKind string

const (
	KindInvalidArnFormat ErrorKind = "InvalidArnFormat"
	KindInvalidAccountID ErrorKind = "InvalidAccountId"
	KindNetworkTimeout   ErrorKind = "NetworkTimeout"
)

// Failure is what the wizard banner displays
type Failure struct {
	Type    ErrorKind `json:"type"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
}

// Error implements error
func (f *Failure) Error() string {
	return string(f.Type) + ": " + f.Message
}

// AppError maps the failure onto the API error envelope
func (f *Failure) AppError() *errors.AppError {
	code, status := errors.ErrCodeBadRequest, http.StatusBadRequest
	switch f.Type {
	case KindInvalidArnFormat:
		code = errors.ErrCodeInvalidArnFormat
	case KindInvalidAccountID:
		code = errors.ErrCodeInvalidAccountID
	case KindNetworkTimeout:
		code, status = errors.ErrCodeNetworkTimeout, http.StatusGatewayTimeout
	}
	return errors.Wrap(f, code, f.Title, status).WithDetails(f)
}

// Result is the outcome of a connection attempt
type Result struct {
	Status    Status   `json:"status"`
	RoleArn   string   `json:"roleArn"`
	AccountID string   `json:"accountId,omitempty"`
	Failure   *Failure `json:"failure,omitempty"`
	// PersistedTo names where the ARN was stored on success
	PersistedTo string `json:"persistedTo,omitempty"`
}

// Succeeded reports whether the attempt completed successfully
func (r *Result) Succeeded() bool {
	return r != nil && r.Status == StatusSuccess
}

// NewInvalidArnFormat builds the banner for a malformed ARN
func NewInvalidArnFormat() *Failure {
	return &Failure{
		Type:    KindInvalidArnFormat,
		Title:   "Invalid Role ARN",
		Message: "Please enter a valid IAM Role ARN. It should start with arn:aws:iam::",
	}
}

// NewInvalidAccountID builds the banner for a bad account segment
func NewInvalidAccountID() *Failure {
	return &Failure{
		Type:    KindInvalidAccountID,
		Title:   "Invalid AWS Account ID",
		Message: "The account ID in the ARN must be exactly 12 digits.",
	}
}

// NewNetworkTimeout builds the banner for a failed verification
func NewNetworkTimeout() *Failure {
	return &Failure{
		Type:    KindNetworkTimeout,
		Title:   "Connection Timed Out",
		Message: "We could not reach your AWS account. Check the role's trust policy and External ID, then try again.",
	}
}
