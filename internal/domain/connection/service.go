package connection

import (
	"context"

	"github.com/pandey-solutions/saves/internal/domain/session"
)

// Service runs the connect flow for the wizard
type Service interface {
	// Validate checks the ARN without any asynchronous work
	Validate(roleArn string) *Failure

	// Connect validates roleArn, simulates remote verification and persists
	// the ARN on success. A returned *Failure is the only user-visible error.
	Connect(ctx context.Context, local session.LocalStore, sessionID, roleArn string) (*Result, error)
}

// FailureInjector decides whether a verification attempt fails
type FailureInjector interface {
	Fail() bool
}
