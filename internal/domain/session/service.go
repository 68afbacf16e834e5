package session

import "context"

// Service defines session bootstrap and role persistence
type Service interface {
	// Acquire resolves the identity for the given local storage context.
	// It never fails: every store failure degrades to the next fallback.
	Acquire(ctx context.Context, local LocalStore) Identity

	// AttachRole persists roleArn onto the session and reports the sink used.
	// Failures are logged and swallowed.
	AttachRole(ctx context.Context, local LocalStore, sessionID, roleArn string) string

	// RoleArn looks up the persisted role ARN, returning "" when none is stored
	RoleArn(ctx context.Context, local LocalStore, sessionID string) string
}
