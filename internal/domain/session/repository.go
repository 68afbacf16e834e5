package session

import "context"

// Repository is the remote session store. Implementations return
// errors.NotFound when a session does not exist.
type Repository interface {
	// FindByID retrieves a session by its id
	FindByID(ctx context.Context, id string) (*Session, error)

	// Insert creates a session for externalID and returns the stored record
	Insert(ctx context.Context, externalID string) (*Session, error)

	// UpdateRole attaches a role ARN to an existing session
	UpdateRole(ctx context.Context, id, roleArn string) error
}

// LocalStore is the client-side key-value cache (browser storage, cookies,
// CLI config). Get returns "" for absent keys. Both methods may fail; callers
// treat any failure as the store being unavailable.
type LocalStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
}
