package session

import "time"

// Local storage keys. The spotsave_ prefix predates the Saves rename and is
// kept so existing browsers keep their identity.
const (
	KeyExternalID = "spotsave_external_id"
	KeySessionID  = "spotsave_session_id"
	KeyRoleArn    = "spotsave_role_arn"
)

// Provider sources that can resolve an identity
const (
	SourceRemote = "remote"
	SourceLocal  = "local"
	SourceMemory = "memory"
)

// Role persistence sinks
const (
	SinkRemote = "remote"
	SinkLocal  = "local"
	SinkNone   = "none"
)

// Session is the record kept by the remote session store
type Session struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id"`
	RoleArn    *string   `json:"role_arn,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Identity is the (externalId, sessionId) pair handed to the wizard.
type Identity struct {
	ExternalID string `json:"externalId"`
	SessionID  string `json:"sessionId"`
	// Source names the provider that resolved the pair. Not part of the
	// stable identity.
	Source string `json:"source"`
}

// Valid reports whether both halves are present
func (i Identity) Valid() bool {
	return i.ExternalID != "" && i.SessionID != ""
}
