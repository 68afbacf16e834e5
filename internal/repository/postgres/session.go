package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/pandey-solutions/saves/internal/domain/session"
	"github.com/pandey-solutions/saves/internal/pkg/errors"
)

// SessionRepository implements session.Repository on database/sql
type SessionRepository struct {
	db     *sql.DB
	driver string
}

// NewSessionRepository creates a new session repository. driver selects the
// placeholder style and is "sqlite" or "postgres".
func NewSessionRepository(db *sql.DB, driver string) *SessionRepository {
	return &SessionRepository{db: db, driver: driver}
}

// FindByID retrieves a session by ID
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*session.Session, error) {
	query := rebind(r.driver, `
		SELECT id, external_id, role_arn, created_at, updated_at
		FROM sessions WHERE id = ?
	`)

	var s session.Session
	var roleArn sql.NullString
	var createdAt, updatedAt int64

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.ExternalID, &roleArn, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Session")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get session", err)
	}

	if roleArn.Valid {
		s.RoleArn = &roleArn.String
	}
	s.CreatedAt = time.Unix(createdAt, 0)
	s.UpdatedAt = time.Unix(updatedAt, 0)

	return &s, nil
}

// Insert creates a session row for externalID with a fresh session ID
func (r *SessionRepository) Insert(ctx context.Context, externalID string) (*session.Session, error) {
	now := time.Now()
	s := &session.Session{
		ID:         uuid.NewString(),
		ExternalID: externalID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	query := rebind(r.driver, `
		INSERT INTO sessions (id, external_id, role_arn, created_at, updated_at)
		VALUES (?, ?, NULL, ?, ?)
	`)

	if _, err := r.db.ExecContext(ctx, query, s.ID, s.ExternalID, now.Unix(), now.Unix()); err != nil {
		return nil, errors.DatabaseError("Failed to create session", err)
	}

	return s, nil
}

// UpdateRole attaches a role ARN to an existing session
func (r *SessionRepository) UpdateRole(ctx context.Context, id, roleArn string) error {
	query := rebind(r.driver, `UPDATE sessions SET role_arn = ?, updated_at = ? WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, roleArn, time.Now().Unix(), id)
	if err != nil {
		return errors.DatabaseError("Failed to update session role", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Session")
	}

	return nil
}

// Ping reports whether the database is reachable
func (r *SessionRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
