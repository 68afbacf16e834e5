package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/pandey-solutions/saves/internal/domain/session"
	"github.com/pandey-solutions/saves/internal/pkg/errors"
	"github.com/pandey-solutions/saves/internal/pkg/logger"
	"github.com/pandey-solutions/saves/internal/pkg/metrics"
)

// SessionProvider is one strategy in the session fallback chain
type SessionProvider interface {
	Name() string
	Acquire(ctx context.Context, local session.LocalStore) (session.Identity, error)
}

// SessionService implements session.Service with an ordered provider chain
type SessionService struct {
	repo      session.Repository
	providers []SessionProvider
	logger    *logger.Logger
}

// NewSessionService creates the session service. A nil repo means the remote
// store is unconfigured and the chain starts at local storage.
func NewSessionService(repo session.Repository, log *logger.Logger) *SessionService {
	var providers []SessionProvider
	if repo != nil {
		providers = append(providers, &RemoteSessionProvider{repo: repo, logger: log})
	}
	providers = append(providers, LocalSessionProvider{}, MemorySessionProvider{})

	return &SessionService{
		repo:      repo,
		providers: providers,
		logger:    log,
	}
}

// NewSessionServiceWithProviders creates a session service with an explicit chain
func NewSessionServiceWithProviders(repo session.Repository, log *logger.Logger, providers ...SessionProvider) *SessionService {
	return &SessionService{
		repo:      repo,
		providers: providers,
		logger:    log,
	}
}

// Acquire walks the provider chain and returns the first identity resolved.
// If every provider fails a fresh in-memory identity is returned.
func (s *SessionService) Acquire(ctx context.Context, local session.LocalStore) session.Identity {
	if local == nil {
		local = unavailableStore{}
	}

	for _, p := range s.providers {
		id, err := p.Acquire(ctx, local)
		if err == nil && id.Valid() {
			id.Source = p.Name()
			metrics.RecordSessionAcquired(p.Name())
			return id
		}

		reason := errors.ErrCodeSessionStoreUnavailable
		if errors.HasCode(err, errors.ErrCodePersistenceUnavailable) {
			reason = errors.ErrCodePersistenceUnavailable
		}
		metrics.RecordSessionFallback(p.Name(), reason)
		s.logger.WithFields(map[string]interface{}{
			"provider": p.Name(),
			"reason":   reason,
		}).WarnWithErr(err, "Session provider failed, falling back")
	}

	id, _ := MemorySessionProvider{}.Acquire(ctx, local)
	id.Source = session.SourceMemory
	metrics.RecordSessionAcquired(session.SourceMemory)
	return id
}

// AttachRole stores roleArn on the remote session, falling back to local
// storage. It never fails; the returned sink is "none" when nothing stored it.
func (s *SessionService) AttachRole(ctx context.Context, local session.LocalStore, sessionID, roleArn string) string {
	sink := s.attachRole(ctx, local, sessionID, roleArn)
	metrics.RecordRoleAttached(sink)
	return sink
}

func (s *SessionService) attachRole(ctx context.Context, local session.LocalStore, sessionID, roleArn string) string {
	if s.repo != nil && sessionID != "" {
		err := s.repo.UpdateRole(ctx, sessionID, roleArn)
		if err == nil {
			s.logger.WithFields(map[string]interface{}{
				"session_id": sessionID,
			}).Info("Role ARN attached to session")
			return session.SinkRemote
		}
		s.logger.WithFields(map[string]interface{}{
			"session_id": sessionID,
		}).WarnWithErr(errors.SessionStoreUnavailable(err), "Failed to update session role, using local storage")
	}

	if local != nil {
		err := local.Set(session.KeyRoleArn, roleArn)
		if err == nil {
			return session.SinkLocal
		}
		s.logger.WarnWithErr(errors.PersistenceUnavailable(err), "Failed to store role ARN locally")
	}

	return session.SinkNone
}

// RoleArn returns the persisted role ARN for the session, or ""
func (s *SessionService) RoleArn(ctx context.Context, local session.LocalStore, sessionID string) string {
	if s.repo != nil && sessionID != "" {
		sess, err := s.repo.FindByID(ctx, sessionID)
		if err == nil && sess.RoleArn != nil && *sess.RoleArn != "" {
			return *sess.RoleArn
		}
		if err != nil && !errors.HasCode(err, errors.ErrCodeNotFound) {
			s.logger.WarnWithErr(err, "Failed to read session role")
		}
	}

	if local != nil {
		if arn, err := local.Get(session.KeyRoleArn); err == nil {
			return arn
		}
	}
	return ""
}

// RemoteSessionProvider finds the locally cached session in the remote
// store, or inserts a new one.
type RemoteSessionProvider struct {
	repo   session.Repository
	logger *logger.Logger
}

// NewRemoteSessionProvider creates a provider backed by repo
func NewRemoteSessionProvider(repo session.Repository, log *logger.Logger) *RemoteSessionProvider {
	return &RemoteSessionProvider{repo: repo, logger: log}
}

func (p *RemoteSessionProvider) Name() string { return session.SourceRemote }

func (p *RemoteSessionProvider) Acquire(ctx context.Context, local session.LocalStore) (session.Identity, error) {
	if p.repo == nil {
		return session.Identity{}, errors.SessionStoreUnavailable(nil)
	}

	// Local read failures only cost us the cache hit
	cachedID, _ := local.Get(session.KeySessionID)
	cachedExternal, _ := local.Get(session.KeyExternalID)

	if cachedID != "" {
		sess, err := p.repo.FindByID(ctx, cachedID)
		if err == nil {
			return p.remember(local, sess), nil
		}
		if !errors.HasCode(err, errors.ErrCodeNotFound) {
			p.logger.WithFields(map[string]interface{}{
				"session_id": cachedID,
			}).Debug("Cached session lookup failed, creating a new session")
		}
	}

	externalID := cachedExternal
	if externalID == "" {
		externalID = uuid.NewString()
	}

	sess, err := p.repo.Insert(ctx, externalID)
	if err != nil {
		return session.Identity{}, errors.SessionStoreUnavailable(err)
	}

	return p.remember(local, sess), nil
}

// remember caches the remote identity locally on a best-effort basis
func (p *RemoteSessionProvider) remember(local session.LocalStore, sess *session.Session) session.Identity {
	if err := local.Set(session.KeyExternalID, sess.ExternalID); err != nil {
		p.logger.WarnWithErr(err, "Failed to cache external id locally")
	}
	if err := local.Set(session.KeySessionID, sess.ID); err != nil {
		p.logger.WarnWithErr(err, "Failed to cache session id locally")
	}
	return session.Identity{ExternalID: sess.ExternalID, SessionID: sess.ID}
}

// LocalSessionProvider reads the identity from local storage and repairs
// whichever half is missing.
type LocalSessionProvider struct{}

func (LocalSessionProvider) Name() string { return session.SourceLocal }

func (LocalSessionProvider) Acquire(ctx context.Context, local session.LocalStore) (session.Identity, error) {
	if local == nil {
		return session.Identity{}, errors.PersistenceUnavailable(nil)
	}

	externalID, err := local.Get(session.KeyExternalID)
	if err != nil {
		return session.Identity{}, errors.PersistenceUnavailable(err)
	}
	sessionID, err := local.Get(session.KeySessionID)
	if err != nil {
		return session.Identity{}, errors.PersistenceUnavailable(err)
	}

	if externalID == "" {
		externalID = uuid.NewString()
		if err := local.Set(session.KeyExternalID, externalID); err != nil {
			return session.Identity{}, errors.PersistenceUnavailable(err)
		}
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
		if err := local.Set(session.KeySessionID, sessionID); err != nil {
			return session.Identity{}, errors.PersistenceUnavailable(err)
		}
	}

	return session.Identity{ExternalID: externalID, SessionID: sessionID}, nil
}

// MemorySessionProvider generates a throwaway identity. It always succeeds.
type MemorySessionProvider struct{}

func (MemorySessionProvider) Name() string { return session.SourceMemory }

func (MemorySessionProvider) Acquire(ctx context.Context, local session.LocalStore) (session.Identity, error) {
	return session.Identity{ExternalID: uuid.NewString(), SessionID: uuid.NewString()}, nil
}

// unavailableStore stands in for a missing local store
type unavailableStore struct{}

func (unavailableStore) Get(string) (string, error) {
	return "", errors.PersistenceUnavailable(nil)
}

func (unavailableStore) Set(string, string) error {
	return errors.PersistenceUnavailable(nil)
}

var _ session.Service = (*SessionService)(nil)
