package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pandey-solutions/saves/internal/domain/session"
	apperrors "github.com/pandey-solutions/saves/internal/pkg/errors"
)

// ErrStorageUnavailable is the failure injected by the fakes below
var ErrStorageUnavailable = errors.New("storage unavailable")

// MockSessionRepository is a mock implementation of session.Repository
type MockSessionRepository struct {
	mu          sync.Mutex
	Sessions    map[string]*session.Session
	NextID      int
	FindError   error
	InsertError error
	UpdateError error

	FindCalls   int
	InsertCalls int
	UpdateCalls int
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		Sessions: make(map[string]*session.Session),
		NextID:   1,
	}
}

func (m *MockSessionRepository) FindByID(ctx context.Context, id string) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FindCalls++
	if m.FindError != nil {
		return nil, m.FindError
	}
	s, ok := m.Sessions[id]
	if !ok {
		return nil, apperrors.NotFound("Session")
	}
	copied := *s
	return &copied, nil
}

func (m *MockSessionRepository) Insert(ctx context.Context, externalID string) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InsertCalls++
	if m.InsertError != nil {
		return nil, m.InsertError
	}
	now := time.Now()
	s := &session.Session{
		ID:         fmt.Sprintf("session-%d", m.NextID),
		ExternalID: externalID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.NextID++
	m.Sessions[s.ID] = s
	copied := *s
	return &copied, nil
}

func (m *MockSessionRepository) UpdateRole(ctx context.Context, id, roleArn string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateCalls++
	if m.UpdateError != nil {
		return m.UpdateError
	}
	s, ok := m.Sessions[id]
	if !ok {
		return apperrors.NotFound("Session")
	}
	arn := roleArn
	s.RoleArn = &arn
	s.UpdatedAt = time.Now()
	return nil
}

// MockLocalStore is an in-memory session.LocalStore with injectable failures
type MockLocalStore struct {
	mu       sync.Mutex
	Values   map[string]string
	GetError error
	SetError error
	Writes   int
}

func NewMockLocalStore() *MockLocalStore {
	return &MockLocalStore{Values: make(map[string]string)}
}

func (m *MockLocalStore) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetError != nil {
		return "", m.GetError
	}
	return m.Values[key], nil
}

func (m *MockLocalStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SetError != nil {
		return m.SetError
	}
	m.Writes++
	m.Values[key] = value
	return nil
}

// FixedInjector is a connection.FailureInjector with a fixed outcome
type FixedInjector struct {
	Failing bool
}

func (f FixedInjector) Fail() bool {
	return f.Failing
}

var _ session.Repository = (*MockSessionRepository)(nil)
var _ session.LocalStore = (*MockLocalStore)(nil)
