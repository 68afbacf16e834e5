package services

import (
	"context"
	"testing"

	"github.com/pandey-solutions/saves/internal/domain/session"
	"github.com/pandey-solutions/saves/internal/pkg/logger"
	"github.com/pandey-solutions/saves/internal/testutil"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

func TestSessionService_Acquire_RemoteFailsFallsBackToLocal(t *testing.T) {
	repo := testutil.NewMockSessionRepository()
	repo.FindError = testutil.ErrStorageUnavailable
	repo.InsertError = testutil.ErrStorageUnavailable
	repo.UpdateError = testutil.ErrStorageUnavailable

	svc := NewSessionService(repo, testLogger())
	local := testutil.NewMockLocalStore()
	ctx := context.Background()

	first := svc.Acquire(ctx, local)
	if !first.Valid() {
		t.Fatalf("Acquire() = %+v, want a well-formed identity", first)
	}
	if first.Source != session.SourceLocal {
		t.Errorf("Source = %q, want local", first.Source)
	}
	if local.Values[session.KeyExternalID] != first.ExternalID || local.Values[session.KeySessionID] != first.SessionID {
		t.Errorf("identity not persisted locally: %v", local.Values)
	}

	second := svc.Acquire(ctx, local)
	if second.ExternalID != first.ExternalID || second.SessionID != first.SessionID {
		t.Errorf("second Acquire() = %+v, want %+v", second, first)
	}
	if repo.InsertCalls != 2 {
		t.Errorf("remote store tried %d times, want 2", repo.InsertCalls)
	}
}

func TestSessionService_Acquire_Remote(t *testing.T) {
	repo := testutil.NewMockSessionRepository()
	svc := NewSessionService(repo, testLogger())
	local := testutil.NewMockLocalStore()
	ctx := context.Background()

	first := svc.Acquire(ctx, local)
	if first.Source != session.SourceRemote {
		t.Fatalf("Source = %q, want remote", first.Source)
	}
	if local.Values[session.KeySessionID] != first.SessionID {
		t.Error("remote session id not cached locally")
	}

	second := svc.Acquire(ctx, local)
	if second.SessionID != first.SessionID || second.ExternalID != first.ExternalID {
		t.Errorf("second Acquire() = %+v, want %+v", second, first)
	}
	if repo.InsertCalls != 1 {
		t.Errorf("InsertCalls = %d, want 1", repo.InsertCalls)
	}
}

func TestSessionService_Acquire_RemoteReusesCachedExternalID(t *testing.T) {
	repo := testutil.NewMockSessionRepository()
	svc := NewSessionService(repo, testLogger())
	local := testutil.NewMockLocalStore()
	local.Values[session.KeyExternalID] = "ext-kept"
	local.Values[session.KeySessionID] = "gone"

	id := svc.Acquire(context.Background(), local)
	if id.ExternalID != "ext-kept" {
		t.Errorf("ExternalID = %q, want the cached one", id.ExternalID)
	}
	if id.SessionID == "gone" {
		t.Error("unknown remote session id was reused")
	}
}

func TestSessionService_Acquire_RepairsPartialLocalState(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		keep   string
	}{
		{name: "only external id", values: map[string]string{session.KeyExternalID: "ext-1"}, keep: session.KeyExternalID},
		{name: "only session id", values: map[string]string{session.KeySessionID: "sess-1"}, keep: session.KeySessionID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewSessionService(nil, testLogger())
			local := testutil.NewMockLocalStore()
			for k, v := range tt.values {
				local.Values[k] = v
			}

			id := svc.Acquire(context.Background(), local)
			if !id.Valid() {
				t.Fatalf("Acquire() = %+v", id)
			}

			kept := id.ExternalID
			if tt.keep == session.KeySessionID {
				kept = id.SessionID
			}
			if kept != tt.values[tt.keep] {
				t.Errorf("present value regenerated: got %q, want %q", kept, tt.values[tt.keep])
			}
			if local.Writes != 1 {
				t.Errorf("Writes = %d, want only the missing half written", local.Writes)
			}
		})
	}
}

func TestSessionService_Acquire_LocalUnusable(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(l *testutil.MockLocalStore)
	}{
		{name: "read failure", mutate: func(l *testutil.MockLocalStore) { l.GetError = testutil.ErrStorageUnavailable }},
		{name: "write failure", mutate: func(l *testutil.MockLocalStore) { l.SetError = testutil.ErrStorageUnavailable }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewSessionService(nil, testLogger())
			local := testutil.NewMockLocalStore()
			tt.mutate(local)

			id := svc.Acquire(context.Background(), local)
			if !id.Valid() {
				t.Fatalf("Acquire() = %+v", id)
			}
			if id.Source != session.SourceMemory {
				t.Errorf("Source = %q, want memory", id.Source)
			}
		})
	}
}

func TestSessionService_Acquire_NilLocalStore(t *testing.T) {
	svc := NewSessionService(testutil.NewMockSessionRepository(), testLogger())

	id := svc.Acquire(context.Background(), nil)
	if !id.Valid() {
		t.Fatalf("Acquire() = %+v", id)
	}
}

type failingProvider struct{ name string }

func (f failingProvider) Name() string { return f.name }

func (f failingProvider) Acquire(context.Context, session.LocalStore) (session.Identity, error) {
	return session.Identity{}, testutil.ErrStorageUnavailable
}

func TestSessionService_Acquire_AllProvidersFail(t *testing.T) {
	svc := NewSessionServiceWithProviders(nil, testLogger(), failingProvider{"a"}, failingProvider{"b"})

	id := svc.Acquire(context.Background(), testutil.NewMockLocalStore())
	if !id.Valid() || id.Source != session.SourceMemory {
		t.Errorf("Acquire() = %+v, want in-memory identity", id)
	}
}

func TestSessionService_AttachRole(t *testing.T) {
	arn := "arn:aws:iam::123456789012:role/A"
	ctx := context.Background()

	t.Run("remote", func(t *testing.T) {
		repo := testutil.NewMockSessionRepository()
		svc := NewSessionService(repo, testLogger())
		local := testutil.NewMockLocalStore()
		id := svc.Acquire(ctx, local)

		if sink := svc.AttachRole(ctx, local, id.SessionID, arn); sink != session.SinkRemote {
			t.Errorf("sink = %q, want remote", sink)
		}
		if got := svc.RoleArn(ctx, local, id.SessionID); got != arn {
			t.Errorf("RoleArn() = %q, want %q", got, arn)
		}
	})

	t.Run("remote failure falls back to local", func(t *testing.T) {
		repo := testutil.NewMockSessionRepository()
		repo.UpdateError = testutil.ErrStorageUnavailable
		svc := NewSessionService(repo, testLogger())
		local := testutil.NewMockLocalStore()

		if sink := svc.AttachRole(ctx, local, "sess", arn); sink != session.SinkLocal {
			t.Errorf("sink = %q, want local", sink)
		}
		if local.Values[session.KeyRoleArn] != arn {
			t.Error("role not stored locally")
		}
	})

	t.Run("everything fails", func(t *testing.T) {
		svc := NewSessionService(nil, testLogger())
		local := testutil.NewMockLocalStore()
		local.SetError = testutil.ErrStorageUnavailable

		if sink := svc.AttachRole(ctx, local, "sess", arn); sink != session.SinkNone {
			t.Errorf("sink = %q, want none", sink)
		}
	})
}
