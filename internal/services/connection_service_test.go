package services

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/pandey-solutions/saves/internal/domain/connection"
	"github.com/pandey-solutions/saves/internal/domain/session"
	"github.com/pandey-solutions/saves/internal/testutil"
)

const testArn = "arn:aws:iam::123456789012:role/Foo"

func TestConnectionService_Connect_Validation(t *testing.T) {
	svc := NewConnectionService(NewSessionService(nil, testLogger()), testutil.FixedInjector{}, time.Hour, testLogger())

	tests := []struct {
		arn      string
		wantKind connection.ErrorKind
	}{
		{arn: "not-an-arn", wantKind: connection.KindInvalidArnFormat},
		{arn: "arn:aws:iam::12AB:role/Foo", wantKind: connection.KindInvalidAccountID},
	}

	for _, tt := range tests {
		t.Run(tt.arn, func(t *testing.T) {
			start := time.Now()
			result, err := svc.Connect(context.Background(), testutil.NewMockLocalStore(), "sess", tt.arn)

			var f *connection.Failure
			if !stderrors.As(err, &f) || f.Type != tt.wantKind {
				t.Fatalf("Connect() error = %v, want %s", err, tt.wantKind)
			}
			if result.Status != connection.StatusFailed {
				t.Errorf("Status = %s, want failed", result.Status)
			}
			if time.Since(start) > time.Second {
				t.Error("validation failure should not wait for verification")
			}
		})
	}
}

func TestConnectionService_Connect_SuccessPersistsRole(t *testing.T) {
	repo := testutil.NewMockSessionRepository()
	sessions := NewSessionService(repo, testLogger())
	latency := 20 * time.Millisecond
	svc := NewConnectionService(sessions, testutil.FixedInjector{Failing: false}, latency, testLogger())

	ctx := context.Background()
	local := testutil.NewMockLocalStore()
	id := sessions.Acquire(ctx, local)

	start := time.Now()
	result, err := svc.Connect(ctx, local, id.SessionID, testArn)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < latency {
		t.Errorf("Connect() returned after %v, want at least %v", elapsed, latency)
	}
	if !result.Succeeded() {
		t.Fatalf("result = %+v, want success", result)
	}
	if result.AccountID != "123456789012" || result.PersistedTo != session.SinkRemote {
		t.Errorf("result = %+v", result)
	}

	if got := sessions.RoleArn(ctx, local, id.SessionID); got != testArn {
		t.Errorf("RoleArn() = %q, want %q", got, testArn)
	}
}

func TestConnectionService_Connect_PersistenceFailureStillSucceeds(t *testing.T) {
	repo := testutil.NewMockSessionRepository()
	repo.UpdateError = testutil.ErrStorageUnavailable
	local := testutil.NewMockLocalStore()
	local.SetError = testutil.ErrStorageUnavailable

	svc := NewConnectionService(NewSessionService(repo, testLogger()), testutil.FixedInjector{}, time.Millisecond, testLogger())

	result, err := svc.Connect(context.Background(), local, "sess", testArn)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if !result.Succeeded() || result.PersistedTo != session.SinkNone {
		t.Errorf("result = %+v", result)
	}
}

func TestConnectionService_Connect_InjectedFailure(t *testing.T) {
	svc := NewConnectionService(NewSessionService(nil, testLogger()), testutil.FixedInjector{Failing: true}, time.Millisecond, testLogger())

	result, err := svc.Connect(context.Background(), testutil.NewMockLocalStore(), "sess", testArn)

	var f *connection.Failure
	if !stderrors.As(err, &f) || f.Type != connection.KindNetworkTimeout {
		t.Fatalf("Connect() error = %v, want NetworkTimeout", err)
	}
	if result.Status != connection.StatusFailed || result.Failure == nil {
		t.Errorf("result = %+v", result)
	}
}

func TestConnectionService_Connect_Cancelled(t *testing.T) {
	local := testutil.NewMockLocalStore()
	svc := NewConnectionService(NewSessionService(nil, testLogger()), testutil.FixedInjector{}, time.Hour, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	result, err := svc.Connect(ctx, local, "sess", testArn)
	if !stderrors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Connect() error = %v, want deadline exceeded", err)
	}
	if result != nil {
		t.Errorf("result = %+v, want nil", result)
	}
	if local.Values[session.KeyRoleArn] != "" {
		t.Error("abandoned attempt persisted the role")
	}
}

func TestRandomInjector(t *testing.T) {
	if (RandomInjector{Rate: 0}).Fail() {
		t.Error("rate 0 should never fail")
	}
	if !(RandomInjector{Rate: 1}).Fail() {
		t.Error("rate 1 should always fail")
	}
}
