package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pandey-solutions/saves/internal/domain/connection"
	"github.com/pandey-solutions/saves/internal/domain/session"
	"github.com/pandey-solutions/saves/internal/domain/view"
	"github.com/pandey-solutions/saves/internal/pkg/errors"
	"github.com/pandey-solutions/saves/internal/repository/memory"
	"github.com/pandey-solutions/saves/internal/testutil"
)

func newTestViewService(t *testing.T, failing bool, latency time.Duration) (*ViewService, *SessionService) {
	t.Helper()

	store, err := memory.NewViewStateStore(100)
	if err != nil {
		t.Fatalf("NewViewStateStore() error = %v", err)
	}
	sessions := NewSessionService(testutil.NewMockSessionRepository(), testLogger())
	conns := NewConnectionService(sessions, testutil.FixedInjector{Failing: failing}, latency, testLogger())
	return NewViewService(store, conns, testLogger()), sessions
}

func TestViewService_Navigation(t *testing.T) {
	svc, _ := newTestViewService(t, false, time.Millisecond)
	id := session.Identity{ExternalID: "ext", SessionID: "sess"}

	if st := svc.State(id); st.View != view.Landing || st.ExternalID != "ext" {
		t.Fatalf("initial state = %+v", st)
	}

	st, err := svc.Dispatch(id, view.Action{Kind: view.ActionStart})
	if err != nil || st.View != view.Wizard {
		t.Fatalf("start: state = %+v, err = %v", st, err)
	}

	st, err = svc.Dispatch(id, view.Action{Kind: view.ActionDemo})
	if err != nil || st.View != view.Demo {
		t.Fatalf("demo: state = %+v, err = %v", st, err)
	}

	_, err = svc.Dispatch(id, view.Action{Kind: view.ActionBack})
	if !errors.HasCode(err, errors.ErrCodeInvalidAction) {
		t.Errorf("back from demo error = %v, want INVALID_ACTION", err)
	}
}

func TestViewService_Connect_Success(t *testing.T) {
	svc, sessions := newTestViewService(t, false, 5*time.Millisecond)
	ctx := context.Background()
	local := testutil.NewMockLocalStore()
	id := sessions.Acquire(ctx, local)

	svc.Dispatch(id, view.Action{Kind: view.ActionStart})

	st, result, err := svc.Connect(ctx, local, id, testArn)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if !result.Succeeded() {
		t.Errorf("result = %+v", result)
	}
	if st.View != view.Demo || !st.Connected || st.Loading {
		t.Errorf("state after success = %+v", st)
	}
}

func TestViewService_Connect_CallerCancelled(t *testing.T) {
	svc, sessions := newTestViewService(t, false, 20*time.Millisecond)
	local := testutil.NewMockLocalStore()
	id := sessions.Acquire(context.Background(), local)
	svc.Dispatch(id, view.Action{Kind: view.ActionStart})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st, result, err := svc.Connect(ctx, local, id, testArn)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if !result.Succeeded() || st.View != view.Demo || st.Loading {
		t.Errorf("state after cancelled caller = %+v, result = %+v", st, result)
	}
	if got := sessions.RoleArn(context.Background(), local, id.SessionID); got != testArn {
		t.Errorf("persisted role = %q, want %q", got, testArn)
	}
}

func TestViewService_Connect_FailureStaysOnWizard(t *testing.T) {
	svc, _ := newTestViewService(t, true, time.Millisecond)
	id := session.Identity{ExternalID: "ext", SessionID: "sess"}

	st, _, err := svc.Connect(context.Background(), testutil.NewMockLocalStore(), id, testArn)
	if !errors.HasCode(err, errors.ErrCodeNetworkTimeout) {
		t.Fatalf("Connect() error = %v, want NETWORK_TIMEOUT", err)
	}
	if st.View != view.Wizard || st.Loading {
		t.Errorf("state after failure = %+v", st)
	}
	if st.Feedback == nil || st.Feedback.Type != connection.KindNetworkTimeout {
		t.Errorf("Feedback = %+v", st.Feedback)
	}
	if st.RoleArn != testArn {
		t.Error("submitted ARN should remain for resubmission")
	}

	st, err = svc.Dispatch(id, view.Action{Kind: view.ActionBack})
	if err != nil {
		t.Fatalf("back error = %v", err)
	}
	if st.View != view.Landing || st.Feedback != nil {
		t.Errorf("state after back = %+v", st)
	}
}

func TestViewService_Connect_ValidationFailure(t *testing.T) {
	svc, _ := newTestViewService(t, false, time.Hour)
	id := session.Identity{ExternalID: "ext", SessionID: "sess"}

	st, _, err := svc.Connect(context.Background(), testutil.NewMockLocalStore(), id, "not-an-arn")
	if !errors.HasCode(err, errors.ErrCodeInvalidArnFormat) {
		t.Fatalf("Connect() error = %v, want INVALID_ARN_FORMAT", err)
	}
	if st.Loading || st.Feedback == nil {
		t.Errorf("state = %+v", st)
	}
}

func TestViewService_Connect_RejectsConcurrentSubmit(t *testing.T) {
	svc, _ := newTestViewService(t, false, 100*time.Millisecond)
	id := session.Identity{ExternalID: "ext", SessionID: "sess"}
	local := testutil.NewMockLocalStore()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		svc.Connect(context.Background(), local, id, testArn)
	}()

	deadline := time.Now().Add(time.Second)
	for !svc.State(id).Loading {
		if time.Now().After(deadline) {
			t.Fatal("first attempt never started")
		}
		time.Sleep(time.Millisecond)
	}

	_, _, err := svc.Connect(context.Background(), local, id, testArn)
	if !errors.HasCode(err, errors.ErrCodeConnectInFlight) {
		t.Errorf("second Connect() error = %v, want CONNECT_IN_FLIGHT", err)
	}

	wg.Wait()
	if st := svc.State(id); st.Loading || st.View != view.Demo {
		t.Errorf("final state = %+v", st)
	}
}

func TestViewService_EvictIdle(t *testing.T) {
	svc, _ := newTestViewService(t, false, time.Millisecond)
	svc.State(session.Identity{ExternalID: "e", SessionID: "s"})

	if n := svc.EvictIdle(time.Now().Add(time.Minute)); n != 1 {
		t.Errorf("EvictIdle() = %d, want 1", n)
	}
}

// evictingConnections evicts other sessions from the view cache while the
// verification is running.
type evictingConnections struct {
	connection.Service
	during func()
}

func (c evictingConnections) Connect(ctx context.Context, local session.LocalStore, sessionID, roleArn string) (*connection.Result, error) {
	c.during()
	return c.Service.Connect(ctx, local, sessionID, roleArn)
}

func TestViewService_Connect_StateEvictedDuringVerification(t *testing.T) {
	tests := []struct {
		name      string
		failing   bool
		wantView  view.Name
		connected bool
	}{
		{name: "success lands on demo", wantView: view.Demo, connected: true},
		{name: "failure stays on wizard", failing: true, wantView: view.Wizard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := memory.NewViewStateStore(1)
			if err != nil {
				t.Fatalf("NewViewStateStore() error = %v", err)
			}
			sessions := NewSessionService(testutil.NewMockSessionRepository(), testLogger())
			conns := NewConnectionService(sessions, testutil.FixedInjector{Failing: tt.failing}, time.Millisecond, testLogger())

			var svc *ViewService
			other := session.Identity{ExternalID: "ext-b", SessionID: "sess-b"}
			svc = NewViewService(store, evictingConnections{
				Service: conns,
				during:  func() { svc.State(other) },
			}, testLogger())

			id := session.Identity{ExternalID: "ext-a", SessionID: "sess-a"}
			st, _, _ := svc.Connect(context.Background(), testutil.NewMockLocalStore(), id, testArn)

			if st.View != tt.wantView || st.Connected != tt.connected || st.Loading {
				t.Errorf("state = %+v, want view %s connected %v", st, tt.wantView, tt.connected)
			}
			if st.ExternalID != "ext-a" || st.RoleArn != testArn {
				t.Errorf("state lost submit data: %+v", st)
			}
			if got := svc.State(id); got.View != tt.wantView {
				t.Errorf("stored view = %s, want %s", got.View, tt.wantView)
			}
		})
	}
}
