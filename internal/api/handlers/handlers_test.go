package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/pandey-solutions/saves/internal/domain/session"
	"github.com/pandey-solutions/saves/internal/pkg/logger"
	"github.com/pandey-solutions/saves/internal/pkg/validator"
	"github.com/pandey-solutions/saves/internal/repository/local"
	"github.com/pandey-solutions/saves/internal/repository/memory"
	"github.com/pandey-solutions/saves/internal/services"
	"github.com/pandey-solutions/saves/internal/setup"
	"github.com/pandey-solutions/saves/internal/testutil"
)

const testArn = "arn:aws:iam::123456789012:role/SpotSaveReadOnlyRole"

type harness struct {
	repo      *testutil.MockSessionRepository
	injector  *testutil.FixedInjector
	sessions  *services.SessionService
	session   *SessionHandler
	view      *ViewHandler
	connect   *ConnectHandler
	dashboard *DashboardHandler
	setup     *SetupHandler
}

// switchInjector lets a test flip the failure outcome after construction
type switchInjector struct{ f *testutil.FixedInjector }

func (s switchInjector) Fail() bool { return s.f.Fail() }

func newHarness(t *testing.T) *harness {
	t.Helper()

	log := logger.New(logger.Config{Level: "error", Format: "json"})
	val := validator.New()
	repo := testutil.NewMockSessionRepository()
	injector := &testutil.FixedInjector{}

	sessions := services.NewSessionService(repo, log)
	connections := services.NewConnectionService(sessions, switchInjector{injector}, 0, log)
	store, err := memory.NewViewStateStore(100)
	if err != nil {
		t.Fatalf("NewViewStateStore() error = %v", err)
	}
	views := services.NewViewService(store, connections, log)
	dashboards := services.NewDashboardService(sessions, log)
	resolver := NewSessionResolver(sessions, local.CookieOptions{})

	opts := setup.Options{
		TrustedAccountID: "999999999999",
		StackName:        "SpotSave-Access-Role",
		RoleName:         "SpotSaveReadOnlyRole",
		TemplateURL:      "https://example.com/spotsave-role.yaml",
	}

	return &harness{
		repo:      repo,
		injector:  injector,
		sessions:  sessions,
		session:   NewSessionHandler(resolver, sessions),
		view:      NewViewHandler(resolver, views, log, val),
		connect:   NewConnectHandler(resolver, views, connections, log, val),
		dashboard: NewDashboardHandler(resolver, dashboards, log),
		setup:     NewSetupHandler(resolver, views, opts, log),
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if data != nil && env.Success {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("failed to decode data: %v", err)
		}
	}
	return env
}

func newRequest(method, target, body string, cookies []*http.Cookie) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func withAction(req *http.Request, action string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("action", action)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// acquire bootstraps a session and returns its cookies
func (h *harness) acquire(t *testing.T) []*http.Cookie {
	t.Helper()
	rr := httptest.NewRecorder()
	h.session.Acquire(rr, newRequest(http.MethodPost, "/api/v1/session", "", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("Acquire status = %d, want 200", rr.Code)
	}
	return rr.Result().Cookies()
}

func TestSessionHandler_Acquire(t *testing.T) {
	h := newHarness(t)

	rr := httptest.NewRecorder()
	h.session.Acquire(rr, newRequest(http.MethodPost, "/api/v1/session", "", nil))

	var first struct {
		SessionID  string `json:"sessionId"`
		ExternalID string `json:"externalId"`
		Source     string `json:"source"`
	}
	decode(t, rr, &first)

	if first.SessionID != "session-1" || first.ExternalID == "" {
		t.Fatalf("identity = %+v, want session-1 with an external id", first)
	}
	if first.Source != session.SourceRemote {
		t.Errorf("Source = %q, want %q", first.Source, session.SourceRemote)
	}
	if got := rr.Header().Get(local.HeaderSessionID); got != "session-1" {
		t.Errorf("%s header = %q, want session-1", local.HeaderSessionID, got)
	}

	// Replaying the cookies resolves the same identity without a new insert
	rr2 := httptest.NewRecorder()
	h.session.Acquire(rr2, newRequest(http.MethodPost, "/api/v1/session", "", rr.Result().Cookies()))

	var second struct {
		SessionID  string `json:"sessionId"`
		ExternalID string `json:"externalId"`
	}
	decode(t, rr2, &second)

	if second.SessionID != first.SessionID || second.ExternalID != first.ExternalID {
		t.Errorf("second identity = %+v, want %+v", second, first)
	}
	if h.repo.InsertCalls != 1 {
		t.Errorf("InsertCalls = %d, want 1", h.repo.InsertCalls)
	}
}

func TestSessionHandler_AcquireWithStoreDown(t *testing.T) {
	h := newHarness(t)
	h.repo.InsertError = testutil.ErrStorageUnavailable

	rr := httptest.NewRecorder()
	h.session.Acquire(rr, newRequest(http.MethodPost, "/api/v1/session", "", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even with the store down", rr.Code)
	}

	var id struct {
		SessionID string `json:"sessionId"`
		Source    string `json:"source"`
	}
	decode(t, rr, &id)
	if id.SessionID == "" || id.Source != session.SourceLocal {
		t.Errorf("identity = %+v, want a local fallback", id)
	}
}

func TestConnectHandler_Connect(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		failing    bool
		wantStatus int
		wantCode   string
		wantType   string
	}{
		{name: "success", body: `{"roleArn":"` + testArn + `"}`, wantStatus: http.StatusOK},
		{name: "missing arn", body: `{}`, wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
		{name: "malformed body", body: `{"roleArn":`, wantStatus: http.StatusBadRequest, wantCode: "BAD_REQUEST"},
		{name: "bad prefix", body: `{"roleArn":"arn:aws:s3:::bucket"}`, wantStatus: http.StatusBadRequest,
			wantCode: "INVALID_ARN_FORMAT", wantType: "InvalidArnFormat"},
		{name: "bad account", body: `{"roleArn":"arn:aws:iam::12345:role/x"}`, wantStatus: http.StatusBadRequest,
			wantCode: "INVALID_ACCOUNT_ID", wantType: "InvalidAccountId"},
		{name: "timeout", body: `{"roleArn":"` + testArn + `"}`, failing: true, wantStatus: http.StatusGatewayTimeout,
			wantCode: "NETWORK_TIMEOUT", wantType: "NetworkTimeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.injector.Failing = tt.failing
			cookies := h.acquire(t)

			rr := httptest.NewRecorder()
			h.connect.Connect(rr, newRequest(http.MethodPost, "/api/v1/connect", tt.body, cookies))

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rr.Code, tt.wantStatus, rr.Body.String())
			}

			var resp struct {
				AccountID   string `json:"accountId"`
				PersistedTo string `json:"persistedTo"`
				View        struct {
					View      string `json:"view"`
					Connected bool   `json:"connected"`
				} `json:"view"`
			}
			env := decode(t, rr, &resp)

			if tt.wantCode != "" {
				if env.Error.Code != tt.wantCode {
					t.Errorf("error code = %q, want %q", env.Error.Code, tt.wantCode)
				}
				if tt.wantType != "" {
					var details struct {
						Type  string `json:"type"`
						Title string `json:"title"`
					}
					if err := json.Unmarshal(env.Error.Details, &details); err != nil {
						t.Fatalf("failed to decode details: %v", err)
					}
					if details.Type != tt.wantType || details.Title == "" {
						t.Errorf("details = %+v, want type %q with a title", details, tt.wantType)
					}
				}
				return
			}

			if resp.AccountID != "123456789012" {
				t.Errorf("AccountID = %q, want 123456789012", resp.AccountID)
			}
			if resp.PersistedTo != session.SinkRemote {
				t.Errorf("PersistedTo = %q, want remote", resp.PersistedTo)
			}
			if resp.View.View != "demo" || !resp.View.Connected {
				t.Errorf("view = %+v, want connected demo", resp.View)
			}
		})
	}
}

func TestConnectHandler_FailureLeavesBanner(t *testing.T) {
	h := newHarness(t)
	h.injector.Failing = true
	cookies := h.acquire(t)

	rr := httptest.NewRecorder()
	h.connect.Connect(rr, newRequest(http.MethodPost, "/api/v1/connect", `{"roleArn":"`+testArn+`"}`, cookies))
	if rr.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want 504", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.view.Get(rr, newRequest(http.MethodGet, "/api/v1/view", "", cookies))

	var st struct {
		View     string `json:"view"`
		Loading  bool   `json:"loading"`
		Feedback *struct {
			Title string `json:"title"`
		} `json:"feedback"`
	}
	decode(t, rr, &st)

	if st.View != "wizard" || st.Loading {
		t.Errorf("state = %+v, want idle wizard", st)
	}
	if st.Feedback == nil || st.Feedback.Title != "Connection Timed Out" {
		t.Errorf("feedback = %+v, want timeout banner", st.Feedback)
	}
}

func TestConnectHandler_Validate(t *testing.T) {
	tests := []struct {
		name      string
		arn       string
		wantValid bool
	}{
		{name: "valid", arn: testArn, wantValid: true},
		{name: "wrong service", arn: "arn:aws:s3:::bucket", wantValid: false},
		{name: "short account", arn: "arn:aws:iam::1234:role/x", wantValid: false},
	}

	h := newHarness(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.connect.Validate(rr, newRequest(http.MethodPost, "/api/v1/validate", `{"roleArn":"`+tt.arn+`"}`, nil))

			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rr.Code)
			}
			var resp struct {
				Valid   bool                   `json:"valid"`
				Failure map[string]interface{} `json:"failure"`
			}
			decode(t, rr, &resp)
			if resp.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", resp.Valid, tt.wantValid)
			}
			if !tt.wantValid && resp.Failure == nil {
				t.Error("expected failure details")
			}
		})
	}
}

func TestViewHandler_Dispatch(t *testing.T) {
	h := newHarness(t)
	cookies := h.acquire(t)

	steps := []struct {
		action     string
		body       string
		wantStatus int
		wantView   string
		wantMethod string
	}{
		{action: "back", wantStatus: http.StatusConflict},
		{action: "fly", wantStatus: http.StatusBadRequest},
		{action: "start", wantStatus: http.StatusOK, wantView: "wizard", wantMethod: "cloudformation"},
		{action: "method", body: `{"method":"terraform"}`, wantStatus: http.StatusBadRequest},
		{action: "method", wantStatus: http.StatusBadRequest},
		{action: "method", body: `{"method":"cli"}`, wantStatus: http.StatusOK, wantView: "wizard", wantMethod: "cli"},
		{action: "home", wantStatus: http.StatusOK, wantView: "landing", wantMethod: "cli"},
		{action: "demo", wantStatus: http.StatusOK, wantView: "demo"},
	}

	for _, s := range steps {
		rr := httptest.NewRecorder()
		h.view.Dispatch(rr, withAction(newRequest(http.MethodPost, "/api/v1/view/"+s.action, s.body, cookies), s.action))

		if rr.Code != s.wantStatus {
			t.Fatalf("%s: status = %d, want %d (%s)", s.action, rr.Code, s.wantStatus, rr.Body.String())
		}
		if s.wantView == "" {
			continue
		}

		var st struct {
			View   string `json:"view"`
			Method string `json:"method"`
		}
		decode(t, rr, &st)
		if st.View != s.wantView {
			t.Errorf("%s: view = %q, want %q", s.action, st.View, s.wantView)
		}
		if s.wantMethod != "" && st.Method != s.wantMethod {
			t.Errorf("%s: method = %q, want %q", s.action, st.Method, s.wantMethod)
		}
	}
}

func TestDashboardHandler_Get(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantSeed  string
		wantSpend int
		wantSaved int
	}{
		{name: "explicit seed", query: "?seed=123456789012", wantSeed: "123456789012", wantSpend: 5770, wantSaved: 1869},
		{name: "role arn", query: "?roleArn=" + testArn, wantSeed: "123456789012", wantSpend: 5770, wantSaved: 1869},
		{name: "no role", query: "", wantSeed: "UNKNOWN", wantSpend: 2402},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)

			rr := httptest.NewRecorder()
			h.dashboard.Get(rr, newRequest(http.MethodGet, "/api/v1/dashboard"+tt.query, "", nil))
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rr.Code)
			}

			var d struct {
				Seed             string `json:"seed"`
				TotalSpend       int    `json:"totalSpend"`
				PotentialSavings int    `json:"potentialSavings"`
				History          []any  `json:"history"`
			}
			decode(t, rr, &d)

			if d.Seed != tt.wantSeed {
				t.Errorf("Seed = %q, want %q", d.Seed, tt.wantSeed)
			}
			if d.TotalSpend != tt.wantSpend {
				t.Errorf("TotalSpend = %d, want %d", d.TotalSpend, tt.wantSpend)
			}
			if tt.wantSaved != 0 && d.PotentialSavings != tt.wantSaved {
				t.Errorf("PotentialSavings = %d, want %d", d.PotentialSavings, tt.wantSaved)
			}
			if len(d.History) != 6 {
				t.Errorf("len(History) = %d, want 6", len(d.History))
			}
		})
	}
}

func TestDashboardHandler_UsesPersistedRole(t *testing.T) {
	h := newHarness(t)
	cookies := h.acquire(t)

	rr := httptest.NewRecorder()
	h.connect.Connect(rr, newRequest(http.MethodPost, "/api/v1/connect", `{"roleArn":"`+testArn+`"}`, cookies))
	if rr.Code != http.StatusOK {
		t.Fatalf("connect status = %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.dashboard.Get(rr, newRequest(http.MethodGet, "/api/v1/dashboard", "", cookies))

	var d struct {
		Seed string `json:"seed"`
	}
	decode(t, rr, &d)
	if d.Seed != "123456789012" {
		t.Errorf("Seed = %q, want the persisted account", d.Seed)
	}
}

func TestDashboardHandler_ScanAndDemo(t *testing.T) {
	h := newHarness(t)

	rr := httptest.NewRecorder()
	h.dashboard.Scan(rr, newRequest(http.MethodGet, "/api/v1/dashboard/scan?seed=123456789012", "", nil))

	var scan struct {
		AccountID       string `json:"accountId"`
		Steps           []any  `json:"steps"`
		TotalDurationMs int64  `json:"totalDurationMs"`
	}
	decode(t, rr, &scan)
	if len(scan.Steps) != 8 || scan.TotalDurationMs != 10500 {
		t.Errorf("scan = %d steps / %dms, want 8 / 10500ms", len(scan.Steps), scan.TotalDurationMs)
	}

	rr = httptest.NewRecorder()
	h.dashboard.Demo(rr, newRequest(http.MethodGet, "/api/v1/demo", "", nil))

	var demo struct {
		TotalPotentialSavings int `json:"totalPotentialSavings"`
		OptimizationScore     int `json:"optimizationScore"`
	}
	decode(t, rr, &demo)
	if demo.TotalPotentialSavings != 2150 || demo.OptimizationScore != 64 {
		t.Errorf("demo = %+v, want 2150 / 64", demo)
	}
}

func TestSetupHandler(t *testing.T) {
	h := newHarness(t)
	cookies := h.acquire(t)

	t.Run("template download", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.setup.Template(rr, newRequest(http.MethodGet, "/api/v1/setup/template", "", nil))

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rr.Code)
		}
		if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, setup.TemplateFilename) {
			t.Errorf("Content-Disposition = %q", cd)
		}
		tpl, err := setup.ParseTemplate(rr.Body.Bytes())
		if err != nil {
			t.Fatalf("ParseTemplate() error = %v", err)
		}
		if _, ok := tpl.Parameters[setup.ExternalIDParameter]; !ok {
			t.Error("template has no ExternalId parameter")
		}
	})

	t.Run("script uses session external id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.setup.Script(rr, newRequest(http.MethodGet, "/api/v1/setup/script", "", cookies))

		var s struct {
			ExternalID string `json:"externalId"`
			Script     string `json:"script"`
		}
		decode(t, rr, &s)
		if s.ExternalID == "" || !strings.Contains(s.Script, s.ExternalID) {
			t.Errorf("script does not embed external id %q", s.ExternalID)
		}
	})

	t.Run("instructions follow view method", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.view.Dispatch(rr, withAction(newRequest(http.MethodPost, "/api/v1/view/start", "", cookies), "start"))
		rr = httptest.NewRecorder()
		h.view.Dispatch(rr, withAction(newRequest(http.MethodPost, "/api/v1/view/method", `{"method":"cli"}`, cookies), "method"))

		rr = httptest.NewRecorder()
		h.setup.Instructions(rr, newRequest(http.MethodGet, "/api/v1/setup/instructions", "", cookies))

		var in struct {
			Method string `json:"method"`
			Script string `json:"script"`
		}
		decode(t, rr, &in)
		if in.Method != "cli" || in.Script == "" {
			t.Errorf("instructions = %+v, want cli with script", in)
		}
	})

	t.Run("unknown method", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.setup.Instructions(rr, newRequest(http.MethodGet, "/api/v1/setup/instructions?method=terraform", "", cookies))
		if rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rr.Code)
		}
	})
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestHealthHandler_Readyz(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Format: "json"})

	tests := []struct {
		name       string
		store      Pinger
		wantStatus int
	}{
		{name: "no sql store", store: nil, wantStatus: http.StatusOK},
		{name: "store up", store: fakePinger{}, wantStatus: http.StatusOK},
		{name: "store down", store: fakePinger{err: errors.New("connection refused")}, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.store, "sql", log)
			rr := httptest.NewRecorder()
			handler.Readyz(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
		})
	}
}
