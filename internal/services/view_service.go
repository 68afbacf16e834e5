package services

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/pandey-solutions/saves/internal/domain/connection"
	"github.com/pandey-solutions/saves/internal/domain/session"
	"github.com/pandey-solutions/saves/internal/domain/view"
	"github.com/pandey-solutions/saves/internal/pkg/errors"
	"github.com/pandey-solutions/saves/internal/pkg/logger"
	"github.com/pandey-solutions/saves/internal/pkg/metrics"
	"github.com/pandey-solutions/saves/internal/repository/memory"
)

// ViewService owns the per-session UI state and drives the connect flow
// through it.
type ViewService struct {
	store       *memory.ViewStateStore
	connections connection.Service
	logger      *logger.Logger
}

// NewViewService creates a new view service
func NewViewService(store *memory.ViewStateStore, connections connection.Service, log *logger.Logger) *ViewService {
	return &ViewService{
		store:       store,
		connections: connections,
		logger:      log,
	}
}

// State returns the current state for the identity, recording the resolved
// external id on first sight.
func (s *ViewService) State(id session.Identity) view.State {
	st, err := s.store.Update(id.SessionID, func(st view.State) (view.State, error) {
		if st.ExternalID == id.ExternalID {
			return st, nil
		}
		return view.Reduce(st, view.Action{Kind: view.ActionSessionResolved, ExternalID: id.ExternalID})
	})
	if err != nil {
		return s.store.Get(id.SessionID)
	}
	return st
}

// Dispatch applies a navigation action
func (s *ViewService) Dispatch(id session.Identity, action view.Action) (view.State, error) {
	s.State(id)

	st, err := s.store.Update(id.SessionID, func(st view.State) (view.State, error) {
		return view.Reduce(st, action)
	})
	s.reportSize()
	if err != nil {
		return st, mapViewError(err)
	}
	return st, nil
}

// Connect submits roleArn from the wizard. A second submit while an attempt
// is in flight is rejected. The attempt runs to completion even if ctx is
// cancelled so the state never stays loading; the caller just discards it.
func (s *ViewService) Connect(ctx context.Context, local session.LocalStore, id session.Identity, roleArn string) (view.State, *connection.Result, error) {
	s.State(id)

	submitted, err := s.store.Update(id.SessionID, func(st view.State) (view.State, error) {
		if st.View != view.Wizard && !st.Loading {
			st.View = view.Wizard
		}
		return view.Reduce(st, view.Action{Kind: view.ActionSubmit, RoleArn: roleArn})
	})
	if err != nil {
		return s.store.Get(id.SessionID), nil, mapViewError(err)
	}

	result, connErr := s.connections.Connect(context.WithoutCancel(ctx), local, id.SessionID, roleArn)

	outcome := view.Action{Kind: view.ActionConnectSucceeded}
	if connErr != nil || !result.Succeeded() {
		failure := failureOf(result, connErr)
		outcome = view.Action{Kind: view.ActionConnectFailed, Failure: failure}
		if connErr == nil {
			connErr = failure
		}
	}

	// The state may have been evicted from the cache during verification;
	// the outcome is then applied to the state recorded at submit.
	st, err := s.store.Update(id.SessionID, func(st view.State) (view.State, error) {
		if !st.Loading {
			st = submitted
		}
		return view.Reduce(st, outcome)
	})
	if err != nil {
		s.logger.WarnWithErr(err, "Failed to record connection outcome")
	}

	if connErr != nil {
		var f *connection.Failure
		if stderrors.As(connErr, &f) {
			return st, result, f.AppError()
		}
		return st, result, errors.Internal("Connection attempt failed", connErr)
	}
	return st, result, nil
}

// EvictIdle drops view state for sessions idle since before cutoff
func (s *ViewService) EvictIdle(cutoff time.Time) int {
	n := s.store.EvictIdle(cutoff)
	s.reportSize()
	return n
}

func (s *ViewService) reportSize() {
	metrics.SetViewStates(s.store.Len())
}

func failureOf(result *connection.Result, err error) *connection.Failure {
	if result != nil && result.Failure != nil {
		return result.Failure
	}
	var f *connection.Failure
	if stderrors.As(err, &f) {
		return f
	}
	return connection.NewNetworkTimeout()
}

// mapViewError converts reducer errors into API errors
func mapViewError(err error) error {
	switch {
	case stderrors.Is(err, view.ErrConnectInFlight):
		return errors.New(errors.ErrCodeConnectInFlight, "A connection attempt is already in progress", http.StatusConflict)
	case stderrors.Is(err, view.ErrEmptyRoleArn):
		return errors.BadRequest("Role ARN is required")
	case stderrors.Is(err, view.ErrUnknownMethod):
		return errors.BadRequest("Unknown provisioning method")
	case stderrors.Is(err, view.ErrUnknownAction):
		return errors.BadRequest("Unknown view action")
	case stderrors.Is(err, view.ErrInvalidTransition):
		return errors.InvalidAction("Action is not allowed in the current view")
	default:
		return err
	}
}
