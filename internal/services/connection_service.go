package services

import (
	"context"
	"math/rand"
	"time"

	"github.com/pandey-solutions/saves/internal/domain/connection"
	"github.com/pandey-solutions/saves/internal/domain/session"
	"github.com/pandey-solutions/saves/internal/pkg/logger"
	"github.com/pandey-solutions/saves/internal/pkg/metrics"
)

// RandomInjector fails a verification with a fixed probability, drawn fresh
// on every call.
type RandomInjector struct {
	Rate float64
}

func (r RandomInjector) Fail() bool {
	return rand.Float64() < r.Rate
}

// ConnectionService implements connection.Service. Verification is
// simulated: nothing is sent to AWS.
type ConnectionService struct {
	sessions session.Service
	injector connection.FailureInjector
	latency  time.Duration
	logger   *logger.Logger
}

// NewConnectionService creates a new connection service
func NewConnectionService(sessions session.Service, injector connection.FailureInjector, latency time.Duration, log *logger.Logger) *ConnectionService {
	return &ConnectionService{
		sessions: sessions,
		injector: injector,
		latency:  latency,
		logger:   log,
	}
}

// Validate checks the shape of roleArn
func (s *ConnectionService) Validate(roleArn string) *connection.Failure {
	return connection.ValidateRoleArn(roleArn)
}

// Connect validates roleArn, waits out the simulated verification latency
// and persists the ARN on success. Failures are returned both in the result
// and as the error. If ctx ends during the wait the attempt is abandoned and
// ctx.Err() is returned.
func (s *ConnectionService) Connect(ctx context.Context, local session.LocalStore, sessionID, roleArn string) (*connection.Result, error) {
	if f := connection.ValidateRoleArn(roleArn); f != nil {
		metrics.RecordConnectAttempt(string(f.Type), 0)
		return &connection.Result{Status: connection.StatusFailed, RoleArn: roleArn, Failure: f}, f
	}

	accountID := connection.AccountID(roleArn)
	log := s.logger.WithFields(map[string]interface{}{
		"session_id": sessionID,
		"account_id": accountID,
	})

	start := time.Now()
	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		log.Debug("Connection attempt abandoned")
		return nil, ctx.Err()
	case <-timer.C:
	}
	elapsed := time.Since(start)

	if s.injector != nil && s.injector.Fail() {
		f := connection.NewNetworkTimeout()
		metrics.RecordConnectAttempt(string(f.Type), elapsed)
		log.Warn("Simulated role verification failed")
		return &connection.Result{Status: connection.StatusFailed, RoleArn: roleArn, AccountID: accountID, Failure: f}, f
	}

	sink := s.sessions.AttachRole(ctx, local, sessionID, roleArn)
	metrics.RecordConnectAttempt(string(connection.StatusSuccess), elapsed)
	log.With("persisted_to", sink).Info("AWS account connected")

	return &connection.Result{
		Status:      connection.StatusSuccess,
		RoleArn:     roleArn,
		AccountID:   accountID,
		PersistedTo: sink,
	}, nil
}

var _ connection.Service = (*ConnectionService)(nil)
