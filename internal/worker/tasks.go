package worker

import (
	"context"
	"time"

	"github.com/pandey-solutions/saves/internal/pkg/logger"
)

// IdleEvicter drops entries untouched since cutoff
type IdleEvicter interface {
	EvictIdle(cutoff time.Time) int
}

// Cleaner removes state that no longer carries information
type Cleaner interface {
	Cleanup() int
}

// ViewStateEviction forgets UI state of sessions idle for longer than ttl.
// Session identities themselves are never removed.
func ViewStateEviction(views IdleEvicter, ttl time.Duration, log *logger.Logger) Task {
	return Task{
		Name: "evict-view-state",
		Run: func(ctx context.Context) error {
			if n := views.EvictIdle(time.Now().Add(-ttl)); n > 0 {
				log.With("evicted", n).Debug("Evicted idle view state")
			}
			return nil
		},
	}
}

// LimiterCleanup drops rate limiters whose bucket has refilled
func LimiterCleanup(limiter Cleaner, log *logger.Logger) Task {
	return Task{
		Name: "prune-rate-limiters",
		Run: func(ctx context.Context) error {
			if n := limiter.Cleanup(); n > 0 {
				log.With("removed", n).Debug("Pruned idle rate limiters")
			}
			return nil
		},
	}
}
