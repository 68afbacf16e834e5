// Package tween animates numeric counters. The easing math is pure; Run only
// supplies the frame schedule.
package tween

import (
	"context"
	"math"
	"time"
)

// EaseOutCubic maps progress t in [0,1] to an eased progress in [0,1].
func EaseOutCubic(t float64) float64 {
	t = clamp(t)
	return 1 - math.Pow(1-t, 3)
}

// Value returns the interpolated value after elapsed of duration.
// Once elapsed reaches duration the exact target is returned.
func Value(from, to float64, elapsed, duration time.Duration) float64 {
	if duration <= 0 || elapsed >= duration {
		return to
	}
	if elapsed <= 0 {
		return from
	}
	p := EaseOutCubic(float64(elapsed) / float64(duration))
	return from + (to-from)*p
}

// Run calls frame with interpolated values every tick until the target is
// reached or ctx is done. The last frame always carries the target unless ctx
// ended first. It returns ctx.Err() when cancelled.
func Run(ctx context.Context, from, to float64, duration, tick time.Duration, frame func(float64)) error {
	if tick <= 0 {
		tick = 16 * time.Millisecond
	}

	start := time.Now()
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	frame(from)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			elapsed := time.Since(start)
			frame(Value(from, to, elapsed, duration))
			if elapsed >= duration {
				return nil
			}
		}
	}
}

func clamp(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}
