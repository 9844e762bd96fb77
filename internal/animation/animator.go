// Package animation drives the eased count-up the dashboard and
// subscription totals share.
package animation

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultDuration is the fixed count-up length.
	DefaultDuration = 2000 * time.Millisecond

	frameInterval = 16 * time.Millisecond
)

// ValueAt computes the displayed value elapsed time into an animation
// toward target, on an ease-out-quadratic curve from zero. At
// elapsed >= duration the result is exactly target; before that it is
// non-decreasing for a non-negative target.
func ValueAt(target float64, elapsed, duration time.Duration) float64 {
	if duration <= 0 || elapsed >= duration {
		return target
	}
	if elapsed <= 0 {
		return 0
	}
	p := float64(elapsed) / float64(duration)
	eased := 1 - (1-p)*(1-p)
	return target * eased
}

// Animator runs one count-up at a time. Starting a new animation
// supersedes and cancels any in-flight one, so two animations never
// race on the same displayed value.
type Animator struct {
	mu       sync.Mutex
	cancel   context.CancelFunc
	duration time.Duration
	onFrame  func(value float64)
}

// New creates an animator. onFrame receives every intermediate value
// and, as the final call of a completed run, the exact target. onFrame
// runs under the animator lock and must not call back into it.
func New(duration time.Duration, onFrame func(value float64)) *Animator {
	if duration <= 0 {
		duration = DefaultDuration
	}
	if onFrame == nil {
		onFrame = func(float64) {}
	}
	return &Animator{
		duration: duration,
		onFrame:  onFrame,
	}
}

// Start animates from 0 to target, cancelling any animation already
// running.
func (a *Animator) Start(target float64) {
	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.mu.Unlock()

	go a.run(ctx, target)
}

// Stop cancels any in-flight animation, leaving the last emitted value
// on screen.
func (a *Animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

func (a *Animator) run(ctx context.Context, target float64) {
	start := time.Now()
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	a.emit(ctx, 0)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			elapsed := time.Since(start)
			if elapsed >= a.duration {
				a.emit(ctx, target)
				return
			}
			a.emit(ctx, ValueAt(target, elapsed, a.duration))
		}
	}
}

// emit delivers one frame unless the run has been superseded. The
// cancellation check and the callback hold the same lock Start and Stop
// cancel under, so once either returns no frame from the old run lands.
func (a *Animator) emit(ctx context.Context, value float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if ctx.Err() != nil {
		return
	}
	a.onFrame(value)
}
