package mixer

import (
	"context"
	"sync"
	"time"

	"github.com/groovio/go-choreo/internal/log"
	"github.com/groovio/go-choreo/pkg/audio"
)

// Runner drives a mixer at a fixed render rate from a push-based
// feature source. Upstream analyzers push features whenever they have
// them; the runner ticks the mixer on its own clock with the latest
// snapshot and measured deltaTime, and fans the composite out to a
// callback.
//
// The mixer itself is single-threaded: only the runner goroutine
// touches it while running.
type Runner struct {
	mixer   *Mixer
	rate    time.Duration
	onFrame func(Composite)

	mu     sync.Mutex
	latest audio.Features
	seen   bool

	tickCount uint64
}

// NewRunner creates a runner at the given frequency. The callback
// receives every composited tick; it must not block.
func NewRunner(m *Mixer, hz int, onFrame func(Composite)) *Runner {
	if hz <= 0 {
		hz = 60
	}
	return &Runner{
		mixer:   m,
		rate:    time.Second / time.Duration(hz),
		onFrame: onFrame,
	}
}

// Push stores the newest features snapshot. Safe to call from any
// goroutine; beat flags are consumed by the next tick.
func (r *Runner) Push(f audio.Features) {
	r.mu.Lock()
	r.latest = f
	r.seen = true
	r.mu.Unlock()
}

// Run drives the tick loop until the context is canceled.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.rate)
	defer ticker.Stop()

	log.Info("runner started", "hz", int(time.Second/r.rate))
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			log.Info("runner stopped", "ticks", r.tickCount)
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			r.mu.Lock()
			f := r.latest
			seen := r.seen
			// A beat pulse drives exactly one tick.
			r.latest.IsBeat = false
			r.mu.Unlock()

			if !seen {
				continue
			}

			composite := r.mixer.Tick(f, dt)
			r.tickCount++
			if r.onFrame != nil {
				r.onFrame(composite)
			}
		}
	}
}
