// Package beat turns detected beat events into beat/bar/phrase counters
// and the coarse choreography phase the pattern selector keys off.
package beat

import (
	"fmt"

	"github.com/groovio/go-choreo/pkg/audio"
	"github.com/groovio/go-choreo/pkg/frames"
)

// Musical structure: 16 beats to a bar, 8 bars to a phrase.
const (
	BeatsPerBar   = 16
	BarsPerPhrase = 8
)

// Beat acceptance gates. Upstream detectors fire on hi-hats and noise
// spikes; the debounce and bass gate keep only the pulse we dance to.
const (
	DebounceSeconds = 0.4
	BassGate        = 0.55
)

// Phase is the coarse position within the current bar.
type Phase int

const (
	PhaseWarmup Phase = iota
	PhaseSwingLeft
	PhaseSwingRight
	PhaseDrop
)

func (p Phase) String() string {
	switch p {
	case PhaseWarmup:
		return "warmup"
	case PhaseSwingLeft:
		return "swing_left"
	case PhaseSwingRight:
		return "swing_right"
	case PhaseDrop:
		return "drop"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Direction returns the pose direction the phase favors.
func (p Phase) Direction() frames.Direction {
	switch p {
	case PhaseSwingLeft:
		return frames.DirLeft
	case PhaseSwingRight:
		return frames.DirRight
	}
	return frames.DirCenter
}

// PhaseFor maps a beat-in-bar position to its phase. Pure function:
// [0,4) warmup, [4,8) swing left, [8,12) swing right, [12,16) drop.
func PhaseFor(beatInBar int) Phase {
	switch {
	case beatInBar < 4:
		return PhaseWarmup
	case beatInBar < 8:
		return PhaseSwingLeft
	case beatInBar < 12:
		return PhaseSwingRight
	default:
		return PhaseDrop
	}
}

// Tracker accepts beat events and maintains the musical counters.
// Time is accumulated from deltaTime, never read from the wall clock,
// so the tracker behaves identically at any tick rate.
type Tracker struct {
	clock      float64
	lastAccept float64
	hasBeat    bool

	accepted  int // total accepted beats
	beatInBar int
	barCount  int
}

// Tick advances the tracker clock and evaluates the tick's features.
// It returns true when a beat is accepted. A beat passes only when the
// detector flagged one, the bass is strong enough, and the debounce
// window since the last accepted beat has elapsed.
func (t *Tracker) Tick(f audio.Features, dt float64) bool {
	t.clock += dt

	if !f.IsBeat || f.Bass < BassGate {
		return false
	}
	if t.hasBeat && t.clock-t.lastAccept < DebounceSeconds {
		return false
	}

	t.lastAccept = t.clock
	t.hasBeat = true
	t.beatInBar = t.accepted % BeatsPerBar
	t.barCount = t.accepted / BeatsPerBar
	t.accepted++
	return true
}

// Phase returns the phase of the most recently accepted beat.
func (t *Tracker) Phase() Phase { return PhaseFor(t.beatInBar) }

// BeatInBar returns the current position within the bar, 0..15.
func (t *Tracker) BeatInBar() int { return t.beatInBar }

// BarCount returns the number of completed 16-beat bars.
func (t *Tracker) BarCount() int { return t.barCount }

// PhraseCounter returns the bar position within the 8-bar phrase.
func (t *Tracker) PhraseCounter() int { return t.barCount % BarsPerPhrase }

// BeatCount returns the total number of accepted beats.
func (t *Tracker) BeatCount() int { return t.accepted }

// Clock returns the accumulated engine time in seconds.
func (t *Tracker) Clock() float64 { return t.clock }

// Reset clears all counters and the accumulated clock.
func (t *Tracker) Reset() {
	*t = Tracker{}
}
