package pattern

import (
	"math/rand/v2"

	"github.com/groovio/go-choreo/pkg/audio"
	"github.com/groovio/go-choreo/pkg/beat"
	"github.com/groovio/go-choreo/pkg/frames"
)

// Selection tuning.
const (
	// TrendThreshold is the energy rise above the moving average that
	// promotes the default pools to the high tier.
	TrendThreshold = 0.15

	// RerollChance applies per tick for the stutter-family patterns.
	RerollChance = 0.7

	// AntiRepeatRetries bounds the random re-picks used to avoid
	// showing the same pose twice in a row.
	AntiRepeatRetries = 3

	// Closeup firing: chance per eligible tick, and the lock window
	// that keeps the closeup on screen once it fires.
	CloseupChance      = 0.35
	CloseupLockSeconds = 2.8
)

// Closeup eligibility gates: bright highs, present mids, little bass.
const (
	closeupHighGate = 0.6
	closeupMidGate  = 0.4
	closeupBassGate = 0.5
)

// Context carries the per-beat inputs the selector reads. The selector
// never mutates pools; it only samples from them.
type Context struct {
	Pattern      Pattern
	SequenceMode SequenceMode
	Phase        beat.Phase
	Trend        float64
	Features     audio.Features
	Clock        float64
}

// Selector picks pose frames. All randomness flows through the injected
// RNG so runs are reproducible under test.
type Selector struct {
	rng *rand.Rand

	// Strategy state.
	abToggle  bool
	aabbPick  frames.Frame
	aabbBeats int
	abacStep  int
	abacOK    bool
	abacA     frames.Frame

	// Sequence cursor for forward/pingpong walks.
	cursor    int
	cursorDir int

	lockUntil float64
	lastPick  frames.Frame
	havePick  bool
}

// NewSelector creates a selector driven by the given RNG.
func NewSelector(rng *rand.Rand) *Selector {
	return &Selector{rng: rng, cursorDir: 1}
}

// LockActive reports whether the closeup lock window is open.
func (s *Selector) LockActive(clock float64) bool {
	return clock < s.lockUntil
}

// Last returns the most recent pick, if any.
func (s *Selector) Last() (frames.Frame, bool) {
	return s.lastPick, s.havePick
}

// Reset clears all strategy state and the closeup lock.
func (s *Selector) Reset() {
	rng := s.rng
	*s = Selector{rng: rng, cursorDir: 1}
}

// OnBeat picks the next frame for an accepted beat. Returns false when
// the pool has no frames at all; the engine then holds the last frame.
func (s *Selector) OnBeat(ctx Context, pool *frames.Pool) (frames.Frame, bool) {
	if pool == nil || pool.Empty() {
		return frames.Frame{}, false
	}

	candidates := s.selectPool(ctx, pool)
	if len(candidates) == 0 {
		candidates = pool.All()
	}

	pick := s.pick(ctx, candidates)
	s.lastPick = pick
	s.havePick = true
	return pick, true
}

// Reroll re-picks between beats for the stutter-family patterns. It
// fires with RerollChance per call and otherwise returns false.
func (s *Selector) Reroll(ctx Context, pool *frames.Pool) (frames.Frame, bool) {
	if !ctx.Pattern.Rerolls() || pool == nil || pool.Empty() {
		return frames.Frame{}, false
	}
	if s.rng.Float64() >= RerollChance {
		return frames.Frame{}, false
	}

	candidates := s.selectPool(ctx, pool)
	if len(candidates) == 0 {
		candidates = pool.All()
	}
	pick := candidates[s.rng.IntN(len(candidates))]
	s.lastPick = pick
	s.havePick = true
	return pick, true
}

// MaybeCloseup fires a closeup independently of beat timing when the
// spectrum suits one and no lock is open. Firing opens the lock window.
func (s *Selector) MaybeCloseup(f audio.Features, clock float64, pool *frames.Pool) (frames.Frame, bool) {
	if pool == nil || len(pool.Closeups()) == 0 {
		return frames.Frame{}, false
	}
	if s.LockActive(clock) {
		return frames.Frame{}, false
	}
	if f.High <= closeupHighGate || f.Mid <= closeupMidGate || f.Bass >= closeupBassGate {
		return frames.Frame{}, false
	}
	if s.rng.Float64() >= CloseupChance {
		return frames.Frame{}, false
	}

	s.lockUntil = clock + CloseupLockSeconds
	closeups := pool.Closeups()
	pick := closeups[s.rng.IntN(len(closeups))]
	s.lastPick = pick
	s.havePick = true
	return pick, true
}

// selectPool applies the pool-selection table.
func (s *Selector) selectPool(ctx Context, pool *frames.Pool) []frames.Frame {
	if s.LockActive(ctx.Clock) && len(pool.Closeups()) > 0 {
		return pool.Closeups()
	}

	switch ctx.Pattern {
	case Impact, BuildDrop:
		return pool.Tier(frames.TierHigh)
	case Minimal:
		return pool.Tier(frames.TierLow)
	case Emote:
		if cu := pool.Closeups(); len(cu) > 0 {
			return cu
		}
		return pool.Tier(frames.TierMid)
	case Chaos:
		return pool.All()
	case Footwork:
		return frames.FilterDirection(pool.Tier(frames.TierMid), frames.DirLeft, frames.DirRight)
	case Groove, Flow:
		return pool.Tier(frames.TierMid)
	}

	// Default: ride the energy trend, otherwise follow the phase.
	if ctx.Trend > TrendThreshold {
		return pool.Tier(frames.TierHigh)
	}
	switch ctx.Phase {
	case beat.PhaseWarmup:
		return pool.Tier(frames.TierLow)
	case beat.PhaseSwingLeft, beat.PhaseSwingRight:
		return frames.FilterDirection(pool.Tier(frames.TierMid), ctx.Phase.Direction())
	default:
		return pool.Tier(frames.TierHigh)
	}
}

// pick applies the pattern's walk strategy within the candidate pool.
func (s *Selector) pick(ctx Context, candidates []frames.Frame) frames.Frame {
	if len(candidates) == 1 {
		return candidates[0]
	}

	switch ctx.Pattern {
	case ABAB:
		// Strict alternation between the pool's ends.
		s.abToggle = !s.abToggle
		if s.abToggle {
			return candidates[0]
		}
		return candidates[len(candidates)-1]

	case AABB:
		// Hold each pick across two consecutive beats.
		if s.aabbBeats > 0 {
			s.aabbBeats--
			return s.aabbPick
		}
		s.aabbPick = s.randomPick(ctx, candidates)
		s.aabbBeats = 1
		return s.aabbPick

	case ABAC:
		// Anchored walk: A, then a fresh frame, back to A, then another.
		step := s.abacStep
		s.abacStep = (s.abacStep + 1) % 4
		if step == 0 || !s.abacOK {
			s.abacA = s.randomPick(ctx, candidates)
			s.abacOK = true
			return s.abacA
		}
		if step == 2 {
			return s.abacA
		}
		return s.randomPick(ctx, candidates)
	}

	// Default strategy, shaped by the sequence mode.
	switch ctx.SequenceMode {
	case SeqForward:
		s.cursor = (s.cursor + 1) % len(candidates)
		return candidates[s.cursor]
	case SeqPingPong:
		s.cursor += s.cursorDir
		if s.cursor >= len(candidates)-1 {
			s.cursor = len(candidates) - 1
			s.cursorDir = -1
		} else if s.cursor <= 0 {
			s.cursor = 0
			s.cursorDir = 1
		}
		return candidates[s.cursor]
	}
	return s.randomPick(ctx, candidates)
}

// randomPick draws uniformly, retrying a few times to avoid repeating
// the previous pose. Chaos allows immediate repeats.
func (s *Selector) randomPick(ctx Context, candidates []frames.Frame) frames.Frame {
	pick := candidates[s.rng.IntN(len(candidates))]
	if ctx.Pattern == Chaos || !s.havePick {
		return pick
	}
	for i := 0; i < AntiRepeatRetries && pick.Pose == s.lastPick.Pose; i++ {
		pick = candidates[s.rng.IntN(len(candidates))]
	}
	return pick
}
