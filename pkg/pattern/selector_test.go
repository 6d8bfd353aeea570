package pattern

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/groovio/go-choreo/pkg/audio"
	"github.com/groovio/go-choreo/pkg/beat"
	"github.com/groovio/go-choreo/pkg/frames"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(42, 1))
}

func testPool(t *testing.T) *frames.Pool {
	t.Helper()
	p, err := frames.NewPool([]frames.Frame{
		{ID: 1, Pose: "rest", Tier: frames.TierLow, Direction: frames.DirCenter, Type: frames.TypeBody},
		{ID: 2, Pose: "sway", Tier: frames.TierLow, Direction: frames.DirCenter, Type: frames.TypeBody},
		{ID: 3, Pose: "step_left", Tier: frames.TierMid, Direction: frames.DirLeft, Type: frames.TypeBody},
		{ID: 4, Pose: "step_right", Tier: frames.TierMid, Direction: frames.DirRight, Type: frames.TypeBody},
		{ID: 5, Pose: "groove", Tier: frames.TierMid, Direction: frames.DirCenter, Type: frames.TypeBody},
		{ID: 6, Pose: "jump", Tier: frames.TierHigh, Direction: frames.DirCenter, Type: frames.TypeBody},
		{ID: 7, Pose: "kick", Tier: frames.TierHigh, Direction: frames.DirLeft, Type: frames.TypeBody},
		{ID: 8, Pose: "face", Tier: frames.TierMid, Direction: frames.DirCenter, Type: frames.TypeCloseup},
	})
	if err != nil {
		t.Fatalf("NewPool() error = %v", err)
	}
	return p
}

func contains(pool *frames.Pool, f frames.Frame) bool {
	for _, p := range pool.All() {
		if p.Pose == f.Pose {
			return true
		}
	}
	return false
}

func TestOnBeat_NeverLeavesThePool(t *testing.T) {
	pool := testPool(t)
	s := NewSelector(testRNG())

	for _, p := range All() {
		for i := 0; i < 64; i++ {
			ctx := Context{
				Pattern: p,
				Phase:   beat.PhaseFor(i % beat.BeatsPerBar),
				Clock:   float64(i) * 0.5,
			}
			pick, ok := s.OnBeat(ctx, pool)
			if !ok {
				t.Fatalf("%v: OnBeat returned no frame", p)
			}
			if !contains(pool, pick) {
				t.Fatalf("%v: picked %q which is not in the pool", p, pick.Pose)
			}
		}
	}
}

func TestOnBeat_EmptyPool(t *testing.T) {
	empty, err := frames.NewPool(nil)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSelector(testRNG())

	if _, ok := s.OnBeat(Context{Pattern: Groove}, empty); ok {
		t.Error("OnBeat on an empty pool should report no frame")
	}
	if _, ok := s.OnBeat(Context{Pattern: Groove}, nil); ok {
		t.Error("OnBeat on a nil pool should report no frame")
	}
}

func TestABAB_StrictAlternation(t *testing.T) {
	pool, err := frames.NewPool([]frames.Frame{
		{ID: 1, Pose: "x", Tier: frames.TierLow, Type: frames.TypeBody},
		{ID: 2, Pose: "y", Tier: frames.TierLow, Type: frames.TypeBody},
	})
	if err != nil {
		t.Fatal(err)
	}
	s := NewSelector(testRNG())
	ctx := Context{Pattern: ABAB, Phase: beat.PhaseWarmup}

	want := []string{"x", "y", "x", "y", "x", "y"}
	for i, w := range want {
		pick, ok := s.OnBeat(ctx, pool)
		if !ok {
			t.Fatal("OnBeat returned no frame")
		}
		if pick.Pose != w {
			t.Errorf("beat %d: picked %q, want %q", i, pick.Pose, w)
		}
	}
}

func TestAABB_HoldsForTwoBeats(t *testing.T) {
	pool := testPool(t)
	s := NewSelector(testRNG())
	ctx := Context{Pattern: AABB, Phase: beat.PhaseSwingLeft}

	for pair := 0; pair < 8; pair++ {
		first, _ := s.OnBeat(ctx, pool)
		second, _ := s.OnBeat(ctx, pool)
		if first.Pose != second.Pose {
			t.Fatalf("pair %d: %q then %q, want the pick held", pair, first.Pose, second.Pose)
		}
	}
}

func TestABAC_ReturnsToAnchor(t *testing.T) {
	pool := testPool(t)
	s := NewSelector(testRNG())
	ctx := Context{Pattern: ABAC, Phase: beat.PhaseSwingLeft}

	a1, _ := s.OnBeat(ctx, pool)
	s.OnBeat(ctx, pool) // B
	a2, _ := s.OnBeat(ctx, pool)
	s.OnBeat(ctx, pool) // C

	if a1.Pose != a2.Pose {
		t.Errorf("third beat should return to the anchor: %q vs %q", a1.Pose, a2.Pose)
	}
}

func TestPoolTable(t *testing.T) {
	pool := testPool(t)

	tests := []struct {
		pattern Pattern
		check   func(frames.Frame) bool
		desc    string
	}{
		{Impact, func(f frames.Frame) bool { return f.Tier == frames.TierHigh }, "high tier"},
		{BuildDrop, func(f frames.Frame) bool { return f.Tier == frames.TierHigh }, "high tier"},
		{Minimal, func(f frames.Frame) bool { return f.Tier == frames.TierLow }, "low tier"},
		{Emote, func(f frames.Frame) bool { return f.Type == frames.TypeCloseup }, "closeup"},
		{Groove, func(f frames.Frame) bool { return f.Tier == frames.TierMid && f.Type == frames.TypeBody }, "mid tier"},
		{Flow, func(f frames.Frame) bool { return f.Tier == frames.TierMid && f.Type == frames.TypeBody }, "mid tier"},
		{Footwork, func(f frames.Frame) bool {
			return f.Tier == frames.TierMid && f.Direction != frames.DirCenter
		}, "directional mid tier"},
	}

	for _, tt := range tests {
		s := NewSelector(testRNG())
		for i := 0; i < 32; i++ {
			pick, ok := s.OnBeat(Context{Pattern: tt.pattern, Phase: beat.PhaseWarmup}, pool)
			if !ok {
				t.Fatalf("%v: no frame", tt.pattern)
			}
			if !tt.check(pick) {
				t.Fatalf("%v: picked %q, want %s", tt.pattern, pick.Pose, tt.desc)
			}
		}
	}
}

func TestDefaultPattern_TrendPromotesHighTier(t *testing.T) {
	pool := testPool(t)
	s := NewSelector(testRNG())

	ctx := Context{Pattern: PingPong, Phase: beat.PhaseWarmup, Trend: 0.4}
	for i := 0; i < 16; i++ {
		pick, _ := s.OnBeat(ctx, pool)
		if pick.Tier != frames.TierHigh {
			t.Fatalf("rising trend picked %q (tier %v), want high tier", pick.Pose, pick.Tier)
		}
	}
}

func TestDefaultPattern_PhaseDirectionFilter(t *testing.T) {
	pool := testPool(t)
	s := NewSelector(testRNG())

	ctx := Context{Pattern: PingPong, Phase: beat.PhaseSwingLeft}
	for i := 0; i < 16; i++ {
		pick, _ := s.OnBeat(ctx, pool)
		if pick.Direction != frames.DirLeft {
			t.Fatalf("swing left picked %q leaning %v, want left", pick.Pose, pick.Direction)
		}
	}
}

func TestDefaultPattern_AntiRepeat(t *testing.T) {
	pool := testPool(t)
	s := NewSelector(testRNG())

	ctx := Context{Pattern: Groove, Phase: beat.PhaseWarmup}
	prev, _ := s.OnBeat(ctx, pool)
	repeats := 0
	for i := 0; i < 64; i++ {
		pick, _ := s.OnBeat(ctx, pool)
		if pick.Pose == prev.Pose {
			repeats++
		}
		prev = pick
	}
	// Three retries over a 5-frame mid pool make immediate repeats rare.
	if repeats > 3 {
		t.Errorf("%d immediate repeats over 64 beats, anti-repeat not working", repeats)
	}
}

func TestReroll_OnlyForStutterFamily(t *testing.T) {
	pool := testPool(t)
	s := NewSelector(testRNG())

	if _, ok := s.Reroll(Context{Pattern: Groove}, pool); ok {
		t.Error("groove must not reroll between beats")
	}

	fired := 0
	for i := 0; i < 100; i++ {
		if _, ok := s.Reroll(Context{Pattern: Stutter}, pool); ok {
			fired++
		}
	}
	// ~70% chance per call.
	if fired < 50 || fired > 90 {
		t.Errorf("stutter rerolled %d/100 times, want around 70", fired)
	}
}

func TestCloseup_FiresAndLocks(t *testing.T) {
	pool := testPool(t)
	s := NewSelector(testRNG())
	bright := audio.Features{High: 0.8, Mid: 0.6, Bass: 0.2, BPM: 120}

	// Eligible spectrum eventually fires a closeup.
	clock := 0.0
	var fired bool
	for i := 0; i < 200 && !fired; i++ {
		clock += 1.0 / 60
		if pick, ok := s.MaybeCloseup(bright, clock, pool); ok {
			fired = true
			if pick.Type != frames.TypeCloseup {
				t.Errorf("closeup pick %q has type %v", pick.Pose, pick.Type)
			}
		}
	}
	if !fired {
		t.Fatal("closeup never fired on an eligible spectrum")
	}

	// The lock is open and steers beat picks to closeups.
	if !s.LockActive(clock) {
		t.Fatal("lock should be open right after a closeup fired")
	}
	pick, _ := s.OnBeat(Context{Pattern: Groove, Clock: clock}, pool)
	if pick.Type != frames.TypeCloseup {
		t.Errorf("locked beat pick %q, want a closeup", pick.Pose)
	}

	// No second closeup can fire while the lock is open.
	if _, ok := s.MaybeCloseup(bright, clock+0.1, pool); ok {
		t.Error("closeup fired inside the lock window")
	}

	// The lock expires after its window.
	if s.LockActive(clock + CloseupLockSeconds + 0.1) {
		t.Error("lock should have expired")
	}
}

func TestCloseup_GatesSpectrum(t *testing.T) {
	pool := testPool(t)
	s := NewSelector(testRNG())

	// Heavy bass disqualifies the closeup no matter the highs.
	bassy := audio.Features{High: 0.9, Mid: 0.6, Bass: 0.9, BPM: 120}
	for i := 0; i < 200; i++ {
		if _, ok := s.MaybeCloseup(bassy, float64(i)/60, pool); ok {
			t.Fatal("closeup fired on a bass-heavy spectrum")
		}
	}
}

func TestSequenceModes_WalkThePool(t *testing.T) {
	pool, err := frames.NewPool([]frames.Frame{
		{ID: 1, Pose: "a", Tier: frames.TierLow, Type: frames.TypeBody},
		{ID: 2, Pose: "b", Tier: frames.TierLow, Type: frames.TypeBody},
		{ID: 3, Pose: "c", Tier: frames.TierLow, Type: frames.TypeBody},
	})
	if err != nil {
		t.Fatal(err)
	}

	s := NewSelector(testRNG())
	ctx := Context{Pattern: PingPong, SequenceMode: SeqForward, Phase: beat.PhaseWarmup}
	want := []string{"b", "c", "a", "b", "c", "a"}
	for i, w := range want {
		pick, _ := s.OnBeat(ctx, pool)
		if pick.Pose != w {
			t.Errorf("forward beat %d: %q, want %q", i, pick.Pose, w)
		}
	}

	s = NewSelector(testRNG())
	ctx.SequenceMode = SeqPingPong
	want = []string{"b", "c", "b", "a", "b", "c"}
	for i, w := range want {
		pick, _ := s.OnBeat(ctx, pool)
		if pick.Pose != w {
			t.Errorf("pingpong beat %d: %q, want %q", i, pick.Pose, w)
		}
	}
}

func TestParse_RoundTrip(t *testing.T) {
	for _, p := range All() {
		got, err := Parse(p.String())
		if err != nil {
			t.Errorf("Parse(%q) error = %v", p.String(), err)
		}
		if got != p {
			t.Errorf("Parse(%q) = %v, want %v", p.String(), got, p)
		}
	}
	if _, err := Parse("moonwalk"); !errors.Is(err, ErrUnknownPattern) {
		t.Errorf("Parse(moonwalk) error = %v, want ErrUnknownPattern", err)
	}
	if _, err := ParseSequenceMode("backward"); !errors.Is(err, ErrUnknownSequenceMode) {
		t.Errorf("ParseSequenceMode(backward) error = %v, want ErrUnknownSequenceMode", err)
	}
}
