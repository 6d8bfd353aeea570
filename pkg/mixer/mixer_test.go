package mixer

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/groovio/go-choreo/pkg/audio"
	"github.com/groovio/go-choreo/pkg/frames"
	"github.com/groovio/go-choreo/pkg/pattern"
)

func testMixer(t *testing.T) *Mixer {
	t.Helper()
	m := New(99)
	pool, err := frames.NewPool([]frames.Frame{
		{ID: 1, Pose: "rest", Tier: frames.TierLow, Type: frames.TypeBody},
		{ID: 2, Pose: "groove", Tier: frames.TierMid, Type: frames.TypeBody},
		{ID: 3, Pose: "jump", Tier: frames.TierHigh, Type: frames.TypeBody},
	})
	if err != nil {
		t.Fatal(err)
	}
	m.SetPoolAll(pool)
	return m
}

func beatTick() audio.Features {
	return audio.Features{Bass: 0.8, Energy: 0.7, BPM: 120, IsBeat: true}
}

func TestTick_OffChannelsAreSkipped(t *testing.T) {
	m := testMixer(t)

	c := m.Tick(beatTick(), 1.0/60)
	if len(c.Layers) != 1 || c.Layers[0].Channel != 0 {
		t.Fatalf("default composite = %+v, want only channel 0", c.Layers)
	}

	// An off channel's engine must not advance.
	eng, _ := m.Engine(1)
	if eng.Tracker().BeatCount() != 0 {
		t.Error("off channel consumed a beat")
	}
}

func TestTick_LayersAscendingOrder(t *testing.T) {
	m := testMixer(t)
	m.SetChannelMode(2, ModeLayer)
	m.SetChannelMode(3, ModeLayer)
	m.SetChannelOpacity(3, 0.4)

	c := m.Tick(beatTick(), 1.0/60)
	want := []int{0, 2, 3}
	if len(c.Layers) != len(want) {
		t.Fatalf("composite has %d layers, want %d", len(c.Layers), len(want))
	}
	for i, id := range want {
		if c.Layers[i].Channel != id {
			t.Errorf("layer %d is channel %d, want %d", i, c.Layers[i].Channel, id)
		}
	}
	if c.Layers[2].Opacity != 0.4 {
		t.Errorf("layer opacity = %v, want 0.4", c.Layers[2].Opacity)
	}
}

func TestChannelIsolation(t *testing.T) {
	m := testMixer(t)
	for id := 1; id < NumChannels; id++ {
		m.SetChannelMode(id, ModeLayer)
	}

	// Advance all channels through a couple of beats.
	m.Tick(beatTick(), 1.0/60)
	for i := 0; i < 30; i++ {
		m.Tick(audio.Features{Bass: 0.2, BPM: 120}, 1.0/60)
	}
	m.Tick(beatTick(), 1.0/60)

	before := m.Status()

	// Mutating channel 0 must not alter channels 1..3.
	m.SetChannelOpacity(0, 0.1)
	m.SetChannelMode(0, ModeOff)
	eng0, _ := m.Engine(0)
	eng0.SetPattern(pattern.Chaos)
	eng0.Reset()

	after := m.Status()
	for id := 1; id < NumChannels; id++ {
		if before[id] != after[id] {
			t.Errorf("channel %d changed: %+v -> %+v", id, before[id], after[id])
		}
	}
}

func TestSetters_Validate(t *testing.T) {
	m := testMixer(t)

	if err := m.SetChannelMode(7, ModeLayer); err == nil {
		t.Error("SetChannelMode should reject channel 7")
	}
	if err := m.SetChannelMode(1, ChannelMode(9)); err == nil {
		t.Error("SetChannelMode should reject an unknown mode")
	}
	if err := m.SetChannelOpacity(-1, 0.5); err == nil {
		t.Error("SetChannelOpacity should reject channel -1")
	}

	// Out-of-range opacity clamps rather than errors.
	if err := m.SetChannelOpacity(1, 3.5); err != nil {
		t.Errorf("SetChannelOpacity(3.5) error = %v", err)
	}
	m.SetChannelMode(1, ModeLayer)
	c := m.Tick(beatTick(), 1.0/60)
	if c.Layers[1].Opacity != 1 {
		t.Errorf("opacity = %v, want clamped to 1", c.Layers[1].Opacity)
	}
}

func TestParseChannelMode(t *testing.T) {
	for _, name := range []string{"off", "sequencer", "layer"} {
		mode, err := ParseChannelMode(name)
		if err != nil {
			t.Errorf("ParseChannelMode(%q) error = %v", name, err)
		}
		if mode.String() != name {
			t.Errorf("round trip %q -> %v", name, mode)
		}
	}
	if _, err := ParseChannelMode("solo"); err == nil {
		t.Error("ParseChannelMode should reject unknown names")
	}
}

func TestRunner_DeliversFrames(t *testing.T) {
	m := testMixer(t)

	var delivered atomic.Int64
	r := NewRunner(m, 120, func(Composite) {
		delivered.Add(1)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	r.Push(beatTick())
	_ = r.Run(ctx)

	// 300ms at 120Hz: allow wide margins for scheduler jitter.
	got := delivered.Load()
	if got < 10 {
		t.Errorf("runner delivered %d frames in 300ms at 120Hz", got)
	}

	// The beat pulse is consumed exactly once.
	eng, _ := m.Engine(0)
	if eng.Tracker().BeatCount() != 1 {
		t.Errorf("beat count = %d, want the single pushed beat", eng.Tracker().BeatCount())
	}
}
