// Package mixer owns up to four independent engine instances and
// composites their output into one layer stack per tick.
package mixer

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/groovio/go-choreo/pkg/audio"
	"github.com/groovio/go-choreo/pkg/beat"
	"github.com/groovio/go-choreo/pkg/engine"
	"github.com/groovio/go-choreo/pkg/frames"
)

// NumChannels is the fixed channel count.
const NumChannels = 4

var (
	// ErrUnknownChannel is returned for a channel id outside 0..3.
	ErrUnknownChannel = errors.New("unknown channel")

	// ErrInvalidChannelMode is returned for an unknown channel mode.
	ErrInvalidChannelMode = errors.New("invalid channel mode")
)

// ChannelMode decides how a channel participates in the composite.
type ChannelMode int

const (
	// ModeOff channels are neither ticked nor rendered.
	ModeOff ChannelMode = iota
	// ModeSequencer channels run the full pipeline as a main visual.
	ModeSequencer
	// ModeLayer channels run identically but composite as overlays at
	// their opacity, in ascending channel order.
	ModeLayer
)

func (m ChannelMode) String() string {
	switch m {
	case ModeOff:
		return "off"
	case ModeSequencer:
		return "sequencer"
	case ModeLayer:
		return "layer"
	}
	return fmt.Sprintf("channel_mode(%d)", int(m))
}

// ParseChannelMode resolves a channel mode name.
func ParseChannelMode(s string) (ChannelMode, error) {
	switch s {
	case "off":
		return ModeOff, nil
	case "sequencer":
		return ModeSequencer, nil
	case "layer":
		return ModeLayer, nil
	}
	return ModeOff, fmt.Errorf("%w: %q", ErrInvalidChannelMode, s)
}

// channel pairs one engine with its compositing settings. Engines are
// never shared between channels.
type channel struct {
	engine  *engine.Engine
	mode    ChannelMode
	opacity float64
}

// Layer is one channel's contribution to a composited tick.
type Layer struct {
	Channel int                `json:"channel"`
	Mode    string             `json:"mode"`
	Opacity float64            `json:"opacity"`
	Frame   engine.RenderFrame `json:"frame"`
}

// Composite is the mixer's per-tick output: the active layers in
// ascending channel order. Off channels do not appear.
type Composite struct {
	Layers []Layer `json:"layers"`
}

// ChannelStatus is a channel snapshot for the status surface.
type ChannelStatus struct {
	ID           int     `json:"id"`
	Mode         string  `json:"mode"`
	Opacity      float64 `json:"opacity"`
	Pattern      string  `json:"pattern"`
	EngineMode   string  `json:"engine_mode"`
	PhysicsStyle string  `json:"physics_style"`
	SequenceMode string  `json:"sequence_mode"`
	BeatCount    int     `json:"beat_count"`
	BeatInBar    int     `json:"beat_in_bar"`
	BarCount     int     `json:"bar_count"`
	Phrase       int     `json:"phrase"`
	Phase        string  `json:"phase"`
}

// Mixer owns the four channels. Channel 0 starts as a sequencer at
// full opacity; the rest start off.
type Mixer struct {
	channels [NumChannels]channel
}

// New creates a mixer. Each channel gets its own engine seeded from
// the given seed and its channel id, so channels never share RNG
// state and runs are reproducible.
func New(seed uint64) *Mixer {
	m := &Mixer{}
	for i := range m.channels {
		rng := rand.New(rand.NewPCG(seed, uint64(i)+1))
		m.channels[i] = channel{
			engine:  engine.New(rng),
			opacity: 1,
		}
	}
	m.channels[0].mode = ModeSequencer
	return m
}

// Engine returns the engine behind a channel, for control operations.
func (m *Mixer) Engine(id int) (*engine.Engine, error) {
	if id < 0 || id >= NumChannels {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChannel, id)
	}
	return m.channels[id].engine, nil
}

// SetPool installs a frame pool on one channel. Pools are read-only
// and may be shared across channels.
func (m *Mixer) SetPool(id int, pool *frames.Pool) error {
	eng, err := m.Engine(id)
	if err != nil {
		return err
	}
	eng.SetPool(pool)
	return nil
}

// SetPoolAll installs the same pool on every channel.
func (m *Mixer) SetPoolAll(pool *frames.Pool) {
	for i := range m.channels {
		m.channels[i].engine.SetPool(pool)
	}
}

// SetChannelMode changes how a channel participates in the composite.
func (m *Mixer) SetChannelMode(id int, mode ChannelMode) error {
	if id < 0 || id >= NumChannels {
		return fmt.Errorf("%w: %d", ErrUnknownChannel, id)
	}
	if mode != ModeOff && mode != ModeSequencer && mode != ModeLayer {
		return fmt.Errorf("%w: %d", ErrInvalidChannelMode, int(mode))
	}
	m.channels[id].mode = mode
	return nil
}

// SetChannelOpacity sets a channel's compositing opacity, clamped to [0,1].
func (m *Mixer) SetChannelOpacity(id int, v float64) error {
	if id < 0 || id >= NumChannels {
		return fmt.Errorf("%w: %d", ErrUnknownChannel, id)
	}
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	m.channels[id].opacity = v
	return nil
}

// ResetChannel returns one channel's engine to its initial state.
func (m *Mixer) ResetChannel(id int) error {
	eng, err := m.Engine(id)
	if err != nil {
		return err
	}
	eng.Reset()
	return nil
}

// Tick advances every active channel with the same features snapshot
// and returns the composited layer stack. Off channels are skipped
// entirely; their engines hold their state.
func (m *Mixer) Tick(f audio.Features, dt float64) Composite {
	var out Composite
	for i := range m.channels {
		ch := &m.channels[i]
		if ch.mode == ModeOff {
			continue
		}
		out.Layers = append(out.Layers, Layer{
			Channel: i,
			Mode:    ch.mode.String(),
			Opacity: ch.opacity,
			Frame:   ch.engine.Tick(f, dt),
		})
	}
	return out
}

// Status snapshots all four channels.
func (m *Mixer) Status() []ChannelStatus {
	out := make([]ChannelStatus, 0, NumChannels)
	for i := range m.channels {
		ch := &m.channels[i]
		tr := ch.engine.Tracker()
		out = append(out, ChannelStatus{
			ID:           i,
			Mode:         ch.mode.String(),
			Opacity:      ch.opacity,
			Pattern:      ch.engine.Pattern().String(),
			EngineMode:   ch.engine.Mode().String(),
			PhysicsStyle: ch.engine.PhysicsStyle().String(),
			SequenceMode: ch.engine.SequenceMode().String(),
			BeatCount:    tr.BeatCount(),
			BeatInBar:    tr.BeatInBar(),
			BarCount:     tr.BarCount(),
			Phrase:       tr.PhraseCounter(),
			Phase:        beat.PhaseFor(tr.BeatInBar()).String(),
		})
	}
	return out
}
