// Package engine runs one channel of the choreography pipeline: audio
// features in, a render descriptor out, once per rendered frame.
package engine

import (
	"fmt"
	"math/rand/v2"

	"github.com/groovio/go-choreo/pkg/audio"
	"github.com/groovio/go-choreo/pkg/beat"
	"github.com/groovio/go-choreo/pkg/frames"
	"github.com/groovio/go-choreo/pkg/laban"
	"github.com/groovio/go-choreo/pkg/pattern"
	"github.com/groovio/go-choreo/pkg/physics"
	"github.com/groovio/go-choreo/pkg/transition"
	"github.com/groovio/go-choreo/pkg/trigger"
)

// Mode selects how the engine picks frames.
type Mode int

const (
	// ModePattern picks frames on the beat grid via the pattern selector.
	ModePattern Mode = iota
	// ModeKinetic suspends beat-driven selection; the pose follows the
	// pointer, and picks follow its horizontal zone and speed.
	ModeKinetic
)

func (m Mode) String() string {
	switch m {
	case ModePattern:
		return "pattern"
	case ModeKinetic:
		return "kinetic"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode resolves an engine mode name from the control surface.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "pattern":
		return ModePattern, nil
	case "kinetic":
		return ModeKinetic, nil
	}
	return ModePattern, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Engine is one channel's full pipeline. It is single-threaded by
// contract: one Tick per rendered frame, no concurrent mutation.
type Engine struct {
	rng  *rand.Rand
	pool *frames.Pool

	history  audio.EnergyHistory
	tracker  beat.Tracker
	selector *pattern.Selector
	trans    transition.Controller
	integ    *physics.Integrator
	overlay  *trigger.Overlay
	effort   laban.Effort

	pat     pattern.Pattern
	seqMode pattern.SequenceMode
	mode    Mode
	lastBPM float64
	noFrame bool

	kinetic kineticState
}

// New creates an engine with no frames loaded. The RNG drives both the
// selector and the trigger overlay; seed it for reproducible runs.
func New(rng *rand.Rand) *Engine {
	return &Engine{
		rng:      rng,
		selector: pattern.NewSelector(rng),
		integ:    physics.NewIntegrator(physics.StyleLegacy),
		overlay:  trigger.NewOverlay(rng),
		kinetic:  newKineticState(),
	}
}

// LoadFrames builds the frame pool the engine samples from. The pool is
// immutable once built; loading replaces it wholesale.
func (e *Engine) LoadFrames(fs []frames.Frame) error {
	pool, err := frames.NewPool(fs)
	if err != nil {
		return err
	}
	e.pool = pool
	return nil
}

// SetPool installs an already-built pool. Pools may be shared across
// engines; they are read-only.
func (e *Engine) SetPool(p *frames.Pool) { e.pool = p }

// SetPattern switches the selection pattern.
func (e *Engine) SetPattern(p pattern.Pattern) error {
	if p < pattern.PingPong || p > pattern.Minimal {
		return fmt.Errorf("%w: %d", ErrInvalidPattern, int(p))
	}
	e.pat = p
	return nil
}

// Pattern returns the active selection pattern.
func (e *Engine) Pattern() pattern.Pattern { return e.pat }

// SetPhysicsStyle switches the spring tuning.
func (e *Engine) SetPhysicsStyle(s physics.Style) error {
	if s != physics.StyleLegacy && s != physics.StyleLaban {
		return fmt.Errorf("%w: %d", ErrInvalidStyle, int(s))
	}
	e.integ.SetStyle(s)
	return nil
}

// SetMode switches between pattern-driven and kinetic selection.
func (e *Engine) SetMode(m Mode) error {
	if m != ModePattern && m != ModeKinetic {
		return fmt.Errorf("%w: %d", ErrInvalidMode, int(m))
	}
	e.mode = m
	return nil
}

// Mode returns the active engine mode.
func (e *Engine) Mode() Mode { return e.mode }

// SetSequenceMode shapes the default pick strategy's pool walk.
func (e *Engine) SetSequenceMode(m pattern.SequenceMode) error {
	if m != pattern.SeqRandom && m != pattern.SeqForward && m != pattern.SeqPingPong {
		return fmt.Errorf("%w: %d", ErrInvalidSequenceMode, int(m))
	}
	e.seqMode = m
	return nil
}

// SetTrigger updates one held trigger.
func (e *Engine) SetTrigger(name string, held bool) error {
	return e.overlay.Set(name, held)
}

// SetKineticPosition moves the kinetic pointer target, both axes in [0,1].
func (e *Engine) SetKineticPosition(x, y float64) {
	e.kinetic.setTarget(x, y)
}

// Tracker exposes the beat counters for status reporting.
func (e *Engine) Tracker() *beat.Tracker { return &e.tracker }

// PhysicsStyle returns the active spring tuning.
func (e *Engine) PhysicsStyle() physics.Style { return e.integ.Style() }

// SequenceMode returns the active sequence mode.
func (e *Engine) SequenceMode() pattern.SequenceMode { return e.seqMode }

// Triggers returns the currently held trigger inputs.
func (e *Engine) Triggers() trigger.Inputs { return e.overlay.Inputs() }

// Reset returns the engine to its initial state, keeping the loaded
// pool and the configured pattern/mode. Explicit user action only.
func (e *Engine) Reset() {
	e.history.Reset()
	e.tracker.Reset()
	e.selector.Reset()
	e.trans = transition.Controller{}
	e.integ.Reset()
	e.effort = laban.Neutral()
	e.noFrame = false
	e.kinetic = newKineticState()
}

// Tick runs one frame of the pipeline and returns the render descriptor.
// Features are sanitized at entry; dt is clamped into [0, MaxDeltaTime]
// so a bad clock sample cannot run the tracker or a blend backwards.
func (e *Engine) Tick(f audio.Features, dt float64) RenderFrame {
	f = audio.Sanitize(f, e.lastBPM)
	e.lastBPM = f.BPM
	if dt < 0 {
		dt = 0
	} else if dt > physics.MaxDeltaTime {
		dt = physics.MaxDeltaTime
	}

	e.history.Push(f.Energy)
	e.effort = laban.Derive(f.Bass, f.Mid, f.High, f.Energy, e.history.Average())

	beatAccepted := e.tracker.Tick(f, dt)

	if e.mode == ModeKinetic {
		e.tickKinetic(f, dt)
	} else {
		e.tickPattern(f, beatAccepted)
	}

	e.trans.Advance(dt)
	e.integ.Tick(f, e.effort, dt)
	if beatAccepted {
		e.integ.OnBeat(f.Bass, e.effort)
	}
	if e.mode == ModeKinetic {
		// The pointer spring owns the position while kinetic; centered
		// pointer means no offset.
		e.integ.SetOffset(e.kinetic.posX-0.5, e.kinetic.posY-0.5)
	}
	e.overlay.Apply(&e.trans, e.integ)

	return e.render()
}

// tickPattern runs the beat-grid selection path.
func (e *Engine) tickPattern(f audio.Features, beatAccepted bool) {
	ctx := pattern.Context{
		Pattern:      e.pat,
		SequenceMode: e.seqMode,
		Phase:        e.tracker.Phase(),
		Trend:        e.history.Trend(f.Energy),
		Features:     f,
		Clock:        e.tracker.Clock(),
	}

	// Closeups fire independently of the beat grid.
	if pick, ok := e.selector.MaybeCloseup(f, ctx.Clock, e.pool); ok {
		e.trans.Start(pick, transition.ModeZoomIn)
	}

	if beatAccepted {
		pick, ok := e.selector.OnBeat(ctx, e.pool)
		if !ok {
			e.noFrame = true
			return
		}
		e.noFrame = false
		e.trans.Start(pick, modeFor(ctx.Phase, e.pat))
		return
	}

	// Stutter-family patterns re-pick between beats, always as cuts.
	if pick, ok := e.selector.Reroll(ctx, e.pool); ok {
		e.trans.Start(pick, transition.ModeCut)
	}
}

// modeFor chooses the blend style from the musical context.
func modeFor(phase beat.Phase, p pattern.Pattern) transition.Mode {
	switch p {
	case pattern.Stutter, pattern.SnareRoll, pattern.Impact:
		return transition.ModeCut
	case pattern.Emote:
		return transition.ModeZoomIn
	case pattern.Flow:
		return transition.ModeSmooth
	}

	switch phase {
	case beat.PhaseDrop:
		return transition.ModeCut
	case beat.PhaseSwingLeft, beat.PhaseSwingRight:
		return transition.ModeSlide
	}
	return transition.ModeMorph
}

// render assembles the tick's output descriptor.
func (e *Engine) render() RenderFrame {
	if !e.trans.HasFrame() {
		return RenderFrame{NoFrame: true, Physics: e.integ.State()}
	}

	src, dst := e.trans.SlideOffsets()
	return RenderFrame{
		SourceID:       e.trans.Source().ID,
		TargetID:       e.trans.Target().ID,
		SourcePose:     e.trans.Source().Pose,
		TargetPose:     e.trans.Target().Pose,
		Blend:          e.trans.Blend(),
		TransitionMode: e.trans.Mode().String(),
		SourceScale:    e.trans.SourceScale(),
		SourceOffsetX:  src,
		TargetOffsetX:  dst,
		Physics:        e.integ.State(),
		NoFrame:        e.noFrame,
	}
}
