package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/groovio/go-choreo/pkg/audio"
	"github.com/groovio/go-choreo/pkg/laban"
)

// ErrUnknownStyle is returned by ParseStyle for an unrecognized name.
var ErrUnknownStyle = errors.New("unknown physics style")

// Style selects the spring tuning.
type Style int

const (
	// StyleLegacy uses the fixed spring constants.
	StyleLegacy Style = iota
	// StyleLaban derives the spring constants from the effort descriptor.
	StyleLaban
)

func (s Style) String() string {
	switch s {
	case StyleLegacy:
		return "legacy"
	case StyleLaban:
		return "laban"
	}
	return fmt.Sprintf("style(%d)", int(s))
}

// ParseStyle parses a style name from the control surface.
func ParseStyle(s string) (Style, error) {
	switch s {
	case "legacy":
		return StyleLegacy, nil
	case "laban":
		return StyleLaban, nil
	}
	return StyleLegacy, fmt.Errorf("%w: %q", ErrUnknownStyle, s)
}

// Legacy spring constants.
const (
	LegacyStiffness = 140.0
	LegacyDamping   = 8.0
	LegacyMaxRot    = 35.0 // degrees
)

// Decay rates (per second) for the relax-to-rest fields.
const (
	SquashDecay   = 12.0
	SkewDecay     = 10.0
	BounceDecay   = 10.0
	FlashDecay    = 15.0
	RGBSplitDecay = 10.0
	HueDecay      = 10.0
	OffsetDecay   = 10.0
	CamZoomDecay  = 5.0
	ColorEase     = 3.0
)

// Beat impulse magnitudes.
const (
	SquashDepth   = 0.12 // squash snaps to 1 - depth on a beat
	BounceImpulse = 0.12 // bounce snaps to -impulse * bass
	FlashFloor    = 0.3  // flash snaps to floor + gain * bass
	FlashBassGain = 0.5
)

// MaxDeltaTime caps one integration step. A resume after backgrounding
// must not teleport the pose or destabilize the spring.
const MaxDeltaTime = 0.1

// idleSwayRate is the angular rate of the idle Y sway in rad/s.
const idleSwayRate = 5.0

// Integrator runs the per-channel physics simulation.
type Integrator struct {
	style Style
	state State

	// Spring velocities per rotation axis.
	velX, velY, velZ float64

	clock float64
}

// NewIntegrator returns an integrator at rest using the given style.
func NewIntegrator(style Style) *Integrator {
	return &Integrator{style: style, state: NewState()}
}

// SetStyle switches the spring tuning. Velocities carry over so the
// switch never pops visually.
func (in *Integrator) SetStyle(style Style) { in.style = style }

// Style returns the active tuning style.
func (in *Integrator) Style() Style { return in.style }

// State returns a copy of the current transform values.
func (in *Integrator) State() State { return in.state }

// constants resolves the spring tuning for this tick.
func (in *Integrator) constants(e laban.Effort) (stiffness, damping, maxRot float64) {
	if in.style == StyleLegacy {
		return LegacyStiffness, LegacyDamping, LegacyMaxRot
	}
	stiffness = 100 + e.Flow*80
	damping = 5 + (1-e.Flow)*6
	maxRot = LegacyMaxRot * (0.5 + e.Space*1.5)
	return
}

// Tick advances the simulation by dt seconds. Features must already be
// sanitized; dt is clamped to MaxDeltaTime and non-positive steps are
// ignored.
func (in *Integrator) Tick(f audio.Features, e laban.Effort, dt float64) {
	if dt <= 0 {
		return
	}
	if dt > MaxDeltaTime {
		dt = MaxDeltaTime
	}
	in.clock += dt

	stiffness, damping, maxRot := in.constants(e)

	// Rotation targets follow the bands; Y adds a slow idle sway so the
	// pose never freezes between beats.
	targetX := f.Bass * maxRot
	targetY := f.Mid * maxRot * 0.7 * math.Sin(in.clock*idleSwayRate)
	targetZ := f.High * maxRot * 0.4

	in.state.RotX, in.velX = springStep(in.state.RotX, in.velX, targetX, stiffness, damping, dt)
	in.state.RotY, in.velY = springStep(in.state.RotY, in.velY, targetY, stiffness, damping, dt)
	in.state.RotZ, in.velZ = springStep(in.state.RotZ, in.velZ, targetZ, stiffness, damping, dt)

	// Everything that a beat (or trigger) knocked away from rest
	// relaxes exponentially back.
	in.state.Squash = decayTo(in.state.Squash, 1, SquashDecay, dt)
	in.state.Skew = decayTo(in.state.Skew, 0, SkewDecay, dt)
	in.state.BounceY = decayTo(in.state.BounceY, 0, BounceDecay, dt)
	in.state.FlashIntensity = decayTo(in.state.FlashIntensity, 0, FlashDecay, dt)
	in.state.RGBSplit = decayTo(in.state.RGBSplit, 0, RGBSplitDecay, dt)
	in.state.HueShift = decayTo(in.state.HueShift, 0, HueDecay, dt)
	in.state.X = decayTo(in.state.X, 0, OffsetDecay, dt)
	in.state.Y = decayTo(in.state.Y, 0, OffsetDecay, dt)
	in.state.CamZoom = decayTo(in.state.CamZoom, 1, CamZoomDecay, dt)
	in.state.Scale = decayTo(in.state.Scale, 1, OffsetDecay, dt)

	// Color follows the track energy directly, eased.
	in.state.Saturation = decayTo(in.state.Saturation, 1+f.Energy*0.3, ColorEase, dt)
	in.state.Brightness = decayTo(in.state.Brightness, 1+f.Energy*0.15, ColorEase, dt)
}

// OnBeat applies the beat impulses: squash snaps down, bounce snaps up
// against the bass, flash snaps bright. They relax during the following
// ticks, settling before the next beat lands.
func (in *Integrator) OnBeat(bass float64, e laban.Effort) {
	depth := SquashDepth
	bounce := BounceImpulse * bass
	if in.style == StyleLaban {
		depth *= 0.5 + e.Weight
		bounce *= 0.5 + e.Time
	}

	in.state.Squash = 1 - depth
	in.state.BounceY = -bounce
	in.state.FlashIntensity = FlashFloor + FlashBassGain*bass
}

// NudgeSkew offsets the skew; it decays back to 0 over the next ticks.
func (in *Integrator) NudgeSkew(v float64) { in.state.Skew += v }

// NudgeRotZ kicks the Z rotation spring.
func (in *Integrator) NudgeRotZ(v float64) { in.state.RotZ += v }

// SetXOffset displaces the pose horizontally; it decays back to center.
func (in *Integrator) SetXOffset(v float64) { in.state.X = v }

// SetOffset places the pose at an absolute position. Used by kinetic
// mode, which re-asserts the position every tick against the decay.
func (in *Integrator) SetOffset(x, y float64) {
	in.state.X = x
	in.state.Y = y
}

// SetHueShift sets the hue rotation; it decays back to 0.
func (in *Integrator) SetHueShift(v float64) { in.state.HueShift = v }

// FloorFlash raises the flash intensity to at least the given value.
func (in *Integrator) FloorFlash(v float64) {
	if in.state.FlashIntensity < v {
		in.state.FlashIntensity = v
	}
}

// FloorScale raises the scale to at least the given value.
func (in *Integrator) FloorScale(v float64) {
	if in.state.Scale < v {
		in.state.Scale = v
	}
}

// Reset returns the simulation to visual rest without touching the clock.
func (in *Integrator) Reset() {
	in.state = NewState()
	in.velX, in.velY, in.velZ = 0, 0, 0
}

// springStep advances one explicit-Euler spring axis.
func springStep(cur, vel, target, stiffness, damping, dt float64) (float64, float64) {
	vel += ((target-cur)*stiffness - vel*damping) * dt
	cur += vel * dt
	return cur, vel
}

// decayTo relaxes v toward rest with rate k. The closed form keeps the
// decay identical across tick rates.
func decayTo(v, rest, k, dt float64) float64 {
	return v + (rest-v)*(1-math.Exp(-k*dt))
}
