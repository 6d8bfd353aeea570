// Package trigger implements the momentary performance overrides:
// stutter, reverse, glitch and burst. Triggers are level-held booleans
// evaluated every tick while held, independent of beat timing. They only
// push values; releasing a trigger stops the stochastics immediately and
// leaves any nudged values to decay through the physics integrator.
package trigger

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/groovio/go-choreo/pkg/physics"
	"github.com/groovio/go-choreo/pkg/transition"
)

// ErrUnknownTrigger is returned for a trigger name the overlay does not know.
var ErrUnknownTrigger = errors.New("unknown trigger")

// Per-tick application chances while held.
const (
	StutterChance = 0.28
	ReverseChance = 0.15
	GlitchChance  = 0.22
)

// Effect magnitudes.
const (
	StutterSkewRange = 0.3  // skew nudge, +/- half range
	StutterRotZRange = 8.0  // degrees
	GlitchOffsetMax  = 0.08 // normalized screen units
	GlitchHueMax     = 90.0 // degrees
	BurstFlashFloor  = 0.6
	BurstScaleFloor  = 1.15
)

// Inputs is the held state of the four triggers.
type Inputs struct {
	Stutter bool `json:"stutter"`
	Reverse bool `json:"reverse"`
	Glitch  bool `json:"glitch"`
	Burst   bool `json:"burst"`
}

// Overlay evaluates the held triggers against an injected RNG so its
// behavior is reproducible under test.
type Overlay struct {
	rng    *rand.Rand
	inputs Inputs
}

// NewOverlay creates an overlay driven by the given RNG.
func NewOverlay(rng *rand.Rand) *Overlay {
	return &Overlay{rng: rng}
}

// Set updates one trigger's held state. Unknown names are rejected.
func (o *Overlay) Set(name string, held bool) error {
	switch name {
	case "stutter":
		o.inputs.Stutter = held
	case "reverse":
		o.inputs.Reverse = held
	case "glitch":
		o.inputs.Glitch = held
	case "burst":
		o.inputs.Burst = held
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTrigger, name)
	}
	return nil
}

// Inputs returns the current held state.
func (o *Overlay) Inputs() Inputs { return o.inputs }

// Active reports whether any trigger is held.
func (o *Overlay) Active() bool {
	return o.inputs.Stutter || o.inputs.Reverse || o.inputs.Glitch || o.inputs.Burst
}

// Apply runs one tick of the held triggers against the transition and
// physics of a channel. Call after the integrator tick so burst floors
// survive until the next tick's decay.
func (o *Overlay) Apply(tr *transition.Controller, in *physics.Integrator) {
	if o.inputs.Stutter && o.rng.Float64() < StutterChance {
		tr.Swap()
		in.NudgeSkew(o.spread(StutterSkewRange))
		in.NudgeRotZ(o.spread(StutterRotZRange))
	}

	if o.inputs.Reverse && o.rng.Float64() < ReverseChance {
		tr.Swap()
	}

	if o.inputs.Glitch && o.rng.Float64() < GlitchChance {
		in.SetXOffset(o.spread(2 * GlitchOffsetMax))
		in.SetHueShift(o.spread(2 * GlitchHueMax))
	}

	if o.inputs.Burst {
		in.FloorFlash(BurstFlashFloor)
		in.FloorScale(BurstScaleFloor)
	}
}

// spread returns a uniform value in [-r/2, r/2).
func (o *Overlay) spread(r float64) float64 {
	return (o.rng.Float64() - 0.5) * r
}
