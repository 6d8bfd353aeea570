package engine

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/groovio/go-choreo/pkg/audio"
	"github.com/groovio/go-choreo/pkg/frames"
	"github.com/groovio/go-choreo/pkg/transition"
)

// Kinetic spring tuning and zone thresholds.
const (
	kineticFrequency = 7.0
	kineticDamping   = 0.8

	// Pointer speed (normalized units/s) above which picks jump to the
	// high tier.
	kineticFastSpeed = 1.5

	// Horizontal zone boundaries in the [0,1] pointer space.
	kineticLeftEdge  = 1.0 / 3
	kineticRightEdge = 2.0 / 3
)

// kineticState follows the pointer with an analytic damped spring and
// remembers the zone of the last pick.
type kineticState struct {
	targetX, targetY float64
	posX, posY       float64
	velX, velY       float64

	lastZone frames.Direction
	lastFast bool
	haveZone bool
}

func newKineticState() kineticState {
	return kineticState{
		targetX: 0.5, targetY: 0.5,
		posX: 0.5, posY: 0.5,
	}
}

func (k *kineticState) setTarget(x, y float64) {
	k.targetX = clamp01(x)
	k.targetY = clamp01(y)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// zone maps the spring position to a pose direction.
func (k *kineticState) zone() frames.Direction {
	switch {
	case k.posX < kineticLeftEdge:
		return frames.DirLeft
	case k.posX > kineticRightEdge:
		return frames.DirRight
	}
	return frames.DirCenter
}

// fast reports whether the pointer is being dragged quickly.
func (k *kineticState) fast() bool {
	return math.Hypot(k.velX, k.velY) > kineticFastSpeed
}

// tickKinetic advances the pointer spring and re-picks the pose when
// the pointer crosses into a new zone or changes pace. Beat-driven
// selection stays suspended the whole time.
func (e *Engine) tickKinetic(_ audio.Features, dt float64) {
	if dt <= 0 {
		return
	}
	k := &e.kinetic

	spring := harmonica.NewSpring(dt, kineticFrequency, kineticDamping)
	k.posX, k.velX = spring.Update(k.posX, k.velX, k.targetX)
	k.posY, k.velY = spring.Update(k.posY, k.velY, k.targetY)

	if e.pool == nil || e.pool.Empty() {
		e.noFrame = true
		return
	}

	zone := k.zone()
	fast := k.fast()
	if k.haveZone && zone == k.lastZone && fast == k.lastFast {
		return
	}
	k.lastZone = zone
	k.lastFast = fast
	k.haveZone = true
	e.noFrame = false

	tier := frames.TierMid
	if fast {
		tier = frames.TierHigh
	}
	candidates := e.pool.Tier(tier)
	if zone != frames.DirCenter {
		candidates = frames.FilterDirection(candidates, zone)
	}
	pick := candidates[e.rng.IntN(len(candidates))]

	mode := transition.ModeMorph
	if zone != frames.DirCenter {
		mode = transition.ModeSlide
	}
	e.trans.Start(pick, mode)
}
