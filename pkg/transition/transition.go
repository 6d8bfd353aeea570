// Package transition blends the displayed pose from the previous frame
// to a newly selected one.
package transition

import (
	"fmt"

	"github.com/groovio/go-choreo/pkg/frames"
)

// Mode is the blend style used when switching the displayed pose.
type Mode int

const (
	ModeCut Mode = iota
	ModeSlide
	ModeMorph
	ModeSmooth
	ModeZoomIn
)

func (m Mode) String() string {
	switch m {
	case ModeCut:
		return "cut"
	case ModeSlide:
		return "slide"
	case ModeMorph:
		return "morph"
	case ModeSmooth:
		return "smooth"
	case ModeZoomIn:
		return "zoom_in"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Blend speeds in progress units per second.
const (
	SlideSpeed  = 8.0
	MorphSpeed  = 5.0
	SmoothSpeed = 1.5
	ZoomInSpeed = 6.0
)

// Visual constants for the directional modes.
const (
	// ZoomInMaxScale is the scale the outgoing frame reaches as it fades.
	ZoomInMaxScale = 1.5

	// SlideDistance is the horizontal travel in normalized screen units.
	SlideDistance = 0.3
)

// Speed returns the mode's blend speed; ModeCut completes immediately.
func (m Mode) Speed() float64 {
	switch m {
	case ModeSlide:
		return SlideSpeed
	case ModeMorph:
		return MorphSpeed
	case ModeSmooth:
		return SmoothSpeed
	case ModeZoomIn:
		return ZoomInSpeed
	}
	return 0
}

// Smoothstep is the blend easing curve, 3p^2 - 2p^3 for p in [0,1].
func Smoothstep(p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	return p * p * (3 - 2*p)
}

// Controller is the blend state machine. Progress 1 means idle: the
// target frame is fully shown. Starting a new target moves the old
// target to source and restarts progress at 0.
type Controller struct {
	source   frames.Frame
	target   frames.Frame
	haveAny  bool
	progress float64
	mode     Mode
}

// Start begins a transition to the given frame. The very first frame
// cuts in directly regardless of mode; there is nothing to blend from.
func (c *Controller) Start(target frames.Frame, mode Mode) {
	if !c.haveAny {
		c.source = target
		c.target = target
		c.haveAny = true
		c.progress = 1
		c.mode = mode
		return
	}

	c.source = c.target
	c.target = target
	c.mode = mode
	if mode == ModeCut {
		c.progress = 1
	} else {
		c.progress = 0
	}
}

// Advance moves the blend forward by dt seconds. Progress never
// decreases within a transition and clamps at exactly 1.
func (c *Controller) Advance(dt float64) {
	if dt <= 0 || c.progress >= 1 {
		return
	}
	c.progress += c.mode.Speed() * dt
	if c.progress > 1 {
		c.progress = 1
	}
}

// Swap exchanges source and target mid-blend, keeping the displayed
// image continuous by mirroring progress. Used by the trigger overlay
// for stutter and reverse effects.
func (c *Controller) Swap() {
	c.source, c.target = c.target, c.source
	if c.progress < 1 {
		c.progress = 1 - c.progress
	}
}

// Blending reports whether a transition is still in flight.
func (c *Controller) Blending() bool { return c.haveAny && c.progress < 1 }

// Progress returns the raw transition progress in [0,1].
func (c *Controller) Progress() float64 { return c.progress }

// Mode returns the active blend mode.
func (c *Controller) Mode() Mode { return c.mode }

// Source returns the outgoing frame.
func (c *Controller) Source() frames.Frame { return c.source }

// Target returns the incoming frame.
func (c *Controller) Target() frames.Frame { return c.target }

// HasFrame reports whether any frame has ever been started.
func (c *Controller) HasFrame() bool { return c.haveAny }

// Blend returns the eased blend weight of the target frame.
func (c *Controller) Blend() float64 {
	if c.mode == ModeCut {
		return 1
	}
	return Smoothstep(c.progress)
}

// SourceScale returns the scale of the outgoing frame. Only ModeZoomIn
// scales it, growing toward ZoomInMaxScale as the blend completes.
func (c *Controller) SourceScale() float64 {
	if c.mode != ModeZoomIn {
		return 1
	}
	return 1 + (ZoomInMaxScale-1)*c.Blend()
}

// SlideOffsets returns the horizontal offsets of source and target in
// normalized screen units. Only ModeSlide offsets; the slide direction
// comes from the target's left/right hint and both frames travel in
// opposite directions, converging as the blend completes.
func (c *Controller) SlideOffsets() (src, dst float64) {
	if c.mode != ModeSlide {
		return 0, 0
	}
	remain := 1 - c.Blend()
	sign := 1.0
	if c.target.Direction == frames.DirLeft {
		sign = -1
	}
	return -sign * SlideDistance * remain, sign * SlideDistance * remain
}
