// Package frames classifies the pre-rendered pose frames the engine
// selects from. Frames arrive from the asset pipeline already rendered;
// this package only describes and indexes them.
package frames

import "fmt"

// EnergyTier classifies a frame by the music energy it suits.
type EnergyTier int

const (
	TierLow EnergyTier = iota
	TierMid
	TierHigh
)

// String returns the tier name used in manifests and wire messages.
func (t EnergyTier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMid:
		return "mid"
	case TierHigh:
		return "high"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// ParseTier parses a manifest tier name.
func ParseTier(s string) (EnergyTier, error) {
	switch s {
	case "low":
		return TierLow, nil
	case "mid":
		return TierMid, nil
	case "high":
		return TierHigh, nil
	}
	return TierLow, fmt.Errorf("%w: tier %q", ErrInvalidFrame, s)
}

// Direction is the horizontal lean of the pose.
type Direction int

const (
	DirCenter Direction = iota
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirCenter:
		return "center"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// ParseDirection parses a manifest direction name.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	case "center", "":
		return DirCenter, nil
	}
	return DirCenter, fmt.Errorf("%w: direction %q", ErrInvalidFrame, s)
}

// FrameType distinguishes full-body poses from closeups.
type FrameType int

const (
	TypeBody FrameType = iota
	TypeCloseup
)

func (t FrameType) String() string {
	switch t {
	case TypeBody:
		return "body"
	case TypeCloseup:
		return "closeup"
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// ParseFrameType parses a manifest frame type name.
func ParseFrameType(s string) (FrameType, error) {
	switch s {
	case "body", "":
		return TypeBody, nil
	case "closeup":
		return TypeCloseup, nil
	}
	return TypeBody, fmt.Errorf("%w: frame type %q", ErrInvalidFrame, s)
}

// Frame describes one selectable pose.
//
// Virtual frames are zoomed crops of a base body frame, derived once at
// pool build. They reference the same rendered asset through BaseID and
// carry the zoom the renderer should apply.
type Frame struct {
	ID        int        `json:"id"`
	Pose      string     `json:"pose"` // unique label
	Tier      EnergyTier `json:"tier"`
	Direction Direction  `json:"direction"`
	Type      FrameType  `json:"type"`

	IsVirtual      bool    `json:"is_virtual,omitempty"`
	BaseID         int     `json:"base_id,omitempty"`
	VirtualZoom    float64 `json:"virtual_zoom,omitempty"`
	VirtualOffsetY float64 `json:"virtual_offset_y,omitempty"`
}
