package engine

import "github.com/groovio/go-choreo/pkg/physics"

// RenderFrame is the per-tick output consumed by the rendering layer:
// which two frames to composite, how far the blend is, and the visual
// transform to apply on top.
type RenderFrame struct {
	SourceID   int    `json:"source_id"`
	TargetID   int    `json:"target_id"`
	SourcePose string `json:"source_pose"`
	TargetPose string `json:"target_pose"`

	Blend          float64 `json:"blend"`
	TransitionMode string  `json:"transition_mode"`
	SourceScale    float64 `json:"source_scale"`
	SourceOffsetX  float64 `json:"source_offset_x"`
	TargetOffsetX  float64 `json:"target_offset_x"`

	Physics physics.State `json:"physics"`

	// NoFrame reports that selection had nothing to pick from this
	// tick; the IDs above carry the held frame, if any.
	NoFrame bool `json:"no_frame,omitempty"`
}
