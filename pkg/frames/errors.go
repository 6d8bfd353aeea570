package frames

import "errors"

var (
	// ErrNoFrames is returned when a manifest or pool contains no frames.
	ErrNoFrames = errors.New("no frames available")

	// ErrInvalidFrame is returned when a frame definition is malformed.
	ErrInvalidFrame = errors.New("invalid frame data")

	// ErrDuplicatePose is returned when two frames share a pose label.
	ErrDuplicatePose = errors.New("duplicate pose label")
)
