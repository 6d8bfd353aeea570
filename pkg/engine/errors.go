package engine

import "errors"

var (
	// ErrInvalidPattern is returned for a pattern outside the known set.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrInvalidStyle is returned for an unknown physics style.
	ErrInvalidStyle = errors.New("invalid physics style")

	// ErrInvalidMode is returned for an unknown engine mode.
	ErrInvalidMode = errors.New("invalid engine mode")

	// ErrInvalidSequenceMode is returned for an unknown sequence mode.
	ErrInvalidSequenceMode = errors.New("invalid sequence mode")
)
