// Package pattern chooses the next pose frame. A pattern is a selection
// style: which pool it draws from and how it walks that pool beat to beat.
package pattern

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownPattern is returned for a pattern name outside the table.
	ErrUnknownPattern = errors.New("unknown pattern")

	// ErrUnknownSequenceMode is returned for an unrecognized sequence mode name.
	ErrUnknownSequenceMode = errors.New("unknown sequence mode")
)

// Pattern is one of the fifteen selection styles.
type Pattern int

const (
	PingPong Pattern = iota
	BuildDrop
	Stutter
	Vogue
	Flow
	Chaos
	ABAB
	AABB
	ABAC
	SnareRoll
	Groove
	Emote
	Footwork
	Impact
	Minimal
)

var patternNames = map[Pattern]string{
	PingPong:  "ping_pong",
	BuildDrop: "build_drop",
	Stutter:   "stutter",
	Vogue:     "vogue",
	Flow:      "flow",
	Chaos:     "chaos",
	ABAB:      "abab",
	AABB:      "aabb",
	ABAC:      "abac",
	SnareRoll: "snare_roll",
	Groove:    "groove",
	Emote:     "emote",
	Footwork:  "footwork",
	Impact:    "impact",
	Minimal:   "minimal",
}

func (p Pattern) String() string {
	if name, ok := patternNames[p]; ok {
		return name
	}
	return fmt.Sprintf("pattern(%d)", int(p))
}

// Parse resolves a pattern name from the control surface.
func Parse(s string) (Pattern, error) {
	for p, name := range patternNames {
		if name == s {
			return p, nil
		}
	}
	return PingPong, fmt.Errorf("%w: %q", ErrUnknownPattern, s)
}

// All returns every pattern, in declaration order.
func All() []Pattern {
	out := make([]Pattern, 0, len(patternNames))
	for p := PingPong; p <= Minimal; p++ {
		out = append(out, p)
	}
	return out
}

// Rerolls reports whether the pattern re-picks between beats
// (stutter-family patterns fire off the beat grid too).
func (p Pattern) Rerolls() bool {
	return p == Stutter || p == SnareRoll
}

// SequenceMode shapes the default pick strategy's walk through the pool.
// Named patterns with their own strategies ignore it.
type SequenceMode int

const (
	SeqRandom SequenceMode = iota
	SeqForward
	SeqPingPong
)

func (m SequenceMode) String() string {
	switch m {
	case SeqRandom:
		return "random"
	case SeqForward:
		return "forward"
	case SeqPingPong:
		return "pingpong"
	}
	return fmt.Sprintf("sequence(%d)", int(m))
}

// ParseSequenceMode resolves a sequence mode name.
func ParseSequenceMode(s string) (SequenceMode, error) {
	switch s {
	case "random":
		return SeqRandom, nil
	case "forward":
		return SeqForward, nil
	case "pingpong":
		return SeqPingPong, nil
	}
	return SeqRandom, fmt.Errorf("%w: %q", ErrUnknownSequenceMode, s)
}
