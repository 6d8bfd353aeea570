// Package laban derives a movement-quality descriptor from audio features.
//
// The model follows the four Laban effort factors: weight (strength of
// movement), space (directness), time (suddenness) and flow (boundedness),
// each mapped heuristically from one aspect of the analyzed audio. The
// physics integrator consumes the descriptor when running in LABAN style;
// LEGACY style ignores it and uses fixed constants.
package laban

import "math"

// TimeGain scales the energy deviation into the time-effort factor.
// A sudden jump of 0.2 over the moving average saturates time at 1.
const TimeGain = 5.0

// Effort holds the four factors, each normalized to [0,1].
type Effort struct {
	Weight float64 `json:"weight"`
	Space  float64 `json:"space"`
	Time   float64 `json:"time"`
	Flow   float64 `json:"flow"`
}

// Neutral is the resting descriptor used before any audio has been seen.
func Neutral() Effort {
	return Effort{Weight: 0.5, Space: 0.5, Time: 0, Flow: 0.5}
}

// Derive computes the effort descriptor for one tick.
//
// weight tracks bass (heavy low end reads as strong movement), space tracks
// highs (bright sound reads as direct, expansive movement), time is the
// absolute deviation of energy from its moving average (sudden changes read
// as sudden movement), and flow is the inverse of the mids (a hollow mix
// reads as free, unbound movement).
func Derive(bass, mid, high, energy, energyAvg float64) Effort {
	return Effort{
		Weight: bass,
		Space:  high,
		Time:   clamp01(math.Abs(energy-energyAvg) * TimeGain),
		Flow:   1 - mid,
	}
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
