// Package audio defines the per-tick feature input for the choreography
// engine and keeps a short energy history for trend analysis.
//
// Feature extraction (FFT, beat and BPM detection) happens upstream; the
// engine receives one immutable Features value per rendered frame.
package audio

import "math"

// Features describes one tick of analyzed audio.
// Band levels and energy are normalized to [0,1].
type Features struct {
	Bass   float64 `json:"bass"`
	Mid    float64 `json:"mid"`
	High   float64 `json:"high"`
	Energy float64 `json:"energy"`
	BPM    float64 `json:"bpm"`
	IsBeat bool    `json:"is_beat"`
}

// DefaultBPM is assumed when the upstream analyzer reports no usable tempo.
const DefaultBPM = 120.0

// Sanitize returns a copy of f that is safe for physics math: non-finite or
// out-of-range band values are clamped into [0,1], and a non-positive or
// non-finite BPM falls back to lastBPM (or DefaultBPM when that is unusable
// too). One bad analyzer tick must never corrupt subsequent ticks.
func Sanitize(f Features, lastBPM float64) Features {
	f.Bass = clamp01(f.Bass)
	f.Mid = clamp01(f.Mid)
	f.High = clamp01(f.High)
	f.Energy = clamp01(f.Energy)

	if math.IsNaN(f.BPM) || math.IsInf(f.BPM, 0) || f.BPM <= 0 {
		if lastBPM > 0 {
			f.BPM = lastBPM
		} else {
			f.BPM = DefaultBPM
		}
	}
	return f
}

// clamp01 maps NaN to 0 and clamps everything else into [0,1].
func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
