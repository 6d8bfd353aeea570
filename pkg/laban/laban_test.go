package laban

import (
	"math"
	"testing"
)

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDerive_FactorMapping(t *testing.T) {
	e := Derive(0.8, 0.3, 0.6, 0.5, 0.5)

	if !floatEquals(e.Weight, 0.8) {
		t.Errorf("Weight should track bass: got %v, want 0.8", e.Weight)
	}
	if !floatEquals(e.Space, 0.6) {
		t.Errorf("Space should track highs: got %v, want 0.6", e.Space)
	}
	if !floatEquals(e.Flow, 0.7) {
		t.Errorf("Flow should be 1-mid: got %v, want 0.7", e.Flow)
	}
	if e.Time != 0 {
		t.Errorf("Time with energy at the average: got %v, want 0", e.Time)
	}
}

func TestDerive_TimeFromEnergyDeviation(t *testing.T) {
	// 0.1 above the average scales to 0.5 with TimeGain=5.
	e := Derive(0, 0, 0, 0.6, 0.5)
	if !floatEquals(e.Time, 0.5) {
		t.Errorf("Time for +0.1 deviation: got %v, want 0.5", e.Time)
	}

	// Deviation direction does not matter.
	e = Derive(0, 0, 0, 0.4, 0.5)
	if !floatEquals(e.Time, 0.5) {
		t.Errorf("Time for -0.1 deviation: got %v, want 0.5", e.Time)
	}

	// Large deviations saturate at 1.
	e = Derive(0, 0, 0, 1.0, 0.0)
	if e.Time != 1 {
		t.Errorf("Time should saturate at 1: got %v", e.Time)
	}
}

func TestNeutral(t *testing.T) {
	e := Neutral()
	if e.Weight != 0.5 || e.Space != 0.5 || e.Time != 0 || e.Flow != 0.5 {
		t.Errorf("Neutral effort unexpected: %+v", e)
	}
}
