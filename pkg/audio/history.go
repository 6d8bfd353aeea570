package audio

// HistorySize is the number of energy samples retained for trend analysis.
const HistorySize = 30

// EnergyHistory is a fixed-size circular buffer of recent energy values.
// It backs both the movement-quality model and the pattern selector's
// energy trend, so one instance per engine is enough.
type EnergyHistory struct {
	samples [HistorySize]float64
	next    int
	filled  int
}

// Push records one energy sample, overwriting the oldest once full.
func (h *EnergyHistory) Push(energy float64) {
	h.samples[h.next] = energy
	h.next = (h.next + 1) % HistorySize
	if h.filled < HistorySize {
		h.filled++
	}
}

// Average returns the moving average over the retained samples,
// or 0 before any sample has been pushed.
func (h *EnergyHistory) Average() float64 {
	if h.filled == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < h.filled; i++ {
		sum += h.samples[i]
	}
	return sum / float64(h.filled)
}

// Trend returns how far the given energy sits above the moving average.
// Positive means the track is building, negative that it is cooling off.
func (h *EnergyHistory) Trend(energy float64) float64 {
	return energy - h.Average()
}

// Len returns the number of samples currently retained.
func (h *EnergyHistory) Len() int { return h.filled }

// Reset drops all retained samples.
func (h *EnergyHistory) Reset() {
	h.next = 0
	h.filled = 0
}
