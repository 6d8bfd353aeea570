package frames

// Virtual zoom factors applied to body frames at pool build.
const (
	HighTierZoom    = 1.6
	HighTierOffsetY = 0.10
	MidTierZoom     = 1.25
	MidTierOffsetY  = 0.05
)

// Pool is a read-only classification of the loaded frames by tier and
// type. It is built once when frames load; the engine only samples from
// it and never mutates it. Virtual zoom variants are derived here, not
// recomputed per tick.
type Pool struct {
	all      []Frame
	byTier   [3][]Frame
	closeups []Frame
}

// NewPool classifies the given frames and derives virtual zoom variants
// for high- and mid-tier body frames. An empty frame list yields a valid
// empty pool; selection then reports no frame available instead of failing.
func NewPool(base []Frame) (*Pool, error) {
	seen := make(map[string]bool, len(base))
	maxID := 0
	for _, f := range base {
		if f.Pose == "" {
			return nil, ErrInvalidFrame
		}
		if seen[f.Pose] {
			return nil, ErrDuplicatePose
		}
		seen[f.Pose] = true
		if f.ID > maxID {
			maxID = f.ID
		}
	}

	p := &Pool{}
	for _, f := range base {
		p.add(f)
	}

	// Derived zoom variants of the body frames. They share the base
	// frame's rendered asset and differ only in the zoom the renderer
	// applies.
	nextID := maxID + 1
	for _, f := range base {
		if f.Type != TypeBody || f.IsVirtual {
			continue
		}
		var zoom, offsetY float64
		switch f.Tier {
		case TierHigh:
			zoom, offsetY = HighTierZoom, HighTierOffsetY
		case TierMid:
			zoom, offsetY = MidTierZoom, MidTierOffsetY
		default:
			continue
		}
		v := f
		v.ID = nextID
		v.Pose = f.Pose + "_zoom"
		v.IsVirtual = true
		v.BaseID = f.ID
		v.VirtualZoom = zoom
		v.VirtualOffsetY = offsetY
		p.add(v)
		nextID++
	}

	return p, nil
}

func (p *Pool) add(f Frame) {
	p.all = append(p.all, f)
	if f.Type == TypeCloseup {
		p.closeups = append(p.closeups, f)
		return
	}
	p.byTier[f.Tier] = append(p.byTier[f.Tier], f)
}

// Empty reports whether the pool holds no frames at all.
func (p *Pool) Empty() bool { return len(p.all) == 0 }

// Len returns the total frame count including derived variants.
func (p *Pool) Len() int { return len(p.all) }

// All returns every frame in the pool.
func (p *Pool) All() []Frame { return p.all }

// Tier returns the body frames of the requested tier, falling back
// down the tier ladder and finally to all frames when a tier is empty.
func (p *Pool) Tier(t EnergyTier) []Frame {
	for tier := t; tier >= TierLow; tier-- {
		if len(p.byTier[tier]) > 0 {
			return p.byTier[tier]
		}
	}
	return p.all
}

// Closeups returns the closeup frames; may be empty.
func (p *Pool) Closeups() []Frame { return p.closeups }

// FilterDirection returns the frames whose direction is one of dirs.
// Returns the input unchanged when nothing matches, so a direction
// filter never empties a usable pool.
func FilterDirection(in []Frame, dirs ...Direction) []Frame {
	var out []Frame
	for _, f := range in {
		for _, d := range dirs {
			if f.Direction == d {
				out = append(out, f)
				break
			}
		}
	}
	if len(out) == 0 {
		return in
	}
	return out
}
