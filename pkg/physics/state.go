// Package physics produces the visual transform values for the rendered
// pose: spring-driven tilt plus decay-driven squash, bounce and flash.
//
// Everything is deltaTime-driven. The integrator converges to the same
// steady state whether ticked at 30, 60 or 120 Hz.
package physics

// State holds the visual transform of one channel. Rotations are in
// degrees, offsets in normalized screen units, the rest are unitless
// multipliers. One State is created per channel and mutated in place
// every tick, never replaced wholesale.
type State struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Scale   float64 `json:"scale"`
	RotX    float64 `json:"rot_x"`
	RotY    float64 `json:"rot_y"`
	RotZ    float64 `json:"rot_z"`
	Squash  float64 `json:"squash"`
	Skew    float64 `json:"skew"`
	BounceY float64 `json:"bounce_y"`

	FlashIntensity float64 `json:"flash_intensity"`
	HueShift       float64 `json:"hue_shift"`
	Saturation     float64 `json:"saturation"`
	Brightness     float64 `json:"brightness"`
	RGBSplit       float64 `json:"rgb_split"`
	CamZoom        float64 `json:"cam_zoom"`
}

// NewState returns a State at visual rest.
func NewState() State {
	return State{
		Scale:      1,
		Squash:     1,
		Saturation: 1,
		Brightness: 1,
		CamZoom:    1,
	}
}
