package control_loop

// ProportionalControlLoop outputs the error between target and measured value
// scaled by a constant gain. It has no internal state.
type ProportionalControlLoop struct {
	// Proportional Constant
	p float64
}

// NewProportionalControlLoop creates a ProportionalControlLoop with the given gain.
// Any gain is accepted, including 0 and negative values.
func NewProportionalControlLoop(p float64) *ProportionalControlLoop {
	return &ProportionalControlLoop{
		p: p,
	}
}

func (l *ProportionalControlLoop) Loop(target float64, measured float64) float64 {
	err := target - measured
	return l.p * err
}

// Gain returns the proportional constant
func (l *ProportionalControlLoop) Gain() float64 {
	return l.p
}
