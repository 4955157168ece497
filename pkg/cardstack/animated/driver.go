package animated

import (
	"math"
	"time"
)

// Driver describes how a value travels to its target.
type Driver interface {
	begin(from, to, velocity float64) stepper
}

type stepper interface {
	// step returns the value after elapsed time and whether the animation is done.
	step(elapsed time.Duration) (value float64, done bool)
}

// Timing animates over a fixed duration following an easing curve.
type Timing struct {
	Duration time.Duration
	Easing   EasingFunc // defaults to InOut(Ease)
}

type timingState struct {
	from, to float64
	duration time.Duration
	easing   EasingFunc
}

func (t Timing) begin(from, to, _ float64) stepper {
	easing := t.Easing
	if easing == nil {
		easing = InOut(Ease)
	}
	return &timingState{from: from, to: to, duration: t.Duration, easing: easing}
}

func (s *timingState) step(elapsed time.Duration) (float64, bool) {
	if s.duration <= 0 || elapsed >= s.duration {
		return s.to, true
	}
	frac := float64(elapsed) / float64(s.duration)
	return s.from + s.easing(frac)*(s.to-s.from), false
}

// Spring animates with a damped harmonic oscillator.
//
// Zero fields take the defaults stiffness 100, damping 10, mass 1 and rest
// thresholds of 0.001.
type Spring struct {
	Stiffness                 float64
	Damping                   float64
	Mass                      float64
	OvershootClamping         bool
	RestDisplacementThreshold float64
	RestSpeedThreshold        float64
}

func (s Spring) withDefaults() Spring {
	if s.Stiffness == 0 {
		s.Stiffness = 100
	}
	if s.Damping == 0 {
		s.Damping = 10
	}
	if s.Mass == 0 {
		s.Mass = 1
	}
	if s.RestDisplacementThreshold == 0 {
		s.RestDisplacementThreshold = 0.001
	}
	if s.RestSpeedThreshold == 0 {
		s.RestSpeedThreshold = 0.001
	}
	return s
}

type springState struct {
	cfg      Spring
	from, to float64
	velocity float64 // units per second
}

func (s Spring) begin(from, to, velocity float64) stepper {
	return &springState{cfg: s.withDefaults(), from: from, to: to, velocity: velocity}
}

func (s *springState) step(elapsed time.Duration) (float64, bool) {
	c := s.cfg
	t := elapsed.Seconds()

	zeta := c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
	omega0 := math.Sqrt(c.Stiffness / c.Mass)
	x0 := s.to - s.from
	v0 := -s.velocity

	var position, velocity float64
	if zeta < 1 {
		omega1 := omega0 * math.Sqrt(1-zeta*zeta)
		envelope := math.Exp(-zeta * omega0 * t)
		sin, cos := math.Sin(omega1*t), math.Cos(omega1*t)
		a := (v0 + zeta*omega0*x0) / omega1

		position = s.to - envelope*(a*sin+x0*cos)
		velocity = zeta*omega0*envelope*(a*sin+x0*cos) -
			envelope*(cos*(v0+zeta*omega0*x0)-omega1*x0*sin)
	} else {
		envelope := math.Exp(-omega0 * t)
		position = s.to - envelope*(x0+(v0+omega0*x0)*t)
		velocity = envelope * (v0*(t*omega0-1) + t*x0*omega0*omega0)
	}

	if c.OvershootClamping && c.Stiffness != 0 {
		if (s.from < s.to && position > s.to) || (s.from > s.to && position < s.to) {
			return s.to, true
		}
	}

	atRest := math.Abs(velocity) <= c.RestSpeedThreshold &&
		(c.Stiffness == 0 || math.Abs(s.to-position) <= c.RestDisplacementThreshold)
	if atRest {
		return s.to, true
	}
	return position, false
}
