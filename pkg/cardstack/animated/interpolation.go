package animated

import (
	"fmt"
	"math"
)

// Extrapolate controls what happens to inputs outside the input range.
type Extrapolate int

const (
	extrapolateUnset    Extrapolate = iota
	ExtrapolateExtend               // Continue the nearest segment linearly
	ExtrapolateClamp                // Hold the nearest output endpoint
	ExtrapolateIdentity             // Return the input unchanged
)

// InterpolationConfig describes a piecewise-linear mapping.
//
// InputRange must be non-decreasing and the same length as OutputRange.
// ExtrapolateLeft and ExtrapolateRight override Extrapolate for one side.
type InterpolationConfig struct {
	InputRange       []float64
	OutputRange      []float64
	Easing           EasingFunc
	Extrapolate      Extrapolate
	ExtrapolateLeft  Extrapolate
	ExtrapolateRight Extrapolate
}

func (c InterpolationConfig) sides() (left, right Extrapolate) {
	left, right = ExtrapolateExtend, ExtrapolateExtend
	if c.Extrapolate != extrapolateUnset {
		left, right = c.Extrapolate, c.Extrapolate
	}
	if c.ExtrapolateLeft != extrapolateUnset {
		left = c.ExtrapolateLeft
	}
	if c.ExtrapolateRight != extrapolateUnset {
		right = c.ExtrapolateRight
	}
	return left, right
}

func (c InterpolationConfig) validate() error {
	if len(c.InputRange) < 2 {
		return fmt.Errorf("animated: input range needs at least 2 elements, got %d", len(c.InputRange))
	}
	if len(c.InputRange) != len(c.OutputRange) {
		return fmt.Errorf("animated: input range (%d) and output range (%d) differ in length",
			len(c.InputRange), len(c.OutputRange))
	}
	for i := 1; i < len(c.InputRange); i++ {
		if c.InputRange[i] < c.InputRange[i-1] {
			return fmt.Errorf("animated: input range must be non-decreasing, got %v", c.InputRange)
		}
	}
	return nil
}

// Interpolation is a node derived from a parent node. It is evaluated on
// demand, so it always reflects the parent's latest value.
type Interpolation struct {
	parent Node
	config InterpolationConfig
}

// NewInterpolation derives a node from parent. It panics when cfg is
// malformed, since ranges are always authored in code.
func NewInterpolation(parent Node, cfg InterpolationConfig) *Interpolation {
	if err := cfg.validate(); err != nil {
		panic(err)
	}
	return &Interpolation{parent: parent, config: cfg}
}

// Get evaluates the interpolation against the parent's current value.
func (i *Interpolation) Get() float64 {
	return Interpolate(i.parent.Get(), i.config)
}

// Parent returns the node this interpolation reads from.
func (i *Interpolation) Parent() Node {
	return i.parent
}

// Interpolate chains another mapping on top of this one.
func (i *Interpolation) Interpolate(cfg InterpolationConfig) *Interpolation {
	return NewInterpolation(i, cfg)
}

// AddListener subscribes to the root value and pushes this node's output.
// It returns a no-op remover when the chain does not end in a Listenable.
func (i *Interpolation) AddListener(fn func(value float64)) (remove func()) {
	root, ok := Root(i).(Listenable)
	if !ok {
		return func() {}
	}
	return root.AddListener(func(float64) {
		fn(i.Get())
	})
}

// Root walks a chain of interpolations back to the node driving it.
func Root(n Node) Node {
	for {
		i, ok := n.(*Interpolation)
		if !ok {
			return n
		}
		n = i.parent
	}
}

// Interpolate maps x through the piecewise-linear function described by cfg.
func Interpolate(x float64, cfg InterpolationConfig) float64 {
	in, out := cfg.InputRange, cfg.OutputRange
	if len(in) < 2 || len(in) != len(out) {
		return x
	}
	left, right := cfg.sides()
	easing := cfg.Easing
	if easing == nil {
		easing = Linear
	}

	seg := findSegment(x, in)
	return interpolateSegment(x, in[seg], in[seg+1], out[seg], out[seg+1], easing, left, right)
}

// Clamp01 clamps x into [0, 1].
func Clamp01(x float64) float64 {
	return math.Min(1, math.Max(0, x))
}

func findSegment(x float64, in []float64) int {
	i := 1
	for ; i < len(in)-1; i++ {
		if in[i] >= x {
			break
		}
	}
	return i - 1
}

func interpolateSegment(x, inMin, inMax, outMin, outMax float64, easing EasingFunc, left, right Extrapolate) float64 {
	result := x

	if result < inMin {
		switch left {
		case ExtrapolateIdentity:
			return result
		case ExtrapolateClamp:
			result = inMin
		}
	}
	if result > inMax {
		switch right {
		case ExtrapolateIdentity:
			return result
		case ExtrapolateClamp:
			result = inMax
		}
	}

	if outMin == outMax {
		return outMin
	}
	if inMin == inMax {
		if x <= inMin {
			return outMin
		}
		return outMax
	}

	switch {
	case math.IsInf(inMin, -1):
		result = -result
	case math.IsInf(inMax, 1):
		result = result - inMin
	default:
		result = (result - inMin) / (inMax - inMin)
	}

	result = easing(result)

	switch {
	case math.IsInf(outMin, -1):
		result = -result
	case math.IsInf(outMax, 1):
		result = result + outMin
	default:
		result = result*(outMax-outMin) + outMin
	}
	return result
}
