package animated

import "math"

// EasingFunc maps normalized time in [0, 1] to normalized progress.
type EasingFunc func(t float64) float64

// Linear progresses at constant speed.
func Linear(t float64) float64 { return t }

// Ease is a gentle acceleration, equivalent to Bezier(0.42, 0, 1, 1).
var Ease = Bezier(0.42, 0, 1, 1)

// Poly returns an easing of t raised to n.
func Poly(n float64) EasingFunc {
	return func(t float64) float64 {
		return math.Pow(t, n)
	}
}

// In runs e forwards.
func In(e EasingFunc) EasingFunc { return e }

// Out runs e backwards.
func Out(e EasingFunc) EasingFunc {
	return func(t float64) float64 {
		return 1 - e(1-t)
	}
}

// InOut makes e symmetrical: forwards for the first half, backwards for the second.
func InOut(e EasingFunc) EasingFunc {
	return func(t float64) float64 {
		if t < 0.5 {
			return e(t*2) / 2
		}
		return 1 - e((1-t)*2)/2
	}
}

const (
	newtonIterations         = 4
	newtonMinSlope           = 0.001
	subdivisionPrecision     = 0.0000001
	subdivisionMaxIterations = 10
	splineTableSize          = 11
	sampleStepSize           = 1.0 / (splineTableSize - 1)
)

// Bezier returns a cubic bezier easing with control points (x1, y1) and (x2, y2).
// x1 and x2 are clamped into [0, 1] so the curve stays a function of time.
func Bezier(x1, y1, x2, y2 float64) EasingFunc {
	x1 = Clamp01(x1)
	x2 = Clamp01(x2)
	if x1 == y1 && x2 == y2 {
		return Linear
	}

	var samples [splineTableSize]float64
	for i := range samples {
		samples[i] = calcBezier(float64(i)*sampleStepSize, x1, x2)
	}

	tForX := func(x float64) float64 {
		start := 0.0
		current := 1
		last := splineTableSize - 1
		for ; current != last && samples[current] <= x; current++ {
			start += sampleStepSize
		}
		current--

		dist := (x - samples[current]) / (samples[current+1] - samples[current])
		guess := start + dist*sampleStepSize

		slope := getSlope(guess, x1, x2)
		switch {
		case slope >= newtonMinSlope:
			return newtonRaphson(x, guess, x1, x2)
		case slope == 0:
			return guess
		default:
			return binarySubdivide(x, start, start+sampleStepSize, x1, x2)
		}
	}

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return calcBezier(tForX(t), y1, y2)
	}
}

func bezierA(a1, a2 float64) float64 { return 1 - 3*a2 + 3*a1 }
func bezierB(a1, a2 float64) float64 { return 3*a2 - 6*a1 }
func bezierC(a1 float64) float64     { return 3 * a1 }

func calcBezier(t, a1, a2 float64) float64 {
	return ((bezierA(a1, a2)*t+bezierB(a1, a2))*t + bezierC(a1)) * t
}

func getSlope(t, a1, a2 float64) float64 {
	return 3*bezierA(a1, a2)*t*t + 2*bezierB(a1, a2)*t + bezierC(a1)
}

func binarySubdivide(x, a, b, x1, x2 float64) float64 {
	var current, t float64
	for i := 0; i < subdivisionMaxIterations; i++ {
		t = a + (b-a)/2
		current = calcBezier(t, x1, x2) - x
		if current > 0 {
			b = t
		} else {
			a = t
		}
		if math.Abs(current) <= subdivisionPrecision {
			break
		}
	}
	return t
}

func newtonRaphson(x, guess, x1, x2 float64) float64 {
	for i := 0; i < newtonIterations; i++ {
		slope := getSlope(guess, x1, x2)
		if slope == 0 {
			return guess
		}
		guess -= (calcBezier(guess, x1, x2) - x) / slope
	}
	return guess
}
