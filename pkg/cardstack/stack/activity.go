package stack

import (
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/animated"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/constants"
)

// ActiveLimitFor resolves the number of screens kept composited from the top.
func ActiveLimitFor(mode constants.Mode, limit int) int {
	if limit > 0 {
		return limit
	}
	if mode == constants.ModeModal {
		return constants.DefaultModalActiveLimit
	}
	return constants.DefaultActiveLimit
}

// ActivityNode returns a node that is 1 while the screen at index must stay
// composited and 0 once it is fully covered.
//
// The screen is covered by the scene activeLimit positions above it. With no
// such scene the screen is always active. Otherwise it stays active until
// the covering scene has settled at focus (progress within Epsilon of 0).
func ActivityNode(scenes []*Scene, index, activeLimit int) animated.Node {
	coverIndex := index + activeLimit
	if coverIndex >= len(scenes) || scenes[coverIndex] == nil {
		return animated.Constant(1)
	}
	return animated.NewInterpolation(scenes[coverIndex].Progress.Current, animated.InterpolationConfig{
		InputRange:  []float64{0, constants.Epsilon, 1},
		OutputRange: []float64{0, 1, 1},
		Extrapolate: animated.ExtrapolateClamp,
	})
}

// ScreenActive reports whether the screen at index is composited and
// hit-testable. When screens are disabled every screen is active.
func ScreenActive(scenes []*Scene, index, activeLimit int, screensEnabled bool) bool {
	if !screensEnabled {
		return true
	}
	return ActivityNode(scenes, index, activeLimit).Get() > 0
}

// TransitioningNode is 1 strictly between rest positions and 0 at either end.
func TransitioningNode(progress animated.Node) animated.Node {
	return animated.NewInterpolation(progress, animated.InterpolationConfig{
		InputRange:  []float64{0, constants.Epsilon, 1 - constants.Epsilon, 1},
		OutputRange: []float64{0, 1, 1, 0},
		Extrapolate: animated.ExtrapolateClamp,
	})
}

// IsTransitioning reports whether progress is mid-transition.
func IsTransitioning(progress animated.Node) bool {
	if progress == nil {
		return false
	}
	return TransitioningNode(progress).Get() > 0
}
