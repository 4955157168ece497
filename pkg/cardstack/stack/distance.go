package stack

import (
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/animated"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/constants"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/transition"
)

// DistanceForDirection returns the signed length of a full traversal along
// the gesture axis: width for horizontal, height for vertical, negated for
// the inverted directions.
func DistanceForDirection(layout Layout, direction constants.GestureDirection) float64 {
	multiplier := constants.InvertedMultiplier(direction)
	if direction.IsVertical() {
		return layout.Height * multiplier
	}
	return layout.Width * multiplier
}

// gestureDirectionFor resolves a descriptor's gesture direction, falling back
// to the preset default for the stack mode.
func gestureDirectionFor(platform constants.Platform, mode constants.Mode, descriptor *Descriptor) constants.GestureDirection {
	if descriptor != nil && descriptor.Options.GestureDirection != nil {
		return *descriptor.Options.GestureDirection
	}
	return transition.ForMode(platform, mode).GestureDirection
}

// distanceFromOptions is the traversal distance for a descriptor on a
// layout clamped to at least 1x1.
func distanceFromOptions(platform constants.Platform, mode constants.Mode, layout Layout, descriptor *Descriptor) float64 {
	return DistanceForDirection(layout.Clamped(), gestureDirectionFor(platform, mode, descriptor))
}

// ProgressFromGesture maps a gesture tracker (pixels) onto normalized
// progress: 0 at rest, 1 at the full traversal distance. The mapping
// extends linearly past both ends; consumers clamp where they need to.
func ProgressFromGesture(platform constants.Platform, mode constants.Mode, gesture animated.Node, layout Layout, descriptor *Descriptor) *animated.Interpolation {
	distance := distanceFromOptions(platform, mode, layout, descriptor)

	if distance > 0 {
		return animated.NewInterpolation(gesture, animated.InterpolationConfig{
			InputRange:  []float64{0, distance},
			OutputRange: []float64{0, 1},
		})
	}
	return animated.NewInterpolation(gesture, animated.InterpolationConfig{
		InputRange:  []float64{distance, 0},
		OutputRange: []float64{1, 0},
	})
}
