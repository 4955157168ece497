package transition

import (
	"time"

	"github.com/BrandonKowalski/cardstack/pkg/cardstack/animated"
)

// TransitionIOSSpec is the stiff, overdamped spring used by iOS pushes.
var TransitionIOSSpec animated.Driver = animated.Spring{
	Stiffness:                 1000,
	Damping:                   500,
	Mass:                      3,
	OvershootClamping:         true,
	RestDisplacementThreshold: 10,
	RestSpeedThreshold:        10,
}

// FadeInFromBottomAndroidSpec opens Android screens.
var FadeInFromBottomAndroidSpec animated.Driver = animated.Timing{
	Duration: 350 * time.Millisecond,
	Easing:   animated.Out(animated.Poly(5)),
}

// FadeOutToBottomAndroidSpec closes Android screens.
var FadeOutToBottomAndroidSpec animated.Driver = animated.Timing{
	Duration: 150 * time.Millisecond,
	Easing:   animated.In(animated.Linear),
}

// RevealFromBottomAndroidSpec is the Android P reveal.
var RevealFromBottomAndroidSpec animated.Driver = animated.Timing{
	Duration: 425 * time.Millisecond,
	Easing:   animated.Bezier(0.35, 0.45, 0, 1),
}

// ScaleFromCenterAndroidSpec is the Android Q scale.
var ScaleFromCenterAndroidSpec animated.Driver = animated.Timing{
	Duration: 400 * time.Millisecond,
	Easing:   animated.Bezier(0.35, 0.45, 0, 1),
}

// NoAnimationSpec completes on the next frame.
var NoAnimationSpec animated.Driver = animated.Timing{}
