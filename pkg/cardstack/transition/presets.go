package transition

import (
	"strings"

	"github.com/BrandonKowalski/cardstack/pkg/cardstack/constants"
)

// Standard presets.
var (
	SlideFromRightIOS = Preset{
		Name:                    "slide-from-right-ios",
		GestureDirection:        constants.GestureHorizontal,
		TransitionSpec:          Specs{Open: TransitionIOSSpec, Close: TransitionIOSSpec},
		CardStyleInterpolator:   ForHorizontalIOS,
		HeaderStyleInterpolator: ForFade,
	}

	ModalSlideFromBottomIOS = Preset{
		Name:                    "modal-slide-from-bottom-ios",
		GestureDirection:        constants.GestureVertical,
		TransitionSpec:          Specs{Open: TransitionIOSSpec, Close: TransitionIOSSpec},
		CardStyleInterpolator:   ForVerticalIOS,
		HeaderStyleInterpolator: ForFade,
	}

	ModalPresentationIOS = Preset{
		Name:                    "modal-presentation-ios",
		GestureDirection:        constants.GestureVertical,
		TransitionSpec:          Specs{Open: TransitionIOSSpec, Close: TransitionIOSSpec},
		CardStyleInterpolator:   ForModalPresentationIOS,
		HeaderStyleInterpolator: ForFade,
	}

	FadeFromBottomAndroid = Preset{
		Name:                    "fade-from-bottom-android",
		GestureDirection:        constants.GestureVertical,
		TransitionSpec:          Specs{Open: FadeInFromBottomAndroidSpec, Close: FadeOutToBottomAndroidSpec},
		CardStyleInterpolator:   ForFadeFromBottomAndroid,
		HeaderStyleInterpolator: ForFade,
	}

	ScaleFromCenterAndroid = Preset{
		Name:                    "scale-from-center-android",
		GestureDirection:        constants.GestureHorizontal,
		TransitionSpec:          Specs{Open: ScaleFromCenterAndroidSpec, Close: ScaleFromCenterAndroidSpec},
		CardStyleInterpolator:   ForScaleFromCenterAndroid,
		HeaderStyleInterpolator: ForFade,
	}

	// DefaultTransition is used by card stacks when nothing else is configured.
	DefaultTransition = SlideFromRightIOS

	// ModalTransition is used by modal stacks when nothing else is configured.
	ModalTransition = ModalSlideFromBottomIOS
)

var presetsByName = map[string]Preset{
	SlideFromRightIOS.Name:       SlideFromRightIOS,
	ModalSlideFromBottomIOS.Name: ModalSlideFromBottomIOS,
	ModalPresentationIOS.Name:    ModalPresentationIOS,
	FadeFromBottomAndroid.Name:   FadeFromBottomAndroid,
	ScaleFromCenterAndroid.Name:  ScaleFromCenterAndroid,
}

// Lookup returns the preset registered under name.
func Lookup(name string) (Preset, bool) {
	p, ok := presetsByName[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// PresetsFor returns the default card and modal presets for a platform.
func PresetsFor(platform constants.Platform) (card Preset, modal Preset) {
	switch platform {
	case constants.PlatformAndroid:
		return FadeFromBottomAndroid, FadeFromBottomAndroid
	default:
		return DefaultTransition, ModalTransition
	}
}

// ForMode returns the platform default preset for a stack mode.
func ForMode(platform constants.Platform, mode constants.Mode) Preset {
	card, modal := PresetsFor(platform)
	if mode == constants.ModeModal {
		return modal
	}
	return card
}
