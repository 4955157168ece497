// Package constants defines shared constants, enums, and configuration values
// used throughout the cardstack navigation framework.
package constants

import (
	"os"
	"strings"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variables read by the framework and the demo command.
const (
	EnvironmentEnvVar  = "ENVIRONMENT"
	ConfigPathEnvVar   = "CARDSTACK_CONFIG"
	LogLevelEnvVar     = "CARDSTACK_LOG_LEVEL"
	WindowWidthEnvVar  = "WINDOW_WIDTH"
	WindowHeightEnvVar = "WINDOW_HEIGHT"
	LanguageEnvVar     = "LANG"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// Mode selects the presentation style of a stack.
type Mode string

const (
	ModeCard  Mode = "card"  // Screens push in from the side
	ModeModal Mode = "modal" // Screens slide up over the previous one
)

// ParseMode returns the Mode named by s, defaulting to ModeCard.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModeModal)) {
		return ModeModal
	}
	return ModeCard
}

// HeaderMode selects how headers are rendered.
type HeaderMode string

const (
	HeaderModeFloat  HeaderMode = "float"  // One header shared by all screens
	HeaderModeScreen HeaderMode = "screen" // One header per screen, animated with it
	HeaderModeNone   HeaderMode = "none"   // No header
)

// ParseHeaderMode returns the HeaderMode named by s, defaulting to HeaderModeFloat.
func ParseHeaderMode(s string) HeaderMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(HeaderModeScreen):
		return HeaderModeScreen
	case string(HeaderModeNone):
		return HeaderModeNone
	default:
		return HeaderModeFloat
	}
}

// GestureDirection is the axis and orientation of the dismiss gesture.
type GestureDirection string

const (
	GestureHorizontal         GestureDirection = "horizontal"
	GestureHorizontalInverted GestureDirection = "horizontal-inverted"
	GestureVertical           GestureDirection = "vertical"
	GestureVerticalInverted   GestureDirection = "vertical-inverted"
)

// ParseGestureDirection returns the direction named by s and whether it was recognized.
func ParseGestureDirection(s string) (GestureDirection, bool) {
	switch d := GestureDirection(strings.ToLower(strings.TrimSpace(s))); d {
	case GestureHorizontal, GestureHorizontalInverted, GestureVertical, GestureVerticalInverted:
		return d, true
	}
	return GestureHorizontal, false
}

// IsVertical reports whether the gesture travels along the vertical axis.
func (d GestureDirection) IsVertical() bool {
	return d == GestureVertical || d == GestureVerticalInverted
}

// InvertedMultiplier returns -1 for inverted directions and 1 otherwise.
func InvertedMultiplier(d GestureDirection) float64 {
	switch d {
	case GestureHorizontalInverted, GestureVerticalInverted:
		return -1
	default:
		return 1
	}
}

// Platform selects platform-flavored defaults such as header height and presets.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformDesktop Platform = "desktop"
)

// ParsePlatform returns the platform named by s, defaulting to PlatformIOS.
func ParsePlatform(s string) Platform {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(PlatformAndroid):
		return PlatformAndroid
	case string(PlatformDesktop):
		return PlatformDesktop
	default:
		return PlatformIOS
	}
}

// Numeric defaults shared by the core and the presets.
const (
	Epsilon = 0.01 // Keeps activity and transitioning flags from flapping at exact endpoints

	DefaultActiveLimit      = 1 // Screens kept composited under the top one in card mode
	DefaultModalActiveLimit = 2 // Modal stacks keep the screen beneath visible

	GestureResponseDistanceHorizontal = 50.0  // Edge width in which a horizontal swipe may start
	GestureResponseDistanceVertical   = 135.0 // Edge height in which a vertical swipe may start
	GestureVelocityImpact             = 0.3   // Weight of release velocity in the dismiss decision

	// GestureCloseDelay defers the owner notification after a gesture-driven close
	// so the close animation starts before the route list changes.
	GestureCloseDelay = 32 * time.Millisecond

	FrameInterval = 16 * time.Millisecond // ~60fps frame timing

	PanActivationDistance = 10.0                   // Movement before a press becomes a pan
	PanVelocityWindow     = 100 * time.Millisecond // Samples used to estimate release velocity
)
