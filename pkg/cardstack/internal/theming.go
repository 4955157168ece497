package internal

import (
	"image/color"
	"sync"
)

// Theme defines the colors the compositors draw a stack with.
type Theme struct {
	BackgroundColor color.RGBA // Behind every card
	CardColor       color.RGBA // Card background when the route sets none
	HeaderColor     color.RGBA // Header bar background
	TextColor       color.RGBA // Titles and scene content
	TintColor       color.RGBA // Back chevron, back title, close button
	OverlayColor    color.RGBA // Dimming drawn over screens beneath a card
	ShadowColor     color.RGBA // Edge shadow along a card
	FontPath        string     // TTF font for the window compositor, empty draws no text
}

// LightTheme is the default theme.
func LightTheme() Theme {
	return Theme{
		BackgroundColor: HexToColor(0xE5E5EA),
		CardColor:       HexToColor(0xF2F2F2),
		HeaderColor:     HexToColor(0xFFFFFF),
		TextColor:       HexToColor(0x1C1C1E),
		TintColor:       HexToColor(0x007AFF),
		OverlayColor:    HexToColor(0x000000),
		ShadowColor:     HexToColor(0x000000),
	}
}

// DarkTheme is a theme for dark backgrounds.
func DarkTheme() Theme {
	return Theme{
		BackgroundColor: HexToColor(0x000000),
		CardColor:       HexToColor(0x121212),
		HeaderColor:     HexToColor(0x1C1C1E),
		TextColor:       HexToColor(0xE5E5E7),
		TintColor:       HexToColor(0x0A84FF),
		OverlayColor:    HexToColor(0x000000),
		ShadowColor:     HexToColor(0x000000),
	}
}

// ThemeByName returns the named theme and whether the name was known.
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case "", "light":
		return LightTheme(), true
	case "dark":
		return DarkTheme(), true
	default:
		return LightTheme(), false
	}
}

var (
	themeMu      sync.RWMutex
	currentTheme = LightTheme()
)

// SetTheme sets the active theme.
func SetTheme(theme Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	currentTheme = theme
}

// GetTheme returns the currently active theme.
func GetTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// HexToColor converts a 0xRRGGBB value into an opaque color.
func HexToColor(hex uint32) color.RGBA {
	return color.RGBA{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
		A: 0xFF,
	}
}

// Blend mixes b over a with weight t in [0, 1].
func Blend(a, b color.RGBA, t float64) color.RGBA {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
