// Package transition holds the building blocks of a screen transition:
// timing/spring specs, card and header style interpolators, and the
// presets that bundle them.
//
// Progress values follow one convention throughout: 0 means the screen is
// fully focused and 1 means it is fully off-screen.
package transition

import (
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/animated"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/constants"
)

// Layout is a viewport size in pixels.
type Layout struct {
	Width  float64
	Height float64
}

// Clamped returns the layout with each dimension raised to at least 1.
func (l Layout) Clamped() Layout {
	if l.Width < 1 {
		l.Width = 1
	}
	if l.Height < 1 {
		l.Height = 1
	}
	return l
}

// IsLandscape reports whether the layout is wider than tall.
func (l Layout) IsLandscape() bool {
	return l.Width > l.Height
}

// Insets are safe-area offsets on each side.
type Insets struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Style is the evaluated visual state of one layer for one frame.
type Style struct {
	TranslateX   float64
	TranslateY   float64
	Scale        float64
	Opacity      float64
	BorderRadius float64
}

// Identity is an untransformed, fully opaque style.
func Identity() Style {
	return Style{Scale: 1, Opacity: 1}
}

// Hidden is an untransformed, fully transparent style.
func Hidden() Style {
	return Style{Scale: 1}
}

// CardStyle is the output of a card interpolator.
type CardStyle struct {
	Container Style // Wraps the card and its overlay
	Card      Style // The screen itself
	Overlay   Style // Dimming layer drawn over screens beneath
	Shadow    Style // Edge shadow drawn along the card
}

// NewCardStyle returns the resting style: card visible, overlay and shadow hidden.
func NewCardStyle() CardStyle {
	return CardStyle{
		Container: Identity(),
		Card:      Identity(),
		Overlay:   Hidden(),
		Shadow:    Hidden(),
	}
}

// CardInterpolationProps is what a card interpolator sees for one screen.
type CardInterpolationProps struct {
	Current  animated.Node // This screen's progress
	Next     animated.Node // Progress of the screen above, nil if none
	Index    int
	Closing  bool
	Swiping  bool
	Inverted float64 // -1 for inverted gesture directions, 1 otherwise
	Screen   Layout
	Insets   Insets
}

// CardStyleInterpolator computes a card's styles for the current frame.
type CardStyleInterpolator func(props CardInterpolationProps) CardStyle

// HeaderStyle is the output of a header interpolator.
type HeaderStyle struct {
	LeftLabel   Style
	LeftButton  Style
	RightButton Style
	Title       Style
	Background  Style
}

// NewHeaderStyle returns every header layer at rest.
func NewHeaderStyle() HeaderStyle {
	return HeaderStyle{
		LeftLabel:   Identity(),
		LeftButton:  Identity(),
		RightButton: Identity(),
		Title:       Identity(),
		Background:  Identity(),
	}
}

// HeaderInterpolationProps is what a header interpolator sees for one scene.
type HeaderInterpolationProps struct {
	Current animated.Node
	Next    animated.Node // nil if none
	Screen  Layout
	Header  Layout
}

// HeaderStyleInterpolator computes header styles for the current frame.
type HeaderStyleInterpolator func(props HeaderInterpolationProps) HeaderStyle

// Specs are the animations used to open and to close a screen.
type Specs struct {
	Open  animated.Driver
	Close animated.Driver
}

// Preset bundles everything that defines a transition style.
type Preset struct {
	Name                    string
	GestureDirection        constants.GestureDirection
	TransitionSpec          Specs
	CardStyleInterpolator   CardStyleInterpolator
	HeaderStyleInterpolator HeaderStyleInterpolator
}

// presence converts progress into "how much of the screen is shown", 1 at focus.
func presence(n animated.Node) float64 {
	if n == nil {
		return 0
	}
	return 1 - animated.Clamp01(n.Get())
}

func lerp(x float64, in, out []float64) float64 {
	return animated.Interpolate(x, animated.InterpolationConfig{
		InputRange:  in,
		OutputRange: out,
		Extrapolate: animated.ExtrapolateClamp,
	})
}
