package stack

import (
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/animated"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/constants"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/transition"
)

// Layout is the measured viewport size.
type Layout = transition.Layout

// Insets are safe-area offsets.
type Insets = transition.Insets

// Route is one entry of the navigation state. Routes are owned by the
// navigation-state owner and are only ever read here; every derived map is
// keyed by Route.Key and pointer identity is what the scene memo compares.
type Route struct {
	Key    string
	Name   string
	Params map[string]any
}

// Descriptor is the per-route configuration bundle.
type Descriptor struct {
	Options Options
}

var fallbackDescriptor = &Descriptor{}

// FallbackDescriptor is the shared empty-options descriptor used for routes
// that have no descriptor yet. It must never be modified.
func FallbackDescriptor() *Descriptor {
	return fallbackDescriptor
}

// ReplaceAnimation selects how a replaced route animates.
type ReplaceAnimation string

const (
	ReplaceAnimationPush ReplaceAnimation = "push"
	ReplaceAnimationPop  ReplaceAnimation = "pop"
)

// Options configures one screen. Pointer fields are optional; nil means
// "use the default".
type Options struct {
	Title                   string
	HeaderBackTitle         *string
	HeaderStyle             *HeaderStyle
	SafeAreaInsets          *InsetsOverride
	HeaderStatusBarHeight   *float64
	GestureDirection        *constants.GestureDirection
	TransitionSpec          *transition.Specs
	CardStyleInterpolator   transition.CardStyleInterpolator
	HeaderStyleInterpolator transition.HeaderStyleInterpolator
	AnimationEnabled        *bool
	AnimationTypeForReplace ReplaceAnimation
	GestureEnabled          *bool
	HeaderShown             *bool
	HeaderTransparent       bool
	CardShadowEnabled       *bool
	CardOverlayEnabled      *bool
	CardOverlay             func(OverlayProps) any
	CardStyle               *CardAppearance
	GestureResponseDistance *ResponseDistance
	GestureVelocityImpact   *float64
}

// HeaderStyle overrides header sizing.
type HeaderStyle struct {
	Height *float64
}

// InsetsOverride replaces individual sides of the safe-area insets.
type InsetsOverride struct {
	Top    *float64
	Right  *float64
	Bottom *float64
	Left   *float64
}

// Resolve applies the override on top of base.
func (o *InsetsOverride) Resolve(base Insets) Insets {
	if o == nil {
		return base
	}
	if o.Top != nil {
		base.Top = *o.Top
	}
	if o.Right != nil {
		base.Right = *o.Right
	}
	if o.Bottom != nil {
		base.Bottom = *o.Bottom
	}
	if o.Left != nil {
		base.Left = *o.Left
	}
	return base
}

// ResponseDistance limits how far from the leading edge a dismiss gesture may start.
type ResponseDistance struct {
	Horizontal *float64
	Vertical   *float64
}

// Color is an RGBA color.
type Color struct {
	R, G, B, A uint8
}

// CardAppearance is static styling applied to a card.
type CardAppearance struct {
	Background   Color
	BorderRadius float64
}

// OverlayProps is passed to a custom card overlay.
type OverlayProps struct {
	Style transition.Style
}

// AnimationEnabledOrDefault resolves AnimationEnabled (default true).
func (o Options) AnimationEnabledOrDefault() bool {
	return o.AnimationEnabled == nil || *o.AnimationEnabled
}

// HeaderShownOrDefault resolves HeaderShown (default true).
func (o Options) HeaderShownOrDefault() bool {
	return o.HeaderShown == nil || *o.HeaderShown
}

// HeaderShownWithin resolves HeaderShown inside a navigator whose ancestor
// may already draw a header. Without an explicit option the header is
// shown only when no ancestor header is.
func (o Options) HeaderShownWithin(ancestorHeaderShown bool) bool {
	if o.HeaderShown != nil {
		return *o.HeaderShown
	}
	return !ancestorHeaderShown
}

// Bool returns a pointer to b, for optional fields.
func Bool(b bool) *bool { return &b }

// Float returns a pointer to f, for optional fields.
func Float(f float64) *float64 { return &f }

// String returns a pointer to s, for optional fields.
func String(s string) *string { return &s }

// Direction returns a pointer to d, for optional fields.
func Direction(d constants.GestureDirection) *constants.GestureDirection { return &d }

// SceneProgress holds the normalized progress of a screen and its neighbors.
// Next and Previous are nil when that neighbor does not exist; consumers must
// treat a nil neighbor as "no influence", not as zero.
type SceneProgress struct {
	Current  animated.Node
	Next     animated.Node
	Previous animated.Node
}

// Scene is the derived state of one route. A Scene is immutable until its
// inputs change; unchanged inputs yield the same *Scene from one derivation
// to the next.
type Scene struct {
	Route      *Route
	Descriptor *Descriptor
	Progress   SceneProgress

	memo sceneMemo
}

// Options returns the scene's descriptor options.
func (s *Scene) Options() Options {
	if s == nil || s.Descriptor == nil {
		return fallbackDescriptor.Options
	}
	return s.Descriptor.Options
}

// sceneMemo is the tuple of inputs a scene is derived from:
// route, layout, descriptor, next descriptor, previous descriptor,
// own tracker, next tracker, previous tracker.
type sceneMemo [8]any
