package stack

import (
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/constants"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/locale"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/transition"
)

// NavigationState is the owner's view of the stack: its routes and the
// index of the focused one.
type NavigationState struct {
	Routes []*Route
	Index  int
}

// Focused returns the focused route, or nil for an empty state.
func (s NavigationState) Focused() *Route {
	if s.Index < 0 || s.Index >= len(s.Routes) {
		return nil
	}
	return s.Routes[s.Index]
}

// Callbacks are the lifecycle events a CardStack emits to its owner.
// Every field is optional.
type Callbacks struct {
	OnOpenRoute         func(route *Route)
	OnCloseRoute        func(route *Route)
	OnTransitionStart   func(route *Route, closing bool)
	OnTransitionEnd     func(route *Route, closing bool)
	OnPageChangeStart   func()
	OnPageChangeConfirm func()
	OnPageChangeCancel  func()
	OnGestureStart      func(route *Route)
	OnGestureEnd        func(route *Route)
	OnGestureCancel     func(route *Route)
}

// Props is everything a CardStack is rendered from.
type Props struct {
	Platform            constants.Platform
	Mode                constants.Mode
	HeaderMode          constants.HeaderMode
	ScreensEnabled      bool
	ActiveLimit         int  // 0 selects the mode default
	AncestorHeaderShown bool // an enclosing navigator already draws a header
	Insets              Insets
	InitialLayout       Layout

	State            NavigationState
	Routes           []*Route // rendered routes, including ones animating out
	Descriptors      map[string]*Descriptor
	OpeningRouteKeys []string
	ClosingRouteKeys []string

	Callbacks
	GetPreviousRoute   func(route *Route) *Route
	GetGesturesEnabled func(route *Route) bool
	RenderHeader       func(props HeaderProps) any
	RenderScene        func(props SceneProps) any

	Localizer *locale.Localizer // nil uses locale.Default()
}

// TransitionConfig is the effective transition a card animates with.
type TransitionConfig struct {
	GestureDirection        constants.GestureDirection
	TransitionSpec          transition.Specs
	CardStyleInterpolator   transition.CardStyleInterpolator
	HeaderStyleInterpolator transition.HeaderStyleInterpolator
}

// HeaderProps is passed to RenderHeader.
type HeaderProps struct {
	Mode              constants.HeaderMode // float or screen
	Layout            Layout
	Insets            Insets
	Scenes            []*Scene // all scenes (float) or [previous, current] (screen)
	Focused           *Route
	GestureDirection  constants.GestureDirection
	StyleInterpolator transition.HeaderStyleInterpolator
	Absolute          bool
	Height            float64
	Bars              []HeaderBar
	OnHeightChange    func(route *Route, height float64)
}

// HeaderBar is the evaluated header of one scene for the current frame.
type HeaderBar struct {
	Scene           *Scene
	Title           string
	BackTitle       string // empty when there is nothing to go back to
	BackLabel       string // accessibility label of the back button
	Height          float64
	Style           transition.HeaderStyle
	Transparent     bool
	PreviousRoute   *Route
	CanGoBack       bool
	CloseAffordance bool // modal stacks show a close button instead of a back chevron
}

// SceneProps is passed to RenderScene.
type SceneProps struct {
	Scene        *Scene
	Route        *Route
	Focused      bool
	Layout       Layout
	Insets       Insets
	HeaderHeight float64
}

// HeaderFrame is the floating header of a frame.
type HeaderFrame struct {
	Props   HeaderProps
	Content any
}

// CardFrame is the render instruction for one screen.
type CardFrame struct {
	Scene             *Scene
	Route             *Route
	Index             int
	Focused           bool
	Top               bool // topmost card in the rendered list
	Active            bool // composited and hit-testable
	Closing           bool
	Transitioning     bool
	GestureEnabled    bool
	Transition        TransitionConfig
	Style             transition.CardStyle
	OverlayEnabled    bool
	Overlay           any
	ShadowEnabled     bool
	Appearance        *CardAppearance
	Insets            Insets
	HeaderHeight      float64
	HeaderShown       bool
	HeaderTransparent bool
	Header            *HeaderFrame // per-screen header in screen mode
	Content           any
}

// Frame is everything the compositor draws for one frame, bottom card first.
type Frame struct {
	Layout Layout
	Header *HeaderFrame // floating header, nil unless header mode is float
	Cards  []CardFrame
}

// GestureState is the phase of a pan gesture.
type GestureState int

const (
	GestureUndetermined GestureState = iota
	GestureBegan
	GestureActive
	GestureEnded
	GestureCancelled
)

func (s GestureState) String() string {
	switch s {
	case GestureBegan:
		return "began"
	case GestureActive:
		return "active"
	case GestureEnded:
		return "ended"
	case GestureCancelled:
		return "cancelled"
	default:
		return "undetermined"
	}
}

// PanEvent is one sample from the pan recognizer.
type PanEvent struct {
	State        GestureState
	X, Y         float64 // where the pointer went down
	TranslationX float64
	TranslationY float64
	VelocityX    float64 // pixels per second
	VelocityY    float64
}
