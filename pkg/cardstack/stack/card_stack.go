// Package stack is the core of cardstack: it turns a route list, a focus
// index and per-route descriptors into per-frame render instructions, and
// reports open/close/transition/gesture lifecycle events back to the owner
// of the navigation state.
//
// A CardStack is driven from a single UI goroutine: SetProps, HandleLayout,
// HandleHeaderLayout, HandlePan, Tick and Render must never run
// concurrently. Derived state is always recomputed synchronously from the
// latest props before the next Render.
package stack

import (
	"maps"
	"slices"
	"time"

	"github.com/BrandonKowalski/cardstack/pkg/cardstack/animated"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/constants"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/locale"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/transition"
)

// CardStack renders a stack of screens.
type CardStack struct {
	props         Props
	loop          *animated.Loop
	layout        Layout
	state         SceneState
	headerHeights map[string]float64
	cards         map[string]*card
	swipingCard   *card

	syncing bool
	queued  *Props
}

// New creates a CardStack driven by loop. A nil loop gets a private one,
// advanced through Tick.
func New(loop *animated.Loop, props Props) *CardStack {
	if loop == nil {
		loop = animated.NewLoop()
	}
	s := &CardStack{
		loop:          loop,
		layout:        props.InitialLayout,
		headerHeights: make(map[string]float64),
		cards:         make(map[string]*card),
	}
	s.SetProps(props)
	return s
}

// Loop returns the animation timeline driving the stack.
func (s *CardStack) Loop() *animated.Loop {
	return s.loop
}

// Tick advances the animation timeline.
func (s *CardStack) Tick(dt time.Duration) {
	s.loop.Tick(dt)
}

// Props returns the current props.
func (s *CardStack) Props() Props {
	return s.props
}

// Layout returns the last measured layout.
func (s *CardStack) Layout() Layout {
	return s.layout
}

// Scenes returns the derived scenes, index-aligned with the rendered routes.
func (s *CardStack) Scenes() []*Scene {
	return s.state.Scenes
}

// Gesture returns the gesture tracker of a route, or nil.
func (s *CardStack) Gesture(key string) *animated.Value {
	return s.state.Gestures[key]
}

// HeaderHeights returns a copy of the header height map.
func (s *CardStack) HeaderHeights() map[string]float64 {
	return maps.Clone(s.headerHeights)
}

// SetProps replaces the props and re-derives scenes, trackers and header
// heights. Props set from inside a lifecycle callback are applied once the
// current update has finished.
func (s *CardStack) SetProps(props Props) {
	if s.syncing {
		p := props
		s.queued = &p
		return
	}

	s.apply(props)
	s.drain()
}

func (s *CardStack) drain() {
	for s.queued != nil {
		next := *s.queued
		s.queued = nil
		s.apply(next)
	}
}

func (s *CardStack) apply(props Props) {
	s.props = props

	s.state = DeriveScenes(s.sceneInput(), s.state)
	s.headerHeights = RecomputeHeaderHeights(s.headerInput(), s.headerHeights)
	s.syncCards()
}

// HandleLayout records a new viewport size. Measured header heights are
// discarded since they belong to the old layout. It reports whether
// anything changed.
func (s *CardStack) HandleLayout(layout Layout) bool {
	if layout == s.layout {
		return false
	}
	s.layout = layout
	s.state = DeriveScenes(s.sceneInput(), s.state)
	s.headerHeights = RecomputeHeaderHeights(s.headerInput(), nil)
	s.syncCards()
	s.drain()
	return true
}

// HandleHeaderLayout records a measured header height. An unchanged height
// is ignored so that measuring cannot feed back into another layout pass.
func (s *CardStack) HandleHeaderLayout(key string, height float64) bool {
	if previous, ok := s.headerHeights[key]; ok && previous == height {
		return false
	}
	heights := maps.Clone(s.headerHeights)
	heights[key] = height
	s.headerHeights = heights
	return true
}

// HandlePan routes a pan event to the topmost card that is not closing.
// Events after GestureBegan go to the card that accepted the gesture.
func (s *CardStack) HandlePan(ev PanEvent) bool {
	if ev.State != GestureBegan {
		c := s.swipingCard
		if c == nil {
			return false
		}
		handled := c.handlePan(ev)
		if ev.State == GestureEnded || ev.State == GestureCancelled {
			s.swipingCard = nil
		}
		return handled
	}

	c := s.topCard()
	if c == nil || !c.handlePan(ev) {
		return false
	}
	s.swipingCard = c
	return true
}

func (s *CardStack) topCard() *card {
	for i := len(s.props.Routes) - 1; i >= 0; i-- {
		route := s.props.Routes[i]
		if slices.Contains(s.props.ClosingRouteKeys, route.Key) {
			continue
		}
		return s.cards[route.Key]
	}
	return nil
}

func (s *CardStack) sceneInput() SceneInput {
	return SceneInput{
		Platform:         s.props.Platform,
		Mode:             s.props.Mode,
		Routes:           s.props.Routes,
		Descriptors:      s.props.Descriptors,
		OpeningRouteKeys: s.props.OpeningRouteKeys,
		Layout:           s.layout,
	}
}

// headerInput reads descriptors from the derived state so that routes
// animating out keep the options they were rendered with.
func (s *CardStack) headerInput() HeaderHeightInput {
	return HeaderHeightInput{
		Platform:            s.props.Platform,
		Routes:              s.props.Routes,
		Insets:              s.props.Insets,
		Descriptors:         s.state.Descriptors,
		Layout:              s.layout,
		AncestorHeaderShown: s.props.AncestorHeaderShown,
	}
}

func (s *CardStack) defaultPreset() transition.Preset {
	preset := transition.ForMode(s.props.Platform, s.props.Mode)
	if s.props.HeaderMode == constants.HeaderModeScreen {
		preset.HeaderStyleInterpolator = transition.ForNoAnimationHeader
	}
	return preset
}

func transitionConfigFor(options Options, preset transition.Preset) TransitionConfig {
	cfg := TransitionConfig{
		GestureDirection:        preset.GestureDirection,
		TransitionSpec:          preset.TransitionSpec,
		CardStyleInterpolator:   preset.CardStyleInterpolator,
		HeaderStyleInterpolator: preset.HeaderStyleInterpolator,
	}
	if options.GestureDirection != nil {
		cfg.GestureDirection = *options.GestureDirection
	}
	if options.TransitionSpec != nil {
		cfg.TransitionSpec = *options.TransitionSpec
	}
	switch {
	case options.CardStyleInterpolator != nil:
		cfg.CardStyleInterpolator = options.CardStyleInterpolator
	case !options.AnimationEnabledOrDefault():
		cfg.CardStyleInterpolator = transition.ForNoAnimation
	}
	if options.HeaderStyleInterpolator != nil {
		cfg.HeaderStyleInterpolator = options.HeaderStyleInterpolator
	}
	return cfg
}

// TransitionConfigAt returns the transition the card at index animates with.
// Every card but the topmost borrows the configuration of the card above it,
// since both animate together and mixing two styles looks wrong.
func (s *CardStack) TransitionConfigAt(index int) TransitionConfig {
	scenes := s.state.Scenes
	preset := s.defaultPreset()

	cfg := transitionConfigFor(scenes[index].Options(), preset)
	if index != len(scenes)-1 && scenes[index+1] != nil {
		cfg = transitionConfigFor(scenes[index+1].Options(), preset)
	}
	return cfg
}

func (s *CardStack) gesturesEnabled(index int, route *Route) bool {
	if index == 0 {
		return false
	}
	if s.props.GetGesturesEnabled != nil {
		return s.props.GetGesturesEnabled(route)
	}
	options := s.state.Scenes[index].Options()
	if !options.AnimationEnabledOrDefault() {
		return false
	}
	return options.GestureEnabled == nil || *options.GestureEnabled
}

func (s *CardStack) cardPropsAt(index int) cardProps {
	route := s.props.Routes[index]
	options := s.state.Scenes[index].Options()

	impact := constants.GestureVelocityImpact
	if options.GestureVelocityImpact != nil {
		impact = *options.GestureVelocityImpact
	}

	return cardProps{
		index:          index,
		top:            index == len(s.props.Routes)-1,
		closing:        slices.Contains(s.props.ClosingRouteKeys, route.Key),
		layout:         s.layout,
		gesture:        s.state.Gestures[route.Key],
		config:         s.TransitionConfigAt(index),
		gestureEnabled: s.gesturesEnabled(index, route),
		responseDist:   options.GestureResponseDistance,
		velocityImpact: impact,
	}
}

// syncCards mounts cards for new routes, updates existing ones and unmounts
// cards whose routes are gone.
func (s *CardStack) syncCards() {
	s.syncing = true
	defer func() { s.syncing = false }()

	present := make(map[string]bool, len(s.props.Routes))
	for _, route := range s.props.Routes {
		present[route.Key] = true
	}
	for key, c := range s.cards {
		if !present[key] {
			if s.swipingCard == c {
				s.swipingCard = nil
			}
			c.unmount()
			delete(s.cards, key)
		}
	}

	for i, route := range s.props.Routes {
		props := s.cardPropsAt(i)
		if c, ok := s.cards[route.Key]; ok {
			c.route = route
			c.update(props)
			continue
		}
		c := newCard(s, route, props)
		s.cards[route.Key] = c
		c.mount()
	}
}

// IsFloatHeaderAbsolute reports whether the floating header overlaps the
// screens. Looking at the last two scenes keeps the header from jumping at
// the boundary of a transition into or out of a headerless screen.
func IsFloatHeaderAbsolute(scenes []*Scene, ancestorHeaderShown bool) bool {
	start := max(0, len(scenes)-2)
	for _, scene := range scenes[start:] {
		options := scene.Options()
		if options.HeaderTransparent || !options.HeaderShownWithin(ancestorHeaderShown) {
			return true
		}
	}
	return false
}

func (s *CardStack) localizer() *locale.Localizer {
	if s.props.Localizer != nil {
		return s.props.Localizer
	}
	return locale.Default()
}

func (s *CardStack) focusedRoute() *Route {
	if f := s.props.State.Focused(); f != nil {
		return f
	}
	if n := len(s.props.Routes); n > 0 {
		return s.props.Routes[n-1]
	}
	return nil
}

func (s *CardStack) previousScene(index int) *Scene {
	scenes := s.state.Scenes
	route := scenes[index].Route
	if s.props.GetPreviousRoute != nil {
		previous := s.props.GetPreviousRoute(route)
		if previous == nil {
			return nil
		}
		return findScene(scenes, previous.Key)
	}
	if index == 0 {
		return nil
	}
	return scenes[index-1]
}

func (s *CardStack) headerBar(index int, interpolator transition.HeaderStyleInterpolator) HeaderBar {
	scene := s.state.Scenes[index]
	options := scene.Options()
	loc := s.localizer()

	bar := HeaderBar{
		Scene:           scene,
		Title:           titleOf(scene),
		Height:          s.headerHeights[scene.Route.Key],
		Transparent:     options.HeaderTransparent,
		CloseAffordance: s.props.Mode == constants.ModeModal,
	}

	if previous := s.previousScene(index); previous != nil {
		bar.PreviousRoute = previous.Route
		bar.CanGoBack = true
		switch {
		case options.HeaderBackTitle != nil:
			bar.BackTitle = *options.HeaderBackTitle
		case previous.Options().Title != "":
			bar.BackTitle = previous.Options().Title
		default:
			bar.BackTitle = loc.BackTitle()
		}
		if bar.CloseAffordance {
			bar.BackLabel = loc.CloseAccessibilityLabel()
		} else {
			bar.BackLabel = loc.BackAccessibilityLabel(bar.BackTitle)
		}
	}

	if interpolator == nil {
		interpolator = transition.ForNoAnimationHeader
	}
	bar.Style = interpolator(transition.HeaderInterpolationProps{
		Current: scene.Progress.Current,
		Next:    scene.Progress.Next,
		Screen:  s.layout,
		Header:  Layout{Width: s.layout.Width, Height: bar.Height},
	})
	return bar
}

func titleOf(scene *Scene) string {
	if t := scene.Options().Title; t != "" {
		return t
	}
	return scene.Route.Name
}

// Render evaluates the current frame.
func (s *CardStack) Render() Frame {
	frame := Frame{Layout: s.layout}
	routes := s.props.Routes
	scenes := s.state.Scenes
	if len(routes) == 0 {
		return frame
	}

	focused := s.focusedRoute()
	focusedOptions := descriptorFor(s.state.Descriptors, focused.Key).Options
	preset := s.defaultPreset()
	insets := focusedOptions.SafeAreaInsets.Resolve(s.props.Insets)
	onHeight := func(route *Route, height float64) { s.HandleHeaderLayout(route.Key, height) }

	if s.props.HeaderMode == constants.HeaderModeFloat {
		direction := preset.GestureDirection
		if focusedOptions.GestureDirection != nil {
			direction = *focusedOptions.GestureDirection
		}
		interpolator := preset.HeaderStyleInterpolator
		if focusedOptions.HeaderStyleInterpolator != nil {
			interpolator = focusedOptions.HeaderStyleInterpolator
		}

		props := HeaderProps{
			Mode:              constants.HeaderModeFloat,
			Layout:            s.layout,
			Insets:            insets,
			Scenes:            scenes,
			Focused:           focused,
			GestureDirection:  direction,
			StyleInterpolator: interpolator,
			Absolute:          IsFloatHeaderAbsolute(scenes, s.props.AncestorHeaderShown),
			Height:            s.headerHeights[focused.Key],
			OnHeightChange:    onHeight,
		}
		for i := range scenes {
			props.Bars = append(props.Bars, s.headerBar(i, interpolator))
		}
		frame.Header = &HeaderFrame{Props: props}
		if s.props.RenderHeader != nil {
			frame.Header.Content = s.props.RenderHeader(props)
		}
	}

	activeLimit := ActiveLimitFor(s.props.Mode, s.props.ActiveLimit)
	for i, route := range routes {
		scene := scenes[i]
		options := scene.Options()
		c := s.cards[route.Key]
		cp := s.cardPropsAt(i)

		headerShown := options.HeaderShownWithin(s.props.AncestorHeaderShown)
		headerHeight := 0.0
		if s.props.HeaderMode != constants.HeaderModeNone && headerShown {
			headerHeight = s.headerHeights[route.Key]
		}
		cardInsets := options.SafeAreaInsets.Resolve(s.props.Insets)

		style := cp.config.CardStyleInterpolator(transition.CardInterpolationProps{
			Current:  scene.Progress.Current,
			Next:     scene.Progress.Next,
			Index:    i,
			Closing:  cp.closing,
			Swiping:  c != nil && c.swiping,
			Inverted: constants.InvertedMultiplier(cp.config.GestureDirection),
			Screen:   s.layout,
			Insets:   cardInsets,
		})

		cf := CardFrame{
			Scene:             scene,
			Route:             route,
			Index:             i,
			Focused:           route.Key == focused.Key,
			Top:               cp.top,
			Active:            ScreenActive(scenes, i, activeLimit, s.props.ScreensEnabled),
			Closing:           cp.closing,
			Transitioning:     IsTransitioning(scene.Progress.Current),
			GestureEnabled:    cp.gestureEnabled,
			Transition:        cp.config,
			Style:             style,
			OverlayEnabled:    s.overlayEnabled(options),
			ShadowEnabled:     options.CardShadowEnabled == nil || *options.CardShadowEnabled,
			Appearance:        options.CardStyle,
			Insets:            cardInsets,
			HeaderHeight:      headerHeight,
			HeaderShown:       headerShown,
			HeaderTransparent: options.HeaderTransparent,
		}
		if cf.OverlayEnabled && options.CardOverlay != nil {
			cf.Overlay = options.CardOverlay(OverlayProps{Style: style.Overlay})
		}

		if s.props.HeaderMode == constants.HeaderModeScreen && headerShown {
			var screenScenes []*Scene
			if previous := s.previousScene(i); previous != nil {
				screenScenes = append(screenScenes, previous)
			}
			screenScenes = append(screenScenes, scene)

			props := HeaderProps{
				Mode:              constants.HeaderModeScreen,
				Layout:            s.layout,
				Insets:            cardInsets,
				Scenes:            screenScenes,
				Focused:           focused,
				GestureDirection:  cp.config.GestureDirection,
				StyleInterpolator: cp.config.HeaderStyleInterpolator,
				Absolute:          options.HeaderTransparent,
				Height:            headerHeight,
				Bars:              []HeaderBar{s.headerBar(i, cp.config.HeaderStyleInterpolator)},
				OnHeightChange:    onHeight,
			}
			cf.Header = &HeaderFrame{Props: props}
			if s.props.RenderHeader != nil {
				cf.Header.Content = s.props.RenderHeader(props)
			}
		}

		if s.props.RenderScene != nil {
			cf.Content = s.props.RenderScene(SceneProps{
				Scene:        scene,
				Route:        route,
				Focused:      cf.Focused,
				Layout:       s.layout,
				Insets:       cardInsets,
				HeaderHeight: headerHeight,
			})
		}
		frame.Cards = append(frame.Cards, cf)
	}
	return frame
}

func (s *CardStack) overlayEnabled(options Options) bool {
	if options.CardOverlayEnabled != nil {
		return *options.CardOverlayEnabled
	}
	return s.props.Mode == constants.ModeModal || s.props.Platform == constants.PlatformAndroid
}
