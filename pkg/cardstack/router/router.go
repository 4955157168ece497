package router

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/BrandonKowalski/cardstack/pkg/cardstack"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/animated"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/internal"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/stack"
)

// SceneFunc renders the content of a screen. Its result is passed through
// to the compositor untouched.
type SceneFunc func(props stack.SceneProps) any

// OptionsSource supplies the default options of routes by name.
// *config.Config implements it.
type OptionsSource interface {
	OptionsFor(name string) stack.Options
}

// Router owns the navigation state of one stack: the routes, the focused
// index, and the bookkeeping of routes that are animating in or out. It
// drives a stack.CardStack with it and reacts to the card stack's lifecycle
// callbacks.
//
// A Router is not safe for concurrent use; call it from the UI goroutine.
type Router struct {
	base     stack.Props
	defaults OptionsSource
	loop     *animated.Loop
	scenes   map[string]SceneFunc

	state       stack.NavigationState
	routes      []*stack.Route // rendered, including routes animating out
	opening     []string
	closing     []string
	replacing   []string
	overrides   map[string]stack.Options
	descriptors map[string]*stack.Descriptor

	history      *Stack
	listeners    map[int]Listener
	nextListener int
	keySeq       int

	cards *stack.CardStack
}

// New creates a Router. base carries the stack-wide props (mode, header
// mode, insets, layout, header renderer); routes, descriptors and callbacks
// are filled in by the Router. defaults may be nil.
func New(base stack.Props, defaults OptionsSource) *Router {
	return &Router{
		base:        base,
		defaults:    defaults,
		loop:        animated.NewLoop(),
		scenes:      make(map[string]SceneFunc),
		overrides:   make(map[string]stack.Options),
		descriptors: make(map[string]*stack.Descriptor),
		history:     NewStack(),
		listeners:   make(map[int]Listener),
	}
}

// Register adds a scene to the router.
func (r *Router) Register(name string, fn SceneFunc) *Router {
	r.scenes[name] = fn
	return r
}

// Start resets the state to a single route.
func (r *Router) Start(name string, params map[string]any) error {
	return r.Reset([]*stack.Route{{Name: name, Params: params}}, 0)
}

// Cards returns the card stack, or nil before the first action.
func (r *Router) Cards() *stack.CardStack {
	return r.cards
}

// Loop returns the animation timeline of the card stack.
func (r *Router) Loop() *animated.Loop {
	return r.loop
}

// Tick advances animations by dt.
func (r *Router) Tick(dt time.Duration) {
	r.loop.Tick(dt)
}

// State returns the navigation state.
func (r *Router) State() stack.NavigationState {
	return stack.NavigationState{Routes: slices.Clone(r.state.Routes), Index: r.state.Index}
}

// Focused returns the focused route, or nil before the first action.
func (r *Router) Focused() *stack.Route {
	return r.state.Focused()
}

// Routes returns the rendered routes, which include routes animating out.
func (r *Router) Routes() []*stack.Route {
	return slices.Clone(r.routes)
}

// History returns the history of the routes in the state with their resume state.
func (r *Router) History() *Stack {
	return r.history
}

// OpeningRouteKeys returns the keys of routes animating in.
func (r *Router) OpeningRouteKeys() []string { return slices.Clone(r.opening) }

// ClosingRouteKeys returns the keys of routes animating out.
func (r *Router) ClosingRouteKeys() []string { return slices.Clone(r.closing) }

// ReplacingRouteKeys returns the keys of routes being replaced.
func (r *Router) ReplacingRouteKeys() []string { return slices.Clone(r.replacing) }

// Push adds a route on top and focuses it. opts overrides the route's
// default options and may be nil.
func (r *Router) Push(name string, params map[string]any, opts *stack.Options) error {
	if _, ok := r.scenes[name]; !ok {
		return fmt.Errorf("router: push %q: %w", name, cardstack.ErrUnknownRoute)
	}
	route := r.newRoute(name, params, opts)
	r.transition("push", func(routes []*stack.Route) []*stack.Route {
		return append(routes, route)
	})
	return nil
}

// Pop removes the top n routes. At least one route always remains.
func (r *Router) Pop(n int) error {
	if n < 1 {
		n = 1
	}
	keep := r.state.Index + 1 - n
	if keep < 1 {
		return fmt.Errorf("router: pop %d of %d: %w", n, r.state.Index+1, cardstack.ErrEmptyState)
	}
	r.transition("pop", func(routes []*stack.Route) []*stack.Route {
		return routes[:keep]
	})
	return nil
}

// PopToTop removes every route but the first.
func (r *Router) PopToTop() error {
	if r.state.Index < 1 {
		return nil
	}
	return r.Pop(r.state.Index)
}

// GoBack removes the focused route.
func (r *Router) GoBack() error {
	return r.Pop(1)
}

// Replace swaps the focused route for a new one.
func (r *Router) Replace(name string, params map[string]any, opts *stack.Options) error {
	if _, ok := r.scenes[name]; !ok {
		return fmt.Errorf("router: replace with %q: %w", name, cardstack.ErrUnknownRoute)
	}
	if len(r.state.Routes) == 0 {
		return fmt.Errorf("router: replace: %w", cardstack.ErrEmptyState)
	}
	route := r.newRoute(name, params, opts)
	r.transition("replace", func(routes []*stack.Route) []*stack.Route {
		routes[len(routes)-1] = route
		return routes
	})
	return nil
}

// Reset replaces the whole state. Routes without a key get one; index is
// clamped to the route list.
func (r *Router) Reset(routes []*stack.Route, index int) error {
	if len(routes) == 0 {
		return fmt.Errorf("router: reset: %w", cardstack.ErrEmptyState)
	}
	next := make([]*stack.Route, len(routes))
	for i, route := range routes {
		if _, ok := r.scenes[route.Name]; !ok {
			return fmt.Errorf("router: reset to %q: %w", route.Name, cardstack.ErrUnknownRoute)
		}
		if route.Key == "" {
			route = r.newRoute(route.Name, route.Params, nil)
		}
		next[i] = route
	}
	index = max(0, min(index, len(next)-1))

	previous := r.state
	r.state = stack.NavigationState{Routes: next, Index: index}
	internal.GetInternalLogger().Debug("Navigation reset", "routes", len(next), "index", index)
	r.commit(previous)
	return nil
}

// SetOptions merges opts into the options of the route with the given key.
func (r *Router) SetOptions(key string, opts stack.Options) error {
	if indexOfKey(r.state.Routes, key) < 0 {
		return fmt.Errorf("router: set options of %q: %w", key, cardstack.ErrUnknownRoute)
	}
	r.overrides[key] = overlay(r.overrides[key], opts)
	delete(r.descriptors, key)
	r.commit(r.state)
	return nil
}

// SetResume stores resume state for the route with the given key.
func (r *Router) SetResume(key string, resume any) {
	if entry := r.history.Find(key); entry != nil {
		entry.Resume = resume
	}
}

// Resume returns the resume state of the route with the given key.
func (r *Router) Resume(key string) any {
	if entry := r.history.Find(key); entry != nil {
		return entry.Resume
	}
	return nil
}

func (r *Router) newRoute(name string, params map[string]any, opts *stack.Options) *stack.Route {
	r.keySeq++
	route := &stack.Route{Key: name + "-" + strconv.Itoa(r.keySeq), Name: name, Params: params}
	if opts != nil {
		r.overrides[route.Key] = *opts
	}
	return route
}

// transition applies fn to the focused part of the state and focuses the
// new top route.
func (r *Router) transition(action string, fn func(routes []*stack.Route) []*stack.Route) {
	previous := r.state
	var routes []*stack.Route
	if len(previous.Routes) > 0 {
		routes = slices.Clone(previous.Routes[:previous.Index+1])
	}
	routes = fn(routes)
	r.state = stack.NavigationState{Routes: routes, Index: len(routes) - 1}
	internal.GetInternalLogger().Debug("Navigation action", "action", action, "focused", r.state.Focused().Key)
	r.commit(previous)
}

// commit derives the rendered routes from the state change and pushes the
// result into the card stack.
func (r *Router) commit(previous stack.NavigationState) {
	r.deriveRoutes(previous)
	r.syncHistory()
	r.render()

	prev, next := previous.Focused(), r.state.Focused()
	if next != nil && (prev == nil || prev.Key != next.Key) {
		r.emit(Event{Type: EventFocus, Route: next})
	}
}

// deriveRoutes decides which routes stay rendered and which animate. A newly
// focused route opens; a previously focused route that left the state
// closes and stays rendered until its animation ends; a replaced route
// stays beneath its replacement, or closes on top of it when the new route
// asks for a pop animation.
func (r *Router) deriveRoutes(previous stack.NavigationState) {
	state := r.state
	routes := slices.Clone(state.Routes[:state.Index+1])
	prevFocused, nextFocused := previous.Focused(), state.Focused()

	switch {
	case prevFocused != nil && prevFocused.Key != nextFocused.Key:
		switch {
		case indexOfKey(previous.Routes, nextFocused.Key) < 0:
			if !r.animationEnabled(nextFocused) || slices.Contains(r.opening, nextFocused.Key) {
				break
			}
			r.opening = append(without(r.opening, nextFocused.Key), nextFocused.Key)
			r.closing = without(r.closing, nextFocused.Key)
			r.replacing = without(r.replacing, nextFocused.Key)

			if indexOfKey(state.Routes, prevFocused.Key) >= 0 {
				break
			}
			r.opening = without(r.opening, prevFocused.Key)
			if r.optionsOf(nextFocused).AnimationTypeForReplace == stack.ReplaceAnimationPop {
				r.closing = append(r.closing, prevFocused.Key)
				r.opening = without(r.opening, nextFocused.Key)
				routes = append(routes, prevFocused)
			} else {
				r.replacing = append(r.replacing, prevFocused.Key)
				r.closing = without(r.closing, prevFocused.Key)
				routes = slices.Insert(routes, len(routes)-1, prevFocused)
			}

		case indexOfKey(state.Routes, prevFocused.Key) < 0:
			if !r.animationEnabled(prevFocused) || slices.Contains(r.closing, prevFocused.Key) {
				break
			}
			r.closing = append(r.closing, prevFocused.Key)
			r.opening = without(r.opening, prevFocused.Key)
			r.replacing = without(r.replacing, prevFocused.Key)
			routes = append(routes, prevFocused)
		}

	case len(r.replacing) > 0 || len(r.closing) > 0:
		var lingering []*stack.Route
		for _, route := range r.routes {
			if indexOfKey(routes, route.Key) >= 0 {
				continue
			}
			if slices.Contains(r.replacing, route.Key) || slices.Contains(r.closing, route.Key) {
				lingering = append(lingering, route)
			}
		}
		routes = slices.Insert(routes, len(routes)-1, lingering...)
	}

	r.routes = routes
	r.opening = onlyRendered(r.opening, routes)
	r.closing = onlyRendered(r.closing, routes)
	r.replacing = onlyRendered(r.replacing, routes)
}

func (r *Router) syncHistory() {
	resume := make(map[string]any, r.history.Len())
	for _, e := range r.history.entries {
		resume[e.Route.Key] = e.Resume
	}
	r.history.Clear()
	for _, route := range r.state.Routes {
		r.history.Push(route, resume[route.Key])
	}
}

// render rebuilds the descriptors of the rendered routes and hands the
// props to the card stack.
func (r *Router) render() {
	descriptors := make(map[string]*stack.Descriptor, len(r.routes))
	for _, route := range r.routes {
		descriptors[route.Key] = r.descriptorOf(route)
	}
	r.descriptors = descriptors
	for key := range r.overrides {
		if _, ok := descriptors[key]; !ok {
			delete(r.overrides, key)
		}
	}

	props := r.props()
	if r.cards == nil {
		r.cards = stack.New(r.loop, props)
		return
	}
	r.cards.SetProps(props)
}

func (r *Router) props() stack.Props {
	p := r.base
	p.State = r.State()
	p.Routes = slices.Clone(r.routes)
	p.Descriptors = make(map[string]*stack.Descriptor, len(r.descriptors))
	for k, d := range r.descriptors {
		p.Descriptors[k] = d
	}
	p.OpeningRouteKeys = slices.Clone(r.opening)
	p.ClosingRouteKeys = slices.Clone(r.closing)
	p.Callbacks = r.callbacks()
	p.GetPreviousRoute = r.previousRoute
	p.GetGesturesEnabled = r.gesturesEnabled
	p.RenderScene = r.renderScene
	return p
}

// descriptorOf returns the cached descriptor of a route, building it from
// the defaults and the route's overrides on first use. The pointer is kept
// stable so that unchanged routes keep their derived scenes.
func (r *Router) descriptorOf(route *stack.Route) *stack.Descriptor {
	if d, ok := r.descriptors[route.Key]; ok {
		return d
	}
	var o stack.Options
	if r.defaults != nil {
		o = r.defaults.OptionsFor(route.Name)
	}
	if over, ok := r.overrides[route.Key]; ok {
		o = overlay(o, over)
	}
	d := &stack.Descriptor{Options: o}
	r.descriptors[route.Key] = d
	return d
}

func (r *Router) optionsOf(route *stack.Route) stack.Options {
	return r.descriptorOf(route).Options
}

func (r *Router) animationEnabled(route *stack.Route) bool {
	return r.optionsOf(route).AnimationEnabledOrDefault()
}

func (r *Router) renderScene(props stack.SceneProps) any {
	fn, ok := r.scenes[props.Route.Name]
	if !ok {
		return nil
	}
	return fn(props)
}

// previousRoute is the route a back button leads to: the one beneath,
// skipping routes that are on their way out.
func (r *Router) previousRoute(route *stack.Route) *stack.Route {
	var visible []*stack.Route
	for _, rt := range r.routes {
		if rt.Key == route.Key || (!slices.Contains(r.closing, rt.Key) && !slices.Contains(r.replacing, rt.Key)) {
			visible = append(visible, rt)
		}
	}
	i := indexOfKey(visible, route.Key)
	if i <= 0 {
		return nil
	}
	return visible[i-1]
}

func (r *Router) gesturesEnabled(route *stack.Route) bool {
	d, ok := r.descriptors[route.Key]
	if !ok {
		return false
	}
	if !d.Options.AnimationEnabledOrDefault() {
		return false
	}
	return d.Options.GestureEnabled == nil || *d.Options.GestureEnabled
}

func (r *Router) handleOpenRoute(route *stack.Route) {
	_, registered := r.scenes[route.Name]
	if slices.Contains(r.closing, route.Key) && !slices.Contains(r.replacing, route.Key) &&
		registered && indexOfKey(r.state.Routes, route.Key) < 0 {
		// The close was cancelled after the route had left the state: put it back.
		internal.GetInternalLogger().Debug("Restoring route after cancelled close", "route", route.Key)
		r.transition("restore", func(routes []*stack.Route) []*stack.Route {
			return append(routes, route)
		})
		return
	}

	if len(r.replacing) > 0 {
		r.routes = slices.DeleteFunc(slices.Clone(r.routes), func(rt *stack.Route) bool {
			return slices.Contains(r.replacing, rt.Key)
		})
	}
	r.opening = without(r.opening, route.Key)
	r.closing = without(r.closing, route.Key)
	r.replacing = nil
	r.render()
	r.emit(Event{Type: EventOpen, Route: route})
}

func (r *Router) handleCloseRoute(route *stack.Route) {
	if i := indexOfKey(r.state.Routes, route.Key); i >= 0 {
		// Closed from the card itself, typically by a swipe: pop it.
		if i == 0 {
			internal.GetInternalLogger().Warn("Ignoring close of the root route", "route", route.Key)
			return
		}
		r.transition("pop", func(routes []*stack.Route) []*stack.Route {
			return routes[:i]
		})
		return
	}

	r.routes = slices.DeleteFunc(slices.Clone(r.routes), func(rt *stack.Route) bool {
		return rt.Key == route.Key
	})
	r.opening = without(r.opening, route.Key)
	r.closing = without(r.closing, route.Key)
	r.render()
	r.emit(Event{Type: EventClose, Route: route})
}

func indexOfKey(routes []*stack.Route, key string) int {
	return slices.IndexFunc(routes, func(r *stack.Route) bool { return r.Key == key })
}

func without(keys []string, key string) []string {
	return slices.DeleteFunc(slices.Clone(keys), func(k string) bool { return k == key })
}

func onlyRendered(keys []string, routes []*stack.Route) []string {
	return slices.DeleteFunc(keys, func(k string) bool { return indexOfKey(routes, k) < 0 })
}
