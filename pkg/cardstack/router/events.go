package router

import "github.com/BrandonKowalski/cardstack/pkg/cardstack/stack"

// EventType identifies a navigation event.
type EventType int

const (
	EventFocus           EventType = iota // A route became the focused route
	EventOpen                             // A route finished opening
	EventClose                            // A route finished closing and was removed
	EventTransitionStart                  // A route started animating
	EventTransitionEnd                    // A route finished animating
	EventGestureStart                     // A dismiss swipe started on a route
	EventGestureEnd                       // A dismiss swipe was released
	EventGestureCancel                    // A dismiss swipe was cancelled
)

func (t EventType) String() string {
	switch t {
	case EventFocus:
		return "focus"
	case EventOpen:
		return "open"
	case EventClose:
		return "close"
	case EventTransitionStart:
		return "transitionStart"
	case EventTransitionEnd:
		return "transitionEnd"
	case EventGestureStart:
		return "gestureStart"
	case EventGestureEnd:
		return "gestureEnd"
	case EventGestureCancel:
		return "gestureCancel"
	default:
		return "unknown"
	}
}

// Event is a navigation event. Closing is set for transition events.
type Event struct {
	Type    EventType
	Route   *stack.Route
	Closing bool
}

// Listener receives navigation events.
type Listener func(Event)

// AddListener registers fn for every navigation event.
func (r *Router) AddListener(fn Listener) (remove func()) {
	id := r.nextListener
	r.nextListener++
	r.listeners[id] = fn
	return func() { delete(r.listeners, id) }
}

func (r *Router) emit(ev Event) {
	for id := 0; id < r.nextListener; id++ {
		if fn, ok := r.listeners[id]; ok {
			fn(ev)
		}
	}
}

// callbacks wires the card stack's lifecycle events to the router and its
// listeners. Callbacks set on the base props still fire afterwards.
func (r *Router) callbacks() stack.Callbacks {
	base := r.base.Callbacks
	return stack.Callbacks{
		OnOpenRoute: func(route *stack.Route) {
			r.handleOpenRoute(route)
			if base.OnOpenRoute != nil {
				base.OnOpenRoute(route)
			}
		},
		OnCloseRoute: func(route *stack.Route) {
			r.handleCloseRoute(route)
			if base.OnCloseRoute != nil {
				base.OnCloseRoute(route)
			}
		},
		OnTransitionStart: func(route *stack.Route, closing bool) {
			r.emit(Event{Type: EventTransitionStart, Route: route, Closing: closing})
			if base.OnTransitionStart != nil {
				base.OnTransitionStart(route, closing)
			}
		},
		OnTransitionEnd: func(route *stack.Route, closing bool) {
			r.emit(Event{Type: EventTransitionEnd, Route: route, Closing: closing})
			if base.OnTransitionEnd != nil {
				base.OnTransitionEnd(route, closing)
			}
		},
		OnPageChangeStart:   base.OnPageChangeStart,
		OnPageChangeConfirm: base.OnPageChangeConfirm,
		OnPageChangeCancel:  base.OnPageChangeCancel,
		OnGestureStart: func(route *stack.Route) {
			r.emit(Event{Type: EventGestureStart, Route: route})
			if base.OnGestureStart != nil {
				base.OnGestureStart(route)
			}
		},
		OnGestureEnd: func(route *stack.Route) {
			r.emit(Event{Type: EventGestureEnd, Route: route})
			if base.OnGestureEnd != nil {
				base.OnGestureEnd(route)
			}
		},
		OnGestureCancel: func(route *stack.Route) {
			r.emit(Event{Type: EventGestureCancel, Route: route})
			if base.OnGestureCancel != nil {
				base.OnGestureCancel(route)
			}
		},
	}
}
