// Package animated provides observable scalar values that are driven by
// gestures and timed animations, plus the derived nodes computed from them.
//
// A Value owns a single float64. Interpolations read through to their parent
// on every Get, so a chain of derived nodes always reflects the latest value
// without having to be rebuilt. Listeners registered on a Value (or on any
// node derived from it) are pushed every update, which is how a compositor
// learns it has to redraw.
package animated

import (
	"go.uber.org/atomic"
)

// Node is anything that yields an animated number.
type Node interface {
	Get() float64
}

// Listenable is a Node that can push updates to subscribers.
type Listenable interface {
	Node
	AddListener(fn func(value float64)) (remove func())
}

// Value is a continuous animated scalar.
//
// Identity matters: consumers hold on to a *Value across derivations, and
// replacing it would reset an in-flight animation.
type Value struct {
	current   *atomic.Float64
	listeners map[int]func(float64)
	nextID    int
	running   *Animation
}

// NewValue creates a Value holding initial.
func NewValue(initial float64) *Value {
	return &Value{
		current:   atomic.NewFloat64(initial),
		listeners: make(map[int]func(float64)),
	}
}

// Get returns the current value. Safe to call from any goroutine.
func (v *Value) Get() float64 {
	return v.current.Load()
}

// SetValue stops any running animation and jumps to x.
func (v *Value) SetValue(x float64) {
	v.StopAnimation()
	v.set(x)
}

// StopAnimation interrupts the running animation, if any, and returns the
// value it stopped at. The animation's completion callback fires with
// finished=false.
func (v *Value) StopAnimation() float64 {
	if v.running != nil {
		v.running.Stop()
	}
	return v.Get()
}

// IsAnimating reports whether an animation is currently driving the value.
func (v *Value) IsAnimating() bool {
	return v.running != nil
}

// AddListener registers fn to be called with every new value and returns a
// function that removes it.
func (v *Value) AddListener(fn func(value float64)) (remove func()) {
	id := v.nextID
	v.nextID++
	v.listeners[id] = fn
	return func() {
		delete(v.listeners, id)
	}
}

// ListenerCount returns the number of registered listeners.
func (v *Value) ListenerCount() int {
	return len(v.listeners)
}

// Interpolate derives a node that maps this value through cfg.
func (v *Value) Interpolate(cfg InterpolationConfig) *Interpolation {
	return NewInterpolation(v, cfg)
}

func (v *Value) set(x float64) {
	if v.current.Swap(x) == x {
		return
	}
	for _, fn := range v.listeners {
		fn(x)
	}
}

// Constant is a Node that never changes.
type Constant float64

// Get returns the constant.
func (c Constant) Get() float64 {
	return float64(c)
}
