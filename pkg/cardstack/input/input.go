// Package input turns raw pointer samples from a compositor or a touch
// device into the pan events a stack.CardStack consumes.
package input

import (
	"time"

	"github.com/BrandonKowalski/cardstack/pkg/cardstack/stack"
)

// Phase is the phase of a pointer sample.
type Phase int

const (
	PointerDown Phase = iota
	PointerMove
	PointerUp
	PointerCancel
)

func (p Phase) String() string {
	switch p {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Pointer is one sample of a single pointer, in layout coordinates.
type Pointer struct {
	Phase Phase
	X, Y  float64
	At    time.Duration // monotonic timestamp of the sample
}

// Events is what a compositor collected since it was last polled.
type Events struct {
	Quit     bool
	Back     bool          // the user asked to go back (Escape, Backspace)
	Resized  *stack.Layout // new viewport size, nil if unchanged
	Pointers []Pointer
}

// Empty reports whether nothing happened.
func (e Events) Empty() bool {
	return !e.Quit && !e.Back && e.Resized == nil && len(e.Pointers) == 0
}
