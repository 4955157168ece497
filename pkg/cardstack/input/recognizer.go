package input

import (
	"math"
	"time"

	"github.com/BrandonKowalski/cardstack/pkg/cardstack/constants"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/internal"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/stack"
)

// Recognizer is a single-pointer pan recognizer. A press becomes a pan once
// it has moved ActivationDistance; a press released before that is a tap
// and produces no pan events.
type Recognizer struct {
	ActivationDistance float64
	VelocityWindow     time.Duration

	down    bool
	active  bool
	startX  float64
	startY  float64
	samples []Pointer
}

// NewRecognizer creates a Recognizer with the default thresholds.
func NewRecognizer() *Recognizer {
	return &Recognizer{
		ActivationDistance: constants.PanActivationDistance,
		VelocityWindow:     constants.PanVelocityWindow,
	}
}

// Active reports whether a pan is in progress.
func (r *Recognizer) Active() bool {
	return r.active
}

// Feed consumes one pointer sample and returns the pan events it produces.
func (r *Recognizer) Feed(p Pointer) []stack.PanEvent {
	switch p.Phase {
	case PointerDown:
		if r.active {
			// A second press without a release: the first pan is lost.
			events := []stack.PanEvent{r.event(stack.GestureCancelled, r.last())}
			r.reset()
			r.press(p)
			return events
		}
		r.press(p)
		return nil

	case PointerMove:
		if !r.down {
			return nil
		}
		r.record(p)
		if r.active {
			return []stack.PanEvent{r.event(stack.GestureActive, p)}
		}
		if math.Hypot(p.X-r.startX, p.Y-r.startY) < r.ActivationDistance {
			return nil
		}
		r.active = true
		internal.GetInternalLogger().Debug("Pan recognized", "x", r.startX, "y", r.startY)
		return []stack.PanEvent{
			{State: stack.GestureBegan, X: r.startX, Y: r.startY},
			r.event(stack.GestureActive, p),
		}

	case PointerUp:
		if !r.down {
			return nil
		}
		r.record(p)
		var events []stack.PanEvent
		if r.active {
			events = []stack.PanEvent{r.event(stack.GestureEnded, p)}
		}
		r.reset()
		return events

	case PointerCancel:
		var events []stack.PanEvent
		if r.active {
			events = []stack.PanEvent{r.event(stack.GestureCancelled, r.last())}
		}
		r.reset()
		return events
	}
	return nil
}

func (r *Recognizer) press(p Pointer) {
	r.down = true
	r.startX, r.startY = p.X, p.Y
	r.samples = append(r.samples[:0], p)
}

func (r *Recognizer) reset() {
	r.down = false
	r.active = false
	r.samples = r.samples[:0]
}

func (r *Recognizer) record(p Pointer) {
	r.samples = append(r.samples, p)
	cutoff := p.At - r.VelocityWindow
	drop := 0
	for drop < len(r.samples)-2 && r.samples[drop].At < cutoff {
		drop++
	}
	r.samples = r.samples[drop:]
}

func (r *Recognizer) last() Pointer {
	if len(r.samples) == 0 {
		return Pointer{X: r.startX, Y: r.startY}
	}
	return r.samples[len(r.samples)-1]
}

func (r *Recognizer) event(state stack.GestureState, p Pointer) stack.PanEvent {
	ev := stack.PanEvent{
		State:        state,
		X:            r.startX,
		Y:            r.startY,
		TranslationX: p.X - r.startX,
		TranslationY: p.Y - r.startY,
	}
	ev.VelocityX, ev.VelocityY = r.velocity()
	return ev
}

// velocity is measured over the samples inside the velocity window, in
// pixels per second.
func (r *Recognizer) velocity() (float64, float64) {
	if len(r.samples) < 2 {
		return 0, 0
	}
	first, last := r.samples[0], r.samples[len(r.samples)-1]
	dt := (last.At - first.At).Seconds()
	if dt <= 0 {
		return 0, 0
	}
	return (last.X - first.X) / dt, (last.Y - first.Y) / dt
}
