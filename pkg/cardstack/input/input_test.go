package input

import (
	"math"
	"testing"
	"time"

	"github.com/BrandonKowalski/cardstack/pkg/cardstack/stack"
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func states(events []stack.PanEvent) []stack.GestureState {
	out := make([]stack.GestureState, len(events))
	for i, ev := range events {
		out[i] = ev.State
	}
	return out
}

func TestRecognizerPan(t *testing.T) {
	r := NewRecognizer()

	if got := r.Feed(Pointer{Phase: PointerDown, X: 5, Y: 300, At: 0}); got != nil {
		t.Fatalf("down produced %v", got)
	}
	if got := r.Feed(Pointer{Phase: PointerMove, X: 9, Y: 300, At: ms(16)}); got != nil {
		t.Fatalf("move below the activation distance produced %v", got)
	}

	got := r.Feed(Pointer{Phase: PointerMove, X: 25, Y: 300, At: ms(32)})
	if s := states(got); len(s) != 2 || s[0] != stack.GestureBegan || s[1] != stack.GestureActive {
		t.Fatalf("activation = %v", s)
	}
	if got[0].X != 5 || got[0].Y != 300 {
		t.Errorf("began at (%v, %v), want the press position", got[0].X, got[0].Y)
	}
	if got[1].TranslationX != 20 {
		t.Errorf("translation = %v, want 20", got[1].TranslationX)
	}
	if !r.Active() {
		t.Error("recognizer should be active")
	}

	r.Feed(Pointer{Phase: PointerMove, X: 125, Y: 300, At: ms(48)})
	got = r.Feed(Pointer{Phase: PointerUp, X: 205, Y: 300, At: ms(64)})
	if len(got) != 1 || got[0].State != stack.GestureEnded {
		t.Fatalf("release = %v", states(got))
	}
	if got[0].TranslationX != 200 || got[0].TranslationY != 0 {
		t.Errorf("release translation = (%v, %v)", got[0].TranslationX, got[0].TranslationY)
	}
	// 200px over the 64ms inside the window.
	if want := 200 / 0.064; math.Abs(got[0].VelocityX-want) > 1e-6 {
		t.Errorf("velocity = %v, want %v", got[0].VelocityX, want)
	}
	if r.Active() {
		t.Error("recognizer still active after release")
	}
}

func TestRecognizerVelocityWindow(t *testing.T) {
	r := NewRecognizer()
	r.Feed(Pointer{Phase: PointerDown, X: 0, At: 0})
	r.Feed(Pointer{Phase: PointerMove, X: 100, At: ms(10)})
	r.Feed(Pointer{Phase: PointerMove, X: 100, At: ms(500)})
	got := r.Feed(Pointer{Phase: PointerUp, X: 100, At: ms(550)})
	if len(got) != 1 || got[0].VelocityX != 0 {
		t.Errorf("a finger that rested before release should have no velocity: %v", got)
	}
}

func TestRecognizerTap(t *testing.T) {
	r := NewRecognizer()
	r.Feed(Pointer{Phase: PointerDown, X: 5, Y: 5})
	r.Feed(Pointer{Phase: PointerMove, X: 7, Y: 6, At: ms(10)})
	if got := r.Feed(Pointer{Phase: PointerUp, X: 7, Y: 6, At: ms(20)}); got != nil {
		t.Errorf("tap produced %v", states(got))
	}
	if got := r.Feed(Pointer{Phase: PointerMove, X: 90, Y: 6, At: ms(30)}); got != nil {
		t.Errorf("hover produced %v", states(got))
	}
}

func TestRecognizerCancel(t *testing.T) {
	r := NewRecognizer()
	r.Feed(Pointer{Phase: PointerDown, X: 5, Y: 5})
	r.Feed(Pointer{Phase: PointerMove, X: 50, Y: 5, At: ms(16)})

	got := r.Feed(Pointer{Phase: PointerCancel})
	if len(got) != 1 || got[0].State != stack.GestureCancelled || got[0].TranslationX != 45 {
		t.Errorf("cancel = %+v", got)
	}
	if got := r.Feed(Pointer{Phase: PointerCancel}); got != nil {
		t.Errorf("second cancel produced %v", states(got))
	}

	r.Feed(Pointer{Phase: PointerDown, X: 5, Y: 5})
	r.Feed(Pointer{Phase: PointerMove, X: 50, Y: 5, At: ms(16)})
	got = r.Feed(Pointer{Phase: PointerDown, X: 300, Y: 5, At: ms(32)})
	if len(got) != 1 || got[0].State != stack.GestureCancelled {
		t.Errorf("press during a pan = %v", states(got))
	}
	if r.Active() {
		t.Error("new press should start inactive")
	}
}

func TestContactSync(t *testing.T) {
	c := contact{
		x:      axis{min: 0, max: 1000},
		y:      axis{min: 0, max: 2000},
		layout: stack.Layout{Width: 400, Height: 800},
	}

	if _, ok := c.sync(0); ok {
		t.Fatal("idle report produced a sample")
	}

	c.setTouching(true)
	c.setX(500)
	c.setY(1000)
	p, ok := c.sync(ms(1))
	if !ok || p.Phase != PointerDown || p.X != 200 || p.Y != 400 || p.At != ms(1) {
		t.Fatalf("down = %+v, %v", p, ok)
	}

	if _, ok := c.sync(ms(2)); ok {
		t.Error("unchanged position produced a sample")
	}

	c.setX(750)
	if p, ok := c.sync(ms(3)); !ok || p.Phase != PointerMove || p.X != 300 {
		t.Errorf("move = %+v, %v", p, ok)
	}

	c.setTouching(false)
	if p, ok := c.sync(ms(4)); !ok || p.Phase != PointerUp {
		t.Errorf("up = %+v, %v", p, ok)
	}
	if _, ok := c.sync(ms(5)); ok {
		t.Error("report after release produced a sample")
	}
}

func TestAxisWithoutRange(t *testing.T) {
	if got := (axis{}).scale(42, 400); got != 42 {
		t.Errorf("scale without range = %v, want raw value", got)
	}
}
