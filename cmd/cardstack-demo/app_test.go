package main

import (
	"strings"
	"testing"
	"time"

	"github.com/BrandonKowalski/cardstack/pkg/cardstack/compositor"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/config"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/constants"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/input"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/stack"
)

type fakeSurface struct {
	layout stack.Layout
	queue  []input.Events
	frames []stack.Frame
}

var _ compositor.Surface = (*fakeSurface)(nil)

func (f *fakeSurface) Layout() stack.Layout { return f.layout }

func (f *fakeSurface) Draw(frame stack.Frame) error {
	f.frames = append(f.frames, frame)
	return nil
}

func (f *fakeSurface) Poll() input.Events {
	if len(f.queue) == 0 {
		return input.Events{}
	}
	ev := f.queue[0]
	f.queue = f.queue[1:]
	return ev
}

func (f *fakeSurface) Close() error { return nil }

func newTestApp(t *testing.T) (*app, *fakeSurface) {
	t.Helper()
	surface := &fakeSurface{layout: stack.Layout{Width: 400, Height: 800}}
	a := newApp(config.Default(), surface)
	if err := a.start(); err != nil {
		t.Fatal(err)
	}
	return a, surface
}

func frames(t *testing.T, a *app, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if quit, err := a.frame(constants.FrameInterval); err != nil || quit {
			t.Fatalf("frame %d: quit=%v err=%v", i, quit, err)
		}
	}
}

// settle draws frames until every animation and timer has finished.
func settle(t *testing.T, a *app) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		frames(t, a, 1)
		if a.router.Loop().Idle() {
			return
		}
	}
	t.Fatal("animations did not settle")
}

func tapAt(x, y float64) input.Events {
	return input.Events{Pointers: []input.Pointer{
		{Phase: input.PointerDown, X: x, Y: y},
		{Phase: input.PointerUp, X: x, Y: y, At: 50 * time.Millisecond},
	}}
}

func TestTapPushesAndBackPops(t *testing.T) {
	a, surface := newTestApp(t)
	frames(t, a, 1)

	last := surface.frames[len(surface.frames)-1]
	if got := last.Cards[0].Content.(string); !strings.Contains(got, "Portal") {
		t.Errorf("library content = %q", got)
	}
	if got := last.Cards[0].Scene.Descriptor.Options.Title; got != "Library" {
		t.Errorf("library title = %q", got)
	}

	surface.queue = append(surface.queue, tapAt(200, 400))
	settle(t, a)
	focused := a.router.Focused()
	if focused.Name != "game" || focused.Params["game"].(game).Name != "Portal" {
		t.Fatalf("focused = %+v", focused)
	}

	// A tap on the header back button.
	surface.queue = append(surface.queue, tapAt(20, 20))
	settle(t, a)
	if got := a.router.Focused().Name; got != "library" {
		t.Errorf("after back tap focused = %s", got)
	}
	if got := len(a.router.Routes()); got != 1 {
		t.Errorf("rendered routes = %d", got)
	}

	// The next tap opens the next game.
	surface.queue = append(surface.queue, tapAt(200, 400))
	frames(t, a, 1)
	if got := a.router.Focused().Params["game"].(game).Name; got != "Celeste" {
		t.Errorf("second game = %s", got)
	}

	surface.queue = append(surface.queue, input.Events{Back: true})
	settle(t, a)
	if got := a.router.Focused().Name; got != "library" {
		t.Errorf("after back key focused = %s", got)
	}

	// Going back from the first screen is ignored.
	surface.queue = append(surface.queue, input.Events{Back: true})
	frames(t, a, 1)
	if got := len(a.router.State().Routes); got != 1 {
		t.Errorf("routes = %d", got)
	}
}

func TestCreditsReturnToTop(t *testing.T) {
	a, surface := newTestApp(t)
	surface.queue = append(surface.queue, tapAt(200, 400))
	settle(t, a)
	surface.queue = append(surface.queue, tapAt(200, 400))
	settle(t, a)
	if got := a.router.Focused().Name; got != "credits" {
		t.Fatalf("focused = %s", got)
	}

	surface.queue = append(surface.queue, tapAt(200, 400))
	settle(t, a)
	if got := a.router.State().Routes; len(got) != 1 || got[0].Name != "library" {
		t.Errorf("routes after credits tap = %d", len(got))
	}
}

func TestSwipeBack(t *testing.T) {
	a, surface := newTestApp(t)
	surface.queue = append(surface.queue, tapAt(200, 400))
	settle(t, a)

	surface.queue = append(surface.queue, input.Events{Pointers: []input.Pointer{
		{Phase: input.PointerDown, X: 5, Y: 300},
		{Phase: input.PointerMove, X: 20, Y: 300, At: 16 * time.Millisecond},
		{Phase: input.PointerMove, X: 305, Y: 300, At: 32 * time.Millisecond},
		{Phase: input.PointerUp, X: 305, Y: 300, At: 48 * time.Millisecond},
	}})
	settle(t, a)

	if got := a.router.Focused().Name; got != "library" {
		t.Errorf("after swipe focused = %s", got)
	}
	if got := len(a.router.Routes()); got != 1 {
		t.Errorf("rendered routes = %d", got)
	}
	if a.router.Focused().Name == "credits" {
		t.Error("the swipe release was taken for a tap")
	}
}

func TestQuitAndResize(t *testing.T) {
	a, surface := newTestApp(t)

	resized := stack.Layout{Width: 800, Height: 400}
	surface.queue = append(surface.queue, input.Events{Resized: &resized})
	frames(t, a, 1)
	if got := a.router.Cards().Layout(); got != resized {
		t.Errorf("layout = %+v", got)
	}

	surface.queue = append(surface.queue, input.Events{Quit: true})
	if quit, err := a.frame(constants.FrameInterval); !quit || err != nil {
		t.Errorf("frame = %v, %v, want quit", quit, err)
	}
}
