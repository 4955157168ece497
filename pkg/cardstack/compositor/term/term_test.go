package term

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/BrandonKowalski/cardstack/pkg/cardstack/constants"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/input"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/router"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/stack"
)

func newTestTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term, err := NewWithScreen(screen, true)
	if err != nil {
		t.Fatal(err)
	}
	screen.SetSize(40, 60)
	t.Cleanup(func() { term.Close() })
	return term, screen
}

func row(screen tcell.SimulationScreen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestLayout(t *testing.T) {
	term, _ := newTestTerminal(t)
	if got := term.Layout(); got != (stack.Layout{Width: 320, Height: 960}) {
		t.Errorf("Layout = %+v", got)
	}
}

func TestDraw(t *testing.T) {
	term, screen := newTestTerminal(t)

	r := router.New(stack.Props{
		Platform:       constants.PlatformIOS,
		Mode:           constants.ModeCard,
		HeaderMode:     constants.HeaderModeFloat,
		ScreensEnabled: true,
		InitialLayout:  term.Layout(),
	}, nil)
	r.Register("games", func(stack.SceneProps) any { return "Library" })
	r.Register("detail", func(stack.SceneProps) any { return "Portal" })
	_ = r.Start("games", nil)
	_ = r.SetOptions(r.Focused().Key, stack.Options{Title: "Games"})
	_ = r.Push("detail", nil, &stack.Options{Title: "Detail"})
	r.Loop().RunUntilIdle(constants.FrameInterval, 1000)

	if err := term.Draw(r.Cards().Render()); err != nil {
		t.Fatal(err)
	}

	// A 44 unit header puts the bar's middle on the second row.
	header := row(screen, 1)
	if got := []rune(header)[3]; got != BackGlyph {
		t.Errorf("back glyph = %q in %q", got, header)
	}
	if !strings.Contains(header, "Games") || !strings.Contains(header, "Detail") {
		t.Errorf("header row = %q", header)
	}
	if idx := strings.Index(header, "Detail"); idx < 0 || len([]rune(header[:idx])) != 17 {
		t.Errorf("title not centered: %q", header)
	}

	// Content is centered in the space below the header.
	content := row(screen, 31)
	if !strings.Contains(content, "Portal") {
		t.Errorf("content row = %q", content)
	}
	for y := 0; y < 60; y++ {
		if strings.Contains(row(screen, y), "Library") {
			t.Errorf("covered screen drawn on row %d", y)
		}
	}
}

func waitEvents(t *testing.T, term *Terminal, done func(input.Events) bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if done(term.Poll()) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timed out waiting for terminal events")
}

func TestPollKeys(t *testing.T) {
	term, screen := newTestTerminal(t)

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	waitEvents(t, term, func(ev input.Events) bool { return ev.Back })

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	waitEvents(t, term, func(ev input.Events) bool { return ev.Quit })
}

func TestPollMouse(t *testing.T) {
	term, screen := newTestTerminal(t)

	var pointers []input.Pointer
	screen.InjectMouse(0, 10, tcell.Button1, tcell.ModNone)
	screen.InjectMouse(5, 10, tcell.Button1, tcell.ModNone)
	screen.InjectMouse(5, 10, tcell.ButtonNone, tcell.ModNone)
	waitEvents(t, term, func(ev input.Events) bool {
		pointers = append(pointers, ev.Pointers...)
		return len(pointers) >= 3
	})

	want := []input.Phase{input.PointerDown, input.PointerMove, input.PointerUp}
	for i, p := range pointers[:3] {
		if p.Phase != want[i] {
			t.Errorf("pointer %d phase = %v, want %v", i, p.Phase, want[i])
		}
	}
	if p := pointers[0]; p.X != 4 || p.Y != 168 {
		t.Errorf("down at (%v, %v), want the center of cell (0, 10)", p.X, p.Y)
	}
	if p := pointers[1]; p.X != 44 {
		t.Errorf("move at x=%v, want 44", p.X)
	}
}
