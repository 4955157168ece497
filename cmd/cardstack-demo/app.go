package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BrandonKowalski/cardstack/pkg/cardstack"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/compositor"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/config"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/constants"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/input"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/router"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/stack"
)

// Taps this close to the leading edge of the header hit the back button.
const backButtonWidth = 120.0

type game struct {
	Name      string
	Year      int
	Developer string
}

var library = []game{
	{Name: "Portal", Year: 2007, Developer: "Valve"},
	{Name: "Celeste", Year: 2018, Developer: "Maddy Makes Games"},
	{Name: "Hollow Knight", Year: 2017, Developer: "Team Cherry"},
	{Name: "Outer Wilds", Year: 2019, Developer: "Mobius Digital"},
}

var defaultTitles = map[string]string{
	"library": "Library",
	"credits": "Credits",
}

// titledOptions adds the demo's screen titles to the configured options.
type titledOptions struct {
	cfg *config.Config
}

func (t titledOptions) OptionsFor(name string) stack.Options {
	o := t.cfg.OptionsFor(name)
	if o.Title == "" {
		o.Title = defaultTitles[name]
	}
	return o
}

type app struct {
	router     *router.Router
	surface    compositor.Surface
	recognizer *input.Recognizer
	touches    <-chan input.Pointer

	panned   bool
	nextGame int
}

func newApp(cfg *config.Config, surface compositor.Surface) *app {
	base := cfg.Props()
	base.InitialLayout = surface.Layout()

	a := &app{
		router:     router.New(base, titledOptions{cfg: cfg}),
		surface:    surface,
		recognizer: input.NewRecognizer(),
	}
	a.router.
		Register("library", a.libraryScene).
		Register("game", gameScene).
		Register("credits", func(stack.SceneProps) any { return "Made with cardstack. Tap to start over." })

	a.router.AddListener(func(ev router.Event) {
		switch ev.Type {
		case router.EventFocus, router.EventOpen, router.EventClose:
			cardstack.GetLogger().Debug("Navigation", "event", ev.Type.String(), "route", ev.Route.Key)
		}
	})
	return a
}

func (a *app) libraryScene(props stack.SceneProps) any {
	next := library[a.nextGame%len(library)]
	return fmt.Sprintf("%d games. Tap to open %s.", len(library), next.Name)
}

func gameScene(props stack.SceneProps) any {
	g, ok := props.Route.Params["game"].(game)
	if !ok {
		return "Unknown game"
	}
	return fmt.Sprintf("%s (%d) by %s. Tap for credits.", g.Name, g.Year, g.Developer)
}

func (a *app) start() error {
	return a.router.Start("library", nil)
}

func (a *app) run(ctx context.Context) error {
	if err := a.start(); err != nil {
		return err
	}

	ticker := time.NewTicker(constants.FrameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case p := <-a.touches:
			a.pointer(p)
		case now := <-ticker.C:
			quit, err := a.frame(now.Sub(last))
			if err != nil || quit {
				return err
			}
			last = now
		}
	}
}

// frame handles the input collected by the surface, advances animations by
// dt and draws. It reports whether the user asked to quit.
func (a *app) frame(dt time.Duration) (bool, error) {
	events := a.surface.Poll()
	if events.Quit {
		return true, nil
	}
	if events.Resized != nil {
		a.router.Cards().HandleLayout(*events.Resized)
	}
	if events.Back {
		a.goBack()
	}
	for _, p := range events.Pointers {
		a.pointer(p)
	}

	a.router.Tick(dt)
	if err := a.surface.Draw(a.router.Cards().Render()); err != nil {
		return false, fmt.Errorf("draw: %w", err)
	}
	return false, nil
}

func (a *app) pointer(p input.Pointer) {
	for _, ev := range a.recognizer.Feed(p) {
		a.panned = true
		a.router.Cards().HandlePan(ev)
	}
	switch p.Phase {
	case input.PointerDown:
		a.panned = false
	case input.PointerUp:
		if !a.panned {
			a.tap(p.X, p.Y)
		}
	}
}

func (a *app) tap(x, y float64) {
	focused := a.router.Focused()
	if focused == nil {
		return
	}
	if y < a.router.Cards().HeaderHeights()[focused.Key] {
		if x < backButtonWidth {
			a.goBack()
		}
		return
	}

	var err error
	switch focused.Name {
	case "library":
		g := library[a.nextGame%len(library)]
		a.nextGame++
		err = a.router.Push("game", map[string]any{"game": g}, &stack.Options{Title: g.Name})
	case "game":
		err = a.router.Push("credits", nil, nil)
	case "credits":
		err = a.router.PopToTop()
	}
	if err != nil {
		cardstack.GetLogger().Error("Navigation failed", "route", focused.Key, "error", err)
	}
}

func (a *app) goBack() {
	if err := a.router.GoBack(); err != nil {
		if errors.Is(err, cardstack.ErrEmptyState) {
			cardstack.GetLogger().Debug("Already at the first screen")
			return
		}
		cardstack.GetLogger().Error("Going back failed", "error", err)
	}
}
