// Package term is a terminal compositor. Cards and headers are drawn as
// character cells; one cell covers CellWidth x CellHeight layout units so
// that header heights and gesture distances keep their proportions.
package term

import (
	"image/color"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/BrandonKowalski/cardstack/pkg/cardstack"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/compositor"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/input"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/internal"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/stack"
)

// Size of one terminal cell in layout units.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// Glyphs drawn for the header buttons.
const (
	BackGlyph  = '‹'
	CloseGlyph = '×'
)

// Terminal draws stack frames on a tcell screen.
type Terminal struct {
	screen      tcell.Screen
	theme       internal.Theme
	centerTitle bool
	events      chan tcell.Event
	quit        chan struct{}
	start       time.Time
	pressed     bool
}

var _ compositor.Surface = (*Terminal)(nil)

// New initializes the terminal.
func New(centerTitle bool) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, cardstack.NewInfrastructureError("open terminal", err)
	}
	return NewWithScreen(screen, centerTitle)
}

// NewWithScreen draws on an existing screen, which is initialized here.
func NewWithScreen(screen tcell.Screen, centerTitle bool) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, cardstack.NewInfrastructureError("init terminal", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	t := &Terminal{
		screen:      screen,
		theme:       internal.GetTheme(),
		centerTitle: centerTitle,
		events:      make(chan tcell.Event, 100),
		quit:        make(chan struct{}),
		start:       time.Now(),
	}
	go t.pump()
	return t, nil
}

// pump moves terminal events onto a channel so that Poll never blocks.
func (t *Terminal) pump() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.quit:
			return
		}
	}
}

// Layout returns the terminal size in layout units.
func (t *Terminal) Layout() stack.Layout {
	w, h := t.screen.Size()
	return stack.Layout{Width: float64(w) * CellWidth, Height: float64(h) * CellHeight}
}

// Poll returns the terminal events received since the last call.
func (t *Terminal) Poll() input.Events {
	var events input.Events
	for {
		select {
		case ev := <-t.events:
			t.handle(ev, &events)
		default:
			return events
		}
	}
}

func (t *Terminal) handle(ev tcell.Event, events *input.Events) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		switch {
		case e.Key() == tcell.KeyEscape || e.Key() == tcell.KeyBackspace || e.Key() == tcell.KeyBackspace2:
			events.Back = true
		case e.Key() == tcell.KeyCtrlC || (e.Key() == tcell.KeyRune && e.Rune() == 'q'):
			events.Quit = true
		}

	case *tcell.EventResize:
		layout := t.Layout()
		events.Resized = &layout

	case *tcell.EventMouse:
		x, y := e.Position()
		p := input.Pointer{
			X:  (float64(x) + 0.5) * CellWidth,
			Y:  (float64(y) + 0.5) * CellHeight,
			At: e.When().Sub(t.start),
		}
		down := e.Buttons()&tcell.Button1 != 0
		switch {
		case down && !t.pressed:
			p.Phase = input.PointerDown
		case down:
			p.Phase = input.PointerMove
		case t.pressed:
			p.Phase = input.PointerUp
		default:
			return
		}
		t.pressed = down
		events.Pointers = append(events.Pointers, p)
	}
}

// Draw renders one frame.
func (t *Terminal) Draw(frame stack.Frame) error {
	t.screen.Clear()
	screen := compositor.Screen(frame.Layout)
	bg := t.theme.BackgroundColor
	t.fill(screen, bg)

	for _, card := range frame.Cards {
		if !card.Active {
			continue
		}
		if a := compositor.OverlayOpacity(card); a > 0 {
			t.dim(screen, a)
		}

		rect := compositor.CardRect(frame.Layout, card)
		cardColor := internal.Blend(bg, compositor.CardColor(card, t.theme), compositor.CardOpacity(card))
		t.fill(rect, cardColor)
		if a := compositor.ShadowOpacity(card); a > 0 && rect.X > 0 {
			t.dim(compositor.Rect{X: rect.X - CellWidth, Y: rect.Y, W: CellWidth, H: rect.H}, a*0.25)
		}

		if text := compositor.ContentText(card.Content); text != "" {
			content := compositor.ContentRect(frame.Layout, card)
			t.text(content.X+(content.W-textWidth(text))/2, content.Y+content.H/2, text, t.theme.TextColor, cardColor)
		}
		if card.Header != nil {
			t.header(card.Header, rect)
		}
	}
	if frame.Header != nil {
		t.header(frame.Header, screen)
	}

	t.screen.Show()
	return nil
}

func (t *Terminal) header(h *stack.HeaderFrame, origin compositor.Rect) {
	props := h.Props
	headerBg := t.theme.BackgroundColor
	for _, bar := range props.Bars {
		g := compositor.BarGeometry(origin, props.Insets, bar, t.centerTitle, textWidth)
		if !bar.Transparent && g.Background > 0 && bar.Scene.Route == props.Focused {
			headerBg = internal.Blend(t.theme.BackgroundColor, t.theme.HeaderColor, g.Background)
			t.fill(g.Frame, headerBg)
		}
	}

	for _, bar := range props.Bars {
		g := compositor.BarGeometry(origin, props.Insets, bar, t.centerTitle, textWidth)
		midY := g.Content.Y + g.Content.H/2
		if g.ShowBack && g.BackAlpha > 0.5 {
			glyph := string(BackGlyph)
			if bar.CloseAffordance {
				glyph = string(CloseGlyph)
			}
			t.text(g.Back.X+g.Back.W/2, midY, glyph, t.theme.TintColor, headerBg)
		}
		if g.ShowLabel && g.LabelAlpha > 0.5 {
			t.text(g.Label.X, midY, bar.BackTitle, t.theme.TintColor, headerBg)
		}
		if g.TitleAlpha > 0.5 {
			t.text(g.Title.X, midY, bar.Title, t.theme.TextColor, headerBg)
		}
	}
}

// fill paints every cell whose center lies inside r.
func (t *Terminal) fill(r compositor.Rect, c color.RGBA) {
	style := tcell.StyleDefault.Background(rgb(c))
	t.cells(r, func(x, y int) {
		t.screen.SetContent(x, y, ' ', nil, style)
	})
}

// dim darkens the cells inside r towards the overlay color.
func (t *Terminal) dim(r compositor.Rect, alpha float64) {
	t.cells(r, func(x, y int) {
		mainc, combc, style, _ := t.screen.GetContent(x, y)
		_, bg, _ := style.Decompose()
		cr, cg, cb := bg.RGB()
		base := color.RGBA{R: uint8(cr), G: uint8(cg), B: uint8(cb), A: 0xFF}
		t.screen.SetContent(x, y, mainc, combc, style.Background(rgb(internal.Blend(base, t.theme.OverlayColor, alpha))))
	})
}

func (t *Terminal) cells(r compositor.Rect, fn func(x, y int)) {
	w, h := t.screen.Size()
	x0 := max(0, int(math.Ceil(r.X/CellWidth-0.5)))
	x1 := min(w, int(math.Ceil((r.X+r.W)/CellWidth-0.5)))
	y0 := max(0, int(math.Ceil(r.Y/CellHeight-0.5)))
	y1 := min(h, int(math.Ceil((r.Y+r.H)/CellHeight-0.5)))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			fn(x, y)
		}
	}
}

// text writes s starting at layout position (x, y), clipped to the screen.
func (t *Terminal) text(x, y float64, s string, fg, bg color.RGBA) {
	w, h := t.screen.Size()
	row := int(y / CellHeight)
	if row < 0 || row >= h {
		return
	}
	style := tcell.StyleDefault.Foreground(rgb(fg)).Background(rgb(bg))
	col := int(math.Round(x / CellWidth))
	for _, r := range s {
		if col >= w {
			return
		}
		if col >= 0 {
			t.screen.SetContent(col, row, r, nil, style)
		}
		col++
	}
}

// textWidth measures s in layout units, one cell per rune.
func textWidth(s string) float64 {
	return float64(len([]rune(s))) * CellWidth
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	close(t.quit)
	t.screen.Fini()
	return nil
}
