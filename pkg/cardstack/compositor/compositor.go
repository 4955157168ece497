// Package compositor holds what the drawing backends share: the Surface
// they implement and the geometry of a stack.Frame in layout coordinates.
//
// The SDL window lives in compositor/window and the terminal backend in
// compositor/term.
package compositor

import (
	"fmt"
	"image/color"

	"github.com/BrandonKowalski/cardstack/pkg/cardstack/input"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/internal"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/stack"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/transition"
)

// Surface is a drawing backend.
type Surface interface {
	// Layout returns the current viewport size in layout units.
	Layout() stack.Layout
	// Draw presents one frame.
	Draw(frame stack.Frame) error
	// Poll returns the input collected since the last call without blocking.
	Poll() input.Events
	// Close releases the backend.
	Close() error
}

// Rect is an axis-aligned rectangle in layout units.
type Rect struct {
	X, Y, W, H float64
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersect returns the overlap of r and o.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Screen returns the full viewport.
func Screen(layout stack.Layout) Rect {
	return Rect{W: layout.Width, H: layout.Height}
}

// Transform places the viewport-sized rect r under style: translated, then
// scaled around its center.
func Transform(r Rect, style transition.Style) Rect {
	scale := style.Scale
	if scale == 0 {
		scale = 1
	}
	w, h := r.W*scale, r.H*scale
	return Rect{
		X: r.X + style.TranslateX + (r.W-w)/2,
		Y: r.Y + style.TranslateY + (r.H-h)/2,
		W: w,
		H: h,
	}
}

// CardRect is where a card is drawn this frame.
func CardRect(layout stack.Layout, card stack.CardFrame) Rect {
	container := Transform(Screen(layout), card.Style.Container)
	return Transform(container, card.Style.Card)
}

// CardOpacity is the combined opacity of a card and its container.
func CardOpacity(card stack.CardFrame) float64 {
	return clamp01(card.Style.Container.Opacity * card.Style.Card.Opacity)
}

// OverlayOpacity is how strongly the screens beneath a card are dimmed.
func OverlayOpacity(card stack.CardFrame) float64 {
	if !card.OverlayEnabled {
		return 0
	}
	return clamp01(card.Style.Container.Opacity * card.Style.Overlay.Opacity)
}

// ShadowOpacity is the strength of the shadow along a card's leading edge.
func ShadowOpacity(card stack.CardFrame) float64 {
	if !card.ShadowEnabled {
		return 0
	}
	return clamp01(card.Style.Container.Opacity * card.Style.Shadow.Opacity)
}

// ContentRect is the part of a card left to the scene once the header has
// taken its share.
func ContentRect(layout stack.Layout, card stack.CardFrame) Rect {
	r := CardRect(layout, card)
	if card.HeaderShown && !card.HeaderTransparent && card.HeaderHeight > 0 {
		offset := min(card.HeaderHeight, r.H)
		r.Y += offset
		r.H -= offset
	}
	return r
}

// CardColor is the background of a card.
func CardColor(card stack.CardFrame, theme internal.Theme) color.RGBA {
	if card.Appearance != nil && card.Appearance.Background.A > 0 {
		bg := card.Appearance.Background
		return color.RGBA{R: bg.R, G: bg.G, B: bg.B, A: bg.A}
	}
	return theme.CardColor
}

// ContentText returns the text a backend shows for scene content it has no
// special drawing for.
func ContentText(content any) string {
	switch c := content.(type) {
	case nil:
		return ""
	case string:
		return c
	case fmt.Stringer:
		return c.String()
	default:
		return fmt.Sprint(c)
	}
}

// Bar is the geometry of one header bar.
type Bar struct {
	Frame       Rect // the whole bar, status bar area included
	Content     Rect // below the status bar
	Background  float64
	Title       Rect
	TitleAlpha  float64
	Back        Rect // chevron or close button
	BackAlpha   float64
	Label       Rect // back title
	LabelAlpha  float64
	ShowBack    bool
	ShowLabel   bool
	CenterTitle bool
}

// Header button and label sizes in layout units.
const (
	BarButtonSize   = 24.0
	BarPadding      = 8.0
	BarLabelSpacing = 4.0
)

// BarGeometry lays out a header bar. origin is the top-left corner of the
// header: the viewport for a floating header, the card for a screen header.
// textWidth measures a string in layout units.
func BarGeometry(origin Rect, insets stack.Insets, bar stack.HeaderBar, centerTitle bool, textWidth func(string) float64) Bar {
	g := Bar{
		Frame:       Rect{X: origin.X, Y: origin.Y, W: origin.W, H: bar.Height},
		Background:  clamp01(bar.Style.Background.Opacity),
		TitleAlpha:  clamp01(bar.Style.Title.Opacity),
		BackAlpha:   clamp01(bar.Style.LeftButton.Opacity),
		LabelAlpha:  clamp01(bar.Style.LeftLabel.Opacity),
		ShowBack:    bar.CanGoBack,
		ShowLabel:   bar.CanGoBack && !bar.CloseAffordance && bar.BackTitle != "",
		CenterTitle: centerTitle,
	}
	top := min(insets.Top, bar.Height)
	g.Content = Rect{X: origin.X + insets.Left, Y: origin.Y + top, W: origin.W - insets.Left - insets.Right, H: bar.Height - top}
	midY := g.Content.Y + g.Content.H/2

	g.Back = Rect{
		X: g.Content.X + BarPadding + bar.Style.LeftButton.TranslateX,
		Y: midY - BarButtonSize/2 + bar.Style.LeftButton.TranslateY,
		W: BarButtonSize,
		H: BarButtonSize,
	}

	labelW := textWidth(bar.BackTitle)
	g.Label = Rect{
		X: g.Content.X + BarPadding + BarButtonSize + BarLabelSpacing + bar.Style.LeftLabel.TranslateX,
		Y: midY - BarButtonSize/2 + bar.Style.LeftLabel.TranslateY,
		W: labelW,
		H: BarButtonSize,
	}

	titleW := textWidth(bar.Title)
	titleX := g.Content.X + g.Content.W/2 - titleW/2
	if !centerTitle {
		titleX = g.Content.X + BarPadding
		if g.ShowBack {
			titleX += BarButtonSize + 2*BarPadding
		}
	}
	g.Title = Rect{
		X: titleX + bar.Style.Title.TranslateX,
		Y: midY - BarButtonSize/2 + bar.Style.Title.TranslateY,
		W: titleW,
		H: BarButtonSize,
	}
	return g
}

func clamp01(x float64) float64 {
	return max(0, min(1, x))
}
