// Package window is the SDL compositor: it opens a window and draws
// stack frames into it with the SDL renderer.
package window

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/cardstack/pkg/cardstack"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/compositor"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/input"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/internal"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/stack"
)

// Drawer is scene or header content that draws itself. Content that is not
// a Drawer is shown as text.
type Drawer interface {
	Draw(renderer *sdl.Renderer, rect sdl.Rect, alpha float64) error
}

// Window wraps the SDL window and renderer.
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	font     *ttf.Font
	textures *textureCache
	icons    map[string]*sdl.Texture
	theme    internal.Theme
	opts     Options

	running         *atomic.Bool
	pressed         bool
	hasVSync        bool
	lastPresentTime uint64
}

var _ compositor.Surface = (*Window)(nil)

// New initializes SDL and opens the window.
func New(opts Options) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, cardstack.NewInfrastructureError("init sdl", err)
	}
	if err := ttf.Init(); err != nil {
		sdl.Quit()
		return nil, cardstack.NewInfrastructureError("init sdl_ttf", err)
	}

	if opts.Flags.IsZero() {
		opts.Flags = Flags{Resizable: true}
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 17
	}

	internal.GetInternalLogger().Debug("Initializing SDL Window", "width", opts.Width, "height", opts.Height)

	x, y := int32(sdl.WINDOWPOS_CENTERED), int32(sdl.WINDOWPOS_CENTERED)
	win, err := sdl.CreateWindow(opts.Title, x, y, opts.Width, opts.Height, opts.Flags.ToSDLFlags())
	if err != nil {
		ttf.Quit()
		sdl.Quit()
		return nil, cardstack.NewInfrastructureError("create window", err)
	}

	renderer, err := sdl.CreateRenderer(win, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		internal.GetInternalLogger().Warn("Accelerated renderer unavailable, falling back to software", "error", err)
		renderer, err = sdl.CreateRenderer(win, -1, sdl.RENDERER_SOFTWARE)
	}
	if err != nil {
		win.Destroy()
		ttf.Quit()
		sdl.Quit()
		return nil, cardstack.NewInfrastructureError("create renderer", err)
	}
	renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)

	info, err := renderer.GetInfo()
	w := &Window{
		window:   win,
		renderer: renderer,
		textures: newTextureCache(defaultMaxCacheSize),
		icons:    make(map[string]*sdl.Texture),
		theme:    internal.GetTheme(),
		opts:     opts,
		running:  atomic.NewBool(true),
		hasVSync: err == nil && info.Flags&sdl.RENDERER_PRESENTVSYNC != 0,
	}

	fontPath := opts.FontPath
	if fontPath == "" {
		fontPath = w.theme.FontPath
	}
	if fontPath != "" {
		font, err := ttf.OpenFont(fontPath, opts.FontSize)
		if err != nil {
			internal.GetInternalLogger().Error("Failed to open font, text will not be drawn", "path", fontPath, "error", err)
		} else {
			w.font = font
		}
	}

	for _, name := range []string{internal.IconBack, internal.IconClose} {
		texture, err := w.iconTexture(name)
		if err != nil {
			internal.GetInternalLogger().Error("Failed to load icon", "icon", name, "error", err)
			continue
		}
		w.icons[name] = texture
	}
	return w, nil
}

// Layout returns the window size.
func (w *Window) Layout() stack.Layout {
	width, height := w.window.GetSize()
	return stack.Layout{Width: float64(width), Height: float64(height)}
}

// Stop makes the next Poll report Quit. It is safe to call from any goroutine.
func (w *Window) Stop() {
	w.running.Store(false)
}

// Poll drains the SDL event queue.
func (w *Window) Poll() input.Events {
	var events input.Events
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			events.Quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				events.Resized = &stack.Layout{Width: float64(e.Data1), Height: float64(e.Data2)}
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			switch e.Keysym.Sym {
			case sdl.K_ESCAPE, sdl.K_BACKSPACE:
				events.Back = true
			case sdl.K_q:
				events.Quit = true
			}

		case *sdl.MouseButtonEvent:
			if e.Button != sdl.BUTTON_LEFT {
				continue
			}
			p := input.Pointer{X: float64(e.X), Y: float64(e.Y), At: millis(e.Timestamp)}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				w.pressed = true
				p.Phase = input.PointerDown
			} else {
				w.pressed = false
				p.Phase = input.PointerUp
			}
			events.Pointers = append(events.Pointers, p)

		case *sdl.MouseMotionEvent:
			if !w.pressed {
				continue
			}
			events.Pointers = append(events.Pointers, input.Pointer{
				Phase: input.PointerMove,
				X:     float64(e.X),
				Y:     float64(e.Y),
				At:    millis(e.Timestamp),
			})
		}
	}
	if !w.running.Load() {
		events.Quit = true
	}
	return events
}

func millis(ts uint32) time.Duration {
	return time.Duration(ts) * time.Millisecond
}

// Draw renders one frame, bottom card first, then the floating header.
func (w *Window) Draw(frame stack.Frame) error {
	screen := compositor.Screen(frame.Layout)

	w.fill(screen, w.theme.BackgroundColor, 1)
	for _, card := range frame.Cards {
		if !card.Active {
			continue
		}
		if a := compositor.OverlayOpacity(card); a > 0 {
			w.fill(screen, w.theme.OverlayColor, a)
		}

		rect := compositor.CardRect(frame.Layout, card)
		alpha := compositor.CardOpacity(card)
		if a := compositor.ShadowOpacity(card); a > 0 {
			w.shadow(rect, a)
		}
		w.fill(rect, compositor.CardColor(card, w.theme), alpha)
		if err := w.content(card.Content, compositor.ContentRect(frame.Layout, card), alpha); err != nil {
			return fmt.Errorf("window: draw %s: %w", card.Route.Key, err)
		}
		if card.Header != nil {
			if err := w.header(card.Header, rect); err != nil {
				return err
			}
		}
	}
	if frame.Header != nil {
		if err := w.header(frame.Header, screen); err != nil {
			return err
		}
	}

	w.present()
	return nil
}

// present swaps the render buffer and enforces ~60fps frame timing when
// VSync is not available.
func (w *Window) present() {
	w.renderer.Present()
	if !w.hasVSync {
		now := sdl.GetTicks64()
		if elapsed := now - w.lastPresentTime; elapsed < 16 {
			sdl.Delay(uint32(16 - elapsed))
		}
		w.lastPresentTime = sdl.GetTicks64()
	}
}

func (w *Window) header(h *stack.HeaderFrame, origin compositor.Rect) error {
	props := h.Props
	if d, ok := h.Content.(Drawer); ok {
		return d.Draw(w.renderer, toSDL(compositor.Rect{X: origin.X, Y: origin.Y, W: origin.W, H: props.Height}), 1)
	}

	for _, bar := range props.Bars {
		g := compositor.BarGeometry(origin, props.Insets, bar, w.opts.CenterTitle, w.textWidth)
		if !bar.Transparent && g.Background > 0 && bar.Scene.Route == props.Focused {
			w.fill(g.Frame, w.theme.HeaderColor, g.Background)
		}
		if g.ShowBack && g.BackAlpha > 0 {
			icon := internal.IconBack
			if bar.CloseAffordance {
				icon = internal.IconClose
			}
			if texture := w.icons[icon]; texture != nil {
				texture.SetAlphaMod(alpha8(g.BackAlpha))
				w.renderer.Copy(texture, nil, rectPtr(g.Back))
			}
		}
		if g.ShowLabel && g.LabelAlpha > 0 {
			w.text(bar.BackTitle, g.Label, w.theme.TintColor, g.LabelAlpha)
		}
		if g.TitleAlpha > 0 {
			w.text(bar.Title, g.Title, w.theme.TextColor, g.TitleAlpha)
		}
	}
	return nil
}

func (w *Window) content(content any, rect compositor.Rect, alpha float64) error {
	if d, ok := content.(Drawer); ok {
		return d.Draw(w.renderer, toSDL(rect), alpha)
	}
	text := compositor.ContentText(content)
	if text == "" {
		return nil
	}
	width := w.textWidth(text)
	w.text(text, compositor.Rect{
		X: rect.X + (rect.W-width)/2,
		Y: rect.Y + rect.H/2 - float64(w.opts.FontSize)/2,
		W: width,
		H: float64(w.opts.FontSize),
	}, w.theme.TextColor, alpha)
	return nil
}

func (w *Window) fill(r compositor.Rect, c color.RGBA, alpha float64) {
	w.renderer.SetDrawColor(c.R, c.G, c.B, alpha8(alpha*float64(c.A)/0xFF))
	w.renderer.FillRect(rectPtr(r))
}

// shadow is a soft band along the leading edge of a card.
func (w *Window) shadow(r compositor.Rect, alpha float64) {
	const width = 12
	c := w.theme.ShadowColor
	for i := 0; i < width; i++ {
		falloff := alpha * float64(width-i) / width * 0.25
		w.renderer.SetDrawColor(c.R, c.G, c.B, alpha8(falloff))
		w.renderer.FillRect(rectPtr(compositor.Rect{X: r.X - float64(i+1), Y: r.Y, W: 1, H: r.H}))
	}
}

func (w *Window) textWidth(s string) float64 {
	if w.font == nil || s == "" {
		return 0
	}
	width, _, err := w.font.SizeUTF8(s)
	if err != nil {
		return 0
	}
	return float64(width)
}

func (w *Window) text(s string, r compositor.Rect, c color.RGBA, alpha float64) {
	if w.font == nil || s == "" {
		return
	}
	key := fmt.Sprintf("%s|%02x%02x%02x", s, c.R, c.G, c.B)
	texture := w.textures.get(key)
	if texture == nil {
		surface, err := w.font.RenderUTF8Blended(s, sdl.Color{R: c.R, G: c.G, B: c.B, A: c.A})
		if err != nil {
			internal.GetInternalLogger().Error("Failed to render text", "text", s, "error", err)
			return
		}
		texture, err = w.renderer.CreateTextureFromSurface(surface)
		surface.Free()
		if err != nil {
			internal.GetInternalLogger().Error("Failed to create text texture", "text", s, "error", err)
			return
		}
		w.textures.set(key, texture)
	}

	_, _, tw, th, err := texture.Query()
	if err != nil {
		return
	}
	texture.SetAlphaMod(alpha8(alpha))
	dst := sdl.Rect{X: int32(r.X), Y: int32(r.Y + (r.H-float64(th))/2), W: tw, H: th}
	w.renderer.Copy(texture, nil, &dst)
}

// iconTexture rasterizes an icon in the tint color and uploads it.
func (w *Window) iconTexture(name string) (*sdl.Texture, error) {
	size := int(compositor.BarButtonSize)
	img, err := internal.RasterizeIcon(name, size, w.theme.TintColor)
	if err != nil {
		return nil, err
	}

	surface, err := sdl.CreateRGBSurfaceWithFormat(0, int32(size), int32(size), 32, uint32(sdl.PIXELFORMAT_ABGR8888))
	if err != nil {
		return nil, err
	}
	defer surface.Free()

	surface.Lock()
	copyStraightAlpha(surface.Pixels(), int(surface.Pitch), img)
	surface.Unlock()

	texture, err := w.renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return nil, err
	}
	texture.SetBlendMode(sdl.BLENDMODE_BLEND)
	return texture, nil
}

// copyStraightAlpha copies img into an RGBA byte buffer, undoing the
// premultiplication of image.RGBA.
func copyStraightAlpha(dst []byte, pitch int, img *image.RGBA) {
	b := img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+b.Dx()*4]
		row := dst[y*pitch : y*pitch+b.Dx()*4]
		for i := 0; i < len(src); i += 4 {
			a := src[i+3]
			row[i+3] = a
			if a == 0 {
				row[i], row[i+1], row[i+2] = 0, 0, 0
				continue
			}
			for c := 0; c < 3; c++ {
				row[i+c] = uint8(min(255, int(src[i+c])*255/int(a)))
			}
		}
	}
}

// Close releases every SDL resource.
func (w *Window) Close() error {
	w.running.Store(false)
	w.textures.destroy()
	for _, texture := range w.icons {
		texture.Destroy()
	}
	if w.font != nil {
		w.font.Close()
	}
	w.renderer.Destroy()
	err := w.window.Destroy()
	ttf.Quit()
	sdl.Quit()
	if err != nil {
		return cardstack.NewInfrastructureError("destroy window", err)
	}
	return nil
}

func alpha8(a float64) uint8 {
	return uint8(max(0, min(1, a))*0xFF + 0.5)
}

func toSDL(r compositor.Rect) sdl.Rect {
	return sdl.Rect{X: int32(r.X), Y: int32(r.Y), W: int32(r.W + 0.5), H: int32(r.H + 0.5)}
}

func rectPtr(r compositor.Rect) *sdl.Rect {
	rect := toSDL(r)
	return &rect
}
