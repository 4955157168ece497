package window

import "github.com/veandco/go-sdl2/sdl"

// Options configures the SDL window compositor.
type Options struct {
	Title       string
	Width       int32
	Height      int32
	FontPath    string // TTF font for titles and labels, empty draws no text
	FontSize    int
	CenterTitle bool // iOS-style centered titles instead of leading ones
	Flags       Flags
}

// Flags are the SDL window flags.
type Flags struct {
	Borderless        bool // Remove window decorations (SDL_WINDOW_BORDERLESS)
	Resizable         bool // Allow window resizing (SDL_WINDOW_RESIZABLE)
	Fullscreen        bool // Fullscreen mode (SDL_WINDOW_FULLSCREEN)
	FullscreenDesktop bool // Fullscreen at desktop resolution (SDL_WINDOW_FULLSCREEN_DESKTOP)
	AlwaysOnTop       bool // Window stays above others (SDL_WINDOW_ALWAYS_ON_TOP)
	Maximized         bool // Start maximized (SDL_WINDOW_MAXIMIZED)
	Hidden            bool // Start hidden (omits SDL_WINDOW_SHOWN)
}

func (f Flags) IsZero() bool {
	return f == Flags{}
}

func (f Flags) ToSDLFlags() uint32 {
	var flags uint32

	if !f.Hidden {
		flags |= sdl.WINDOW_SHOWN
	}

	if f.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}

	if f.Borderless {
		flags |= sdl.WINDOW_BORDERLESS
	}

	if f.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	if f.FullscreenDesktop {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	if f.AlwaysOnTop {
		flags |= sdl.WINDOW_ALWAYS_ON_TOP
	}

	if f.Maximized {
		flags |= sdl.WINDOW_MAXIMIZED
	}

	return flags
}
