package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/cardstack/pkg/cardstack"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/compositor"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/compositor/term"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/compositor/window"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/config"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/constants"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/input"
)

func init() {
	// SDL must be driven from the thread it was initialized on.
	runtime.LockOSThread()
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	backend     string
	touchDevice string
	logLevel    string
	logPath     string
	fontPath    string
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "cardstack-demo",
		Short: "Browse a small game library on a card stack",
		Long: strings.TrimSpace(`
Opens a stack of screens you can push by tapping and dismiss by swiping from
the leading edge, pressing Escape or tapping the back button.

Settings are read from --config, or from the file named by CARDSTACK_CONFIG.
`),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, opts)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to a TOML configuration file")
	flags.StringVarP(&opts.backend, "backend", "b", "window", "Compositor to draw with (window, term)")
	flags.StringVar(&opts.touchDevice, "touch-device", "", "evdev touchscreen to read gestures from, e.g. /dev/input/event1")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logPath, "log-path", "", "Write logs to this file as well")
	flags.StringVar(&opts.fontPath, "font", "", "TTF font for the window compositor")
	return cmd
}

func run(ctx context.Context, opts options) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	logPath := cfg.LogPath
	if opts.logPath != "" {
		logPath = opts.logPath
	}
	cardstack.Init(cardstack.Options{LogPath: logPath, LogLevel: level})
	defer cardstack.Close()
	cardstack.SetTheme(cfg.Theme())

	surface, err := openSurface(opts, cfg)
	if err != nil {
		return err
	}
	defer surface.Close()

	app := newApp(cfg, surface)
	if opts.touchDevice != "" {
		reader, err := input.OpenTouch(opts.touchDevice, surface.Layout())
		if err != nil {
			return err
		}
		defer reader.Close()

		touches := make(chan input.Pointer, 64)
		go func() {
			if err := reader.Run(ctx, touches); err != nil && !cardstack.IsCancelled(err) {
				cardstack.GetLogger().Error("Touch reader stopped", "error", err)
			}
		}()
		app.touches = touches
	}

	cardstack.GetLogger().Info("Starting demo", "backend", opts.backend, "platform", cfg.Platform())
	if err := app.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.FromEnv()
	}
	return config.Load(path)
}

func openSurface(opts options, cfg *config.Config) (compositor.Surface, error) {
	centerTitle := cfg.Platform() == constants.PlatformIOS
	switch opts.backend {
	case "window":
		layout := cfg.Layout()
		return window.New(window.Options{
			Title:       "cardstack",
			Width:       int32(layout.Width),
			Height:      int32(layout.Height),
			FontPath:    opts.fontPath,
			CenterTitle: centerTitle,
			Flags:       window.Flags{Resizable: true},
		})
	case "term":
		return term.New(centerTitle)
	default:
		return nil, fmt.Errorf("unknown backend %q (want window or term)", opts.backend)
	}
}
