// Package config loads stack settings and per-route default options from TOML.
//
//	[stack]
//	mode = "card"
//	header_mode = "float"
//	platform = "ios"
//	width = 1024.0
//	height = 768.0
//	language = "de"
//	theme = "dark"
//
//	[stack.insets]
//	top = 20.0
//
//	[defaults]
//	gesture_enabled = true
//
//	[[routes]]
//	name = "settings"
//	title = "Settings"
//	transition = "modal-slide-from-bottom-ios"
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/BrandonKowalski/cardstack/pkg/cardstack/constants"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/internal"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/locale"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/stack"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/transition"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Default window size when neither the file nor the environment sets one.
const (
	DefaultWidth  = 1024
	DefaultHeight = 768
)

// Config is the decoded configuration file.
type Config struct {
	Stack    StackConfig   `toml:"stack"`
	Defaults RouteOptions  `toml:"defaults"`
	Routes   []RouteConfig `toml:"routes"`
	LogLevel string        `toml:"log_level"`
	LogPath  string        `toml:"log_path"`
}

// StackConfig holds stack-wide settings.
type StackConfig struct {
	Mode           string       `toml:"mode"`
	HeaderMode     string       `toml:"header_mode"`
	Platform       string       `toml:"platform"`
	ScreensEnabled *bool        `toml:"screens_enabled"`
	ActiveLimit    int          `toml:"active_limit"`
	Width          float64      `toml:"width"`
	Height         float64      `toml:"height"`
	Language       string       `toml:"language"`
	Theme          string       `toml:"theme"`
	Insets         InsetsConfig `toml:"insets"`
}

// InsetsConfig are the device safe-area insets.
type InsetsConfig struct {
	Top    float64 `toml:"top"`
	Right  float64 `toml:"right"`
	Bottom float64 `toml:"bottom"`
	Left   float64 `toml:"left"`
}

// RouteOptions are the configurable subset of stack.Options. Unset fields
// keep the stack defaults.
type RouteOptions struct {
	Title                   string   `toml:"title"`
	HeaderBackTitle         *string  `toml:"header_back_title"`
	Transition              string   `toml:"transition"`
	GestureDirection        string   `toml:"gesture_direction"`
	AnimationEnabled        *bool    `toml:"animation_enabled"`
	AnimationTypeForReplace string   `toml:"animation_type_for_replace"`
	GestureEnabled          *bool    `toml:"gesture_enabled"`
	GestureVelocityImpact   *float64 `toml:"gesture_velocity_impact"`
	HeaderShown             *bool    `toml:"header_shown"`
	HeaderTransparent       *bool    `toml:"header_transparent"`
	HeaderHeight            *float64 `toml:"header_height"`
	CardOverlayEnabled      *bool    `toml:"card_overlay_enabled"`
	CardShadowEnabled       *bool    `toml:"card_shadow_enabled"`
}

// RouteConfig overrides the defaults for routes with a given name.
type RouteConfig struct {
	Name string `toml:"name"`
	RouteOptions
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Stack: StackConfig{
			Mode:       string(constants.ModeCard),
			HeaderMode: string(constants.HeaderModeFloat),
			Platform:   string(constants.PlatformIOS),
			Width:      DefaultWidth,
			Height:     DefaultHeight,
		},
	}
}

// Load reads and validates the file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, errors.Unwrap(err))
	}
	return c, nil
}

// Decode reads and validates a configuration. Missing values take the
// defaults of Default. Unknown keys are logged and ignored.
func Decode(r io.Reader) (*Config, error) {
	c := Default()
	md, err := toml.NewDecoder(r).Decode(c)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		internal.GetInternalLogger().Warn("Ignoring unknown configuration keys", "keys", strings.Join(keys, ", "))
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

// FromEnv loads the file named by CARDSTACK_CONFIG, or the defaults when it
// is unset, then applies WINDOW_WIDTH and WINDOW_HEIGHT.
func FromEnv() (*Config, error) {
	c := Default()
	if path := os.Getenv(constants.ConfigPathEnvVar); path != "" {
		var err error
		if c, err = Load(path); err != nil {
			return nil, err
		}
	}

	for env, dst := range map[string]*float64{
		constants.WindowWidthEnvVar:  &c.Stack.Width,
		constants.WindowHeightEnvVar: &c.Stack.Height,
	} {
		raw := os.Getenv(env)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("config: %s=%q: %w", env, raw, ErrInvalid)
		}
		*dst = v
	}
	if level := os.Getenv(constants.LogLevelEnvVar); level != "" {
		c.LogLevel = level
	}
	return c, nil
}

// Validate checks every enumerated value.
func (c *Config) Validate() error {
	var errs []error

	check := func(field, value string, valid ...string) {
		if value == "" {
			return
		}
		for _, v := range valid {
			if strings.EqualFold(value, v) {
				return
			}
		}
		errs = append(errs, fmt.Errorf("%s %q: %w", field, value, ErrInvalid))
	}

	check("stack.mode", c.Stack.Mode, string(constants.ModeCard), string(constants.ModeModal))
	check("stack.header_mode", c.Stack.HeaderMode,
		string(constants.HeaderModeFloat), string(constants.HeaderModeScreen), string(constants.HeaderModeNone))
	check("stack.platform", c.Stack.Platform,
		string(constants.PlatformIOS), string(constants.PlatformAndroid), string(constants.PlatformDesktop))
	check("stack.theme", c.Stack.Theme, "light", "dark")
	if c.Stack.ActiveLimit < 0 {
		errs = append(errs, fmt.Errorf("stack.active_limit %d: %w", c.Stack.ActiveLimit, ErrInvalid))
	}
	if c.Stack.Width < 0 || c.Stack.Height < 0 {
		errs = append(errs, fmt.Errorf("stack size %vx%v: %w", c.Stack.Width, c.Stack.Height, ErrInvalid))
	}

	validateOptions := func(prefix string, o RouteOptions) {
		if o.Transition != "" {
			if _, ok := transition.Lookup(o.Transition); !ok {
				errs = append(errs, fmt.Errorf("%s.transition %q: %w", prefix, o.Transition, ErrInvalid))
			}
		}
		if o.GestureDirection != "" {
			if _, ok := constants.ParseGestureDirection(o.GestureDirection); !ok {
				errs = append(errs, fmt.Errorf("%s.gesture_direction %q: %w", prefix, o.GestureDirection, ErrInvalid))
			}
		}
		check(prefix+".animation_type_for_replace", o.AnimationTypeForReplace,
			string(stack.ReplaceAnimationPush), string(stack.ReplaceAnimationPop))
	}

	validateOptions("defaults", c.Defaults)
	for i, r := range c.Routes {
		if r.Name == "" {
			errs = append(errs, fmt.Errorf("routes[%d]: missing name: %w", i, ErrInvalid))
			continue
		}
		validateOptions(fmt.Sprintf("routes[%s]", r.Name), r.RouteOptions)
	}

	return errors.Join(errs...)
}

// Platform returns the configured platform.
func (c *Config) Platform() constants.Platform {
	return constants.ParsePlatform(c.Stack.Platform)
}

// Layout returns the configured window size.
func (c *Config) Layout() stack.Layout {
	return stack.Layout{Width: c.Stack.Width, Height: c.Stack.Height}
}

// Props returns stack props carrying the stack-wide settings. The caller
// fills in routes, descriptors and callbacks.
func (c *Config) Props() stack.Props {
	screensEnabled := true
	if c.Stack.ScreensEnabled != nil {
		screensEnabled = *c.Stack.ScreensEnabled
	}
	return stack.Props{
		Platform:       c.Platform(),
		Mode:           constants.ParseMode(c.Stack.Mode),
		HeaderMode:     constants.ParseHeaderMode(c.Stack.HeaderMode),
		ScreensEnabled: screensEnabled,
		ActiveLimit:    c.Stack.ActiveLimit,
		Insets: stack.Insets{
			Top:    c.Stack.Insets.Top,
			Right:  c.Stack.Insets.Right,
			Bottom: c.Stack.Insets.Bottom,
			Left:   c.Stack.Insets.Left,
		},
		InitialLayout: c.Layout(),
		Localizer:     c.Localizer(),
	}
}

// Localizer returns the localizer for the configured language, falling back
// to LANG.
func (c *Config) Localizer() *locale.Localizer {
	if c.Stack.Language != "" {
		return locale.New(c.Stack.Language)
	}
	return locale.FromEnv()
}

// Theme returns the configured color theme.
func (c *Config) Theme() internal.Theme {
	theme, _ := internal.ThemeByName(strings.ToLower(c.Stack.Theme))
	return theme
}

// OptionsFor returns the options of routes named name: the defaults
// overlaid with every matching [[routes]] entry in file order.
func (c *Config) OptionsFor(name string) stack.Options {
	var o stack.Options
	c.Defaults.apply(&o)
	for _, r := range c.Routes {
		if r.Name == name {
			r.RouteOptions.apply(&o)
		}
	}
	return o
}

func (r RouteOptions) apply(o *stack.Options) {
	if r.Title != "" {
		o.Title = r.Title
	}
	if r.HeaderBackTitle != nil {
		o.HeaderBackTitle = stack.String(*r.HeaderBackTitle)
	}
	if preset, ok := transition.Lookup(r.Transition); ok {
		specs := preset.TransitionSpec
		o.GestureDirection = stack.Direction(preset.GestureDirection)
		o.TransitionSpec = &specs
		o.CardStyleInterpolator = preset.CardStyleInterpolator
		o.HeaderStyleInterpolator = preset.HeaderStyleInterpolator
	}
	if d, ok := constants.ParseGestureDirection(r.GestureDirection); ok && r.GestureDirection != "" {
		o.GestureDirection = stack.Direction(d)
	}
	if r.AnimationEnabled != nil {
		o.AnimationEnabled = stack.Bool(*r.AnimationEnabled)
	}
	if r.AnimationTypeForReplace != "" {
		o.AnimationTypeForReplace = stack.ReplaceAnimation(strings.ToLower(r.AnimationTypeForReplace))
	}
	if r.GestureEnabled != nil {
		o.GestureEnabled = stack.Bool(*r.GestureEnabled)
	}
	if r.GestureVelocityImpact != nil {
		o.GestureVelocityImpact = stack.Float(*r.GestureVelocityImpact)
	}
	if r.HeaderShown != nil {
		o.HeaderShown = stack.Bool(*r.HeaderShown)
	}
	if r.HeaderTransparent != nil {
		o.HeaderTransparent = *r.HeaderTransparent
	}
	if r.HeaderHeight != nil {
		o.HeaderStyle = &stack.HeaderStyle{Height: stack.Float(*r.HeaderHeight)}
	}
	if r.CardOverlayEnabled != nil {
		o.CardOverlayEnabled = stack.Bool(*r.CardOverlayEnabled)
	}
	if r.CardShadowEnabled != nil {
		o.CardShadowEnabled = stack.Bool(*r.CardShadowEnabled)
	}
}
