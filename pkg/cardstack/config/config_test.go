package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BrandonKowalski/cardstack/pkg/cardstack/constants"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/internal"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/stack"
)

const sample = `
log_level = "debug"

[stack]
mode = "modal"
header_mode = "screen"
platform = "android"
screens_enabled = false
active_limit = 3
width = 640.0
height = 480.0

[stack.insets]
top = 24.0
bottom = 16.0

[defaults]
gesture_enabled = false
header_height = 60.0

[[routes]]
name = "settings"
title = "Settings"
transition = "modal-slide-from-bottom-ios"
header_back_title = "Home"

[[routes]]
name = "settings"
gesture_direction = "horizontal-inverted"
animation_type_for_replace = "pop"
`

func TestDecode(t *testing.T) {
	c, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	p := c.Props()
	if p.Mode != constants.ModeModal || p.HeaderMode != constants.HeaderModeScreen || p.Platform != constants.PlatformAndroid {
		t.Errorf("stack settings = %s/%s/%s", p.Mode, p.HeaderMode, p.Platform)
	}
	if p.ScreensEnabled || p.ActiveLimit != 3 {
		t.Errorf("screens = %v limit = %d", p.ScreensEnabled, p.ActiveLimit)
	}
	if p.InitialLayout != (stack.Layout{Width: 640, Height: 480}) {
		t.Errorf("layout = %+v", p.InitialLayout)
	}
	if p.Insets != (stack.Insets{Top: 24, Bottom: 16}) {
		t.Errorf("insets = %+v", p.Insets)
	}
	if c.LogLevel != "debug" {
		t.Errorf("log level = %q", c.LogLevel)
	}
}

func TestOptionsFor(t *testing.T) {
	c, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	home := c.OptionsFor("home")
	if home.GestureEnabled == nil || *home.GestureEnabled {
		t.Error("defaults should disable gestures")
	}
	if home.HeaderStyle == nil || *home.HeaderStyle.Height != 60 {
		t.Error("defaults should set the header height")
	}
	if home.Title != "" || home.TransitionSpec != nil {
		t.Error("route overrides leaked into another route")
	}

	settings := c.OptionsFor("settings")
	if settings.Title != "Settings" || *settings.HeaderBackTitle != "Home" {
		t.Errorf("settings title = %q back = %v", settings.Title, settings.HeaderBackTitle)
	}
	if settings.TransitionSpec == nil || settings.CardStyleInterpolator == nil {
		t.Error("transition preset not applied")
	}
	if *settings.GestureDirection != constants.GestureHorizontalInverted {
		t.Errorf("later entries should win: direction = %s", *settings.GestureDirection)
	}
	if settings.AnimationTypeForReplace != stack.ReplaceAnimationPop {
		t.Errorf("replace animation = %q", settings.AnimationTypeForReplace)
	}
}

func TestDecodeDefaults(t *testing.T) {
	c, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	p := c.Props()
	if p.Mode != constants.ModeCard || p.HeaderMode != constants.HeaderModeFloat || !p.ScreensEnabled {
		t.Errorf("defaults = %+v", p)
	}
	if p.InitialLayout != (stack.Layout{Width: DefaultWidth, Height: DefaultHeight}) {
		t.Errorf("default layout = %+v", p.InitialLayout)
	}
}

func TestThemeAndLanguage(t *testing.T) {
	c, err := Decode(strings.NewReader("[stack]\nlanguage = \"de-DE\"\ntheme = \"Dark\""))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := c.Props().Localizer.BackTitle(); got != "Zurück" {
		t.Errorf("back title = %q, want Zurück", got)
	}
	if c.Theme() != internal.DarkTheme() {
		t.Error("dark theme not selected")
	}
	if Default().Theme() != internal.LightTheme() {
		t.Error("default theme should be light")
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := map[string]string{
		"mode":       "[stack]\nmode = \"sideways\"",
		"header":     "[stack]\nheader_mode = \"floating\"",
		"platform":   "[stack]\nplatform = \"palm\"",
		"limit":      "[stack]\nactive_limit = -1",
		"theme":      "[stack]\ntheme = \"neon\"",
		"transition": "[defaults]\ntransition = \"wobble\"",
		"direction":  "[[routes]]\nname = \"a\"\ngesture_direction = \"diagonal\"",
		"replace":    "[[routes]]\nname = \"a\"\nanimation_type_for_replace = \"fade\"",
		"name":       "[[routes]]\ntitle = \"nameless\"",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(doc))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Decode error = %v, want ErrInvalid", err)
			}
		})
	}

	if _, err := Decode(strings.NewReader("[stack\n")); err == nil || errors.Is(err, ErrInvalid) {
		t.Errorf("syntax error = %v, want a parse error", err)
	}
}

func TestLoadAndFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cardstack.toml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}

	t.Setenv(constants.ConfigPathEnvVar, path)
	t.Setenv(constants.WindowWidthEnvVar, "800")
	t.Setenv(constants.LogLevelEnvVar, "warn")

	c, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if c.Layout() != (stack.Layout{Width: 800, Height: 480}) {
		t.Errorf("layout = %+v", c.Layout())
	}
	if c.LogLevel != "warn" {
		t.Errorf("log level = %q, want warn", c.LogLevel)
	}

	t.Setenv(constants.WindowHeightEnvVar, "tall")
	if _, err := FromEnv(); !errors.Is(err, ErrInvalid) {
		t.Errorf("bad height error = %v, want ErrInvalid", err)
	}
}
