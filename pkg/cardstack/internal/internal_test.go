package internal

import (
	"image/color"
	"log/slog"
	"testing"
)

func TestRasterizeIcon(t *testing.T) {
	tint := HexToColor(0x007AFF)
	for _, name := range []string{IconBack, IconClose} {
		img, err := RasterizeIcon(name, 24, tint)
		if err != nil {
			t.Fatalf("RasterizeIcon(%s): %v", name, err)
		}
		if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 24 {
			t.Errorf("%s bounds = %v", name, b)
		}

		painted := 0
		for i := 3; i < len(img.Pix); i += 4 {
			if img.Pix[i] > 0 {
				painted++
			}
		}
		if painted == 0 {
			t.Errorf("%s has no painted pixels", name)
		}
	}
}

func TestRasterizeIconErrors(t *testing.T) {
	if _, err := RasterizeIcon("missing", 24, color.RGBA{A: 0xFF}); err == nil {
		t.Error("unknown icon should fail")
	}
	if _, err := RasterizeIcon(IconBack, 0, color.RGBA{A: 0xFF}); err == nil {
		t.Error("zero size should fail")
	}
}

func TestBlend(t *testing.T) {
	black, white := HexToColor(0x000000), HexToColor(0xFFFFFF)
	tests := []struct {
		t    float64
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{0.5, 128},
		{1, 255},
		{2, 255},
	}
	for _, tt := range tests {
		if got := Blend(black, white, tt.t); got.R != tt.want || got.A != 0xFF {
			t.Errorf("Blend(%v) = %v, want R=%d", tt.t, got, tt.want)
		}
	}
}

func TestThemeByName(t *testing.T) {
	if _, ok := ThemeByName("dark"); !ok {
		t.Error("dark theme missing")
	}
	if theme, ok := ThemeByName("neon"); ok || theme != LightTheme() {
		t.Error("unknown theme should fall back to light")
	}

	SetTheme(DarkTheme())
	defer SetTheme(LightTheme())
	if GetTheme() != DarkTheme() {
		t.Error("SetTheme did not take effect")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"loud":    slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
