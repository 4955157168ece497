package transition

import (
	"math"
	"testing"

	"github.com/BrandonKowalski/cardstack/pkg/cardstack/animated"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/constants"
)

func props(current float64, next *float64) CardInterpolationProps {
	p := CardInterpolationProps{
		Current:  animated.NewValue(current),
		Inverted: 1,
		Screen:   Layout{Width: 400, Height: 800},
	}
	if next != nil {
		p.Next = animated.NewValue(*next)
	}
	return p
}

func ptr(f float64) *float64 { return &f }

func TestForHorizontalIOS(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		next    *float64
		wantX   float64
	}{
		{"focused", 0, nil, 0},
		{"off screen", 1, nil, 400},
		{"halfway in", 0.5, nil, 200},
		{"covered by next", 0, ptr(0), -120},
		{"next halfway", 0, ptr(0.5), -60},
		{"overscroll clamps", 1.5, nil, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForHorizontalIOS(props(tt.current, tt.next)).Card.TranslateX
			if math.Abs(got-tt.wantX) > 1e-9 {
				t.Errorf("TranslateX = %v, want %v", got, tt.wantX)
			}
		})
	}
}

func TestForHorizontalIOSInverted(t *testing.T) {
	p := props(1, nil)
	p.Inverted = -1
	if got := ForHorizontalIOS(p).Card.TranslateX; got != -400 {
		t.Errorf("inverted TranslateX = %v, want -400", got)
	}
}

func TestForVerticalIOS(t *testing.T) {
	if got := ForVerticalIOS(props(0.25, nil)).Card.TranslateY; got != 200 {
		t.Errorf("TranslateY = %v, want 200", got)
	}
}

func TestForFadeFromBottomAndroid(t *testing.T) {
	rest := ForFadeFromBottomAndroid(props(0, nil))
	if rest.Card.Opacity != 1 || rest.Card.TranslateY != 0 {
		t.Errorf("focused card = %+v, want opaque and untranslated", rest.Card)
	}
	gone := ForFadeFromBottomAndroid(props(1, nil))
	if gone.Card.Opacity != 0 {
		t.Errorf("dismissed opacity = %v, want 0", gone.Card.Opacity)
	}
}

func TestForNoAnimationIgnoresProgress(t *testing.T) {
	s := ForNoAnimation(props(0.7, ptr(0.2)))
	if s != NewCardStyle() {
		t.Errorf("ForNoAnimation = %+v, want resting style", s)
	}
}

func TestForFadeHeader(t *testing.T) {
	h := ForFade(HeaderInterpolationProps{Current: animated.NewValue(0), Next: animated.NewValue(1)})
	if h.Title.Opacity != 1 {
		t.Errorf("title opacity at rest = %v, want 1", h.Title.Opacity)
	}
	h = ForFade(HeaderInterpolationProps{Current: animated.NewValue(0), Next: animated.NewValue(0)})
	if h.Title.Opacity != 0 {
		t.Errorf("title opacity when covered = %v, want 0", h.Title.Opacity)
	}
}

func TestPresets(t *testing.T) {
	card, modal := PresetsFor(constants.PlatformIOS)
	if card.GestureDirection != constants.GestureHorizontal {
		t.Errorf("card direction = %s", card.GestureDirection)
	}
	if modal.GestureDirection != constants.GestureVertical {
		t.Errorf("modal direction = %s", modal.GestureDirection)
	}
	if got := ForMode(constants.PlatformAndroid, constants.ModeCard); got.Name != FadeFromBottomAndroid.Name {
		t.Errorf("android default = %s", got.Name)
	}
	if _, ok := Lookup("Modal-Presentation-IOS"); !ok {
		t.Error("Lookup is case sensitive")
	}
}
