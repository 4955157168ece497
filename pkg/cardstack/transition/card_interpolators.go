package transition

import "github.com/BrandonKowalski/cardstack/pkg/cardstack/animated"

// ForHorizontalIOS slides the card in from the right edge while the screen
// beneath drifts left by 30% of the width.
func ForHorizontalIOS(p CardInterpolationProps) CardStyle {
	s := NewCardStyle()
	width := p.Screen.Width

	focused := animated.Clamp01(p.Current.Get()) * width
	unfocused := 0.0
	if p.Next != nil {
		unfocused = presence(p.Next) * -0.3 * width
	}

	shown := presence(p.Current)
	s.Card.TranslateX = (focused + unfocused) * p.Inverted
	s.Overlay.Opacity = shown * 0.07
	s.Shadow.Opacity = shown * 0.3
	return s
}

// ForVerticalIOS slides the card up from the bottom edge.
func ForVerticalIOS(p CardInterpolationProps) CardStyle {
	s := NewCardStyle()
	s.Card.TranslateY = animated.Clamp01(p.Current.Get()) * p.Screen.Height * p.Inverted
	return s
}

// ForModalPresentationIOS is the sheet-style modal: the new card stops just
// below the top and the card beneath shrinks and rounds its corners.
func ForModalPresentationIOS(p CardInterpolationProps) CardStyle {
	s := NewCardStyle()
	width, height := p.Screen.Width, p.Screen.Height
	landscape := p.Screen.IsLandscape()

	progress := presence(p.Current) + presence(p.Next)

	topOffset := 10.0
	if landscape {
		topOffset = 0
	}
	aspectRatio := height / width

	restY := topOffset
	finalY := -topOffset * aspectRatio
	if p.Index == 0 {
		restY = 0
		finalY = p.Insets.Top - topOffset*aspectRatio
	}
	s.Card.TranslateY = lerp(progress, []float64{0, 1, 2}, []float64{height, restY, finalY}) * p.Inverted
	s.Overlay.Opacity = lerp(progress, []float64{0, 1, 1.0001, 2}, []float64{0, 0.3, 1, 1})

	if !landscape {
		s.Card.Scale = lerp(progress, []float64{0, 1, 2}, []float64{1, 1, 1 - topOffset*2/width})
		if p.Index == 0 {
			s.Card.BorderRadius = lerp(progress, []float64{0, 1, 1.0001, 2}, []float64{0, 0, 0, 10})
		} else {
			s.Card.BorderRadius = 10
		}
	}
	return s
}

// ForFadeFromBottomAndroid fades the card in while it rises 8% of the height.
func ForFadeFromBottomAndroid(p CardInterpolationProps) CardStyle {
	s := NewCardStyle()
	shown := presence(p.Current)

	s.Card.TranslateY = lerp(shown, []float64{0, 1}, []float64{p.Screen.Height * 0.08, 0})
	s.Card.Opacity = lerp(shown, []float64{0, 0.5, 0.9, 1}, []float64{0, 0.25, 0.7, 1})
	return s
}

// ForScaleFromCenterAndroid scales the card up from the center while the
// screen beneath scales past the viewport and fades out.
func ForScaleFromCenterAndroid(p CardInterpolationProps) CardStyle {
	s := NewCardStyle()
	progress := presence(p.Current) + presence(p.Next)

	s.Container.Opacity = lerp(progress,
		[]float64{0, 0.75, 0.875, 1, 1.0825, 1.2075, 2},
		[]float64{0, 0, 1, 1, 1, 1, 0})

	if p.Closing {
		s.Container.Scale = lerp(presence(p.Current), []float64{0, 1}, []float64{0.9, 1})
	} else {
		s.Container.Scale = lerp(progress, []float64{0, 1, 2}, []float64{0.85, 1, 1.1})
	}
	return s
}

// ForNoAnimation keeps the card at rest regardless of progress.
func ForNoAnimation(CardInterpolationProps) CardStyle {
	return NewCardStyle()
}
