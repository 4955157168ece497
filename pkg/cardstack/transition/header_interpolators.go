package transition

// ForFade cross-fades the header contents of adjacent screens.
func ForFade(p HeaderInterpolationProps) HeaderStyle {
	progress := presence(p.Current) + presence(p.Next)
	opacity := lerp(progress, []float64{0, 1, 2}, []float64{0, 1, 0})

	s := NewHeaderStyle()
	s.LeftLabel.Opacity = opacity
	s.LeftButton.Opacity = opacity
	s.RightButton.Opacity = opacity
	s.Title.Opacity = opacity
	s.Background.Opacity = lerp(progress, []float64{0, 1, 1.9, 2}, []float64{0, 1, 1, 0})
	return s
}

// ForSlideLeft slides header contents in from the right and out to the left.
func ForSlideLeft(p HeaderInterpolationProps) HeaderStyle {
	progress := presence(p.Current) + presence(p.Next)
	width := p.Screen.Width
	x := lerp(progress, []float64{0, 1, 2}, []float64{width, 0, -width})

	s := NewHeaderStyle()
	s.LeftLabel.TranslateX = x
	s.LeftButton.TranslateX = x
	s.RightButton.TranslateX = x
	s.Title.TranslateX = x
	s.Background.TranslateX = x
	return s
}

// ForSlideUp slides the whole header up out of view.
func ForSlideUp(p HeaderInterpolationProps) HeaderStyle {
	progress := presence(p.Current) + presence(p.Next)
	height := p.Header.Height
	y := lerp(progress, []float64{0, 1, 2}, []float64{-height, 0, -height})

	s := NewHeaderStyle()
	s.LeftLabel.TranslateY = y
	s.LeftButton.TranslateY = y
	s.RightButton.TranslateY = y
	s.Title.TranslateY = y
	s.Background.TranslateY = y
	return s
}

// ForNoAnimationHeader keeps the header at rest.
func ForNoAnimationHeader(HeaderInterpolationProps) HeaderStyle {
	return NewHeaderStyle()
}
