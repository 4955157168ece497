package router

import "github.com/BrandonKowalski/cardstack/pkg/cardstack/stack"

// overlay returns base with every field that is set in over replaced.
func overlay(base, over stack.Options) stack.Options {
	if over.Title != "" {
		base.Title = over.Title
	}
	if over.HeaderBackTitle != nil {
		base.HeaderBackTitle = over.HeaderBackTitle
	}
	if over.HeaderStyle != nil {
		base.HeaderStyle = over.HeaderStyle
	}
	if over.SafeAreaInsets != nil {
		base.SafeAreaInsets = over.SafeAreaInsets
	}
	if over.HeaderStatusBarHeight != nil {
		base.HeaderStatusBarHeight = over.HeaderStatusBarHeight
	}
	if over.GestureDirection != nil {
		base.GestureDirection = over.GestureDirection
	}
	if over.TransitionSpec != nil {
		base.TransitionSpec = over.TransitionSpec
	}
	if over.CardStyleInterpolator != nil {
		base.CardStyleInterpolator = over.CardStyleInterpolator
	}
	if over.HeaderStyleInterpolator != nil {
		base.HeaderStyleInterpolator = over.HeaderStyleInterpolator
	}
	if over.AnimationEnabled != nil {
		base.AnimationEnabled = over.AnimationEnabled
	}
	if over.AnimationTypeForReplace != "" {
		base.AnimationTypeForReplace = over.AnimationTypeForReplace
	}
	if over.GestureEnabled != nil {
		base.GestureEnabled = over.GestureEnabled
	}
	if over.HeaderShown != nil {
		base.HeaderShown = over.HeaderShown
	}
	if over.HeaderTransparent {
		base.HeaderTransparent = true
	}
	if over.CardShadowEnabled != nil {
		base.CardShadowEnabled = over.CardShadowEnabled
	}
	if over.CardOverlayEnabled != nil {
		base.CardOverlayEnabled = over.CardOverlayEnabled
	}
	if over.CardOverlay != nil {
		base.CardOverlay = over.CardOverlay
	}
	if over.CardStyle != nil {
		base.CardStyle = over.CardStyle
	}
	if over.GestureResponseDistance != nil {
		base.GestureResponseDistance = over.GestureResponseDistance
	}
	if over.GestureVelocityImpact != nil {
		base.GestureVelocityImpact = over.GestureVelocityImpact
	}
	return base
}
