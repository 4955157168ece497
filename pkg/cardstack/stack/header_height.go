package stack

import "github.com/BrandonKowalski/cardstack/pkg/cardstack/constants"

// DefaultHeaderHeight is the platform header height plus the status bar.
func DefaultHeaderHeight(platform constants.Platform, layout Layout, statusBarHeight float64) float64 {
	var height float64
	switch platform {
	case constants.PlatformIOS:
		if layout.IsLandscape() {
			height = 32
		} else {
			height = 44
		}
	case constants.PlatformAndroid:
		height = 56
	default:
		height = 64
	}
	return height + statusBarHeight
}

// HeaderHeightInput carries what a header height recomputation reads.
type HeaderHeightInput struct {
	Platform            constants.Platform
	Routes              []*Route
	Insets              Insets
	Descriptors         map[string]*Descriptor
	Layout              Layout
	AncestorHeaderShown bool
}

// RecomputeHeaderHeights returns a fresh route key -> height map.
//
// For each route: an explicit headerStyle height wins, then the height known
// from previous, then the platform default computed from the layout and the
// route's status bar height. Keys of routes no longer present are dropped.
func RecomputeHeaderHeights(in HeaderHeightInput, previous map[string]float64) map[string]float64 {
	heights := make(map[string]float64, len(in.Routes))

	for _, route := range in.Routes {
		options := descriptorFor(in.Descriptors, route.Key).Options

		if options.HeaderStyle != nil && options.HeaderStyle.Height != nil {
			heights[route.Key] = *options.HeaderStyle.Height
			continue
		}
		if h, ok := previous[route.Key]; ok {
			heights[route.Key] = h
			continue
		}
		heights[route.Key] = DefaultHeaderHeight(in.Platform, in.Layout, statusBarHeight(options, in.Insets, in.AncestorHeaderShown))
	}
	return heights
}

// statusBarHeight resolves the space reserved above the header. A nested
// stack whose ancestor already draws a header does not reserve it again.
func statusBarHeight(options Options, insets Insets, ancestorHeaderShown bool) float64 {
	if options.HeaderStatusBarHeight != nil {
		return *options.HeaderStatusBarHeight
	}
	if ancestorHeaderShown {
		return 0
	}
	return options.SafeAreaInsets.Resolve(insets).Top
}

func descriptorFor(descriptors map[string]*Descriptor, key string) *Descriptor {
	if d, ok := descriptors[key]; ok && d != nil {
		return d
	}
	return fallbackDescriptor
}
