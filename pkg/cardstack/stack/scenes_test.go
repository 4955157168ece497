package stack

import (
	"math"
	"reflect"
	"testing"

	"github.com/BrandonKowalski/cardstack/pkg/cardstack/animated"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/constants"
)

var portrait = Layout{Width: 400, Height: 800}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func routesOf(keys ...string) []*Route {
	routes := make([]*Route, len(keys))
	for i, k := range keys {
		routes[i] = &Route{Key: k, Name: k}
	}
	return routes
}

func descriptorsOf(routes []*Route) map[string]*Descriptor {
	descriptors := make(map[string]*Descriptor, len(routes))
	for _, r := range routes {
		descriptors[r.Key] = &Descriptor{}
	}
	return descriptors
}

func TestDistanceForDirection(t *testing.T) {
	tests := []struct {
		direction constants.GestureDirection
		want      float64
	}{
		{constants.GestureHorizontal, 400},
		{constants.GestureHorizontalInverted, -400},
		{constants.GestureVertical, 800},
		{constants.GestureVerticalInverted, -800},
	}
	for _, tt := range tests {
		if got := DistanceForDirection(portrait, tt.direction); got != tt.want {
			t.Errorf("DistanceForDirection(%s) = %v, want %v", tt.direction, got, tt.want)
		}
	}
}

func TestProgressFromGesture(t *testing.T) {
	gesture := animated.NewValue(0)
	horizontal := ProgressFromGesture(constants.PlatformIOS, constants.ModeCard, gesture, portrait, nil)

	for _, tc := range []struct{ pixels, progress float64 }{{0, 0}, {100, 0.25}, {400, 1}, {600, 1.5}} {
		gesture.SetValue(tc.pixels)
		if got := horizontal.Get(); !near(got, tc.progress) {
			t.Errorf("horizontal progress at %v = %v, want %v", tc.pixels, got, tc.progress)
		}
	}

	inverted := &Descriptor{Options: Options{GestureDirection: Direction(constants.GestureVerticalInverted)}}
	up := ProgressFromGesture(constants.PlatformIOS, constants.ModeCard, gesture, portrait, inverted)
	for _, tc := range []struct{ pixels, progress float64 }{{0, 0}, {-200, 0.25}, {-800, 1}} {
		gesture.SetValue(tc.pixels)
		if got := up.Get(); !near(got, tc.progress) {
			t.Errorf("inverted progress at %v = %v, want %v", tc.pixels, got, tc.progress)
		}
	}
}

func TestProgressFromGestureZeroLayout(t *testing.T) {
	gesture := animated.NewValue(1)
	p := ProgressFromGesture(constants.PlatformIOS, constants.ModeCard, gesture, Layout{}, nil)
	if got := p.Get(); got != 1 {
		t.Errorf("progress on an unmeasured layout = %v, want 1", got)
	}
}

func TestModalDefaultsToVerticalDistance(t *testing.T) {
	routes := routesOf("a")
	st := DeriveScenes(SceneInput{
		Platform:         constants.PlatformIOS,
		Mode:             constants.ModeModal,
		Routes:           routes,
		Descriptors:      descriptorsOf(routes),
		OpeningRouteKeys: []string{"a"},
		Layout:           portrait,
	}, SceneState{})

	if got := st.Gestures["a"].Get(); got != 800 {
		t.Errorf("modal opening tracker = %v, want 800", got)
	}
}

func TestDeriveScenesTrackers(t *testing.T) {
	routes := routesOf("a", "b", "c")
	descriptors := descriptorsOf(routes)
	descriptors["c"].Options.AnimationEnabled = Bool(false)

	in := SceneInput{
		Platform:         constants.PlatformIOS,
		Mode:             constants.ModeCard,
		Routes:           routes,
		Descriptors:      descriptors,
		OpeningRouteKeys: []string{"b", "c"},
		Layout:           portrait,
	}
	st := DeriveScenes(in, SceneState{})

	for key, want := range map[string]float64{"a": 0, "b": 400, "c": 0} {
		if got := st.Gestures[key].Get(); got != want {
			t.Errorf("initial tracker of %s = %v, want %v", key, got, want)
		}
	}

	st.Gestures["b"].SetValue(123)
	again := DeriveScenes(in, st)
	if again.Gestures["b"] != st.Gestures["b"] {
		t.Error("tracker of an existing route was replaced")
	}
	if got := again.Gestures["b"].Get(); got != 123 {
		t.Errorf("reused tracker = %v, want 123", got)
	}

	in.Routes = routes[:2]
	trimmed := DeriveScenes(in, again)
	if _, ok := trimmed.Gestures["c"]; ok {
		t.Error("tracker of a removed route was kept")
	}
}

func TestDeriveScenesMemoizes(t *testing.T) {
	routes := routesOf("a", "b", "c")
	descriptors := descriptorsOf(routes)
	in := SceneInput{
		Platform:    constants.PlatformIOS,
		Mode:        constants.ModeCard,
		Routes:      routes,
		Descriptors: descriptors,
		Layout:      portrait,
	}

	first := DeriveScenes(in, SceneState{})
	second := DeriveScenes(in, first)
	for i := range routes {
		if first.Scenes[i] != second.Scenes[i] {
			t.Errorf("scene %d was rebuilt from identical inputs", i)
		}
	}

	changed := make(map[string]*Descriptor, len(descriptors))
	for k, v := range descriptors {
		changed[k] = v
	}
	changed["c"] = &Descriptor{Options: Options{Title: "C"}}
	in.Descriptors = changed
	third := DeriveScenes(in, second)

	if third.Scenes[0] != second.Scenes[0] {
		t.Error("scene a was rebuilt although none of its inputs changed")
	}
	if third.Scenes[1] == second.Scenes[1] {
		t.Error("scene b was reused although its next descriptor changed")
	}
	if third.Scenes[2] == second.Scenes[2] {
		t.Error("scene c was reused although its descriptor changed")
	}

	in.Layout = Layout{Width: 800, Height: 400}
	fourth := DeriveScenes(in, third)
	for i := range routes {
		if fourth.Scenes[i] == third.Scenes[i] {
			t.Errorf("scene %d was reused across a layout change", i)
		}
	}
}

func TestDeriveScenesNeighbors(t *testing.T) {
	routes := routesOf("a", "b")
	st := DeriveScenes(SceneInput{
		Platform:    constants.PlatformIOS,
		Mode:        constants.ModeCard,
		Routes:      routes,
		Descriptors: descriptorsOf(routes),
		Layout:      portrait,
	}, SceneState{})

	if st.Scenes[0].Progress.Previous != nil || st.Scenes[0].Progress.Next == nil {
		t.Error("bottom scene should have a next but no previous progress")
	}
	if st.Scenes[1].Progress.Next != nil || st.Scenes[1].Progress.Previous == nil {
		t.Error("top scene should have a previous but no next progress")
	}

	st.Gestures["b"].SetValue(200)
	if got := st.Scenes[0].Progress.Next.Get(); !near(got, 0.5) {
		t.Errorf("next progress of a = %v, want 0.5", got)
	}
}

func TestDeriveScenesDescriptorFallback(t *testing.T) {
	routes := routesOf("a", "b")
	descriptors := descriptorsOf(routes)
	in := SceneInput{
		Platform:    constants.PlatformIOS,
		Mode:        constants.ModeCard,
		Routes:      routes,
		Descriptors: descriptors,
		Layout:      portrait,
	}
	first := DeriveScenes(in, SceneState{})

	in.Descriptors = map[string]*Descriptor{"a": descriptors["a"]}
	second := DeriveScenes(in, first)
	if second.Scenes[1].Descriptor != descriptors["b"] {
		t.Error("a route that lost its descriptor should keep the previous one")
	}
	if second.Descriptors["b"] != descriptors["b"] {
		t.Error("derived descriptors should remember the previous descriptor")
	}

	in.Routes = append(routes, &Route{Key: "c"})
	third := DeriveScenes(in, second)
	if third.Scenes[2].Descriptor != FallbackDescriptor() {
		t.Error("a route without any descriptor should use the fallback")
	}
	if !reflect.DeepEqual(*FallbackDescriptor(), Descriptor{}) {
		t.Error("fallback descriptor was modified")
	}
}

func TestRecomputeHeaderHeights(t *testing.T) {
	routes := routesOf("a", "b", "c", "d")
	descriptors := descriptorsOf(routes)
	descriptors["a"].Options.HeaderStyle = &HeaderStyle{Height: Float(90)}
	descriptors["d"].Options.HeaderStatusBarHeight = Float(0)

	in := HeaderHeightInput{
		Platform:    constants.PlatformIOS,
		Routes:      routes,
		Insets:      Insets{Top: 20},
		Descriptors: descriptors,
		Layout:      portrait,
	}
	heights := RecomputeHeaderHeights(in, map[string]float64{"a": 10, "b": 70, "gone": 1})

	want := map[string]float64{"a": 90, "b": 70, "c": 64, "d": 44}
	if !reflect.DeepEqual(heights, want) {
		t.Errorf("heights = %v, want %v", heights, want)
	}

	in.AncestorHeaderShown = true
	in.Layout = Layout{Width: 800, Height: 400}
	if got := RecomputeHeaderHeights(in, nil)["c"]; got != 32 {
		t.Errorf("landscape nested iOS header = %v, want 32", got)
	}

	in.Platform = constants.PlatformAndroid
	if got := RecomputeHeaderHeights(in, nil)["c"]; got != 56 {
		t.Errorf("android header = %v, want 56", got)
	}
	in.Platform = constants.PlatformDesktop
	if got := RecomputeHeaderHeights(in, nil)["c"]; got != 64 {
		t.Errorf("desktop header = %v, want 64", got)
	}
}

func TestActivity(t *testing.T) {
	routes := routesOf("a", "b", "c", "d")
	st := DeriveScenes(SceneInput{
		Platform:    constants.PlatformIOS,
		Mode:        constants.ModeCard,
		Routes:      routes,
		Descriptors: descriptorsOf(routes),
		Layout:      portrait,
	}, SceneState{})
	scenes := st.Scenes

	tests := []struct {
		limit  int
		active []bool
	}{
		{1, []bool{false, false, false, true}},
		{2, []bool{false, false, true, true}},
	}
	for _, tt := range tests {
		for i, want := range tt.active {
			if got := ScreenActive(scenes, i, tt.limit, true); got != want {
				t.Errorf("limit %d: screen %s active = %t, want %t", tt.limit, routes[i].Key, got, want)
			}
		}
	}

	t.Run("covering screen in transition", func(t *testing.T) {
		st.Gestures["d"].SetValue(200)
		defer st.Gestures["d"].SetValue(0)
		if !ScreenActive(scenes, 2, 1, true) {
			t.Error("c should be active while d is half way out")
		}
		if !ScreenActive(scenes, 1, 2, true) {
			t.Error("b should be active with limit 2 while d is half way out")
		}
		if ScreenActive(scenes, 1, 1, true) {
			t.Error("b is still covered by a focused c")
		}
	})

	t.Run("screens disabled", func(t *testing.T) {
		if !ScreenActive(scenes, 0, 1, false) {
			t.Error("every screen is active when screens are disabled")
		}
	})

	if got := ActiveLimitFor(constants.ModeModal, 0); got != constants.DefaultModalActiveLimit {
		t.Errorf("modal active limit = %d", got)
	}
	if got := ActiveLimitFor(constants.ModeCard, 3); got != 3 {
		t.Errorf("explicit active limit = %d, want 3", got)
	}
}

func TestIsTransitioning(t *testing.T) {
	for _, tc := range []struct {
		progress float64
		want     bool
	}{{0, false}, {0.5, true}, {0.995, true}, {1, false}, {1.5, false}} {
		if got := IsTransitioning(animated.Constant(tc.progress)); got != tc.want {
			t.Errorf("IsTransitioning(%v) = %v, want %v", tc.progress, got, tc.want)
		}
	}
	if IsTransitioning(nil) {
		t.Error("nil progress is not transitioning")
	}
}

func TestIsFloatHeaderAbsolute(t *testing.T) {
	scene := func(o Options) *Scene { return &Scene{Descriptor: &Descriptor{Options: o}} }
	plain := scene(Options{})
	transparent := scene(Options{HeaderTransparent: true})
	hidden := scene(Options{HeaderShown: Bool(false)})
	shown := scene(Options{HeaderShown: Bool(true)})

	tests := []struct {
		name     string
		scenes   []*Scene
		ancestor bool
		want     bool
	}{
		{"plain", []*Scene{plain, plain}, false, false},
		{"transparent top", []*Scene{plain, transparent}, false, true},
		{"hidden below top", []*Scene{hidden, plain}, false, true},
		{"hidden out of range", []*Scene{hidden, plain, plain}, false, false},
		{"empty", nil, false, false},
		{"ancestor header hides unset", []*Scene{plain, plain}, true, true},
		{"explicit header under ancestor", []*Scene{shown, shown}, true, false},
	}
	for _, tt := range tests {
		if got := IsFloatHeaderAbsolute(tt.scenes, tt.ancestor); got != tt.want {
			t.Errorf("%s: IsFloatHeaderAbsolute = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestInsetsOverride(t *testing.T) {
	base := Insets{Top: 20, Bottom: 34}
	var none *InsetsOverride
	if got := none.Resolve(base); got != base {
		t.Errorf("nil override = %+v, want %+v", got, base)
	}
}
