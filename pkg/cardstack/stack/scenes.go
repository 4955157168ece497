package stack

import (
	"slices"

	"github.com/BrandonKowalski/cardstack/pkg/cardstack/animated"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/constants"
)

// SceneInput is what a scene derivation reads from the current props.
type SceneInput struct {
	Platform         constants.Platform
	Mode             constants.Mode
	Routes           []*Route
	Descriptors      map[string]*Descriptor
	OpeningRouteKeys []string
	Layout           Layout
}

// SceneState is the result of a derivation and the prior state of the next one.
type SceneState struct {
	Scenes      []*Scene
	Gestures    map[string]*animated.Value
	Descriptors map[string]*Descriptor
}

// DeriveScenes builds one Scene per route, index-aligned with in.Routes.
//
// Gesture trackers are reused from prior by route key and created only for
// new keys. A new tracker starts at the full traversal distance when its
// route is opening with animation enabled, so the screen enters from
// off-screen, and at 0 otherwise.
//
// The returned descriptors keep, for routes that lost theirs (typically a
// route animating out), the descriptor they were last rendered with.
//
// A scene whose eight inputs are identical to the prior scene at the same
// index is returned as the prior *Scene itself.
func DeriveScenes(in SceneInput, prior SceneState) SceneState {
	gestures := make(map[string]*animated.Value, len(in.Routes))
	for _, route := range in.Routes {
		if g, ok := prior.Gestures[route.Key]; ok {
			gestures[route.Key] = g
			continue
		}
		descriptor := in.Descriptors[route.Key]
		initial := 0.0
		if slices.Contains(in.OpeningRouteKeys, route.Key) && descriptorOrFallback(descriptor).Options.AnimationEnabledOrDefault() {
			initial = distanceFromOptions(in.Platform, in.Mode, in.Layout, descriptor)
		}
		gestures[route.Key] = animated.NewValue(initial)
	}

	resolve := func(route *Route, oldScene *Scene) *Descriptor {
		if route == nil {
			return nil
		}
		if d := in.Descriptors[route.Key]; d != nil {
			return d
		}
		if d := prior.Descriptors[route.Key]; d != nil {
			return d
		}
		if oldScene != nil && oldScene.Route != nil && oldScene.Route.Key == route.Key && oldScene.Descriptor != nil {
			return oldScene.Descriptor
		}
		return nil
	}

	scenes := make([]*Scene, len(in.Routes))
	descriptors := make(map[string]*Descriptor, len(in.Routes))
	for i, route := range in.Routes {
		var previousRoute, nextRoute *Route
		if i > 0 {
			previousRoute = in.Routes[i-1]
		}
		if i < len(in.Routes)-1 {
			nextRoute = in.Routes[i+1]
		}

		var oldScene *Scene
		if i < len(prior.Scenes) {
			oldScene = prior.Scenes[i]
		}
		if oldScene == nil || oldScene.Route == nil || oldScene.Route.Key != route.Key {
			oldScene = findScene(prior.Scenes, route.Key)
		}

		currentGesture := gestures[route.Key]
		var previousGesture, nextGesture *animated.Value
		if previousRoute != nil {
			previousGesture = gestures[previousRoute.Key]
		}
		if nextRoute != nil {
			nextGesture = gestures[nextRoute.Key]
		}

		descriptor := resolve(route, oldScene)
		if descriptor == nil {
			descriptor = fallbackDescriptor
		} else {
			descriptors[route.Key] = descriptor
		}
		nextDescriptor := resolve(nextRoute, nil)
		previousDescriptor := resolve(previousRoute, nil)

		memo := sceneMemo{
			route,
			in.Layout,
			descriptor,
			nextDescriptor,
			previousDescriptor,
			currentGesture,
			nextGesture,
			previousGesture,
		}

		if i < len(prior.Scenes) && prior.Scenes[i] != nil && prior.Scenes[i].memo == memo {
			scenes[i] = prior.Scenes[i]
			continue
		}

		scene := &Scene{
			Route:      route,
			Descriptor: descriptor,
			Progress: SceneProgress{
				Current: ProgressFromGesture(in.Platform, in.Mode, currentGesture, in.Layout, descriptor),
			},
			memo: memo,
		}
		if nextGesture != nil {
			scene.Progress.Next = ProgressFromGesture(in.Platform, in.Mode, nextGesture, in.Layout, nextDescriptor)
		}
		if previousGesture != nil {
			scene.Progress.Previous = ProgressFromGesture(in.Platform, in.Mode, previousGesture, in.Layout, previousDescriptor)
		}
		scenes[i] = scene
	}

	return SceneState{
		Scenes:      scenes,
		Gestures:    gestures,
		Descriptors: descriptors,
	}
}

func descriptorOrFallback(d *Descriptor) *Descriptor {
	if d == nil {
		return fallbackDescriptor
	}
	return d
}

func findScene(scenes []*Scene, key string) *Scene {
	for _, s := range scenes {
		if s != nil && s.Route != nil && s.Route.Key == key {
			return s
		}
	}
	return nil
}
