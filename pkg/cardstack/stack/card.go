package stack

import (
	"math"

	"github.com/BrandonKowalski/cardstack/pkg/cardstack/animated"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/constants"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/internal"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/transition"
)

// cardProps is the per-screen slice of the stack's render pass.
type cardProps struct {
	index          int
	top            bool
	closing        bool
	layout         Layout
	gesture        *animated.Value
	config         TransitionConfig
	gestureEnabled bool
	responseDist   *ResponseDistance
	velocityImpact float64
}

// card is the container of one screen. It owns the open/close animation of
// the screen's gesture tracker and turns pan events into tracker updates.
type card struct {
	stack   *CardStack
	route   *Route
	props   cardProps
	mounted bool

	lastToValue  *float64
	swiping      bool
	pendingClose func()
}

func newCard(s *CardStack, route *Route, props cardProps) *card {
	return &card{stack: s, route: route, props: props}
}

func (c *card) mount() {
	c.mounted = true
	c.animate(c.props.closing, 0)
}

func (c *card) unmount() {
	c.mounted = false
	c.cancelPendingClose()
	c.props.gesture.StopAnimation()
}

// update applies new props and starts an animation when the resting
// position changed, including the case where a gesture already moved the
// tracker there: the animation still has to run so that completion reaches
// the owner.
func (c *card) update(next cardProps) {
	prev := c.props
	c.props = next

	toValue := c.animateToValue(next.closing)
	if c.toValueFor(prev, prev.closing) != toValue || c.lastToValue == nil || *c.lastToValue != toValue {
		c.animate(next.closing, 0)
	}
}

func (c *card) toValueFor(p cardProps, closing bool) float64 {
	if !closing {
		return 0
	}
	return DistanceForDirection(p.layout.Clamped(), p.config.GestureDirection)
}

func (c *card) animateToValue(closing bool) float64 {
	return c.toValueFor(c.props, closing)
}

func (c *card) animate(closing bool, velocity float64) {
	toValue := c.animateToValue(closing)
	c.lastToValue = &toValue

	driver := c.props.config.TransitionSpec.Open
	if closing {
		driver = c.props.config.TransitionSpec.Close
	}
	if driver == nil {
		driver = transition.NoAnimationSpec
	}

	c.cancelPendingClose()
	c.handleTransitionStart(closing)

	c.stack.loop.Start(c.props.gesture, driver, toValue, velocity, func(finished bool) {
		c.cancelPendingClose()
		if !finished || !c.mounted {
			return
		}
		if closing {
			c.handleClose()
		} else {
			c.handleOpen()
		}
	})
}

func (c *card) cancelPendingClose() {
	if c.pendingClose != nil {
		c.pendingClose()
		c.pendingClose = nil
	}
}

func (c *card) handleTransitionStart(closing bool) {
	cb := c.stack.props.Callbacks
	if c.props.top && closing {
		call(cb.OnPageChangeConfirm)
	} else {
		call(cb.OnPageChangeCancel)
	}
	internal.GetInternalLogger().Debug("Transition started", "route", c.route.Key, "closing", closing)
	if cb.OnTransitionStart != nil {
		cb.OnTransitionStart(c.route, closing)
	}
}

func (c *card) handleOpen() {
	cb := c.stack.props.Callbacks
	internal.GetInternalLogger().Debug("Route opened", "route", c.route.Key)
	if cb.OnTransitionEnd != nil {
		cb.OnTransitionEnd(c.route, false)
	}
	if cb.OnOpenRoute != nil {
		cb.OnOpenRoute(c.route)
	}
}

func (c *card) handleClose() {
	cb := c.stack.props.Callbacks
	internal.GetInternalLogger().Debug("Route closed", "route", c.route.Key)
	if cb.OnTransitionEnd != nil {
		cb.OnTransitionEnd(c.route, true)
	}
	if cb.OnCloseRoute != nil {
		cb.OnCloseRoute(c.route)
	}
}

// acceptsGestureAt reports whether a pan starting at (x, y) is inside the
// response area along the leading edge.
func (c *card) acceptsGestureAt(x, y float64) bool {
	direction := c.props.config.GestureDirection
	layout := c.props.layout

	if direction.IsVertical() {
		limit := constants.GestureResponseDistanceVertical
		if c.props.responseDist != nil && c.props.responseDist.Vertical != nil {
			limit = *c.props.responseDist.Vertical
		}
		if direction == constants.GestureVerticalInverted {
			return y >= layout.Height-limit
		}
		return y <= limit
	}

	limit := constants.GestureResponseDistanceHorizontal
	if c.props.responseDist != nil && c.props.responseDist.Horizontal != nil {
		limit = *c.props.responseDist.Horizontal
	}
	if direction == constants.GestureHorizontalInverted {
		return x >= layout.Width-limit
	}
	return x <= limit
}

// handlePan drives the gesture state machine. It returns false when the
// event was not consumed.
func (c *card) handlePan(ev PanEvent) bool {
	if !c.props.gestureEnabled {
		return false
	}
	cb := c.stack.props.Callbacks
	direction := c.props.config.GestureDirection
	vertical := direction.IsVertical()

	translation, velocity := ev.TranslationX, ev.VelocityX
	if vertical {
		translation, velocity = ev.TranslationY, ev.VelocityY
	}

	switch ev.State {
	case GestureBegan:
		if !c.acceptsGestureAt(ev.X, ev.Y) {
			return false
		}
		c.swiping = true
		c.cancelPendingClose()
		c.props.gesture.StopAnimation()
		internal.GetInternalLogger().Debug("Gesture began", "route", c.route.Key)
		call(cb.OnPageChangeStart)
		if cb.OnGestureStart != nil {
			cb.OnGestureStart(c.route)
		}

	case GestureActive:
		if !c.swiping {
			return false
		}
		c.props.gesture.SetValue(translation)

	case GestureCancelled:
		if !c.swiping {
			return false
		}
		c.swiping = false
		c.animate(c.props.closing, velocity)
		internal.GetInternalLogger().Debug("Gesture cancelled", "route", c.route.Key)
		call(cb.OnPageChangeCancel)
		if cb.OnGestureCancel != nil {
			cb.OnGestureCancel(c.route)
		}

	case GestureEnded:
		if !c.swiping {
			return false
		}
		c.swiping = false

		layout := c.props.layout.Clamped()
		distance := layout.Width
		if vertical {
			distance = layout.Height
		}

		closing := c.props.closing
		projected := (translation + velocity*c.props.velocityImpact) * constants.InvertedMultiplier(direction)
		if projected > distance/2 {
			closing = velocity != 0 || translation != 0
		}

		c.animate(closing, velocity)
		if closing {
			// The owner is told a little after the close animation has started
			// so its state change does not disturb the animation's first frame.
			c.pendingClose = c.stack.loop.AfterFunc(constants.GestureCloseDelay, func() {
				c.pendingClose = nil
				if c.mounted && cb.OnCloseRoute != nil {
					cb.OnCloseRoute(c.route)
				}
			})
		}
		internal.GetInternalLogger().Debug("Gesture ended", "route", c.route.Key, "closing", closing,
			"translation", translation, "velocity", math.Round(velocity))
		if cb.OnGestureEnd != nil {
			cb.OnGestureEnd(c.route)
		}

	default:
		return false
	}
	return true
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
