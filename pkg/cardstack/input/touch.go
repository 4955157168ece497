package input

import (
	"time"

	"github.com/BrandonKowalski/cardstack/pkg/cardstack/stack"
)

// axis maps a raw absolute axis range onto a layout dimension.
type axis struct {
	min, max float64
}

func (a axis) scale(raw int32, size float64) float64 {
	if a.max <= a.min {
		return float64(raw)
	}
	return (float64(raw) - a.min) / (a.max - a.min) * size
}

// contact accumulates the axis and button updates of the primary touch
// between two sync reports.
type contact struct {
	x, y     axis
	layout   stack.Layout
	rawX     int32
	rawY     int32
	touching bool
	reported bool
	lastX    float64
	lastY    float64
}

func (c *contact) setX(v int32) { c.rawX = v }

func (c *contact) setY(v int32) { c.rawY = v }

func (c *contact) setTouching(on bool) { c.touching = on }

// sync closes a report and returns the pointer sample it amounts to.
func (c *contact) sync(at time.Duration) (Pointer, bool) {
	x := c.x.scale(c.rawX, c.layout.Width)
	y := c.y.scale(c.rawY, c.layout.Height)

	var phase Phase
	switch {
	case c.touching && !c.reported:
		phase = PointerDown
	case c.touching:
		if x == c.lastX && y == c.lastY {
			return Pointer{}, false
		}
		phase = PointerMove
	case c.reported:
		phase = PointerUp
	default:
		return Pointer{}, false
	}

	c.reported = c.touching
	c.lastX, c.lastY = x, y
	return Pointer{Phase: phase, X: x, Y: y, At: at}, true
}
