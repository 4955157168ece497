//go:build !linux

package input

import (
	"context"
	"errors"

	"github.com/BrandonKowalski/cardstack/pkg/cardstack"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/stack"
)

var errNoTouch = errors.New("touch devices are only supported on linux")

// TouchReader reads the primary contact of an evdev touchscreen.
type TouchReader struct{}

// OpenTouch opens the touchscreen at path and scales its axes to layout.
func OpenTouch(path string, _ stack.Layout) (*TouchReader, error) {
	return nil, cardstack.NewInfrastructureError("open touch device "+path, errNoTouch)
}

// Run forwards pointer samples to out until ctx is done or the device fails.
func (t *TouchReader) Run(context.Context, chan<- Pointer) error {
	return errNoTouch
}

// Close releases the device.
func (t *TouchReader) Close() error {
	return nil
}
