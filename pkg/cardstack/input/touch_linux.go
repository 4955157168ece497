//go:build linux

package input

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/holoplot/go-evdev"

	"github.com/BrandonKowalski/cardstack/pkg/cardstack"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/internal"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/stack"
)

// TouchReader reads the primary contact of an evdev touchscreen.
type TouchReader struct {
	dev     *evdev.InputDevice
	contact contact
	slot    int32
}

// OpenTouch opens the touchscreen at path and scales its axes to layout.
func OpenTouch(path string, layout stack.Layout) (*TouchReader, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, cardstack.NewInfrastructureError("open touch device "+path, err)
	}

	infos, err := dev.AbsInfos()
	if err != nil {
		dev.Close()
		return nil, cardstack.NewInfrastructureError("read touch axes "+path, err)
	}

	t := &TouchReader{dev: dev, contact: contact{layout: layout}}
	if info, ok := infos[evdev.ABS_MT_POSITION_X]; ok {
		t.contact.x = axis{min: float64(info.Minimum), max: float64(info.Maximum)}
	} else if info, ok := infos[evdev.ABS_X]; ok {
		t.contact.x = axis{min: float64(info.Minimum), max: float64(info.Maximum)}
	}
	if info, ok := infos[evdev.ABS_MT_POSITION_Y]; ok {
		t.contact.y = axis{min: float64(info.Minimum), max: float64(info.Maximum)}
	} else if info, ok := infos[evdev.ABS_Y]; ok {
		t.contact.y = axis{min: float64(info.Minimum), max: float64(info.Maximum)}
	}

	name, _ := dev.Name()
	internal.GetInternalLogger().Debug("Opened touch device", "path", path, "name", name,
		"x", fmt.Sprintf("%v..%v", t.contact.x.min, t.contact.x.max),
		"y", fmt.Sprintf("%v..%v", t.contact.y.min, t.contact.y.max))
	return t, nil
}

// Run forwards pointer samples to out until ctx is done or the device
// fails. It closes the device before returning.
func (t *TouchReader) Run(ctx context.Context, out chan<- Pointer) error {
	stop := context.AfterFunc(ctx, func() { t.dev.Close() })
	defer func() {
		if stop() {
			t.dev.Close()
		}
	}()

	for {
		ev, err := t.dev.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("touch reader: %w", cardstack.ErrCancelled)
			}
			return cardstack.NewInfrastructureError("read touch event", err)
		}

		p, ok := t.handle(ev)
		if !ok {
			continue
		}
		select {
		case out <- p:
		case <-ctx.Done():
			return fmt.Errorf("touch reader: %w", cardstack.ErrCancelled)
		}
	}
}

func (t *TouchReader) handle(ev *evdev.InputEvent) (Pointer, bool) {
	switch ev.Type {
	case evdev.EV_ABS:
		switch ev.Code {
		case evdev.ABS_MT_SLOT:
			t.slot = ev.Value
		case evdev.ABS_MT_TRACKING_ID:
			if t.slot == 0 {
				t.contact.setTouching(ev.Value >= 0)
			}
		case evdev.ABS_MT_POSITION_X:
			if t.slot == 0 {
				t.contact.setX(ev.Value)
			}
		case evdev.ABS_MT_POSITION_Y:
			if t.slot == 0 {
				t.contact.setY(ev.Value)
			}
		case evdev.ABS_X:
			t.contact.setX(ev.Value)
		case evdev.ABS_Y:
			t.contact.setY(ev.Value)
		}
	case evdev.EV_KEY:
		if ev.Code == evdev.BTN_TOUCH {
			t.contact.setTouching(ev.Value != 0)
		}
	case evdev.EV_SYN:
		if ev.Code == evdev.SYN_REPORT {
			at := time.Duration(ev.Time.Sec)*time.Second + time.Duration(ev.Time.Usec)*time.Microsecond
			return t.contact.sync(at)
		}
	}
	return Pointer{}, false
}

// Close releases the device. Closing after Run has returned is a no-op.
func (t *TouchReader) Close() error {
	if err := t.dev.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return cardstack.NewInfrastructureError("close touch device", err)
	}
	return nil
}
