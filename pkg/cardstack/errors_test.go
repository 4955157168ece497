package cardstack

import (
	"errors"
	"fmt"
	"testing"
)

func TestInfrastructureError(t *testing.T) {
	cause := errors.New("device busy")
	err := fmt.Errorf("input: %w", NewInfrastructureError("open_device", cause))

	if !IsInfrastructureError(err) {
		t.Error("wrapped infrastructure error not detected")
	}
	if !errors.Is(err, cause) {
		t.Error("infrastructure error should unwrap to its cause")
	}
	if got := NewInfrastructureError("open_device", cause).Error(); got != "cardstack: open_device: device busy" {
		t.Errorf("Error() = %q", got)
	}
	if got := NewInfrastructureError("render", nil).Error(); got != "cardstack: render" {
		t.Errorf("Error() = %q", got)
	}
	if IsInfrastructureError(ErrEmptyState) {
		t.Error("sentinel errors are not infrastructure errors")
	}
}

func TestIsCancelled(t *testing.T) {
	if !IsCancelled(fmt.Errorf("dialog: %w", ErrCancelled)) {
		t.Error("wrapped cancellation not detected")
	}
	if IsCancelled(ErrUnknownRoute) {
		t.Error("unknown route is not a cancellation")
	}
}
