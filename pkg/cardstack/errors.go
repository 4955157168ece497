package cardstack

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrCancelled indicates the user backed out of an operation.
	// This is a normal flow control error, not an infrastructure failure.
	ErrCancelled = errors.New("operation cancelled by user")

	// ErrEmptyState is returned by navigation actions that would leave the
	// stack without any route. The action is rejected.
	ErrEmptyState = errors.New("navigation state would be empty")

	// ErrUnknownRoute is returned when a route name has no registered scene
	// or a route key is not part of the navigation state.
	ErrUnknownRoute = errors.New("unknown route")
)

// InfrastructureError represents a framework-level error that indicates
// something is wrong with cardstack itself (the window could not be created,
// the input device could not be opened, etc.). These errors are typically
// fatal or require framework-level recovery.
type InfrastructureError struct {
	Op  string // Operation that failed (e.g., "create_window", "open_device")
	Err error  // Underlying error
}

func (e *InfrastructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cardstack: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("cardstack: %s", e.Op)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError creates a new infrastructure error.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

// IsInfrastructureError checks if an error is an infrastructure error.
func IsInfrastructureError(err error) bool {
	var infraErr *InfrastructureError
	return errors.As(err, &infraErr)
}

// IsCancelled checks if an error indicates user cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
