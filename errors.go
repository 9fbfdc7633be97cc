package fieldbind

import "errors"

// Sentinel errors for binding configuration and usage bugs. All of them are
// raised via panic, wrapped with context, because they indicate an
// incorrectly constructed control rather than a recoverable condition.
var (
	// ErrAlreadyInitialized is raised when a second mapper attempts to claim
	// a control whose field has already been initialized.
	ErrAlreadyInitialized = errors.New("fieldbind: field already initialized")

	// ErrUninitialized is raised when a field operation is invoked before
	// any Init call has claimed the control.
	ErrUninitialized = errors.New("fieldbind: field not initialized")

	// ErrNilNotAllowed is raised when a nil model value is presented to a
	// single-channel mapper configured to reject nil.
	ErrNilNotAllowed = errors.New("fieldbind: nil value not allowed")

	// ErrUnbound is raised when a composite mapper receives a presentation
	// push (or is attached) before any binding has been registered.
	ErrUnbound = errors.New("fieldbind: composite mapper has no bindings")
)

// IsInitializationError checks if err is a field lifecycle error.
func IsInitializationError(err error) bool {
	return errors.Is(err, ErrAlreadyInitialized) || errors.Is(err, ErrUninitialized)
}

// IsUsageError checks if err is any of the configuration/usage sentinels.
func IsUsageError(err error) bool {
	return IsInitializationError(err) ||
		errors.Is(err, ErrNilNotAllowed) ||
		errors.Is(err, ErrUnbound)
}
