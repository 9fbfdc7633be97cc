package fieldbind

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrorsDistinct(t *testing.T) {
	errs := []error{
		ErrAlreadyInitialized,
		ErrUninitialized,
		ErrNilNotAllowed,
		ErrUnbound,
	}

	for i, err1 := range errs {
		for j, err2 := range errs {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("sentinel errors should be distinct: %v and %v", err1, err2)
			}
		}
	}
}

func TestIsInitializationError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"ErrAlreadyInitialized", ErrAlreadyInitialized, true},
		{"ErrUninitialized", ErrUninitialized, true},
		{"wrapped ErrUninitialized", fmt.Errorf("wrapped: %w", ErrUninitialized), true},
		{"ErrNilNotAllowed", ErrNilNotAllowed, false},
		{"other error", errors.New("other"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInitializationError(tt.err); got != tt.expect {
				t.Errorf("IsInitializationError(%v) = %v, want %v", tt.err, got, tt.expect)
			}
		})
	}
}

func TestIsUsageError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"ErrNilNotAllowed", ErrNilNotAllowed, true},
		{"ErrUnbound", ErrUnbound, true},
		{"wrapped ErrUnbound", fmt.Errorf("wrapped: %w", ErrUnbound), true},
		{"other error", errors.New("other"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUsageError(tt.err); got != tt.expect {
				t.Errorf("IsUsageError(%v) = %v, want %v", tt.err, got, tt.expect)
			}
		})
	}
}

// expectPanic runs fn and asserts that it panics with an error matching
// target.
func expectPanic(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with %v, got none", target)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			t.Fatalf("panic = %v, want %v", r, target)
		}
	}()
	fn()
}
