package order

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("order not found")
)

// ValidationError is returned when caller input is rejected before any
// store is touched.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// StoreError wraps a connectivity or IO failure reported by the order store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("order store: %s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }
