package fecs

import (
	"errors"
	"fmt"
	"reflect"
)

// All errors here are programmer errors, not environmental ones. Nothing is
// retried or recovered internally; every failure surfaces to the immediate
// caller. Match sentinels with errors.Is.
var (
	// ErrNotAlive reports an operation on an entity whose version no longer
	// matches the allocator. Destroying an already-destroyed entity yields
	// the same identity.
	ErrNotAlive = errors.New("fecs: entity not alive")

	// ErrNotPresent reports a Get on a live entity lacking the component.
	ErrNotPresent = errors.New("fecs: component not present")

	// ErrCapacityExhausted reports that all 2^20 entity slots are in use.
	ErrCapacityExhausted = errors.New("fecs: entity index space exhausted")
)

// SingletonError reports a singleton lookup on a pool whose size is not
// exactly one. Count carries the actual pool size.
type SingletonError struct {
	Type  reflect.Type
	Count int
}

func (e *SingletonError) Error() string {
	return fmt.Sprintf("fecs: singleton %v: pool holds %d components, want 1", e.Type, e.Count)
}
