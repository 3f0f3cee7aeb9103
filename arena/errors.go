package arena

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMemory indicates the arena could not obtain a block from the
	// operating system or a size computation overflowed the address width.
	ErrNoMemory = errors.New("arena: out of memory")

	// ErrStaleHandle indicates a container was used after the arena backing
	// it was cleared or released, or after the handle was retired.
	ErrStaleHandle = errors.New("arena: stale handle used after clear or release")
)

// NoMemoryError is the panic value raised for a fatal allocation failure.
// It unwraps to ErrNoMemory.
type NoMemoryError struct {
	// Size is the request that could not be satisfied, in bytes.
	Size uintptr
}

func (e *NoMemoryError) Error() string {
	return fmt.Sprintf("arena: failed to allocate %d bytes", e.Size)
}

func (e *NoMemoryError) Unwrap() error {
	return ErrNoMemory
}

// SetNoMemoryHandler registers a callback invoked before the arena panics on
// a fatal allocation failure. A nil handler removes the callback.
func (a *Arena) SetNoMemoryHandler(fn func(size uintptr)) {
	a.noMemory = fn
}

// Fail reports an unsatisfiable allocation of the given size: it invokes the
// registered no-memory handler, if any, then panics with a *NoMemoryError.
// The container packages call it when a capacity computation overflows.
func (a *Arena) Fail(size uintptr) {
	if a.noMemory != nil {
		a.noMemory(size)
	}
	panic(&NoMemoryError{Size: size})
}
