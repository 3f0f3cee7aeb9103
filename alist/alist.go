// Package alist implements a growable, null-terminated list of arbitrary
// items stored in an arena.
//
// The backing storage always holds one zero-valued item past the logical
// end, so code holding the raw item slice can iterate until the sentinel
// without tracking the length separately. That layout is shared with the
// ahash package's item array.
package alist

import (
	"unsafe"

	"github.com/joshuapare/arenakit/arena"
)

// SmallListSize is the capacity used when New is given 0.
const SmallListSize = 16

const maxInt = int(^uint(0) >> 1)

// List is a growable list of T carved from an arena. Use New to create one.
// The zero value is not usable.
type List[T any] struct {
	arena *arena.Arena
	items []T // capacity+1 slots; items[n] is the zero sentinel
	n     int
	gen   uint64
}

// New creates an empty list able to hold capacity items without resizing,
// not counting the sentinel. A capacity of 0 selects SmallListSize.
func New[T any](a *arena.Arena, capacity int) *List[T] {
	if capacity <= 0 {
		capacity = SmallListSize
	}
	items := arena.SliceUninit[T](a, capacity+1)
	var zero T
	items[0] = zero
	return &List[T]{arena: a, items: items, gen: a.Generation()}
}

func (l *List[T]) check() {
	if l.gen != l.arena.Generation() {
		panic(arena.ErrStaleHandle)
	}
}

// Len returns the number of items stored, not counting the sentinel.
func (l *List[T]) Len() int {
	return l.n
}

// Cap returns the number of items the list can hold without resizing, not
// counting the sentinel.
func (l *List[T]) Cap() int {
	return len(l.items) - 1
}

// View returns the stored items. The slice aliases arena memory and is valid
// until the next operation that grows the list.
func (l *List[T]) View() []T {
	l.check()
	return l.items[:l.n:l.n]
}

// Terminated returns the stored items plus the zero sentinel.
func (l *List[T]) Terminated() []T {
	l.check()
	return l.items[: l.n+1 : l.n+1]
}

// At returns a pointer to the item at index i.
func (l *List[T]) At(i int) *T {
	l.check()
	if i < 0 || i >= l.n {
		panic("alist: index out of range")
	}
	return &l.items[i]
}

// Copy creates a new list with the same contents and a capacity of at least
// minCap.
func (l *List[T]) Copy(minCap int) *List[T] {
	l.check()
	if minCap < l.n {
		minCap = l.n
	}
	c := New[T](l.arena, minCap)
	c.n = l.n
	copy(c.items, l.items[:l.n+1])
	return c
}

// ResizeCapacity changes the list's capacity without changing its contents.
// A capacity below the current length is clamped to the length. Passing 0
// shrinks the list to its minimal size, returning unused memory to the arena
// when the list is still the most recent allocation in its block; shrinks
// that cannot reclaim memory are still honored logically.
func (l *List[T]) ResizeCapacity(capacity int) {
	l.check()
	if capacity < l.n {
		capacity = l.n
	}
	var zero T
	size := unsafe.Sizeof(zero)
	if size != 0 {
		base := unsafe.Pointer(unsafe.SliceData(l.items))
		if l.arena.TryResize(base, uintptr(capacity+1)*size) {
			l.items = unsafe.Slice(unsafe.SliceData(l.items), capacity+1)
			return
		}
	}
	if capacity <= l.Cap() {
		l.items = l.items[: capacity+1 : capacity+1]
		return
	}

	old := l.items
	*l = *l.Copy(capacity)

	// Retire the old items: stale views read an empty list.
	old[0] = zero
}

// SetLen sets the list's length, growing the capacity if necessary.
// New items are zero-filled and the sentinel is maintained.
func (l *List[T]) SetLen(n int) {
	l.check()
	if n < 0 {
		n = 0
	}
	if n > l.Cap() {
		l.ResizeCapacity(n)
	}
	if n > l.n {
		clear(l.items[l.n:n])
	}
	l.n = n
	var zero T
	l.items[n] = zero
}

// PushZero appends a zero-valued item, growing the capacity to double the
// required size when full, and returns a pointer to the new slot. The
// pointer is valid until the next operation that grows the list.
func (l *List[T]) PushZero() *T {
	l.check()
	if l.n >= l.Cap() {
		capacity := l.n + 1
		if capacity <= maxInt/2 {
			capacity *= 2
		}
		l.ResizeCapacity(capacity)
	}
	l.n++
	var zero T
	l.items[l.n] = zero
	return &l.items[l.n-1]
}

// Push appends item to the list and returns a pointer to its slot.
func (l *List[T]) Push(item T) *T {
	p := l.PushZero()
	*p = item
	return p
}

// DropFront removes the first n items by advancing the list's visible start.
// No items move: both the length and the capacity decrease by n, and the
// dropped slots stay behind in the arena until it is cleared.
func (l *List[T]) DropFront(n int) {
	l.check()
	if n <= 0 {
		return
	}
	if n > l.n {
		n = l.n
	}
	l.items = l.items[n:]
	l.n -= n
}
