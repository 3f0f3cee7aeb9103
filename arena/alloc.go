package arena

import "unsafe"

// New allocates a zeroed T from the arena and returns a pointer to it.
// The pointer stays valid until the arena is cleared or released.
func New[T any](a *Arena) *T {
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return &zero
	}
	return (*T)(a.Alloc(size, unsafe.Alignof(zero)))
}

// NewUninit is like New but the memory is not zeroed.
func NewUninit[T any](a *Arena) *T {
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return &zero
	}
	return (*T)(a.AllocUninit(size, unsafe.Alignof(zero)))
}

// Slice allocates a zeroed slice of n elements of type T from the arena.
// Returns nil when n <= 0.
func Slice[T any](a *Arena, n int) []T {
	s := SliceUninit[T](a, n)
	var zero T
	if unsafe.Sizeof(zero) != 0 {
		clear(s)
	}
	return s
}

// SliceUninit allocates an uninitialized slice of n elements of type T from
// the arena. Returns nil when n <= 0.
func SliceUninit[T any](a *Arena, n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		// Zero-size elements need no arena storage.
		return make([]T, n)
	}
	total := size * uintptr(n)
	if total/size != uintptr(n) {
		a.Fail(total)
	}
	p := a.AllocUninit(total, unsafe.Alignof(zero))
	return unsafe.Slice((*T)(p), n)
}
