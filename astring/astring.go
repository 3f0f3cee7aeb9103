// Package astring implements an expandable, null-terminated byte string
// stored in an arena.
//
// A String may contain zero bytes; one extra zero byte always follows the
// contents, so the backing storage can be handed to code that expects
// C-style termination. Growth doubles the required capacity to keep appends
// amortized O(1). When a grown string no longer fits its allocation in
// place, it relocates within the arena and the old bytes are retired.
package astring

import (
	"unsafe"

	"github.com/joshuapare/arenakit/arena"
)

// SmallStringSize is the scratch capacity Newf reserves before formatting.
const SmallStringSize = 16

const maxInt = int(^uint(0) >> 1)

// String is a growable byte string carved from an arena. Use New or Newf to
// create one. The zero value is not usable.
type String struct {
	arena *arena.Arena
	buf   []byte // capacity+1 bytes; buf[n] is always 0
	n     int
	gen   uint64
}

// New creates an empty string with the given capacity, which is the longest
// length it can reach without resizing.
func New(a *arena.Arena, capacity int) *String {
	if capacity < 0 {
		capacity = 0
	}
	buf := a.BytesUninit(capacity + 1)
	buf[0] = 0
	return &String{arena: a, buf: buf, gen: a.Generation()}
}

// Newf creates a string holding the formatted text, sized exactly to fit.
// It reserves the block remainder as scratch space first, so the common case
// formats directly into place without a copy.
func Newf(a *arena.Arena, format string, args ...any) *String {
	scratch := a.Reserve(SmallStringSize+1, 1)
	s := New(a, int(scratch)-1)
	s.Appendf(format, args...)
	s.ResizeCapacity(0)
	return s
}

func (s *String) check() {
	if s.gen != s.arena.Generation() {
		panic(arena.ErrStaleHandle)
	}
}

// Len returns the string's length, not counting the terminator.
func (s *String) Len() int {
	return s.n
}

// Cap returns the length the string can reach without resizing, not counting
// the terminator.
func (s *String) Cap() int {
	return len(s.buf) - 1
}

// Bytes returns the string's contents. The slice aliases arena memory and is
// valid until the next operation that grows the string.
func (s *String) Bytes() []byte {
	s.check()
	return s.buf[:s.n:s.n]
}

// Terminated returns the contents plus the trailing zero byte.
func (s *String) Terminated() []byte {
	s.check()
	return s.buf[: s.n+1 : s.n+1]
}

// String returns a copy of the contents as a Go string.
func (s *String) String() string {
	s.check()
	return string(s.buf[:s.n])
}

// Copy creates a new string with the same contents and a capacity of at
// least minCap.
func (s *String) Copy(minCap int) *String {
	s.check()
	if minCap < s.n {
		minCap = s.n
	}
	c := New(s.arena, minCap)
	c.n = s.n
	copy(c.buf, s.buf[:s.n])
	c.buf[c.n] = 0
	return c
}

// ResizeCapacity changes the string's capacity without changing its
// contents. A capacity below the current length is clamped to the length.
// Passing 0 is the idiomatic way to shrink a finished string to its minimal
// size, returning the spare bytes to the arena when the string is still the
// most recent allocation in its block. Shrinks that cannot reclaim memory
// are still honored logically.
func (s *String) ResizeCapacity(capacity int) {
	s.check()
	if capacity < s.n {
		capacity = s.n
	}
	base := unsafe.Pointer(unsafe.SliceData(s.buf))
	if s.arena.TryResize(base, uintptr(capacity+1)) || capacity <= s.Cap() {
		s.buf = unsafe.Slice(unsafe.SliceData(s.buf), capacity+1)
		s.buf[s.n] = 0
		return
	}

	old := s.buf
	*s = *s.Copy(capacity)

	// Retire the old bytes: stale views read an empty string.
	old[0] = 0
}

// ensure grows the capacity to hold need bytes, doubling to amortize a
// sequence of appends.
func (s *String) ensure(need int) {
	if need <= s.Cap() {
		return
	}
	capacity := need
	if capacity <= maxInt/2 {
		capacity *= 2
	}
	s.ResizeCapacity(capacity)
}

// SetLen sets the string's length, growing the capacity if necessary.
// New bytes are zero-filled.
func (s *String) SetLen(n int) {
	s.check()
	if n < 0 {
		n = 0
	}
	if n > s.Cap() {
		s.ResizeCapacity(n)
	}
	if n > s.n {
		clear(s.buf[s.n : n+1])
	} else {
		s.buf[n] = 0
	}
	s.n = n
}

// Reset empties the string without changing its capacity.
func (s *String) Reset() {
	s.SetLen(0)
}

// Append adds data to the end of the string, growing if necessary.
func (s *String) Append(data []byte) {
	s.check()
	need := s.n + len(data)
	s.ensure(need)
	copy(s.buf[s.n:], data)
	s.n = need
	s.buf[s.n] = 0
}

// AppendString adds the contents of str to the end of the string.
func (s *String) AppendString(str string) {
	s.check()
	need := s.n + len(str)
	s.ensure(need)
	copy(s.buf[s.n:], str)
	s.n = need
	s.buf[s.n] = 0
}

// AppendByte adds a single byte to the end of the string.
func (s *String) AppendByte(b byte) {
	s.check()
	s.ensure(s.n + 1)
	s.buf[s.n] = b
	s.n++
	s.buf[s.n] = 0
}

// WriteAt writes data at the given offset, extending the string when the
// write reaches past the current length. Bytes between the old length and
// the offset are zero-filled.
func (s *String) WriteAt(offset int, data []byte) {
	s.check()
	if offset < 0 {
		offset = 0
	}
	required := offset + len(data)
	s.ensure(required)
	if s.n < required {
		if s.n < offset {
			clear(s.buf[s.n:offset])
		}
		s.buf[required] = 0
		s.n = required
	}
	copy(s.buf[offset:], data)
}

// Compact retires the string and returns its contents shrunk to the minimal
// allocation. The spare capacity goes back to the arena when the string is
// still the most recent allocation in its block. The handle must not be used
// afterwards.
func (s *String) Compact() []byte {
	s.check()
	out := s.buf[: s.n : s.n+1]
	s.arena.TryResize(unsafe.Pointer(unsafe.SliceData(s.buf)), uintptr(s.n+1))
	s.gen = ^s.gen // retire the handle
	return out
}
