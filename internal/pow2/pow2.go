// Package pow2 provides the alignment and power-of-two sizing helpers shared
// by the arena and its containers.
package pow2

// Align rounds v up to the next multiple of align.
// align must be a power of two.
func Align(v, align uintptr) uintptr {
	return v + (-v & (align - 1))
}

// IsPow2 reports whether v is a power of two.
func IsPow2(v uintptr) bool {
	return v != 0 && v&(v-1) == 0
}

// Ceil returns the smallest power of two that is >= v and >= floor.
// floor must be a power of two. Returns 0 if the result would overflow.
func Ceil(v, floor uintptr) uintptr {
	p := floor
	for p < v {
		p <<= 1
		if p == 0 {
			return 0
		}
	}
	return p
}
