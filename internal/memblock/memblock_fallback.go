//go:build !unix

// Package memblock obtains and releases the coarse blocks of memory that back
// an arena. On unix systems blocks come from anonymous mmap, so releasing a
// block returns its pages to the operating system immediately. Elsewhere
// blocks come from the Go heap and release is left to the garbage collector.
package memblock

// Alloc obtains a zero-filled block of exactly n bytes from the Go heap.
func Alloc(n int) ([]byte, error) {
	return make([]byte, n), nil
}

// Free is a no-op: the garbage collector reclaims a heap block once the
// arena drops its reference.
func Free(b []byte) error {
	return nil
}
