//go:build unix

package memblock

import (
	"golang.org/x/sys/unix"
)

// Alloc obtains a zero-filled block of exactly n bytes from the operating
// system via an anonymous private mapping.
func Alloc(n int) ([]byte, error) {
	return unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
}

// Free returns a block obtained from Alloc to the operating system.
// Freeing nil is a no-op.
func Free(b []byte) error {
	if b == nil {
		return nil
	}
	return unix.Munmap(b)
}
