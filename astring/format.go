package astring

import "fmt"

// Appendf appends formatted text to the string and returns the number of
// bytes written. The text is formatted directly into the string's available
// space; only when it does not fit does the string grow (doubling past the
// required size) and the formatted bytes get copied in. The computed size
// always fits after one growth, so a second failure cannot occur.
func (s *String) Appendf(format string, args ...any) int {
	s.check()

	// Give fmt the capacity between the current length and the terminator
	// slot. If the result fits there, append wrote in place and no copy
	// happened.
	avail := s.Cap() - s.n
	out := fmt.Appendf(s.buf[s.n:s.n:len(s.buf)-1], format, args...)
	if len(out) <= avail {
		s.n += len(out)
		s.buf[s.n] = 0
		return len(out)
	}

	// The result outgrew the string, so fmt moved it to a fresh buffer.
	// Grow once and copy it into place.
	need := s.n + len(out)
	s.ensure(need)
	copy(s.buf[s.n:], out)
	s.n = need
	s.buf[s.n] = 0
	return len(out)
}
