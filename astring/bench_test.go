package astring

import (
	"testing"

	"github.com/joshuapare/arenakit/arena"
)

// BenchmarkAppend measures amortized append cost on a long-lived string.
func BenchmarkAppend(b *testing.B) {
	var a arena.Arena
	defer a.Release()

	s := New(&a, 1024)
	chunk := []byte("0123456789abcdef")

	b.SetBytes(int64(len(chunk)))
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		s.Append(chunk)
		if s.Len() > 1<<20 {
			b.StopTimer()
			a.Clear()
			s = New(&a, 1024)
			b.StartTimer()
		}
	}
}

// BenchmarkAppendf measures formatted appends, which format in place when the
// result fits the spare capacity.
func BenchmarkAppendf(b *testing.B) {
	var a arena.Arena
	defer a.Release()

	s := New(&a, 4096)

	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		s.Appendf("key=%d ", i)
		if s.Len() > 1<<20 {
			b.StopTimer()
			a.Clear()
			s = New(&a, 4096)
			b.StartTimer()
		}
	}
}
