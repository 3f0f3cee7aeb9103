package arena

import (
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
)

// Hash values 0 and 1 are reserved by the hash-table probe layout for the
// empty and tombstone markers, so the arena's hash functions never return
// them.

// SetHashKey sets the 64-bit key mixed into HashBytes and HashString.
// Call it before the first hash-table operation to make hashing
// deterministic, for example in tests. A key of 0 is replaced lazily with a
// random one.
func (a *Arena) SetHashKey(key uint64) {
	a.hashKey = key
}

func (a *Arena) hashKeyInit() uint64 {
	for a.hashKey == 0 {
		a.hashKey = rand.Uint64()
	}
	return a.hashKey
}

// HashBytes returns the keyed hash of data. Never returns 0 or 1.
func (a *Arena) HashBytes(data []byte) uint32 {
	var d xxhash.Digest
	d.ResetWithSeed(a.hashKeyInit())
	_, _ = d.Write(data)
	return foldHash(d.Sum64())
}

// HashString returns the keyed hash of the contents of s.
// Never returns 0 or 1.
func (a *Arena) HashString(s string) uint32 {
	var d xxhash.Digest
	d.ResetWithSeed(a.hashKeyInit())
	_, _ = d.WriteString(s)
	return foldHash(d.Sum64())
}

func foldHash(h uint64) uint32 {
	v := uint32(h ^ h>>32)
	if v < 2 {
		v += 2
	}
	return v
}
