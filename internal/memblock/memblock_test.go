package memblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocFree(t *testing.T) {
	b, err := Alloc(4096)
	require.NoError(t, err)
	require.Len(t, b, 4096)

	for i, v := range b {
		require.Zero(t, v, "byte %d not zero", i)
	}

	// The block must be writable end to end.
	b[0] = 0xFF
	b[len(b)-1] = 0xFF

	assert.NoError(t, Free(b))
}

func TestFreeNil(t *testing.T) {
	assert.NoError(t, Free(nil))
}
