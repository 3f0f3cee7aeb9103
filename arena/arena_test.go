package arena

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestArena_ZeroValueReady verifies the zero value allocates without setup.
func TestArena_ZeroValueReady(t *testing.T) {
	var a Arena
	defer a.Release()

	b := a.Bytes(10)
	require.Len(t, b, 10)
	for i, v := range b {
		require.Zero(t, v, "byte %d should be zeroed", i)
	}
	assert.Equal(t, 1, a.Stats().Blocks)
}

// TestArena_AllocDisjointAndAligned verifies that consecutive allocations
// never overlap and respect their requested alignment.
func TestArena_AllocDisjointAndAligned(t *testing.T) {
	var a Arena
	defer a.Release()

	requests := []struct {
		size  uintptr
		align uintptr
	}{
		{1, 1}, {3, 1}, {8, 8}, {16, 16}, {5, 4}, {1000, 8},
		{4096, 16}, {7, 2}, {64, 64}, {12345, 8}, {1, 16},
	}

	type region struct{ start, end uintptr }
	var regions []region
	for i, req := range requests {
		p := a.AllocUninit(req.size, req.align)
		require.NotNil(t, p, "request %d", i)
		addr := uintptr(p)
		assert.Zero(t, addr%req.align, "request %d: address %#x not %d-aligned", i, addr, req.align)
		for j, r := range regions {
			overlap := addr < r.end && r.start < addr+req.size
			assert.False(t, overlap, "request %d overlaps region %d", i, j)
		}
		regions = append(regions, region{addr, addr + req.size})
	}
}

// TestArena_AllocZeroSize verifies zero-size allocations return nil.
func TestArena_AllocZeroSize(t *testing.T) {
	var a Arena
	defer a.Release()

	assert.Nil(t, a.AllocUninit(0, 1))
	assert.Nil(t, a.Alloc(0, 8))
	assert.Nil(t, a.Bytes(0))
	assert.Nil(t, a.BytesUninit(-1))
}

// TestArena_AllocZeroesReusedMemory verifies Alloc zeroes memory that a
// cleared block hands out again.
func TestArena_AllocZeroesReusedMemory(t *testing.T) {
	var a Arena
	defer a.Release()

	b := a.BytesUninit(256)
	for i := range b {
		b[i] = 0xAA
	}
	a.Clear()

	b2 := a.Bytes(256)
	for i, v := range b2 {
		require.Zero(t, v, "byte %d should be zeroed after reuse", i)
	}
}

// TestArena_BlockGrowthLogarithmic verifies that many small allocations
// produce only a logarithmic number of blocks.
func TestArena_BlockGrowthLogarithmic(t *testing.T) {
	var a Arena
	defer a.Release()

	// 16 MiB in 64-byte pieces. Doubling from a 4 KiB first block needs at
	// most 13 blocks to cover that, not the quarter million a per-request
	// scheme would use.
	const total = 16 << 20
	for range total / 64 {
		a.AllocUninit(64, 8)
	}
	s := a.Stats()
	assert.LessOrEqual(t, s.Blocks, 13, "blocks should grow logarithmically")
	assert.GreaterOrEqual(t, s.Reserved, uintptr(total))
}

// TestArena_TryResize verifies the last-allocation in-place resize contract.
func TestArena_TryResize(t *testing.T) {
	var a Arena
	defer a.Release()

	p := a.AllocUninit(16, 8)
	require.True(t, a.TryResize(p, 64), "growing the last allocation should succeed")
	require.True(t, a.TryResize(p, 8), "shrinking the last allocation should succeed")

	// A later allocation must land after the resized region.
	q := a.AllocUninit(16, 8)
	assert.GreaterOrEqual(t, uintptr(q), uintptr(p)+8)

	// p is no longer the last allocation.
	assert.False(t, a.TryResize(p, 32))

	// Resizing past the block end fails.
	room := a.Reserve(1, 1)
	assert.False(t, a.TryResize(q, room+uintptr(len(a.block.buf))))
}

// TestArena_TryResizeInterleavingTrap documents that interleaving
// allocations from two users of one arena defeats the in-place fast path.
func TestArena_TryResizeInterleavingTrap(t *testing.T) {
	var a Arena
	defer a.Release()

	first := a.AllocUninit(32, 8)
	second := a.AllocUninit(32, 8)
	assert.False(t, a.TryResize(first, 64), "older allocation cannot resize in place")
	assert.True(t, a.TryResize(second, 64), "newest allocation still can")
}

// TestArena_TryResizeNil verifies arbitrary pointers are safe to pass.
func TestArena_TryResizeNil(t *testing.T) {
	var a Arena
	defer a.Release()

	assert.False(t, a.TryResize(nil, 10))
	x := 5
	assert.False(t, a.TryResize(unsafe.Pointer(&x), 10))
}

// TestArena_Reserve verifies a reserved size is then satisfiable without a
// block rotation.
func TestArena_Reserve(t *testing.T) {
	var a Arena
	defer a.Release()

	room := a.Reserve(100, 1)
	require.GreaterOrEqual(t, room, uintptr(100))
	blocks := a.Stats().Blocks

	b := a.BytesUninit(int(room))
	require.Len(t, b, int(room))
	assert.Equal(t, blocks, a.Stats().Blocks, "reserved space should not need a new block")
}

// TestArena_ClearKeepsNewestBlock verifies Clear retains exactly one block
// and resets its cursor for reuse.
func TestArena_ClearKeepsNewestBlock(t *testing.T) {
	var a Arena
	defer a.Release()

	for range 1000 {
		a.AllocUninit(512, 8)
	}
	require.Greater(t, a.Stats().Blocks, 1)
	largest := uintptr(len(a.block.buf))

	a.Clear()
	s := a.Stats()
	assert.Equal(t, 1, s.Blocks)
	assert.Equal(t, largest, s.Reserved, "the newest (largest) block is the one kept")
	assert.Zero(t, s.Used)
}

// TestArena_ClearTunesNextCycle verifies the demand estimate sizes the next
// cycle's first block to hold the whole cycle.
func TestArena_ClearTunesNextCycle(t *testing.T) {
	var a Arena
	defer a.Release()

	const cycleDemand = 300 << 10
	for range cycleDemand / 512 {
		a.AllocUninit(512, 8)
	}
	a.Clear()
	require.GreaterOrEqual(t, a.Stats().SizeEstimateHigh, uintptr(cycleDemand))

	a.Release()
	require.Zero(t, a.Stats().Blocks)

	// The first allocation of the next lifetime starts a block 25% above
	// the remembered demand, so the whole cycle fits in it.
	a.AllocUninit(8, 8)
	require.Equal(t, 1, a.Stats().Blocks)
	for range cycleDemand / 512 {
		a.AllocUninit(512, 8)
	}
	assert.Equal(t, 1, a.Stats().Blocks, "a tuned arena runs a cycle in one block")
}

// TestArena_Release verifies Release returns the arena to its empty state.
func TestArena_Release(t *testing.T) {
	var a Arena

	a.AllocUninit(1<<16, 8)
	require.NotZero(t, a.MemorySize())

	a.Release()
	assert.Zero(t, a.MemorySize())
	assert.Zero(t, a.Stats().Blocks)

	// The arena is reusable after Release.
	b := a.Bytes(32)
	require.Len(t, b, 32)
	a.Release()
}

// TestArena_MemorySize verifies MemorySize counts whole blocks, not just
// handed-out bytes.
func TestArena_MemorySize(t *testing.T) {
	var a Arena
	defer a.Release()

	a.AllocUninit(100, 1)
	s := a.Stats()
	assert.Equal(t, s.Reserved, a.MemorySize())
	assert.GreaterOrEqual(t, a.MemorySize(), uintptr(FirstBlockSize))
	assert.Greater(t, a.MemorySize(), s.Used)
}

// TestArena_Generation verifies the counter moves on Clear and Release only.
func TestArena_Generation(t *testing.T) {
	var a Arena

	g := a.Generation()
	a.AllocUninit(16, 8)
	assert.Equal(t, g, a.Generation(), "allocation does not change the generation")

	a.Clear()
	assert.NotEqual(t, g, a.Generation())

	g = a.Generation()
	a.Release()
	assert.NotEqual(t, g, a.Generation())
}

// TestArena_TrimEstimate verifies the high-water mark can be lowered but
// not raised.
func TestArena_TrimEstimate(t *testing.T) {
	var a Arena
	defer a.Release()

	for range 100 {
		a.AllocUninit(4096, 8)
	}
	a.Clear()
	high := a.Stats().SizeEstimateHigh
	require.NotZero(t, high)

	a.TrimEstimate(high * 2)
	assert.Equal(t, high, a.Stats().SizeEstimateHigh)

	a.TrimEstimate(high / 2)
	assert.Equal(t, high/2, a.Stats().SizeEstimateHigh)
}

// TestArena_FailInvokesHandler verifies the no-memory path runs the
// registered handler and panics with a typed error.
func TestArena_FailInvokesHandler(t *testing.T) {
	var a Arena

	var handled uintptr
	a.SetNoMemoryHandler(func(size uintptr) { handled = size })

	defer func() {
		r := recover()
		require.NotNil(t, r, "Fail should panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value should be an error")
		assert.True(t, errors.Is(err, ErrNoMemory))
		assert.Equal(t, uintptr(42), handled)
	}()
	a.Fail(42)
}
