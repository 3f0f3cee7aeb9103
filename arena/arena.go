package arena

import (
	"unsafe"

	"github.com/joshuapare/arenakit/internal/memblock"
	"github.com/joshuapare/arenakit/internal/pow2"
)

const (
	// FirstBlockSize is the smallest block the arena requests from the
	// operating system. Every block size is a power of two at least this
	// large.
	FirstBlockSize = 4096

	// maxAlign is the coarsest alignment the size estimator accounts for.
	// Allocations with a larger alignment can make the estimate undershoot.
	maxAlign = 16

	maxInt = int(^uint(0) >> 1)
)

// block is one link in the arena's chain, newest first. Once a block is
// superseded it is only ever freed, never partially reused.
type block struct {
	prev *block
	buf  []byte

	// off is the start of the free space within buf.
	off uintptr
}

// alignedOff returns the offset of the first byte in b at or after b.off
// whose address has the given alignment. The result can exceed len(b.buf).
func (b *block) alignedOff(align uintptr) uintptr {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(b.buf)))
	return pow2.Align(base+b.off, align) - base
}

// Arena is a region allocator. The zero value is an empty arena ready for
// use. An Arena must not be copied after first use and is not safe for
// concurrent use.
type Arena struct {
	block *block

	// lastAlloc is the most recent allocation in the current block, and
	// lastOff its offset. Valid only until the next allocation or block
	// rotation; TryResize uses them for in-place grow/shrink.
	lastAlloc unsafe.Pointer
	lastOff   uintptr

	// sizeEstimate approximates the size a single block would need in order
	// to hold every allocation made since the last Clear. Allocations in the
	// current block are not folded in until the block is done.
	sizeEstimate uintptr

	// sizeEstimateHigh is the highest remembered sizeEstimate. The arena
	// uses it to size the first block of the next cycle. Callers may lower
	// it through TrimEstimate to stop a one-time spike from pinning memory
	// usage high.
	sizeEstimateHigh uintptr

	// gen counts Clear and Release calls. Containers capture it at creation
	// to detect use after the backing memory was recycled.
	gen uint64

	noMemory func(size uintptr)
	hashKey  uint64
}

// AllocUninit allocates size bytes with the given alignment and returns a
// pointer to uninitialized memory. align must be a power of two. Returns nil
// when size is 0.
func (a *Arena) AllocUninit(size, align uintptr) unsafe.Pointer {
	if size == 0 {
		return nil
	}
	b := a.block
	if b == nil {
		a.preAlloc(size, align)
		b = a.block
	}
	off := b.alignedOff(align)
	if off > uintptr(len(b.buf)) || uintptr(len(b.buf))-off < size {
		a.preAlloc(size, align)
		b = a.block
		off = b.alignedOff(align)
	}
	b.off = off + size
	p := unsafe.Pointer(&b.buf[off])
	a.lastAlloc = p
	a.lastOff = off
	return p
}

// Alloc is like AllocUninit but the returned memory is zeroed.
func (a *Arena) Alloc(size, align uintptr) unsafe.Pointer {
	p := a.AllocUninit(size, align)
	if p != nil {
		clear(unsafe.Slice((*byte)(p), size))
	}
	return p
}

// BytesUninit allocates an uninitialized byte slice of length n.
// Returns nil when n <= 0.
func (a *Arena) BytesUninit(n int) []byte {
	if n <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(a.AllocUninit(uintptr(n), 1)), n)
}

// Bytes allocates a zero-filled byte slice of length n.
// Returns nil when n <= 0.
func (a *Arena) Bytes(n int) []byte {
	b := a.BytesUninit(n)
	clear(b)
	return b
}

// TryResize attempts to grow or shrink a previous allocation in place,
// without moving it. It succeeds only when p is the most recent allocation
// in the current block and the block has room for newSize bytes. Any pointer
// may be passed safely; a false return means nothing changed. Grown bytes
// are not zeroed.
//
// When shrinking and TryResize returns false, callers are encouraged to use
// the smaller size anyway so behavior does not depend on the order of
// earlier arena operations.
func (a *Arena) TryResize(p unsafe.Pointer, newSize uintptr) bool {
	b := a.block
	if b == nil || p == nil || p != a.lastAlloc {
		return false
	}
	if uintptr(len(b.buf))-a.lastOff < newSize {
		return false
	}
	b.off = a.lastOff + newSize
	return true
}

// Reserve ensures the current block can satisfy a future allocation of at
// least size bytes with the given alignment, and returns the maximum size
// currently satisfiable with that alignment. Formatting helpers use it to
// claim a scratch buffer spanning the block remainder before writing.
func (a *Arena) Reserve(size, align uintptr) uintptr {
	return a.preAlloc(size, align)
}

// preAlloc makes room for an allocation of the given size and alignment,
// rotating to a new block if needed, and returns the block remainder.
func (a *Arena) preAlloc(size, align uintptr) uintptr {
	if b := a.block; b != nil {
		off := b.alignedOff(align)
		if off <= uintptr(len(b.buf)) && uintptr(len(b.buf))-off >= size {
			return uintptr(len(b.buf)) - off
		}
	}

	// Minimum block size covering the request from any block base address.
	minSize := size + align
	if minSize < size {
		a.Fail(size)
	}

	// Anticipate demand: double the current block, or size the first block
	// of a cycle 25% above the highest demand remembered.
	var anticipation uintptr
	if a.block != nil {
		anticipation = uintptr(len(a.block.buf)) + 1
	} else {
		anticipation = a.sizeEstimateHigh + a.sizeEstimateHigh>>2
	}
	if minSize < anticipation {
		minSize = anticipation
	}

	blockSize := pow2.Ceil(minSize, FirstBlockSize)
	if blockSize == 0 || blockSize > uintptr(maxInt) {
		a.Fail(size)
	}
	a.startNewBlock(blockSize)

	b := a.block
	return uintptr(len(b.buf)) - b.alignedOff(align)
}

// startNewBlock obtains a fresh block of exactly size bytes and makes it
// current. The previous block is folded into the size estimate and kept on
// the chain until Clear or Release.
func (a *Arena) startNewBlock(size uintptr) {
	a.doneWithBlock()
	buf, err := memblock.Alloc(int(size))
	if err != nil {
		a.Fail(size)
	}
	a.block = &block{prev: a.block, buf: buf}
	a.lastAlloc = nil
	a.lastOff = 0
}

// doneWithBlock folds the current block's usage into the size estimate.
func (a *Arena) doneWithBlock() {
	b := a.block
	if b == nil {
		return
	}
	a.sizeEstimate = pow2.Align(a.sizeEstimate, maxAlign) + b.off
	if a.sizeEstimateHigh < a.sizeEstimate {
		a.sizeEstimateHigh = a.sizeEstimate
	}
}

// Clear frees every block except the most recent one, which is kept with its
// cursor reset, anticipating that the next cycle of allocations needs about
// as much memory as the last. Data previously allocated from the arena must
// not be used afterwards.
func (a *Arena) Clear() {
	a.gen++
	b := a.block
	if b == nil {
		return
	}
	a.doneWithBlock()
	a.sizeEstimate = 0
	freeChain(b.prev)
	b.prev = nil
	b.off = 0
	a.lastAlloc = nil
	a.lastOff = 0
}

// Release frees every block, returning the arena to its initial empty state.
// The demand estimate survives, so an arena that is released and reused
// starts with an appropriately sized first block.
func (a *Arena) Release() {
	a.gen++
	a.doneWithBlock()
	a.sizeEstimate = 0
	freeChain(a.block)
	a.block = nil
	a.lastAlloc = nil
	a.lastOff = 0
}

func freeChain(b *block) {
	for b != nil {
		prev := b.prev
		_ = memblock.Free(b.buf)
		b.buf = nil
		b = prev
	}
}

// MemorySize returns the total number of bytes the arena has reserved from
// the operating system, including unused space in its blocks.
func (a *Arena) MemorySize() uintptr {
	var size uintptr
	for b := a.block; b != nil; b = b.prev {
		size += uintptr(len(b.buf))
	}
	return size
}

// Generation returns the arena's clear/release counter. Containers capture
// it at creation and compare it before touching arena-backed memory.
func (a *Arena) Generation() uint64 {
	return a.gen
}

// TrimEstimate lowers the remembered demand high-water mark to at most max.
// Call it periodically if a one-time spike should not keep future first
// blocks large.
func (a *Arena) TrimEstimate(max uintptr) {
	if a.sizeEstimateHigh > max {
		a.sizeEstimateHigh = max
	}
}

// Stats is a point-in-time snapshot of an arena's memory accounting.
type Stats struct {
	// Blocks is the number of blocks on the chain.
	Blocks int

	// Reserved is the total bytes obtained from the operating system.
	Reserved uintptr

	// Used is the bytes handed out across all blocks, including alignment
	// padding.
	Used uintptr

	// SizeEstimate is the running estimate of the current cycle's demand,
	// excluding the current block.
	SizeEstimate uintptr

	// SizeEstimateHigh is the highest remembered per-cycle demand.
	SizeEstimateHigh uintptr
}

// Stats returns a snapshot of the arena's memory accounting.
func (a *Arena) Stats() Stats {
	s := Stats{
		SizeEstimate:     a.sizeEstimate,
		SizeEstimateHigh: a.sizeEstimateHigh,
	}
	for b := a.block; b != nil; b = b.prev {
		s.Blocks++
		s.Reserved += uintptr(len(b.buf))
		s.Used += b.off
	}
	return s
}
