// Package ahash implements a growable, open-addressing hash table stored in
// an arena.
//
// # Layout
//
// A Table keeps its items in a null-terminated array with the same layout as
// an alist: capacity+1 slots, the slot past the logical end always zero. A
// side probe table of capacity*2 slots maps hashes to item indexes: the
// first half holds the 32-bit key hash of each occupied slot (0 marks an
// empty slot, 1 a tombstone; the hash functions never produce either), and
// the same position in the second half holds the index of the item. The
// capacity is always a power of two.
//
// # Deletion and tombstones
//
// Delete marks the probe slot a tombstone so later probe sequences stay
// intact, and fills the hole in the item array by moving the last item into
// it, patching the moved item's probe entry. Deletion is O(1) at the price
// of insertion-order stability. Tombstones silently consume probe capacity,
// so EnsureSpace grows toward 1.5x the needed length and rebuilds the probe
// table into a reusable spare buffer whenever tombstones remain, rather
// than growing just enough and compacting on every insert-after-delete.
package ahash

import (
	"github.com/joshuapare/arenakit/arena"
)

// SmallTableSize is the capacity used when New is given 0.
const SmallTableSize = 16

const (
	slotEmpty     = 0
	slotTombstone = 1

	// maxCapacity is the largest item capacity supported; it keeps every
	// probe-table index within the 32-bit hash width.
	maxCapacity = uint64(1) << 30
)

// Table is an open-addressing hash table of T carved from an arena. Use New
// to create one. The zero value is not usable.
type Table[T any] struct {
	arena *arena.Arena
	key   KeySpec[T]
	items []T      // capacity+1 slots; items[n] is the zero sentinel
	table []uint32 // active probe table: capacity*2 hashes, then capacity*2 indexes
	spare []uint32 // reusable buffer for tombstone compaction
	n     int
	tombs int
	gen   uint64
}

// New creates a table able to hold capacity items without resizing, keyed
// per spec. The capacity is rounded up to a power of two; 0 selects
// SmallTableSize.
func New[T any](a *arena.Arena, capacity int, spec KeySpec[T]) *Table[T] {
	if spec.view == nil {
		panic("ahash: KeySpec must be built with OpaqueKey, StringKey, or BytesKey")
	}
	c := normCap(a, capacity)
	t := &Table[T]{arena: a, key: spec, gen: a.Generation()}
	t.items = arena.SliceUninit[T](a, c+1)
	var zero T
	t.items[0] = zero
	t.table = arena.Slice[uint32](a, c*4)
	return t
}

// normCap rounds requested up to a power of two, failing fatally when the
// hash width cannot address it.
func normCap(a *arena.Arena, requested int) int {
	if requested <= 0 {
		requested = SmallTableSize
	}
	c := 1
	for c < requested {
		if uint64(c) >= maxCapacity {
			a.Fail(uintptr(requested))
		}
		c <<= 1
	}
	return c
}

func (t *Table[T]) check() {
	if t.gen != t.arena.Generation() {
		panic(arena.ErrStaleHandle)
	}
}

// Len returns the number of items stored.
func (t *Table[T]) Len() int {
	return t.n
}

// Cap returns the number of items the table can hold without growing.
func (t *Table[T]) Cap() int {
	return len(t.items) - 1
}

// Tombstones returns the number of probe slots consumed by deletions since
// the probe table was last rebuilt.
func (t *Table[T]) Tombstones() int {
	return t.tombs
}

// View returns the stored items in their current array order. The slice
// aliases arena memory and is valid until the next structural mutation.
func (t *Table[T]) View() []T {
	t.check()
	return t.items[:t.n:t.n]
}

// Terminated returns the stored items plus the zero sentinel.
func (t *Table[T]) Terminated() []T {
	t.check()
	return t.items[: t.n+1 : t.n+1]
}

// Find looks for an item whose key equals probe's key. It returns a pointer
// to the stored item, or nil if there is none. The pointer is valid until
// the next structural mutation.
func (t *Table[T]) Find(probe *T) *T {
	t.check()
	v := t.key.view(probe)
	h := t.hashView(v)
	capacity := uint32(t.Cap())
	mask := capacity*2 - 1
	slot := h & mask
	for t.table[slot] != slotEmpty {
		if t.table[slot] == h {
			idx := t.table[capacity*2+slot]
			item := &t.items[idx]
			if equalView(t.key.kind, v, t.key.view(item)) {
				return item
			}
		}
		slot = (slot + 1) & mask
	}
	return nil
}

// FindOrUpdate looks for an item with the same key as item. On a hit it
// returns the stored item untouched and found=true. On a miss it inserts a
// copy of item, growing or compacting first if there is no free item slot or
// if the insert would consume the probe table's last empty slot, and returns
// the new item and found=false. The pointer is valid until the next
// structural mutation.
func (t *Table[T]) FindOrUpdate(item *T) (*T, bool) {
	t.check()
	// The probe loops in Find, Delete, and the insert below stop only on an
	// empty slot, so every insert must leave at least one.
	if t.n >= t.Cap() || t.n+t.tombs >= t.Cap()*2-1 {
		t.EnsureSpace(1)
	}

	v := t.key.view(item)
	h := t.hashView(v)
	capacity := uint32(t.Cap())
	mask := capacity*2 - 1
	slot := h & mask
	for t.table[slot] != slotEmpty {
		if t.table[slot] == h {
			idx := t.table[capacity*2+slot]
			other := &t.items[idx]
			if equalView(t.key.kind, v, t.key.view(other)) {
				return other, true
			}
		}
		slot = (slot + 1) & mask
	}

	idx := uint32(t.n)
	t.n++
	t.table[slot] = h
	t.table[capacity*2+slot] = idx
	t.items[idx] = *item
	var zero T
	t.items[t.n] = zero
	return &t.items[idx], false
}

// Update copies item into the table, overwriting an existing item with the
// same key completely, and returns a pointer to the stored copy.
func (t *Table[T]) Update(item *T) *T {
	stored, found := t.FindOrUpdate(item)
	if found {
		*stored = *item
	}
	return stored
}

// Delete removes the item whose key equals probe's key. It reports whether
// an item was removed; deleting an absent key is not an error. The vacated
// probe slot becomes a tombstone and the last item in the item array moves
// into the hole, so item order is not stable across deletes.
func (t *Table[T]) Delete(probe *T) bool {
	t.check()
	v := t.key.view(probe)
	h := t.hashView(v)
	capacity := uint32(t.Cap())
	mask := capacity*2 - 1
	half := capacity * 2
	slot := h & mask
	for t.table[slot] != slotEmpty {
		if t.table[slot] == h {
			idx := t.table[half+slot]
			if equalView(t.key.kind, v, t.key.view(&t.items[idx])) {
				t.removeAt(slot, idx)
				return true
			}
		}
		slot = (slot + 1) & mask
	}
	return false
}

// removeAt tombstones the probe slot and fills the item hole with the last
// item, patching the moved item's probe entry to its new index.
func (t *Table[T]) removeAt(slot, idx uint32) {
	capacity := uint32(t.Cap())
	mask := capacity*2 - 1
	half := capacity * 2

	t.table[slot] = slotTombstone
	t.tombs++

	last := uint32(t.n - 1)
	if idx != last {
		t.items[idx] = t.items[last]
		mh := t.hashView(t.key.view(&t.items[idx]))
		ms := mh & mask
		for t.table[ms] != mh || t.table[half+ms] != last {
			ms = (ms + 1) & mask
		}
		t.table[half+ms] = idx
	}

	t.n--
	var zero T
	t.items[t.n] = zero
}

// EnsureSpace guarantees n more items can be inserted without a grow or a
// probe-table rebuild happening mid-batch. The growth target is 1.5x the
// needed length, rounded up to a power of two; the extra headroom keeps
// tombstones from forcing a rebuild after every future delete-then-insert.
// If tombstones remain after any growth, the probe table is rebuilt into the
// spare buffer to reclaim their slots. Afterwards occupied probe slots never
// exceed the capacity, so the batch cannot starve the probe loops of the
// empty slot they terminate on.
func (t *Table[T]) EnsureSpace(n int) {
	t.check()
	if n < 0 {
		n = 0
	}
	target := t.n + n
	if target < t.n {
		t.arena.Fail(uintptr(n))
	}
	target += target / 2
	if target > t.Cap() {
		t.grow(normCap(t.arena, target))
	}
	if t.tombs > 0 {
		t.compact()
	}
}

// ResizeCapacity grows the table's capacity to at least capacity, rounded up
// to a power of two. The table never shrinks and its memory is not returned
// to the arena.
func (t *Table[T]) ResizeCapacity(capacity int) {
	t.check()
	if capacity < t.n {
		capacity = t.n
	}
	c := normCap(t.arena, capacity)
	if c > t.Cap() {
		t.grow(c)
	}
}

// Copy creates a new table with the same contents and a capacity of at
// least capacity. The new probe table is rebuilt by redistributing the
// stored hash/index pairs; item keys are never rehashed.
func (t *Table[T]) Copy(capacity int) *Table[T] {
	t.check()
	if capacity < t.n {
		capacity = t.n
	}
	c := normCap(t.arena, capacity)
	out := &Table[T]{arena: t.arena, key: t.key, n: t.n, gen: t.arena.Generation()}
	out.items = arena.SliceUninit[T](t.arena, c+1)
	copy(out.items, t.items[:t.n+1])
	out.table = arena.Slice[uint32](t.arena, c*4)
	redistribute(t.table, t.Cap(), out.table, c)
	return out
}

// grow relocates the items and the probe table into freshly sized storage.
// Redistribution drops tombstones, so the rebuilt probe table is clean.
func (t *Table[T]) grow(capacity int) {
	old := t.items
	items := arena.SliceUninit[T](t.arena, capacity+1)
	copy(items, t.items[:t.n+1])
	table := arena.Slice[uint32](t.arena, capacity*4)
	redistribute(t.table, t.Cap(), table, capacity)
	t.items = items
	t.table = table
	t.spare = nil // sized for the old capacity; reallocated on demand
	t.tombs = 0

	// Retire the old items: stale views read an empty table.
	var zero T
	old[0] = zero
}

// compact rebuilds the probe table into the spare buffer to reclaim
// tombstoned slots, then swaps which buffer is active. After the first
// rebuild at a given capacity this allocates nothing.
func (t *Table[T]) compact() {
	c := t.Cap()
	if t.spare == nil {
		t.spare = arena.Slice[uint32](t.arena, c*4)
	} else {
		clear(t.spare)
	}
	redistribute(t.table, c, t.spare, c)
	t.table, t.spare = t.spare, t.table
	t.tombs = 0
}

// redistribute rehashes nothing: it masks each occupied slot's stored hash
// into dst and carries the item index across. Empty slots and tombstones
// are skipped.
func redistribute(src []uint32, srcCap int, dst []uint32, dstCap int) {
	mask := uint32(dstCap*2 - 1)
	srcHalf := srcCap * 2
	dstHalf := uint32(dstCap * 2)
	for s := range srcHalf {
		h := src[s]
		if h == slotEmpty || h == slotTombstone {
			continue
		}
		slot := h & mask
		for dst[slot] != slotEmpty {
			slot = (slot + 1) & mask
		}
		dst[slot] = h
		dst[dstHalf+slot] = src[srcHalf+s]
	}
}
