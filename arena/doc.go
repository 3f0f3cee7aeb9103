// Package arena implements a region allocator: a linked chain of coarse
// memory blocks from which small allocations are bump-carved and freed only
// in bulk.
//
// # Overview
//
// An Arena owns a chain of blocks obtained from the operating system. Each
// allocation advances a cursor within the newest block; when the block runs
// out, the arena starts a new one sized by a power-of-two growth policy that
// anticipates future demand. Instead of freeing allocations individually,
// the caller frees everything at once with Clear or Release.
//
// The typical lifecycle is:
//
//  1. Declare an Arena. The zero value is ready to use.
//  2. Allocate from it, directly (Alloc, Bytes, New, Slice) or through the
//     container packages astring, alist, and ahash.
//  3. Call Clear when the current data is no longer needed but more
//     allocations will follow. The largest block is kept for reuse and the
//     arena remembers how much memory the cycle needed, so the next cycle
//     usually runs inside a single block.
//  4. Call Release when done with the arena entirely.
//
// # Block sizing
//
// Block sizes are always a power of two and at least FirstBlockSize. When a
// request does not fit the current block, the arena picks the smallest power
// of two covering the request, the double of the current block's size (if
// one exists), and 125% of the highest per-cycle demand it has observed.
// This keeps the number of block allocations logarithmic in the total bytes
// requested and lets the arena self-tune to the application's working set
// across Clear cycles.
//
// # Failure policy
//
// The arena cannot report "no capacity" to its callers, so an unsatisfiable
// allocation is fatal: after invoking an optional handler registered with
// SetNoMemoryHandler, the arena panics with a *NoMemoryError. A host that
// wants to treat exhaustion as recoverable can recover the panic and inspect
// it with errors.Is(err, ErrNoMemory).
//
// # Concurrency
//
// An Arena is single-threaded. Containers backed by an arena must not be
// used after that arena is cleared or released; this is a caller obligation,
// detected on a best-effort basis through the arena's generation counter.
package arena
