// Package hmm implements a user-space general-purpose heap allocator.
//
// # Overview
//
// gohmm replaces the four classic allocation primitives — allocate, free,
// zero-allocate, resize — for a single process. It manages a contiguous
// region grown on demand via an mmap-backed break, in-band chunk headers,
// splitting and coalescing, and a bounded size-class freelist index for
// fast exact-size reuse.
//
//	a, err := hmm.New(0) // 0 selects the default 8 MiB growth unit
//	if err != nil {
//		panic(err)
//	}
//
//	p := a.Malloc(128)
//	defer a.Free(p)
//
// Package-level Malloc/Free/Calloc/Realloc operate on a lazily
// constructed default instance, for callers that want one shared arena
// without managing an *Allocator value themselves:
//
//	p := hmm.Malloc(64)
//	hmm.Free(p)
//
// # Thread Safety
//
// Every public operation on an *Allocator is serialized by a single
// mutex. There is no per-arena concurrency beyond that lock, and no
// reentrancy: calling back into the same Allocator while already holding
// its lock (e.g. from a finalizer) deadlocks.
//
// # Memory Layout
//
// Each chunk is a header immediately followed by its payload, tiled
// end-to-end over a region reserved once via mmap and committed
// incrementally via mprotect as the break is extended. Free chunks are
// threaded into both the address-ordered chunk list and, when their
// exact size fits, a fixed-size freelist bucket array.
//
// # Diagnostics
//
// Dump and Stats expose the chunk list and aggregate counters for
// debugging and tests. Neither is required for correctness and neither
// performs any I/O on its own.
package hmm
