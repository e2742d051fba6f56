package hmm

// ChunkInfo is one row of a chunk-list traversal: index, address,
// free/allocated state and payload size, in address order.
type ChunkInfo struct {
	Index   int
	Address uintptr
	Free    bool
	Size    uintptr
}

// Dump walks the chunk list in address order and returns a snapshot of
// every chunk. This is a diagnostic convenience, not required for
// correctness, and performs no I/O itself.
func (a *Allocator) Dump() []ChunkInfo {
	a.mu.Lock()
	defer a.mu.Unlock()

	var out []ChunkInfo
	i := 0
	for c := a.list.head; c != nil; c = c.next {
		i++
		out = append(out, ChunkInfo{
			Index:   i,
			Address: chunkAddr(c),
			Free:    c.isFree,
			Size:    c.size,
		})
	}
	return out
}

// Stats is a snapshot of allocator-wide bookkeeping.
type Stats struct {
	FreeBytes  uintptr // sum of size over chunks currently in the freelist index
	HeaderSize uintptr // fixed per-chunk metadata overhead
	ArenaUnit  uintptr // break growth/shrink unit for this instance
	NumChunks  int     // number of chunks currently in the chunk list
}

// Stats returns a snapshot of the allocator's internal counters.
func (a *Allocator) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := 0
	for c := a.list.head; c != nil; c = c.next {
		n++
	}
	return Stats{
		FreeBytes:  a.freelist.freeBytes,
		HeaderSize: headerSize,
		ArenaUnit:  a.arenaUnit,
		NumChunks:  n,
	}
}

// BreakAddr returns the current break address: base of the mmap
// reservation plus bytes committed so far. Diagnostic only.
func (a *Allocator) BreakAddr() uintptr {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.brk.addr()
}
