// Package hmm — allocator core: size normalization, split, coalesce,
// break-grow on shortage, break-shrink on surplus, and the four public
// operations. A single mutex per Allocator serializes all of it.
package hmm

import (
	"sync"
	"unsafe"
)

// Allocator is a single arena's worth of heap state: the chunk list, the
// freelist index, the free-size accumulator and the break it grows
// into. The zero value is not usable; construct with New.
type Allocator struct {
	mu sync.Mutex

	brk       *brk
	list      chunkList
	freelist  freelist
	arenaUnit uintptr
}

// New creates an Allocator that grows in units of arenaUnit bytes. A
// zero arenaUnit selects defaultArenaUnit (8 MiB), matching the source's
// ALLOCATED_BYTES.
func New(arenaUnit uintptr) (*Allocator, error) {
	if arenaUnit == 0 {
		arenaUnit = defaultArenaUnit
	}
	b, err := newBrk()
	if err != nil {
		return nil, err
	}
	return &Allocator{brk: b, arenaUnit: arenaUnit}, nil
}

// Malloc returns a pointer to a freshly allocated, 8-byte-aligned
// payload of at least size bytes, or nil on failure.
func (a *Allocator) Malloc(size uintptr) unsafe.Pointer {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.malloc(size)
}

func (a *Allocator) malloc(size uintptr) unsafe.Pointer {
	size = normalize(size)
	c, err := a.getFreeChunk(size)
	if err != nil || c == nil {
		return nil
	}
	c.isFree = false
	return c.payload()
}

// Free releases the payload pointed to by ptr. A nil ptr or a pointer
// already free is a silent no-op.
func (a *Allocator) Free(ptr unsafe.Pointer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.doFree(ptr)
}

func (a *Allocator) doFree(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	c := chunkFromPayload(ptr)
	if c.isFree {
		return
	}
	c.isFree = true

	switch {
	case c.prev != nil && c.prev.isFree:
		a.coalesce(c.prev)
		a.freelist.add(c.prev)
	case c.next != nil && c.next.isFree:
		a.coalesce(c)
		a.freelist.add(c)
	default:
		a.freelist.add(c)
	}

	a.maybeShrink()
}

// Calloc allocates space for n elements of size bytes each, zeroed. It
// returns nil without touching the heap if n*size overflows a uintptr.
func (a *Allocator) Calloc(n, size uintptr) unsafe.Pointer {
	a.mu.Lock()
	defer a.mu.Unlock()

	if size != 0 && n > ^uintptr(0)/size {
		return nil
	}
	total := n * size

	ptr := a.malloc(total)
	if ptr == nil {
		return nil
	}
	c := chunkFromPayload(ptr)
	clearBytes(ptr, c.size)
	return ptr
}

// Realloc resizes the allocation at ptr to size bytes, preserving the
// leading min(old, new) bytes. A nil ptr behaves as Malloc; a size that
// rounds to zero frees ptr and returns a fresh minimum-size allocation;
// a size equal to the current payload size returns ptr unchanged.
// Resize never happens in place.
func (a *Allocator) Realloc(ptr unsafe.Pointer, size uintptr) unsafe.Pointer {
	a.mu.Lock()
	defer a.mu.Unlock()

	if ptr == nil {
		return a.malloc(size)
	}
	if size == 0 {
		a.doFree(ptr)
		return a.malloc(0)
	}

	c := chunkFromPayload(ptr)
	newSize := normalize(size)
	if newSize == c.size {
		return ptr
	}

	newPtr := a.malloc(size)
	if newPtr == nil {
		return nil
	}
	newC := chunkFromPayload(newPtr)
	n := c.size
	if newC.size < n {
		n = newC.size
	}
	copyBytes(newPtr, ptr, n)
	a.doFree(ptr)
	return newPtr
}

// getFreeChunk returns a free chunk with payload capacity of at least
// size bytes, splitting or growing the break as needed. A chunk found by
// the scan is split down to exactly size bytes only when it exceeds
// size+headerSize; otherwise it is returned whole.
func (a *Allocator) getFreeChunk(size uintptr) (*chunkHeader, error) {
	if c := a.freelist.takeExact(size); c != nil {
		return c, nil
	}

	for cur := a.list.tail; cur != nil; cur = cur.prev {
		if !cur.isFree {
			continue
		}
		if cur.size < size {
			a.freelist.add(cur)
			continue
		}
		a.freelist.remove(cur)
		if cur.size > size+headerSize {
			a.split(cur, size)
		}
		return cur, nil
	}

	bytes := growthFor(size, a.arenaUnit)
	addr, err := a.brk.extend(bytes)
	if err != nil {
		return nil, err
	}

	if a.list.tail != nil && a.list.tail.isFree {
		a.freelist.remove(a.list.tail)
		a.list.tail.size += bytes
		a.list.tail.next = nil
		return a.getFreeChunk(size)
	}

	nc := chunkAt(addr)
	*nc = chunkHeader{isFree: true, size: bytes - headerSize}
	a.list.appendTail(nc)
	a.freelist.add(nc)
	return a.getFreeChunk(size)
}

// split carves a chunk of exactly size bytes out of the front of c,
// leaving the remainder as a new free chunk spliced in immediately
// after c.
func (a *Allocator) split(c *chunkHeader, size uintptr) {
	remainderAddr := chunkAddr(c) + headerSize + size
	remainder := chunkAt(remainderAddr)
	*remainder = chunkHeader{isFree: true, size: c.size - size - headerSize}
	a.list.insertAfter(c, remainder)
	c.size = size
	a.freelist.add(remainder)
}

// maybeShrink returns a tail-anchored run of free chunks to the OS once
// the freelist accumulator reaches a full arena unit, matching the
// source's shrink gate.
func (a *Allocator) maybeShrink() {
	if a.freelist.freeBytes < a.arenaUnit {
		return
	}

	var total uintptr
	cur := a.list.tail
	for cur != nil && cur.isFree {
		total += cur.size + headerSize
		a.freelist.remove(cur)
		cur = cur.prev
	}
	if total < a.arenaUnit {
		return
	}

	a.list.truncateAfter(cur)
	a.brk.shrink(total)
}

// growthFor computes the number of bytes to request from the break to
// satisfy a shortfall of size bytes, rounded up to a whole number of
// arena units.
func growthFor(size, arenaUnit uintptr) uintptr {
	return ((size + headerSize + arenaUnit) / arenaUnit) * arenaUnit
}
