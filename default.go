package hmm

import (
	"sync"
	"unsafe"
)

// defaultAllocator is the process-wide instance package-level Malloc,
// Free, Calloc and Realloc operate on. It is constructed lazily, on
// first use, guarded by a sync.Once rather than package-init — the
// idiomatic Go equivalent of deferring initialization to the first
// mutex acquisition.
var (
	defaultOnce  sync.Once
	defaultAlloc *Allocator
)

func defaultInstance() *Allocator {
	defaultOnce.Do(func() {
		// A reservation failure here is rare (address-space exhaustion)
		// and leaves defaultAlloc nil; every package-level op then
		// degrades to nil/no-op, consistent with a lock-acquisition
		// failure per spec.md §5.
		defaultAlloc, _ = New(0)
	})
	return defaultAlloc
}

// Malloc allocates size bytes from the default allocator. See
// (*Allocator).Malloc.
func Malloc(size uintptr) unsafe.Pointer {
	a := defaultInstance()
	if a == nil {
		return nil
	}
	return a.Malloc(size)
}

// Free releases ptr, previously returned by Malloc, Calloc or Realloc on
// the default allocator. See (*Allocator).Free.
func Free(ptr unsafe.Pointer) {
	a := defaultInstance()
	if a == nil {
		return
	}
	a.Free(ptr)
}

// Calloc allocates and zeroes space for n elements of size bytes each
// from the default allocator. See (*Allocator).Calloc.
func Calloc(n, size uintptr) unsafe.Pointer {
	a := defaultInstance()
	if a == nil {
		return nil
	}
	return a.Calloc(n, size)
}

// Realloc resizes the default allocator's allocation at ptr. See
// (*Allocator).Realloc.
func Realloc(ptr unsafe.Pointer, size uintptr) unsafe.Pointer {
	a := defaultInstance()
	if a == nil {
		return nil
	}
	return a.Realloc(ptr, size)
}
