package hmm

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentMallocFree exercises the single mutex's serialization
// guarantee from spec.md §5: many goroutines hammering the same
// Allocator must never corrupt the chunk list or freelist index.
func TestConcurrentMallocFree(t *testing.T) {
	a := newTestAllocator(t)

	const goroutines = 32
	const perGoroutine = 200

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				size := uintptr((seed+i)%256 + 1)
				p := a.Malloc(size)
				if p == nil {
					continue
				}
				a.Free(p)
			}
		}(g)
	}
	wg.Wait()

	assertInvariants(t, a)
}

// TestConcurrentAllocatorsAreIndependent confirms two Allocator
// instances never share chunk-list or freelist state: spec.md's
// Non-goals exclude multi-arena sharing, but independent single-arena
// instances must not interfere with each other.
func TestConcurrentAllocatorsAreIndependent(t *testing.T) {
	a1 := newTestAllocator(t)
	a2 := newTestAllocator(t)

	p1 := a1.Malloc(64)
	p2 := a2.Malloc(64)
	require.NotNil(t, p1)
	require.NotNil(t, p2)

	assert.Equal(t, 2, len(a1.Dump()), "the allocation plus its free remainder")
	assert.Equal(t, 2, len(a2.Dump()), "the allocation plus its free remainder")
	assert.NotEqual(t, a1.brk.base, a2.brk.base)
}
