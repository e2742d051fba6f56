package hmm

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// newTestAllocator returns a fresh Allocator with the default arena unit,
// releasing its mmap reservation when the test ends.
func newTestAllocator(t *testing.T) *Allocator {
	t.Helper()
	return newTestAllocatorUnit(t, 0)
}

// newTestAllocatorUnit is like newTestAllocator but lets the caller pick
// a non-default arena unit, for tests that need to observe grow/shrink
// behavior without allocating real 8 MiB blocks.
func newTestAllocatorUnit(t *testing.T, arenaUnit uintptr) *Allocator {
	t.Helper()
	a, err := New(arenaUnit)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = unix.Munmap(a.brk.region)
	})
	return a
}

// assertInvariants walks a's chunk list and checks P1-P5 from spec.md
// §8 (tiling, link symmetry, freelist-index consistency, the free-size
// accumulator, and alignment). It does not lock a's mutex — callers run
// it from within the same goroutine driving the allocator under test,
// between public operations.
func assertInvariants(t *testing.T, a *Allocator) {
	t.Helper()

	var (
		seenFreeBytes uintptr
		prev          *chunkHeader
	)

	for c := a.list.head; c != nil; c = c.next {
		// P5: alignment.
		require.Zero(t, c.size%alignment, "chunk %#x size %d not aligned", chunkAddr(c), c.size)
		require.Zero(t, chunkAddr(c)%alignment, "chunk %#x address not aligned", chunkAddr(c))

		// P2: link symmetry.
		require.Same(t, prev, c.prev, "chunk %#x prev mismatch", chunkAddr(c))
		if prev != nil {
			require.Same(t, c, prev.next, "chunk %#x not linked from prev", chunkAddr(c))
		}

		// P1: tiling, for every non-tail chunk.
		if c.next != nil {
			require.Equal(t, chunkAddr(c.next), c.end(), "chunk %#x does not tile into its successor", chunkAddr(c))
		} else {
			require.Same(t, a.list.tail, c, "chunk %#x is last but is not list.tail", chunkAddr(c))
		}

		// P3: freelist-index consistency.
		idx, inRange := bucketOf(c.size)
		if c.isAdded {
			require.True(t, c.isFree, "chunk %#x indexed but not free", chunkAddr(c))
			require.True(t, inRange, "chunk %#x indexed but its bucket is out of range", chunkAddr(c))
			found := false
			for cur := a.freelist.buckets[idx]; cur != nil; cur = cur.nextFree {
				if cur == c {
					found = true
					break
				}
			}
			require.True(t, found, "chunk %#x marked isAdded but absent from its bucket", chunkAddr(c))
			seenFreeBytes += c.size
		}

		prev = c
	}
	require.Same(t, a.list.tail, prev, "list.tail does not match the last chunk reached by traversal")

	// P4: free-size accumulator.
	require.Equal(t, seenFreeBytes, a.freelist.freeBytes, "freeBytes accumulator mismatch")
}
