package hmm

// freelistBuckets is M = MAX_ARENA_BYTES / ALIGNMENT. It is pinned to
// the default growth unit rather than to a configurable Allocator's
// arenaUnit: the source ties its hash-table bound to the same constant
// it uses for sbrk growth, and a chunk that spans more than one default
// growth unit simply falls outside exact-bucket indexing (see
// bucketOf) — preserved intentionally, not a bug. See DESIGN.md.
const freelistBuckets = defaultArenaUnit / alignment

// bucketOf returns the size-class slot for a payload size, and whether
// that slot exists in the fixed-size bucket array.
func bucketOf(size uintptr) (idx uintptr, ok bool) {
	idx = size/alignment - 1
	return idx, idx < freelistBuckets
}

// freelist is the array-indexed mapping from size-class to a singly
// linked list of free chunks of exactly that payload size, plus the
// running total of bytes currently indexed.
type freelist struct {
	buckets   [freelistBuckets]*chunkHeader
	freeBytes uintptr
}

// add indexes c under its exact size-class bucket. A no-op if c is
// already indexed, nil, or its bucket falls outside the array — such a
// chunk remains reachable only via the chunk-list scan.
func (f *freelist) add(c *chunkHeader) {
	if c == nil || c.isAdded {
		return
	}
	idx, ok := bucketOf(c.size)
	if !ok {
		return
	}
	c.isAdded = true
	f.freeBytes += c.size
	c.nextFree = f.buckets[idx]
	f.buckets[idx] = c
}

// remove unindexes c via a linear scan of its bucket. A no-op if c is
// not currently indexed.
func (f *freelist) remove(c *chunkHeader) {
	if c == nil || !c.isAdded {
		return
	}
	idx, ok := bucketOf(c.size)
	if !ok {
		return
	}
	var prev *chunkHeader
	for cur := f.buckets[idx]; cur != nil; cur = cur.nextFree {
		if cur == c {
			if prev != nil {
				prev.nextFree = cur.nextFree
			} else {
				f.buckets[idx] = cur.nextFree
			}
			cur.isAdded = false
			cur.nextFree = nil
			f.freeBytes -= cur.size
			return
		}
		prev = cur
	}
}

// takeExact pops the head of the bucket for size, or returns nil if that
// bucket is empty or out of range.
func (f *freelist) takeExact(size uintptr) *chunkHeader {
	idx, ok := bucketOf(size)
	if !ok {
		return nil
	}
	c := f.buckets[idx]
	if c == nil {
		return nil
	}
	f.buckets[idx] = c.nextFree
	c.isAdded = false
	c.nextFree = nil
	f.freeBytes -= c.size
	return c
}

// contains reports whether c is currently present in the index.
func (f *freelist) contains(c *chunkHeader) bool {
	return c.isAdded
}
