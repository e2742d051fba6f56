package hmm

// coalesce merges start with every immediately following free chunk, in
// address order, stopping at the first non-free chunk or the end of the
// list. Every chunk visited along the way — including start itself — is
// removed from the freelist index; coalesce does not re-add the merged
// result, leaving that decision to the caller.
func (a *Allocator) coalesce(start *chunkHeader) {
	if start == nil {
		return
	}
	current := start
	var merged *chunkHeader
	var total uintptr
	for current != nil && current.isFree {
		if merged == nil {
			merged = current
		} else {
			total += current.size + headerSize
		}
		a.freelist.remove(current)
		current = current.next
	}
	if total == 0 {
		return
	}
	merged.size += total
	merged.next = current
	if current != nil {
		current.prev = merged
	} else {
		a.list.tail = merged
		merged.next = nil
	}
}
