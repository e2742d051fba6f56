package hmm

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// defaultArenaUnit is the default unit requested from the break on every grow,
// matching the source's ALLOCATED_BYTES (8 MiB).
const defaultArenaUnit = 8 << 20

// reservationBytes is the size of the virtual address range reserved up
// front for a brk's entire lifetime. The reservation is purely virtual:
// the kernel backs pages with physical memory only once extend commits
// them via mprotect, so this costs no real memory until touched.
const reservationBytes = 64 << 30 // 64 GiB

// brk emulates a classic sbrk-style data segment break over a single
// anonymous mmap reservation. Emulating the break this way, rather than
// asking the OS for a real brk, keeps every extension contiguous with
// the last without ever relocating chunks already handed out — the
// precondition spec.md calls "exclusive control of the break."
type brk struct {
	region []byte  // the full reservation, PROT_NONE beyond top
	base   uintptr // address of region[0]
	top    uintptr // offset of the current break within region
}

// newBrk reserves the address range a single allocator will grow into.
func newBrk() (*brk, error) {
	region, err := unix.Mmap(-1, 0, reservationBytes,
		unix.PROT_NONE, unix.MAP_ANON|unix.MAP_PRIVATE|unix.MAP_NORESERVE)
	if err != nil {
		return nil, fmt.Errorf("hmm: reserve address space: %w", err)
	}
	return &brk{
		region: region,
		base:   uintptr(unsafe.Pointer(&region[0])),
	}, nil
}

// extend commits n more bytes at the current break and returns the base
// address of the newly available range.
func (b *brk) extend(n uintptr) (uintptr, error) {
	if n == 0 {
		return 0, fmt.Errorf("hmm: extend requires n > 0")
	}
	if b.top+n > uintptr(len(b.region)) {
		return 0, fmt.Errorf("hmm: arena reservation exhausted (want %d more, have %d)", n, uintptr(len(b.region))-b.top)
	}
	if err := unix.Mprotect(b.region[b.top:b.top+n], unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return 0, fmt.Errorf("hmm: commit %d bytes: %w", n, err)
	}
	addr := b.base + b.top
	b.top += n
	return addr, nil
}

// shrink releases the trailing n bytes of the committed break back to
// the operating system. Failures are swallowed: the allocator's own
// bookkeeping is authoritative, and a failed shrink just leaves physical
// pages mapped — mirroring the source's tolerance of a failed sbrk(-n).
func (b *brk) shrink(n uintptr) {
	if n == 0 || n > b.top {
		return
	}
	b.top -= n
	region := b.region[b.top : b.top+n]
	_ = unix.Madvise(region, unix.MADV_DONTNEED)
	_ = unix.Mprotect(region, unix.PROT_NONE)
}

// addr returns the current break address (base + top).
func (b *brk) addr() uintptr {
	return b.base + b.top
}
