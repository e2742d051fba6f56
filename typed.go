package hmm

import "unsafe"

// AllocT allocates a zeroed T from a and returns a typed pointer into
// the arena. Returns nil if the allocator is out of memory.
//
// The returned pointer is only valid while a is reachable; callers
// holding it across other unsafe code should call runtime.KeepAlive(a).
func AllocT[T any](a *Allocator) *T {
	var zero T
	p := a.Calloc(1, unsafe.Sizeof(zero))
	if p == nil {
		return nil
	}
	return (*T)(p)
}

// AllocSliceT allocates a zeroed slice of n elements of T from a.
// Returns nil if n <= 0 or the allocator is out of memory.
func AllocSliceT[T any](a *Allocator, n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	p := a.Calloc(uintptr(n), unsafe.Sizeof(zero))
	if p == nil {
		return nil
	}
	return unsafe.Slice((*T)(p), n)
}
