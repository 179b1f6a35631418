package main

// Pool recycles short-lived objects (bolts, particles) instead of
// allocating fresh ones every shot. Slots are never released; only their
// locked state cycles. Free slot indices travel through a ring buffer
// whose capacity always equals the number of slots ever allocated, so the
// ring can never overflow.
type Pool[T any] struct {
	objects []T
	locked  []bool
	free    []int // ring of free slot indices, -1 = consumed entry
	readAt  int   // next ring position to pop a free index from
	writeAt int   // next ring position to push a freed index to
	factory func() T
}

// NewPool creates an empty pool with the given object constructor
func NewPool[T any](factory func() T) *Pool[T] {
	return &Pool[T]{factory: factory}
}

// GetObject returns a free slot's object, reusing it, or grows the pool by
// one freshly constructed locked slot. Never fails.
func (p *Pool[T]) GetObject() (T, int) {
	if idx, ok := p.GetFree(); ok {
		return p.objects[idx], idx
	}
	obj := p.factory()
	p.objects = append(p.objects, obj)
	p.locked = append(p.locked, true)
	p.free = append(p.free, -1)
	return obj, len(p.objects) - 1
}

// GetFree pops the next free slot index from the ring and locks it.
// Returns (-1, false) when no slot is free.
func (p *Pool[T]) GetFree() (int, bool) {
	if len(p.free) == 0 {
		return -1, false
	}
	idx := p.free[p.readAt]
	if idx < 0 || p.locked[idx] {
		return -1, false
	}
	p.free[p.readAt] = -1
	p.readAt = (p.readAt + 1) % len(p.free)
	p.locked[idx] = true
	return idx, true
}

// MarkFree releases a slot back to the ring. Marking an already-free slot
// is a no-op.
func (p *Pool[T]) MarkFree(index int) {
	if index < 0 || index >= len(p.locked) || !p.locked[index] {
		return
	}
	p.locked[index] = false
	p.free[p.writeAt] = index
	p.writeAt = (p.writeAt + 1) % len(p.free)
}

// HasLocked reports whether any slot is currently in use
func (p *Pool[T]) HasLocked() bool {
	for _, l := range p.locked {
		if l {
			return true
		}
	}
	return false
}

// ForEachLocked calls fn for every in-use slot. fn may call MarkFree on
// the index it was handed.
func (p *Pool[T]) ForEachLocked(fn func(obj T, index int)) {
	for i, l := range p.locked {
		if l {
			fn(p.objects[i], i)
		}
	}
}

// At returns the object stored in a slot regardless of lock state
func (p *Pool[T]) At(index int) T {
	return p.objects[index]
}

// Size returns the total number of slots ever allocated
func (p *Pool[T]) Size() int {
	return len(p.objects)
}
