package main

import "testing"

func TestPoolGrowsOnDemand(t *testing.T) {
	n := 0
	p := NewPool(func() *Bolt { n++; return &Bolt{} })

	b1, i1 := p.GetObject()
	b2, i2 := p.GetObject()
	if b1 == nil || b2 == nil || b1 == b2 {
		t.Fatal("expected two distinct objects")
	}
	if i1 == i2 {
		t.Fatalf("expected distinct indices, got %d twice", i1)
	}
	if n != 2 || p.Size() != 2 {
		t.Errorf("factory calls = %d, size = %d, want 2, 2", n, p.Size())
	}
}

func TestPoolReusesFreedSlot(t *testing.T) {
	n := 0
	p := NewPool(func() *Bolt { n++; return &Bolt{} })

	_, idx := p.GetObject()
	p.MarkFree(idx)

	got, gotIdx := p.GetObject()
	if gotIdx != idx {
		t.Errorf("expected freed slot %d reused, got %d", idx, gotIdx)
	}
	if got != p.At(idx) {
		t.Error("reused slot returned wrong object")
	}
	if n != 1 {
		t.Errorf("factory called %d times, want 1 (slot reuse)", n)
	}
}

func TestPoolGetFreeNeverReturnsLockedSlot(t *testing.T) {
	p := NewPool(func() *Bolt { return &Bolt{} })
	for i := 0; i < 8; i++ {
		p.GetObject()
	}
	// All locked: no free slot
	if idx, ok := p.GetFree(); ok {
		t.Fatalf("GetFree returned locked slot %d", idx)
	}

	p.MarkFree(3)
	p.MarkFree(5)
	seen := map[int]bool{}
	for {
		idx, ok := p.GetFree()
		if !ok {
			break
		}
		if seen[idx] {
			t.Fatalf("slot %d handed out twice", idx)
		}
		seen[idx] = true
	}
	if !seen[3] || !seen[5] || len(seen) != 2 {
		t.Errorf("expected slots 3 and 5 exactly, got %v", seen)
	}
}

func TestPoolMarkFreeIdempotent(t *testing.T) {
	p := NewPool(func() *Bolt { return &Bolt{} })
	_, idx := p.GetObject()
	_, idx2 := p.GetObject()

	p.MarkFree(idx)
	p.MarkFree(idx) // double free must not duplicate the ring entry
	p.MarkFree(-1)  // out of range: no-op
	p.MarkFree(99)

	got1, ok1 := p.GetFree()
	if !ok1 || got1 != idx {
		t.Fatalf("first GetFree = %d, %v, want %d, true", got1, ok1, idx)
	}
	if got2, ok2 := p.GetFree(); ok2 {
		t.Fatalf("double free leaked a second slot: %d", got2)
	}
	_ = idx2
}

func TestPoolForEachLockedVisitsOnlyLocked(t *testing.T) {
	p := NewPool(func() *Particle { return &Particle{} })
	for i := 0; i < 5; i++ {
		p.GetObject()
	}
	p.MarkFree(1)
	p.MarkFree(4)

	visited := map[int]bool{}
	p.ForEachLocked(func(_ *Particle, idx int) {
		visited[idx] = true
	})
	if len(visited) != 3 || visited[1] || visited[4] {
		t.Errorf("visited %v, want {0,2,3}", visited)
	}
	if !p.HasLocked() {
		t.Error("pool with locked slots should report HasLocked")
	}
}

func TestPoolFreeWhileIterating(t *testing.T) {
	p := NewPool(func() *Particle { return &Particle{} })
	for i := 0; i < 10; i++ {
		p.GetObject()
	}
	p.ForEachLocked(func(_ *Particle, idx int) {
		p.MarkFree(idx)
	})
	if p.HasLocked() {
		t.Error("all slots were freed during iteration")
	}
	// Every slot must come back out exactly once
	count := 0
	for {
		if _, ok := p.GetFree(); !ok {
			break
		}
		count++
	}
	if count != 10 {
		t.Errorf("recovered %d slots, want 10", count)
	}
}
