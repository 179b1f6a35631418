package main

import "testing"

// stubBus records observer registrations
type stubBus struct {
	anyHit []func(victim, shooter *Actor)
	fired  []func(shooter *Actor)
}

func (b *stubBus) OnAnyHit(fn func(victim, shooter *Actor)) { b.anyHit = append(b.anyHit, fn) }
func (b *stubBus) OnFired(fn func(shooter *Actor))          { b.fired = append(b.fired, fn) }

func TestRegistryDispatchesByKind(t *testing.T) {
	bus := &stubBus{}
	r := NewControllerRegistry(&stubRoster{}, bus)

	fighter := NewActor("f", ClassFighter, 1, Vec3{})
	cruiser := NewActor("c", ClassCruiser, 1, Vec3{})

	pc1 := r.AddController(PilotAgile, fighter)
	pc2 := r.AddController(PilotCapital, cruiser)

	if _, ok := pc1.(*FighterPilot); !ok {
		t.Errorf("PilotAgile produced %T, want *FighterPilot", pc1)
	}
	if _, ok := pc2.(*CapitalPilot); !ok {
		t.Errorf("PilotCapital produced %T, want *CapitalPilot", pc2)
	}
	if r.Count() != 2 {
		t.Errorf("Count = %d, want 2", r.Count())
	}
}

func TestRegistryWiresFighterIntoBus(t *testing.T) {
	bus := &stubBus{}
	r := NewControllerRegistry(&stubRoster{}, bus)

	r.AddController(PilotAgile, NewActor("f", ClassFighter, 1, Vec3{}))
	if len(bus.anyHit) != 1 || len(bus.fired) != 1 {
		t.Errorf("fighter bus wiring: anyHit=%d fired=%d, want 1, 1", len(bus.anyHit), len(bus.fired))
	}

	// Capitals don't listen to encounter-wide events
	r.AddController(PilotCapital, NewActor("c", ClassCruiser, 1, Vec3{}))
	if len(bus.anyHit) != 1 || len(bus.fired) != 1 {
		t.Error("capital should not register bus observers")
	}
}

func TestRegistryDropsDetachedControllers(t *testing.T) {
	r := NewControllerRegistry(&stubRoster{}, &stubBus{})
	a1 := NewActor("a1", ClassFighter, 1, Vec3{})
	a2 := NewActor("a2", ClassFighter, 1, Vec3{100, 0, 0})
	r.AddController(PilotAgile, a1)
	r.AddController(PilotAgile, a2)

	a1.Alive = false
	r.Control(testDt)
	if r.Count() != 1 {
		t.Errorf("Count = %d after one actor died, want 1", r.Count())
	}

	a2.Alive = false
	r.Control(testDt)
	if r.Count() != 0 {
		t.Errorf("Count = %d after all actors died, want 0", r.Count())
	}
}

func TestRegistryForwardsWorldShift(t *testing.T) {
	r := NewControllerRegistry(&stubRoster{}, &stubBus{})
	pc := r.AddController(PilotAgile, NewActor("f", ClassFighter, 1, Vec3{}))
	f := pc.(*FighterPilot)
	f.evadeDest = Vec3{100, 0, 0}

	r.HandleWorldShift(Vec3{-100, 0, 0})
	if f.evadeDest != (Vec3{}) {
		t.Errorf("evadeDest = %+v after shift, want origin", f.evadeDest)
	}
}

func TestRegistryClearAll(t *testing.T) {
	r := NewControllerRegistry(&stubRoster{}, &stubBus{})
	r.AddController(PilotAgile, NewActor("f", ClassFighter, 1, Vec3{}))
	r.AddController(PilotCapital, NewActor("c", ClassCruiser, 1, Vec3{}))
	r.ClearAll()
	if r.Count() != 0 {
		t.Errorf("Count = %d after ClearAll, want 0", r.Count())
	}
}
