package main

import (
	"testing"
)

func newCapitalPair(class CraftClass, capPos, targetPos Vec3) (*CapitalPilot, *Actor, *Actor) {
	a := NewActor("cap", class, 1, capPos)
	target := NewActor("t", ClassFighter, 2, targetPos)
	c := NewCapitalPilot(a, &stubRoster{next: target})
	return c, a, target
}

func TestCapitalApproachesDistantTarget(t *testing.T) {
	c, a, _ := newCapitalPair(ClassCruiser, Vec3{}, Vec3{0, 0, 10000})
	c.Control(testDt)
	if a.Throttle != CapitalApproachThrottle {
		t.Errorf("throttle = %g beyond attack distance, want %g", a.Throttle, CapitalApproachThrottle)
	}
	if a.Target == nil {
		t.Error("capital should acquire the hostile")
	}
}

func TestCapitalHoldsPositionInRange(t *testing.T) {
	attackDist := GetClassDef(ClassCruiser).WeaponRange * CapitalAttackDistFactor
	c, a, _ := newCapitalPair(ClassCruiser, Vec3{}, Vec3{0, 0, attackDist * 0.5})
	c.Control(testDt)
	if a.Throttle != CapitalHoldThrottle {
		t.Errorf("throttle = %g inside attack distance, want %g", a.Throttle, CapitalHoldThrottle)
	}
}

// TestCruiserRollsBroadsideOn runs the attitude loop to convergence: a
// cruiser in attack position must end with the target on its beam (the
// local +X axis), not its nose.
func TestCruiserRollsBroadsideOn(t *testing.T) {
	c, a, target := newCapitalPair(ClassCruiser, Vec3{}, Vec3{0, 0, 1200})
	for i := 0; i < 30*TickRate; i++ {
		c.Control(testDt)
		a.Integrate(testDt)
	}
	local := a.Basis.ToLocal(target.Pos.Sub(a.Pos).Normalized())
	if local.X < 0.9 {
		t.Errorf("target bearing in local frame = %+v, want on the +X beam", local)
	}
}

// A dreadnought's spinal mount wants the target dead ahead instead.
func TestDreadnoughtPointsNoseOn(t *testing.T) {
	c, a, target := newCapitalPair(ClassDreadnought, Vec3{}, Vec3{1500, 400, 800})
	for i := 0; i < 40*TickRate; i++ {
		c.Control(testDt)
		a.Integrate(testDt)
	}
	local := a.Basis.ToLocal(target.Pos.Sub(a.Pos).Normalized())
	if local.Z < 0.9 {
		t.Errorf("target bearing in local frame = %+v, want ahead (+Z)", local)
	}
}

func TestCapitalFiresOnlyInRange(t *testing.T) {
	// In range: turret cooldowns start cycling
	c, a, _ := newCapitalPair(ClassCruiser, Vec3{}, Vec3{0, 0, 1000})
	c.Control(testDt)
	if a.Weapons[0].Ready() {
		t.Error("capital in range should have fired")
	}

	// Out of range: holds fire even while approaching
	c2, a2, _ := newCapitalPair(ClassCruiser, Vec3{}, Vec3{0, 0, 10000})
	c2.Control(testDt)
	if !a2.Weapons[0].Ready() {
		t.Error("capital out of range should hold fire")
	}
}

func TestCapitalTurretsTrackIndependentOfHull(t *testing.T) {
	// Target far off the nose but in range: weapons must aim at it while
	// the sluggish hull is still turning.
	c, a, target := newCapitalPair(ClassCruiser, Vec3{}, Vec3{1000, 0, 0})
	c.Control(testDt)
	off := AngleBetween(a.Weapons[0].Aim, target.Pos.Sub(a.Pos))
	if off > 0.01 {
		t.Errorf("turret aim off target by %g rad", off)
	}
}

func TestCapitalHandleHitSwitchesWhenTargetDisengaged(t *testing.T) {
	c, a, target := newCapitalPair(ClassCruiser, Vec3{}, Vec3{0, 0, 1000})
	c.Control(testDt)
	if a.Target != target {
		t.Fatal("setup: capital should target the hostile")
	}

	shooter := NewActor("s", ClassFighter, 2, Vec3{500, 0, 0})

	// Current target is shooting someone else: switch to whoever hits us
	target.SetTarget(shooter)
	c.HandleHit(shooter)
	if a.Target != shooter {
		t.Error("should switch when the current target is disengaged")
	}

	// Current target is fighting us and in range: stay on it
	a.SetTarget(target)
	target.SetTarget(a)
	c.HandleHit(shooter)
	if a.Target != target {
		t.Error("should keep an engaged, in-range target")
	}

	// Friendly fire never changes the target
	friend := NewActor("fr", ClassFighter, 1, Vec3{0, 500, 0})
	c.HandleHit(friend)
	if a.Target != target {
		t.Error("friendly fire must not switch the target")
	}
}

func TestCapitalDetachesFromDeadActor(t *testing.T) {
	c, a, _ := newCapitalPair(ClassCruiser, Vec3{}, Vec3{0, 0, 1000})
	a.Alive = false
	c.Control(testDt)
	if !c.Detached() {
		t.Error("controller should detach once its actor dies")
	}
}
