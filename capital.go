package main

import "math"

const (
	CapitalAttackDistFactor = 0.8  // fraction of weapon range to take position at
	CapitalAttitudeTolerance = 0.05 // radians per resolved axis
	CapitalApproachThrottle  = 1.0
	CapitalHoldThrottle      = 0.1
)

// CapitalPilot flies a large craft: steam toward the target until in
// attack position, then hold the class-preferred attack attitude while
// the turrets fight independently of the hull's facing.
type CapitalPilot struct {
	steer  steering
	actor  *Actor
	roster Roster

	attitude AttackAttitude
}

// NewCapitalPilot creates a large-craft controller for the actor
func NewCapitalPilot(actor *Actor, roster Roster) *CapitalPilot {
	return &CapitalPilot{
		actor:    actor,
		roster:   roster,
		attitude: GetClassDef(actor.Class).Attitude,
	}
}

// Detached reports whether the controller has dropped its actor
func (c *CapitalPilot) Detached() bool { return c.actor == nil }

// HandleWorldShift is a no-op: the capital caches no world-space points
func (c *CapitalPilot) HandleWorldShift(delta Vec3) {}

// Control runs one tick of capital decisions
func (c *CapitalPilot) Control(dt float64) {
	a := c.actor
	if a == nil {
		return
	}
	if !a.Usable() {
		c.actor = nil
		return
	}

	a.ClearManeuver()

	if a.Target == nil || !a.Target.Usable() || !a.HostileTo(a.Target) {
		a.SetTarget(c.roster.NextHostile(a))
	}
	t := a.Target
	if t == nil {
		a.AimWeaponsForward()
		return
	}

	dist := a.Pos.DistanceTo(t.Pos)
	attackDist := a.WeaponRange() * CapitalAttackDistFactor

	if dist > attackDist {
		// Not in position yet: plain bearing-following approach
		c.steer.turnToward(a, t.Pos, dt)
		a.SetThrottle(CapitalApproachThrottle)
	} else {
		c.holdAttitude(a, t, dt)
		a.SetThrottle(CapitalHoldThrottle)
	}

	// Turrets aim and fire on the intercept point regardless of facing
	aim, _ := InterceptPoint(a.Pos, a.Vel, t.Pos, t.Vel, a.WeaponSpeed())
	a.AimWeaponsAt(aim)
	if a.Pos.DistanceTo(aim) <= a.WeaponRange() {
		a.FireWeapons()
	}
}

// holdAttitude resolves the class-defined attack-vector angle pair with
// the two turn axes the attitude style prescribes.
func (c *CapitalPilot) holdAttitude(a, t *Actor, dt float64) {
	dir := t.Pos.Sub(a.Pos)
	if dir.LenSq() == 0 {
		return
	}
	local := a.Basis.ToLocal(dir.Normalized())
	maxStep := a.TurnRate * dt
	if maxStep <= 0 {
		return
	}

	switch c.attitude {
	case AttitudeRollYaw:
		// Broadside: roll the target into the horizontal plane, then yaw
		// it onto the beam (local X axis).
		rollErr := math.Atan2(local.Y, local.X)
		yawErr := math.Atan2(local.Z, local.X) * -1
		if math.Abs(rollErr) > CapitalAttitudeTolerance {
			a.TurnRoll(-rollErr / maxStep)
		}
		if math.Abs(yawErr) > CapitalAttitudeTolerance {
			a.TurnYaw(yawErr / maxStep)
		}

	case AttitudeRollPitch:
		// Dorsal guns: roll the target overhead, then pitch it onto the
		// local Y axis.
		rollErr := math.Atan2(local.X, local.Y)
		pitchErr := math.Atan2(local.Z, local.Y) * -1
		if math.Abs(rollErr) > CapitalAttitudeTolerance {
			a.TurnRoll(rollErr / maxStep)
		}
		if math.Abs(pitchErr) > CapitalAttitudeTolerance {
			a.TurnPitch(pitchErr / maxStep)
		}

	default: // AttitudeYawPitch: nose-on spinal guns
		yawErr := math.Atan2(local.X, local.Z)
		pitchErr := math.Atan2(local.Y, math.Hypot(local.X, local.Z))
		if math.Abs(yawErr) > CapitalAttitudeTolerance {
			a.TurnYaw(yawErr / maxStep)
		}
		if math.Abs(pitchErr) > CapitalAttitudeTolerance {
			a.TurnPitch(pitchErr / maxStep)
		}
	}
}

// HandleHit switches target when the current one is disengaged or out of
// reach; a capital has no evasive options worth taking.
func (c *CapitalPilot) HandleHit(shooter *Actor) {
	a := c.actor
	if a == nil || !a.Usable() || shooter == nil || !a.HostileTo(shooter) {
		return
	}
	t := a.Target
	if t == nil {
		a.SetTarget(shooter)
		return
	}
	if t.Target != a || a.Pos.DistanceTo(t.Pos) > a.WeaponRange() {
		a.SetTarget(shooter)
	}
}
