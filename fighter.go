package main

import (
	"math"
	"math/rand"
)

// ChargePhase is the fighter's aggressive-attack sub-machine
type ChargePhase int

const (
	ChargeNone     ChargePhase = 0
	ChargeApproach ChargePhase = 1
	ChargeEvade    ChargePhase = 2
)

const (
	// Standoff band, as fractions of weapon range. The max factor starts
	// high and ratchets down while shots keep missing, forcing the
	// fighter closer.
	FighterBaseMaxDistFactor = 0.9
	FighterMinDistFactor     = 0.3
	FighterDistFactorStep    = 0.1
	FighterCloseInTime       = 3.0 // seconds without a hit before narrowing

	// Charge triggers
	FighterChargeMissCount = 8 // consecutive misses at the target
	FighterChargeHitCount  = 4 // hits taken from non-target hostiles

	// Corkscrew roll after sustained missing
	FighterRollMissTime = 2.0
	FighterRollDuration = 0.6

	// Evasive maneuver (randomized strafe burst)
	EvasiveManeuverDuration = 1.5   // seconds
	EvasiveMinSafeDistance  = 200.0 // no dodge when target fires point-blank

	// Charge geometry
	FighterCritSizeFactor  = 2.5 // combined radii multiplier
	FighterCritSpeedFactor = 0.4 // seconds of closing speed added
	FighterEvadeBeyond     = 300.0
	FighterEvadeOffset     = 500.0
	FighterEvadeArriveDist = 60.0

	// Fire cone: wider for nearer/larger targets
	FighterFireConeScale = 1.8
	FighterMinFireCone   = 0.04 // radians

	FighterHoldThrottle    = 0.15
	FighterRetreatThrottle = -0.6
)

// FighterPilot flies an agile craft: hold a standoff band and shoot, roll
// when shots stop landing, charge through the target when frustrated, and
// dodge incoming fire with timed strafe bursts.
type FighterPilot struct {
	steer  steering
	actor  *Actor
	roster Roster

	phase      ChargePhase
	evadeDest  Vec3
	lastTarget *Actor

	sinceRoll    float64 // since last corkscrew roll
	sinceHit     float64 // since last confirmed hit on the target
	sinceCloseIn float64 // since the standoff band last narrowed
	missStreak   int     // consecutive shots without a confirmed hit
	nonTargetHits int    // hits taken from hostiles other than the target

	rolling      float64 // remaining corkscrew time
	evasiveTimer float64
	strafeLat    float64
	strafeVert   float64

	blockedBy *Actor // actor occluding the firing line

	maxDistFactor float64

	aimPoint   Vec3 // cached intercept point, refreshed each tick
	aimPointOK bool
}

// NewFighterPilot creates an agile-craft controller for the actor
func NewFighterPilot(actor *Actor, roster Roster) *FighterPilot {
	return &FighterPilot{
		actor:         actor,
		roster:        roster,
		maxDistFactor: FighterBaseMaxDistFactor,
	}
}

// Detached reports whether the controller has dropped its actor
func (f *FighterPilot) Detached() bool { return f.actor == nil }

// HandleWorldShift keeps cached world-space points valid across an origin
// re-center.
func (f *FighterPilot) HandleWorldShift(delta Vec3) {
	f.evadeDest = f.evadeDest.Add(delta)
	f.aimPoint = f.aimPoint.Add(delta)
}

// resetAttackRun clears every per-run counter. Runs on any target change.
func (f *FighterPilot) resetAttackRun() {
	f.phase = ChargeNone
	f.missStreak = 0
	f.nonTargetHits = 0
	f.sinceRoll = 0
	f.sinceHit = 0
	f.sinceCloseIn = 0
	f.rolling = 0
	f.blockedBy = nil
	f.maxDistFactor = FighterBaseMaxDistFactor
	f.aimPointOK = false
	if f.actor != nil {
		f.actor.SetBoost(false)
	}
}

// Control runs one tick of fighter decisions
func (f *FighterPilot) Control(dt float64) {
	a := f.actor
	if a == nil {
		return
	}
	if !a.Usable() {
		f.actor = nil
		return
	}

	a.ClearManeuver()
	f.sinceRoll += dt
	f.sinceHit += dt
	f.sinceCloseIn += dt
	f.aimPointOK = false

	// Target acquisition; a change of target starts a fresh attack run
	if a.Target == nil || !a.Target.Usable() || !a.HostileTo(a.Target) {
		a.SetTarget(f.roster.NextHostile(a))
	}
	if a.Target != f.lastTarget {
		f.lastTarget = a.Target
		f.resetAttackRun()
	}

	if f.phase == ChargeEvade {
		f.runEvade(dt)
		return
	}

	t := a.Target
	if t == nil {
		// Neutral idle: kill thrust, park the turrets
		a.AimWeaponsForward()
		f.applyEvasive(dt)
		return
	}

	dist := a.Pos.DistanceTo(t.Pos)
	f.steer.turnToward(a, t.Pos, dt)

	if f.blockedBy != nil {
		f.dodgeBlocker(t)
	} else if len(a.Weapons) > 0 {
		f.aimAndFire(t, dist)

		// Corkscrew when shots keep missing; throws off the target's own
		// predictive aim.
		if f.rolling <= 0 && f.sinceHit > FighterRollMissTime && f.sinceRoll > FighterRollMissTime {
			f.rolling = FighterRollDuration
			f.sinceRoll = 0
		}
		if f.rolling > 0 {
			f.rolling -= dt
			a.TurnRoll(1)
		}
	}

	if f.phase == ChargeApproach {
		f.runApproach(a, t, dist)
	} else {
		f.holdStandoff(a, dist)

		if f.missStreak >= FighterChargeMissCount || f.nonTargetHits >= FighterChargeHitCount {
			f.phase = ChargeApproach
		}
	}

	f.applyEvasive(dt)
}

// refreshAimPoint recomputes the cached intercept point if stale
func (f *FighterPilot) refreshAimPoint(t *Actor) {
	if f.aimPointOK {
		return
	}
	a := f.actor
	f.aimPoint, _ = InterceptPoint(a.Pos, a.Vel, t.Pos, t.Vel, a.WeaponSpeed())
	f.aimPointOK = true
}

// aimAndFire slews turrets onto the intercept point and fires when it is
// in range and inside the fire cone. The cone tracks the target's
// apparent size, so near/large targets get more slack.
func (f *FighterPilot) aimAndFire(t *Actor, dist float64) {
	a := f.actor
	f.refreshAimPoint(t)
	a.AimWeaponsAt(f.aimPoint)

	if a.Pos.DistanceTo(f.aimPoint) > a.WeaponRange() {
		return
	}
	cone := math.Max(FighterMinFireCone, math.Atan2(t.Radius*FighterFireConeScale, dist))
	if f.steer.facingOffset(a, f.aimPoint) > cone {
		return
	}
	if a.FireWeapons() {
		f.missStreak++
	}
}

// holdStandoff throttles to keep distance inside the standoff band, and
// narrows the band while shots keep missing.
func (f *FighterPilot) holdStandoff(a *Actor, dist float64) {
	rng := a.WeaponRange()
	switch {
	case dist > rng*f.maxDistFactor:
		a.SetThrottle(1)
	case dist < rng*FighterMinDistFactor:
		a.SetThrottle(FighterRetreatThrottle)
	default:
		a.SetThrottle(FighterHoldThrottle)
	}

	if f.sinceHit > FighterCloseInTime && f.sinceCloseIn > FighterCloseInTime &&
		f.maxDistFactor > FighterMinDistFactor {
		f.maxDistFactor -= FighterDistFactorStep
		if f.maxDistFactor < FighterMinDistFactor {
			f.maxDistFactor = FighterMinDistFactor
		}
		f.sinceCloseIn = 0
	}
}

// runApproach closes at boost speed ignoring the standoff band, then
// breaks off into an evade once inside the collision-critical distance.
func (f *FighterPilot) runApproach(a, t *Actor, dist float64) {
	a.SetBoost(true)
	a.SetThrottle(1)

	closing := math.Max(0, a.Vel.Sub(t.Vel).Dot(t.Pos.Sub(a.Pos).Normalized()))
	critical := (a.Radius+t.Radius)*FighterCritSizeFactor + closing*FighterCritSpeedFactor
	if dist < critical {
		f.evadeDest = evadeDestination(a, t)
		f.phase = ChargeEvade
	}
}

// evadeDestination picks a point laterally offset beyond the target at a
// random azimuth around the approach line.
func evadeDestination(a, t *Actor) Vec3 {
	dir := t.Pos.Sub(a.Pos).Normalized()
	if dir.LenSq() == 0 {
		dir = a.Basis.Forward
	}
	// Any perpendicular pair around dir
	ref := Vec3{0, 1, 0}
	if math.Abs(dir.Y) > 0.9 {
		ref = Vec3{1, 0, 0}
	}
	u := dir.Cross(ref).Normalized()
	v := dir.Cross(u)
	az := rand.Float64() * 2 * math.Pi
	lateral := u.Scale(math.Cos(az)).Add(v.Scale(math.Sin(az)))
	return t.Pos.Add(dir.Scale(FighterEvadeBeyond)).Add(lateral.Scale(FighterEvadeOffset))
}

// runEvade flies the pre-computed breakoff point at boost speed
func (f *FighterPilot) runEvade(dt float64) {
	a := f.actor
	a.SetBoost(true)
	a.SetThrottle(1)
	f.steer.turnToward(a, f.evadeDest, dt)

	toDest := f.evadeDest.Sub(a.Pos)
	overshot := toDest.Dot(a.Vel) < 0 && a.Vel.LenSq() > 0
	if toDest.Len() < FighterEvadeArriveDist || overshot {
		f.phase = ChargeNone
		a.SetBoost(false)
	}
}

// dodgeBlocker strafes off the firing line until the blocker no longer
// occludes the target.
func (f *FighterPilot) dodgeBlocker(t *Actor) {
	a := f.actor
	b := f.blockedBy
	if b == nil || !b.Usable() ||
		!SegmentSphereIntersect(a.Pos, t.Pos, b.Pos, b.Radius*1.2) {
		f.blockedBy = nil
		return
	}
	// Push away from the blocker on the two axes perpendicular to the
	// firing line.
	local := a.Basis.ToLocal(b.Pos.Sub(a.Pos))
	lat, vert := -1.0, -1.0
	if local.X < 0 {
		lat = 1
	}
	if local.Y < 0 {
		vert = 1
	}
	a.Strafe(lat, vert)
}

// startEvasive begins a randomized strafe burst. No-op while already
// dodging a blocker or flying a charge evade.
func (f *FighterPilot) startEvasive() {
	if f.blockedBy != nil || f.phase == ChargeEvade {
		return
	}
	f.evasiveTimer = EvasiveManeuverDuration
	f.strafeLat = rand.Float64()*2 - 1
	f.strafeVert = rand.Float64()*2 - 1
	// Always commit at least half intensity on one axis
	if math.Abs(f.strafeLat) < 0.5 && math.Abs(f.strafeVert) < 0.5 {
		if rand.Float64() < 0.5 {
			f.strafeLat = math.Copysign(1, f.strafeLat)
		} else {
			f.strafeVert = math.Copysign(1, f.strafeVert)
		}
	}
}

// applyEvasive holds the strafe burst for its duration, then decays it
func (f *FighterPilot) applyEvasive(dt float64) {
	if f.evasiveTimer <= 0 {
		return
	}
	f.evasiveTimer -= dt
	if f.evasiveTimer <= 0 {
		f.strafeLat = 0
		f.strafeVert = 0
		f.actor.Strafe(0, 0)
		return
	}
	f.actor.Strafe(f.strafeLat, f.strafeVert)
}

// HandleHit reacts to this fighter taking a hit
func (f *FighterPilot) HandleHit(shooter *Actor) {
	a := f.actor
	if a == nil || !a.Usable() {
		return
	}
	if shooter != nil && a.HostileTo(shooter) && shooter != a.Target {
		f.nonTargetHits++
		// Switch only when the hitter isn't already being fought over
		if shooter.Target != a {
			a.SetTarget(shooter)
		}
	}
	f.startEvasive()
}

// HandleAnyHit reacts to any actor in the encounter being hit. Our own
// stray shots register the victim as a firing-line blocker; our shots on
// the target reset the miss tracking.
func (f *FighterPilot) HandleAnyHit(victim, shooter *Actor) {
	a := f.actor
	if a == nil || shooter != a || victim == a {
		return
	}
	if victim == a.Target {
		f.missStreak = 0
		f.sinceHit = 0
		return
	}
	if f.phase != ChargeEvade {
		f.blockedBy = victim
	}
}

// HandleFired reacts to our target opening fire: dodge, unless already
// point-blank where jinking just ruins our own aim.
func (f *FighterPilot) HandleFired(shooter *Actor) {
	a := f.actor
	if a == nil || !a.Usable() || shooter == nil || shooter != a.Target {
		return
	}
	if a.Pos.DistanceTo(shooter.Pos) < EvasiveMinSafeDistance {
		return
	}
	if f.steer.facingOffset(a, shooter.Pos) < math.Pi/2 {
		f.startEvasive()
	}
}
