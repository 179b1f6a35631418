package main

const (
	BoostSpeedMul   = 1.5  // max-speed multiplier while boosting (charge runs)
	VelocityDamping = 0.995 // per-tick-at-60Hz drag factor
)

// Actor is a spacecraft participating in combat, player- or AI-flown.
// Controllers read its state through queries and write maneuver intent
// through commands; physics state is only mutated by Integrate.
type Actor struct {
	ID    string
	Name  string
	Team  int
	Class CraftClass

	Pos    Vec3
	Vel    Vec3
	Basis  Basis
	Radius float64

	HP, MaxHP int
	Alive     bool
	Reusable  bool // destroyed and eligible for slot reuse

	Target  *Actor
	Weapons []*Weapon

	Firing       bool  // player fire intent; AI fires through its controller
	Kills        int
	AuthPlayerID int64 // 0 = guest / AI

	MaxSpeed    float64
	Accel       float64
	TurnRate    float64
	StrafeAccel float64

	// Maneuver intent, written by a controller or player input each tick
	// and consumed by Integrate.
	YawIn, PitchIn, RollIn float64 // -1..1
	LatIn, VertIn          float64 // strafe intensity -1..1
	Throttle               float64 // -1..1
	Boosting               bool

	// being-hit observers; shooter may be nil (environmental damage)
	hitObservers []func(shooter *Actor)

	// spawnBolt is installed by the encounter that owns this actor
	spawnBolt func(owner *Actor, w *Weapon)
}

// NewActor creates a craft of the given class at a position, facing along
// the identity basis.
func NewActor(name string, class CraftClass, team int, pos Vec3) *Actor {
	def := GetClassDef(class)
	a := &Actor{
		ID:       GenerateID(4),
		Name:     name,
		Team:     team,
		Class:    class,
		Pos:      pos,
		Basis:    IdentityBasis(),
		Radius:   def.Radius,
		HP:       def.MaxHP,
		MaxHP:    def.MaxHP,
		Alive:    true,
		MaxSpeed: def.MaxSpeed,
		Accel:    def.Accel,
		TurnRate: def.TurnRate,
		StrafeAccel: def.StrafeAccel,
	}
	for i := 0; i < def.WeaponCount; i++ {
		a.Weapons = append(a.Weapons, &Weapon{
			Speed:    def.WeaponSpeed,
			Range:    def.WeaponRange,
			Cooldown: def.WeaponCD,
			Damage:   def.WeaponDamage,
			Aim:      a.Basis.Forward,
		})
	}
	return a
}

// HostileTo reports whether other is a valid combat target
func (a *Actor) HostileTo(other *Actor) bool {
	return other != nil && other != a && other.Alive && other.Team != a.Team
}

// Usable reports whether the actor is still a live participant
func (a *Actor) Usable() bool {
	return a != nil && a.Alive && !a.Reusable
}

// SetTarget sets or clears the current target
func (a *Actor) SetTarget(t *Actor) { a.Target = t }

// Turn commands, intensity clamped to -1..1
func (a *Actor) TurnYaw(intensity float64)   { a.YawIn = Clamp(intensity, -1, 1) }
func (a *Actor) TurnPitch(intensity float64) { a.PitchIn = Clamp(intensity, -1, 1) }
func (a *Actor) TurnRoll(intensity float64)  { a.RollIn = Clamp(intensity, -1, 1) }

// Strafe commands lateral (+right) and vertical (+up) thrust
func (a *Actor) Strafe(lat, vert float64) {
	a.LatIn = Clamp(lat, -1, 1)
	a.VertIn = Clamp(vert, -1, 1)
}

// SetThrottle commands forward (+) or reverse (-) thrust
func (a *Actor) SetThrottle(t float64) { a.Throttle = Clamp(t, -1, 1) }

// SetBoost toggles the elevated speed ceiling used for charge runs
func (a *Actor) SetBoost(on bool) { a.Boosting = on }

// ClearManeuver zeroes all maneuver intent
func (a *Actor) ClearManeuver() {
	a.YawIn, a.PitchIn, a.RollIn = 0, 0, 0
	a.LatIn, a.VertIn = 0, 0
	a.Throttle = 0
	a.Boosting = false
}

// FireWeapons fires every weapon that is off cooldown, returning whether
// at least one shot left the rails.
func (a *Actor) FireWeapons() bool {
	fired := false
	for _, w := range a.Weapons {
		if w.cd > 0 {
			continue
		}
		w.cd = w.Cooldown
		if a.spawnBolt != nil {
			a.spawnBolt(a, w)
		}
		fired = true
	}
	return fired
}

// AimWeaponsAt points every weapon turret at a world position
func (a *Actor) AimWeaponsAt(point Vec3) {
	for _, w := range a.Weapons {
		w.AimAt(a, point)
	}
}

// AimWeaponsForward returns turrets to the neutral forward attitude
func (a *Actor) AimWeaponsForward() {
	for _, w := range a.Weapons {
		w.Aim = a.Basis.Forward
	}
}

// WeaponRange returns the reach of the primary weapon, 0 if unarmed
func (a *Actor) WeaponRange() float64 {
	if len(a.Weapons) == 0 {
		return 0
	}
	return a.Weapons[0].Range
}

// WeaponSpeed returns the primary weapon's muzzle speed, 0 if unarmed
func (a *Actor) WeaponSpeed() float64 {
	if len(a.Weapons) == 0 {
		return 0
	}
	return a.Weapons[0].Speed
}

// OnHit subscribes an observer to this actor taking damage
func (a *Actor) OnHit(fn func(shooter *Actor)) {
	a.hitObservers = append(a.hitObservers, fn)
}

// ClearObservers drops all hit observers (encounter reset)
func (a *Actor) ClearObservers() {
	a.hitObservers = nil
}

// TakeDamage reduces HP and returns true if the actor was destroyed.
// Observers are notified by the encounter, not here, so damage applied
// outside a tick (tests, setup) has no side effects.
func (a *Actor) TakeDamage(dmg int) bool {
	if !a.Alive {
		return false
	}
	a.HP -= dmg
	if a.HP <= 0 {
		a.HP = 0
		a.Alive = false
		return true
	}
	return false
}

// notifyHit delivers a being-hit event to every observer
func (a *Actor) notifyHit(shooter *Actor) {
	for _, fn := range a.hitObservers {
		fn(shooter)
	}
}

// Integrate advances physics one tick from the current maneuver intent.
// dt is in seconds.
func (a *Actor) Integrate(dt float64) {
	if !a.Alive {
		return
	}

	a.Basis.Yaw(a.YawIn * a.TurnRate * dt)
	a.Basis.Pitch(a.PitchIn * a.TurnRate * dt)
	a.Basis.Roll(a.RollIn * a.TurnRate * dt)

	thrust := a.Basis.Forward.Scale(a.Throttle * a.Accel)
	thrust = thrust.Add(a.Basis.Right.Scale(a.LatIn * a.StrafeAccel))
	thrust = thrust.Add(a.Basis.Up.Scale(a.VertIn * a.StrafeAccel))
	a.Vel = a.Vel.Add(thrust.Scale(dt))

	a.Vel = a.Vel.Scale(VelocityDamping)

	limit := a.MaxSpeed
	if a.Boosting {
		limit *= BoostSpeedMul
	}
	if speed := a.Vel.Len(); speed > limit {
		a.Vel = a.Vel.Scale(limit / speed)
	}

	a.Pos = a.Pos.Add(a.Vel.Scale(dt))

	for _, w := range a.Weapons {
		if w.cd > 0 {
			w.cd -= dt
		}
	}
}

// Weapon is a turret-mounted gun. Aim is a world-space unit direction the
// turret currently points at; bolts leave along it at Speed.
type Weapon struct {
	Speed    float64
	Range    float64
	Cooldown float64
	Damage   int
	Aim      Vec3
	cd       float64
}

// AimAt slews the turret toward a world position
func (w *Weapon) AimAt(owner *Actor, point Vec3) {
	dir := point.Sub(owner.Pos)
	if dir.LenSq() == 0 {
		return
	}
	w.Aim = dir.Normalized()
}

// Ready reports whether the weapon is off cooldown
func (w *Weapon) Ready() bool { return w.cd <= 0 }
