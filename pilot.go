package main

import "math"

// PilotController is the uniform command surface the registry drives.
// Control runs one tick of decisions; a controller whose actor is gone
// reports Detached so the registry can drop it lazily.
type PilotController interface {
	Control(dt float64)
	HandleWorldShift(delta Vec3)
	Detached() bool
}

// PilotKind selects the controller variant for an actor
type PilotKind int

const (
	PilotAgile   PilotKind = 0 // fighter-style behavior
	PilotCapital PilotKind = 1 // large-craft behavior
)

// Roster is the view of the encounter a controller uses for target
// acquisition.
type Roster interface {
	// NextHostile returns the nearest usable hostile of the given actor,
	// or nil when none exists.
	NextHostile(of *Actor) *Actor
}

// steering is the turn-toward math shared by both controller kinds via
// composition.
type steering struct{}

// bearingTo returns the yaw/pitch offsets (radians) from the actor's nose
// to a world point. Yaw is positive toward the actor's Right, pitch
// positive toward its Up.
func (steering) bearingTo(a *Actor, point Vec3) (yaw, pitch float64) {
	dir := point.Sub(a.Pos)
	if dir.LenSq() == 0 {
		return 0, 0
	}
	local := a.Basis.ToLocal(dir.Normalized())
	yaw = math.Atan2(local.X, local.Z)
	pitch = math.Atan2(local.Y, math.Hypot(local.X, local.Z))
	return
}

// turnToward commands yaw/pitch to bring the nose onto a world point and
// returns the remaining bearing offsets.
func (s steering) turnToward(a *Actor, point Vec3, dt float64) (yaw, pitch float64) {
	yaw, pitch = s.bearingTo(a, point)
	maxStep := a.TurnRate * dt
	if maxStep <= 0 {
		return
	}
	a.TurnYaw(yaw / maxStep)
	a.TurnPitch(pitch / maxStep)
	return
}

// facingOffset returns the total angle between the actor's nose and a
// world point.
func (steering) facingOffset(a *Actor, point Vec3) float64 {
	return AngleBetween(a.Basis.Forward, point.Sub(a.Pos))
}
