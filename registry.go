package main

// EventBus is the observer surface a registry wires controllers into:
// encounter-wide any-hit and weapons-fired notifications.
type EventBus interface {
	OnAnyHit(fn func(victim, shooter *Actor))
	OnFired(fn func(shooter *Actor))
}

// ControllerRegistry holds the active pilot controllers for one
// encounter. Owned by the encounter, never a process-wide singleton.
type ControllerRegistry struct {
	controllers []PilotController
	roster      Roster
	bus         EventBus
}

// NewControllerRegistry creates an empty registry backed by the given
// roster and event bus (both typically the encounter itself).
func NewControllerRegistry(roster Roster, bus EventBus) *ControllerRegistry {
	return &ControllerRegistry{roster: roster, bus: bus}
}

// AddController instantiates the controller variant for kind, wires its
// event handlers, and registers it. Returns the new controller.
func (r *ControllerRegistry) AddController(kind PilotKind, actor *Actor) PilotController {
	var pc PilotController
	switch kind {
	case PilotCapital:
		c := NewCapitalPilot(actor, r.roster)
		actor.OnHit(c.HandleHit)
		pc = c
	default:
		f := NewFighterPilot(actor, r.roster)
		actor.OnHit(f.HandleHit)
		if r.bus != nil {
			r.bus.OnAnyHit(f.HandleAnyHit)
			r.bus.OnFired(f.HandleFired)
		}
		pc = f
	}
	r.controllers = append(r.controllers, pc)
	return pc
}

// Control runs one tick of every controller in insertion order, dropping
// controllers that have detached from destroyed actors.
func (r *ControllerRegistry) Control(dt float64) {
	kept := r.controllers[:0]
	for _, c := range r.controllers {
		c.Control(dt)
		if !c.Detached() {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(r.controllers); i++ {
		r.controllers[i] = nil
	}
	r.controllers = kept
}

// HandleWorldShift forwards an origin re-center to every controller so
// cached world-space destinations stay valid.
func (r *ControllerRegistry) HandleWorldShift(delta Vec3) {
	for _, c := range r.controllers {
		c.HandleWorldShift(delta)
	}
}

// ClearAll drops every controller (new encounter setup)
func (r *ControllerRegistry) ClearAll() {
	r.controllers = nil
}

// Count returns the number of active controllers
func (r *ControllerRegistry) Count() int {
	return len(r.controllers)
}
