package main

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	TickRate       = 60 // simulation ticks per second
	BroadcastRate  = 20 // state broadcasts per second
	TickDuration   = time.Second / TickRate
	BroadcastEvery = TickRate / BroadcastRate

	maxCraftPerEncounter = 32
	maxBoltsPerEncounter = 600

	// Re-center the coordinate origin once the fleet centroid drifts this
	// far; float precision degrades noticeably beyond it.
	RecenterDistance = 50000.0
)

// Broadcaster sends messages to one connected client
type Broadcaster interface {
	SendJSON(msg interface{})
	SendBinary(data []byte)
}

// hitEvent is queued during bolt resolution and drained once per tick
type hitEvent struct {
	victim  *Actor
	shooter *Actor
	died    bool
}

// Encounter is one running combat simulation: the actor roster, the pilot
// controller registry, the bolt/particle pools, and the per-tick octree.
// Everything inside a tick runs single-threaded under mu; correctness
// depends on the fixed step order in update, not on locking.
type Encounter struct {
	mu        sync.RWMutex
	actors    []*Actor
	clients   map[string]Broadcaster // actorID -> client
	registry  *ControllerRegistry
	bolts     *Pool[*Bolt]
	particles *Pool[*Particle]
	octree    *Octree
	tick      uint64
	running   bool
	stop      chan struct{}

	anyHitObservers []func(victim, shooter *Actor)
	firedObservers  []func(shooter *Actor)

	// Event queues filled during the tick, drained once after bolt
	// resolution so observers always see post-resolution state.
	firedQueue []*Actor
	hitQueue   []hitEvent

	clog *CombatLog // optional telemetry sink, may be nil
	id   string     // session ID for telemetry
}

// NewEncounter creates an empty encounter
func NewEncounter() *Encounter {
	e := &Encounter{
		clients:   make(map[string]Broadcaster),
		bolts:     NewPool(func() *Bolt { return &Bolt{} }),
		particles: NewPool(func() *Particle { return &Particle{} }),
		stop:      make(chan struct{}),
	}
	e.registry = NewControllerRegistry(e, e)
	return e
}

// SetCombatLog attaches a telemetry sink
func (e *Encounter) SetCombatLog(clog *CombatLog, sessionID string) {
	e.clog = clog
	e.id = sessionID
}

// Run starts the simulation loop
func (e *Encounter) Run() {
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()

	ticker := time.NewTicker(TickDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.update()
		case <-e.stop:
			return
		}
	}
}

// Stop terminates the simulation loop
func (e *Encounter) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		e.running = false
		close(e.stop)
	}
}

// NextHostile implements Roster: nearest usable hostile of the actor
func (e *Encounter) NextHostile(of *Actor) *Actor {
	var best *Actor
	bestD := math.MaxFloat64
	for _, a := range e.actors {
		if !a.Usable() || !of.HostileTo(a) {
			continue
		}
		d := of.Pos.Sub(a.Pos).LenSq()
		if d < bestD {
			bestD = d
			best = a
		}
	}
	return best
}

// OnAnyHit implements EventBus
func (e *Encounter) OnAnyHit(fn func(victim, shooter *Actor)) {
	e.anyHitObservers = append(e.anyHitObservers, fn)
}

// OnFired implements EventBus
func (e *Encounter) OnFired(fn func(shooter *Actor)) {
	e.firedObservers = append(e.firedObservers, fn)
}

// AddCraft spawns a craft into the encounter. Returns nil when full.
func (e *Encounter) AddCraft(name string, class CraftClass, team int, pos Vec3) *Actor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.addCraftLocked(name, class, team, pos)
}

func (e *Encounter) addCraftLocked(name string, class CraftClass, team int, pos Vec3) *Actor {
	if len(e.actors) >= maxCraftPerEncounter {
		return nil
	}
	a := NewActor(name, class, team, pos)
	a.spawnBolt = e.fireBolt
	e.actors = append(e.actors, a)
	return a
}

// AddPilotedCraft spawns a craft flown by an AI controller of the given
// kind.
func (e *Encounter) AddPilotedCraft(name string, class CraftClass, team int, pos Vec3, kind PilotKind) *Actor {
	e.mu.Lock()
	defer e.mu.Unlock()
	a := e.addCraftLocked(name, class, team, pos)
	if a == nil {
		return nil
	}
	e.registry.AddController(kind, a)
	return a
}

// RemoveCraft detaches a craft from the encounter. Its controller, if
// any, notices on its next control call.
func (e *Encounter) RemoveCraft(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, a := range e.actors {
		if a.ID == id {
			a.Alive = false
			a.Reusable = true
			e.actors = append(e.actors[:i], e.actors[i+1:]...)
			break
		}
	}
	delete(e.clients, id)
}

// SetClient associates a broadcaster with a craft
func (e *Encounter) SetClient(actorID string, client Broadcaster) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clients[actorID] = client
}

// HandleInput applies player maneuver intent to their craft
func (e *Encounter) HandleInput(actorID string, input ClientInput) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, a := range e.actors {
		if a.ID != actorID {
			continue
		}
		a.TurnYaw(input.Yaw)
		a.TurnPitch(input.Pitch)
		a.TurnRoll(input.Roll)
		a.SetThrottle(input.Throttle)
		a.SetBoost(input.Boost)
		a.Firing = input.Fire
		return
	}
}

// CraftCount returns the number of live actors
func (e *Encounter) CraftCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	n := 0
	for _, a := range e.actors {
		if a.Alive {
			n++
		}
	}
	return n
}

// CraftStats returns a craft's kill count and whether it is destroyed
func (e *Encounter) CraftStats(id string) (kills int, dead bool, ok bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, a := range e.actors {
		if a.ID == id {
			return a.Kills, !a.Alive, true
		}
	}
	return 0, false, false
}

// HasCraft reports whether an actor with the given ID exists
func (e *Encounter) HasCraft(id string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, a := range e.actors {
		if a.ID == id {
			return true
		}
	}
	return false
}

// fireBolt is installed on every actor as its bolt spawner. Reuses a free
// pool slot when available; grows the pool otherwise, capped so a runaway
// trigger can't eat the tick budget.
func (e *Encounter) fireBolt(owner *Actor, w *Weapon) {
	var b *Bolt
	if idx, ok := e.bolts.GetFree(); ok {
		b = e.bolts.At(idx)
	} else {
		if e.bolts.Size() >= maxBoltsPerEncounter {
			return
		}
		b, _ = e.bolts.GetObject()
	}
	b.Reset(owner, w)
	e.firedQueue = append(e.firedQueue, owner)
}

// update runs one simulation tick. Order matters: controllers decide,
// physics integrates, the octree is rebuilt from the fresh positions,
// then bolts are resolved against it and spent slots reclaimed.
func (e *Encounter) update() {
	e.mu.Lock()
	defer e.mu.Unlock()

	dt := 1.0 / float64(TickRate)
	e.tick++

	// (a) pilot decisions
	e.registry.Control(dt)

	// player fire intent (AI fires from inside its controller)
	for _, a := range e.actors {
		if a.Alive && a.Firing {
			if a.Target != nil && a.Target.Alive {
				aim, _ := InterceptPoint(a.Pos, a.Vel, a.Target.Pos, a.Target.Vel, a.WeaponSpeed())
				a.AimWeaponsAt(aim)
			} else {
				a.AimWeaponsForward()
			}
			a.FireWeapons()
		}
	}

	// (b) physics integration
	for _, a := range e.actors {
		a.Integrate(dt)
	}

	// (c) octree rebuild over live actors
	live := make([]*Actor, 0, len(e.actors))
	for _, a := range e.actors {
		if a.Alive {
			live = append(live, a)
		}
	}
	e.octree = NewOctree(live, OctreeMaxDepth, OctreeMaxLeafSize, true)

	// (d) broad-phase bolt resolution, (e) reclamation of spent slots
	e.resolveBolts(dt)
	e.particles.ForEachLocked(func(p *Particle, idx int) {
		if !p.Update(dt) {
			e.particles.MarkFree(idx)
		}
	})

	e.drainEvents()
	e.maybeRecenter()

	if e.tick%uint64(BroadcastEvery) == 0 {
		e.broadcastState()
	}
}

// resolveBolts advances every in-flight bolt and tests its swept segment
// against octree candidates. Candidate lists may contain duplicates; the
// first confirmed hit wins, so no dedup pass is needed.
func (e *Encounter) resolveBolts(dt float64) {
	e.bolts.ForEachLocked(func(b *Bolt, idx int) {
		prev := b.Pos
		if !b.Update(dt) {
			e.bolts.MarkFree(idx)
			return
		}

		pad := BoltRadius
		minX := math.Min(prev.X, b.Pos.X) - pad
		maxX := math.Max(prev.X, b.Pos.X) + pad
		minY := math.Min(prev.Y, b.Pos.Y) - pad
		maxY := math.Max(prev.Y, b.Pos.Y) + pad
		minZ := math.Min(prev.Z, b.Pos.Z) - pad
		maxZ := math.Max(prev.Z, b.Pos.Z) + pad

		for _, a := range e.octree.GetObjects(minX, maxX, minY, maxY, minZ, maxZ) {
			if !a.Alive || a == b.Owner {
				continue
			}
			if !SegmentSphereIntersect(prev, b.Pos, a.Pos, a.Radius+BoltRadius) {
				continue
			}
			died := a.TakeDamage(b.Damage)
			e.hitQueue = append(e.hitQueue, hitEvent{victim: a, shooter: b.Owner, died: died})
			e.spawnImpact(b.Pos, a.Vel)
			e.bolts.MarkFree(idx)
			break
		}
	})
}

// spawnImpact scatters pooled particles at an impact point
func (e *Encounter) spawnImpact(pos, baseVel Vec3) {
	for i := 0; i < ParticlesPerHit; i++ {
		var p *Particle
		if idx, ok := e.particles.GetFree(); ok {
			p = e.particles.At(idx)
		} else {
			p, _ = e.particles.GetObject()
		}
		scatter := Vec3{
			randSigned() * ParticleSpread,
			randSigned() * ParticleSpread,
			randSigned() * ParticleSpread,
		}
		p.Reset(pos, baseVel.Add(scatter))
	}
}

// drainEvents delivers the tick's queued hit and fired notifications:
// at most one observer pass per event, once per tick.
func (e *Encounter) drainEvents() {
	for _, ev := range e.hitQueue {
		ev.victim.notifyHit(ev.shooter)
		for _, fn := range e.anyHitObservers {
			fn(ev.victim, ev.shooter)
		}
		if ev.died {
			e.handleKill(ev.victim, ev.shooter)
		}
	}
	e.hitQueue = e.hitQueue[:0]

	var last *Actor
	for _, shooter := range e.firedQueue {
		if shooter == last {
			continue // collapse multi-barrel volleys
		}
		last = shooter
		for _, fn := range e.firedObservers {
			fn(shooter)
		}
		if e.clog != nil {
			e.clog.Track(EvtShotFired, shooter.AuthPlayerID, e.id, "")
		}
	}
	e.firedQueue = e.firedQueue[:0]
}

// handleKill credits the shooter and notifies clients
func (e *Encounter) handleKill(victim, shooter *Actor) {
	victim.Reusable = true

	msg := KillMsg{VictimID: victim.ID, VictimName: victim.Name}
	if shooter != nil {
		shooter.Kills++
		msg.KillerID = shooter.ID
		msg.KillerName = shooter.Name
	}
	e.broadcastMsg(Envelope{T: MsgKill, Data: msg})
	if client, ok := e.clients[victim.ID]; ok {
		client.SendJSON(Envelope{T: MsgDeath, Data: DeathMsg{
			KillerID:   msg.KillerID,
			KillerName: msg.KillerName,
		}})
	}
	if e.clog != nil {
		shooterID := int64(0)
		if shooter != nil {
			shooterID = shooter.AuthPlayerID
		}
		e.clog.Track(EvtKill, shooterID, e.id,
			fmt.Sprintf(`{"victim":%q}`, victim.Name))
	}
}

// maybeRecenter shifts the coordinate origin back onto the fleet centroid
// once it has drifted too far, forwarding the shift to every cached
// world-space point.
func (e *Encounter) maybeRecenter() {
	var sum Vec3
	n := 0
	for _, a := range e.actors {
		if a.Alive {
			sum = sum.Add(a.Pos)
			n++
		}
	}
	if n == 0 {
		return
	}
	centroid := sum.Scale(1 / float64(n))
	if centroid.Len() < RecenterDistance {
		return
	}

	delta := centroid.Neg()
	for _, a := range e.actors {
		a.Pos = a.Pos.Add(delta)
	}
	e.bolts.ForEachLocked(func(b *Bolt, _ int) {
		b.Pos = b.Pos.Add(delta)
	})
	e.particles.ForEachLocked(func(p *Particle, _ int) {
		p.Pos = p.Pos.Add(delta)
	})
	e.registry.HandleWorldShift(delta)
}

// broadcastState sends the msgpack-encoded encounter state to all clients
func (e *Encounter) broadcastState() {
	state := EncounterState{
		Craft: make([]CraftState, 0, len(e.actors)),
		Tick:  e.tick,
	}
	for _, a := range e.actors {
		state.Craft = append(state.Craft, a.ToState())
	}
	e.bolts.ForEachLocked(func(b *Bolt, _ int) {
		state.Bolts = append(state.Bolts, b.ToState())
	})
	e.particles.ForEachLocked(func(p *Particle, _ int) {
		state.Particles = append(state.Particles, ParticleState{
			X: round1(p.Pos.X), Y: round1(p.Pos.Y), Z: round1(p.Pos.Z),
		})
	})

	data, err := msgpack.Marshal(&state)
	if err != nil {
		return
	}
	for _, client := range e.clients {
		client.SendBinary(data)
	}
}

// broadcastMsg sends a JSON message to every client in the encounter
func (e *Encounter) broadcastMsg(msg Envelope) {
	for _, client := range e.clients {
		client.SendJSON(msg)
	}
}
