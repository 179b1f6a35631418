package main

const (
	BoltLifetime = 3.0 // seconds
	BoltRadius   = 1.5
)

// Bolt is a pooled weapon projectile. Slots are recycled by the
// encounter's bolt pool; Reset re-arms a reused slot.
type Bolt struct {
	Owner    *Actor
	Pos      Vec3
	Vel      Vec3
	Life     float64
	Damage   int
	Traveled float64
	MaxRange float64
}

// Reset re-arms a bolt slot for a new shot. The bolt spawns just outside
// the owner's bounding sphere and inherits the owner's velocity.
func (b *Bolt) Reset(owner *Actor, w *Weapon) {
	b.Owner = owner
	b.Pos = owner.Pos.Add(w.Aim.Scale(owner.Radius + 2*BoltRadius))
	b.Vel = w.Aim.Scale(w.Speed).Add(owner.Vel)
	b.Life = BoltLifetime
	b.Damage = w.Damage
	b.Traveled = 0
	b.MaxRange = w.Range
}

// Update advances the bolt one tick, returning false once it is spent
func (b *Bolt) Update(dt float64) bool {
	step := b.Vel.Scale(dt)
	b.Pos = b.Pos.Add(step)
	b.Traveled += step.Len()
	b.Life -= dt
	return b.Life > 0 && b.Traveled <= b.MaxRange
}

const (
	ParticleLifetime = 0.8
	ParticlesPerHit  = 6
	ParticleSpread   = 60.0 // units/s of random scatter velocity
)

// Particle is a pooled explosion/impact spark. The server only simulates
// position and lifetime; appearance is the client's business.
type Particle struct {
	Pos  Vec3
	Vel  Vec3
	Life float64
}

// Reset re-arms a particle slot at an impact point
func (p *Particle) Reset(pos, vel Vec3) {
	p.Pos = pos
	p.Vel = vel
	p.Life = ParticleLifetime
}

// Update advances the particle one tick, returning false once it fades
func (p *Particle) Update(dt float64) bool {
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	p.Life -= dt
	return p.Life > 0
}
