package object

import (
	"math"
	"math/rand"
	"sync"
)

// particlePool reuses Particle objects to keep explosion-heavy ticks
// allocation-free.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect. Particles never collide and
// nothing else references them.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay (1.0 = no drag)
	Symbol      rune    // Character to display
	Fade        bool    // Whether to fade out over lifetime
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64, symbol rune) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.95
	p.Symbol = symbol
	p.Fade = true
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnExplosion creates particles in a circular burst pattern.
func SpawnExplosion(x, y float64, count int, speed, lifetime float64, rng *rand.Rand, spawner Spawner) {
	if spawner == nil || rng == nil {
		return
	}

	symbols := []rune{'#', '@', '*', '%', 'X', 'O', '+', '▪'}

	for i := 0; i < count; i++ {
		// Random direction
		angle := rng.Float64() * 2 * math.Pi
		// Random speed variation (50% to 150%)
		spd := speed * (0.5 + rng.Float64())
		// Random lifetime variation (50% to 100%)
		life := lifetime * (0.5 + rng.Float64()*0.5)

		vx := math.Cos(angle) * spd
		vy := math.Sin(angle) * spd

		symbol := symbols[rng.Intn(len(symbols))]

		p := NewParticle(x, y, vx, vy, life, symbol)
		spawner.Spawn(p)
	}
}

// SpawnThrust creates exhaust particles behind a thrusting ship. The
// angle is the exhaust direction, already flipped from the heading.
func SpawnThrust(x, y, angle float64, rng *rand.Rand, spawner Spawner) {
	if spawner == nil || rng == nil {
		return
	}

	// Spawn 1-2 particles behind the ship
	count := 1 + rng.Intn(2)
	symbols := []rune{'*', '+', '#', '^', '~'}

	for i := 0; i < count; i++ {
		// Spread the exhaust cone a little
		thrustAngle := angle + (rng.Float64()-0.5)*0.5
		speed := 60.0 + rng.Float64()*40.0
		lifetime := 0.1 + rng.Float64()*0.15

		vx := math.Cos(thrustAngle) * speed
		vy := math.Sin(thrustAngle) * speed

		symbol := symbols[rng.Intn(len(symbols))]

		p := NewParticle(x, y, vx, vy, lifetime, symbol)
		p.Drag = 0.85
		spawner.Spawn(p)
	}
}

// Kind implements Object.
func (p *Particle) Kind() Kind { return KindParticle }

// Update moves the particle and checks lifetime.
func (p *Particle) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()

	// Decrease lifetime
	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true, nil // Remove particle
	}

	// Apply drag
	dragFactor := math.Pow(p.Drag, dt*60) // Normalize drag to ~60fps
	p.VX *= dragFactor
	p.VY *= dragFactor

	// Apply velocity
	p.X += p.VX * dt
	p.Y += p.VY * dt

	// No wrapping for particles - they just disappear at the edges

	return false, nil
}

// Faded reports whether a fading particle has dropped below a quarter of
// its lifetime; the renderer skips those.
func (p *Particle) Faded() bool {
	if !p.Fade || p.MaxLifetime <= 0 {
		return false
	}
	return p.Lifetime/p.MaxLifetime < 0.25
}
