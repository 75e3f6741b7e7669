package object

import (
	"math"
	"math/rand"
)

// Asteroid tiers run 1 (smallest) through 9. The radius ladder is chosen
// so a split into two children never exceeds the parent's mass proxy:
// 2*r(tier-1)^2 <= r(tier)^2 holds at every step.
const (
	MinTier = 1
	MaxTier = 9
)

var asteroidRadii = [MaxTier + 1]float64{0, 7, 11, 16, 23, 33, 48, 70, 102, 148}

// Smaller rocks fly and tumble faster.
var asteroidSpeedMult = [MaxTier + 1]float64{0, 1.6, 1.45, 1.3, 1.15, 1.0, 0.85, 0.7, 0.6, 0.5}

const (
	asteroidBaseSpeedMin = 80.0
	asteroidBaseSpeedMax = 180.0

	splitTier2Chance = 0.25
	splitSpeedBoost  = 1.3
	splitAngleJitter = math.Pi / 3 // ±60° deflection per child
	splitSpeedVarMin = 0.7
	splitSpeedVarMax = 1.3
	splitShotInherit = 0.05
)

// RadiusForTier returns the collision radius for a tier, clamping
// out-of-range tiers.
func RadiusForTier(tier int) float64 {
	return asteroidRadii[clampTier(tier)]
}

func clampTier(tier int) int {
	if tier < MinTier {
		return MinTier
	}
	if tier > MaxTier {
		return MaxTier
	}
	return tier
}

// Asteroid is a destructible space rock.
type Asteroid struct {
	X, Y          float64   // Position (center)
	VX, VY        float64   // Velocity
	Angle         float64   // Current rotation angle
	RotationSpeed float64   // Rotation speed (radians/sec)
	Tier          int       // Size tier, 1..9
	Radius        float64   // Collision/draw radius
	Vertices      []float64 // Vertex distances from center, immutable after spawn
}

// NewAsteroid creates an asteroid at (x,y) with a random velocity drawn
// from the tier's speed band.
func NewAsteroid(x, y float64, tier int, rng *rand.Rand) *Asteroid {
	heading := rng.Float64() * 2 * math.Pi
	speed := tierSpeed(tier, rng)
	return newAsteroidWith(x, y, math.Cos(heading)*speed, math.Sin(heading)*speed, tier, rng)
}

// NewAsteroidAtEdge creates an asteroid at a random arena edge, aimed
// roughly toward the center with ±45° variation.
func NewAsteroidAtEdge(arena Arena, tier int, rng *rand.Rand) *Asteroid {
	x, y := EdgePosition(arena, rng)
	cx, cy := arena.Center()
	aim := math.Atan2(cy-y, cx-x) + (rng.Float64()-0.5)*math.Pi/2
	speed := tierSpeed(tier, rng)
	return newAsteroidWith(x, y, math.Cos(aim)*speed, math.Sin(aim)*speed, tier, rng)
}

// EdgePosition picks a uniformly random point on one of the four arena
// edges.
func EdgePosition(arena Arena, rng *rand.Rand) (x, y float64) {
	switch rng.Intn(4) {
	case 0: // Top
		return rng.Float64() * arena.Width, 1
	case 1: // Bottom
		return rng.Float64() * arena.Width, arena.Height - 1
	case 2: // Left
		return 1, rng.Float64() * arena.Height
	default: // Right
		return arena.Width - 1, rng.Float64() * arena.Height
	}
}

func tierSpeed(tier int, rng *rand.Rand) float64 {
	base := asteroidBaseSpeedMin + rng.Float64()*(asteroidBaseSpeedMax-asteroidBaseSpeedMin)
	return base * asteroidSpeedMult[clampTier(tier)]
}

func newAsteroidWith(x, y, vx, vy float64, tier int, rng *rand.Rand) *Asteroid {
	tier = clampTier(tier)
	radius := asteroidRadii[tier]

	// Generate irregular polygon vertices (8-12 vertices, ±30%).
	numVerts := 8 + rng.Intn(5)
	vertices := make([]float64, numVerts)
	for i := range vertices {
		vertices[i] = radius * (0.7 + rng.Float64()*0.6)
	}

	rotSpeed := (0.3 + rng.Float64()*0.9) * asteroidSpeedMult[tier]
	if rng.Intn(2) == 0 {
		rotSpeed = -rotSpeed
	}

	return &Asteroid{
		X:             x,
		Y:             y,
		VX:            vx,
		VY:            vy,
		Angle:         rng.Float64() * 2 * math.Pi,
		RotationSpeed: rotSpeed,
		Tier:          tier,
		Radius:        radius,
		Vertices:      vertices,
	}
}

// Kind implements Object.
func (a *Asteroid) Kind() Kind { return KindAsteroid }

// Update moves the asteroid, spins it, and wraps at the arena edges.
func (a *Asteroid) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()

	a.Angle += a.RotationSpeed * dt
	a.X += a.VX * dt
	a.Y += a.VY * dt
	ctx.Arena.WrapPosition(&a.X, &a.Y)

	return false, nil
}

// Mass returns the collision mass proxy (radius squared).
func (a *Asteroid) Mass() float64 { return a.Radius * a.Radius }

// Split returns the children produced when this asteroid breaks: two
// one-tier-smaller rocks above tier 2, a 25% chance of two tier-1 rocks
// at tier 2, nothing at tier 1. Children inherit the boosted parent
// velocity deflected up to ±60°, with speed variance and a small kick
// from the destroying shot.
func (a *Asteroid) Split(rng *rand.Rand, shotVX, shotVY float64) []*Asteroid {
	if a.Tier <= MinTier {
		return nil
	}
	if a.Tier == 2 && rng.Float64() >= splitTier2Chance {
		return nil
	}

	children := make([]*Asteroid, 0, 2)
	for i := 0; i < 2; i++ {
		jitter := (rng.Float64()*2 - 1) * splitAngleJitter
		sin, cos := math.Sincos(jitter)
		bvx := a.VX * splitSpeedBoost
		bvy := a.VY * splitSpeedBoost
		vx := bvx*cos - bvy*sin
		vy := bvx*sin + bvy*cos

		variance := splitSpeedVarMin + rng.Float64()*(splitSpeedVarMax-splitSpeedVarMin)
		vx = vx*variance + shotVX*splitShotInherit
		vy = vy*variance + shotVY*splitShotInherit

		children = append(children, newAsteroidWith(a.X, a.Y, vx, vy, a.Tier-1, rng))
	}
	return children
}
