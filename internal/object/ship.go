package object

import (
	"math"

	"github.com/tomz197/staroids/internal/loop/config"
	"github.com/tomz197/staroids/internal/physics"
)

// Ship is the player vessel. Kinematics and fire control live in Update;
// shield, ability, and life bookkeeping is driven by the effects engine
// through the exported mutators, so nothing else can bend those rules.
type Ship struct {
	X, Y   float64
	VX, VY float64
	Angle  float64 // heading in radians
	Radius float64

	Alive     bool
	Thrusting bool    // set during Update, read by the renderer
	Invuln    float64 // invulnerability seconds remaining

	// Shield. Layers counts intact layers; rechargeTimers holds one
	// independent countdown per emptied layer.
	Layers         int
	rechargeTimers [config.ShieldLayers]float64
	ShieldVisual   float64 // seconds the shield ring stays visible after a hit

	// Lives remaining, including the one in play.
	Lives int

	// Fire control. ShotInterval follows the ramp curve while fire is
	// held and resets when it is released.
	ShotInterval float64
	shotTimer    float64
	burstHeld    float64 // seconds fire has been continuously held

	// Burst ladder feeding the time-dilation motion term.
	burstIndex    int
	sinceLastShot float64

	// Ability charges.
	Charges     int
	chargeTimer float64
	firstCharge bool

	turnRate float64 // degrees per second, absolute, from the last update
}

// NewShip creates a live ship at the given position with full shield and
// starting lives. firstGame grants the faster first ability charge.
func NewShip(x, y float64, firstGame bool) *Ship {
	s := &Ship{
		X:            x,
		Y:            y,
		Angle:        -math.Pi / 2,
		Radius:       config.ShipRadius,
		Alive:        true,
		Layers:       config.ShieldLayers,
		Lives:        config.InitialLives,
		ShotInterval: config.ShotIntervalStart,
		firstCharge:  firstGame,
	}
	s.sinceLastShot = math.Inf(1)
	return s
}

// Kind implements Object.
func (s *Ship) Kind() Kind { return KindShip }

// Update advances ship kinematics and fire control by the dilated delta.
func (s *Ship) Update(ctx UpdateContext) (bool, error) {
	if !s.Alive {
		return false, nil
	}
	dt := ctx.Delta.Seconds()
	in := ctx.Controls

	// Rotation. Opposing inputs cancel.
	var turned float64
	if in.TurnLeft {
		turned -= config.ShipRotationSpeed * dt
	}
	if in.TurnRight {
		turned += config.ShipRotationSpeed * dt
	}
	s.Angle += turned
	s.turnRate = 0
	if dt > 0 {
		s.turnRate = math.Abs(turned) / dt * 180 / math.Pi
	}

	// Velocity decays every tick, thrusting or not; thrust fights the
	// decay, which is what gives the ship a terminal speed.
	decay := math.Pow(config.ShipVelocityDecay, dt)
	s.VX *= decay
	s.VY *= decay

	speed := math.Hypot(s.VX, s.VY)
	mult := physics.ThrustMultiplier(speed / config.ShipSpeedRef)
	accel := config.ShipThrustPower * mult * dt
	sin, cos := math.Sincos(s.Angle)

	s.Thrusting = in.Thrust
	if in.Thrust {
		s.VX += cos * accel
		s.VY += sin * accel
	}
	if in.Reverse {
		s.VX -= cos * accel * config.ShipReversePower
		s.VY -= sin * accel * config.ShipReversePower
	}
	if in.StrafeLeft {
		s.VX += sin * accel * config.ShipStrafePower
		s.VY -= cos * accel * config.ShipStrafePower
	}
	if in.StrafeRight {
		s.VX -= sin * accel * config.ShipStrafePower
		s.VY += cos * accel * config.ShipStrafePower
	}

	s.X += s.VX * dt
	s.Y += s.VY * dt
	ctx.Arena.WrapPosition(&s.X, &s.Y)

	if s.Invuln > 0 {
		s.Invuln -= dt
	}
	if s.ShieldVisual > 0 {
		s.ShieldVisual -= dt
	}

	if s.Thrusting && ctx.Spawner != nil && ctx.Rand != nil {
		SpawnThrust(s.X-cos*s.Radius, s.Y-sin*s.Radius, s.Angle+math.Pi, ctx.Rand, ctx.Spawner)
	}

	s.updateFire(ctx, dt, in.Fire, sin, cos)

	return false, nil
}

// updateFire advances the rate-of-fire curve and spawns a projectile when
// the cooldown allows.
func (s *Ship) updateFire(ctx UpdateContext, dt float64, firing bool, sin, cos float64) {
	if firing {
		s.burstHeld += dt
	} else {
		s.burstHeld = 0
	}
	s.ShotInterval = shotInterval(s.burstHeld, firing)

	s.sinceLastShot += dt
	if s.shotTimer > 0 {
		s.shotTimer -= dt
	}
	if !firing || s.shotTimer > 0 || ctx.Spawner == nil {
		return
	}

	speedMult := shotSpeedMultiplier(s.ShotInterval)
	vx := cos*config.ShotSpeed*speedMult + s.VX
	vy := sin*config.ShotSpeed*speedMult + s.VY
	px := s.X + cos*config.ShotMuzzleOffset
	py := s.Y + sin*config.ShotMuzzleOffset
	ctx.Spawner.Spawn(NewProjectile(px, py, vx, vy, OwnerPlayer))
	s.shotTimer = s.ShotInterval

	// Advance the burst ladder. A shot landing after the previous
	// bonus fully decayed starts a fresh burst.
	if s.burstBonus() <= 0 {
		s.burstIndex = 1
	} else {
		s.burstIndex++
	}
	s.sinceLastShot = 0
}

// shotInterval returns the seconds between shots t seconds into a held
// burst: a quartic ramp down to the peak rate over the first
// RofPeakSeconds, then a quadratic ease back up to the slow rate.
func shotInterval(t float64, firing bool) float64 {
	if !firing {
		return config.ShotIntervalStart
	}
	if t <= config.RofPeakSeconds {
		p := t / config.RofPeakSeconds
		smooth := p * p * p * p
		return config.ShotIntervalStart + (config.ShotIntervalPeak-config.ShotIntervalStart)*smooth
	}
	p := (t - config.RofPeakSeconds) / (config.RofCurveSeconds - config.RofPeakSeconds)
	if p > 1 {
		p = 1
	}
	smooth := 1 - (1-p)*(1-p)
	return config.ShotIntervalPeak + (config.ShotIntervalSlow-config.ShotIntervalPeak)*smooth
}

// shotSpeedMultiplier scales projectile speed by the current shot
// interval: faster firing throws faster bullets.
func shotSpeedMultiplier(interval float64) float64 {
	switch {
	case interval >= config.ShotIntervalSlow:
		return 0.75
	case interval <= config.ShotIntervalPeak:
		return 1.25
	default:
		progress := (interval - config.ShotIntervalStart) / (config.ShotIntervalSlow - config.ShotIntervalStart)
		return 1.0 - progress*0.25
	}
}

// Speed returns the ship's current speed in units per second.
func (s *Ship) Speed() float64 { return math.Hypot(s.VX, s.VY) }

// TurnRate returns the absolute turning rate of the last update in
// degrees per second.
func (s *Ship) TurnRate() float64 { return s.turnRate }

// burstBonus returns the raw ladder value for the current burst index.
func (s *Ship) burstBonus() float64 {
	if s.burstIndex <= 0 {
		return 0
	}
	step := s.burstIndex - 1
	if step > 3 {
		step = 3
	}
	base := 200.0 + 100.0*float64(step)
	fade := 1 - s.sinceLastShot/1.0
	if fade <= 0 {
		return 0
	}
	return base * fade
}

// BurstTerm returns the shooting contribution to aggregate motion: the
// burst ladder value decayed by time since the last shot.
func (s *Ship) BurstTerm() float64 { return s.burstBonus() }

// HitShield applies one hit. It removes a layer and starts that layer's
// recharge countdown, or reports destruction when no layers remain and
// no invulnerability is active. Invulnerability absorbs hits entirely.
func (s *Ship) HitShield() (destroyed bool) {
	if s.Invuln > 0 {
		return false
	}
	if s.Layers > 0 {
		s.Layers--
		s.rechargeTimers[s.Layers] = config.ShieldRechargeSecs
		s.ShieldVisual = config.ShieldVisualSeconds
		return false
	}
	return true
}

// AdvanceShieldRecharge ticks the per-layer recharge countdowns and
// restores a layer for each that completes. Called by the effects engine.
func (s *Ship) AdvanceShieldRecharge(dt float64) {
	for i := range s.rechargeTimers {
		if s.rechargeTimers[i] <= 0 {
			continue
		}
		s.rechargeTimers[i] -= dt
		if s.rechargeTimers[i] <= 0 {
			s.rechargeTimers[i] = 0
			if s.Layers < config.ShieldLayers {
				s.Layers++
			}
		}
	}
}

// RechargeShield instantly restores all layers and cancels pending
// recharges. Called by the effects engine on milestone rewards.
func (s *Ship) RechargeShield() {
	s.Layers = config.ShieldLayers
	for i := range s.rechargeTimers {
		s.rechargeTimers[i] = 0
	}
}

// AdvanceAbilityCharge accumulates ability charge time. The first charge
// of a fresh session fills faster; once both slots are full the timer
// idles. Called by the effects engine.
func (s *Ship) AdvanceAbilityCharge(dt float64) {
	if s.Charges >= config.AbilityMaxCharges {
		return
	}
	s.chargeTimer += dt
	need := config.AbilityChargeSeconds
	if s.firstCharge {
		need = config.AbilityFirstChargeSecs
	}
	if s.chargeTimer >= need {
		s.chargeTimer = 0
		s.firstCharge = false
		s.Charges++
	}
}

// RechargeAbility fills every ability slot. Called by the effects engine
// on milestone rewards.
func (s *Ship) RechargeAbility() {
	s.Charges = config.AbilityMaxCharges
	s.chargeTimer = 0
	s.firstCharge = false
}

// ChargeProgress reports the fill fraction of the charging slot, for the
// HUD. Full slots report 1.
func (s *Ship) ChargeProgress() float64 {
	if s.Charges >= config.AbilityMaxCharges {
		return 1
	}
	need := config.AbilityChargeSeconds
	if s.firstCharge {
		need = config.AbilityFirstChargeSecs
	}
	return s.chargeTimer / need
}

// ConsumeCharges empties the ability slots and returns how many were
// consumed.
func (s *Ship) ConsumeCharges() int {
	n := s.Charges
	s.Charges = 0
	s.chargeTimer = 0
	return n
}

// AddLife grants an extra life up to the cap. Called by the effects
// engine on milestone rewards.
func (s *Ship) AddLife() {
	if s.Lives < config.MaxLives {
		s.Lives++
	}
}

// Kill marks the ship dead and spends a life. The session decides
// whether a respawn follows.
func (s *Ship) Kill() {
	s.Alive = false
	s.Thrusting = false
	if s.Lives > 0 {
		s.Lives--
	}
}

// Respawn places the ship back at the given position with full shield,
// zero velocity, and an invulnerability window.
func (s *Ship) Respawn(x, y float64, invulnSecs float64) {
	s.X, s.Y = x, y
	s.VX, s.VY = 0, 0
	s.Angle = -math.Pi / 2
	s.Alive = true
	s.Invuln = invulnSecs
	s.RechargeShield()
	s.ShotInterval = config.ShotIntervalStart
	s.shotTimer = 0
	s.burstHeld = 0
	s.burstIndex = 0
	s.sinceLastShot = math.Inf(1)
}
