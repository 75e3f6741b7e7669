// Package config centralizes all tunable game parameters.
package config

import "time"

// World dimensions - the total playfield in world units. Positions wrap
// toroidally at these bounds for everything except the boss.
const (
	WorldWidth  = 1000.0
	WorldHeight = 750.0
)

// View window - the slice of the world the camera shows, in world
// units. The canvas scales it to whatever terminal size is available;
// the 3:2 ratio matches the max render resolution below, so shapes
// keep their aspect on typical 1:2 terminal fonts.
const (
	ViewWorldWidth  = 480.0
	ViewWorldHeight = 320.0
)

// Simulation tick
const (
	TickRate = 60
	TickTime = time.Second / TickRate
)

// Ship
const (
	ShipRadius        = 15.0
	ShipThrustPower   = 1250.0 // forward acceleration in units/s^2 before the curve multiplier
	ShipStrafePower   = 0.6    // fraction of thrust applied sideways
	ShipReversePower  = 0.5    // fraction of thrust applied backwards
	ShipRotationSpeed = 5.0    // radians/s
	ShipSpeedRef      = 1000.0 // reference speed for the thrust curve and dilation motion
	ShipVelocityDecay = 0.275  // velocity retained per second (72.5%/s decay)
)

// Lives, invulnerability
const (
	InitialLives          = 3
	MaxLives              = 5
	RespawnInvulnSeconds  = 3.0
	LevelInvulnSeconds    = 1.0
	PlayerBlinkFrequency  = 10.0 // Hz
	MaxUsernameLength     = 16   // Maximum display length for player usernames
	RespawnDelaySeconds   = 1.0
	LevelAdvanceDelaySecs = 1.2
)

// Shield
const (
	ShieldLayers        = 3
	ShieldRechargeSecs  = 3.0 // per emptied layer, timers run independently
	ShieldVisualSeconds = 1.0 // how long a hit keeps the shield ring visible
	ShieldCollideRadius = ShipRadius + 15.0
)

// Scoring
const (
	ScoreAsteroidPerTier = 11
	ScoreUFOKill         = 200
	ScoreUFORamKill      = 100 // UFO destroyed by ramming it with the shield up
	ScoreBossKill        = 1000

	MultiplierStep      = 0.5
	MultiplierCap       = 10.0
	MultiplierGraceSecs = 0.5 // no-kill interval before decay starts
	MultiplierDecaySecs = 5.0 // linear decay back to 1.0 takes this long

	MilestoneShieldScore  = 25000  // shield recharge
	MilestoneAbilityScore = 100000 // shield + ability recharge
	MilestoneLifeStride   = 250000 // extra life + full recharge, repeating
)

// Ship fire control
const (
	ShotIntervalStart = 0.09  // seconds between shots when fire is first held
	ShotIntervalPeak  = 0.042 // fastest interval, reached RofPeakSeconds into a burst
	ShotIntervalSlow  = 0.17  // slowest interval at the end of the curve
	RofCurveSeconds   = 11.38
	RofPeakSeconds    = 2.0
	ShotSpeed         = 400.0
	ShotMuzzleOffset  = 25.0
	ShotMaxRange      = 1000.0
	ShotRadius        = 2.0
	EnemyShotSpeed    = 200.0
	EnemyShotMaxRange = 2000.0
)

// Ability blasts
const (
	AbilityMaxCharges      = 2
	AbilityChargeSeconds   = 10.0
	AbilityFirstChargeSecs = 5.0 // first charge of a fresh game fills faster
	AbilityBlastsPerCharge = 2
	AbilityStaggerMinSecs  = 0.2
	AbilityStaggerMaxSecs  = 0.42
	AbilityUFOKillFraction = 0.3
	AbilityMotionSurge     = 1000.0
	AbilityMotionSurgeSecs = 0.1
)

// UFO scheduling
const (
	UFOFirstSpawnSeconds = 5.0
	UFOSpawnInterval     = 1.0
	UFOMassSpawnChance   = 0.1
	UFODeadlyChance      = 0.5
)

// Boss
const (
	BossLevelInterval = 5 // a boss joins the wave every Nth level
	BossRadius        = 120.0
	BossSpeed         = 60.0
	BossAmplitude     = 10.0
	BossFrequency     = 0.1 // Hz
	BossHits          = 25
	BossFireInterval  = 1.4
)

// Population caps. The spawner refuses anything beyond these and counts
// the refusal; gameplay continues.
const (
	MaxAsteroids   = 512
	MaxUFOs        = 24
	MaxProjectiles = 256
	MaxParticles   = 2048
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering. Terminals larger than the max render resolution get
// a centered canvas with a border around it.
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxTermWidth          = 150
	MaxTermHeight         = 50
)
