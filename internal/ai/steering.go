package ai

import (
	"math"

	"github.com/tomz197/staroids/internal/object"
	"github.com/tomz197/staroids/internal/physics"
)

// steer blends the weighted steering vectors into a commanded velocity,
// caps it at the personality's maximum, and eases the heading toward
// it. A zero blend leaves the previous velocity alone.
func (d *Driver) steer(u *object.UFO, view View, w weights, dt float64) {
	var out physics.Vec
	if w.seek > 0 {
		out = out.Add(seekVec(u, view).Scale(w.seek))
	}
	if w.flee > 0 {
		out = out.Add(fleeVec(u, view).Scale(w.flee))
	}
	if w.flank > 0 {
		out = out.Add(flankVec(u, view).Scale(w.flank))
	}
	if w.swarm > 0 {
		out = out.Add(swarmVec(u, view).Scale(w.swarm))
	}
	if w.patrol > 0 {
		out = out.Add(patrolVec(u, dt).Scale(w.patrol))
	}
	if w.intercept > 0 {
		out = out.Add(interceptVec(u, view).Scale(w.intercept))
	}
	if w.evade > 0 {
		out = out.Add(evadeVec(u, view).Scale(w.evade))
	}
	out = out.Add(avoidVec(u, view).Scale(avoidWeight))

	if out.MagSq() == 0 {
		return
	}
	v := out.Limit(u.Params.MaxSpeed)
	u.VX, u.VY = v.X, v.Y

	// Ease the heading toward the new course. Dividing by the dilation
	// keeps the visible turn rate steady through slow motion, since dt
	// arrives already dilated.
	diff := wrapAngle(v.Angle() - u.Angle)
	rate := rotationRate / math.Max(view.Dilation, 0.1)
	u.Angle += diff * rate * dt
}

// toTarget returns the shortest arena delta from the craft to a point.
func toTarget(u *object.UFO, x, y float64, a object.Arena) physics.Vec {
	return physics.Vec{
		X: physics.WrapDelta(x-u.X, a.Width),
		Y: physics.WrapDelta(y-u.Y, a.Height),
	}
}

// seekVec homes on the target's last known position, which is current
// whenever the target is alive.
func seekVec(u *object.UFO, view View) physics.Vec {
	return toTarget(u, u.Brain.LastKnownX, u.Brain.LastKnownY, view.Arena).
		Normalize().Scale(u.Params.Speed)
}

// fleeVec runs straight away from the target.
func fleeVec(u *object.UFO, view View) physics.Vec {
	return seekVec(u, view).Scale(-1)
}

// flankVec moves to a waypoint beside the target, perpendicular to its
// heading.
func flankVec(u *object.UFO, view View) physics.Vec {
	if view.Ship == nil {
		return physics.Vec{}
	}
	ship := view.Ship
	side := math.Atan2(ship.VY, ship.VX) + math.Pi/2
	wx := ship.X + math.Cos(side)*flankOffset
	wy := ship.Y + math.Sin(side)*flankOffset
	return toTarget(u, wx, wy, view.Arena).Normalize().Scale(u.Params.Speed)
}

// interceptVec cuts the target off by leading its motion.
func interceptVec(u *object.UFO, view View) physics.Vec {
	if view.Ship == nil {
		return physics.Vec{}
	}
	ship := view.Ship
	wx := ship.X + ship.VX*interceptLead
	wy := ship.Y + ship.VY*interceptLead
	return toTarget(u, wx, wy, view.Arena).Normalize().Scale(u.Params.Speed)
}

// patrolVec sweeps horizontally with a slow vertical wobble.
func patrolVec(u *object.UFO, dt float64) physics.Vec {
	u.Brain.PatrolPhase += patrolWobble * dt
	return physics.Vec{
		X: u.Brain.PatrolDir * u.Params.Speed,
		Y: math.Sin(u.Brain.PatrolPhase) * patrolLift,
	}
}

// swarmVec coordinates with nearby craft: separation when crowded,
// alignment with the pack heading, cohesion toward its center. The
// result drifts at a fraction of cruise speed so target seeking stays
// dominant in the blend.
func swarmVec(u *object.UFO, view View) physics.Vec {
	var sep, align, coh physics.Vec
	n := 0
	for _, o := range view.UFOs {
		if o == u {
			continue
		}
		delta := toTarget(u, o.X, o.Y, view.Arena)
		distSq := delta.MagSq()
		if distSq > swarmRadius*swarmRadius {
			continue
		}
		n++
		coh = coh.Add(delta)
		align = align.Add(physics.Vec{X: o.VX, Y: o.VY})
		if dist := math.Sqrt(distSq); dist > 0 && dist < swarmSeparation {
			push := (swarmSeparation - dist) / swarmSeparation
			sep = sep.Add(delta.Scale(-push / dist))
		}
	}
	if n == 0 {
		return physics.Vec{}
	}
	blend := sep.Normalize().Scale(1.5).
		Add(align.Normalize()).
		Add(coh.Normalize())
	return blend.Normalize().Scale(u.Params.Speed * swarmDrift)
}

// evadeVec dodges live player shots, pushing harder the closer they fly.
func evadeVec(u *object.UFO, view View) physics.Vec {
	var force physics.Vec
	for _, shot := range view.Shots {
		delta := toTarget(u, shot.X, shot.Y, view.Arena)
		dist := delta.Mag()
		if dist == 0 || dist >= evadeRadius {
			continue
		}
		push := (evadeRadius - dist) / evadeRadius
		force = force.Add(delta.Scale(-push / dist))
	}
	return force.Normalize().Scale(u.Params.Speed)
}

// avoidVec repels from asteroids. The gap is measured surface to
// surface; the top tiers are wide enough that center distance alone
// would register far too late. Close rocks push twice as hard.
func avoidVec(u *object.UFO, view View) physics.Vec {
	var force physics.Vec
	for _, a := range view.Asteroids {
		delta := toTarget(u, a.X, a.Y, view.Arena)
		dist := delta.Mag()
		if dist == 0 {
			continue
		}
		gap := dist - a.Radius - u.Radius
		if gap >= avoidRadius {
			continue
		}
		if gap < 0 {
			gap = 0
		}
		push := (avoidRadius - gap) / avoidRadius * 2
		force = force.Add(delta.Scale(-push / dist))
	}
	return force.Normalize().Scale(u.Params.Speed)
}

// wrapAngle folds an angle into [-pi, pi].
func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
