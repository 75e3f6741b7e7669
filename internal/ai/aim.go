package ai

import (
	"github.com/tomz197/staroids/internal/loop/config"
	"github.com/tomz197/staroids/internal/object"
	"github.com/tomz197/staroids/internal/physics"
)

// aim returns the world heading for a shot at the target, across the
// seam when that is shorter. Predictive personalities lead the target
// by the shot's flight time; accuracy below 1 adds a uniform spread.
// Callers guarantee the target exists.
func (d *Driver) aim(u *object.UFO, view View) float64 {
	ship := view.Ship
	delta := toTarget(u, ship.X, ship.Y, view.Arena)
	if u.Params.Predictive {
		if dist := delta.Mag(); dist > 0 {
			flight := dist / config.EnemyShotSpeed
			delta = delta.Add(physics.Vec{X: ship.VX, Y: ship.VY}.Scale(flight))
		}
	}
	angle := delta.Angle()
	if u.Params.Accuracy < 1 {
		spread := (1 - u.Params.Accuracy) * aimSpreadMax
		angle += (d.rng.Float64()*2 - 1) * spread
	}
	return angle
}
