package sim

import "skyscenes/geom"

// FlightFrames returns the travel time in frames for covering distance at
// speed px/frame, never less than floor. A non-positive speed yields floor.
func FlightFrames(distance, speed, floor float64) float64 {
	if speed <= 0 {
		return floor
	}
	t := distance / speed
	if t < floor {
		return floor
	}
	return t
}

// SolveBallistic returns the launch velocity that carries a body from origin
// to target in exactly t frames under constant downward gravity g:
//
//	vx = dx/t
//	vy = dy/t - g*t/2
//
// t must be the clamped flight time.
func SolveBallistic(origin, target geom.Vec2, t, g float64) geom.Vec2 {
	if t <= 0 {
		return geom.Vec2{}
	}
	d := target.Sub(origin)
	return geom.Vec2{
		X: d.X / t,
		Y: d.Y/t - 0.5*g*t,
	}
}

// BallisticPosition is the analytic position after t frames
func BallisticPosition(origin, vel geom.Vec2, t, g float64) geom.Vec2 {
	return geom.Vec2{
		X: origin.X + vel.X*t,
		Y: origin.Y + vel.Y*t + 0.5*g*t*t,
	}
}
