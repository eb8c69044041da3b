package sim

import (
	"math"

	"skyscenes/geom"
)

// Keys is the held-key snapshot for the controlled drone
type Keys struct {
	Forward bool // W
	Back    bool // S
	Left    bool // A
	Right   bool // D
}

// Control is the mutable pose of an externally steered drone
type Control struct {
	Offset  geom.Vec2
	Heading float64
}

// NewControl returns a control resting at the anchor facing heading
func NewControl(heading float64) *Control {
	return &Control{Heading: heading}
}

// Limits returns the per-axis offset bound that keeps a body of the given
// size inside a surface whose anchor sits at its center. Never negative.
func Limits(width, height, size float64) geom.Vec2 {
	return geom.Vec2{
		X: math.Max(0, width/2-size),
		Y: math.Max(0, height/2-size),
	}
}

// Steer turns by turnSpeed rad/s on Left/Right, thrusts moveSpeed px/s along
// the heading on Forward/Back, then clamps the offset to ±limit per axis
func (c *Control) Steer(keys Keys, dt, moveSpeed, turnSpeed float64, limit geom.Vec2) {
	if dt < 0 {
		dt = 0
	}
	if keys.Left {
		c.Heading -= turnSpeed * dt
	}
	if keys.Right {
		c.Heading += turnSpeed * dt
	}

	var forward float64
	if keys.Forward {
		forward++
	}
	if keys.Back {
		forward--
	}
	c.Offset = c.Offset.Add(geom.FromAngle(c.Heading, forward*moveSpeed*dt))

	limit.X, limit.Y = math.Abs(limit.X), math.Abs(limit.Y)
	c.Offset.X = geom.Clamp(c.Offset.X, -limit.X, limit.X)
	c.Offset.Y = geom.Clamp(c.Offset.Y, -limit.Y, limit.Y)
}
