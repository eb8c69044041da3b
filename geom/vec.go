package geom

import "math"

// Vec2 represents a 2D vector in surface coordinates (y grows downwards)
type Vec2 struct {
	X float64
	Y float64
}

// V is shorthand for Vec2{x, y}
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// FromAngle returns a vector of the given length pointing along angle (radians, 0 = +x)
func FromAngle(angle, length float64) Vec2 {
	return Vec2{X: math.Cos(angle) * length, Y: math.Sin(angle) * length}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the Euclidean length of v
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between v and o
func (v Vec2) Dist(o Vec2) float64 {
	return o.Sub(v).Len()
}

// Rotate rotates v around the origin by angle radians
func (v Vec2) Rotate(angle float64) Vec2 {
	sinA := math.Sin(angle)
	cosA := math.Cos(angle)
	return Vec2{
		X: v.X*cosA - v.Y*sinA,
		Y: v.X*sinA + v.Y*cosA,
	}
}

// Angle returns the direction of v in radians
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Clamp returns x limited to [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
