package geom

import "math"

// Affine is a 2D affine transform laid out like a canvas matrix:
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// Mul returns m·n, so that n is applied first
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Translate appends a translation in local coordinates
func (m Affine) Translate(x, y float64) Affine {
	return m.Mul(Affine{A: 1, D: 1, E: x, F: y})
}

// Rotate appends a rotation in local coordinates
func (m Affine) Rotate(angle float64) Affine {
	s, c := math.Sincos(angle)
	return m.Mul(Affine{A: c, B: s, C: -s, D: c})
}

// Scale appends a scale in local coordinates
func (m Affine) Scale(sx, sy float64) Affine {
	return m.Mul(Affine{A: sx, D: sy})
}

// Apply maps a local point to the outer coordinate space
func (m Affine) Apply(p Vec2) Vec2 {
	return Vec2{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// ScaleFactor is the mean linear scale of the transform, used for radii and stroke widths
func (m Affine) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}

// Rotation is the angle the transform turns the local +x axis by
func (m Affine) Rotation() float64 {
	return math.Atan2(m.B, m.A)
}

// AxisScale returns the length of the transformed local x and y unit vectors
func (m Affine) AxisScale() (sx, sy float64) {
	return math.Hypot(m.A, m.B), math.Hypot(m.C, m.D)
}
