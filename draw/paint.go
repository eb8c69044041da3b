package draw

import (
	"sort"

	"skyscenes/geom"
)

// GradientKind selects how a gradient parameter is derived from a point
type GradientKind int

const (
	// Radial gradients run from Start (radius R0) to Start (radius R1)
	Radial GradientKind = iota
	// Linear gradients run along the segment Start→End
	Linear
)

// Stop is a color stop; Offset is in [0,1]
type Stop struct {
	Offset float64
	Color  Color
}

// Gradient is a canvas-style color ramp. Geometry is stored in surface
// coordinates once the canvas has applied its transform.
type Gradient struct {
	Kind   GradientKind
	Start  geom.Vec2
	End    geom.Vec2
	R0, R1 float64
	Stops  []Stop
}

// RadialGradient builds a concentric radial gradient around center
func RadialGradient(center geom.Vec2, r0, r1 float64, stops ...Stop) *Gradient {
	return &Gradient{Kind: Radial, Start: center, End: center, R0: r0, R1: r1, Stops: sortStops(stops)}
}

// LinearGradient builds a gradient from a to b
func LinearGradient(a, b geom.Vec2, stops ...Stop) *Gradient {
	return &Gradient{Kind: Linear, Start: a, End: b, Stops: sortStops(stops)}
}

func sortStops(stops []Stop) []Stop {
	out := append([]Stop(nil), stops...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out
}

// At returns the gradient color at parameter t in [0,1]
func (g *Gradient) At(t float64) Color {
	if len(g.Stops) == 0 {
		return Color{}
	}
	t = clamp01(t)
	first, last := g.Stops[0], g.Stops[len(g.Stops)-1]
	if t <= first.Offset {
		return first.Color
	}
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return Lerp(a.Color, b.Color, (t-a.Offset)/span)
	}
	return last.Color
}

// Param returns the ramp parameter for a point p in surface coordinates
func (g *Gradient) Param(p geom.Vec2) float64 {
	switch g.Kind {
	case Linear:
		d := g.End.Sub(g.Start)
		l2 := d.X*d.X + d.Y*d.Y
		if l2 == 0 {
			return 0
		}
		rel := p.Sub(g.Start)
		return clamp01((rel.X*d.X + rel.Y*d.Y) / l2)
	default:
		span := g.R1 - g.R0
		if span <= 0 {
			return 1
		}
		return clamp01((p.Dist(g.Start) - g.R0) / span)
	}
}

// ColorAt evaluates the gradient at a point
func (g *Gradient) ColorAt(p geom.Vec2) Color {
	return g.At(g.Param(p))
}

// Paint is either a solid color or a gradient
type Paint struct {
	Color    Color
	Gradient *Gradient
}

// Solid wraps a color as a paint
func Solid(c Color) Paint {
	return Paint{Color: c}
}

// Fill wraps a gradient as a paint
func Fill(g *Gradient) Paint {
	return Paint{Gradient: g}
}

// IsGradient reports whether the paint varies across the shape
func (p Paint) IsGradient() bool {
	return p.Gradient != nil
}

// Representative returns a single color standing in for the paint, used by
// backends that cannot shade per pixel
func (p Paint) Representative() Color {
	if p.Gradient == nil {
		return p.Color
	}
	return p.Gradient.At(0)
}

// faded multiplies every alpha in the paint by k, copying gradient stops
func (p Paint) faded(k float64) Paint {
	if k >= 1 {
		return p
	}
	if p.Gradient == nil {
		p.Color = p.Color.Fade(k)
		return p
	}
	g := *p.Gradient
	g.Stops = make([]Stop, len(p.Gradient.Stops))
	for i, s := range p.Gradient.Stops {
		g.Stops[i] = Stop{Offset: s.Offset, Color: s.Color.Fade(k)}
	}
	p.Gradient = &g
	return p
}

// transformed maps gradient geometry through m
func (p Paint) transformed(m geom.Affine) Paint {
	if p.Gradient == nil {
		return p
	}
	g := *p.Gradient
	g.Start = m.Apply(g.Start)
	g.End = m.Apply(g.End)
	s := m.ScaleFactor()
	g.R0 *= s
	g.R1 *= s
	p.Gradient = &g
	return p
}
