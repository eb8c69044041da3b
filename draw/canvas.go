package draw

import (
	"math"

	"skyscenes/geom"
)

// Shape identifies the primitive a Command draws
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeEllipse
	ShapePolygon
	ShapeLine
	ShapeLabel
)

func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeEllipse:
		return "ellipse"
	case ShapePolygon:
		return "polygon"
	case ShapeLine:
		return "line"
	case ShapeLabel:
		return "label"
	default:
		return "unknown"
	}
}

// Blend selects how a command composites onto what is already drawn
type Blend int

const (
	BlendNormal Blend = iota
	// BlendAdd sums source and destination ("lighter")
	BlendAdd
)

// Command is one filled primitive in surface coordinates
type Command struct {
	Shape Shape

	// Circle and ellipse geometry
	Center geom.Vec2
	Radius float64
	RX, RY float64
	Angle  float64

	// Polygon vertices, or the two endpoints of a line
	Points []geom.Vec2
	Width  float64

	// Label text and pixel height
	Text string
	Size float64

	Paint Paint
	Blend Blend
}

// Bounds returns the axis-aligned box covered by the command
func (c Command) Bounds() (min, max geom.Vec2) {
	switch c.Shape {
	case ShapeCircle:
		r := geom.V(c.Radius, c.Radius)
		return c.Center.Sub(r), c.Center.Add(r)
	case ShapeEllipse:
		e := math.Max(c.RX, c.RY)
		r := geom.V(e, e)
		return c.Center.Sub(r), c.Center.Add(r)
	case ShapeLabel:
		w := float64(len(c.Text)) * c.Size * 0.55
		return c.Center.Sub(geom.V(0, c.Size)), c.Center.Add(geom.V(w, 0))
	}
	if len(c.Points) == 0 {
		return geom.Vec2{}, geom.Vec2{}
	}
	min, max = c.Points[0], c.Points[0]
	for _, p := range c.Points[1:] {
		min.X, min.Y = math.Min(min.X, p.X), math.Min(min.Y, p.Y)
		max.X, max.Y = math.Max(max.X, p.X), math.Max(max.Y, p.Y)
	}
	pad := c.Width / 2
	return min.Sub(geom.V(pad, pad)), max.Add(geom.V(pad, pad))
}

type state struct {
	m     geom.Affine
	alpha float64
	blend Blend
}

// Canvas records draw commands through a save/restore transform stack.
// Commands are flattened into surface coordinates as they are recorded, so
// backends only ever see absolute geometry.
type Canvas struct {
	width, height float64
	cur           state
	stack         []state
	cmds          []Command
}

// NewCanvas returns an empty canvas for a surface of the given size
func NewCanvas(width, height float64) *Canvas {
	c := &Canvas{}
	c.Reset(width, height)
	return c
}

// Reset clears recorded commands and the transform stack
func (c *Canvas) Reset(width, height float64) {
	c.width, c.height = width, height
	c.cur = state{m: geom.Identity(), alpha: 1}
	c.stack = c.stack[:0]
	c.cmds = c.cmds[:0]
}

func (c *Canvas) Width() float64  { return c.width }
func (c *Canvas) Height() float64 { return c.height }

// Commands returns the recorded command list
func (c *Canvas) Commands() []Command {
	return c.cmds
}

// Transform returns the current local-to-surface transform
func (c *Canvas) Transform() geom.Affine {
	return c.cur.m
}

func (c *Canvas) Save() {
	c.stack = append(c.stack, c.cur)
}

func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.cur = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Canvas) Translate(x, y float64) {
	c.cur.m = c.cur.m.Translate(x, y)
}

func (c *Canvas) Rotate(angle float64) {
	c.cur.m = c.cur.m.Rotate(angle)
}

func (c *Canvas) Scale(sx, sy float64) {
	c.cur.m = c.cur.m.Scale(sx, sy)
}

// SetAlpha sets the global alpha applied to subsequent commands
func (c *Canvas) SetAlpha(a float64) {
	c.cur.alpha = clamp01(a)
}

// SetBlend sets the compositing mode of subsequent commands
func (c *Canvas) SetBlend(b Blend) {
	c.cur.blend = b
}

func (c *Canvas) paint(p Paint) Paint {
	return p.transformed(c.cur.m).faded(c.cur.alpha)
}

func (c *Canvas) push(cmd Command) {
	cmd.Blend = c.cur.blend
	c.cmds = append(c.cmds, cmd)
}

// Fill covers the whole surface, ignoring the current transform
func (c *Canvas) Fill(p Paint) {
	c.push(Command{
		Shape: ShapePolygon,
		Points: []geom.Vec2{
			{X: 0, Y: 0}, {X: c.width, Y: 0}, {X: c.width, Y: c.height}, {X: 0, Y: c.height},
		},
		Paint: p.faded(c.cur.alpha),
	})
}

// Circle fills a circle. Radii are scaled by the mean transform scale.
func (c *Canvas) Circle(center geom.Vec2, r float64, p Paint) {
	if r <= 0 {
		return
	}
	c.push(Command{
		Shape:  ShapeCircle,
		Center: c.cur.m.Apply(center),
		Radius: r * c.cur.m.ScaleFactor(),
		Paint:  c.paint(p),
	})
}

// Ellipse fills an ellipse rotated by angle in local coordinates
func (c *Canvas) Ellipse(center geom.Vec2, rx, ry, angle float64, p Paint) {
	if rx <= 0 || ry <= 0 {
		return
	}
	sx, sy := c.cur.m.AxisScale()
	c.push(Command{
		Shape:  ShapeEllipse,
		Center: c.cur.m.Apply(center),
		RX:     rx * sx,
		RY:     ry * sy,
		Angle:  angle + c.cur.m.Rotation(),
		Paint:  c.paint(p),
	})
}

// Polygon fills a closed polygon
func (c *Canvas) Polygon(points []geom.Vec2, p Paint) {
	if len(points) < 3 {
		return
	}
	pts := make([]geom.Vec2, len(points))
	for i, pt := range points {
		pts[i] = c.cur.m.Apply(pt)
	}
	c.push(Command{Shape: ShapePolygon, Points: pts, Paint: c.paint(p)})
}

// Rect fills an axis-aligned rectangle in local coordinates
func (c *Canvas) Rect(x, y, w, h float64, p Paint) {
	c.Polygon([]geom.Vec2{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}, p)
}

// Line strokes a segment with round caps
func (c *Canvas) Line(a, b geom.Vec2, width float64, p Paint) {
	c.push(Command{
		Shape:  ShapeLine,
		Points: []geom.Vec2{c.cur.m.Apply(a), c.cur.m.Apply(b)},
		Width:  width * c.cur.m.ScaleFactor(),
		Paint:  c.paint(p),
	})
}

// Label draws text with its baseline-left corner at pos
func (c *Canvas) Label(pos geom.Vec2, text string, size float64, col Color) {
	c.push(Command{
		Shape:  ShapeLabel,
		Center: c.cur.m.Apply(pos),
		Text:   text,
		Size:   size * c.cur.m.ScaleFactor(),
		Paint:  Solid(col.Fade(c.cur.alpha)),
	})
}

// ArcPoints approximates a circular arc as a polyline in local coordinates
func ArcPoints(center geom.Vec2, r, from, to float64, segments int) []geom.Vec2 {
	if segments < 1 {
		segments = 1
	}
	pts := make([]geom.Vec2, 0, segments+1)
	for i := 0; i <= segments; i++ {
		a := from + (to-from)*float64(i)/float64(segments)
		pts = append(pts, center.Add(geom.FromAngle(a, r)))
	}
	return pts
}
