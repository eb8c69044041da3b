package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"skyscenes/draw"
	"skyscenes/geom"
)

// gradientRings is the number of concentric rings used to shade a radial
// gradient across a circle or ellipse
const gradientRings = 10

// Renderer replays canvas commands onto an ebiten image as colored meshes
type Renderer struct {
	white *ebiten.Image
	face  text.Face

	vs []ebiten.Vertex
	is []uint16
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return &Renderer{
		white: img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		face:  text.NewGoXFace(basicfont.Face7x13),
	}
}

// Render draws cmds in order
func (r *Renderer) Render(screen *ebiten.Image, cmds []draw.Command) {
	for _, c := range cmds {
		r.renderCommand(screen, c)
	}
}

func (r *Renderer) renderCommand(screen *ebiten.Image, c draw.Command) {
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	if c.Blend == draw.BlendAdd {
		op.Blend = ebiten.BlendLighter
	}

	r.vs, r.is = r.vs[:0], r.is[:0]
	switch c.Shape {
	case draw.ShapeCircle:
		r.vs, r.is = appendEllipse(r.vs, r.is, c.Center, c.Radius, c.Radius, 0, c.Paint)
	case draw.ShapeEllipse:
		r.vs, r.is = appendEllipse(r.vs, r.is, c.Center, c.RX, c.RY, c.Angle, c.Paint)
	case draw.ShapePolygon:
		var path vector.Path
		path.MoveTo(float32(c.Points[0].X), float32(c.Points[0].Y))
		for _, p := range c.Points[1:] {
			path.LineTo(float32(p.X), float32(p.Y))
		}
		path.Close()
		r.vs, r.is = path.AppendVerticesAndIndicesForFilling(r.vs, r.is)
		shade(r.vs, c.Paint)
		op.FillRule = ebiten.FillRuleNonZero
	case draw.ShapeLine:
		var path vector.Path
		path.MoveTo(float32(c.Points[0].X), float32(c.Points[0].Y))
		path.LineTo(float32(c.Points[1].X), float32(c.Points[1].Y))
		r.vs, r.is = path.AppendVerticesAndIndicesForStroke(r.vs, r.is, &vector.StrokeOptions{
			Width:   float32(c.Width),
			LineCap: vector.LineCapRound,
		})
		shade(r.vs, c.Paint)
	case draw.ShapeLabel:
		r.label(screen, c)
		return
	}
	if len(r.is) == 0 {
		return
	}
	screen.DrawTriangles(r.vs, r.is, r.white, op)
}

func (r *Renderer) label(screen *ebiten.Image, c draw.Command) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(c.Center.X, c.Center.Y-r.face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(c.Paint.Color.NRGBA())
	text.Draw(screen, c.Text, r.face, op)
}

// segments picks a ring resolution that keeps edges smooth at radius r
func segments(r float64) int {
	return int(geom.Clamp(math.Ceil(r*0.75)+12, 12, 96))
}

// appendEllipse tessellates a filled ellipse as a center fan. Gradient
// paints get concentric rings so the color is sampled across the radius.
func appendEllipse(vs []ebiten.Vertex, is []uint16, center geom.Vec2, rx, ry, angle float64, p draw.Paint) ([]ebiten.Vertex, []uint16) {
	if rx <= 0 || ry <= 0 {
		return vs, is
	}
	n := segments(math.Max(rx, ry))
	rings := 1
	if p.IsGradient() {
		rings = gradientRings
	}

	base := uint16(len(vs))
	vs = append(vs, vertex(center, colorAt(p, center)))
	for ring := 1; ring <= rings; ring++ {
		f := float64(ring) / float64(rings)
		for i := range n {
			a := 2 * math.Pi * float64(i) / float64(n)
			pt := center.Add(geom.V(math.Cos(a)*rx*f, math.Sin(a)*ry*f).Rotate(angle))
			vs = append(vs, vertex(pt, colorAt(p, pt)))
		}
	}

	ringStart := func(ring int) uint16 { return base + 1 + uint16((ring-1)*n) }
	for i := range n {
		j := (i + 1) % n
		first := ringStart(1)
		is = append(is, base, first+uint16(i), first+uint16(j))
	}
	for ring := 2; ring <= rings; ring++ {
		in, out := ringStart(ring-1), ringStart(ring)
		for i := range n {
			j := (i + 1) % n
			is = append(is,
				in+uint16(i), out+uint16(i), out+uint16(j),
				in+uint16(i), out+uint16(j), in+uint16(j),
			)
		}
	}
	return vs, is
}

// shade colors path vertices from the paint at each vertex position
func shade(vs []ebiten.Vertex, p draw.Paint) {
	for i := range vs {
		v := &vs[i]
		c := colorAt(p, geom.V(float64(v.DstX), float64(v.DstY)))
		setColor(v, c)
	}
}

func colorAt(p draw.Paint, at geom.Vec2) draw.Color {
	if p.IsGradient() {
		return p.Gradient.ColorAt(at)
	}
	return p.Color
}

func vertex(at geom.Vec2, c draw.Color) ebiten.Vertex {
	v := ebiten.Vertex{DstX: float32(at.X), DstY: float32(at.Y), SrcX: 1, SrcY: 1}
	setColor(&v, c)
	return v
}

func setColor(v *ebiten.Vertex, c draw.Color) {
	v.SrcX, v.SrcY = 1, 1
	v.ColorR = float32(c.R) / 255
	v.ColorG = float32(c.G) / 255
	v.ColorB = float32(c.B) / 255
	v.ColorA = float32(c.A)
}
