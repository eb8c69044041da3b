// Package svgout writes recorded canvas commands as an SVG document.
//
// svgo works in integer user units, so the document wraps everything in a
// scale(0.1) group and emits coordinates multiplied by ten to keep sub-pixel
// detail.
package svgout

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"skyscenes/draw"
)

const precision = 10

func u(v float64) int {
	return int(math.Round(v * precision))
}

// Writer emits one SVG document per Write call
type Writer struct {
	Title string
}

// Write renders cmds onto a width×height document
func (w Writer) Write(out io.Writer, width, height float64, cmds []draw.Command) error {
	ew := &errWriter{w: out}
	s := svg.New(ew)
	s.Start(int(math.Ceil(width)), int(math.Ceil(height)))
	if w.Title != "" {
		s.Title(w.Title)
	}
	s.Gtransform(fmt.Sprintf("scale(%g)", 1.0/precision))
	e := emitter{s: s}
	for _, c := range cmds {
		e.command(c)
	}
	s.Gend()
	s.End()
	return ew.err
}

// Canvas writes a recorded canvas at its own size
func Canvas(out io.Writer, c *draw.Canvas, title string) error {
	return Writer{Title: title}.Write(out, c.Width(), c.Height(), c.Commands())
}

type emitter struct {
	s   *svg.SVG
	ids int
}

func (e *emitter) command(c draw.Command) {
	style := e.style(c)
	switch c.Shape {
	case draw.ShapeCircle:
		e.s.Circle(u(c.Center.X), u(c.Center.Y), u(c.Radius), style)
	case draw.ShapeEllipse:
		cx, cy := u(c.Center.X), u(c.Center.Y)
		e.s.Gtransform(fmt.Sprintf("rotate(%g %d %d)", c.Angle*180/math.Pi, cx, cy))
		e.s.Ellipse(cx, cy, u(c.RX), u(c.RY), style)
		e.s.Gend()
	case draw.ShapePolygon:
		xs, ys := make([]int, len(c.Points)), make([]int, len(c.Points))
		for i, p := range c.Points {
			xs[i], ys[i] = u(p.X), u(p.Y)
		}
		e.s.Polygon(xs, ys, style)
	case draw.ShapeLine:
		a, b := c.Points[0], c.Points[1]
		e.s.Line(u(a.X), u(a.Y), u(b.X), u(b.Y), style)
	case draw.ShapeLabel:
		e.s.Text(u(c.Center.X), u(c.Center.Y), c.Text, style)
	}
}

func (e *emitter) style(c draw.Command) string {
	paint := e.paint(c.Paint)
	var parts []string
	switch c.Shape {
	case draw.ShapeLine:
		parts = append(parts, "fill:none", "stroke:"+paint,
			fmt.Sprintf("stroke-width:%d", u(c.Width)), "stroke-linecap:round")
		if !c.Paint.IsGradient() {
			parts = append(parts, fmt.Sprintf("stroke-opacity:%.3f", c.Paint.Color.A))
		}
	case draw.ShapeLabel:
		parts = append(parts, "fill:"+paint, fmt.Sprintf("font-size:%dpx", u(c.Size)), "font-family:sans-serif")
	default:
		parts = append(parts, "fill:"+paint)
	}
	if c.Shape != draw.ShapeLine && !c.Paint.IsGradient() {
		parts = append(parts, fmt.Sprintf("fill-opacity:%.3f", c.Paint.Color.A))
	}
	if c.Blend == draw.BlendAdd {
		parts = append(parts, "mix-blend-mode:plus-lighter")
	}
	return strings.Join(parts, ";")
}

// paint returns a fill value, defining a gradient first when needed
func (e *emitter) paint(p draw.Paint) string {
	if !p.IsGradient() {
		return p.Color.Hex()
	}
	id := fmt.Sprintf("g%d", e.ids)
	e.ids++

	g := p.Gradient
	e.s.Def()
	w := e.s.Writer
	switch g.Kind {
	case draw.Radial:
		// SVG has no inner radius; stops are remapped onto [r0/r1, 1]
		fmt.Fprintf(w, `<radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%d" cy="%d" r="%d">`+"\n",
			id, u(g.End.X), u(g.End.Y), u(g.R1))
		inner := 0.0
		if g.R1 > 0 {
			inner = math.Max(0, g.R0/g.R1)
		}
		for _, s := range g.Stops {
			stop(w, inner+(1-inner)*s.Offset, s.Color)
		}
		fmt.Fprintln(w, `</radialGradient>`)
	default:
		fmt.Fprintf(w, `<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%d" y1="%d" x2="%d" y2="%d">`+"\n",
			id, u(g.Start.X), u(g.Start.Y), u(g.End.X), u(g.End.Y))
		for _, s := range g.Stops {
			stop(w, s.Offset, s.Color)
		}
		fmt.Fprintln(w, `</linearGradient>`)
	}
	e.s.DefEnd()
	return "url(#" + id + ")"
}

func stop(w io.Writer, offset float64, c draw.Color) {
	fmt.Fprintf(w, `<stop offset="%.4f" stop-color="%s" stop-opacity="%.3f"/>`+"\n", offset, c.Hex(), c.A)
}

// errWriter remembers the first write error so svgo's unchecked writes
// surface to the caller
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
