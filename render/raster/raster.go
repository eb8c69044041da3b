// Package raster paints recorded canvas commands into an RGBA image with gg.
package raster

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"skyscenes/draw"
)

// Renderer owns a destination image and a scratch layer for additive draws.
// It is not safe for concurrent use.
type Renderer struct {
	img *image.RGBA
	dc  *gg.Context

	scratch *image.RGBA
	sdc     *gg.Context

	face font.Face
}

// New returns a renderer for a width×height surface
func New(width, height int) *Renderer {
	width, height = max(width, 1), max(height, 1)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scratch := image.NewRGBA(img.Rect)
	r := &Renderer{
		img:     img,
		dc:      gg.NewContextForRGBA(img),
		scratch: scratch,
		sdc:     gg.NewContextForRGBA(scratch),
		face:    basicfont.Face7x13,
	}
	r.dc.SetFontFace(r.face)
	r.sdc.SetFontFace(r.face)
	return r
}

// Image returns the destination image
func (r *Renderer) Image() *image.RGBA {
	return r.img
}

// Render clears to transparent and paints cmds in order
func (r *Renderer) Render(cmds []draw.Command) *image.RGBA {
	clear(r.img.Pix)
	for _, c := range cmds {
		r.paint(c)
	}
	return r.img
}

// EncodePNG writes the current image as PNG
func (r *Renderer) EncodePNG(w io.Writer) error {
	return gg.NewContextForRGBA(r.img).EncodePNG(w)
}

// Canvas renders a recorded canvas at its own size
func Canvas(c *draw.Canvas) *image.RGBA {
	return New(int(math.Ceil(c.Width())), int(math.Ceil(c.Height()))).Render(c.Commands())
}

func (r *Renderer) paint(c draw.Command) {
	if c.Blend != draw.BlendAdd {
		fill(r.dc, c)
		return
	}
	region := bounds(c).Intersect(r.img.Rect)
	if region.Empty() {
		return
	}
	fill(r.sdc, c)
	addInto(r.img, r.scratch, region)
}

func bounds(c draw.Command) image.Rectangle {
	lo, hi := c.Bounds()
	return image.Rect(
		int(math.Floor(lo.X))-1, int(math.Floor(lo.Y))-1,
		int(math.Ceil(hi.X))+1, int(math.Ceil(hi.Y))+1,
	)
}

// addInto sums premultiplied src into dst over region, saturating, and
// clears src there for the next additive command
func addInto(dst, src *image.RGBA, region image.Rectangle) {
	for y := region.Min.Y; y < region.Max.Y; y++ {
		i := dst.PixOffset(region.Min.X, y)
		j := src.PixOffset(region.Min.X, y)
		n := region.Dx() * 4
		d, s := dst.Pix[i:i+n], src.Pix[j:j+n]
		for k := range d {
			d[k] = uint8(min(255, int(d[k])+int(s[k])))
		}
		clear(s)
	}
}

func fill(dc *gg.Context, c draw.Command) {
	dc.Push()
	defer dc.Pop()

	switch c.Shape {
	case draw.ShapeCircle:
		dc.DrawCircle(c.Center.X, c.Center.Y, c.Radius)
	case draw.ShapeEllipse:
		dc.RotateAbout(c.Angle, c.Center.X, c.Center.Y)
		dc.DrawEllipse(c.Center.X, c.Center.Y, c.RX, c.RY)
	case draw.ShapePolygon:
		dc.MoveTo(c.Points[0].X, c.Points[0].Y)
		for _, p := range c.Points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
	case draw.ShapeLine:
		dc.SetStrokeStyle(pattern(c.Paint))
		dc.SetLineWidth(c.Width)
		dc.SetLineCapRound()
		dc.DrawLine(c.Points[0].X, c.Points[0].Y, c.Points[1].X, c.Points[1].Y)
		dc.Stroke()
		return
	case draw.ShapeLabel:
		dc.SetColor(c.Paint.Color.NRGBA())
		dc.DrawString(c.Text, c.Center.X, c.Center.Y)
		return
	}
	dc.SetFillStyle(pattern(c.Paint))
	dc.Fill()
}

// pattern maps a paint onto a gg pattern. Gradient geometry is already in
// surface coordinates, which is the space gg evaluates patterns in.
func pattern(p draw.Paint) gg.Pattern {
	if !p.IsGradient() {
		return gg.NewSolidPattern(p.Color.NRGBA())
	}
	g := p.Gradient
	var grad gg.Gradient
	switch g.Kind {
	case draw.Radial:
		grad = gg.NewRadialGradient(g.Start.X, g.Start.Y, g.R0, g.End.X, g.End.Y, g.R1)
	default:
		grad = gg.NewLinearGradient(g.Start.X, g.Start.Y, g.End.X, g.End.Y)
	}
	for _, s := range g.Stops {
		grad.AddColorStop(s.Offset, s.Color.NRGBA())
	}
	return grad
}

// At returns the composited color at (x, y)
func At(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}
