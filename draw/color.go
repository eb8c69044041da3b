package draw

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB triple with a straight (non-premultiplied) alpha in [0,1]
type Color struct {
	R, G, B uint8
	A       float64
}

// Common colors
var (
	Black = Color{A: 1}
	White = Color{R: 255, G: 255, B: 255, A: 1}
)

// RGBA builds a color the way a canvas rgba() literal reads
func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// ParseHex parses "#RRGGBB" or "#RGB" into an opaque color
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: 1}, nil
}

// MustHex is ParseHex for package-level literals
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// WithAlpha returns c with its alpha replaced, clamped to [0,1]
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// Fade multiplies the alpha of c by k
func (c Color) Fade(k float64) Color {
	return c.WithAlpha(c.A * k)
}

// Hex returns the "#rrggbb" form of the color channels
func (c Color) Hex() string {
	return c.colorful().Hex()
}

// NRGBA converts to the image/color form used by raster backends
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(clamp01(c.A)*255 + 0.5)}
}

// Lerp blends two colors in RGB space; alpha is interpolated linearly
func Lerp(a, b Color, t float64) Color {
	t = clamp01(t)
	mixed := a.colorful().BlendRgb(b.colorful(), t).Clamped()
	r, g, bl := mixed.RGB255()
	return Color{R: r, G: g, B: bl, A: a.A + (b.A-a.A)*t}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
