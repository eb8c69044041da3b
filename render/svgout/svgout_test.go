package svgout

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyscenes/draw"
	"skyscenes/geom"
)

func wellFormed(t *testing.T, doc []byte) []string {
	t.Helper()
	var names []string
	d := xml.NewDecoder(bytes.NewReader(doc))
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			return names
		}
		require.NoError(t, err)
		if se, ok := tok.(xml.StartElement); ok {
			names = append(names, se.Name.Local)
		}
	}
}

func TestCanvasDocument(t *testing.T) {
	c := draw.NewCanvas(120, 80)
	c.Fill(draw.Solid(draw.Black))
	c.Circle(geom.V(16.25, 8), 4, draw.Solid(draw.MustHex("#ff5733").WithAlpha(0.5)))
	c.SetBlend(draw.BlendAdd)
	c.Ellipse(geom.V(60, 40), 20, 8, 0.5, draw.Fill(draw.RadialGradient(geom.V(60, 40), 2, 18,
		draw.Stop{Offset: 0, Color: draw.White},
		draw.Stop{Offset: 1, Color: draw.White.WithAlpha(0)},
	)))
	c.SetBlend(draw.BlendNormal)
	c.Line(geom.V(0, 0), geom.V(10, 10), 2, draw.Solid(draw.White))
	c.Label(geom.V(10, 70), "skyscenes", 13, draw.White)

	var buf bytes.Buffer
	require.NoError(t, Canvas(&buf, c, "fireworks"))
	doc := buf.String()

	names := wellFormed(t, buf.Bytes())
	assert.Equal(t, "svg", names[0])
	assert.Contains(t, names, "radialGradient")
	assert.Contains(t, names, "polygon")
	assert.Contains(t, names, "ellipse")
	assert.Contains(t, names, "line")
	assert.Contains(t, names, "text")

	assert.Contains(t, doc, `width="120"`)
	assert.Contains(t, doc, "scale(0.1)")
	assert.Contains(t, doc, `cx="163"`, "coordinates keep a decimal place")
	assert.Contains(t, doc, "fill-opacity:0.500")
	assert.Contains(t, doc, "url(#g0)")
	assert.Contains(t, doc, "mix-blend-mode:plus-lighter")
	assert.Contains(t, doc, `offset="0.1111"`, "inner radius remaps the first stop")
	assert.Contains(t, doc, "<title>fireworks</title>")
}

func TestLinearGradientIDsAreUnique(t *testing.T) {
	c := draw.NewCanvas(10, 10)
	g := draw.LinearGradient(geom.V(0, 0), geom.V(0, 10),
		draw.Stop{Offset: 0, Color: draw.Black}, draw.Stop{Offset: 1, Color: draw.White})
	c.Fill(draw.Fill(g))
	c.Rect(0, 0, 5, 5, draw.Fill(g))

	var buf bytes.Buffer
	require.NoError(t, Writer{}.Write(&buf, 10, 10, c.Commands()))
	assert.Contains(t, buf.String(), `id="g0"`)
	assert.Contains(t, buf.String(), `id="g1"`)
	assert.NotContains(t, buf.String(), "<title>")
	wellFormed(t, buf.Bytes())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteReportsError(t *testing.T) {
	err := Writer{}.Write(failWriter{}, 10, 10, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
