package scene

import (
	"math"

	"skyscenes/asset"
	"skyscenes/draw"
	"skyscenes/geom"
	"skyscenes/sim"
)

// GlowPulse is the under-glow intensity at time t
func GlowPulse(t float64) float64 {
	return 0.7 + 0.3*math.Sin(3*t)
}

// NavBlink is the nav light intensity of arm i at time t
func NavBlink(t float64, i int) float64 {
	return 0.35 + 0.65*(0.5+0.5*math.Sin(6*t+float64(i)*math.Pi*0.65))
}

// PropAngle is the rotation of a propeller spinning at speed rad/s
func PropAngle(t, speed float64) float64 {
	return t * speed
}

// DrawDrone renders d at time t. Geometry is authored at size 100 and the
// body is drawn nose along +x after rotating by the pose heading.
func DrawDrone(c *draw.Canvas, art asset.Drone, d *sim.Drone, t float64) {
	pose := d.Pose(t)
	k := d.Size / 100

	c.Save()
	c.Translate(d.Anchor.X+pose.Offset.X, d.Anchor.Y+pose.Offset.Y)
	c.Rotate(pose.Heading)

	c.Save()
	c.Scale(k, k)
	drawHull(c, art, t)
	c.Restore()

	c.Save()
	c.Scale(k, k)
	c.Rotate(math.Pi / 4)
	for i := range 4 {
		c.Save()
		drawArm(c, art)
		c.Translate(art.PropOffset, 0)
		drawPropeller(c, art, PropAngle(t, d.PropSpeeds[i]))
		drawNavLight(c, art, i, NavBlink(t, i))
		c.Restore()
		c.Rotate(math.Pi / 2)
	}
	c.Restore()

	c.Restore()
}

func drawHull(c *draw.Canvas, art asset.Drone, t float64) {
	g := art.Glow
	center := geom.V(g.X, g.Y)
	pulse := GlowPulse(t)
	stops := make([]draw.Stop, len(g.Stops))
	for i, s := range g.Stops {
		stops[i] = draw.Stop{Offset: s.Offset, Color: s.Color.Color().Fade(pulse)}
	}
	c.Save()
	c.SetBlend(draw.BlendAdd)
	c.Ellipse(center, g.RX, g.RY, 0, draw.Fill(draw.RadialGradient(center, g.R0, g.R1, stops...)))
	c.Restore()

	tl := art.TailLight
	c.Polygon(draw.ArcPoints(geom.V(tl.X, tl.Y), tl.Radius, math.Pi/2, math.Pi*1.5, 16), draw.Solid(tl.Color.Color()))

	for _, r := range art.Body {
		c.Rect(r.X, r.Y, r.W, r.H, draw.Solid(r.Color.Color()))
	}
}

func drawArm(c *draw.Canvas, art asset.Drone) {
	c.Polygon(asset.Path(art.Arm), draw.Solid(art.ArmColor.Color()))
	c.Polygon(asset.Path(art.ArmDetail), draw.Solid(art.ArmDetailColor.Color()))
	for _, r := range art.Motor {
		c.Rect(r.X, r.Y, r.W, r.H, draw.Solid(r.Color.Color()))
	}
}

// blades returns the two opposed blade outlines
func blades(art asset.Drone) [2][]geom.Vec2 {
	a := asset.Path(art.Blade)
	b := make([]geom.Vec2, len(a))
	for i, p := range a {
		b[i] = p.Rotate(math.Pi)
	}
	return [2][]geom.Vec2{a, b}
}

func drawPropeller(c *draw.Canvas, art asset.Drone, angle float64) {
	bs := blades(art)

	// Soft drop shadow: the blades again, offset down in the arm frame
	c.Save()
	c.Translate(0, art.ShadowOffset)
	c.Rotate(angle)
	for _, b := range bs {
		c.Polygon(b, draw.Solid(art.Shadow.Color()))
	}
	c.Restore()

	c.Save()
	c.Rotate(angle)
	for _, b := range bs {
		c.Polygon(b, draw.Solid(art.BladeColor.Color()))
	}
	for _, h := range art.Hubs {
		c.Circle(geom.V(h.X, h.Y), h.Radius, draw.Solid(h.Color.Color()))
	}
	c.Restore()
}

func drawNavLight(c *draw.Canvas, art asset.Drone, i int, blink float64) {
	base := art.NavLights[i%len(art.NavLights)].Color()
	glow := draw.RadialGradient(geom.Vec2{}, art.NavInner, art.NavRadius,
		draw.Stop{Offset: 0, Color: base.WithAlpha(art.NavAlpha * blink)},
		draw.Stop{Offset: 1, Color: base.WithAlpha(0)},
	)
	c.Circle(geom.Vec2{}, art.NavRadius, draw.Fill(glow))
}
