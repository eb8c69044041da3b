package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyscenes/draw"
	"skyscenes/geom"
	"skyscenes/sim"
)

func newScene(t *testing.T, name string, opts Options) Scene {
	t.Helper()
	s, err := New(name, opts)
	require.NoError(t, err)
	s.Resize(800, 600)
	return s
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"fireworks", "hero", "sandbox"}, Names())
}

func TestNewUnknownScene(t *testing.T) {
	_, err := New("aquarium", DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fireworks, hero, sandbox")
}

func TestNewIsCaseInsensitive(t *testing.T) {
	s, err := New("Fireworks", Options{Seed: 3, Fireworks: DefaultFireworksConfig()})
	require.NoError(t, err)
	assert.Equal(t, "fireworks", s.Name())
	assert.Equal(t, 120.0, s.TargetFPS())
}

func TestClampProbability(t *testing.T) {
	assert.Equal(t, 0.0, clampProbability(-1))
	assert.Equal(t, 1.0, clampProbability(7))
	assert.Equal(t, 0.25, clampProbability(0.25))
	assert.Equal(t, 0.0, clampProbability(math.NaN()))
}

func TestFireworksClickLaunchesShell(t *testing.T) {
	f := newScene(t, "fireworks", DefaultOptions()).(*Fireworks)

	f.Update(sim.FrameAt(1, 120), Input{Clicks: []geom.Vec2{geom.V(400, 100)}})
	require.Len(t, f.Shells(), 1)
	s := f.Shells()[0]
	assert.Equal(t, geom.V(400, 100), s.Target)
	assert.Equal(t, sim.ShellFlying, s.State)
	assert.Less(t, s.Remaining, s.Duration, "ticked once after launch")
	assert.GreaterOrEqual(t, s.Duration, 30.0)
}

func TestFireworksShellBurstsAtTarget(t *testing.T) {
	f := newScene(t, "fireworks", DefaultOptions()).(*Fireworks)
	f.Launch(geom.V(400, 100))

	var burst bool
	for range 2000 {
		f.Update(sim.FrameAt(1, 120), Input{})
		if len(f.Shells()) == 0 {
			break
		}
		s := f.Shells()[0]
		if s.State == sim.ShellArrived && !burst {
			burst = true
			assert.InDelta(t, 400, s.Pos.X, 1e-6)
			assert.InDelta(t, 100, s.Pos.Y, 1e-6)
			assert.NotEmpty(t, s.Particles)
		}
	}
	assert.True(t, burst)
	assert.Empty(t, f.Shells(), "finished shells are dropped")
}

func TestFireworksEmptyBurstCount(t *testing.T) {
	opts := DefaultOptions()
	opts.Fireworks.Shell.Burst.Count = sim.IntRange{Min: -10, Max: -1}
	f := newScene(t, "fireworks", opts).(*Fireworks)
	f.Launch(geom.V(400, 100))

	require.NotPanics(t, func() {
		for range 400 {
			f.Update(sim.FrameAt(1, 120), Input{})
		}
	})
	assert.Empty(t, f.Shells())
}

func TestFireworksSpawnProbability(t *testing.T) {
	f := newScene(t, "fireworks", DefaultOptions()).(*Fireworks)

	one := 1.0
	f.Update(sim.FrameAt(1, 120), Input{SpawnProbability: &one})
	assert.Equal(t, 1.0, f.SpawnProbability())
	assert.Len(t, f.Shells(), 1)
	f.Update(sim.FrameAt(1, 120), Input{})
	assert.Len(t, f.Shells(), 2)

	big := 4.0
	f.Update(sim.FrameAt(1, 120), Input{SpawnProbability: &big})
	assert.Equal(t, 1.0, f.SpawnProbability())

	zero := -0.5
	f.Update(sim.FrameAt(1, 120), Input{SpawnProbability: &zero})
	assert.Equal(t, 0.0, f.SpawnProbability())
	n := len(f.Shells())
	f.Update(sim.FrameAt(1, 120), Input{})
	assert.Len(t, f.Shells(), n)
}

func TestFireworksTargetsStayInBand(t *testing.T) {
	f := newScene(t, "fireworks", DefaultOptions()).(*Fireworks)
	for range 200 {
		tgt := f.randomTarget()
		assert.GreaterOrEqual(t, tgt.Y, 150.0)
		assert.Less(t, tgt.Y, 450.0)
		assert.GreaterOrEqual(t, tgt.X, 0.0)
		assert.Less(t, tgt.X, 800.0)
	}
}

func TestFireworksDrawDoesNotTouchSimulation(t *testing.T) {
	opts := DefaultOptions()
	a := newScene(t, "fireworks", opts).(*Fireworks)
	b := newScene(t, "fireworks", opts).(*Fireworks)
	a.Launch(geom.V(300, 200))
	b.Launch(geom.V(300, 200))

	c := draw.NewCanvas(800, 600)
	for range 400 {
		a.Update(sim.FrameAt(1, 120), Input{})
		b.Update(sim.FrameAt(1, 120), Input{})
		c.Reset(800, 600)
		a.Draw(c)
	}
	require.Equal(t, len(a.Shells()), len(b.Shells()))
	for i := range a.Shells() {
		assert.Equal(t, a.Shells()[i].Particles, b.Shells()[i].Particles)
	}
}

func TestFireworksDrawOrder(t *testing.T) {
	f := newScene(t, "fireworks", DefaultOptions()).(*Fireworks)
	f.Launch(geom.V(400, 100))
	f.Update(sim.FrameAt(1, 120), Input{})

	c := draw.NewCanvas(800, 600)
	f.Draw(c)
	cmds := c.Commands()
	require.NotEmpty(t, cmds)
	assert.Equal(t, draw.ShapePolygon, cmds[0].Shape, "background first")
	s := f.Shells()[0]
	assert.Len(t, cmds, 1+len(s.Trail)+1)
	assert.Equal(t, s.Pos, cmds[len(cmds)-1].Center, "shell head drawn over its trail")
}

func TestHeroEmitsAtLastPointer(t *testing.T) {
	h := newScene(t, "hero", DefaultOptions()).(*Hero)

	h.Update(sim.FrameAt(1, 60), Input{})
	assert.Empty(t, h.Particles(), "no pointer yet")

	p := geom.V(200, 300)
	h.Update(sim.FrameAt(1, 60), Input{Pointer: &p})
	require.Len(t, h.Particles(), 1)
	h.Update(sim.FrameAt(1, 60), Input{})
	require.Len(t, h.Particles(), 2, "keeps emitting at the last position")

	cfg := DefaultHeroConfig()
	for _, pt := range h.Particles() {
		assert.Less(t, pt.Pos.Dist(p), 2*cfg.Speed*math.Sqrt2+1e-9)
		assert.Less(t, pt.Radius, cfg.Size.Max)
	}
}

func TestHeroParticlesShrinkAway(t *testing.T) {
	h := newScene(t, "hero", DefaultOptions()).(*Hero)
	p := geom.V(100, 100)
	h.Update(sim.FrameAt(1, 60), Input{Pointer: &p})
	first := h.Particles()[0].Radius
	h.pointer = nil

	h.Update(sim.FrameAt(1, 60), Input{})
	assert.InDelta(t, first-0.01, h.Particles()[0].Radius, 1e-12)

	for range 500 {
		h.Update(sim.FrameAt(1, 60), Input{})
	}
	assert.Empty(t, h.Particles())
}

func TestHeroParticleCap(t *testing.T) {
	opts := DefaultOptions()
	opts.Hero.MaxParticles = 5
	h := newScene(t, "hero", opts).(*Hero)
	p := geom.V(10, 10)
	for range 20 {
		h.Update(sim.FrameAt(0, 60), Input{Pointer: &p})
	}
	assert.Len(t, h.Particles(), 5)
}

func TestSandboxDrones(t *testing.T) {
	s := newScene(t, "sandbox", DefaultOptions()).(*Sandbox)
	drones := s.Drones()
	require.Len(t, drones, 4)
	assert.Equal(t, sim.PatternCircular, drones[0].Pattern)
	assert.Equal(t, sim.PatternFigureEight, drones[1].Pattern)
	assert.Equal(t, sim.PatternBankedWeave, drones[2].Pattern)
	assert.Equal(t, sim.PatternControlled, drones[3].Pattern)
	assert.Equal(t, geom.V(560, 180), drones[0].Anchor)

	s.Resize(1000, 1000)
	assert.Equal(t, geom.V(700, 300), s.Drones()[0].Anchor, "anchors follow the surface")
}

func TestSandboxProjectile(t *testing.T) {
	s := newScene(t, "sandbox", DefaultOptions()).(*Sandbox)
	s.Resize(2000, 600)
	d := s.Drones()[3]
	d.Control.Heading = 0

	s.Update(sim.Frame{}, Input{Fire: true})
	require.Len(t, s.Projectiles(), 1)
	start := s.Projectiles()[0].Pos
	assert.InDelta(t, d.Anchor.X+d.Size*0.45, start.X, 1e-9)

	for range 10 {
		s.Update(sim.Frame{Delta: 0.1}, Input{})
	}
	require.Len(t, s.Projectiles(), 1)
	assert.InDelta(t, start.X+420, s.Projectiles()[0].Pos.X, 1e-6)
	assert.InDelta(t, start.Y, s.Projectiles()[0].Pos.Y, 1e-9)
	assert.InDelta(t, 0.8/1.8, s.Projectiles()[0].Alpha(), 1e-9)

	for range 10 {
		s.Update(sim.Frame{Delta: 0.1}, Input{})
	}
	assert.Empty(t, s.Projectiles(), "culled off screen or out of life")
}

func TestSandboxSteering(t *testing.T) {
	s := newScene(t, "sandbox", DefaultOptions()).(*Sandbox)
	s.Drones()[3].Control.Heading = 0
	before := s.Drones()[0].Pose(0)

	s.Update(sim.Frame{Delta: 0.5}, Input{Keys: sim.Keys{Forward: true}})
	ctl := s.Drones()[3].Control
	assert.InDelta(t, 0.5*70*1.5, ctl.Offset.X, 1e-9)

	for range 100 {
		s.Update(sim.Frame{Delta: 0.5}, Input{Keys: sim.Keys{Forward: true}})
	}
	assert.Equal(t, 350.0, ctl.Offset.X, "clamped to the surface")
	assert.Equal(t, before, s.Drones()[0].Pose(0), "patterns ignore keys")
}

func TestSandboxDraw(t *testing.T) {
	s := newScene(t, "sandbox", DefaultOptions()).(*Sandbox)
	s.Update(sim.Frame{Delta: 0.1}, Input{Fire: true})

	c := draw.NewCanvas(800, 600)
	s.Draw(c)
	cmds := c.Commands()
	require.NotEmpty(t, cmds)
	assert.True(t, cmds[0].Paint.IsGradient(), "sky gradient first")
	last := cmds[len(cmds)-1]
	assert.Equal(t, draw.ShapeLabel, last.Shape)
	assert.Equal(t, s.art.Sandbox.HelpText, last.Text)
}

func TestDrawDroneCommands(t *testing.T) {
	art := DefaultOptions().Assets
	d := sim.NewDrone(sim.NewRand(1), sim.PatternCircular, geom.V(100, 100), 50, 0.5, 50, sim.DefaultDroneConfig())

	c := draw.NewCanvas(200, 200)
	DrawDrone(c, art.Drone, &d, 1.25)

	hull := 2 + len(art.Drone.Body)
	arm := 2 + len(art.Drone.Motor)
	prop := 4 + len(art.Drone.Hubs)
	assert.Len(t, c.Commands(), hull+4*(arm+prop+1))
	assert.Equal(t, draw.BlendAdd, c.Commands()[0].Blend, "under-glow is additive")
	assert.Equal(t, draw.BlendNormal, c.Commands()[1].Blend)

	c.Reset(200, 200)
	DrawDrone(c, art.Drone, &d, 1.25)
	again := c.Commands()
	c2 := draw.NewCanvas(200, 200)
	DrawDrone(c2, art.Drone, &d, 1.25)
	assert.Equal(t, again, c2.Commands(), "rendering is a pure function of time")
}

func TestAnimationCurves(t *testing.T) {
	for _, tm := range []float64{0, 0.3, 1.7, 12} {
		assert.InDelta(t, 0.7, GlowPulse(tm), 0.3+1e-12)
		for i := range 4 {
			assert.GreaterOrEqual(t, NavBlink(tm, i), 0.35-1e-12)
			assert.LessOrEqual(t, NavBlink(tm, i), 1+1e-12)
		}
		assert.GreaterOrEqual(t, BeaconPulse(tm), 0.35-1e-12)
		base, tip, dish := TowerAngles(tm)
		assert.LessOrEqual(t, math.Abs(base), 0.35)
		assert.LessOrEqual(t, math.Abs(tip), 0.3)
		assert.LessOrEqual(t, math.Abs(dish), 0.2)
	}
	assert.Equal(t, 10.0, PropAngle(0.5, 20))
}
