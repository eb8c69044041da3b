package scene

import (
	"math"

	"skyscenes/asset"
	"skyscenes/draw"
	"skyscenes/geom"
	"skyscenes/sim"
)

// SandboxConfig tunes the drone sandbox
type SandboxConfig struct {
	TargetFPS  float64              `mapstructure:"target_fps"`
	ShowHelp   bool                 `mapstructure:"show_help"`
	Drone      sim.DroneConfig      `mapstructure:"drone"`
	Projectile sim.ProjectileConfig `mapstructure:"projectile"`
}

// DefaultSandboxConfig returns the sandbox defaults
func DefaultSandboxConfig() SandboxConfig {
	return SandboxConfig{
		TargetFPS:  60,
		ShowHelp:   true,
		Drone:      sim.DefaultDroneConfig(),
		Projectile: sim.DefaultProjectileConfig(),
	}
}

// Sandbox is a sky with a control tower, four drones (one steerable) and
// the steerable drone's projectiles. Time is in seconds.
type Sandbox struct {
	cfg SandboxConfig
	art *asset.Scene
	rng *sim.Rand

	width, height float64
	elapsed       float64
	drones        []sim.Drone
	projectiles   []sim.Projectile
}

func NewSandbox(cfg SandboxConfig, art *asset.Scene, rng *sim.Rand) *Sandbox {
	return &Sandbox{cfg: cfg, art: art, rng: rng}
}

func (s *Sandbox) Name() string       { return "sandbox" }
func (s *Sandbox) TargetFPS() float64 { return s.cfg.TargetFPS }

// Resize re-anchors the drones to their slots. Drones are spawned on the
// first resize so anchors are known up front.
func (s *Sandbox) Resize(width, height float64) {
	s.width, s.height = width, height
	if s.drones == nil {
		s.spawn()
		return
	}
	for i := range s.drones {
		s.drones[i].Anchor = s.anchor(s.art.Sandbox.Slots[i])
	}
}

func (s *Sandbox) anchor(slot asset.Slot) geom.Vec2 {
	return geom.V(slot.X*s.width, slot.Y*s.height)
}

func (s *Sandbox) spawn() {
	slots := s.art.Sandbox.Slots
	s.drones = make([]sim.Drone, len(slots))
	for i, slot := range slots {
		s.drones[i] = sim.NewDrone(s.rng, sim.PatternForSlot(i), s.anchor(slot), slot.Size, slot.Rate, slot.Radius, s.cfg.Drone)
	}
}

// Drones returns the drones in slot order
func (s *Sandbox) Drones() []sim.Drone {
	return s.drones
}

// Projectiles returns the live projectiles
func (s *Sandbox) Projectiles() []sim.Projectile {
	return s.projectiles
}

// Elapsed is the scene time in seconds
func (s *Sandbox) Elapsed() float64 {
	return s.elapsed
}

// controlled returns the steerable drone, or nil
func (s *Sandbox) controlled() *sim.Drone {
	for i := range s.drones {
		if s.drones[i].Control != nil {
			return &s.drones[i]
		}
	}
	return nil
}

// Fire launches a projectile from the steerable drone's nose
func (s *Sandbox) Fire() bool {
	d := s.controlled()
	if d == nil {
		return false
	}
	pose := d.Pose(s.elapsed)
	s.projectiles = append(s.projectiles, sim.Fire(d.Anchor.Add(pose.Offset), pose.Heading, d.Size, s.cfg.Projectile))
	return true
}

func (s *Sandbox) Update(fr sim.Frame, in Input) {
	if s.drones == nil {
		s.spawn()
	}
	dt := math.Max(0, fr.Delta)
	s.elapsed += dt

	for i := range s.drones {
		d := &s.drones[i]
		d.Steer(in.Keys, dt, s.cfg.Drone, sim.Limits(s.width, s.height, d.Size))
	}
	if in.Fire {
		s.Fire()
	}

	for i := range s.projectiles {
		s.projectiles[i].Advance(dt)
	}
	s.projectiles = sim.CullProjectiles(s.projectiles, s.width, s.height, s.cfg.Projectile.Margin)
}

func (s *Sandbox) Draw(c *draw.Canvas) {
	s.drawBackdrop(c)
	DrawTower(c, s.art.Tower, s.height, s.elapsed)
	for i := range s.drones {
		DrawDrone(c, s.art.Drone, &s.drones[i], s.elapsed)
	}
	for _, p := range s.projectiles {
		DrawProjectile(c, s.art.Projectile, p)
	}
	if s.cfg.ShowHelp {
		s.drawHelp(c)
	}
}

func (s *Sandbox) drawBackdrop(c *draw.Canvas) {
	sb := s.art.Sandbox
	c.Fill(draw.Fill(draw.LinearGradient(geom.V(0, 0), geom.V(0, s.height),
		draw.Stop{Offset: 0, Color: sb.SkyTop.Color()},
		draw.Stop{Offset: 1, Color: sb.SkyBottom.Color()},
	)))

	c.Circle(geom.V(sb.Sun.X*s.width, sb.Sun.Y*s.height), sb.Sun.Radius, draw.Solid(sb.Sun.Color.Color()))

	cloud := draw.Solid(sb.Cloud.Color())
	for _, cl := range sb.Clouds {
		c.Save()
		c.Translate(cl.X*s.width, cl.Y*s.height)
		c.Scale(cl.Scale, cl.Scale)
		for _, p := range sb.Puffs {
			c.Circle(geom.V(p.X, p.Y), p.R, cloud)
		}
		c.Restore()
	}
}

func (s *Sandbox) drawHelp(c *draw.Canvas) {
	sb := s.art.Sandbox
	const size, pad = 13.0, 8.0
	w := float64(len(sb.HelpText))*7 + 2*pad
	c.Rect(10, 10, w, size+2*pad, draw.Solid(sb.HelpBg.Color()))
	c.Label(geom.V(10+pad, 10+pad+size-3), sb.HelpText, size, sb.HelpFg.Color())
}

// TowerAngles returns the antenna base, antenna tip and dish joint angles
func TowerAngles(t float64) (base, tip, dish float64) {
	return math.Sin(0.9*t) * 0.35, math.Cos(1.5*t+0.6) * 0.3, math.Sin(0.8*t) * 0.2
}

// BeaconPulse is the tower beacon intensity at time t
func BeaconPulse(t float64) float64 {
	return 0.35 + 0.65*(0.5+0.5*math.Sin(5*t))
}

// DrawTower renders the control tower standing on the bottom edge
func DrawTower(c *draw.Canvas, art asset.Tower, bottom, t float64) {
	c.Save()
	c.Translate(art.X, bottom)
	for _, r := range art.Rects {
		c.Rect(r.X, r.Y, r.W, r.H, draw.Solid(r.Color.Color()))
	}

	base, tip, dish := TowerAngles(t)
	joints := []float64{base, tip}
	c.Save()
	c.Translate(0, art.MastTop)
	for i, length := range art.Antenna {
		if i < len(joints) {
			c.Rotate(joints[i])
		}
		c.Line(geom.V(0, 0), geom.V(0, -length), art.AntennaWidth, draw.Solid(art.AntennaColor.Color()))
		c.Circle(geom.V(0, 0), art.JointRadius, draw.Solid(art.JointColor.Color()))
		c.Translate(0, -length)
	}
	c.Rotate(dish)
	sw := art.DishStrokeWidth / 2
	c.Ellipse(geom.Vec2{}, art.DishRX+sw, art.DishRY+sw, art.DishAngle, draw.Solid(art.DishStroke.Color()))
	c.Ellipse(geom.Vec2{}, art.DishRX-sw, art.DishRY-sw, art.DishAngle, draw.Solid(art.DishFill.Color()))
	c.Restore()

	c.Circle(geom.V(0, art.BeaconY), art.BeaconRadius, draw.Solid(art.BeaconColor.Color().WithAlpha(BeaconPulse(t))))
	c.Restore()
}

// DrawProjectile renders a glowing shot faded by its remaining life
func DrawProjectile(c *draw.Canvas, art asset.Projectile, p sim.Projectile) {
	a := p.Alpha()
	glow := draw.RadialGradient(p.Pos, 0, art.GlowRadius,
		draw.Stop{Offset: 0, Color: art.GlowInner.Color().Fade(a)},
		draw.Stop{Offset: 1, Color: art.GlowOuter.Color()},
	)
	c.Circle(p.Pos, art.GlowRadius, draw.Fill(glow))
	c.Circle(p.Pos, art.CoreRadius, draw.Solid(art.Core.Color().Fade(a)))
}
