package scene

import (
	"skyscenes/asset"
	"skyscenes/draw"
	"skyscenes/geom"
	"skyscenes/sim"
)

// FireworksConfig tunes the fireworks scene
type FireworksConfig struct {
	TargetFPS        float64         `mapstructure:"target_fps"`
	SpawnProbability float64         `mapstructure:"spawn_probability"` // per frame
	OriginSpread     float64         `mapstructure:"origin_spread"`     // launch x in [-s*w, (1+s)*w]
	OriginDrop       float64         `mapstructure:"origin_drop"`       // launch y below the bottom edge
	TargetBand       sim.Range       `mapstructure:"target_band"`       // ambient target y as a fraction of height
	FlickerChance    float64         `mapstructure:"flicker_chance"`
	Shell            sim.ShellConfig `mapstructure:"shell"`
}

// DefaultFireworksConfig returns the classic display tuning
func DefaultFireworksConfig() FireworksConfig {
	return FireworksConfig{
		TargetFPS:        120,
		SpawnProbability: 0,
		OriginSpread:     0.4,
		OriginDrop:       5,
		TargetBand:       sim.Range{Min: 0.25, Max: 0.75},
		FlickerChance:    0.2,
		Shell:            sim.DefaultShellConfig(),
	}
}

// Fireworks launches shells from below the surface toward clicked or random
// points and renders their trails and bursts on black
type Fireworks struct {
	cfg     FireworksConfig
	palette []draw.Color
	bg      draw.Color
	flash   draw.Color

	rng     *sim.Rand
	flicker *sim.Rand

	width, height float64
	spawnProb     float64
	shells        []sim.Shell
}

// NewFireworks builds the scene. rng drives simulation; flicker only drives
// draw-time white flashes.
func NewFireworks(cfg FireworksConfig, art asset.Fireworks, rng, flicker *sim.Rand) *Fireworks {
	cfg.Shell.Burst.HotColor = art.Hot.Color()
	return &Fireworks{
		cfg:       cfg,
		palette:   art.Colors(),
		bg:        art.Background.Color(),
		flash:     art.Flicker.Color(),
		rng:       rng,
		flicker:   flicker,
		spawnProb: clampProbability(cfg.SpawnProbability),
	}
}

func (f *Fireworks) Name() string       { return "fireworks" }
func (f *Fireworks) TargetFPS() float64 { return f.cfg.TargetFPS }

func (f *Fireworks) Resize(width, height float64) {
	f.width, f.height = width, height
}

// SetSpawnProbability sets the per-frame chance of an ambient launch
func (f *Fireworks) SetSpawnProbability(p float64) {
	f.spawnProb = clampProbability(p)
}

// SpawnProbability returns the per-frame chance of an ambient launch
func (f *Fireworks) SpawnProbability() float64 {
	return f.spawnProb
}

// Shells returns the live shells
func (f *Fireworks) Shells() []sim.Shell {
	return f.shells
}

// Launch fires a shell from a random point below the surface toward target
func (f *Fireworks) Launch(target geom.Vec2) {
	s := f.cfg.OriginSpread
	origin := geom.V(
		f.width*(f.rng.Float64()*(1+2*s)-s),
		f.height+f.cfg.OriginDrop,
	)
	col := f.palette[f.rng.Intn(len(f.palette))]
	f.shells = append(f.shells, sim.Launch(f.rng, origin, target, f.cfg.Shell, col))
}

func (f *Fireworks) randomTarget() geom.Vec2 {
	return geom.V(f.rng.Float64()*f.width, f.cfg.TargetBand.Sample(f.rng)*f.height)
}

// Update applies input, rolls the ambient spawn, and advances every shell
func (f *Fireworks) Update(fr sim.Frame, in Input) {
	if in.SpawnProbability != nil {
		f.SetSpawnProbability(*in.SpawnProbability)
	}
	for _, p := range in.Clicks {
		f.Launch(p)
	}
	if f.rng.Chance(f.spawnProb) {
		f.Launch(f.randomTarget())
	}

	live := f.shells[:0]
	for i := range f.shells {
		s := &f.shells[i]
		s.Tick(f.rng, fr.Scale, f.height)
		if !s.Done() {
			live = append(live, *s)
		}
	}
	clear(f.shells[len(live):])
	f.shells = live
}

// Draw renders trails and shells in flight, then bursts with flicker
func (f *Fireworks) Draw(c *draw.Canvas) {
	c.Fill(draw.Solid(f.bg))
	for i := range f.shells {
		s := &f.shells[i]
		if s.State == sim.ShellFlying {
			for _, tp := range s.Trail {
				c.Circle(tp.Pos, tp.Radius, draw.Solid(s.Color.WithAlpha(tp.Alpha)))
			}
			c.Circle(s.Pos, s.Radius, draw.Solid(s.Color.WithAlpha(s.Alpha)))
			continue
		}
		for _, p := range s.Particles {
			if p.Pos.Y > f.height+f.cfg.Shell.CullMargin {
				continue
			}
			col := p.Color
			if f.flicker.Chance(f.cfg.FlickerChance) {
				col = f.flash
			}
			c.Circle(p.Pos, p.Radius, draw.Solid(col.WithAlpha(p.Alpha)))
		}
	}
}
