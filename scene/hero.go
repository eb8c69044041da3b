package scene

import (
	"skyscenes/asset"
	"skyscenes/draw"
	"skyscenes/geom"
	"skyscenes/sim"
)

// HeroConfig tunes the ambient pointer trail
type HeroConfig struct {
	TargetFPS    float64   `mapstructure:"target_fps"`
	Size         sim.Range `mapstructure:"size"`
	Speed        float64   `mapstructure:"speed"`  // velocity components fall in [-speed, speed)
	Shrink       float64   `mapstructure:"shrink"` // radius lost per frame
	MinSize      float64   `mapstructure:"min_size"`
	MaxParticles int       `mapstructure:"max_particles"`
}

// DefaultHeroConfig returns the landing page trail tuning
func DefaultHeroConfig() HeroConfig {
	return HeroConfig{
		TargetFPS:    60,
		Size:         sim.Range{Min: 1, Max: 4},
		Speed:        1,
		Shrink:       0.01,
		MinSize:      0.2,
		MaxParticles: 2000,
	}
}

// Hero emits one drifting, shrinking particle per frame at the last known
// pointer position
type Hero struct {
	cfg    HeroConfig
	accent draw.Color
	bg     draw.Color
	rng    *sim.Rand

	width, height float64
	pointer       *geom.Vec2
	particles     []sim.Particle
}

func NewHero(cfg HeroConfig, art asset.Hero, rng *sim.Rand) *Hero {
	return &Hero{
		cfg:    cfg,
		accent: art.Accent.Color(),
		bg:     art.Background.Color(),
		rng:    rng,
	}
}

func (h *Hero) Name() string       { return "hero" }
func (h *Hero) TargetFPS() float64 { return h.cfg.TargetFPS }

func (h *Hero) Resize(width, height float64) {
	h.width, h.height = width, height
}

// Particles returns the live trail particles
func (h *Hero) Particles() []sim.Particle {
	return h.particles
}

func (h *Hero) emit(at geom.Vec2) {
	if h.cfg.MaxParticles > 0 && len(h.particles) >= h.cfg.MaxParticles {
		n := copy(h.particles, h.particles[1:])
		h.particles = h.particles[:n]
	}
	s := h.cfg.Speed
	h.particles = append(h.particles, sim.Particle{
		Pos:    at,
		Vel:    geom.V(h.rng.Between(-s, s), h.rng.Between(-s, s)),
		Radius: h.cfg.Size.Sample(h.rng),
		Color:  h.accent,
		Alpha:  h.accent.A,
	})
}

// Update emits at the pointer, drifts every particle without gravity or
// drag, and shrinks them until they fall below the minimum size
func (h *Hero) Update(fr sim.Frame, in Input) {
	if in.Pointer != nil {
		p := *in.Pointer
		h.pointer = &p
	}
	if h.pointer != nil {
		h.emit(*h.pointer)
	}

	live := h.particles[:0]
	for _, p := range h.particles {
		p.Advance(fr.Scale, 0)
		if p.Radius > h.cfg.MinSize {
			p.Radius -= h.cfg.Shrink * fr.Scale
		}
		if p.Radius > h.cfg.MinSize {
			live = append(live, p)
		}
	}
	clear(h.particles[len(live):])
	h.particles = live
}

func (h *Hero) Draw(c *draw.Canvas) {
	c.Fill(draw.Solid(h.bg))
	for _, p := range h.particles {
		c.Circle(p.Pos, p.Radius, draw.Solid(p.Color))
	}
}
