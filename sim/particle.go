package sim

import (
	"math"

	"skyscenes/draw"
	"skyscenes/geom"
)

// Particle is a single burst or ambient particle. Units are pixels and
// target-frame intervals.
type Particle struct {
	Pos    geom.Vec2
	Vel    geom.Vec2
	Radius float64
	Color  draw.Color
	Alpha  float64
	Decay  float64 // alpha lost per frame
	Drag   float64 // velocity multiplier per frame; 0 or 1 means none
}

// Advance integrates one step of scale frames under gravity
func (p *Particle) Advance(scale, gravity float64) {
	p.Pos = p.Pos.Add(p.Vel.Scale(scale))
	p.Vel.Y += gravity * scale
	if p.Drag > 0 && p.Drag != 1 {
		p.Vel = p.Vel.Scale(math.Pow(p.Drag, scale))
	}
	p.Alpha = math.Max(0, p.Alpha-p.Decay*scale)
}

// Expired reports whether the particle has faded out or fallen more than
// margin below bottom
func (p Particle) Expired(bottom, margin float64) bool {
	return p.Alpha <= 0 || p.Pos.Y > bottom+margin
}

// CullParticles drops expired particles in place and returns the live slice
func CullParticles(ps []Particle, bottom, margin float64) []Particle {
	live := ps[:0]
	for _, p := range ps {
		if !p.Expired(bottom, margin) {
			live = append(live, p)
		}
	}
	clear(ps[len(live):])
	return live
}

// BurstConfig describes an isotropic explosion
type BurstConfig struct {
	Count     IntRange   `mapstructure:"count"`
	Speed     Range      `mapstructure:"speed"`
	Radius    Range      `mapstructure:"radius"`
	Decay     Range      `mapstructure:"decay"`
	Drag      float64    `mapstructure:"drag"`
	HotChance float64    `mapstructure:"hot_chance"`
	HotColor  draw.Color `mapstructure:"-"`
}

// DefaultBurstConfig returns the classic shell burst
func DefaultBurstConfig() BurstConfig {
	return BurstConfig{
		Count:     IntRange{Min: 50, Max: 250},
		Speed:     Range{Min: 1, Max: 6},
		Radius:    Range{Min: 1, Max: 2.5},
		Decay:     Range{Min: 0.003, Max: 0.009},
		Drag:      0.965,
		HotChance: 0.1,
		HotColor:  draw.MustHex("#FFD700"),
	}
}

// SpawnBurst creates a burst of particles at origin. Each particle takes the
// hot color with probability HotChance, otherwise base. A negative count
// yields no particles.
func SpawnBurst(rng *Rand, origin geom.Vec2, cfg BurstConfig, base draw.Color) []Particle {
	n := max(cfg.Count.Sample(rng), 0)
	ps := make([]Particle, 0, n)
	for range n {
		col := base
		if rng.Chance(cfg.HotChance) {
			col = cfg.HotColor
		}
		speed := cfg.Speed.Sample(rng)
		ps = append(ps, Particle{
			Pos:    origin,
			Vel:    geom.FromAngle(rng.Angle(), speed),
			Radius: cfg.Radius.Sample(rng),
			Color:  col.WithAlpha(1),
			Alpha:  1,
			Decay:  cfg.Decay.Sample(rng),
			Drag:   cfg.Drag,
		})
	}
	return ps
}
