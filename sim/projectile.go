package sim

import (
	"skyscenes/geom"
)

// ProjectileConfig describes the sandbox weapon
type ProjectileConfig struct {
	Speed      float64 `mapstructure:"speed"`       // px/s
	Life       float64 `mapstructure:"life"`        // s
	NoseFactor float64 `mapstructure:"nose_factor"` // spawn offset as a fraction of drone size
	Margin     float64 `mapstructure:"margin"`      // px beyond the surface before removal
}

// DefaultProjectileConfig returns the sandbox weapon defaults
func DefaultProjectileConfig() ProjectileConfig {
	return ProjectileConfig{
		Speed:      420,
		Life:       1.8,
		NoseFactor: 0.45,
		Margin:     20,
	}
}

// Projectile is a glowing shot moving in a straight line
type Projectile struct {
	Pos     geom.Vec2
	Vel     geom.Vec2
	Life    float64
	MaxLife float64
}

// Fire launches a projectile from the nose of a body at center facing heading
func Fire(center geom.Vec2, heading, size float64, cfg ProjectileConfig) Projectile {
	return Projectile{
		Pos:     center.Add(geom.FromAngle(heading, size*cfg.NoseFactor)),
		Vel:     geom.FromAngle(heading, cfg.Speed),
		Life:    cfg.Life,
		MaxLife: cfg.Life,
	}
}

// Advance moves the projectile dt seconds; no gravity applies
func (p *Projectile) Advance(dt float64) {
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	p.Life -= dt
}

// Alpha is the remaining life fraction in [0,1]
func (p Projectile) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return geom.Clamp(p.Life/p.MaxLife, 0, 1)
}

// Alive reports whether the projectile still has life and is within margin
// of a width×height surface
func (p Projectile) Alive(width, height, margin float64) bool {
	return p.Life > 0 &&
		p.Pos.X > -margin && p.Pos.X < width+margin &&
		p.Pos.Y > -margin && p.Pos.Y < height+margin
}

// CullProjectiles drops dead projectiles in place
func CullProjectiles(ps []Projectile, width, height, margin float64) []Projectile {
	live := ps[:0]
	for _, p := range ps {
		if p.Alive(width, height, margin) {
			live = append(live, p)
		}
	}
	clear(ps[len(live):])
	return live
}
