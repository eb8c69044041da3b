package sim

import (
	"math"

	"skyscenes/draw"
	"skyscenes/geom"
)

// ShellState is the one-way lifecycle of a firework shell
type ShellState int

const (
	ShellFlying ShellState = iota
	ShellArrived
)

func (s ShellState) String() string {
	if s == ShellArrived {
		return "arrived"
	}
	return "flying"
}

// ShellConfig holds the flight and burst parameters of a shell
type ShellConfig struct {
	Gravity         float64     `mapstructure:"gravity"`
	FlightSpeed     Range       `mapstructure:"flight_speed"`
	MinFlightFrames float64     `mapstructure:"min_flight_frames"`
	Radius          float64     `mapstructure:"radius"`
	Alpha           Range       `mapstructure:"alpha"`
	TrailSegments   int         `mapstructure:"trail_segments"`
	CullMargin      float64     `mapstructure:"cull_margin"`
	Burst           BurstConfig `mapstructure:"burst"`
}

// DefaultShellConfig returns the classic firework shell
func DefaultShellConfig() ShellConfig {
	return ShellConfig{
		Gravity:         0.05,
		FlightSpeed:     Range{Min: 4, Max: 8},
		MinFlightFrames: 30,
		Radius:          5,
		Alpha:           Range{Min: 0.5, Max: 1},
		TrailSegments:   30,
		CullMargin:      10,
		Burst:           DefaultBurstConfig(),
	}
}

// Shell is a firework in flight toward its target, and afterwards the owner
// of the burst it produced
type Shell struct {
	Pos       geom.Vec2
	Vel       geom.Vec2
	Target    geom.Vec2
	Duration  float64 // clamped flight time in frames
	Remaining float64
	Color     draw.Color
	Alpha     float64
	Radius    float64
	State     ShellState

	Particles []Particle
	Trail     []TrailPoint

	cfg ShellConfig
}

// Launch creates a shell that reaches target after a distance-derived,
// floor-clamped number of frames
func Launch(rng *Rand, origin, target geom.Vec2, cfg ShellConfig, col draw.Color) Shell {
	speed := cfg.FlightSpeed.Sample(rng)
	t := FlightFrames(origin.Dist(target), speed, cfg.MinFlightFrames)
	if t <= 0 {
		t = 1
	}
	s := Shell{
		Pos:       origin,
		Vel:       SolveBallistic(origin, target, t, cfg.Gravity),
		Target:    target,
		Duration:  t,
		Remaining: t,
		Color:     col,
		Alpha:     cfg.Alpha.Sample(rng),
		Radius:    cfg.Radius,
		State:     ShellFlying,
		cfg:       cfg,
	}
	s.Trail = s.trail()
	return s
}

// Tick advances the shell by scale frames. A flying shell integrates its
// parabola exactly and never overshoots the arrival instant; on arrival it
// bursts at its current position. An arrived shell advances and culls its
// particles against bottom.
func (s *Shell) Tick(rng *Rand, scale, bottom float64) {
	if scale < 0 {
		scale = 0
	}
	switch s.State {
	case ShellFlying:
		step := math.Min(scale, s.Remaining)
		g := s.cfg.Gravity
		s.Pos = BallisticPosition(s.Pos, s.Vel, step, g)
		s.Vel.Y += g * step
		s.Remaining -= step
		if s.Remaining <= 0 {
			s.arrive(rng)
			return
		}
		s.Trail = s.trail()
	case ShellArrived:
		for i := range s.Particles {
			s.Particles[i].Advance(scale, s.cfg.Gravity)
		}
		s.Particles = CullParticles(s.Particles, bottom, s.cfg.CullMargin)
	}
}

func (s *Shell) arrive(rng *Rand) {
	s.State = ShellArrived
	s.Remaining = 0
	s.Trail = nil
	s.Particles = SpawnBurst(rng, s.Pos, s.cfg.Burst, s.Color)
}

func (s *Shell) trail() []TrailPoint {
	return ComputeTrail(s.Pos, s.Vel, s.cfg.Gravity, s.cfg.TrailSegments, s.Radius, s.Alpha)
}

// Done reports whether the shell has burst and every particle is gone
func (s *Shell) Done() bool {
	return s.State == ShellArrived && len(s.Particles) == 0
}
