package sim

import (
	"math"

	"skyscenes/geom"
)

// DroneConfig holds the shared drone tuning
type DroneConfig struct {
	PropSpeed  Range   `mapstructure:"prop_speed"`  // rad/s per propeller
	TurnSpeed  float64 `mapstructure:"turn_speed"`  // rad/s
	MoveFactor float64 `mapstructure:"move_factor"` // thrust speed as a multiple of path radius
}

// DefaultDroneConfig returns the sandbox drone tuning
func DefaultDroneConfig() DroneConfig {
	return DroneConfig{
		PropSpeed:  Range{Min: 5, Max: 25},
		TurnSpeed:  2.6,
		MoveFactor: 1.5,
	}
}

// Drone is an articulated quadcopter flying a pattern around its anchor.
// Control is set only for PatternControlled and is owned by the drone.
type Drone struct {
	Anchor     geom.Vec2
	Size       float64
	Pattern    Pattern
	Params     Params
	PropSpeeds [4]float64
	Control    *Control
}

// NewDrone spawns a drone with random propeller speeds and phase
func NewDrone(rng *Rand, pattern Pattern, anchor geom.Vec2, size, rate, radius float64, cfg DroneConfig) Drone {
	d := Drone{
		Anchor:  anchor,
		Size:    math.Max(0, size),
		Pattern: pattern,
	}
	for i := range d.PropSpeeds {
		d.PropSpeeds[i] = cfg.PropSpeed.Sample(rng)
	}
	d.Params = Params{Rate: rate, Radius: radius, Phase: rng.Angle()}
	if pattern == PatternControlled {
		d.Control = NewControl(d.Params.Phase)
	}
	return d
}

// Pose evaluates the drone's pattern at time t
func (d *Drone) Pose(t float64) Pose {
	return ComputePose(d.Pattern, t, d.Params, d.Control)
}

// Center returns the absolute position of the drone at time t
func (d *Drone) Center(t float64) geom.Vec2 {
	return d.Anchor.Add(d.Pose(t).Offset)
}

// Steer applies held keys to a controlled drone; other patterns ignore input
func (d *Drone) Steer(keys Keys, dt float64, cfg DroneConfig, limit geom.Vec2) {
	if d.Control == nil {
		return
	}
	d.Control.Steer(keys, dt, d.Params.Radius*cfg.MoveFactor, cfg.TurnSpeed, limit)
}
