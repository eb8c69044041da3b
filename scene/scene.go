// Package scene holds the animated scenes. Each scene owns its live entity
// collections and is driven by exactly one host loop.
package scene

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"skyscenes/asset"
	"skyscenes/draw"
	"skyscenes/geom"
	"skyscenes/sim"
)

// Input is the per-frame snapshot a host collects from its collaborators
type Input struct {
	// Clicks are spawn-at-point requests since the previous frame
	Clicks []geom.Vec2
	// Pointer is the latest pointer position, nil when it did not move
	Pointer *geom.Vec2
	// Keys are the held steering keys
	Keys sim.Keys
	// Fire is set on the frame the fire key goes down, not on repeats
	Fire bool
	// SpawnProbability replaces the ambient spawn probability when set
	SpawnProbability *float64
}

// Scene is one animated surface
type Scene interface {
	Name() string
	// TargetFPS is the frame rate motion constants are tuned for
	TargetFPS() float64
	Resize(width, height float64)
	Update(f sim.Frame, in Input)
	Draw(c *draw.Canvas)
}

// Options carries what every scene constructor needs
type Options struct {
	Assets    *asset.Scene
	Seed      uint64
	Fireworks FireworksConfig
	Hero      HeroConfig
	Sandbox   SandboxConfig
}

// DefaultOptions returns options with embedded assets and default tuning
func DefaultOptions() Options {
	return Options{
		Assets:    asset.MustLoad(),
		Seed:      1,
		Fireworks: DefaultFireworksConfig(),
		Hero:      DefaultHeroConfig(),
		Sandbox:   DefaultSandboxConfig(),
	}
}

type factory func(opts Options, rng, flicker *sim.Rand) Scene

var registry = map[string]factory{
	"fireworks": func(o Options, rng, flicker *sim.Rand) Scene {
		return NewFireworks(o.Fireworks, o.Assets.Fireworks, rng, flicker)
	},
	"hero": func(o Options, rng, _ *sim.Rand) Scene {
		return NewHero(o.Hero, o.Assets.Hero, rng)
	},
	"sandbox": func(o Options, rng, _ *sim.Rand) Scene {
		return NewSandbox(o.Sandbox, o.Assets, rng)
	},
}

// Names lists the registered scenes in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds a scene by name. The simulation source is seeded from
// opts.Seed; flicker gets its own stream so draw-time randomness never
// shifts simulation draws.
func New(name string, opts Options) (Scene, error) {
	f, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
	if opts.Assets == nil {
		a, err := asset.Load()
		if err != nil {
			return nil, err
		}
		opts.Assets = a
	}
	return f(opts, sim.NewRand(opts.Seed), sim.NewRand(opts.Seed^0x5eed)), nil
}

// clampProbability keeps collaborator-supplied probabilities in [0,1]
func clampProbability(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	return geom.Clamp(p, 0, 1)
}
