package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyscenes/geom"
)

func TestControlSteer(t *testing.T) {
	limit := geom.V(1000, 1000)

	t.Run("turning", func(t *testing.T) {
		c := NewControl(0)
		c.Steer(Keys{Right: true}, 0.5, 100, 2.6, limit)
		assert.InDelta(t, 1.3, c.Heading, 1e-12)
		c.Steer(Keys{Left: true, Right: true}, 0.5, 100, 2.6, limit)
		assert.InDelta(t, 1.3, c.Heading, 1e-12, "opposite keys cancel")
		assert.Equal(t, geom.Vec2{}, c.Offset)
	})

	t.Run("thrust along heading", func(t *testing.T) {
		c := NewControl(math.Pi / 2)
		c.Steer(Keys{Forward: true}, 1, 105, 2.6, limit)
		assert.InDelta(t, 0, c.Offset.X, 1e-9)
		assert.InDelta(t, 105, c.Offset.Y, 1e-9)
		c.Steer(Keys{Back: true}, 2, 105, 2.6, limit)
		assert.InDelta(t, -105, c.Offset.Y, 1e-9)
	})

	t.Run("clamped per axis", func(t *testing.T) {
		c := NewControl(0)
		for range 100 {
			c.Steer(Keys{Forward: true}, 0.1, 500, 2.6, geom.V(350, 250))
		}
		assert.Equal(t, 350.0, c.Offset.X)
		c.Heading = math.Pi / 2
		for range 100 {
			c.Steer(Keys{Forward: true}, 0.1, 500, 2.6, geom.V(350, 250))
		}
		assert.Equal(t, geom.V(350, 250), c.Offset)
	})
}

func TestLimitsNeverNegative(t *testing.T) {
	assert.Equal(t, geom.V(350, 250), Limits(800, 600, 50))
	assert.Equal(t, geom.V(0, 0), Limits(40, 20, 50))
}

func TestNewDrone(t *testing.T) {
	cfg := DefaultDroneConfig()
	rng := NewRand(11)

	d := NewDrone(rng, PatternFigureEight, geom.V(240, 240), 70, 0.7, 180, cfg)
	assert.Nil(t, d.Control)
	for _, s := range d.PropSpeeds {
		assert.True(t, cfg.PropSpeed.Contains(s))
	}
	assert.GreaterOrEqual(t, d.Params.Phase, 0.0)
	assert.Less(t, d.Params.Phase, 2*math.Pi)

	d.Steer(Keys{Forward: true}, 1, cfg, geom.V(100, 100))
	assert.Equal(t, d.Pose(1.5), ComputePose(PatternFigureEight, 1.5, d.Params, nil))

	ctl := NewDrone(rng, PatternControlled, geom.V(400, 300), 50, 0.5, 70, cfg)
	require.NotNil(t, ctl.Control)
	assert.Equal(t, ctl.Params.Phase, ctl.Control.Heading)
	assert.Equal(t, geom.V(400, 300), ctl.Center(99))

	ctl.Control.Heading = 0
	ctl.Steer(Keys{Forward: true}, 1, cfg, geom.V(1000, 1000))
	assert.InDelta(t, 105, ctl.Center(0).X-400, 1e-9, "moves radius*1.5 px per second")
}

func TestProjectileTravel(t *testing.T) {
	cfg := DefaultProjectileConfig()
	origin := geom.V(400, 300)
	p := Fire(origin, 0, 50, cfg)
	start := p.Pos
	assert.InDelta(t, origin.X+22.5, start.X, 1e-12, "spawns at the nose")

	for range 60 {
		p.Advance(1.0 / 60)
	}
	assert.InDelta(t, 420, p.Pos.X-start.X, 1e-6)
	assert.InDelta(t, start.Y, p.Pos.Y, 1e-9)
	assert.InDelta(t, 0.8, p.Life, 1e-9)
	assert.InDelta(t, 0.8/1.8, p.Alpha(), 1e-9)
}

func TestCullProjectiles(t *testing.T) {
	ps := []Projectile{
		{Pos: geom.V(10, 10), Life: 1, MaxLife: 1.8},
		{Pos: geom.V(10, 10), Life: 0, MaxLife: 1.8},
		{Pos: geom.V(-21, 10), Life: 1, MaxLife: 1.8},
		{Pos: geom.V(815, 10), Life: 1, MaxLife: 1.8},
		{Pos: geom.V(400, 619), Life: 1, MaxLife: 1.8},
	}
	live := CullProjectiles(ps, 800, 600, 20)
	require.Len(t, live, 3)
	assert.Equal(t, live, CullProjectiles(live, 800, 600, 20))
	assert.Equal(t, 0.0, Projectile{Life: -1, MaxLife: 1.8}.Alpha())
}
