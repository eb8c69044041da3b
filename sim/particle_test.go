package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyscenes/draw"
	"skyscenes/geom"
)

func TestParticleAlphaDecay(t *testing.T) {
	p := Particle{Alpha: 1.0, Decay: 0.01}
	for range 50 {
		p.Advance(1, 0)
	}
	assert.InDelta(t, 0.5, p.Alpha, 1e-9)
}

func TestParticleAlphaNonIncreasing(t *testing.T) {
	rng := NewRand(7)
	ps := SpawnBurst(rng, geom.V(50, 50), DefaultBurstConfig(), draw.MustHex("#33FF57"))
	require.NotEmpty(t, ps)

	scales := []float64{1, 0.4, 2.5, 0, 1.7}
	for i := range ps {
		prev := ps[i].Alpha
		for step := range 400 {
			ps[i].Advance(scales[step%len(scales)], 0.05)
			require.LessOrEqual(t, ps[i].Alpha, prev)
			require.GreaterOrEqual(t, ps[i].Alpha, 0.0)
			prev = ps[i].Alpha
		}
	}
}

func TestParticleAdvance(t *testing.T) {
	t.Run("gravity then drag", func(t *testing.T) {
		p := Particle{Vel: geom.V(2, 0), Alpha: 1, Drag: 0.5}
		p.Advance(1, 1)
		assert.Equal(t, geom.V(2, 0), p.Pos)
		assert.InDelta(t, 1, p.Vel.X, 1e-12)
		assert.InDelta(t, 0.5, p.Vel.Y, 1e-12)
	})

	t.Run("zero drag means no resistance", func(t *testing.T) {
		p := Particle{Vel: geom.V(1, 1), Alpha: 1}
		p.Advance(2, 0)
		assert.Equal(t, geom.V(2, 2), p.Pos)
		assert.Equal(t, geom.V(1, 1), p.Vel)
	})
}

func TestParticleExpired(t *testing.T) {
	assert.True(t, Particle{Alpha: 0}.Expired(600, 10))
	assert.True(t, Particle{Alpha: 1, Pos: geom.V(0, 611)}.Expired(600, 10))
	assert.False(t, Particle{Alpha: 0.1, Pos: geom.V(0, 610)}.Expired(600, 10))
}

func TestCullParticlesIdempotent(t *testing.T) {
	ps := []Particle{
		{Alpha: 1},
		{Alpha: 0},
		{Alpha: 0.3, Pos: geom.V(0, 700)},
		{Alpha: 0.2, Pos: geom.V(3, 4)},
		{Alpha: -0.1},
	}
	once := CullParticles(ps, 600, 10)
	require.Len(t, once, 2)
	snapshot := append([]Particle(nil), once...)

	twice := CullParticles(once, 600, 10)
	assert.Equal(t, snapshot, twice)
}

func TestSpawnBurst(t *testing.T) {
	cfg := DefaultBurstConfig()
	base := draw.MustHex("#FF5733")
	origin := geom.V(400, 100)

	for seed := range uint64(40) {
		ps := SpawnBurst(NewRand(seed), origin, cfg, base)
		require.GreaterOrEqual(t, len(ps), cfg.Count.Min)
		require.LessOrEqual(t, len(ps), cfg.Count.Max)
		for _, p := range ps {
			assert.Equal(t, origin, p.Pos)
			assert.Equal(t, 1.0, p.Alpha)
			assert.True(t, cfg.Speed.Contains(p.Vel.Len()), "speed %v", p.Vel.Len())
			assert.True(t, cfg.Radius.Contains(p.Radius))
			assert.True(t, cfg.Decay.Contains(p.Decay))
			assert.Contains(t, []draw.Color{base, cfg.HotColor}, p.Color)
		}
	}
}

func TestSpawnBurstHotChanceExtremes(t *testing.T) {
	cfg := DefaultBurstConfig()
	cfg.Count = IntRange{Min: 20, Max: 20}
	base := draw.MustHex("#3357FF")

	cfg.HotChance = 0
	for _, p := range SpawnBurst(NewRand(1), geom.Vec2{}, cfg, base) {
		assert.Equal(t, base, p.Color)
	}

	cfg.HotChance = 1
	ps := SpawnBurst(NewRand(1), geom.Vec2{}, cfg, base)
	assert.Len(t, ps, 20)
	for _, p := range ps {
		assert.Equal(t, cfg.HotColor, p.Color)
	}
}

func TestSpawnBurstNegativeCount(t *testing.T) {
	cfg := DefaultBurstConfig()
	cfg.Count = IntRange{Min: -10, Max: -1}

	var ps []Particle
	require.NotPanics(t, func() {
		ps = SpawnBurst(NewRand(3), geom.V(5, 5), cfg, draw.White)
	})
	assert.Empty(t, ps)
}
