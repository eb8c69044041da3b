package sim

import (
	"math"
	"math/rand/v2"
)

// Rand is the seedable random source used by simulation updates.
// Draw-time effects keep their own source so they never perturb state.
type Rand struct {
	r *rand.Rand
}

// NewRand returns a deterministic source for the given seed
func NewRand(seed uint64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float64 returns a value in [0,1)
func (r *Rand) Float64() float64 {
	return r.r.Float64()
}

// Between returns a value in [lo,hi)
func (r *Rand) Between(lo, hi float64) float64 {
	return lo + r.r.Float64()*(hi-lo)
}

// IntBetween returns an integer in [lo,hi); lo when the range is empty
func (r *Rand) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.r.IntN(hi-lo)
}

// Intn returns an integer in [0,n)
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Chance reports true with probability p, clamped to [0,1]
func (r *Rand) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	return r.r.Float64() < p
}

// Angle returns a direction uniformly on the full circle
func (r *Rand) Angle() float64 {
	return r.r.Float64() * 2 * math.Pi
}

// Range is a closed-open float interval sampled uniformly
type Range struct {
	Min float64 `mapstructure:"min" toml:"min"`
	Max float64 `mapstructure:"max" toml:"max"`
}

// Sample draws a value from the range
func (rg Range) Sample(r *Rand) float64 {
	return r.Between(rg.Min, rg.Max)
}

// Contains reports whether v lies in [Min,Max]
func (rg Range) Contains(v float64) bool {
	return v >= rg.Min && v <= rg.Max
}

// IntRange is an integer interval; samples fall in [Min,Max)
type IntRange struct {
	Min int `mapstructure:"min" toml:"min"`
	Max int `mapstructure:"max" toml:"max"`
}

func (rg IntRange) Sample(r *Rand) int {
	return r.IntBetween(rg.Min, rg.Max)
}
