package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockTick(t *testing.T) {
	c := NewClock(120, 0.25)

	f := c.Tick(5 * time.Second)
	assert.Equal(t, Frame{}, f, "first tick establishes the baseline")

	f = c.Tick(5*time.Second + 25*time.Millisecond/3)
	assert.InDelta(t, 1.0, f.Scale, 1e-6)

	f = c.Tick(5*time.Second + 25*time.Millisecond/3 + 16*time.Millisecond)
	assert.InDelta(t, 1.92, f.Scale, 1e-6)
	assert.InDelta(t, 0.016, f.Delta, 1e-9)
}

func TestClockNonIncreasing(t *testing.T) {
	c := NewClock(60, 0)
	c.Tick(time.Second)
	c.Tick(2 * time.Second)

	f := c.Tick(2 * time.Second)
	assert.Equal(t, 0.0, f.Scale)
	f = c.Tick(time.Second)
	assert.Equal(t, 0.0, f.Delta)
	assert.InDelta(t, 1.0, f.Elapsed, 1e-12)

	f = c.Tick(2*time.Second + 500*time.Millisecond)
	assert.InDelta(t, 30, f.Scale, 1e-9, "resumes from the last accepted timestamp")
}

func TestClockClampsLongFrames(t *testing.T) {
	c := NewClock(60, 0.25)
	c.Tick(0)
	f := c.Tick(3 * time.Second)
	assert.Equal(t, 0.25, f.Delta)
	assert.InDelta(t, 15, f.Scale, 1e-9)

	c.Reset()
	assert.Equal(t, Frame{}, c.Tick(10*time.Second))
}

func TestFrameAt(t *testing.T) {
	assert.Equal(t, Frame{Delta: 0.5, Scale: 60}, FrameAt(60, 120))
	assert.Equal(t, Frame{}, FrameAt(1, 0))
}

func TestRandDeterministic(t *testing.T) {
	a, b := NewRand(99), NewRand(99)
	for range 20 {
		assert.Equal(t, a.Float64(), b.Float64())
	}
	r := NewRand(1)
	for range 200 {
		v := r.IntBetween(50, 250)
		assert.GreaterOrEqual(t, v, 50)
		assert.Less(t, v, 250)
	}
	assert.Equal(t, 3, r.IntBetween(3, 3))
	assert.Equal(t, 0, r.Intn(0))
	assert.False(t, r.Chance(0))
	assert.False(t, r.Chance(-2))
	assert.True(t, r.Chance(1))
}
