package sim

import "time"

// Frame is the timing handed to every scene update
type Frame struct {
	// Delta is the wall time covered by this frame in seconds
	Delta float64
	// Scale is Delta measured in target-frame intervals
	Scale float64
	// Elapsed is the accumulated Delta since the clock started
	Elapsed float64
}

// FrameAt builds the frame a clock running at fps would produce for a step of
// scale target intervals
func FrameAt(scale, fps float64) Frame {
	if fps <= 0 {
		return Frame{}
	}
	return Frame{Delta: scale / fps, Scale: scale}
}

// Clock turns monotonically increasing host timestamps into normalized frames
type Clock struct {
	targetFPS float64
	maxDelta  float64

	started bool
	last    time.Duration
	elapsed float64
}

// NewClock returns a clock normalizing against targetFPS. Deltas above
// maxDelta seconds are clamped; zero disables the clamp.
func NewClock(targetFPS, maxDelta float64) *Clock {
	if targetFPS <= 0 {
		targetFPS = 60
	}
	return &Clock{targetFPS: targetFPS, maxDelta: maxDelta}
}

// TargetFPS returns the frame rate deltas are normalized against
func (c *Clock) TargetFPS() float64 {
	return c.targetFPS
}

// Tick advances to timestamp now. The first tick and any non-increasing
// timestamp yield a zero-length frame.
func (c *Clock) Tick(now time.Duration) Frame {
	if !c.started {
		c.started = true
		c.last = now
		return Frame{Elapsed: c.elapsed}
	}
	d := now - c.last
	if d <= 0 {
		return Frame{Elapsed: c.elapsed}
	}
	c.last = now

	delta := d.Seconds()
	if c.maxDelta > 0 && delta > c.maxDelta {
		delta = c.maxDelta
	}
	c.elapsed += delta
	return Frame{Delta: delta, Scale: delta * c.targetFPS, Elapsed: c.elapsed}
}

// Reset forgets the previous timestamp and elapsed time
func (c *Clock) Reset() {
	c.started = false
	c.last = 0
	c.elapsed = 0
}
