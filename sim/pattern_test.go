package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyscenes/geom"
)

func TestParsePattern(t *testing.T) {
	for p := PatternCircular; p < patternCount; p++ {
		got, err := ParsePattern(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	got, err := ParsePattern("  Figure-Eight ")
	require.NoError(t, err)
	assert.Equal(t, PatternFigureEight, got)

	_, err = ParsePattern("loop")
	assert.Error(t, err)
	assert.Equal(t, "Pattern(9)", Pattern(9).String())
}

func TestPatternForSlot(t *testing.T) {
	want := []Pattern{PatternCircular, PatternFigureEight, PatternBankedWeave, PatternControlled, PatternCircular}
	for i, p := range want {
		assert.Equal(t, p, PatternForSlot(i))
	}
}

func TestComputePoseDeterministic(t *testing.T) {
	params := Params{Rate: 0.7, Radius: 180, Phase: 1.234}
	for _, p := range []Pattern{PatternCircular, PatternFigureEight, PatternBankedWeave} {
		for _, tm := range []float64{0, 0.016, 3.5, 1234.56789} {
			a := ComputePose(p, tm, params, nil)
			b := ComputePose(p, tm, params, nil)
			assert.Equal(t, math.Float64bits(a.Offset.X), math.Float64bits(b.Offset.X))
			assert.Equal(t, math.Float64bits(a.Offset.Y), math.Float64bits(b.Offset.Y))
			assert.Equal(t, math.Float64bits(a.Heading), math.Float64bits(b.Heading))
		}
	}
}

// numericHeading estimates the direction of travel by central difference
func numericHeading(p Pattern, tm float64, params Params) float64 {
	const h = 1e-6
	a := ComputePose(p, tm-h, params, nil).Offset
	b := ComputePose(p, tm+h, params, nil).Offset
	return b.Sub(a).Angle()
}

func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	}
	if d < -math.Pi {
		d += 2 * math.Pi
	}
	return math.Abs(d)
}

func TestComputePoseHeadingFollowsVelocity(t *testing.T) {
	params := Params{Rate: 0.3, Radius: 125, Phase: 0.4}
	for _, p := range []Pattern{PatternCircular, PatternFigureEight} {
		for _, tm := range []float64{0.1, 0.9, 2.2, 4.7} {
			pose := ComputePose(p, tm, params, nil)
			assert.Less(t, angleDiff(pose.Heading, numericHeading(p, tm, params)), 1e-4, "%s at %v", p, tm)
		}
	}
}

func TestComputePoseBankedWeaveWobble(t *testing.T) {
	params := Params{Rate: 0.5, Radius: 50}
	for _, tm := range []float64{0.2, 1.3, 2.8} {
		pose := ComputePose(PatternBankedWeave, tm, params, nil)
		a := tm * params.Rate * 2 * math.Pi
		wobble := 0.2 * math.Sin(4*a)
		assert.Less(t, angleDiff(pose.Heading-wobble, numericHeading(PatternBankedWeave, tm, params)), 1e-4)
	}
}

func TestComputePoseCircular(t *testing.T) {
	pose := ComputePose(PatternCircular, 0, Params{Rate: 1, Radius: 50}, nil)
	assert.InDelta(t, 50, pose.Offset.X, 1e-12)
	assert.InDelta(t, 0, pose.Offset.Y, 1e-12)
	assert.InDelta(t, math.Pi/2, pose.Heading, 1e-12)
}

func TestComputePoseControlled(t *testing.T) {
	params := Params{Rate: 0.5, Radius: 70, Phase: 2}
	assert.Equal(t, Pose{Heading: 2}, ComputePose(PatternControlled, 10, params, nil))

	ctl := &Control{Offset: geom.V(5, -3), Heading: 0.5}
	assert.Equal(t, Pose{Offset: geom.V(5, -3), Heading: 0.5}, ComputePose(PatternControlled, 10, params, ctl))
}
