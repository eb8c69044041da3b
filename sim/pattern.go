package sim

import (
	"fmt"
	"math"
	"strings"

	"skyscenes/geom"
)

// Pattern selects how a drone moves around its anchor
type Pattern int

const (
	PatternCircular Pattern = iota
	PatternFigureEight
	PatternBankedWeave
	PatternControlled

	patternCount
)

var patternNames = [...]string{
	PatternCircular:    "circular",
	PatternFigureEight: "figure-eight",
	PatternBankedWeave: "banked-weave",
	PatternControlled:  "controlled",
}

func (p Pattern) String() string {
	if p < 0 || p >= patternCount {
		return fmt.Sprintf("Pattern(%d)", int(p))
	}
	return patternNames[p]
}

// ParsePattern resolves a pattern by name
func ParsePattern(s string) (Pattern, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range patternNames {
		if name == s {
			return Pattern(i), nil
		}
	}
	return 0, fmt.Errorf("unknown flight pattern %q", s)
}

// PatternForSlot assigns patterns round-robin by spawn order
func PatternForSlot(i int) Pattern {
	if i < 0 {
		i = -i
	}
	return Pattern(i % int(patternCount))
}

// Params are the static per-drone motion parameters
type Params struct {
	Rate   float64 // revolutions per second
	Radius float64 // path radius in px
	Phase  float64 // radians
}

// Pose is a drone's offset from its anchor and its heading
type Pose struct {
	Offset  geom.Vec2
	Heading float64
}

// ComputePose evaluates a pattern at elapsed time t seconds. Parametric
// patterns are pure; headings follow the analytic velocity so the nose
// points along the path. The controlled pattern reports ctl, or a resting
// pose at the phase heading when ctl is nil.
func ComputePose(p Pattern, t float64, params Params, ctl *Control) Pose {
	a := t*params.Rate*2*math.Pi + params.Phase
	r := params.Radius

	switch p {
	case PatternCircular:
		sin, cos := math.Sincos(a)
		return Pose{
			Offset:  geom.V(r*cos, r*sin),
			Heading: math.Atan2(r*cos, -r*sin),
		}
	case PatternFigureEight:
		return Pose{
			Offset:  geom.V(r*math.Sin(a), 0.6*r*math.Sin(2*a)),
			Heading: math.Atan2(1.2*r*math.Cos(2*a), r*math.Cos(a)),
		}
	case PatternBankedWeave:
		sin, cos := math.Sincos(a)
		pulse := r * (0.75 + 0.25*math.Sin(0.5*a))
		pulseD := 0.125 * r * math.Cos(0.5*a)
		x := cos * pulse
		y := 0.6*sin*pulse + 0.18*r*math.Sin(3*a)
		dx := -sin*pulse + cos*pulseD
		dy := 0.6*cos*pulse + 0.6*sin*pulseD + 0.54*r*math.Cos(3*a)
		return Pose{
			Offset:  geom.V(x, y),
			Heading: math.Atan2(dy, dx) + 0.2*math.Sin(4*a),
		}
	case PatternControlled:
		if ctl == nil {
			return Pose{Heading: params.Phase}
		}
		return Pose{Offset: ctl.Offset, Heading: ctl.Heading}
	}
	return Pose{}
}
