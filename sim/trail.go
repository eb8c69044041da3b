package sim

import "skyscenes/geom"

// TrailPoint is one reconstructed past position of a flying body
type TrailPoint struct {
	Pos    geom.Vec2
	Radius float64
	Alpha  float64
}

// ComputeTrail walks a body backwards in time from (pos, vel), one frame per
// segment: undo gravity on the velocity, then undo the move with the
// corrected velocity. Point i is scaled by 1 - i/segments so the tail
// shrinks and fades; index 0 is nearest the body.
func ComputeTrail(pos, vel geom.Vec2, gravity float64, segments int, radius, alpha float64) []TrailPoint {
	if segments <= 0 {
		return nil
	}
	pts := make([]TrailPoint, segments)
	for i := range segments {
		vel.Y -= gravity
		pos = pos.Sub(vel)
		k := 1 - float64(i)/float64(segments)
		pts[i] = TrailPoint{Pos: pos, Radius: radius * k, Alpha: alpha * k}
	}
	return pts
}
