// Package physics implements the rigid-body kernel: bodies, shapes, collision
// detection and impulse-based collision resolution.
package physics

import "github.com/tomz197/newton/internal/vector"

// Gravity is the constant acceleration applied to every dynamic body.
var Gravity = vector.New(0, -9.8)

// Positional correction tunables.
const (
	Slop              = 0.01 // Penetration allowed before correction kicks in
	CorrectionPercent = 0.2  // Fraction of the remaining penetration removed per resolve
)

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b vector.Vector2) float64 {
	return b.Sub(a).SquareMagnitude()
}

// PointInCircle checks if a point is within radius of a center. The boundary counts as inside.
func PointInCircle(p, center vector.Vector2, radius float64) bool {
	return DistanceSquared(p, center) <= radius*radius
}

// CirclesOverlap checks if two circles overlap or touch.
func CirclesOverlap(c1 vector.Vector2, r1 float64, c2 vector.Vector2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(c1, c2) <= minDist*minDist
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
