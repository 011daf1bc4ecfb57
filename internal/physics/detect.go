package physics

import "math"

// CheckCircleCircle reports whether two circles overlap or touch.
func CheckCircleCircle(a, b *Circle) bool {
	return CirclesOverlap(a.Position(), a.radius, b.Position(), b.radius)
}

// CheckCircleOBB reports whether a circle overlaps a box. The circle center is
// taken into the box's local frame and clamped onto the box.
func CheckCircleOBB(c *Circle, o *OBB) bool {
	local := o.toLocal(c.Position())
	closest := o.closestLocalPoint(local)
	return PointInCircle(closest, local, c.radius)
}

// CheckOBBOBB reports whether two boxes overlap on both world axes.
// Box rotation is ignored.
func CheckOBBOBB(a, b *OBB) bool {
	d := a.Center().Sub(b.Center())
	return math.Abs(d.X) <= a.extents.X+b.extents.X &&
		math.Abs(d.Y) <= a.extents.Y+b.extents.Y
}

// CheckCollision dispatches to the detection test for the pair's kinds.
func CheckCollision(a, b Shape) bool {
	switch sa := a.(type) {
	case *Circle:
		switch sb := b.(type) {
		case *Circle:
			return CheckCircleCircle(sa, sb)
		case *OBB:
			return CheckCircleOBB(sa, sb)
		}
	case *OBB:
		switch sb := b.(type) {
		case *Circle:
			return CheckCircleOBB(sb, sa)
		case *OBB:
			return CheckOBBOBB(sa, sb)
		}
	}
	return false
}
