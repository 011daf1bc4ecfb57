package physics

import (
	"math"

	"github.com/tomz197/newton/internal/vector"
)

// frictionEpsilon is the squared tangent speed below which friction is skipped.
const frictionEpsilon = 1e-12

// Contact describes how two shapes overlap.
// Normal is a unit vector pointing from the second shape towards the first.
type Contact struct {
	Normal      vector.Vector2
	Penetration float64
	Point       vector.Vector2 // Approximate contact point, for display
}

// CircleCircleContact computes the contact between two circles, if any.
func CircleCircleContact(a, b *Circle) (Contact, bool) {
	if !CheckCircleCircle(a, b) {
		return Contact{}, false
	}
	delta := a.Position().Sub(b.Position())
	rsum := a.radius + b.radius
	d := delta.Magnitude()

	c := Contact{Normal: vector.New(0, 1), Penetration: rsum}
	if d > 0 {
		c.Normal = delta.Scale(1 / d)
		c.Penetration = rsum - d
	}
	c.Point = b.Position().Add(c.Normal.Scale(b.radius))
	return c, true
}

// CircleOBBContact computes the contact between a circle and a box, if any.
// The normal points from the box towards the circle.
func CircleOBBContact(c *Circle, o *OBB) (Contact, bool) {
	local := o.toLocal(c.Position())
	closest := o.closestLocalPoint(local)
	diff := local.Sub(closest)
	d2 := diff.SquareMagnitude()
	if d2 > c.radius*c.radius {
		return Contact{}, false
	}

	var normal vector.Vector2
	var pen float64
	if d2 > 0 {
		d := math.Sqrt(d2)
		normal = diff.Scale(1 / d)
		pen = c.radius - d
	} else {
		// Center inside the box: push out through the nearest face.
		dx := o.extents.X - math.Abs(local.X)
		dy := o.extents.Y - math.Abs(local.Y)
		if dx < dy {
			normal = vector.New(sign(local.X), 0)
			pen = c.radius + dx
			closest = vector.New(sign(local.X)*o.extents.X, local.Y)
		} else {
			normal = vector.New(0, sign(local.Y))
			pen = c.radius + dy
			closest = vector.New(local.X, sign(local.Y)*o.extents.Y)
		}
	}

	return Contact{
		Normal:      o.toWorldDir(normal),
		Penetration: pen,
		Point:       o.toWorldDir(closest).Add(o.Center()),
	}, true
}

// OBBOBBContact computes the contact between two boxes using world axes only.
// The normal is taken along the axis of least overlap.
func OBBOBBContact(a, b *OBB) (Contact, bool) {
	d := a.Center().Sub(b.Center())
	ox := a.extents.X + b.extents.X - math.Abs(d.X)
	oy := a.extents.Y + b.extents.Y - math.Abs(d.Y)
	if ox < 0 || oy < 0 {
		return Contact{}, false
	}

	c := Contact{}
	if ox < oy {
		c.Normal = vector.New(sign(d.X), 0)
		c.Penetration = ox
		c.Point = vector.New(b.Center().X+sign(d.X)*b.extents.X, (a.Center().Y+b.Center().Y)/2)
	} else {
		c.Normal = vector.New(0, sign(d.Y))
		c.Penetration = oy
		c.Point = vector.New((a.Center().X+b.Center().X)/2, b.Center().Y+sign(d.Y)*b.extents.Y)
	}
	return c, true
}

// FindContact computes the contact for any pair of shapes.
// The returned normal points from b towards a.
func FindContact(a, b Shape) (Contact, bool) {
	switch sa := a.(type) {
	case *Circle:
		switch sb := b.(type) {
		case *Circle:
			return CircleCircleContact(sa, sb)
		case *OBB:
			return CircleOBBContact(sa, sb)
		}
	case *OBB:
		switch sb := b.(type) {
		case *Circle:
			c, ok := CircleOBBContact(sb, sa)
			c.Normal = c.Normal.Invert()
			return c, ok
		case *OBB:
			return OBBOBBContact(sa, sb)
		}
	}
	return Contact{}, false
}

// ResolveCollision detects and resolves a collision between a and b.
// It returns the contact and whether the shapes were touching.
func ResolveCollision(a, b Shape) (Contact, bool) {
	c, ok := FindContact(a, b)
	if !ok {
		return Contact{}, false
	}
	ResolveContact(a.Body(), b.Body(), c)
	return c, true
}

// ResolveContact applies the normal impulse, friction impulse and positional
// correction for a contact whose normal points from b towards a.
//
// Impulses are queued on the bodies and take effect on their next Update;
// positional correction is applied immediately. Static bodies are never written.
// It returns false if nothing was applied because both bodies are immovable
// or already separating.
func ResolveContact(a, b *RigidBody, c Contact) bool {
	invSum := a.invMass + b.invMass
	if invSum == 0 {
		return false
	}

	n := c.Normal
	relVel := a.velocity.Sub(b.velocity)
	vn := vector.Dot(relVel, n)
	if vn > 0 {
		return false
	}

	// Normal impulse
	e := math.Min(a.material.Restitution, b.material.Restitution)
	j := -(1 + e) * vn / invSum
	impulse := n.Scale(j)
	if a.IsDynamic() {
		a.ApplyImpulse(impulse.Scale(a.invMass))
	}
	if b.IsDynamic() {
		b.ApplyImpulse(impulse.Invert().Scale(b.invMass))
	}

	// Friction impulse
	tangent := relVel.Sub(n.Scale(vn))
	if tangent.SquareMagnitude() >= frictionEpsilon {
		tangent = tangent.Normalise()
		mu := math.Sqrt(a.material.Friction * b.material.Friction)
		jt := -vector.Dot(relVel, tangent) / invSum
		jt = clamp(jt, -j*mu, j*mu)
		frictionImpulse := tangent.Scale(jt)
		if a.IsDynamic() {
			a.ApplyImpulse(frictionImpulse.Scale(a.invMass))
		}
		if b.IsDynamic() {
			b.ApplyImpulse(frictionImpulse.Invert().Scale(b.invMass))
		}
	}

	// Positional correction
	corr := math.Max(c.Penetration-Slop, 0) * CorrectionPercent / invSum
	correction := n.Scale(corr)
	if a.IsDynamic() {
		a.SetPosition(a.position.Add(correction.Scale(a.invMass)))
	}
	if b.IsDynamic() {
		b.SetPosition(b.position.Sub(correction.Scale(b.invMass)))
	}
	return true
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
