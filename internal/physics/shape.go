package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/newton/internal/vector"
)

// Shape construction errors.
var (
	ErrInvalidRadius  = errors.New("invalid circle radius")
	ErrInvalidExtents = errors.New("invalid box extents")
)

// Kind identifies a shape variant.
type Kind int

const (
	KindCircle Kind = iota
	KindOBB
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindOBB:
		return "obb"
	default:
		return "unknown"
	}
}

// Shape is implemented by *Circle and *OBB only.
type Shape interface {
	Kind() Kind
	Body() *RigidBody
	Area() float64
	sealed()
}

var (
	_ Shape = (*Circle)(nil)
	_ Shape = (*OBB)(nil)
)

// Circle is a circle that owns its rigid body.
type Circle struct {
	radius float64
	body   RigidBody
}

// NewCircle creates a circle centered at position.
func NewCircle(radius float64, position vector.Vector2, t BodyType) (*Circle, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	return &Circle{
		radius: radius,
		body:   NewRigidBody(position, 0, t),
	}, nil
}

func (c *Circle) Kind() Kind       { return KindCircle }
func (c *Circle) Body() *RigidBody { return &c.body }
func (c *Circle) Radius() float64  { return c.radius }
func (c *Circle) sealed()          {}

// Position returns the circle's center.
func (c *Circle) Position() vector.Vector2 { return c.body.position }

// Rotation returns the circle's rotation in degrees.
func (c *Circle) Rotation() float64 { return c.body.rotation }

// Area returns πr².
func (c *Circle) Area() float64 { return math.Pi * c.radius * c.radius }

// OBB is an oriented bounding box that owns its rigid body.
type OBB struct {
	extents vector.Vector2 // Half widths
	body    RigidBody
}

// NewOBB creates a box with the given center, half extents and rotation in degrees.
func NewOBB(center, extents vector.Vector2, rotation float64, t BodyType) (*OBB, error) {
	if !(extents.X > 0) || !(extents.Y > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExtents, extents)
	}
	return &OBB{
		extents: extents,
		body:    NewRigidBody(center, rotation, t),
	}, nil
}

func (o *OBB) Kind() Kind              { return KindOBB }
func (o *OBB) Body() *RigidBody        { return &o.body }
func (o *OBB) Extents() vector.Vector2 { return o.extents }
func (o *OBB) Center() vector.Vector2  { return o.body.position }
func (o *OBB) Rotation() float64       { return o.body.rotation }
func (o *OBB) Area() float64           { return 4 * o.extents.X * o.extents.Y }
func (o *OBB) sealed()                 {}

// Axes returns the box's local X and Y axes in world space.
func (o *OBB) Axes() (x, y vector.Vector2) {
	m := mgl64.Rotate2D(mgl64.DegToRad(o.body.rotation))
	cx, cy := m.Col(0), m.Col(1)
	return vector.New(cx.X(), cx.Y()), vector.New(cy.X(), cy.Y())
}

// Corners returns the four corners counter-clockwise, starting bottom-left in local space.
func (o *OBB) Corners() [4]vector.Vector2 {
	ax, ay := o.Axes()
	ex := ax.Scale(o.extents.X)
	ey := ay.Scale(o.extents.Y)
	c := o.body.position
	return [4]vector.Vector2{
		c.Sub(ex).Sub(ey),
		c.Add(ex).Sub(ey),
		c.Add(ex).Add(ey),
		c.Sub(ex).Add(ey),
	}
}

// toLocal transforms a world point into the box's local frame.
func (o *OBB) toLocal(p vector.Vector2) vector.Vector2 {
	return p.Sub(o.body.position).RotateDegrees(-o.body.rotation)
}

// toWorldDir transforms a local direction into world space.
func (o *OBB) toWorldDir(d vector.Vector2) vector.Vector2 {
	return d.RotateDegrees(o.body.rotation)
}

// closestLocalPoint clamps a local-space point onto the box.
func (o *OBB) closestLocalPoint(local vector.Vector2) vector.Vector2 {
	return vector.New(
		clamp(local.X, -o.extents.X, o.extents.X),
		clamp(local.Y, -o.extents.Y, o.extents.Y),
	)
}

// ClosestPoint returns the point on or inside the box closest to p, in world space.
func (o *OBB) ClosestPoint(p vector.Vector2) vector.Vector2 {
	local := o.closestLocalPoint(o.toLocal(p))
	return o.toWorldDir(local).Add(o.body.position)
}
