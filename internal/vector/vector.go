// Package vector provides the 2D vector type used by the physics kernel.
package vector

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r2"
)

// ErrDivideByZero is returned when a vector is divided by a zero scalar.
var ErrDivideByZero = errors.New("vector: divide by zero")

// Vector2 is a 2D vector. Operations return new values and never modify the receiver,
// except for the *Assign forms.
type Vector2 r2.Point

// Zero is the zero vector.
var Zero = Vector2{}

// New creates a vector from its components.
func New(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

func (v Vector2) point() r2.Point {
	return r2.Point(v)
}

// Add returns v + w.
func (v Vector2) Add(w Vector2) Vector2 {
	return Vector2(v.point().Add(w.point()))
}

// Sub returns v - w.
func (v Vector2) Sub(w Vector2) Vector2 {
	return Vector2(v.point().Sub(w.point()))
}

// Scale returns v * s.
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2(v.point().Mul(s))
}

// Div returns v / s, or ErrDivideByZero when s is zero.
func (v Vector2) Div(s float64) (Vector2, error) {
	if s == 0 {
		return v, fmt.Errorf("%w: %v / 0", ErrDivideByZero, v)
	}
	return Vector2(v.point().Mul(1 / s)), nil
}

// Invert returns the vector with both components negated.
func (v Vector2) Invert() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}

// Magnitude returns the length of v.
func (v Vector2) Magnitude() float64 {
	return v.point().Norm()
}

// SquareMagnitude returns the squared length of v.
// Use this when comparing lengths to avoid the sqrt cost.
func (v Vector2) SquareMagnitude() float64 {
	return v.point().Dot(v.point())
}

// Normalise returns the unit vector in the direction of v.
// The zero vector normalises to itself.
func (v Vector2) Normalise() Vector2 {
	return Vector2(v.point().Normalize())
}

// Rotate returns v rotated counter-clockwise by rad radians.
func (v Vector2) Rotate(rad float64) Vector2 {
	r := mgl64.Rotate2D(rad).Mul2x1(mgl64.Vec2{v.X, v.Y})
	return Vector2{X: r.X(), Y: r.Y()}
}

// RotateDegrees returns v rotated counter-clockwise by deg degrees.
func (v Vector2) RotateDegrees(deg float64) Vector2 {
	if deg == 0 {
		return v
	}
	return v.Rotate(mgl64.DegToRad(deg))
}

// Equal reports whether both components are exactly equal.
func (v Vector2) Equal(w Vector2) bool {
	return v.X == w.X && v.Y == w.Y
}

// IsZero reports whether v is the zero vector.
func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// String implements fmt.Stringer.
func (v Vector2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// AddAssign adds w to v in place.
func (v *Vector2) AddAssign(w Vector2) {
	v.X += w.X
	v.Y += w.Y
}

// SubAssign subtracts w from v in place.
func (v *Vector2) SubAssign(w Vector2) {
	v.X -= w.X
	v.Y -= w.Y
}

// ScaleAssign multiplies v by s in place.
func (v *Vector2) ScaleAssign(s float64) {
	v.X *= s
	v.Y *= s
}

// Dot returns the dot product of a and b.
func Dot(a, b Vector2) float64 {
	return a.point().Dot(b.point())
}

// Cross returns the 2D cross product of a and b (the z component of the 3D cross).
func Cross(a, b Vector2) float64 {
	return a.point().Cross(b.point())
}
