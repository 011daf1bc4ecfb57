// Package scene owns the shapes of a simulation and drives each step:
// integrate every body, then detect and resolve collisions pair by pair.
package scene

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/tomz197/newton/internal/physics"
	"github.com/tomz197/newton/internal/vector"
)

// ErrUnknownShape is returned when a ShapeID does not refer to a shape in the scene.
var ErrUnknownShape = errors.New("unknown shape")

// ShapeID is a stable handle to a shape. Shapes are never removed, so a handle
// stays valid until Reset.
type ShapeID struct {
	Kind  physics.Kind
	Index int
}

func (id ShapeID) String() string {
	return fmt.Sprintf("%s#%d", id.Kind, id.Index)
}

// Renderer receives every shape during OnDraw. Shapes must be treated as read-only.
type Renderer interface {
	DrawCircle(c *physics.Circle)
	DrawOBB(o *physics.OBB)
}

// Scene holds circles and boxes in insertion order.
// It is not safe for concurrent use; one goroutine must own it.
type Scene struct {
	circles  []physics.Circle
	obbs     []physics.OBB
	contacts []physics.Contact // Contacts resolved by the last CheckCollisions

	width, height float64
	logger        *log.Logger
}

// Option configures a Scene.
type Option func(*Scene)

// WithLogger sets the logger used for rejected edits and layout loads.
func WithLogger(l *log.Logger) Option {
	return func(s *Scene) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBounds sets the world rectangle viewers should display.
func WithBounds(width, height float64) Option {
	return func(s *Scene) {
		s.width = width
		s.height = height
	}
}

// New creates an empty scene.
func New(opts ...Option) *Scene {
	s := &Scene{
		width:  DefaultWidth,
		height: DefaultHeight,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bounds returns the world size.
func (s *Scene) Bounds() (width, height float64) {
	return s.width, s.height
}

// AddCircle appends a circle with the default material.
func (s *Scene) AddCircle(radius float64, position vector.Vector2, t physics.BodyType) (ShapeID, error) {
	c, err := physics.NewCircle(radius, position, t)
	if err != nil {
		return ShapeID{}, err
	}
	s.circles = append(s.circles, *c)
	return ShapeID{Kind: physics.KindCircle, Index: len(s.circles) - 1}, nil
}

// AddOBB appends a box with the default material. rotation is in degrees.
func (s *Scene) AddOBB(center, extents vector.Vector2, rotation float64, t physics.BodyType) (ShapeID, error) {
	o, err := physics.NewOBB(center, extents, rotation, t)
	if err != nil {
		return ShapeID{}, err
	}
	s.obbs = append(s.obbs, *o)
	return ShapeID{Kind: physics.KindOBB, Index: len(s.obbs) - 1}, nil
}

// Circle returns the circle for id.
func (s *Scene) Circle(id ShapeID) (*physics.Circle, error) {
	if id.Kind != physics.KindCircle || id.Index < 0 || id.Index >= len(s.circles) {
		return nil, fmt.Errorf("%w: %v", ErrUnknownShape, id)
	}
	return &s.circles[id.Index], nil
}

// OBB returns the box for id.
func (s *Scene) OBB(id ShapeID) (*physics.OBB, error) {
	if id.Kind != physics.KindOBB || id.Index < 0 || id.Index >= len(s.obbs) {
		return nil, fmt.Errorf("%w: %v", ErrUnknownShape, id)
	}
	return &s.obbs[id.Index], nil
}

// Shape returns the shape for id.
func (s *Scene) Shape(id ShapeID) (physics.Shape, error) {
	switch id.Kind {
	case physics.KindCircle:
		if c, err := s.Circle(id); err == nil {
			return c, nil
		}
	case physics.KindOBB:
		if o, err := s.OBB(id); err == nil {
			return o, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownShape, id)
}

// Body returns the rigid body of the shape for id.
func (s *Scene) Body(id ShapeID) (*physics.RigidBody, error) {
	sh, err := s.Shape(id)
	if err != nil {
		return nil, err
	}
	return sh.Body(), nil
}

// SetMaterialProperties updates the material of the shape for id.
func (s *Scene) SetMaterialProperties(id ShapeID, m physics.Material) error {
	b, err := s.Body(id)
	if err != nil {
		return err
	}
	if err := b.SetMaterialProperties(m); err != nil {
		s.logger.Warn("material rejected", "shape", id, "err", err)
		return fmt.Errorf("set material on %v: %w", id, err)
	}
	return nil
}

// ApplyForce applies a force to the shape for id.
func (s *Scene) ApplyForce(id ShapeID, f vector.Vector2) error {
	b, err := s.Body(id)
	if err != nil {
		return err
	}
	b.ApplyForce(f)
	return nil
}

// ApplyImpulse applies an impulse to the shape for id.
func (s *Scene) ApplyImpulse(id ShapeID, j vector.Vector2) error {
	b, err := s.Body(id)
	if err != nil {
		return err
	}
	b.ApplyImpulse(j)
	return nil
}

// Kick applies the same impulse to every dynamic body.
func (s *Scene) Kick(j vector.Vector2) {
	s.eachBody(func(b *physics.RigidBody) { b.ApplyImpulse(j) })
}

// Push applies the same force to every dynamic body for the next update.
func (s *Scene) Push(f vector.Vector2) {
	s.eachBody(func(b *physics.RigidBody) { b.ApplyForce(f) })
}

// eachBody visits circles first, then boxes.
func (s *Scene) eachBody(fn func(*physics.RigidBody)) {
	for i := range s.circles {
		fn(s.circles[i].Body())
	}
	for i := range s.obbs {
		fn(s.obbs[i].Body())
	}
}

// OnUpdate advances the simulation by dt seconds: every body is integrated
// (circles, then boxes) and all collisions are resolved.
func (s *Scene) OnUpdate(dt float64) {
	s.eachBody(func(b *physics.RigidBody) { b.Update(dt) })
	s.CheckCollisions()
}

// CheckCollisions resolves every touching pair in a fixed order:
// circle/circle, circle/box, box/box. It returns the number of contacts found.
func (s *Scene) CheckCollisions() int {
	s.contacts = s.contacts[:0]

	for i := range s.circles {
		for j := i + 1; j < len(s.circles); j++ {
			s.resolve(&s.circles[i], &s.circles[j])
		}
	}
	for i := range s.circles {
		for j := range s.obbs {
			s.resolve(&s.circles[i], &s.obbs[j])
		}
	}
	for i := range s.obbs {
		for j := i + 1; j < len(s.obbs); j++ {
			s.resolve(&s.obbs[i], &s.obbs[j])
		}
	}

	return len(s.contacts)
}

func (s *Scene) resolve(a, b physics.Shape) {
	if !physics.CheckCollision(a, b) {
		return
	}
	if c, ok := physics.ResolveCollision(a, b); ok {
		s.contacts = append(s.contacts, c)
	}
}

// Contacts returns the contacts found by the last CheckCollisions.
// The slice is reused by the next call.
func (s *Scene) Contacts() []physics.Contact {
	return s.contacts
}

// OnDraw hands every shape to r in insertion order, circles first.
func (s *Scene) OnDraw(r Renderer) {
	for i := range s.circles {
		r.DrawCircle(&s.circles[i])
	}
	for i := range s.obbs {
		r.DrawOBB(&s.obbs[i])
	}
}

// Len returns the number of circles and boxes.
func (s *Scene) Len() (circles, obbs int) {
	return len(s.circles), len(s.obbs)
}

// Reset removes every shape. Existing ShapeIDs become invalid.
func (s *Scene) Reset() {
	s.circles = s.circles[:0]
	s.obbs = s.obbs[:0]
	s.contacts = s.contacts[:0]
}
