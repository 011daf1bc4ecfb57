package scene

import (
	"errors"
	"fmt"

	"github.com/tomz197/newton/internal/physics"
	"github.com/tomz197/newton/internal/vector"
)

// World size used by the built-in layouts. Y points up.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// ErrUnknownLayout is returned for a layout name that is not registered.
var ErrUnknownLayout = errors.New("unknown layout")

// Layout populates an empty scene.
type Layout func(s *Scene) error

type namedLayout struct {
	name   string
	layout Layout
}

// layouts in cycle order; the first is the default.
var layouts = []namedLayout{
	{"default", mixedLayout},
	{"circles", circlesLayout},
	{"boxes", boxesLayout},
}

// LayoutNames returns the registered layout names in cycle order.
func LayoutNames() []string {
	names := make([]string, len(layouts))
	for i, l := range layouts {
		names[i] = l.name
	}
	return names
}

// LayoutByName looks up a registered layout.
func LayoutByName(name string) (Layout, error) {
	for _, l := range layouts {
		if l.name == name {
			return l.layout, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
}

// HasLayout reports whether name is a registered layout.
func HasLayout(name string) bool {
	_, err := LayoutByName(name)
	return err == nil
}

// NextLayout returns the layout name after name, wrapping around.
func NextLayout(name string) string {
	for i, l := range layouts {
		if l.name == name {
			return layouts[(i+1)%len(layouts)].name
		}
	}
	return layouts[0].name
}

// Load clears the scene and populates it with the named layout.
func (s *Scene) Load(name string) error {
	layout, err := LayoutByName(name)
	if err != nil {
		return err
	}
	s.Reset()
	if err := layout(s); err != nil {
		return fmt.Errorf("load layout %q: %w", name, err)
	}
	c, o := s.Len()
	s.logger.Debug("layout loaded", "name", name, "circles", c, "obbs", o)
	return nil
}

// layoutBuilder collects the first error while adding shapes.
type layoutBuilder struct {
	s   *Scene
	err error
}

func (b *layoutBuilder) circle(r, x, y float64, t physics.BodyType, m physics.Material) ShapeID {
	if b.err != nil {
		return ShapeID{}
	}
	id, err := b.s.AddCircle(r, vector.New(x, y), t)
	if err == nil {
		err = b.s.SetMaterialProperties(id, m)
	}
	b.err = err
	return id
}

func (b *layoutBuilder) obb(cx, cy, ex, ey float64, t physics.BodyType, m physics.Material) ShapeID {
	if b.err != nil {
		return ShapeID{}
	}
	id, err := b.s.AddOBB(vector.New(cx, cy), vector.New(ex, ey), 0, t)
	if err == nil {
		err = b.s.SetMaterialProperties(id, m)
	}
	b.err = err
	return id
}

func (b *layoutBuilder) impulse(id ShapeID, x, y float64) {
	if b.err != nil {
		return
	}
	b.err = b.s.ApplyImpulse(id, vector.New(x, y))
}

var (
	ballMaterial = physics.Material{Mass: 2, Restitution: 1, Friction: 0.5}
	boxMaterial  = physics.Material{Mass: 2, Restitution: 1, Friction: 0}
)

// mixedLayout drops a ball onto a fixed ball and nudges a box across the floor.
func mixedLayout(s *Scene) error {
	b := &layoutBuilder{s: s}
	b.circle(50, 650, 600, physics.Dynamic, ballMaterial)
	b.circle(50, 510, 300, physics.Static, ballMaterial)

	b.obb(500, 50, 300, 30, physics.Static, boxMaterial)
	b.obb(700, 200, 30, 100, physics.Static, boxMaterial)
	box := b.obb(400, 150, 30, 30, physics.Dynamic, boxMaterial)
	b.impulse(box, 20, 0)
	return b.err
}

// circlesLayout rains small balls onto an inverted pyramid of fixed ones.
func circlesLayout(s *Scene) error {
	const (
		rows    = 5
		radius  = 20.0
		spacing = 10.0
		startX  = 400.0
		startY  = 100.0

		smallRows    = 5
		smallPerRow  = 10
		smallRadius  = 5.0
		smallSpacing = 15.0
		topY         = 500.0
	)

	b := &layoutBuilder{s: s}
	for i := 0; i < rows; i++ {
		n := i + 1
		offsetX := startX - float64(n-1)*(radius+spacing)
		y := startY + float64(i)*2*(radius+spacing)
		for j := 0; j < n; j++ {
			b.circle(radius, offsetX+float64(j)*2*(radius+spacing), y, physics.Static, ballMaterial)
		}
	}

	offsetX := startX - float64(smallPerRow-1)*(smallRadius+smallSpacing)/2
	for r := 0; r < smallRows; r++ {
		y := topY + float64(r)*2*(smallRadius+smallSpacing)
		for k := 0; k < smallPerRow; k++ {
			b.circle(smallRadius, offsetX+float64(k)*(smallRadius+smallSpacing), y, physics.Dynamic, ballMaterial)
		}
	}
	return b.err
}

// boxesLayout slides one box into another against a wall.
func boxesLayout(s *Scene) error {
	b := &layoutBuilder{s: s}
	b.obb(500, 50, 300, 30, physics.Static, boxMaterial)
	b.obb(700, 200, 30, 100, physics.Static, boxMaterial)
	first := b.obb(400, 100, 30, 30, physics.Dynamic, boxMaterial)
	b.obb(500, 100, 30, 30, physics.Dynamic, boxMaterial)
	b.impulse(first, 80, 0)
	return b.err
}
