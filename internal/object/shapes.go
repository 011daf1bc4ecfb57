package object

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/newton/internal/loop/config"
	"github.com/tomz197/newton/internal/physics"
	"github.com/tomz197/newton/internal/scene"
)

// ShapeDrawer draws scene shapes onto a canvas. Static shapes are filled;
// dynamic circles get a spoke so their rotation is visible.
type ShapeDrawer struct {
	ctx DrawContext
}

var _ scene.Renderer = (*ShapeDrawer)(nil)

// NewShapeDrawer creates a drawer for one frame.
func NewShapeDrawer(ctx DrawContext) *ShapeDrawer {
	return &ShapeDrawer{ctx: ctx}
}

// DrawCircle implements scene.Renderer.
func (d *ShapeDrawer) DrawCircle(c *physics.Circle) {
	static := c.Body().IsStatic()
	d.ctx.Canvas.Circle(c.Position(), c.Radius(), mgl64.DegToRad(c.Rotation()),
		config.CircleSegments, static, !static)
}

// DrawOBB implements scene.Renderer.
func (d *ShapeDrawer) DrawOBB(o *physics.OBB) {
	corners := o.Corners()
	d.ctx.Canvas.Polygon(corners[:], o.Body().IsStatic())
}
