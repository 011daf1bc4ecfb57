// Package object holds everything drawn on top of the physics world: shape
// drawing, contact markers and HUD text.
package object

import (
	"io"
	"time"

	"github.com/tomz197/newton/internal/draw"
)

// UpdateContext provides the information an object needs during update.
type UpdateContext struct {
	Delta time.Duration
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas // World-space canvas (2x vertical)
	Writer io.Writer    // Direct terminal output (for text/markers)
}

// Object is a drawable and updatable overlay entity.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object. Use ctx.Canvas for shapes, ctx.Writer for text/markers.
	Draw(ctx DrawContext) error
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}
