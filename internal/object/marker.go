package object

import (
	"fmt"
	"sync"

	"github.com/tomz197/newton/internal/draw"
	"github.com/tomz197/newton/internal/vector"
)

// markerPool is a sync.Pool for reusing Marker objects to reduce allocations.
var markerPool = sync.Pool{
	New: func() any {
		return &Marker{}
	},
}

// Marker is a short-lived symbol drawn at a world position, used for contact points.
type Marker struct {
	Position    vector.Vector2
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Symbol      rune
}

// NewMarker creates a marker from the pool.
func NewMarker(pos vector.Vector2, lifetime float64, symbol rune) *Marker {
	m := markerPool.Get().(*Marker)
	m.Position = pos
	m.Lifetime = lifetime
	m.MaxLifetime = lifetime
	m.Symbol = symbol
	return m
}

// Release returns the marker to the pool for reuse.
func (m *Marker) Release() {
	markerPool.Put(m)
}

// Update counts down the lifetime.
func (m *Marker) Update(ctx UpdateContext) (bool, error) {
	m.Lifetime -= ctx.Delta.Seconds()
	return m.Lifetime <= 0, nil
}

// Draw writes the symbol at the marker's terminal cell. Markers in their last
// quarter of life are skipped so they appear to fade.
func (m *Marker) Draw(ctx DrawContext) error {
	if m.MaxLifetime > 0 && m.Lifetime/m.MaxLifetime < 0.25 {
		return nil
	}
	col, row, ok := ctx.Canvas.Cell(m.Position)
	if !ok {
		return nil
	}
	offCol, offRow := ctx.Canvas.Offset()
	_, err := fmt.Fprintf(ctx.Writer, "\033[%d;%dH%c", row+offRow, col+offCol, m.Symbol)
	return err
}

// Markers is a list of live markers.
type Markers []Object

// Spawn adds markers for the given positions.
func (ms *Markers) Spawn(points []vector.Vector2, lifetime float64) {
	for _, p := range points {
		*ms = append(*ms, NewMarker(p, lifetime, draw.MarkerContact))
	}
}

// Update advances every marker and drops (and releases) expired ones.
func (ms *Markers) Update(ctx UpdateContext) {
	kept := (*ms)[:0]
	for _, m := range *ms {
		remove, _ := m.Update(ctx)
		if remove {
			ReleaseObject(m)
			continue
		}
		kept = append(kept, m)
	}
	clear((*ms)[len(kept):])
	*ms = kept
}

// Draw draws every marker.
func (ms Markers) Draw(ctx DrawContext) error {
	for _, m := range ms {
		if err := m.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}
