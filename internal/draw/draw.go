// Package draw rasterises world-space shapes onto a terminal using half-block characters.
package draw

import (
	"math"

	"github.com/tomz197/newton/internal/vector"
)

// Block characters used by Canvas.Render.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Marker characters drawn as text over the canvas.
const (
	MarkerContact = '*'
)

// pixel is a position in sub-pixel space: x grows right, y grows down and a
// terminal cell is one sub-pixel wide and two tall.
type pixel struct {
	x, y float64
}

// ring fills dst with len(dst) vertices of a circle, starting at angle
// rotation (radians) and going counter-clockwise in world space.
func ring(dst []vector.Vector2, center vector.Vector2, radius, rotation float64) {
	n := float64(len(dst))
	for i := range dst {
		a := rotation + 2*math.Pi*float64(i)/n
		dst[i] = vector.New(center.X+radius*math.Cos(a), center.Y+radius*math.Sin(a))
	}
}

func halfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return BlockFull
	case top:
		return BlockUpperHalf
	case bottom:
		return BlockLowerHalf
	}
	return 0
}
