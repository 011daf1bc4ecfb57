package draw

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/tomz197/newton/internal/vector"
)

// Canvas rasterises world-space shapes (y up) onto a grid of terminal cells,
// each holding two square sub-pixels. The world rectangle is scaled
// uniformly to fit the grid and centered in it.
type Canvas struct {
	cols, rows     int
	px             []bool // rows*2 lines of cols sub-pixels
	offCol, offRow int    // render area origin, 0-based

	worldW, worldH float64
	scale          float64 // sub-pixels per world unit
	left, bottom   float64 // sub-pixel position of the world origin

	verts []vector.Vector2
	poly  []pixel
	xs    []float64
	out   strings.Builder
}

// NewCanvas creates a cols x rows canvas showing a worldW x worldH world.
func NewCanvas(cols, rows int, worldW, worldH float64) *Canvas {
	c := &Canvas{worldW: worldW, worldH: worldH}
	c.Resize(cols, rows)
	return c
}

// Resize changes the cell grid and refits the world to it.
func (c *Canvas) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	if c.px == nil || cols != c.cols || rows != c.rows {
		c.cols, c.rows = cols, rows
		c.px = make([]bool, cols*rows*2)
	}
	c.fit()
}

// SetWorld changes the world rectangle the canvas shows.
func (c *Canvas) SetWorld(width, height float64) {
	if width == c.worldW && height == c.worldH {
		return
	}
	c.worldW, c.worldH = width, height
	c.fit()
}

// fit maps the world edges onto the centers of the outermost sub-pixels.
func (c *Canvas) fit() {
	w, h := float64(c.cols-1), float64(c.rows*2-1)
	if c.worldW <= 0 || c.worldH <= 0 || w <= 0 || h <= 0 {
		c.scale, c.left, c.bottom = 1, 0, math.Max(h, 0)
		return
	}
	c.scale = math.Min(w/c.worldW, h/c.worldH)
	c.left = (w - c.worldW*c.scale) / 2
	c.bottom = (h + c.worldH*c.scale) / 2
}

func (c *Canvas) toPixel(p vector.Vector2) pixel {
	return pixel{x: c.left + p.X*c.scale, y: c.bottom - p.Y*c.scale}
}

// SetOffset places the render area at terminal column col+1, row row+1.
func (c *Canvas) SetOffset(col, row int) {
	c.offCol, c.offRow = col, row
}

// Offset returns the render area offset set by SetOffset.
func (c *Canvas) Offset() (col, row int) {
	return c.offCol, c.offRow
}

// Size returns the render area in terminal cells.
func (c *Canvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// Cell returns the 1-based cell of the render area showing world point p.
// ok is false when p is off the canvas.
func (c *Canvas) Cell(p vector.Vector2) (col, row int, ok bool) {
	q := c.toPixel(p)
	x, y := int(math.Round(q.x)), int(math.Round(q.y))
	if x < 0 || x >= c.cols || y < 0 || y >= c.rows*2 {
		return 0, 0, false
	}
	return x + 1, y/2 + 1, true
}

// Clear unsets every sub-pixel.
func (c *Canvas) Clear() {
	clear(c.px)
}

// Pixel reports whether sub-pixel (x, y) is set. y grows downwards.
func (c *Canvas) Pixel(x, y int) bool {
	if x < 0 || x >= c.cols || y < 0 || y >= c.rows*2 {
		return false
	}
	return c.px[y*c.cols+x]
}

func (c *Canvas) set(x, y int) {
	if x >= 0 && x < c.cols && y >= 0 && y < c.rows*2 {
		c.px[y*c.cols+x] = true
	}
}

// Line draws the segment between two world points.
func (c *Canvas) Line(a, b vector.Vector2) {
	c.segment(c.toPixel(a), c.toPixel(b))
}

// Polygon draws the outline through world points pts, filling it when
// filled is set.
func (c *Canvas) Polygon(pts []vector.Vector2, filled bool) {
	if len(pts) < 3 {
		return
	}
	c.poly = c.poly[:0]
	for _, p := range pts {
		c.poly = append(c.poly, c.toPixel(p))
	}
	if filled {
		c.fill(c.poly)
	}
	for i, p := range c.poly {
		c.segment(p, c.poly[(i+1)%len(c.poly)])
	}
}

// Circle draws a circle of the given world radius as a polygon of segments
// sides turned by rotation radians. spoke adds a line from the center to the
// first vertex so spinning is visible.
func (c *Canvas) Circle(center vector.Vector2, radius, rotation float64, segments int, filled, spoke bool) {
	if radius*c.scale < 1 {
		o := c.toPixel(center)
		c.segment(o, o)
		return
	}
	segments = max(segments, 3)
	c.verts = slices.Grow(c.verts[:0], segments)[:segments]
	ring(c.verts, center, radius, rotation)
	c.Polygon(c.verts, filled)
	if spoke {
		c.Line(center, c.verts[0])
	}
}

// segment steps along the longer axis, one sub-pixel at a time.
func (c *Canvas) segment(a, b pixel) {
	x0, y0 := math.Round(a.x), math.Round(a.y)
	dx, dy := math.Round(b.x)-x0, math.Round(b.y)-y0
	n := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if n == 0 {
		c.set(int(x0), int(y0))
		return
	}
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		c.set(int(math.Round(x0+dx*t)), int(math.Round(y0+dy*t)))
	}
}

// fill sets every sub-pixel center inside poly, one scanline per row.
func (c *Canvas) fill(poly []pixel) {
	top, bottom := poly[0].y, poly[0].y
	for _, p := range poly[1:] {
		top, bottom = math.Min(top, p.y), math.Max(bottom, p.y)
	}
	y0 := max(int(math.Ceil(top)), 0)
	y1 := min(int(math.Floor(bottom)), c.rows*2-1)
	for y := y0; y <= y1; y++ {
		sy := float64(y)
		c.xs = c.xs[:0]
		for i, p := range poly {
			q := poly[(i+1)%len(poly)]
			if (p.y <= sy) != (q.y <= sy) {
				c.xs = append(c.xs, p.x+(sy-p.y)*(q.x-p.x)/(q.y-p.y))
			}
		}
		slices.Sort(c.xs)
		for i := 0; i+1 < len(c.xs); i += 2 {
			x0 := max(int(math.Ceil(c.xs[i])), 0)
			x1 := min(int(math.Floor(c.xs[i+1])), c.cols-1)
			for x := x0; x <= x1; x++ {
				c.px[y*c.cols+x] = true
			}
		}
	}
}

// Render writes the set cells as half blocks. Empty cells are skipped, so the
// screen must already be blank. A run of set cells costs one cursor move.
func (c *Canvas) Render(w io.Writer) error {
	c.out.Reset()
	for row := 0; row < c.rows; row++ {
		top := c.px[2*row*c.cols:][:c.cols]
		bottom := c.px[(2*row+1)*c.cols:][:c.cols]
		next := -1
		for col := range top {
			ch := halfBlock(top[col], bottom[col])
			if ch == 0 {
				continue
			}
			if col != next {
				fmt.Fprintf(&c.out, "\033[%d;%dH", row+1+c.offRow, col+1+c.offCol)
			}
			c.out.WriteRune(ch)
			next = col + 1
		}
	}
	_, err := io.WriteString(w, c.out.String())
	return err
}

// Border frames the render area on the sides where the terminal leaves room.
func (c *Canvas) Border(w io.Writer) error {
	sides, caps := c.offCol >= 1, c.offRow >= 1
	if !sides && !caps {
		return nil
	}
	var b strings.Builder
	left, right := c.offCol, c.offCol+c.cols+1
	if caps {
		bar := strings.Repeat("─", c.cols)
		col, tl, tr, bl, br := left+1, "", "", "", ""
		if sides {
			col, tl, tr, bl, br = left, "┌", "┐", "└", "┘"
		}
		fmt.Fprintf(&b, "\033[%d;%dH%s%s%s", c.offRow, col, tl, bar, tr)
		fmt.Fprintf(&b, "\033[%d;%dH%s%s%s", c.offRow+c.rows+1, col, bl, bar, br)
	}
	if sides {
		for row := c.offRow + 1; row <= c.offRow+c.rows; row++ {
			fmt.Fprintf(&b, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
