package draw

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/tomz197/newton/internal/vector"
)

func countPixels(c *Canvas) int {
	cols, rows := c.Size()
	n := 0
	for y := 0; y < rows*2; y++ {
		for x := 0; x < cols; x++ {
			if c.Pixel(x, y) {
				n++
			}
		}
	}
	return n
}

// unitCanvas maps world (x, y) to sub-pixel (x, 39-y).
func unitCanvas() *Canvas {
	return NewCanvas(41, 20, 40, 39)
}

func TestRing(t *testing.T) {
	pts := make([]vector.Vector2, 4)
	ring(pts, vector.New(10, 10), 2, 0)

	want := []vector.Vector2{vector.New(12, 10), vector.New(10, 12), vector.New(8, 10), vector.New(10, 8)}
	for i, w := range want {
		if math.Abs(pts[i].X-w.X) > 1e-9 || math.Abs(pts[i].Y-w.Y) > 1e-9 {
			t.Errorf("pts[%d] = %v, want %v", i, pts[i], w)
		}
	}
}

func TestCell(t *testing.T) {
	// A square world in a wide grid: scale 0.9, centered horizontally.
	c := NewCanvas(21, 5, 10, 10)

	tests := []struct {
		name     string
		world    vector.Vector2
		col, row int
		ok       bool
	}{
		{"bottom left", vector.New(0, 0), 7, 5, true},
		{"top right", vector.New(10, 10), 16, 1, true},
		{"top left", vector.New(0, 10), 7, 1, true},
		{"off canvas", vector.New(-100, 0), 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row, ok := c.Cell(tt.world)
			if col != tt.col || row != tt.row || ok != tt.ok {
				t.Errorf("Cell(%v) = %d, %d, %v, want %d, %d, %v", tt.world, col, row, ok, tt.col, tt.row, tt.ok)
			}
		})
	}
}

func TestSetWorldRefits(t *testing.T) {
	c := NewCanvas(21, 5, 10, 10)
	c.SetWorld(20, 9)
	// Now width-limited: scale 1, world top edge at sub-pixel 0.
	if col, row, ok := c.Cell(vector.New(20, 9)); !ok || col != 21 || row != 1 {
		t.Errorf("Cell(top right) = %d, %d, %v", col, row, ok)
	}
}

func TestCircle(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		filled bool
		min    int
	}{
		{"outline", 8, false, 20},
		{"filled", 8, true, 150},
		{"sub-pixel", 0.2, false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := unitCanvas()
			c.Circle(vector.New(20, 20), tt.radius, 0, 24, tt.filled, false)
			if got := countPixels(c); got < tt.min {
				t.Errorf("pixels set = %d, want >= %d", got, tt.min)
			}
			if !tt.filled && tt.radius > 1 && c.Pixel(20, 19) {
				t.Error("outline circle filled its center")
			}
		})
	}
}

func TestCircleSpoke(t *testing.T) {
	c := unitCanvas()
	c.Circle(vector.New(20, 20), 8, 0, 24, false, true)
	if !c.Pixel(20, 19) || !c.Pixel(24, 19) || !c.Pixel(28, 19) {
		t.Error("spoke not drawn from center to first vertex")
	}

	// A quarter turn puts the spoke above the center (y up in the world).
	c.Clear()
	c.Circle(vector.New(20, 20), 8, math.Pi/2, 24, false, true)
	if !c.Pixel(20, 15) {
		t.Error("rotated spoke not above the center")
	}
	if c.Pixel(24, 19) {
		t.Error("rotated spoke still drawn to the right")
	}
}

func TestPolygonFill(t *testing.T) {
	c := unitCanvas()
	square := []vector.Vector2{vector.New(10, 10), vector.New(20, 10), vector.New(20, 20), vector.New(10, 20)}
	c.Polygon(square, true)
	if got := countPixels(c); got != 121 {
		t.Errorf("filled 10x10 square set %d pixels, want 121", got)
	}
	c.Clear()
	if countPixels(c) != 0 {
		t.Error("Clear left pixels set")
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	c := NewCanvas(4, 2, 3, 3) // world (x, y) is sub-pixel (x, 3-y)
	for _, p := range []vector.Vector2{
		vector.New(0, 3), // top half of row 1
		vector.New(1, 3),
		vector.New(1, 2), // both halves of row 1, col 2
		vector.New(2, 0), // bottom half of row 2
	} {
		c.Line(p, p)
	}

	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	want := "\033[1;1H" + string(BlockUpperHalf) + string(BlockFull) + "\033[2;3H" + string(BlockLowerHalf)
	if got := buf.String(); got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestBorder(t *testing.T) {
	c := NewCanvas(3, 1, 1, 1)
	var buf bytes.Buffer
	if err := c.Border(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("Border without offset wrote %q", buf.String())
	}

	c.SetOffset(1, 1)
	if err := c.Border(&buf); err != nil {
		t.Fatal(err)
	}
	want := "\033[1;1H┌───┐\033[3;1H└───┘\033[2;1H│\033[2;5H│"
	if got := buf.String(); got != want {
		t.Errorf("Border = %q, want %q", got, want)
	}
}

type recordingWriter struct {
	writes []int
	bytes.Buffer
}

func (r *recordingWriter) Write(p []byte) (int, error) {
	r.writes = append(r.writes, len(p))
	return r.Buffer.Write(p)
}

func TestFrameOffset(t *testing.T) {
	var buf bytes.Buffer
	f := NewFrame(&buf)
	f.SetOffset(2, 3)
	f.WriteAt(1, 1, "hi")
	if buf.Len() != 0 {
		t.Fatal("Frame wrote before Flush")
	}
	if err := f.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "\033[4;3Hhi" {
		t.Errorf("output = %q", got)
	}

	buf.Reset()
	f.WriteAt(1, 1, "stale")
	f.Reset()
	if err := f.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != clearScreen {
		t.Errorf("Reset frame = %q, want only a clear", got)
	}
}

func TestFrameFlushChunks(t *testing.T) {
	var w recordingWriter
	f := NewFrame(&w)
	if _, err := f.WriteString(strings.Repeat("x", 3000)); err != nil {
		t.Fatal(err)
	}
	if err := f.Flush(); err != nil {
		t.Fatal(err)
	}
	want := []int{chunkSize, chunkSize, 3000 - 2*chunkSize}
	if len(w.writes) != len(want) {
		t.Fatalf("writes = %v, want %v", w.writes, want)
	}
	for i := range want {
		if w.writes[i] != want[i] {
			t.Errorf("writes = %v, want %v", w.writes, want)
		}
	}

	// A flushed frame is empty.
	if err := f.Flush(); err != nil {
		t.Fatal(err)
	}
	if len(w.writes) != len(want) {
		t.Errorf("second Flush wrote %d more times", len(w.writes)-len(want))
	}
}

func TestSession(t *testing.T) {
	var buf bytes.Buffer
	if err := BeginSession(&buf); err != nil {
		t.Fatal(err)
	}
	if err := EndSession(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\033[?1049h") || !strings.HasSuffix(out, "\033[?1049l") {
		t.Errorf("session sequences = %q", out)
	}
}
