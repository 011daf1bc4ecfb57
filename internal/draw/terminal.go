package draw

import (
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// chunkSize keeps each write under a typical MTU so frames stream smoothly over SSH.
const chunkSize = 1400

const (
	clearScreen  = "\033[H\033[2J"
	beginSession = "\033[?1049h\033[?25l" + clearScreen // alt screen, hidden cursor
	endSession   = "\033[?25h\033[?1049l"
)

// Frame collects the output of one frame and sends it to the terminal in
// chunkSize writes on Flush. Positions given to WriteAt are relative to the
// render area set with SetOffset.
type Frame struct {
	w              io.Writer
	buf            []byte
	offCol, offRow int
}

// NewFrame creates a frame writing to w.
func NewFrame(w io.Writer) *Frame {
	return &Frame{w: w}
}

// SetOffset moves the render area origin (0-based terminal column and row).
func (f *Frame) SetOffset(col, row int) {
	f.offCol, f.offRow = col, row
}

// Reset drops pending output and starts the frame on a cleared screen.
func (f *Frame) Reset() {
	f.buf = append(f.buf[:0], clearScreen...)
}

// Write appends p to the frame.
func (f *Frame) Write(p []byte) (int, error) {
	f.buf = append(f.buf, p...)
	return len(p), nil
}

// WriteString appends s to the frame.
func (f *Frame) WriteString(s string) (int, error) {
	f.buf = append(f.buf, s...)
	return len(s), nil
}

// WriteAt writes s starting at 1-based cell (col, row) of the render area.
func (f *Frame) WriteAt(col, row int, s string) {
	f.buf = append(f.buf, "\033["...)
	f.buf = strconv.AppendInt(f.buf, int64(row+f.offRow), 10)
	f.buf = append(f.buf, ';')
	f.buf = strconv.AppendInt(f.buf, int64(col+f.offCol), 10)
	f.buf = append(f.buf, 'H')
	f.buf = append(f.buf, s...)
}

// Flush sends the frame and empties it.
func (f *Frame) Flush() error {
	data := f.buf
	f.buf = f.buf[:0]
	for len(data) > 0 {
		n := min(len(data), chunkSize)
		if _, err := f.w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

var _ io.StringWriter = (*Frame)(nil)

// BeginSession switches to the alternate screen with the cursor hidden.
func BeginSession(w io.Writer) error {
	_, err := io.WriteString(w, beginSession)
	return err
}

// EndSession restores the cursor and the main screen.
func EndSession(w io.Writer) error {
	_, err := io.WriteString(w, endSession)
	return err
}

// TermSizeFunc returns the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}
