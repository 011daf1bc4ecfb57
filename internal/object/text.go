package object

import (
	"fmt"
	"io"
)

// Text is a HUD line written directly to the terminal.
// Coordinates are 1-based terminal positions.
type Text struct {
	X     int
	Y     int
	Value string
}

// Draw writes the text at its position using ANSI cursor movement.
func (t Text) Draw(w io.Writer) error {
	if t.Value == "" {
		return nil
	}
	x := t.X
	y := t.Y
	if x < 1 {
		x = 1
	}
	if y < 1 {
		y = 1
	}
	if _, err := fmt.Fprintf(w, "\033[%d;%dH%s", y, x, t.Value); err != nil {
		return err
	}
	return nil
}

// Update is a no-op for static text.
func (t Text) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}

// RightAligned returns text whose last character sits at column right.
func RightAligned(right, row int, value string) Text {
	return Text{X: right - len([]rune(value)) + 1, Y: row, Value: value}
}

// Centered returns text centered on column center.
func Centered(center, row int, value string) Text {
	return Text{X: center - len([]rune(value))/2, Y: row, Value: value}
}
