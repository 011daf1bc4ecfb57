// Package input reads raw terminal bytes and turns them into per-frame key state.
package input

import (
	"bufio"
	"slices"
	"time"
)

// keyHoldDuration is how long a direction key is considered "held" after its last press.
// Terminals only send key repeats, so holding needs to bridge the gap between them.
const keyHoldDuration = 30 * time.Millisecond

// Input represents the current frame's input state.
//
// Direction keys are held for keyHoldDuration after each press. Action keys
// fire once per frame in which their byte arrived.
type Input struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool

	Quit        bool
	Kick        bool
	Pause       bool
	Reset       bool
	NextLayout  bool
	SpawnCircle bool
	SpawnBox    bool
	Help        bool

	Pressed []byte
}

// Any reports whether any key arrived this frame.
func (in Input) Any() bool {
	return len(in.Pressed) > 0
}

// keyState tracks the last time each direction key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // escape sequence prefix cut off by the last read
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
func ReadInput(s *Stream) Input {
	return readInputAt(s, time.Now())
}

func readInputAt(s *Stream, now time.Time) Input {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := Input{Pressed: buf}
	if len(s.pending) > 0 {
		buf = append(s.pending, buf...)
		s.pending = nil
	}
	if n := incompleteTail(buf); n > 0 && !s.closed {
		s.pending = slices.Clone(buf[len(buf)-n:])
		buf = buf[:len(buf)-n]
	}
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if applyArrow(&s.state, buf[i+2], now) {
				i += 2
				continue
			}
		}
		applyByte(&s.state, &in, b, now)
	}

	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration
	in.Up = now.Sub(s.state.up) < keyHoldDuration
	in.Down = now.Sub(s.state.down) < keyHoldDuration
	if s.closed {
		in.Quit = true
	}
	return in
}

// incompleteTail returns the length of a trailing ESC or ESC [ whose final
// byte has not arrived yet.
func incompleteTail(buf []byte) int {
	n := len(buf)
	switch {
	case n >= 1 && buf[n-1] == '\x1b':
		return 1
	case n >= 2 && buf[n-2] == '\x1b' && buf[n-1] == '[':
		return 2
	}
	return 0
}

// ResetKeyInput clears held direction keys.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

func applyArrow(state *keyState, code byte, now time.Time) bool {
	switch code {
	case 'A':
		state.up = now
	case 'B':
		state.down = now
	case 'C':
		state.right = now
	case 'D':
		state.left = now
	default:
		return false
	}
	return true
}

// applyByte updates the key state and this frame's actions for a single byte.
// Uppercase A-D are left unmapped: they end arrow and modified-arrow sequences.
func applyByte(state *keyState, in *Input, b byte, now time.Time) {
	switch b {
	case 'a', 'h':
		state.left = now
	case 'd', 'l':
		state.right = now
	case 'w', 'W', 'k':
		state.up = now
	case 's', 'S', 'j':
		state.down = now
	case 'q', 'Q', '\x03': // Ctrl+C arrives as a byte in raw mode
		in.Quit = true
	case ' ':
		in.Kick = true
	case 'p', 'P':
		in.Pause = true
	case 'r', 'R':
		in.Reset = true
	case 'n', 'N':
		in.NextLayout = true
	case 'c':
		in.SpawnCircle = true
	case 'b':
		in.SpawnBox = true
	case '?':
		in.Help = true
	}
}
