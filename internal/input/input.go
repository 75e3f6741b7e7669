// Package input turns a raw terminal byte stream into per-frame key
// state. Terminals report key presses, not releases, so a key counts
// as held while its auto-repeat keeps arriving inside a short window.
package input

import (
	"io"
	"time"
)

// keyHoldDuration is how long a key is considered held after its last
// press. Terminal auto-repeat refreshes the timestamp while the key
// stays down.
const keyHoldDuration = 30 * time.Millisecond

// Frame is the input state for one client frame. Fields are actions,
// not keys; the key map lives in this package.
type Frame struct {
	Thrust      bool
	Reverse     bool
	TurnLeft    bool
	TurnRight   bool
	StrafeLeft  bool
	StrafeRight bool
	Fire        bool
	Ability     bool
	Pause       bool
	Restart     bool
	Quit        bool
	Pressed     []byte // raw bytes drained this frame
}

// Any reports whether any key registered this frame.
func (f Frame) Any() bool {
	return len(f.Pressed) > 0
}

// keyState tracks the last press time per action.
type keyState struct {
	thrust      time.Time
	reverse     time.Time
	turnLeft    time.Time
	turnRight   time.Time
	strafeLeft  time.Time
	strafeRight time.Time
	fire        time.Time
	ability     time.Time
	pause       time.Time
	restart     time.Time
	quit        time.Time
}

// Stream delivers bytes from a reader goroutine and keeps the key
// state between frames. Create one per connection with StartStream.
type Stream struct {
	ch    chan byte
	state keyState
	carry []byte // partial escape sequence held over to the next frame
	eof   bool
}

// StartStream spawns a goroutine that copies bytes from r into the
// stream until r fails or is exhausted. The goroutine exits on read
// error, so closing the underlying connection tears it down.
func StartStream(r io.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		defer close(s.ch)
		buf := make([]byte, 64)
		for {
			n, err := r.Read(buf)
			for _, b := range buf[:n] {
				s.ch <- b
			}
			if err != nil {
				return
			}
		}
	}()
	return s
}

// Closed reports whether the byte source is gone. Frames read after
// that only reflect decaying hold timestamps.
func (s *Stream) Closed() bool { return s.eof }

// Reset clears all key state, so holds do not leak across screen
// transitions.
func (s *Stream) Reset() {
	s.state = keyState{}
	s.carry = s.carry[:0]
}

// ReadFrame drains every pending byte, updates the key state, and
// returns the current frame. Non-blocking; call once per render frame.
func ReadFrame(s *Stream) Frame {
	now := time.Now()
	buf := s.carry
	s.carry = nil
	fresh := 0

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.eof = true
				break drain
			}
			buf = append(buf, b)
			fresh++
		default:
			break drain
		}
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != 0x1b {
			applyKey(&s.state, b, now)
			continue
		}

		// CSI arrow sequence: ESC [ code. A partial sequence at the
		// end of a read is carried to the next frame. One that gained
		// no bytes by then was a bare escape after all: quit.
		if i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.thrust = now
			case 'B':
				s.state.reverse = now
			case 'C':
				s.state.turnRight = now
			case 'D':
				s.state.turnLeft = now
			}
			i += 2
			continue
		}
		if !s.eof && fresh > 0 && (i == len(buf)-1 || (i == len(buf)-2 && buf[i+1] == '[')) {
			s.carry = append(s.carry, buf[i:]...)
			break
		}
		s.state.quit = now
	}

	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }
	return Frame{
		Thrust:      held(s.state.thrust),
		Reverse:     held(s.state.reverse),
		TurnLeft:    held(s.state.turnLeft),
		TurnRight:   held(s.state.turnRight),
		StrafeLeft:  held(s.state.strafeLeft),
		StrafeRight: held(s.state.strafeRight),
		Fire:        held(s.state.fire),
		Ability:     held(s.state.ability),
		Pause:       held(s.state.pause),
		Restart:     held(s.state.restart),
		Quit:        held(s.state.quit),
		Pressed:     buf,
	}
}

// applyKey maps one byte to its action timestamp. Arrows come in as
// CSI sequences handled by the caller; a bare escape means quit.
func applyKey(state *keyState, b byte, now time.Time) {
	switch b {
	case 'w', 'W':
		state.thrust = now
	case 's', 'S':
		state.reverse = now
	case 'a', 'A':
		state.strafeLeft = now
	case 'd', 'D':
		state.strafeRight = now
	case ' ', '\r', '\n':
		state.fire = now
	case 'q', 'Q', 'e', 'E', 'b', 'B':
		state.ability = now
	case 'p', 'P':
		state.pause = now
	case 'r', 'R':
		state.restart = now
	case 0x03: // Ctrl-C
		state.quit = now
	}
}
