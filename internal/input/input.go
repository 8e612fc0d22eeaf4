// Package input parses raw terminal bytes into per-frame control events.
package input

import "bufio"

// Input represents the control events seen this frame. Every field is
// edge-triggered: a key press produces the event on exactly one frame.
type Input struct {
	Quit        bool
	Technique   int // 1..5 when a technique key was pressed, 0 otherwise
	Analyze     bool
	CloseReport bool
	Enter       bool
	Pressed     []byte
}

// Stream delivers input bytes from the session reader via a channel.
type Stream struct {
	ch chan byte
}

// StartStream spawns a goroutine that reads from r and sends bytes to the
// stream. The goroutine exits when the reader fails (session closed).
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
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

// ReadInput drains all available bytes from the stream (non-blocking) and
// parses them into this frame's events. A lone ESC closes the report; ESC
// followed by '[' is a CSI sequence and is swallowed.
func ReadInput(s *Stream) Input {
	var buf []byte

	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				goto parse
			}
			buf = append(buf, b)
		default:
			goto parse
		}
	}

parse:
	input := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			if i+1 < len(buf) && buf[i+1] == '[' {
				// CSI sequence: ESC [ <code>. Skip the final byte too.
				i += 2
				continue
			}
			input.CloseReport = true
			continue
		}

		switch b {
		case 'q', 'Q', 3: // Ctrl+C
			input.Quit = true
		case '1', '2', '3', '4', '5':
			input.Technique = int(b - '0')
		case 'a', 'A':
			input.Analyze = true
		case '\r', '\n':
			input.Enter = true
		}
	}

	return input
}
