package input

import (
	"bufio"
	"io"
	"testing"
	"time"
)

// pipeStream builds a stream fed from the given bytes and waits for the
// reader goroutine to drain them into the channel.
func pipeStream(t *testing.T, data []byte) *Stream {
	t.Helper()
	r, w := io.Pipe()
	s := StartStream(bufio.NewReader(r))
	go func() {
		w.Write(data)
		w.Close()
	}()
	deadline := time.Now().Add(time.Second)
	for len(s.ch) < len(data) && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	return s
}

func TestReadInputTechniqueKeys(t *testing.T) {
	s := pipeStream(t, []byte("3"))

	in := ReadInput(s)
	if in.Technique != 3 {
		t.Fatalf("expected technique 3, got %d", in.Technique)
	}

	// Edge-triggered: the next frame sees nothing.
	in = ReadInput(s)
	if in.Technique != 0 {
		t.Fatalf("expected no technique on second frame, got %d", in.Technique)
	}
}

func TestReadInputLoneEscapeClosesReport(t *testing.T) {
	s := pipeStream(t, []byte{'\x1b'})

	in := ReadInput(s)
	if !in.CloseReport {
		t.Fatalf("expected lone ESC to close report")
	}
}

func TestReadInputCSISequenceSwallowed(t *testing.T) {
	s := pipeStream(t, []byte{'\x1b', '[', 'A'})

	in := ReadInput(s)
	if in.CloseReport {
		t.Fatalf("CSI sequence must not count as ESC")
	}
	if in.Technique != 0 || in.Quit {
		t.Fatalf("CSI sequence produced spurious events: %+v", in)
	}
}

func TestReadInputQuitAndAnalyze(t *testing.T) {
	s := pipeStream(t, []byte("aQ"))

	in := ReadInput(s)
	if !in.Analyze {
		t.Errorf("expected analyze event")
	}
	if !in.Quit {
		t.Errorf("expected quit event")
	}
}
